// Copyright 2025 astragull
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	noteIndent  = 4  // spaces to indent note entries
	keyWidth    = 20 // Base width for the source key
	idWidth     = 16 // Width for the note ID
	statusWidth = 15 // Width for status text
)

// 🎯 NoteOperation represents a per-note outcome for logging
type NoteOperation struct {
	ID           int64  // Note ID in the collection
	Key          string // Source key field value
	Status       string // Outcome status text
	IsUpdated    bool   // Whether the target field was written
	IsSkipped    bool   // Whether the note was already enriched
	IsExcluded   bool   // Whether an exclude pattern matched the key
	IsMissingKey bool   // Whether the source key field was absent
	IsError      bool   // Whether an error placeholder was written
}

// 📦 DeckOperation represents one pass over a deck
type DeckOperation struct {
	Deck     string // Deck name
	NoteType string // Note type within the deck
	Total    int    // Notes selected for the pass
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *DeckOperation
	operations []NoteOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatNoteOperation formats a note operation for display
func (l *Logger) formatNoteOperation(op NoteOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsError:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsUpdated:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsMissingKey:
		symbol = '!'
		symbolColor = color.FgYellow
	case op.IsExcluded:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", noteIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", keyWidth, op.Key),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*d", idWidth, op.ID)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogNoteOperation logs a per-note outcome
func (l *Logger) LogNoteOperation(ctx context.Context, op NoteOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to operations list
	l.operations = append(l.operations, op)

	// Format and print
	fmt.Fprintln(l.console, l.formatNoteOperation(op))

	// Log to zerolog
	l.zlog.Info().
		Int64("note", op.ID).
		Str("key", op.Key).
		Str("status", op.Status).
		Bool("is_updated", op.IsUpdated).
		Bool("is_skipped", op.IsSkipped).
		Bool("is_excluded", op.IsExcluded).
		Bool("is_missing_key", op.IsMissingKey).
		Bool("is_error", op.IsError).
		Msg("note operation")
}

// 📝 StartDeckOperation starts a new deck operation
func (l *Logger) StartDeckOperation(ctx context.Context, op DeckOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	// Print deck header
	fmt.Fprintf(l.console, "[enriching %s]\n",
		color.New(color.FgCyan).Sprint(op.Deck))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.NoteType),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(fmt.Sprintf("%d notes", op.Total)))

	// Log to zerolog
	l.zlog.Info().
		Str("deck", op.Deck).
		Str("note_type", op.NoteType).
		Int("total", op.Total).
		Msg("starting deck operation")
}

// 📝 EndDeckOperation ends the current deck operation
func (l *Logger) EndDeckOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	updated := 0
	for _, op := range l.operations {
		if op.IsUpdated {
			updated++
		}
	}

	// Log summary
	l.zlog.Info().
		Str("deck", l.currentOp.Deck).
		Int("notes", len(l.operations)).
		Int("updated", updated).
		Msg("deck operation complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("kklc-sentences")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
