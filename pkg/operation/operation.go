package operation

import (
	"context"
	"fmt"

	"github.com/astragull/KKLC-Sentences/pkg/ankiconnect"
	"github.com/astragull/KKLC-Sentences/pkg/config"
	"github.com/astragull/KKLC-Sentences/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the operations that can run against a deck
type Operator interface {
	// Sync enriches every pending note in the configured range
	Sync(ctx context.Context) (Summary, error)
	// Status classifies notes without writing anything
	Status(ctx context.Context) (Summary, error)
	// Clean wipes non-empty target fields so the next sync starts fresh
	Clean(ctx context.Context) (Summary, error)
}

// 🔌 Store is the slice of the flashcard store the operations need
type Store interface {
	// FindNotes returns the IDs of all notes matching a search query
	FindNotes(ctx context.Context, query string) ([]int64, error)
	// NotesInfo returns full note records for a page of IDs
	NotesInfo(ctx context.Context, ids []int64) ([]ankiconnect.Note, error)
	// UpdateNoteField writes a single field on a single note
	UpdateNoteField(ctx context.Context, id int64, field, value string) error
}

// 📖 Enricher produces rendered target-field content for a source key
type Enricher interface {
	// Fetch always returns renderable content, falling back to a
	// placeholder when the lookup fails or finds nothing
	Fetch(ctx context.Context, key string) string
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the loaded enrichment configuration
	Config *config.Config
	// Store is the flashcard store to read and write notes in
	Store Store
	// Enrich produces the content written into target fields
	Enrich Enricher
	// Logger renders per-note progress for the user
	Logger *log.Logger
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	if opts.Enrich == nil {
		return nil, errors.Errorf("enricher is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	return &operator{
		config: opts.Config,
		store:  opts.Store,
		enrich: opts.Enrich,
		logger: opts.Logger,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	config *config.Config
	store  Store
	enrich Enricher
	logger *log.Logger
}

// 📊 Summary counts the per-note outcomes of a single run
type Summary struct {
	// Matched is the number of notes matching the deck and note type filter
	Matched int
	// InRange is the number of notes left after applying the range
	InRange int
	// Updated is the number of target fields written by Sync
	Updated int
	// Pending is the number of notes Status reports as needing enrichment
	Pending int
	// Cleared is the number of target fields wiped by Clean
	Cleared int
	// Skipped is the number of notes left alone as already enriched
	Skipped int
	// Excluded is the number of notes whose key matched an exclude pattern
	Excluded int
	// MissingKey is the number of notes with an absent or empty source field
	MissingKey int
}

// SearchQuery builds the store search filter for a deck and note type.
func SearchQuery(deck, noteType string) string {
	return fmt.Sprintf("deck:%q %q", deck, "note:"+noteType)
}
