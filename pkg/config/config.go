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

package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Defaults applied by Validate.
const (
	defaultAnkiURL     = "http://127.0.0.1:8765"
	defaultDeck        = "KKLC"
	defaultNoteType    = "Kanji"
	defaultSourceField = "Kanji"
	defaultTargetField = "ExampleSentence"
	defaultProvider    = "jisho"
	defaultLookupURL   = "https://jisho.org/api/v1"
	defaultMaxExamples = 3
	defaultBatchSize   = 10
	defaultDelayMs     = 250
)

// 📦 AnkiArgs configures the AnkiConnect endpoint and which notes to touch
type AnkiArgs struct {
	URL         string `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty" hcl:"url,optional"`
	Deck        string `json:"deck,omitempty" yaml:"deck,omitempty" toml:"deck,omitempty" hcl:"deck,optional"`
	NoteType    string `json:"note_type,omitempty" yaml:"note_type,omitempty" toml:"note_type,omitempty" hcl:"note_type,optional"`
	SourceField string `json:"source_field,omitempty" yaml:"source_field,omitempty" toml:"source_field,omitempty" hcl:"source_field,optional"`
	TargetField string `json:"target_field,omitempty" yaml:"target_field,omitempty" toml:"target_field,omitempty" hcl:"target_field,optional"`
}

// 📖 LookupArgs configures the dictionary provider
type LookupArgs struct {
	Provider    string `json:"provider,omitempty" yaml:"provider,omitempty" toml:"provider,omitempty" hcl:"provider,optional"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty" hcl:"url,optional"`
	MaxExamples int    `json:"max_examples,omitempty" yaml:"max_examples,omitempty" toml:"max_examples,omitempty" hcl:"max_examples,optional"`
}

// 🔧 SyncArgs configures how the update run walks the deck.
//
// DelayMs and RangeEnd are pointers so that an omitted value and an explicit
// zero stay distinguishable: delay_ms 0 turns pacing off, range_end 0 ends
// the range at index zero.
type SyncArgs struct {
	BatchSize  int      `json:"batch_size,omitempty" yaml:"batch_size,omitempty" toml:"batch_size,omitempty" hcl:"batch_size,optional"`
	DelayMs    *int     `json:"delay_ms,omitempty" yaml:"delay_ms,omitempty" toml:"delay_ms,omitempty" hcl:"delay_ms,optional"`
	RangeStart int      `json:"range_start,omitempty" yaml:"range_start,omitempty" toml:"range_start,omitempty" hcl:"range_start,optional"`
	RangeEnd   *int     `json:"range_end,omitempty" yaml:"range_end,omitempty" toml:"range_end,omitempty" hcl:"range_end,optional"`
	Exclude    []string `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty" hcl:"exclude,optional"`
	Force      bool     `json:"force,omitempty" yaml:"force,omitempty" toml:"force,omitempty" hcl:"force,optional"`
}

// ⏱️ Delay returns the quiet interval between external calls
func (s SyncArgs) Delay() time.Duration {
	if s.DelayMs == nil {
		return defaultDelayMs * time.Millisecond
	}
	return time.Duration(*s.DelayMs) * time.Millisecond
}

// 📐 Range returns the inclusive note index range to process, end of -1
// meaning unbounded
func (s SyncArgs) Range() (start, end int) {
	end = -1
	if s.RangeEnd != nil {
		end = *s.RangeEnd
	}
	return s.RangeStart, end
}

// 📄 PageSize returns the number of notes fetched per bulk read
func (s SyncArgs) PageSize() int {
	return s.BatchSize
}

// 📚 Config represents the complete configuration
type Config struct {
	Anki    AnkiArgs   `json:"anki,omitempty" yaml:"anki,omitempty" toml:"anki,omitempty"`
	Lookup  LookupArgs `json:"lookup,omitempty" yaml:"lookup,omitempty" toml:"lookup,omitempty"`
	Sync    SyncArgs   `json:"sync,omitempty" yaml:"sync,omitempty" toml:"sync,omitempty"`
	LogFile string     `json:"log_file,omitempty" yaml:"log_file,omitempty" toml:"log_file,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	// Set defaults
	if cfg.Anki.URL == "" {
		cfg.Anki.URL = defaultAnkiURL
	}
	if cfg.Anki.Deck == "" {
		cfg.Anki.Deck = defaultDeck
	}
	if cfg.Anki.NoteType == "" {
		cfg.Anki.NoteType = defaultNoteType
	}
	if cfg.Anki.SourceField == "" {
		cfg.Anki.SourceField = defaultSourceField
	}
	if cfg.Anki.TargetField == "" {
		cfg.Anki.TargetField = defaultTargetField
	}
	if cfg.Lookup.Provider == "" {
		cfg.Lookup.Provider = defaultProvider
	}
	if cfg.Lookup.URL == "" {
		cfg.Lookup.URL = defaultLookupURL
	}
	if cfg.Lookup.MaxExamples == 0 {
		cfg.Lookup.MaxExamples = defaultMaxExamples
	}
	if cfg.Sync.BatchSize == 0 {
		cfg.Sync.BatchSize = defaultBatchSize
	}

	// Check ranges
	if cfg.Lookup.MaxExamples < 1 || cfg.Lookup.MaxExamples > 10 {
		return errors.Errorf("lookup.max_examples must be between 1 and 10")
	}
	if cfg.Sync.BatchSize < 1 {
		return errors.Errorf("sync.batch_size must be positive")
	}
	if cfg.Sync.DelayMs != nil && *cfg.Sync.DelayMs < 0 {
		return errors.Errorf("sync.delay_ms cannot be negative")
	}
	if cfg.Sync.RangeStart < 0 {
		return errors.Errorf("sync.range_start cannot be negative")
	}
	if cfg.Sync.RangeEnd != nil && *cfg.Sync.RangeEnd < -1 {
		return errors.Errorf("sync.range_end must be -1 or a valid index")
	}

	// Check exclude globs up front so a typo fails the run instead of
	// silently matching nothing
	for _, pattern := range cfg.Sync.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("sync.exclude pattern %q is invalid", pattern)
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s/%s: %s -> %s via %s",
		cfg.Anki.Deck, cfg.Anki.NoteType, cfg.Anki.SourceField, cfg.Anki.TargetField, cfg.Lookup.Provider)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
