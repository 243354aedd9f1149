package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/astragull/KKLC-Sentences/pkg/config"
)

func ExampleLoad_json() {
	ctx := context.Background()
	// Create a temporary JSON config file
	configJSON := `{
		"anki": {
			"deck": "Core2k",
			"source_field": "Expression",
			"target_field": "Sentence"
		},
		"sync": {
			"batch_size": 25,
			"delay_ms": 500
		}
	}`

	tmpDir := os.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	// Load and validate the config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	// Print some config details
	fmt.Printf("Target: %s\n", cfg)
	fmt.Printf("Batch size: %d\n", cfg.Sync.BatchSize)
	fmt.Printf("Delay: %s\n", cfg.Sync.Delay())

	// Output:
	// Target: Core2k/Kanji: Expression -> Sentence via jisho
	// Batch size: 25
	// Delay: 500ms
}

func ExampleLoad_yaml() {
	ctx := context.Background()
	// Create a temporary YAML config file
	configYAML := `
anki:
  deck: Core2k

lookup:
  max_examples: 2

sync:
  range_start: 100
  range_end: 199
`

	tmpDir := os.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	// Load and validate the config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	// Print some config details
	start, end := cfg.Sync.Range()
	fmt.Printf("Examples per note: %d\n", cfg.Lookup.MaxExamples)
	fmt.Printf("Range: [%d..%d]\n", start, end)

	// Output:
	// Examples per note: 2
	// Range: [100..199]
}

func ExampleLoad_hcl() {
	ctx := context.Background()
	// Create a temporary HCL config file
	configHCL := `
anki {
  deck      = "Core2k"
  note_type = "Vocabulary"
}

sync {
  exclude = ["一*"]
}
`

	tmpDir := os.TempDir()
	configPath := filepath.Join(tmpDir, "config.hcl")
	if err := os.WriteFile(configPath, []byte(configHCL), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	// Load and validate the config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	// Print some config details
	fmt.Printf("Note type: %s\n", cfg.Anki.NoteType)
	fmt.Printf("Excluded patterns: %d\n", len(cfg.Sync.Exclude))

	// Output:
	// Note type: Vocabulary
	// Excluded patterns: 1
}

func ExampleConfig_Validate() {
	// An empty config is valid and picks up every default
	cfg := &config.Config{}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Validation error: %v\n", err)
		return
	}

	fmt.Printf("Deck: %s\n", cfg.Anki.Deck)
	fmt.Printf("Provider: %s\n", cfg.Lookup.Provider)
	fmt.Printf("Max examples: %d\n", cfg.Lookup.MaxExamples)
	fmt.Printf("Delay: %s\n", cfg.Sync.Delay())

	// Output:
	// Deck: KKLC
	// Provider: jisho
	// Max examples: 3
	// Delay: 250ms
}
