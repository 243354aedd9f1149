package commands

import (
	"fmt"

	"github.com/astragull/KKLC-Sentences/cmd/kklc-sentences/opts"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewSyncCmd creates a new sync command
func NewSyncCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		force      bool
		rangeStart int
		rangeEnd   int
		batchSize  int
		delayMs    int
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Enrich pending notes with example sentences",
		Long: `Sync walks the configured deck and fills the target field of every note
that still needs enrichment. It will:
1. Find all notes matching the deck and note type
2. Skip notes that are already enriched or excluded
3. Look up example sentences for the remaining notes
4. Write the rendered examples back into the store`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := ro.Config

			// Flag overrides win over the config file
			if cmd.Flags().Changed("force") {
				cfg.Sync.Force = force
			}
			if cmd.Flags().Changed("range-start") {
				cfg.Sync.RangeStart = rangeStart
			}
			if cmd.Flags().Changed("range-end") {
				cfg.Sync.RangeEnd = &rangeEnd
			}
			if cmd.Flags().Changed("batch-size") {
				cfg.Sync.BatchSize = batchSize
			}
			if cmd.Flags().Changed("delay-ms") {
				cfg.Sync.DelayMs = &delayMs
			}
			if err := cfg.Validate(); err != nil {
				return errors.Errorf("validating flag overrides: %w", err)
			}

			op, _, err := buildOperator(ctx, cfg, ro.Logger)
			if err != nil {
				return err
			}

			ro.Logger.Header(fmt.Sprintf("enriching %s", cfg))
			summary, err := op.Sync(ctx)
			if err != nil {
				ro.Logger.Warningf("stopped after %d updates, some notes might not have been updated", summary.Updated)
				return errors.Errorf("syncing notes: %w", err)
			}

			ro.Logger.Successf("updated %d of %d notes (%d skipped, %d excluded, %d without key)",
				summary.Updated, summary.InRange, summary.Skipped, summary.Excluded, summary.MissingKey)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "re-enrich notes that already have content")
	cmd.Flags().IntVar(&rangeStart, "range-start", 0, "first note index to process")
	cmd.Flags().IntVar(&rangeEnd, "range-end", -1, "last note index to process, -1 for the end")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "notes to read per page")
	cmd.Flags().IntVar(&delayMs, "delay-ms", 0, "quiet interval between external calls in milliseconds")

	return cmd
}
