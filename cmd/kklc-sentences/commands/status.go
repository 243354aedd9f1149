package commands

import (
	"fmt"

	"github.com/astragull/KKLC-Sentences/cmd/kklc-sentences/opts"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check how many notes still need enrichment",
		Long: `Status walks the same notes a sync would, without writing anything.
It will:
1. Probe the AnkiConnect endpoint
2. Find all notes matching the deck and note type
3. Classify each note as enriched, pending, excluded or missing its key
4. Report the counts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, store, err := buildOperator(ctx, ro.Config, ro.Logger)
			if err != nil {
				return err
			}

			// Probe connectivity before walking the deck
			version, err := store.Version(ctx)
			if err != nil {
				ro.UserLogger.LogValidation(false, "AnkiConnect is not reachable", err)
				return errors.Errorf("probing store: %w", err)
			}
			ro.UserLogger.LogValidation(true, fmt.Sprintf("AnkiConnect protocol v%d reachable", version), nil)

			summary, err := op.Status(ctx)
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			if summary.Pending > 0 {
				ro.UserLogger.LogStateChange(fmt.Sprintf("%d of %d notes still need enrichment", summary.Pending, summary.InRange))
			} else {
				ro.UserLogger.LogStateChange("All notes are enriched")
			}
			ro.Logger.Infof("matched %d, in range %d, enriched %d, pending %d, excluded %d, missing key %d",
				summary.Matched, summary.InRange, summary.Skipped, summary.Pending, summary.Excluded, summary.MissingKey)

			return nil
		},
	}

	return cmd
}
