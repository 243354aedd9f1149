package commands

import (
	"github.com/astragull/KKLC-Sentences/cmd/kklc-sentences/opts"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewCleanCmd creates a new clean command
func NewCleanCmd(ro *opts.RootOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Wipe the target field of every note in range",
		Long: `Clean empties the target field of every note a sync would touch, so the
next sync rebuilds them from scratch. It refuses to write unless --force
is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				ro.Logger.Warning("clean wipes every target field, run again with --force to confirm")
				return nil
			}

			op, _, err := buildOperator(ctx, ro.Config, ro.Logger)
			if err != nil {
				return err
			}

			summary, err := op.Clean(ctx)
			if err != nil {
				ro.Logger.Warningf("stopped after clearing %d notes", summary.Cleared)
				return errors.Errorf("cleaning notes: %w", err)
			}

			ro.Logger.Successf("cleared %d of %d notes", summary.Cleared, summary.InRange)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "actually clear the target fields")

	return cmd
}
