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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/astragull/KKLC-Sentences/cmd/kklc-sentences/commands"
	"github.com/astragull/KKLC-Sentences/cmd/kklc-sentences/opts"
	"github.com/astragull/KKLC-Sentences/pkg/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	// Setup logging
	setupLogging()
	ctx := context.Background()

	// Create user logger for startup failures
	userLogger := log.NewUserLogger(ctx)

	// Root options are filled in once flags are parsed
	ro := &opts.RootOpts{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "kklc-sentences",
		Short: "Enrich Anki flashcards with dictionary example sentences",
		Long: `kklc-sentences walks an Anki deck over AnkiConnect and fills a chosen
field of every note with example sentences looked up in an online
dictionary. Runs are idempotent, so an interrupted run can simply be
started again.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			filled, ctx, err := newRootOpts(cmd.Context())
			if err != nil {
				return err
			}
			*ro = *filled
			cmd.SetContext(ctx)
			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewSyncCmd(ro),
		commands.NewStatusCmd(ro),
		commands.NewCleanCmd(ro),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}

// newVersionCmd prints build information. It overrides the root
// PersistentPreRunE so it works without a config file.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(FormatVersion())
		},
	}
}
