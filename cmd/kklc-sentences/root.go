package main

import (
	"context"
	"os"

	"github.com/astragull/KKLC-Sentences/cmd/kklc-sentences/opts"
	"github.com/astragull/KKLC-Sentences/pkg/config"
	"github.com/astragull/KKLC-Sentences/pkg/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootOpts creates a new rootOpts with initialized dependencies. The
// returned context carries the logger that includes the log file sink.
func newRootOpts(ctx context.Context) (*opts.RootOpts, context.Context, error) {
	// Load config
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, ctx, errors.Errorf("loading config: %w", err)
	}

	// Mirror diagnostics into the log file once we know its path
	ctx = attachLogFile(ctx, cfg.LogFile)

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &opts.RootOpts{
		Config:     cfg,
		Logger:     log.New(os.Stdout, level),
		UserLogger: log.NewUserLogger(ctx),
	}, ctx, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".kklc-sentences.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog before flags are parsed
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}

// attachLogFile adds a rotating file sink next to stderr when the config
// names one, returning a context carrying the combined logger.
func attachLogFile(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	logger := zerolog.New(zerolog.MultiLevelWriter(os.Stderr, rotator)).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}
