package commands

import (
	"context"

	"github.com/astragull/KKLC-Sentences/pkg/ankiconnect"
	"github.com/astragull/KKLC-Sentences/pkg/config"
	"github.com/astragull/KKLC-Sentences/pkg/enrich"
	"github.com/astragull/KKLC-Sentences/pkg/log"
	"github.com/astragull/KKLC-Sentences/pkg/lookup"
	"github.com/astragull/KKLC-Sentences/pkg/operation"
	"github.com/astragull/KKLC-Sentences/pkg/pace"
	"gitlab.com/tozd/go/errors"

	// Register the jisho provider
	_ "github.com/astragull/KKLC-Sentences/pkg/lookup/jisho"
)

// buildOperator wires the store client, lookup provider and enricher behind
// one shared pacing gate, so every external call observes the same quiet
// interval no matter which service it goes to.
func buildOperator(ctx context.Context, cfg *config.Config, logger *log.Logger) (operation.Operator, *ankiconnect.Client, error) {
	gate := pace.New(cfg.Sync.Delay())

	store, err := ankiconnect.New(ankiconnect.Options{
		URL:  cfg.Anki.URL,
		Gate: gate,
	})
	if err != nil {
		return nil, nil, errors.Errorf("creating store client: %w", err)
	}

	provider, err := lookup.New(ctx, lookup.Options{
		Config: cfg.Lookup,
		Gate:   gate,
	})
	if err != nil {
		return nil, nil, errors.Errorf("creating lookup provider: %w", err)
	}

	op, err := operation.New(operation.Options{
		Config: cfg,
		Store:  store,
		Enrich: enrich.NewFetcher(provider, cfg.Lookup.MaxExamples),
		Logger: logger,
	})
	if err != nil {
		return nil, nil, errors.Errorf("creating operator: %w", err)
	}

	return op, store, nil
}
