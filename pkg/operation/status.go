package operation

import (
	"context"

	"github.com/astragull/KKLC-Sentences/pkg/ankiconnect"
	"github.com/rs/zerolog"
)

// Status checks how much of the configured range still needs enrichment.
// It walks the same notes a sync would but never writes anything.
func (o *operator) Status(ctx context.Context) (Summary, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Msg("checking enrichment status")

	var summary Summary
	err := o.walk(ctx, &summary, func(ctx context.Context, note ankiconnect.Note) error {
		_, disp := o.classify(ctx, note)
		switch disp {
		case dispositionMissingKey:
			summary.MissingKey++
		case dispositionExcluded:
			summary.Excluded++
		case dispositionEnriched:
			summary.Skipped++
		default:
			summary.Pending++
		}
		return nil
	})
	return summary, err
}
