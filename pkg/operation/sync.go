package operation

import (
	"context"

	"github.com/astragull/KKLC-Sentences/pkg/ankiconnect"
	"github.com/astragull/KKLC-Sentences/pkg/enrich"
	"github.com/astragull/KKLC-Sentences/pkg/log"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Sync implements Operator.Sync
func (o *operator) Sync(ctx context.Context) (Summary, error) {
	var (
		summary Summary
		started bool
	)
	defer func() {
		if started {
			o.logger.EndDeckOperation(ctx)
		}
	}()

	err := o.walk(ctx, &summary, func(ctx context.Context, note ankiconnect.Note) error {
		if !started {
			o.logger.StartDeckOperation(ctx, log.DeckOperation{
				Deck:     o.config.Anki.Deck,
				NoteType: o.config.Anki.NoteType,
				Total:    summary.InRange,
			})
			started = true
		}
		return o.syncNote(ctx, note, &summary)
	})
	if err != nil {
		return summary, err
	}

	if summary.InRange == 0 {
		o.logger.Warning("no notes matched the configured deck and range")
	}
	return summary, nil
}

// ✏️ syncNote applies the skip policy to a single note and enriches it when
// it is pending. A failed lookup still writes its placeholder, only a failed
// store write aborts the run.
func (o *operator) syncNote(ctx context.Context, note ankiconnect.Note, summary *Summary) error {
	key, disp := o.classify(ctx, note)

	switch disp {
	case dispositionMissingKey:
		summary.MissingKey++
		zerolog.Ctx(ctx).Warn().
			Int64("note", note.ID).
			Str("field", o.config.Anki.SourceField).
			Msg("note has no source key")
		o.logger.LogNoteOperation(ctx, log.NoteOperation{ID: note.ID, Key: key, Status: "missing key", IsMissingKey: true})
		return nil

	case dispositionExcluded:
		summary.Excluded++
		o.logger.LogNoteOperation(ctx, log.NoteOperation{ID: note.ID, Key: key, Status: "excluded", IsExcluded: true})
		return nil

	case dispositionEnriched:
		summary.Skipped++
		o.logger.LogNoteOperation(ctx, log.NoteOperation{ID: note.ID, Key: key, Status: "already enriched", IsSkipped: true})
		return nil
	}

	content := o.enrich.Fetch(ctx, key)
	if err := o.store.UpdateNoteField(ctx, note.ID, o.config.Anki.TargetField, content); err != nil {
		return errors.Errorf("updating note %d: %w", note.ID, err)
	}
	summary.Updated++

	op := log.NoteOperation{ID: note.ID, Key: key, Status: "updated", IsUpdated: true}
	if enrich.IsErrorPlaceholder(content) {
		op.Status = "lookup failed"
		op.IsError = true
	}
	o.logger.LogNoteOperation(ctx, op)
	return nil
}
