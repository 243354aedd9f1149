package operation

import (
	"context"
	"strings"

	"github.com/astragull/KKLC-Sentences/pkg/ankiconnect"
	"github.com/astragull/KKLC-Sentences/pkg/enrich"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// disposition is what a sync run would do with a note.
type disposition int

const (
	dispositionPending disposition = iota
	dispositionEnriched
	dispositionExcluded
	dispositionMissingKey
)

// 🚶 walk selects the configured notes and visits each one in store order,
// reading them a page at a time. Matched and InRange are filled on summary
// before the first visit.
func (o *operator) walk(ctx context.Context, summary *Summary, visit func(ctx context.Context, note ankiconnect.Note) error) error {
	logger := zerolog.Ctx(ctx)

	query := SearchQuery(o.config.Anki.Deck, o.config.Anki.NoteType)
	logger.Debug().Str("query", query).Msg("selecting notes")

	ids, err := o.store.FindNotes(ctx, query)
	if err != nil {
		return errors.Errorf("finding notes: %w", err)
	}
	summary.Matched = len(ids)

	start, end := o.config.Sync.Range()
	inRange := applyRange(ids, start, end)
	summary.InRange = len(inRange)
	if len(inRange) == 0 {
		logger.Debug().Int("matched", len(ids)).Msg("no notes in range")
		return nil
	}

	size := o.config.Sync.PageSize()
	for i, page := range chunk(inRange, size) {
		offset := start + i*size
		logger.Debug().Int("offset", offset).Int("size", len(page)).Msg("reading page")

		notes, err := o.store.NotesInfo(ctx, page)
		if err != nil {
			return errors.Errorf("reading notes at offset %d: %w", offset, err)
		}

		for _, note := range notes {
			if err := visit(ctx, note); err != nil {
				return err
			}
		}
	}

	return nil
}

// 🔍 classify decides what a sync would do with a note, returning the
// trimmed source key alongside the decision.
func (o *operator) classify(ctx context.Context, note ankiconnect.Note) (string, disposition) {
	key, ok := note.FieldValue(o.config.Anki.SourceField)
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", dispositionMissingKey
	}
	if o.excluded(ctx, key) {
		return key, dispositionExcluded
	}
	target, _ := note.FieldValue(o.config.Anki.TargetField)
	if o.enriched(target) {
		return key, dispositionEnriched
	}
	return key, dispositionPending
}

// enriched reports whether a target field already holds real content. Error
// placeholders do not count, and force treats every note as pending.
func (o *operator) enriched(target string) bool {
	if o.config.Sync.Force {
		return false
	}
	trimmed := strings.TrimSpace(target)
	return trimmed != "" && !enrich.IsErrorPlaceholder(trimmed)
}

// excluded reports whether a source key matches any exclude pattern.
func (o *operator) excluded(ctx context.Context, key string) bool {
	for _, pattern := range o.config.Sync.Exclude {
		matched, err := doublestar.Match(pattern, key)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("pattern", pattern).Msg("error matching pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
