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

package operation

import (
	"context"
	"strings"

	"github.com/astragull/KKLC-Sentences/pkg/ankiconnect"
	"github.com/astragull/KKLC-Sentences/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🧹 Clean wipes the target field of every note in the configured range so
// the next sync rebuilds them from scratch. Excluded notes are left alone,
// and notes whose target is already empty count as skipped.
func (o *operator) Clean(ctx context.Context) (Summary, error) {
	var summary Summary

	err := o.walk(ctx, &summary, func(ctx context.Context, note ankiconnect.Note) error {
		return o.cleanNote(ctx, note, &summary)
	})
	return summary, err
}

// 🗑️ cleanNote clears a single target field when it holds content.
func (o *operator) cleanNote(ctx context.Context, note ankiconnect.Note, summary *Summary) error {
	key, _ := note.FieldValue(o.config.Anki.SourceField)
	key = strings.TrimSpace(key)

	if key != "" && o.excluded(ctx, key) {
		summary.Excluded++
		o.logger.LogNoteOperation(ctx, log.NoteOperation{ID: note.ID, Key: key, Status: "excluded", IsExcluded: true})
		return nil
	}

	target, ok := note.FieldValue(o.config.Anki.TargetField)
	if !ok || strings.TrimSpace(target) == "" {
		summary.Skipped++
		return nil
	}

	if err := o.store.UpdateNoteField(ctx, note.ID, o.config.Anki.TargetField, ""); err != nil {
		return errors.Errorf("clearing note %d: %w", note.ID, err)
	}
	summary.Cleared++
	o.logger.LogNoteOperation(ctx, log.NoteOperation{ID: note.ID, Key: key, Status: "cleared", IsUpdated: true})
	return nil
}
