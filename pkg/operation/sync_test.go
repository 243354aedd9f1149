package operation

import (
	"context"
	"testing"

	"github.com/astragull/KKLC-Sentences/pkg/ankiconnect"
	"github.com/astragull/KKLC-Sentences/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🗄️ fakeStore is an in-memory Store that records every page read and
// every field write.
type fakeStore struct {
	ids      []int64
	notes    map[int64]map[string]string
	pages    [][]int64
	writes   []fieldWrite
	findErr  error
	infoErr  error
	writeErr func(id int64) error
}

type fieldWrite struct {
	id    int64
	field string
	value string
}

func newFakeStore(ids []int64, notes map[int64]map[string]string) *fakeStore {
	if notes == nil {
		notes = map[int64]map[string]string{}
	}
	return &fakeStore{ids: ids, notes: notes}
}

func (s *fakeStore) FindNotes(ctx context.Context, query string) ([]int64, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return append([]int64(nil), s.ids...), nil
}

func (s *fakeStore) NotesInfo(ctx context.Context, ids []int64) ([]ankiconnect.Note, error) {
	if s.infoErr != nil {
		return nil, s.infoErr
	}
	s.pages = append(s.pages, append([]int64(nil), ids...))

	notes := make([]ankiconnect.Note, 0, len(ids))
	for _, id := range ids {
		note := ankiconnect.Note{ID: id, Fields: map[string]ankiconnect.Field{}}
		for name, value := range s.notes[id] {
			note.Fields[name] = ankiconnect.Field{Value: value}
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func (s *fakeStore) UpdateNoteField(ctx context.Context, id int64, field, value string) error {
	if s.writeErr != nil {
		if err := s.writeErr(id); err != nil {
			return err
		}
	}
	s.writes = append(s.writes, fieldWrite{id: id, field: field, value: value})
	if s.notes[id] == nil {
		s.notes[id] = map[string]string{}
	}
	s.notes[id][field] = value
	return nil
}

// 🧪 staticEnricher returns canned content per key and records lookups.
type staticEnricher struct {
	content map[string]string
	calls   []string
}

func (e *staticEnricher) Fetch(ctx context.Context, key string) string {
	e.calls = append(e.calls, key)
	if content, ok := e.content[key]; ok {
		return content
	}
	return "<b>" + key + "</b><br>generated"
}

func newTestOperator(t *testing.T, cfg *config.Config, store Store, enricher Enricher) Operator {
	t.Helper()
	op, err := New(Options{
		Config: cfg,
		Store:  store,
		Enrich: enricher,
		Logger: newTestLogger(),
	})
	require.NoError(t, err, "New should succeed")
	return op
}

func intPtr(i int) *int {
	return &i
}

func TestSync(t *testing.T) {
	tests := []struct {
		name          string
		configure     func(cfg *config.Config)
		store         *fakeStore
		content       map[string]string
		expectedError string
		want          Summary
		check         func(t *testing.T, store *fakeStore, enricher *staticEnricher)
	}{
		{
			name: "enriches_pending_notes",
			store: newFakeStore([]int64{10, 11, 12}, map[int64]map[string]string{
				10: {"Kanji": "猫", "ExampleSentence": ""},
				11: {"Kanji": "犬", "ExampleSentence": "<b>犬</b><br>いぬ<br>dog"},
				12: {"Kanji": "鳥", "ExampleSentence": ""},
			}),
			content: map[string]string{
				"猫": "<b>猫</b><br>ねこ<br>cat",
				"鳥": "<b>鳥</b><br>とり<br>bird",
			},
			want: Summary{Matched: 3, InRange: 3, Updated: 2, Skipped: 1},
			check: func(t *testing.T, store *fakeStore, enricher *staticEnricher) {
				assert.Equal(t, []string{"猫", "鳥"}, enricher.calls, "only pending notes should be looked up")
				require.Len(t, store.writes, 2, "two notes should be written")
				assert.Equal(t, fieldWrite{id: 10, field: "ExampleSentence", value: "<b>猫</b><br>ねこ<br>cat"}, store.writes[0], "first write should fill note 10")
			},
		},
		{
			name: "retries_error_placeholders",
			store: newFakeStore([]int64{21}, map[int64]map[string]string{
				21: {"Kanji": "猿", "ExampleSentence": "<i>[lookup failed] for 猿, will retry on the next run.</i>"},
			}),
			content: map[string]string{
				"猿": "<b>猿</b><br>さる<br>monkey",
			},
			want: Summary{Matched: 1, InRange: 1, Updated: 1},
			check: func(t *testing.T, store *fakeStore, enricher *staticEnricher) {
				assert.Equal(t, "<b>猿</b><br>さる<br>monkey", store.notes[21]["ExampleSentence"], "placeholder should be replaced")
			},
		},
		{
			name: "keeps_terminal_not_found_placeholders",
			store: newFakeStore([]int64{22}, map[int64]map[string]string{
				22: {"Kanji": "𠮷", "ExampleSentence": "<i>No examples found for 𠮷.</i>"},
			}),
			want: Summary{Matched: 1, InRange: 1, Skipped: 1},
			check: func(t *testing.T, store *fakeStore, enricher *staticEnricher) {
				assert.Empty(t, store.writes, "nothing should be written")
				assert.Empty(t, enricher.calls, "nothing should be looked up")
			},
		},
		{
			name: "missing_source_key_is_skipped",
			store: newFakeStore([]int64{30, 31}, map[int64]map[string]string{
				30: {"ExampleSentence": ""},
				31: {"Kanji": "   ", "ExampleSentence": ""},
			}),
			want: Summary{Matched: 2, InRange: 2, MissingKey: 2},
			check: func(t *testing.T, store *fakeStore, enricher *staticEnricher) {
				assert.Empty(t, store.writes, "nothing should be written")
				assert.Empty(t, enricher.calls, "nothing should be looked up")
			},
		},
		{
			name: "trims_key_before_lookup",
			store: newFakeStore([]int64{35}, map[int64]map[string]string{
				35: {"Kanji": " 猫 ", "ExampleSentence": ""},
			}),
			want: Summary{Matched: 1, InRange: 1, Updated: 1},
			check: func(t *testing.T, store *fakeStore, enricher *staticEnricher) {
				assert.Equal(t, []string{"猫"}, enricher.calls, "key should be trimmed")
			},
		},
		{
			name: "excluded_keys_are_not_touched",
			configure: func(cfg *config.Config) {
				cfg.Sync.Exclude = []string{"一*"}
			},
			store: newFakeStore([]int64{40, 41}, map[int64]map[string]string{
				40: {"Kanji": "一人", "ExampleSentence": ""},
				41: {"Kanji": "二人", "ExampleSentence": ""},
			}),
			want: Summary{Matched: 2, InRange: 2, Updated: 1, Excluded: 1},
			check: func(t *testing.T, store *fakeStore, enricher *staticEnricher) {
				assert.Equal(t, []string{"二人"}, enricher.calls, "excluded key should not be looked up")
				require.Len(t, store.writes, 1, "only one note should be written")
				assert.Equal(t, int64(41), store.writes[0].id, "only note 41 should be written")
			},
		},
		{
			name: "force_re_enriches_everything",
			configure: func(cfg *config.Config) {
				cfg.Sync.Force = true
			},
			store: newFakeStore([]int64{50, 51}, map[int64]map[string]string{
				50: {"Kanji": "火", "ExampleSentence": "<b>火</b><br>ひ<br>fire"},
				51: {"Kanji": "水", "ExampleSentence": ""},
			}),
			want: Summary{Matched: 2, InRange: 2, Updated: 2},
			check: func(t *testing.T, store *fakeStore, enricher *staticEnricher) {
				assert.Len(t, store.writes, 2, "both notes should be rewritten")
			},
		},
		{
			name: "range_limits_processing",
			configure: func(cfg *config.Config) {
				cfg.Sync.RangeStart = 1
				cfg.Sync.RangeEnd = intPtr(3)
			},
			store: newFakeStore([]int64{1, 2, 3, 4, 5}, map[int64]map[string]string{
				1: {"Kanji": "一", "ExampleSentence": ""},
				2: {"Kanji": "二", "ExampleSentence": ""},
				3: {"Kanji": "三", "ExampleSentence": ""},
				4: {"Kanji": "四", "ExampleSentence": ""},
				5: {"Kanji": "五", "ExampleSentence": ""},
			}),
			want: Summary{Matched: 5, InRange: 3, Updated: 3},
			check: func(t *testing.T, store *fakeStore, enricher *staticEnricher) {
				require.Len(t, store.writes, 3, "three notes should be written")
				assert.Equal(t, int64(2), store.writes[0].id, "window should start at index 1")
				assert.Equal(t, int64(4), store.writes[2].id, "window should end at index 3")
			},
		},
		{
			name: "pages_follow_batch_size",
			configure: func(cfg *config.Config) {
				cfg.Sync.BatchSize = 2
			},
			store: newFakeStore([]int64{1, 2, 3, 4, 5}, map[int64]map[string]string{
				1: {"Kanji": "一", "ExampleSentence": ""},
				2: {"Kanji": "二", "ExampleSentence": ""},
				3: {"Kanji": "三", "ExampleSentence": ""},
				4: {"Kanji": "四", "ExampleSentence": ""},
				5: {"Kanji": "五", "ExampleSentence": ""},
			}),
			want: Summary{Matched: 5, InRange: 5, Updated: 5},
			check: func(t *testing.T, store *fakeStore, enricher *staticEnricher) {
				assert.Equal(t, [][]int64{{1, 2}, {3, 4}, {5}}, store.pages, "notes should be read in pages")
			},
		},
		{
			name: "write_failure_returns_partial_summary",
			store: func() *fakeStore {
				s := newFakeStore([]int64{10, 11}, map[int64]map[string]string{
					10: {"Kanji": "猫", "ExampleSentence": ""},
					11: {"Kanji": "犬", "ExampleSentence": ""},
				})
				s.writeErr = func(id int64) error {
					if id == 11 {
						return assert.AnError
					}
					return nil
				}
				return s
			}(),
			expectedError: "updating note 11",
			want:          Summary{Matched: 2, InRange: 2, Updated: 1},
		},
		{
			name: "find_failure_aborts",
			store: func() *fakeStore {
				s := newFakeStore(nil, nil)
				s.findErr = assert.AnError
				return s
			}(),
			expectedError: "finding notes",
			want:          Summary{},
		},
		{
			name: "read_failure_aborts",
			store: func() *fakeStore {
				s := newFakeStore([]int64{60, 61}, nil)
				s.infoErr = assert.AnError
				return s
			}(),
			expectedError: "reading notes at offset 0",
			want:          Summary{Matched: 2, InRange: 2},
		},
		{
			name:  "empty_deck_is_a_no_op",
			store: newFakeStore(nil, nil),
			want:  Summary{},
			check: func(t *testing.T, store *fakeStore, enricher *staticEnricher) {
				assert.Empty(t, store.writes, "nothing should be written")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			cfg := testConfig(t)
			if tt.configure != nil {
				tt.configure(cfg)
			}
			enricher := &staticEnricher{content: tt.content}
			op := newTestOperator(t, cfg, tt.store, enricher)

			summary, err := op.Sync(ctx)
			if tt.expectedError != "" {
				require.Error(t, err, "Sync should return error")
				assert.Contains(t, err.Error(), tt.expectedError, "error should contain expected message")
			} else {
				require.NoError(t, err, "Sync should succeed")
			}

			assert.Equal(t, tt.want, summary, "summary should match")
			if tt.check != nil {
				tt.check(t, tt.store, enricher)
			}
		})
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	cfg := testConfig(t)
	store := newFakeStore([]int64{10, 11}, map[int64]map[string]string{
		10: {"Kanji": "猫", "ExampleSentence": ""},
		11: {"Kanji": "犬", "ExampleSentence": ""},
	})
	enricher := &staticEnricher{content: map[string]string{
		"猫": "<b>猫</b><br>ねこ<br>cat",
		"犬": "<b>犬</b><br>いぬ<br>dog",
	}}
	op := newTestOperator(t, cfg, store, enricher)

	first, err := op.Sync(ctx)
	require.NoError(t, err, "first sync should succeed")
	assert.Equal(t, 2, first.Updated, "first sync should update both notes")

	second, err := op.Sync(ctx)
	require.NoError(t, err, "second sync should succeed")
	assert.Zero(t, second.Updated, "second sync should update nothing")
	assert.Equal(t, 2, second.Skipped, "second sync should skip both notes")
	assert.Len(t, store.writes, 2, "second sync should not write again")
}
