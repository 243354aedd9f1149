package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRange(t *testing.T) {
	tests := []struct {
		name  string
		ids   []int64
		start int
		end   int
		want  []int64
	}{
		{
			name:  "full_range",
			ids:   []int64{1, 2, 3, 4, 5},
			start: 0,
			end:   -1,
			want:  []int64{1, 2, 3, 4, 5},
		},
		{
			name:  "inclusive_window",
			ids:   []int64{1, 2, 3, 4, 5},
			start: 1,
			end:   3,
			want:  []int64{2, 3, 4},
		},
		{
			name:  "end_clamped_to_last_index",
			ids:   []int64{1, 2, 3, 4, 5},
			start: 3,
			end:   99,
			want:  []int64{4, 5},
		},
		{
			name:  "start_past_input",
			ids:   []int64{1, 2, 3, 4, 5},
			start: 5,
			end:   -1,
			want:  nil,
		},
		{
			name:  "single_note_window",
			ids:   []int64{1, 2, 3, 4, 5},
			start: 2,
			end:   2,
			want:  []int64{3},
		},
		{
			name:  "empty_input",
			ids:   nil,
			start: 0,
			end:   -1,
			want:  nil,
		},
		{
			name:  "negative_start_clamped",
			ids:   []int64{1, 2, 3, 4, 5},
			start: -2,
			end:   1,
			want:  []int64{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyRange(tt.ids, tt.start, tt.end), "range should match")
		})
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name string
		ids  []int64
		size int
		want [][]int64
	}{
		{
			name: "even_pages",
			ids:  []int64{1, 2, 3, 4},
			size: 2,
			want: [][]int64{{1, 2}, {3, 4}},
		},
		{
			name: "ragged_tail",
			ids:  []int64{2, 3, 4},
			size: 2,
			want: [][]int64{{2, 3}, {4}},
		},
		{
			name: "single_page",
			ids:  []int64{1, 2, 3},
			size: 10,
			want: [][]int64{{1, 2, 3}},
		},
		{
			name: "page_per_note",
			ids:  []int64{1, 2},
			size: 1,
			want: [][]int64{{1}, {2}},
		},
		{
			name: "empty_input",
			ids:  nil,
			size: 3,
			want: nil,
		},
		{
			name: "non_positive_size_yields_one_page",
			ids:  []int64{1, 2, 3},
			size: 0,
			want: [][]int64{{1, 2, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chunk(tt.ids, tt.size), "pages should match")
		})
	}
}

func TestRangeThenChunk(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5}

	window := applyRange(ids, 1, 3)
	require.Equal(t, []int64{2, 3, 4}, window, "window should cover indexes 1 through 3")

	pages := chunk(window, 2)
	assert.Equal(t, [][]int64{{2, 3}, {4}}, pages, "window should split into two pages")
}
