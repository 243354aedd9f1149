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

// Package enrich renders dictionary lookups into the HTML block written to
// a note's target field.
package enrich

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/astragull/KKLC-Sentences/pkg/lookup"
)

// ErrorMarker flags a target field written by a failed lookup. Re-runs
// retry any note whose target field still contains it.
const ErrorMarker = "[lookup failed]"

// 🔍 IsErrorPlaceholder reports whether previously written target content is
// a failed-lookup placeholder rather than real enrichment.
//
// TODO: replace this text sniff with a dedicated status field on the note.
func IsErrorPlaceholder(s string) bool {
	return strings.Contains(s, ErrorMarker)
}

// 🎯 Fetcher turns lookup results into a rendered example block
type Fetcher struct {
	provider lookup.Provider
	max      int
}

// NewFetcher creates a fetcher that keeps at most max entries per key.
func NewFetcher(provider lookup.Provider, max int) *Fetcher {
	if max < 1 {
		max = 1
	}
	return &Fetcher{provider: provider, max: max}
}

// 📖 Fetch renders up to max entries for key. It never fails: any lookup
// error comes back as a marked placeholder so one bad key cannot stop a
// run, and every return value is non-empty.
func (f *Fetcher) Fetch(ctx context.Context, key string) string {
	entries, err := f.provider.Search(ctx, key)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("lookup failed")
		return errorPlaceholder(key)
	}

	if len(entries) == 0 {
		return notFoundPlaceholder(key)
	}
	if len(entries) > f.max {
		entries = entries[:f.max]
	}

	return render(entries)
}

// render writes each entry as a word line, a reading line, and a meaning
// line, with a blank line between entries. Service order is preserved.
func render(entries []lookup.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("<br><br>")
		}
		b.WriteString("<b>")
		b.WriteString(html.EscapeString(e.Word))
		b.WriteString("</b>")
		if e.Reading != "" {
			b.WriteString("<br>")
			b.WriteString(html.EscapeString(e.Reading))
		}
		b.WriteString("<br>")
		b.WriteString(html.EscapeString(e.Meaning))
	}
	return b.String()
}

// notFoundPlaceholder is terminal: it carries no error marker, so re-runs
// leave the note alone.
func notFoundPlaceholder(key string) string {
	return fmt.Sprintf("<i>No examples found for %s.</i>", html.EscapeString(key))
}

// errorPlaceholder carries the marker, so re-runs retry the note.
func errorPlaceholder(key string) string {
	return fmt.Sprintf("<i>%s for %s, will retry on the next run.</i>", ErrorMarker, html.EscapeString(key))
}
