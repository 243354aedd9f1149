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

package ankiconnect

import "context"

// 📦 Field is a single note field as AnkiConnect reports it
type Field struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// 📦 Note is one note of the collection, keyed by its collection-wide ID
type Note struct {
	ID     int64            `json:"noteId"`
	Fields map[string]Field `json:"fields"`
}

// FieldValue returns the raw value of the named field and whether the note
// has that field at all.
func (n Note) FieldValue(name string) (string, bool) {
	f, ok := n.Fields[name]
	return f.Value, ok
}

// 🔢 Version asks the add-on for its protocol version. Useful as a
// reachability probe before starting a long run.
func (c *Client) Version(ctx context.Context) (int, error) {
	var version int
	if err := c.invoke(ctx, "version", nil, &version); err != nil {
		return 0, err
	}
	return version, nil
}

// 🔍 FindNotes returns the IDs of every note matching the given Anki search
// query, in the collection's own order.
func (c *Client) FindNotes(ctx context.Context, query string) ([]int64, error) {
	params := struct {
		Query string `json:"query"`
	}{Query: query}

	var ids []int64
	if err := c.invoke(ctx, "findNotes", params, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// 📖 NotesInfo fetches the full field content of the given notes in one call
func (c *Client) NotesInfo(ctx context.Context, ids []int64) ([]Note, error) {
	params := struct {
		Notes []int64 `json:"notes"`
	}{Notes: ids}

	var notes []Note
	if err := c.invoke(ctx, "notesInfo", params, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// ✏️ UpdateNoteField overwrites exactly one field of one note. Every other
// field is left untouched.
func (c *Client) UpdateNoteField(ctx context.Context, id int64, field, value string) error {
	type note struct {
		ID     int64             `json:"id"`
		Fields map[string]string `json:"fields"`
	}
	params := struct {
		Note note `json:"note"`
	}{Note: note{ID: id, Fields: map[string]string{field: value}}}

	return c.invoke(ctx, "updateNoteFields", params, nil)
}
