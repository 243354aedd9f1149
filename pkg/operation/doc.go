/*
Package operation implements the core business logic for enriching notes.

	+-------------+
	|  Operator   |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+
	|    Store    |
	| (Flashcards)|
	+------+------+
	       |
	+------+------+
	|  Enricher   |
	|  (Content)  |
	+------+------+

🎯 Purpose:
- Selects the notes a run operates on (deck and note type filter, range, pages)
- Decides per note whether it needs enrichment (skip policy)
- Writes fetched content into the target field
- Reports what happened as a Summary

🔄 Flow:
1. Find all note IDs matching the deck and note type
2. Clamp the IDs to the configured range
3. Read notes one page at a time
4. Classify each note: missing key, excluded, already enriched, or pending
5. Sync fetches and writes pending notes, Status only counts them,
   Clean wipes non-empty target fields

⚡ Key Responsibilities:
- Note selection and paging
- Skip policy (idempotence across runs)
- Pattern matching for excludes
- Error handling and partial summaries

🤝 Interfaces:
- Operator: the operations a command can run (Sync, Status, Clean)
- Store: the slice of the flashcard store the operations need
- Enricher: turns a source key into rendered target-field content

📝 Design Philosophy:
Operations walk the deck strictly in store order, one note at a time. All
pacing lives behind the Store and Enricher implementations, so the walk
itself stays sequential and deterministic. A failed lookup never aborts a
run (the Enricher renders a retryable placeholder instead), but a failed
store write does, returning the partial Summary alongside the error.

🔍 Example:

	op, err := operation.New(operation.Options{
		Config: cfg,
		Store:  client,
		Enrich: fetcher,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	summary, err := op.Sync(ctx)
*/
package operation
