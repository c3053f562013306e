package models

// NotePage is the response body of the note listing endpoint: one page of
// summaries plus a flag telling the client whether another page exists.
type NotePage struct {
	Data []NoteSummary `json:"data"`

	// HasMore is true when at least one more page of results exists for
	// the same filter. Detected by over-fetching a single row, not by a
	// separate count query.
	HasMore bool `json:"hasMore"`
}

// DeleteResult reports how many notes a bulk delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// CreatedNote is the response body of note creation.
type CreatedNote struct {
	ID string `json:"_id"`
}

// NoteExport is a note rendered into a downloadable document.
type NoteExport struct {
	// FileName is the suggested attachment name, derived from the note title.
	FileName string

	Content []byte
}

// ErrorResponse is the structured error payload returned by API endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
