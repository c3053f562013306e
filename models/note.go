package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a single markdown document owned by exactly one user.
//
// The identifier is a UUIDv7, so the creation instant is embedded in the id
// itself and ids sort in creation order. There is no stored created_at
// column: the timestamp is always derived from the identifier.
type Note struct {
	// ID is the UUIDv7 primary key. Monotonically time-ordered.
	ID uuid.UUID `json:"_id"`

	// UserID is the owner. Immutable after creation.
	UserID int64 `json:"-"`

	// Title may be empty.
	Title string `json:"title"`

	// Text is the raw markdown source. May be empty.
	Text string `json:"text"`

	// ArchivedAt is nil while the note is active and carries the archive
	// instant once the note has been archived. No third state exists.
	ArchivedAt *time.Time `json:"archivedAt"`

	// Created is the creation time derived from ID. Populated by the
	// service layer before the note leaves the process; never stored.
	Created time.Time `json:"created"`

	// HTML is the rendered markdown body. Populated only on single-note
	// reads; list views never carry it.
	HTML string `json:"html,omitempty"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// CreatedTime extracts the creation instant embedded in a note identifier.
func CreatedTime(id uuid.UUID) time.Time {
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec).UTC()
}

// MinNoteIDAt returns the smallest possible UUIDv7 for the given instant.
// Comparing note ids against this bound implements "created at or after t"
// without a stored creation column: every id generated at or after t is
// byte-wise greater or equal.
func MinNoteIDAt(t time.Time) uuid.UUID {
	var id uuid.UUID

	ms := uint64(t.UnixMilli())
	id[0] = byte(ms >> 40)
	id[1] = byte(ms >> 32)
	id[2] = byte(ms >> 24)
	id[3] = byte(ms >> 16)
	id[4] = byte(ms >> 8)
	id[5] = byte(ms)

	id[6] = 0x70 // version 7, zero rand_a
	id[8] = 0x80 // RFC 4122 variant, zero rand_b

	return id
}

// NoteSummary is the subset of note fields returned by list views.
// The markdown body and rendered HTML are deliberately absent.
type NoteSummary struct {
	ID         uuid.UUID  `json:"_id"`
	Title      string     `json:"title"`
	ArchivedAt *time.Time `json:"archivedAt"`

	// Created is derived from ID, same as on Note.
	Created time.Time `json:"created"`

	// Highlights is the title with every case-insensitive occurrence of
	// the active search term wrapped in <mark> tags. Empty unless the
	// listing was produced by a search. Presentation only.
	Highlights string `json:"highlights,omitempty"`
}
