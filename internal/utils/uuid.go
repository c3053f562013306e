package utils

import "github.com/google/uuid"

// NoteIDGenerator mints UUIDv7 note identifiers. Version 7 is load-bearing
// here: the embedded millisecond timestamp is the note's creation time and
// makes ids sort in creation order.
type NoteIDGenerator struct {
}

func NewNoteIDGenerator() *NoteIDGenerator {
	return &NoteIDGenerator{}
}

// Generate returns a fresh UUIDv7. The only failure mode of uuid.NewV7 is
// a broken entropy source, in which case note creation must fail rather
// than fall back to an unordered id.
func (g *NoteIDGenerator) Generate() (uuid.UUID, error) {
	return uuid.NewV7()
}
