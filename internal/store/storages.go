package store

import (
	"github.com/avoseb/go-note-keeper/internal/logger"
)

// Storages bundles every repository behind one injectable handle.
type Storages struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository
	NoteRepository    NoteRepository
}

// NewStorages wires all repositories onto the shared database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		SessionRepository: NewSessionRepository(db, logger),
		NoteRepository:    NewNoteRepository(db, logger),
	}
}
