package store

import (
	"context"
	"time"

	"github.com/avoseb/go-note-keeper/models"
	"github.com/google/uuid"
)

// UserRepository is the data-access contract for user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// SessionRepository is the data-access contract for session tokens.
type SessionRepository interface {
	CreateSession(ctx context.Context, userID int64) (models.Session, error)
	FindSession(ctx context.Context, sessionID uuid.UUID) (models.Session, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
}

// NoteRepository is the data-access contract for notes, including the
// filtered, paginated listing used by the dashboard.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, noteID uuid.UUID) (models.Note, error)
	UpdateNote(ctx context.Context, noteID uuid.UUID, title, text string) (models.Note, error)
	ArchiveNote(ctx context.Context, noteID uuid.UUID, at time.Time) (models.Note, error)
	UnarchiveNote(ctx context.Context, noteID uuid.UUID) (models.Note, error)
	DeleteNote(ctx context.Context, noteID uuid.UUID) (models.Note, error)
	DeleteArchivedNotes(ctx context.Context, userID int64) (int64, error)
	ListNotes(ctx context.Context, query NoteListQuery) ([]models.NoteSummary, bool, error)
}

// ErrorClassificator decides whether a database error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
