package service

import (
	"context"

	"github.com/avoseb/go-note-keeper/models"
	"github.com/google/uuid"
)

// AuthService handles account registration, credential checks and the
// session token lifecycle.
type AuthService interface {
	SignUp(ctx context.Context, username, password string) (models.Identity, error)
	Login(ctx context.Context, username, password string) (models.Identity, error)
	LoginWithGoogle(ctx context.Context, email string) (models.Identity, error)

	CreateSession(ctx context.Context, userID int64) (uuid.UUID, error)
	ResolveSession(ctx context.Context, token string) (models.Identity, bool)
	DeleteSession(ctx context.Context, token string) error
}

// NoteService owns the note lifecycle. Every operation that touches an
// existing note takes its id as the raw path segment and applies the
// uniform not-found policy before anything else.
type NoteService interface {
	Create(ctx context.Context, owner models.Identity, title, text string) (uuid.UUID, error)
	Get(ctx context.Context, owner models.Identity, rawID string) (models.Note, error)
	Update(ctx context.Context, owner models.Identity, rawID, title, text string) (models.Note, error)
	Archive(ctx context.Context, owner models.Identity, rawID string) (models.Note, error)
	Unarchive(ctx context.Context, owner models.Identity, rawID string) (models.Note, error)
	Delete(ctx context.Context, owner models.Identity, rawID string) (models.Note, error)
	DeleteArchived(ctx context.Context, owner models.Identity) (int64, error)
	List(ctx context.Context, owner models.Identity, age string, page int, search string) (models.NotePage, error)
	ExportPDF(ctx context.Context, owner models.Identity, rawID string) (models.NoteExport, error)
}

// MarkdownRenderer converts note text to sanitised HTML.
type MarkdownRenderer interface {
	Render(text string) (string, error)
}

// PDFExporter turns a rendered HTML document into a PDF.
type PDFExporter interface {
	Export(ctx context.Context, title, html string) ([]byte, error)
}
