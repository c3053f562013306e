package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avoseb/go-note-keeper/internal/adapter"
	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/internal/service"
	"github.com/avoseb/go-note-keeper/models"
	"github.com/google/uuid"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	signUpFn          func(ctx context.Context, username, password string) (models.Identity, error)
	loginFn           func(ctx context.Context, username, password string) (models.Identity, error)
	loginWithGoogleFn func(ctx context.Context, email string) (models.Identity, error)
	createSessionFn   func(ctx context.Context, userID int64) (uuid.UUID, error)
	resolveSessionFn  func(ctx context.Context, token string) (models.Identity, bool)
	deleteSessionFn   func(ctx context.Context, token string) error
}

func (m *mockAuthService) SignUp(ctx context.Context, username, password string) (models.Identity, error) {
	if m.signUpFn != nil {
		return m.signUpFn(ctx, username, password)
	}
	return models.Identity{UserID: 1, Username: username}, nil
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (models.Identity, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return models.Identity{UserID: 1, Username: username}, nil
}

func (m *mockAuthService) LoginWithGoogle(ctx context.Context, email string) (models.Identity, error) {
	if m.loginWithGoogleFn != nil {
		return m.loginWithGoogleFn(ctx, email)
	}
	return models.Identity{UserID: 1, Username: email}, nil
}

func (m *mockAuthService) CreateSession(ctx context.Context, userID int64) (uuid.UUID, error) {
	if m.createSessionFn != nil {
		return m.createSessionFn(ctx, userID)
	}
	return uuid.New(), nil
}

func (m *mockAuthService) ResolveSession(ctx context.Context, token string) (models.Identity, bool) {
	if m.resolveSessionFn != nil {
		return m.resolveSessionFn(ctx, token)
	}
	return models.Identity{}, false
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.deleteSessionFn != nil {
		return m.deleteSessionFn(ctx, token)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.NoteService
// ─────────────────────────────────────────────

type mockNoteService struct {
	createFn         func(ctx context.Context, owner models.Identity, title, text string) (uuid.UUID, error)
	getFn            func(ctx context.Context, owner models.Identity, rawID string) (models.Note, error)
	updateFn         func(ctx context.Context, owner models.Identity, rawID, title, text string) (models.Note, error)
	archiveFn        func(ctx context.Context, owner models.Identity, rawID string) (models.Note, error)
	unarchiveFn      func(ctx context.Context, owner models.Identity, rawID string) (models.Note, error)
	deleteFn         func(ctx context.Context, owner models.Identity, rawID string) (models.Note, error)
	deleteArchivedFn func(ctx context.Context, owner models.Identity) (int64, error)
	listFn           func(ctx context.Context, owner models.Identity, age string, page int, search string) (models.NotePage, error)
	exportPDFFn      func(ctx context.Context, owner models.Identity, rawID string) (models.NoteExport, error)
}

func (m *mockNoteService) Create(ctx context.Context, owner models.Identity, title, text string) (uuid.UUID, error) {
	if m.createFn != nil {
		return m.createFn(ctx, owner, title, text)
	}
	return uuid.New(), nil
}

func (m *mockNoteService) Get(ctx context.Context, owner models.Identity, rawID string) (models.Note, error) {
	if m.getFn != nil {
		return m.getFn(ctx, owner, rawID)
	}
	return models.Note{}, service.ErrNoteNotFound
}

func (m *mockNoteService) Update(ctx context.Context, owner models.Identity, rawID, title, text string) (models.Note, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, owner, rawID, title, text)
	}
	return models.Note{Title: title, Text: text}, nil
}

func (m *mockNoteService) Archive(ctx context.Context, owner models.Identity, rawID string) (models.Note, error) {
	if m.archiveFn != nil {
		return m.archiveFn(ctx, owner, rawID)
	}
	return models.Note{}, nil
}

func (m *mockNoteService) Unarchive(ctx context.Context, owner models.Identity, rawID string) (models.Note, error) {
	if m.unarchiveFn != nil {
		return m.unarchiveFn(ctx, owner, rawID)
	}
	return models.Note{}, nil
}

func (m *mockNoteService) Delete(ctx context.Context, owner models.Identity, rawID string) (models.Note, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, owner, rawID)
	}
	return models.Note{}, nil
}

func (m *mockNoteService) DeleteArchived(ctx context.Context, owner models.Identity) (int64, error) {
	if m.deleteArchivedFn != nil {
		return m.deleteArchivedFn(ctx, owner)
	}
	return 0, nil
}

func (m *mockNoteService) List(ctx context.Context, owner models.Identity, age string, page int, search string) (models.NotePage, error) {
	if m.listFn != nil {
		return m.listFn(ctx, owner, age, page, search)
	}
	return models.NotePage{Data: []models.NoteSummary{}}, nil
}

func (m *mockNoteService) ExportPDF(ctx context.Context, owner models.Identity, rawID string) (models.NoteExport, error) {
	if m.exportPDFFn != nil {
		return m.exportPDFFn(ctx, owner, rawID)
	}
	return models.NoteExport{}, service.ErrNoteNotFound
}

// ─────────────────────────────────────────────
// Mock: adapter.IdentityProvider
// ─────────────────────────────────────────────

type mockIdentityProvider struct {
	authCodeURLFn  func(state string) string
	fetchProfileFn func(ctx context.Context, code string) (adapter.GoogleProfile, error)
}

func (m *mockIdentityProvider) AuthCodeURL(state string) string {
	if m.authCodeURLFn != nil {
		return m.authCodeURLFn(state)
	}
	return "https://accounts.google.com/o/oauth2/v2/auth?state=" + state
}

func (m *mockIdentityProvider) FetchProfile(ctx context.Context, code string) (adapter.GoogleProfile, error) {
	if m.fetchProfileFn != nil {
		return m.fetchProfileFn(ctx, code)
	}
	return adapter.GoogleProfile{Email: "alice@example.com", VerifiedEmail: true}, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testCookieName = "sessionId"

var errService = errors.New("service error")

type testHandlerOptions struct {
	auth  *mockAuthService
	notes *mockNoteService

	// provider defaults to a mock; set noProvider to simulate a
	// password-only deployment with no OAuth configured.
	provider   adapter.IdentityProvider
	noProvider bool
}

func newTestHandler(opts testHandlerOptions) *Handler {
	if opts.auth == nil {
		opts.auth = &mockAuthService{}
	}
	if opts.notes == nil {
		opts.notes = &mockNoteService{}
	}
	if opts.provider == nil && !opts.noProvider {
		opts.provider = &mockIdentityProvider{}
	}

	return NewHandler(
		&service.Services{AuthService: opts.auth, NoteService: opts.notes},
		opts.provider,
		testCookieName,
		logger.Nop(),
	)
}

// sessionFor wires the auth mock so that the given token resolves to the
// identity, and returns a ready cookie for the request.
func sessionFor(auth *mockAuthService, identity models.Identity) *http.Cookie {
	token := uuid.NewString()
	auth.resolveSessionFn = func(_ context.Context, got string) (models.Identity, bool) {
		if got == token {
			return identity, true
		}
		return models.Identity{}, false
	}

	return &http.Cookie{Name: testCookieName, Value: token}
}

func serve(h *Handler, r *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	h.Init().ServeHTTP(recorder, r)
	return recorder
}

func findCookie(t *testing.T, recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
