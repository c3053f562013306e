package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avoseb/go-note-keeper/internal/service"
	"github.com/avoseb/go-note-keeper/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noteOwner = models.Identity{UserID: 42, Username: "alice"}

// apiRequest builds an authenticated request against the note API.
func apiRequest(auth *mockAuthService, method, path string, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	r.AddCookie(sessionFor(auth, noteOwner))
	return r
}

func TestNotesAPI_RequiresSession(t *testing.T) {
	h := newTestHandler(testHandlerOptions{})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/notes/"},
		{http.MethodPost, "/api/notes/"},
		{http.MethodGet, "/api/notes/note/" + uuid.NewString()},
		{http.MethodDelete, "/api/notes/note-archive/deleteAll"},
	}

	for _, tt := range paths {
		recorder := serve(h, httptest.NewRequest(tt.method, tt.path, nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "%s %s", tt.method, tt.path)

		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "not authorized", body.Error)
	}
}

// ─────────────────────────────────────────────
// List
// ─────────────────────────────────────────────

func TestListNotes_PassesQueryAndWritesPage(t *testing.T) {
	id, err := uuid.NewV7()
	require.NoError(t, err)

	auth := &mockAuthService{}
	notes := &mockNoteService{
		listFn: func(_ context.Context, owner models.Identity, age string, page int, search string) (models.NotePage, error) {
			assert.Equal(t, noteOwner, owner)
			assert.Equal(t, "archive", age)
			assert.Equal(t, 3, page)
			assert.Equal(t, "milk", search)
			return models.NotePage{
				Data:    []models.NoteSummary{{ID: id, Title: "Milk"}},
				HasMore: true,
			}, nil
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	recorder := serve(h, apiRequest(auth, http.MethodGet, "/api/notes/?age=archive&page=3&search=milk", ""))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var page models.NotePage
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	assert.True(t, page.HasMore)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Milk", page.Data[0].Title)
}

func TestListNotes_DefaultsPageToOne(t *testing.T) {
	auth := &mockAuthService{}
	var gotPage int
	notes := &mockNoteService{
		listFn: func(_ context.Context, _ models.Identity, _ string, page int, _ string) (models.NotePage, error) {
			gotPage = page
			return models.NotePage{Data: []models.NoteSummary{}}, nil
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	serve(h, apiRequest(auth, http.MethodGet, "/api/notes/?page=garbage", ""))

	assert.Equal(t, 1, gotPage)
}

func TestListNotes_ServiceFailureIsJSON500(t *testing.T) {
	auth := &mockAuthService{}
	notes := &mockNoteService{
		listFn: func(_ context.Context, _ models.Identity, _ string, _ int, _ string) (models.NotePage, error) {
			return models.NotePage{}, errService
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	recorder := serve(h, apiRequest(auth, http.MethodGet, "/api/notes/", ""))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Error)
}

// ─────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────

func TestCreateNote_Returns201WithID(t *testing.T) {
	id := uuid.New()
	auth := &mockAuthService{}
	notes := &mockNoteService{
		createFn: func(_ context.Context, owner models.Identity, title, text string) (uuid.UUID, error) {
			assert.Equal(t, noteOwner, owner)
			assert.Equal(t, "groceries", title)
			assert.Equal(t, "- milk", text)
			return id, nil
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	recorder := serve(h, apiRequest(auth, http.MethodPost, "/api/notes/", `{"title":"groceries","text":"- milk"}`))

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var created models.CreatedNote
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, id.String(), created.ID)
}

func TestCreateNote_StoreFailureIs400(t *testing.T) {
	auth := &mockAuthService{}
	notes := &mockNoteService{
		createFn: func(_ context.Context, _ models.Identity, _, _ string) (uuid.UUID, error) {
			return uuid.Nil, errService
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	recorder := serve(h, apiRequest(auth, http.MethodPost, "/api/notes/", `{"title":"x","text":"y"}`))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "could not create note", body.Error)
}

func TestCreateNote_InvalidJSON(t *testing.T) {
	auth := &mockAuthService{}
	h := newTestHandler(testHandlerOptions{auth: auth})

	recorder := serve(h, apiRequest(auth, http.MethodPost, "/api/notes/", `{broken`))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

// ─────────────────────────────────────────────
// Get
// ─────────────────────────────────────────────

func TestGetNote_Success(t *testing.T) {
	id, err := uuid.NewV7()
	require.NoError(t, err)

	auth := &mockAuthService{}
	notes := &mockNoteService{
		getFn: func(_ context.Context, _ models.Identity, rawID string) (models.Note, error) {
			assert.Equal(t, id.String(), rawID)
			return models.Note{
				ID:      id,
				Title:   "groceries",
				Text:    "- milk",
				HTML:    "<ul><li>milk</li></ul>",
				Created: models.CreatedTime(id),
			}, nil
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	recorder := serve(h, apiRequest(auth, http.MethodGet, "/api/notes/note/"+id.String(), ""))

	assert.Equal(t, http.StatusOK, recorder.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, id.String(), payload["_id"])
	assert.Equal(t, "<ul><li>milk</li></ul>", payload["html"])
}

func TestGetNote_NotFoundIsUniform404(t *testing.T) {
	auth := &mockAuthService{}
	h := newTestHandler(testHandlerOptions{auth: auth})

	for _, rawID := range []string{uuid.NewString(), "not-a-uuid"} {
		recorder := serve(h, apiRequest(auth, http.MethodGet, "/api/notes/note/"+rawID, ""))

		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "note not found", body.Error)
	}
}

// ─────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────

func TestUpdateNote_AbsentFieldBecomesEmpty(t *testing.T) {
	auth := &mockAuthService{}
	var gotTitle, gotText string
	notes := &mockNoteService{
		updateFn: func(_ context.Context, _ models.Identity, _ string, title, text string) (models.Note, error) {
			gotTitle, gotText = title, text
			return models.Note{Title: title, Text: text}, nil
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	recorder := serve(h, apiRequest(auth, http.MethodPatch, "/api/notes/note/"+uuid.NewString(), `{"title":"only title"}`))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "only title", gotTitle)
	assert.Empty(t, gotText)
}

// a successful update answers with the updated note, not a bare 200
func TestUpdateNote_RespondsWithUpdatedNote(t *testing.T) {
	id, err := uuid.NewV7()
	require.NoError(t, err)

	auth := &mockAuthService{}
	notes := &mockNoteService{
		updateFn: func(_ context.Context, _ models.Identity, rawID, title, text string) (models.Note, error) {
			assert.Equal(t, id.String(), rawID)
			return models.Note{
				ID:      id,
				Title:   title,
				Text:    text,
				Created: models.CreatedTime(id),
			}, nil
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	recorder := serve(h, apiRequest(auth, http.MethodPatch, "/api/notes/note/"+id.String(), `{"title":"new","text":"body"}`))

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotEmpty(t, recorder.Body.String())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, id.String(), payload["_id"])
	assert.Equal(t, "new", payload["title"])
	assert.Equal(t, "body", payload["text"])
}

func TestUpdateNote_BothFieldsAbsent(t *testing.T) {
	auth := &mockAuthService{}
	h := newTestHandler(testHandlerOptions{auth: auth})

	recorder := serve(h, apiRequest(auth, http.MethodPatch, "/api/notes/note/"+uuid.NewString(), `{}`))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateNote_NotFound(t *testing.T) {
	auth := &mockAuthService{}
	notes := &mockNoteService{
		updateFn: func(_ context.Context, _ models.Identity, _, _, _ string) (models.Note, error) {
			return models.Note{}, service.ErrNoteNotFound
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	recorder := serve(h, apiRequest(auth, http.MethodPatch, "/api/notes/note/"+uuid.NewString(), `{"text":"x"}`))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

// ─────────────────────────────────────────────
// Archive / unarchive / delete
// ─────────────────────────────────────────────

// each route passes the raw id through and answers with the note the
// service returned
func TestArchiveRoutes(t *testing.T) {
	id, err := uuid.NewV7()
	require.NoError(t, err)
	result := models.Note{ID: id, Title: "kept", Created: models.CreatedTime(id)}

	tests := []struct {
		name   string
		method string
		path   string
		wire   func(*mockNoteService, *string)
	}{
		{
			name:   "archive",
			method: http.MethodPut,
			path:   "/api/notes/note-archive/" + id.String(),
			wire: func(notes *mockNoteService, got *string) {
				notes.archiveFn = func(_ context.Context, _ models.Identity, rawID string) (models.Note, error) {
					*got = rawID
					return result, nil
				}
			},
		},
		{
			name:   "unarchive",
			method: http.MethodPut,
			path:   "/api/notes/note-unarchive/" + id.String(),
			wire: func(notes *mockNoteService, got *string) {
				notes.unarchiveFn = func(_ context.Context, _ models.Identity, rawID string) (models.Note, error) {
					*got = rawID
					return result, nil
				}
			},
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/api/notes/note/" + id.String(),
			wire: func(notes *mockNoteService, got *string) {
				notes.deleteFn = func(_ context.Context, _ models.Identity, rawID string) (models.Note, error) {
					*got = rawID
					return result, nil
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{}
			notes := &mockNoteService{}
			var got string
			tt.wire(notes, &got)
			h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

			recorder := serve(h, apiRequest(auth, tt.method, tt.path, ""))

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, id.String(), got)

			var payload map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
			assert.Equal(t, id.String(), payload["_id"])
			assert.Equal(t, "kept", payload["title"])
		})
	}
}

// ─────────────────────────────────────────────
// Bulk delete
// ─────────────────────────────────────────────

func TestDeleteArchivedNotes_ReportsCount(t *testing.T) {
	auth := &mockAuthService{}
	notes := &mockNoteService{
		deleteArchivedFn: func(_ context.Context, owner models.Identity) (int64, error) {
			assert.Equal(t, noteOwner, owner)
			return 3, nil
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	recorder := serve(h, apiRequest(auth, http.MethodDelete, "/api/notes/note-archive/deleteAll", ""))

	assert.Equal(t, http.StatusOK, recorder.Code)

	var result models.DeleteResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, int64(3), result.DeletedCount)
}

func TestDeleteArchivedNotes_EmptyArchiveIs404(t *testing.T) {
	auth := &mockAuthService{}
	notes := &mockNoteService{
		deleteArchivedFn: func(_ context.Context, _ models.Identity) (int64, error) {
			return 0, service.ErrNoteNotFound
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	recorder := serve(h, apiRequest(auth, http.MethodDelete, "/api/notes/note-archive/deleteAll", ""))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

// ─────────────────────────────────────────────
// PDF export
// ─────────────────────────────────────────────

func TestExportNotePDF_SetsAttachmentHeaders(t *testing.T) {
	auth := &mockAuthService{}
	notes := &mockNoteService{
		exportPDFFn: func(_ context.Context, _ models.Identity, _ string) (models.NoteExport, error) {
			return models.NoteExport{FileName: "trip plan.pdf", Content: []byte("%PDF-1.4 stub")}, nil
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth, notes: notes})

	recorder := serve(h, apiRequest(auth, http.MethodGet, "/api/notes/note-to-pdf/"+uuid.NewString(), ""))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="trip plan.pdf"`, recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4 stub", recorder.Body.String())
}

func TestExportNotePDF_NotFound(t *testing.T) {
	auth := &mockAuthService{}
	h := newTestHandler(testHandlerOptions{auth: auth})

	recorder := serve(h, apiRequest(auth, http.MethodGet, "/api/notes/note-to-pdf/"+uuid.NewString(), ""))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

// stale sessions answer 401 rather than fail the request elsewhere
func TestNotesAPI_StaleSessionIs401(t *testing.T) {
	auth := &mockAuthService{
		resolveSessionFn: func(_ context.Context, _ string) (models.Identity, bool) {
			return models.Identity{}, false
		},
	}
	h := newTestHandler(testHandlerOptions{auth: auth})

	r := httptest.NewRequest(http.MethodGet, "/api/notes/", nil)
	r.AddCookie(&http.Cookie{Name: testCookieName, Value: uuid.NewString()})

	recorder := serve(h, r)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
