package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avoseb/go-note-keeper/internal/app"
	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/internal/utils"
	"github.com/avoseb/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetIdentityFromContext(r.Context())

	query := r.URL.Query()
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	notePage, err := h.services.NoteService.List(r.Context(), owner, query.Get("age"), page, query.Get("search"))
	if err != nil {
		log.Err(err).Msg("note listing failed")
		writeAPIError(w, err)
		return
	}

	utils.WriteJSON(w, notePage, http.StatusOK)
}

type noteBody struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetIdentityFromContext(r.Context())

	var body noteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgInvalidRequestBody}, http.StatusBadRequest)
		return
	}

	id, err := h.services.NoteService.Create(r.Context(), owner, stringValue(body.Title), stringValue(body.Text))
	if err != nil {
		log.Err(err).Msg("note creation failed")
		utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgNoteCreationFailed}, http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, models.CreatedNote{ID: id.String()}, http.StatusCreated)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetIdentityFromContext(r.Context())

	note, err := h.services.NoteService.Get(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("note fetch failed")
		writeAPIError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

// updateNote applies replace semantics: both fields are overwritten and
// an absent field becomes empty. A body naming neither field is rejected.
func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetIdentityFromContext(r.Context())

	var body noteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgInvalidRequestBody}, http.StatusBadRequest)
		return
	}
	if body.Title == nil && body.Text == nil {
		utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgInvalidRequestBody}, http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.Update(r.Context(), owner, chi.URLParam(r, "id"), stringValue(body.Title), stringValue(body.Text))
	if err != nil {
		log.Err(err).Msg("note update failed")
		writeAPIError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) archiveNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetIdentityFromContext(r.Context())

	note, err := h.services.NoteService.Archive(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("note archiving failed")
		writeAPIError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) unarchiveNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetIdentityFromContext(r.Context())

	note, err := h.services.NoteService.Unarchive(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("note unarchiving failed")
		writeAPIError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

// deleteNote responds with the removed note as its last snapshot.
func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetIdentityFromContext(r.Context())

	note, err := h.services.NoteService.Delete(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("note deletion failed")
		writeAPIError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) deleteArchivedNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetIdentityFromContext(r.Context())

	deleted, err := h.services.NoteService.DeleteArchived(r.Context(), owner)
	if err != nil {
		log.Err(err).Msg("bulk deletion of archived notes failed")
		writeAPIError(w, err)
		return
	}

	utils.WriteJSON(w, models.DeleteResult{DeletedCount: deleted}, http.StatusOK)
}

func (h *Handler) exportNotePDF(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetIdentityFromContext(r.Context())

	export, err := h.services.NoteService.ExportPDF(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("note pdf export failed")
		writeAPIError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(export.Content); err != nil {
		log.Err(err).Msg("writing pdf response failed")
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
