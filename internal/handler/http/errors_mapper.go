package http

import (
	"errors"
	"net/http"

	"github.com/avoseb/go-note-keeper/internal/app"
	"github.com/avoseb/go-note-keeper/internal/service"
	"github.com/avoseb/go-note-keeper/internal/store"
	"github.com/avoseb/go-note-keeper/internal/utils"
	"github.com/avoseb/go-note-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrNoteNotFound:        http.StatusNotFound,
	service.ErrInvalidDataProvided: http.StatusBadRequest,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeAPIError maps a service error to its HTTP status and writes the
// JSON error body the note API promises.
func writeAPIError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	message := app.MsgInternalServerError
	switch status {
	case http.StatusNotFound:
		message = app.MsgNoteNotFound
	case http.StatusBadRequest:
		message = app.MsgInvalidRequestBody
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
