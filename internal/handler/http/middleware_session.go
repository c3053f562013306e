package http

import (
	"net/http"

	"github.com/avoseb/go-note-keeper/internal/app"
	"github.com/avoseb/go-note-keeper/internal/utils"
	"github.com/avoseb/go-note-keeper/models"
)

// withSession resolves the session cookie into an identity and stores it
// in the request context.
//
// Resolution fails open: no cookie, a malformed token, or an unknown
// session simply leaves the request anonymous. Rejecting anonymous
// requests is the job of requireUser, applied only to the note API; the
// public pages serve both states.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, ok := h.services.AuthService.ResolveSession(r.Context(), cookie.Value)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
	})
}

// requireUser rejects anonymous requests with a JSON 401. It must run
// after withSession.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetIdentityFromContext(r.Context()); !ok {
			utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgNotAuthorized}, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
