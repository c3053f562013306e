package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avoseb/go-note-keeper/internal/app"
	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/internal/service"
	"github.com/avoseb/go-note-keeper/models"
	"github.com/google/uuid"
)

// oauthStateCookie carries the anti-forgery state between the consent
// redirect and the callback.
const oauthStateCookie = "oauthState"

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("signup form could not be parsed")
		h.redirectWithAuthError(w, r, app.AuthCodeGeneric)
		return
	}

	identity, err := h.services.AuthService.SignUp(ctx, r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if code, ok := authCodeFromError(err); ok {
			h.redirectWithAuthError(w, r, code)
			return
		}

		log.Err(err).Msg("unexpected error occurred during signup")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	h.startSession(w, r, identity, "/")
}

func (h *Handler) logIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("login form could not be parsed")
		h.redirectWithAuthError(w, r, app.AuthCodeGeneric)
		return
	}

	identity, err := h.services.AuthService.Login(ctx, r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if code, ok := authCodeFromError(err); ok {
			h.redirectWithAuthError(w, r, code)
			return
		}

		log.Err(err).Msg("unexpected error occurred during login")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	h.startSession(w, r, identity, "/")
}

func (h *Handler) logOut(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if cookie, err := r.Cookie(h.sessionCookieName); err == nil {
		if err := h.services.AuthService.DeleteSession(r.Context(), cookie.Value); err != nil {
			// session row may survive, but the cookie is cleared regardless
			log.Err(err).Msg("session deletion failed during logout")
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int((10 * time.Minute).Seconds()),
	})

	http.Redirect(w, r, h.identityProvider.AuthCodeURL(state), http.StatusFound)
}

func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.checkOAuthState(r); err != nil {
		log.Err(err).Msg("oauth callback state check failed")
		h.redirectWithAuthError(w, r, app.AuthCodeGeneric)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		log.Error().Str("error", r.URL.Query().Get("error")).Msg("oauth callback carried no code")
		h.redirectWithAuthError(w, r, app.AuthCodeGeneric)
		return
	}

	profile, err := h.identityProvider.FetchProfile(ctx, code)
	if err != nil {
		log.Err(err).Msg("fetching google profile failed")
		h.redirectWithAuthError(w, r, app.AuthCodeGeneric)
		return
	}

	identity, err := h.services.AuthService.LoginWithGoogle(ctx, profile.Email)
	if err != nil {
		log.Err(err).Msg("google login failed")
		h.redirectWithAuthError(w, r, app.AuthCodeGeneric)
		return
	}

	h.startSession(w, r, identity, "/dashboard")
}

// startSession issues a session token, sets the session cookie and
// redirects. A storage failure here is a handled 500, never a crash.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, identity models.Identity, redirectTo string) {
	log := logger.FromRequest(r)

	token, err := h.services.AuthService.CreateSession(r.Context(), identity.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", identity.UserID).Msg("session creation failed")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionCookieName,
		Value:    token.String(),
		Path:     "/",
		HttpOnly: true,
	})

	http.Redirect(w, r, redirectTo, http.StatusFound)
}

// checkOAuthState compares the state query parameter against the cookie
// issued when the handshake started.
func (h *Handler) checkOAuthState(r *http.Request) error {
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" {
		return ErrOAuthStateMismatch
	}

	if r.URL.Query().Get("state") != cookie.Value {
		return ErrOAuthStateMismatch
	}

	return nil
}

func (h *Handler) redirectWithAuthError(w http.ResponseWriter, r *http.Request, code int) {
	http.Redirect(w, r, fmt.Sprintf("/?authError=true&code=%d", code), http.StatusFound)
}

// authCodeFromError maps the auth service's sentinel errors to the
// numeric failure codes the landing page understands. The second return
// is false for unexpected errors, which are answered with a 500 instead
// of a redirect.
func authCodeFromError(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrBothCredentialsMissing):
		return app.AuthCodeBothFieldsEmpty, true
	case errors.Is(err, service.ErrUsernameMissing):
		return app.AuthCodeNoUsername, true
	case errors.Is(err, service.ErrPasswordMissing):
		return app.AuthCodeNoPassword, true
	case errors.Is(err, service.ErrUserNotFound):
		return app.AuthCodeUserNotFound, true
	case errors.Is(err, service.ErrWrongPassword):
		return app.AuthCodeWrongPassword, true
	case errors.Is(err, service.ErrUsernameTaken):
		return app.AuthCodeSignupFailed, true
	}

	return 0, false
}
