package http

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/avoseb/go-note-keeper/internal/app"
	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/internal/utils"
)

// The server ships two minimal server-rendered pages: the landing page
// with the login and signup forms, and the dashboard shell the note UI
// mounts into. Everything else on the dashboard happens through the
// /api/notes endpoints.

var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Note Keeper</title></head>
<body>
<h1>Note Keeper</h1>
{{if .Username}}
<p>Signed in as {{.Username}}. <a href="/dashboard">Open dashboard</a> or <a href="/logout">log out</a>.</p>
{{else}}
{{if .AuthError}}<p class="auth-error">{{.AuthError}}</p>{{end}}
<form method="post" action="/login">
<input name="username" placeholder="username"><input name="password" type="password" placeholder="password">
<button type="submit">Log in</button>
</form>
<form method="post" action="/signup">
<input name="username" placeholder="username"><input name="password" type="password" placeholder="password">
<button type="submit">Sign up</button>
</form>
{{if .GoogleAuth}}<p><a href="/auth/google">Continue with Google</a></p>{{end}}
{{end}}
</body>
</html>
`))

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Note Keeper — dashboard</title></head>
<body>
<h1>Your notes</h1>
<p>Signed in as {{.Username}}. <a href="/logout">Log out</a>.</p>
<div id="app" data-notes-endpoint="/api/notes"></div>
</body>
</html>
`))

type landingPageData struct {
	Username  string
	AuthError string

	// GoogleAuth gates the "Continue with Google" link; the /auth/google
	// route only exists when an identity provider is configured.
	GoogleAuth bool
}

// landing serves the public start page. A signed-in visitor sees a link
// to the dashboard; an anonymous one gets the auth forms, plus the error
// message for the code carried in the ?authError redirect, if any.
func (h *Handler) landing(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	data := landingPageData{GoogleAuth: h.identityProvider != nil}
	if identity, ok := utils.GetIdentityFromContext(r.Context()); ok {
		data.Username = identity.Username
	} else if r.URL.Query().Get("authError") == "true" {
		data.AuthError = authErrorMessage(r.URL.Query().Get("code"))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := landingTemplate.Execute(w, data); err != nil {
		log.Err(err).Msg("rendering landing page failed")
	}
}

// dashboard serves the note UI shell. Anonymous visitors are sent back
// to the landing page.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, identity); err != nil {
		log.Err(err).Msg("rendering dashboard page failed")
	}
}

// authErrorMessage resolves a raw code query value to the message shown
// on the landing page. Unknown or malformed codes fall back to the
// generic message.
func authErrorMessage(rawCode string) string {
	code, err := strconv.Atoi(rawCode)
	if err != nil {
		code = app.AuthCodeGeneric
	}

	message, ok := app.AuthMessages[code]
	if !ok {
		message = app.AuthMessages[app.AuthCodeGeneric]
	}

	return message
}
