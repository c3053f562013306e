package http

import (
	"github.com/avoseb/go-note-keeper/internal/adapter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withSession)

	// browser-facing pages and auth flows
	router.Group(func(r chi.Router) {
		r.Get("/", h.landing)
		r.Get("/dashboard", h.dashboard)

		r.Post("/signup", h.signUp)
		r.Post("/login", h.logIn)
		r.Get("/logout", h.logOut)

		if h.identityProvider != nil {
			r.Get("/auth/google", h.googleLogin)
			r.Get(adapter.CallbackPath, h.googleCallback)
		}
	})

	// note API, session required
	router.Route("/api/notes", func(r chi.Router) {
		r.Use(h.requireUser)

		r.Get("/", h.listNotes)
		r.Post("/", h.createNote)

		r.Get("/note/{id}", h.getNote)
		r.Patch("/note/{id}", h.updateNote)
		r.Delete("/note/{id}", h.deleteNote)

		r.Put("/note-archive/{id}", h.archiveNote)
		r.Put("/note-unarchive/{id}", h.unarchiveNote)
		r.Delete("/note-archive/deleteAll", h.deleteArchivedNotes)

		r.Get("/note-to-pdf/{id}", h.exportNotePDF)
	})

	return router
}
