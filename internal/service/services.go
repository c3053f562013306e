package service

import (
	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/internal/store"
)

type Services struct {
	AuthService AuthService
	NoteService NoteService
}

func NewServices(storages store.Storages, renderer MarkdownRenderer, exporter PDFExporter, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, storages.SessionRepository, storages.NoteRepository, logger),
		NoteService: NewNoteService(storages.NoteRepository, renderer, exporter, logger),
	}
}
