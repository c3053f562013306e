package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/internal/store"
	"github.com/avoseb/go-note-keeper/internal/utils"
	"github.com/avoseb/go-note-keeper/models"
	"github.com/google/uuid"
)

// noteService is the concrete implementation of NoteService.
//
// Ownership is enforced here, not in the handlers: every operation on an
// existing note loads it first and answers ErrNoteNotFound unless the
// caller owns it. Malformed ids take the same exit, so a probing client
// cannot tell "does not exist" from "not yours".
type noteService struct {
	noteRepository store.NoteRepository

	// noteIDs mints UUIDv7 ids at creation time.
	noteIDs *utils.NoteIDGenerator

	renderer MarkdownRenderer
	exporter PDFExporter

	logger *logger.Logger
}

// NewNoteService constructs a NoteService backed by the given repository,
// markdown renderer and PDF exporter.
func NewNoteService(notes store.NoteRepository, renderer MarkdownRenderer, exporter PDFExporter, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: notes,
		noteIDs:        utils.NewNoteIDGenerator(),
		renderer:       renderer,
		exporter:       exporter,
		logger:         logger,
	}
}

// Create persists a new note and returns its id. Empty title and text are
// allowed: a note starts blank and gets filled in later.
func (n *noteService) Create(ctx context.Context, owner models.Identity, title, text string) (uuid.UUID, error) {
	log := logger.FromContext(ctx)

	id, err := n.noteIDs.Generate()
	if err != nil {
		log.Err(err).Msg("note id generation failed")
		return uuid.Nil, fmt.Errorf("note id generation failed: %w", err)
	}

	note, err := n.noteRepository.CreateNote(ctx, models.Note{
		ID:     id,
		UserID: owner.UserID,
		Title:  title,
		Text:   text,
	})
	if err != nil {
		log.Err(err).Int64("user_id", owner.UserID).Msg("note creation ended with error")
		return uuid.Nil, fmt.Errorf("note creation ended with error: %w", err)
	}

	return note.ID, nil
}

// Get returns a single owned note with its markdown rendered to HTML and
// the creation time recovered from the id.
func (n *noteService) Get(ctx context.Context, owner models.Identity, rawID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := n.ownedNote(ctx, owner, rawID)
	if err != nil {
		return models.Note{}, err
	}

	html, err := n.renderer.Render(note.Text)
	if err != nil {
		log.Err(err).Str("note_id", note.ID.String()).Msg("markdown rendering failed")
		return models.Note{}, fmt.Errorf("markdown rendering failed: %w", err)
	}

	note.HTML = html
	note.Created = models.CreatedTime(note.ID)

	return note, nil
}

// Update replaces both content fields of an owned note and returns the
// updated note. This is full replacement: a field absent from the request
// becomes empty.
func (n *noteService) Update(ctx context.Context, owner models.Identity, rawID, title, text string) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := n.ownedNote(ctx, owner, rawID)
	if err != nil {
		return models.Note{}, err
	}

	updated, err := n.noteRepository.UpdateNote(ctx, note.ID, title, text)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("note_id", note.ID.String()).Msg("note update ended with error")
		return models.Note{}, fmt.Errorf("note update ended with error: %w", err)
	}

	updated.Created = models.CreatedTime(updated.ID)

	return updated, nil
}

// Archive stamps an owned note with the current time, moving it to the
// archive view, and returns the archived note. Archiving an archived note
// refreshes the stamp.
func (n *noteService) Archive(ctx context.Context, owner models.Identity, rawID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := n.ownedNote(ctx, owner, rawID)
	if err != nil {
		return models.Note{}, err
	}

	archived, err := n.noteRepository.ArchiveNote(ctx, note.ID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("note_id", note.ID.String()).Msg("note archiving ended with error")
		return models.Note{}, fmt.Errorf("note archiving ended with error: %w", err)
	}

	archived.Created = models.CreatedTime(archived.ID)

	return archived, nil
}

// Unarchive clears the archive stamp of an owned note and returns the
// restored note. Unarchiving an active note is a no-op.
func (n *noteService) Unarchive(ctx context.Context, owner models.Identity, rawID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := n.ownedNote(ctx, owner, rawID)
	if err != nil {
		return models.Note{}, err
	}

	restored, err := n.noteRepository.UnarchiveNote(ctx, note.ID)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("note_id", note.ID.String()).Msg("note unarchiving ended with error")
		return models.Note{}, fmt.Errorf("note unarchiving ended with error: %w", err)
	}

	restored.Created = models.CreatedTime(restored.ID)

	return restored, nil
}

// Delete permanently removes an owned note and returns the removed note
// as its last snapshot.
func (n *noteService) Delete(ctx context.Context, owner models.Identity, rawID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := n.ownedNote(ctx, owner, rawID)
	if err != nil {
		return models.Note{}, err
	}

	deleted, err := n.noteRepository.DeleteNote(ctx, note.ID)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("note_id", note.ID.String()).Msg("note deletion ended with error")
		return models.Note{}, fmt.Errorf("note deletion ended with error: %w", err)
	}

	deleted.Created = models.CreatedTime(deleted.ID)

	return deleted, nil
}

// DeleteArchived removes every archived note the caller owns and reports
// how many were removed. ErrNoteNotFound means the archive was empty.
func (n *noteService) DeleteArchived(ctx context.Context, owner models.Identity) (int64, error) {
	log := logger.FromContext(ctx)

	deleted, err := n.noteRepository.DeleteArchivedNotes(ctx, owner.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return 0, ErrNoteNotFound
		}

		log.Err(err).Int64("user_id", owner.UserID).Msg("bulk archive deletion ended with error")
		return 0, fmt.Errorf("bulk archive deletion ended with error: %w", err)
	}

	return deleted, nil
}

// List returns one page of the caller's notes for the requested view.
//
// Each summary carries its creation time recovered from the id. When a
// search term is present the matched part of every title is additionally
// wrapped in <mark> tags for the dashboard to display.
func (n *noteService) List(ctx context.Context, owner models.Identity, age string, page int, search string) (models.NotePage, error) {
	log := logger.FromContext(ctx)

	summaries, hasMore, err := n.noteRepository.ListNotes(ctx, store.NoteListQuery{
		UserID: owner.UserID,
		Age:    age,
		Page:   page,
		Search: search,
	})
	if err != nil {
		log.Err(err).Int64("user_id", owner.UserID).Str("age", age).Msg("note listing ended with error")
		return models.NotePage{}, fmt.Errorf("note listing ended with error: %w", err)
	}

	highlight := searchHighlighter(search)
	for i := range summaries {
		summaries[i].Created = models.CreatedTime(summaries[i].ID)
		if highlight != nil {
			summaries[i].Highlights = highlight(summaries[i].Title)
		}
	}

	return models.NotePage{Data: summaries, HasMore: hasMore}, nil
}

// ExportPDF renders an owned note to a standalone PDF document.
func (n *noteService) ExportPDF(ctx context.Context, owner models.Identity, rawID string) (models.NoteExport, error) {
	log := logger.FromContext(ctx)

	note, err := n.Get(ctx, owner, rawID)
	if err != nil {
		return models.NoteExport{}, err
	}

	content, err := n.exporter.Export(ctx, note.Title, note.HTML)
	if err != nil {
		log.Err(err).Str("note_id", note.ID.String()).Msg("pdf export ended with error")
		return models.NoteExport{}, fmt.Errorf("pdf export ended with error: %w", err)
	}

	return models.NoteExport{
		FileName: exportFileName(note.Title),
		Content:  content,
	}, nil
}

// ownedNote resolves a raw path id to a note owned by the caller.
// Malformed ids, missing notes and foreign notes all collapse to
// ErrNoteNotFound.
func (n *noteService) ownedNote(ctx context.Context, owner models.Identity, rawID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	noteID, err := uuid.Parse(rawID)
	if err != nil {
		return models.Note{}, ErrNoteNotFound
	}

	note, err := n.noteRepository.GetNote(ctx, noteID)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("note_id", noteID.String()).Msg("note lookup ended with error")
		return models.Note{}, fmt.Errorf("note lookup ended with error: %w", err)
	}

	if note.UserID != owner.UserID {
		return models.Note{}, ErrNoteNotFound
	}

	return note, nil
}

// searchHighlighter returns a function wrapping every case-insensitive
// occurrence of term in <mark> tags, or nil when there is no term. The
// term is matched literally, so regexp metacharacters in user input are
// quoted first.
func searchHighlighter(term string) func(string) string {
	if term == "" {
		return nil
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return nil
	}

	return func(title string) string {
		return re.ReplaceAllStringFunc(title, func(match string) string {
			return "<mark>" + match + "</mark>"
		})
	}
}

// exportFileName derives a safe attachment name from the note title.
func exportFileName(title string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "note"
	}

	// keep the name header-safe
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|', '\n', '\r':
			return '_'
		}
		return r
	}, name)

	return name + ".pdf"
}
