package usecase

import (
	"strings"

	notedomain "thoughtfolio-backend/internal/note/domain"
	notedto "thoughtfolio-backend/internal/note/dto"
	"thoughtfolio-backend/internal/note/repository"
	"thoughtfolio-backend/pkg/database"
)

type NoteUsecase interface {
	CreateNote(userID string, req *notedto.NoteRequest) (*notedomain.Note, error)
	GetNote(userID, id string) (*notedomain.Note, error)
	ListNotes(userID, folder string, limit, offset int) (*notedto.NotesResponse, error)
	AllNotes(userID string) ([]notedomain.Note, error)
	UpdateNote(userID, id string, req *notedto.NoteRequest) (*notedomain.Note, error)
	DeleteNote(userID, id string) error
}

type noteUsecase struct {
	noteRepo repository.NoteRepository
}

func NewNoteUsecase(noteRepo repository.NoteRepository) NoteUsecase {
	return &noteUsecase{noteRepo: noteRepo}
}

// normalizeTags lowercases, trims and dedupes tags keeping their order
func normalizeTags(tags []string) database.StringArray {
	seen := make(map[string]bool, len(tags))
	out := make(database.StringArray, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#")))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (u *noteUsecase) CreateNote(userID string, req *notedto.NoteRequest) (*notedomain.Note, error) {
	note := &notedomain.Note{
		UserID:  userID,
		Title:   strings.TrimSpace(req.Title),
		Content: strings.TrimSpace(req.Content),
		Folder:  strings.TrimSpace(req.Folder),
		Tags:    normalizeTags(req.Tags),
	}
	if note.Title == "" && note.Content == "" {
		return nil, notedomain.ErrNoteEmpty
	}
	if err := u.noteRepo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (u *noteUsecase) GetNote(userID, id string) (*notedomain.Note, error) {
	note, err := u.noteRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, notedomain.ErrNoteNotFound
	}
	return note, nil
}

func (u *noteUsecase) ListNotes(userID, folder string, limit, offset int) (*notedto.NotesResponse, error) {
	notes, total, err := u.noteRepo.List(userID, folder, limit, offset)
	if err != nil {
		return nil, err
	}
	folders, err := u.noteRepo.Folders(userID)
	if err != nil {
		return nil, err
	}
	return &notedto.NotesResponse{Notes: notes, Total: total, Folders: folders}, nil
}

func (u *noteUsecase) AllNotes(userID string) ([]notedomain.Note, error) {
	return u.noteRepo.ListAll(userID)
}

func (u *noteUsecase) UpdateNote(userID, id string, req *notedto.NoteRequest) (*notedomain.Note, error) {
	note, err := u.GetNote(userID, id)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" && content == "" {
		return nil, notedomain.ErrNoteEmpty
	}
	note.Title = title
	note.Content = content
	note.Folder = strings.TrimSpace(req.Folder)
	if req.Tags != nil {
		note.Tags = normalizeTags(req.Tags)
	}
	if err := u.noteRepo.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (u *noteUsecase) DeleteNote(userID, id string) error {
	if _, err := u.GetNote(userID, id); err != nil {
		return err
	}
	return u.noteRepo.Delete(userID, id)
}
