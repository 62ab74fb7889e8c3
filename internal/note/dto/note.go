package dto

import notedomain "thoughtfolio-backend/internal/note/domain"

type NoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Folder  string   `json:"folder"`
	Tags    []string `json:"tags"`
}

type NotesResponse struct {
	Notes   []notedomain.Note `json:"notes"`
	Total   int64             `json:"total"`
	Folders []string          `json:"folders"`
}
