package domain

import (
	"errors"
	"time"

	"thoughtfolio-backend/pkg/database"
)

var (
	ErrNoteNotFound = errors.New("Note not found")
	ErrNoteEmpty    = errors.New("Title or content is required")
)

type Note struct {
	ID        string               `json:"id" gorm:"primaryKey"`
	UserID    string               `json:"user_id" gorm:"index;not null"`
	Title     string               `json:"title"`
	Content   string               `json:"content" gorm:"type:text"`
	Folder    string               `json:"folder,omitempty" gorm:"index"`
	Tags      database.StringArray `json:"tags" gorm:"type:text"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
