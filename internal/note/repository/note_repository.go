package repository

import (
	"errors"
	"time"

	notedomain "thoughtfolio-backend/internal/note/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepository interface {
	Create(note *notedomain.Note) error
	FindByID(userID, id string) (*notedomain.Note, error)
	List(userID, folder string, limit, offset int) ([]notedomain.Note, int64, error)
	ListAll(userID string) ([]notedomain.Note, error)
	Folders(userID string) ([]string, error)
	Update(note *notedomain.Note) error
	Delete(userID, id string) error
}

type gormNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &gormNoteRepository{db: db}
}

func (r *gormNoteRepository) Create(note *notedomain.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now
	return r.db.Create(note).Error
}

func (r *gormNoteRepository) FindByID(userID, id string) (*notedomain.Note, error) {
	var note notedomain.Note
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *gormNoteRepository) List(userID, folder string, limit, offset int) ([]notedomain.Note, int64, error) {
	var notes []notedomain.Note
	var total int64

	query := r.db.Model(&notedomain.Note{}).Where("user_id = ?", userID)
	if folder != "" {
		query = query.Where("folder = ?", folder)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&notes).Error
	return notes, total, err
}

func (r *gormNoteRepository) ListAll(userID string) ([]notedomain.Note, error) {
	var notes []notedomain.Note
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&notes).Error
	return notes, err
}

func (r *gormNoteRepository) Folders(userID string) ([]string, error) {
	var folders []string
	err := r.db.Model(&notedomain.Note{}).
		Where("user_id = ? AND folder <> ''", userID).
		Distinct().Order("folder ASC").Pluck("folder", &folders).Error
	return folders, err
}

func (r *gormNoteRepository) Update(note *notedomain.Note) error {
	note.UpdatedAt = time.Now()
	return r.db.Save(note).Error
}

func (r *gormNoteRepository) Delete(userID, id string) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&notedomain.Note{}).Error
}
