package repository

import (
	"errors"
	"time"

	gemdomain "thoughtfolio-backend/internal/gem/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormSourceRepository struct {
	db *gorm.DB
}

func NewSourceRepository(db *gorm.DB) SourceRepository {
	return &gormSourceRepository{db: db}
}

func (r *gormSourceRepository) Create(source *gemdomain.Source) error {
	if source.ID == "" {
		source.ID = uuid.New().String()
	}
	now := time.Now()
	source.CreatedAt = now
	source.UpdatedAt = now
	return r.db.Create(source).Error
}

func (r *gormSourceRepository) FindByID(userID, id string) (*gemdomain.Source, error) {
	var source gemdomain.Source
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &source, nil
}

func (r *gormSourceRepository) List(userID string) ([]gemdomain.Source, error) {
	var sources []gemdomain.Source
	err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&sources).Error
	return sources, err
}

func (r *gormSourceRepository) Update(source *gemdomain.Source) error {
	source.UpdatedAt = time.Now()
	return r.db.Save(source).Error
}

// Delete removes the source and detaches it from the user's thoughts
func (r *gormSourceRepository) Delete(userID, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&gemdomain.Gem{}).
			Where("user_id = ? AND source_id = ?", userID, id).
			Update("source_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&gemdomain.Source{}).Error
	})
}
