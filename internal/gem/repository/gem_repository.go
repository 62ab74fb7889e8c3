package repository

import (
	"errors"
	"time"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormGemRepository struct {
	db *gorm.DB
}

func NewGemRepository(db *gorm.DB) GemRepository {
	return &gormGemRepository{db: db}
}

func (r *gormGemRepository) Create(gem *gemdomain.Gem) error {
	if gem.ID == "" {
		gem.ID = uuid.New().String()
	}
	now := time.Now()
	gem.CreatedAt = now
	gem.UpdatedAt = now
	return r.db.Create(gem).Error
}

func (r *gormGemRepository) FindByID(userID, id string) (*gemdomain.Gem, error) {
	var gem gemdomain.Gem
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&gem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gem, nil
}

func (r *gormGemRepository) FindByIDs(userID string, ids []string) ([]gemdomain.Gem, error) {
	var gems []gemdomain.Gem
	if len(ids) == 0 {
		return gems, nil
	}
	err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&gems).Error
	return gems, err
}

func (r *gormGemRepository) List(userID string, filter gemdto.GemFilter) ([]gemdomain.Gem, int64, error) {
	var gems []gemdomain.Gem
	var total int64

	query := r.db.Model(&gemdomain.Gem{}).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ContextID != "" {
		query = query.Where("context_id = ?", filter.ContextID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	err := query.Order("created_at DESC").Find(&gems).Error
	return gems, total, err
}

func (r *gormGemRepository) ListByStatus(userID string, status gemdomain.GemStatus) ([]gemdomain.Gem, error) {
	var gems []gemdomain.Gem
	err := r.db.Where("user_id = ? AND status = ?", userID, status).
		Order("created_at DESC").Find(&gems).Error
	return gems, err
}

func (r *gormGemRepository) Update(gem *gemdomain.Gem) error {
	gem.UpdatedAt = time.Now()
	return r.db.Save(gem).Error
}

func (r *gormGemRepository) Delete(userID, id string) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&gemdomain.Gem{}).Error
}

func (r *gormGemRepository) CountActiveInContext(userID, contextID string) (int64, error) {
	var count int64
	err := r.db.Model(&gemdomain.Gem{}).
		Where("user_id = ? AND context_id = ? AND status = ?", userID, contextID, gemdomain.GemStatusActive).
		Count(&count).Error
	return count, err
}

func (r *gormGemRepository) CountInContext(userID, contextID string) (int64, error) {
	var count int64
	err := r.db.Model(&gemdomain.Gem{}).
		Where("user_id = ? AND context_id = ?", userID, contextID).
		Count(&count).Error
	return count, err
}

func (r *gormGemRepository) MoveContext(userID, fromContextID, toContextID string) error {
	return r.db.Model(&gemdomain.Gem{}).
		Where("user_id = ? AND context_id = ?", userID, fromContextID).
		Updates(map[string]interface{}{
			"context_id": toContextID,
			"updated_at": time.Now(),
		}).Error
}

func (r *gormGemRepository) NextToSurface(userID string) (*gemdomain.Gem, error) {
	var gem gemdomain.Gem
	err := r.db.Where("user_id = ? AND status = ?", userID, gemdomain.GemStatusActive).
		Order("CASE WHEN last_surfaced_at IS NULL THEN 0 ELSE 1 END, last_surfaced_at ASC, created_at ASC").
		First(&gem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gem, nil
}

func (r *gormGemRepository) MarkSurfaced(userID, id string, at time.Time) error {
	return r.db.Model(&gemdomain.Gem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("last_surfaced_at", at).Error
}

func (r *gormGemRepository) CreateCheckIn(checkIn *gemdomain.CheckIn) error {
	if checkIn.ID == "" {
		checkIn.ID = uuid.New().String()
	}
	checkIn.CreatedAt = time.Now()
	return r.db.Create(checkIn).Error
}
