package repository

import (
	"errors"
	"time"

	"thoughtfolio-backend/internal/discovery/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiscoveryRepository interface {
	CreateBatch(items []domain.Discovery) error
	FindByID(userID, id string) (*domain.Discovery, error)
	List(userID string, status domain.DiscoveryStatus, limit int) ([]domain.Discovery, error)
	Update(d *domain.Discovery) error
}

type discoveryRepository struct {
	db *gorm.DB
}

func NewDiscoveryRepository(db *gorm.DB) DiscoveryRepository {
	return &discoveryRepository{db: db}
}

func (r *discoveryRepository) CreateBatch(items []domain.Discovery) error {
	if len(items) == 0 {
		return nil
	}
	now := time.Now()
	for i := range items {
		items[i].ID = uuid.New().String()
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}
	return r.db.Create(&items).Error
}

func (r *discoveryRepository) FindByID(userID, id string) (*domain.Discovery, error) {
	var d domain.Discovery
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *discoveryRepository) List(userID string, status domain.DiscoveryStatus, limit int) ([]domain.Discovery, error) {
	query := r.db.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var items []domain.Discovery
	err := query.Order("created_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (r *discoveryRepository) Update(d *domain.Discovery) error {
	d.UpdatedAt = time.Now()
	return r.db.Save(d).Error
}
