package repository

import (
	"errors"
	"time"

	"thoughtfolio-backend/internal/capture/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageRepository interface {
	// Consume atomically adds one extraction for the day and returns the new count
	Consume(userID, date string, tokens int) (int, error)
	Get(userID, date string) (*domain.AIUsage, error)
	LogExtraction(entry *domain.AIExtraction) error
	RecentExtractions(userID string, limit int) ([]domain.AIExtraction, error)
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (r *usageRepository) Consume(userID, date string, tokens int) (int, error) {
	var count int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		row := domain.AIUsage{
			ID:              uuid.New().String(),
			UserID:          userID,
			Date:            date,
			ExtractionCount: 1,
			TokensEstimate:  tokens,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"extraction_count": gorm.Expr("ai_usage.extraction_count + 1"),
				"tokens_estimate":  gorm.Expr("ai_usage.tokens_estimate + ?", tokens),
				"updated_at":       now,
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Model(&domain.AIUsage{}).
			Where("user_id = ? AND date = ?", userID, date).
			Pluck("extraction_count", &count).Error
	})
	return count, err
}

func (r *usageRepository) Get(userID, date string) (*domain.AIUsage, error) {
	var usage domain.AIUsage
	if err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&usage).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usage, nil
}

func (r *usageRepository) LogExtraction(entry *domain.AIExtraction) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.db.Create(entry).Error
}

func (r *usageRepository) RecentExtractions(userID string, limit int) ([]domain.AIExtraction, error) {
	var rows []domain.AIExtraction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
