package repository

import (
	"time"

	"thoughtfolio-backend/internal/moment/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormLearningRepository struct {
	db *gorm.DB
}

func NewLearningRepository(db *gorm.DB) LearningRepository {
	return &gormLearningRepository{db: db}
}

// IncrementHelpful runs INSERT ... ON CONFLICT DO UPDATE per pattern so concurrent
// feedback for the same key is counted exactly once each.
func (r *gormLearningRepository) IncrementHelpful(userID, gemID string, patterns []domain.Pattern, at time.Time) error {
	if len(patterns) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range patterns {
			row := domain.MomentLearning{
				ID:            uuid.New().String(),
				UserID:        userID,
				PatternType:   p.Type,
				PatternKey:    p.Key,
				GemID:         gemID,
				HelpfulCount:  1,
				LastHelpfulAt: &at,
				CreatedAt:     at,
				UpdatedAt:     at,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "pattern_type"}, {Name: "pattern_key"}, {Name: "gem_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"helpful_count":   gorm.Expr("moment_learnings.helpful_count + 1"),
					"last_helpful_at": at,
					"updated_at":      at,
				}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// IncrementNotHelpful bumps every learning row that points at the thought
func (r *gormLearningRepository) IncrementNotHelpful(userID, gemID string) (int64, error) {
	res := r.db.Model(&domain.MomentLearning{}).
		Where("user_id = ? AND gem_id = ?", userID, gemID).
		Updates(map[string]interface{}{
			"not_helpful_count": gorm.Expr("not_helpful_count + 1"),
			"updated_at":        time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *gormLearningRepository) FindEstablished(userID string, minHelpful int) ([]domain.MomentLearning, error) {
	var rows []domain.MomentLearning
	err := r.db.Where("user_id = ? AND helpful_count >= ?", userID, minHelpful).Find(&rows).Error
	return rows, err
}
