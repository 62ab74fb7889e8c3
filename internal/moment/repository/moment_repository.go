package repository

import (
	"errors"
	"strings"
	"time"

	"thoughtfolio-backend/internal/moment/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormMomentRepository struct {
	db *gorm.DB
}

func NewMomentRepository(db *gorm.DB) MomentRepository {
	return &gormMomentRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *gormMomentRepository) Create(moment *domain.Moment) error {
	if moment.ID == "" {
		moment.ID = uuid.New().String()
	}
	if moment.CreatedAt.IsZero() {
		moment.CreatedAt = time.Now()
	}
	moment.UpdatedAt = time.Now()
	return r.db.Create(moment).Error
}

func (r *gormMomentRepository) FindByID(userID, id string) (*domain.Moment, error) {
	var moment domain.Moment
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&moment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &moment, nil
}

func (r *gormMomentRepository) List(userID string, status domain.MomentStatus, limit, offset int) ([]domain.Moment, int64, error) {
	var moments []domain.Moment
	var total int64

	query := r.db.Model(&domain.Moment{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&moments).Error
	return moments, total, err
}

func (r *gormMomentRepository) Update(moment *domain.Moment) error {
	moment.UpdatedAt = time.Now()
	return r.db.Save(moment).Error
}

func (r *gormMomentRepository) FindByEventIDPrefix(userID, baseID, excludeEventID, excludeMomentID string) (*domain.Moment, error) {
	var moment domain.Moment
	err := r.db.Where("user_id = ? AND calendar_event_id LIKE ? ESCAPE '\\'", userID, likeEscaper.Replace(baseID)+"%").
		Where("calendar_event_id <> ? AND id <> ?", excludeEventID, excludeMomentID).
		Order("created_at DESC").
		First(&moment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &moment, nil
}

func (r *gormMomentRepository) RecentTitled(userID, excludeMomentID string, limit int) ([]domain.Moment, error) {
	var moments []domain.Moment
	err := r.db.Where("user_id = ? AND id <> ?", userID, excludeMomentID).
		Where("calendar_event_title IS NOT NULL AND calendar_event_title <> ''").
		Order("created_at DESC").
		Limit(limit).
		Find(&moments).Error
	return moments, err
}

func (r *gormMomentRepository) ExistsForEvent(userID, eventID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Moment{}).
		Where("user_id = ? AND calendar_event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

// SaveMatches inserts matches, ignoring thoughts already matched to the moment
func (r *gormMomentRepository) SaveMatches(matches []domain.MomentGem) error {
	if len(matches) == 0 {
		return nil
	}
	now := time.Now()
	for i := range matches {
		if matches[i].ID == "" {
			matches[i].ID = uuid.New().String()
		}
		matches[i].CreatedAt = now
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "moment_id"}, {Name: "gem_id"}},
		DoNothing: true,
	}).Create(&matches).Error
}

func (r *gormMomentRepository) ListMatches(momentID string) ([]domain.MomentGem, error) {
	var matches []domain.MomentGem
	err := r.db.Where("moment_id = ?", momentID).
		Order("relevance_score DESC, created_at ASC").
		Find(&matches).Error
	return matches, err
}

func (r *gormMomentRepository) FindMatch(momentID, gemID string) (*domain.MomentGem, error) {
	var match domain.MomentGem
	if err := r.db.Where("moment_id = ? AND gem_id = ?", momentID, gemID).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

func (r *gormMomentRepository) MarkFeedback(matchID string, helpful bool) (bool, error) {
	result := r.db.Model(&domain.MomentGem{}).
		Where("id = ? AND (was_helpful IS NULL OR was_helpful <> ?)", matchID, helpful).
		Updates(map[string]interface{}{"was_helpful": helpful, "was_reviewed": true})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *gormMomentRepository) DeleteUnreviewedMatches(momentID string) error {
	return r.db.Where("moment_id = ? AND was_reviewed = ?", momentID, false).Delete(&domain.MomentGem{}).Error
}

func (r *gormMomentRepository) HelpfulGemIDs(momentID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&domain.MomentGem{}).
		Where("moment_id = ? AND was_helpful = ?", momentID, true).
		Order("relevance_score DESC").
		Pluck("gem_id", &ids).Error
	return ids, err
}
