package repository

import (
	"time"

	"thoughtfolio-backend/internal/calendar/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Upsert(events []domain.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}
	now := time.Now()
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.New().String()
		}
		events[i].CreatedAt = now
		events[i].UpdatedAt = now
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "connection_id"}, {Name: "external_event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "start_time", "end_time", "attendee_count", "is_recurring", "updated_at",
		}),
	}).CreateInBatches(&events, 100).Error
}

func (r *eventRepository) DeleteEndedBefore(connectionID string, before time.Time) error {
	return r.db.Where("connection_id = ? AND end_time < ?", connectionID, before).
		Delete(&domain.CalendarEvent{}).Error
}

func (r *eventRepository) ListUpcoming(userID string, from, to time.Time) ([]domain.CalendarEvent, error) {
	var events []domain.CalendarEvent
	err := r.db.Where("user_id = ? AND start_time >= ? AND start_time <= ?", userID, from, to).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) FindDue(connectionID string, from, to time.Time) ([]domain.CalendarEvent, error) {
	var events []domain.CalendarEvent
	err := r.db.Where("connection_id = ? AND moment_created = ?", connectionID, false).
		Where("start_time >= ? AND start_time <= ?", from, to).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) MarkMomentCreated(id string) error {
	return r.db.Model(&domain.CalendarEvent{}).Where("id = ?", id).
		Updates(map[string]interface{}{"moment_created": true, "updated_at": time.Now()}).Error
}
