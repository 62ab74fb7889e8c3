package repository

import (
	"time"

	"thoughtfolio-backend/internal/calendar/domain"
)

type ConnectionRepository interface {
	FindByUser(userID string) (*domain.CalendarConnection, error)
	Save(conn *domain.CalendarConnection) error
	ListActive() ([]domain.CalendarConnection, error)
	// Delete removes the connection and its cached events
	Delete(userID string) error
}

type EventRepository interface {
	// Upsert refreshes cached events keyed by external id, leaving moment_created untouched
	Upsert(events []domain.CalendarEvent) error
	DeleteEndedBefore(connectionID string, before time.Time) error
	ListUpcoming(userID string, from, to time.Time) ([]domain.CalendarEvent, error)
	// FindDue returns events without a moment that start in [from, to]
	FindDue(connectionID string, from, to time.Time) ([]domain.CalendarEvent, error)
	MarkMomentCreated(id string) error
}
