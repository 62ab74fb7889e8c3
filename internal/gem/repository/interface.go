package repository

import (
	"time"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"
)

// GemRepository defines data access for thoughts. Every query is scoped by user id.
type GemRepository interface {
	Create(gem *gemdomain.Gem) error
	FindByID(userID, id string) (*gemdomain.Gem, error)
	FindByIDs(userID string, ids []string) ([]gemdomain.Gem, error)
	List(userID string, filter gemdto.GemFilter) ([]gemdomain.Gem, int64, error)
	ListByStatus(userID string, status gemdomain.GemStatus) ([]gemdomain.Gem, error)
	Update(gem *gemdomain.Gem) error
	Delete(userID, id string) error

	CountActiveInContext(userID, contextID string) (int64, error)
	CountInContext(userID, contextID string) (int64, error)
	MoveContext(userID, fromContextID, toContextID string) error

	// NextToSurface returns the active thought surfaced least recently, never-surfaced first
	NextToSurface(userID string) (*gemdomain.Gem, error)
	MarkSurfaced(userID, id string, at time.Time) error

	CreateCheckIn(checkIn *gemdomain.CheckIn) error
}

type ContextRepository interface {
	Create(ctx *gemdomain.Context) error
	// CreateDefaults inserts the default contexts, skipping slugs the user already has
	CreateDefaults(userID string, contexts []gemdomain.Context) error
	FindByID(userID, id string) (*gemdomain.Context, error)
	FindBySlug(userID, slug string) (*gemdomain.Context, error)
	List(userID string) ([]gemdomain.Context, error)
	Update(ctx *gemdomain.Context) error
	Delete(userID, id string) error
}

type SourceRepository interface {
	Create(source *gemdomain.Source) error
	FindByID(userID, id string) (*gemdomain.Source, error)
	List(userID string) ([]gemdomain.Source, error)
	Update(source *gemdomain.Source) error
	Delete(userID, id string) error
}
