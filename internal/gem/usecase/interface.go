package usecase

import (
	"context"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"
	"thoughtfolio-backend/pkg/ai"
)

// Indexer keeps an external search index in step with thoughts
type Indexer interface {
	UpsertGem(ctx context.Context, userID, gemID, contextSlug, content string) error
	DeleteGem(ctx context.Context, gemID string) error
}

type GemUsecase interface {
	CreateGem(userID string, req *gemdto.CreateGemRequest) (*gemdomain.Gem, error)
	GetGem(userID, id string) (*gemdomain.Gem, error)
	ListGems(userID string, filter gemdto.GemFilter) ([]gemdomain.Gem, int64, error)
	FindByIDs(userID string, ids []string) ([]gemdomain.Gem, error)
	UpdateGem(userID, id string, req *gemdto.UpdateGemRequest) (*gemdomain.Gem, error)

	CheckIn(userID, id string, req *gemdto.CheckInRequest) (*gemdto.CheckInResponse, error)
	Retire(userID, id string) (*gemdomain.Gem, error)
	Restore(userID, id string) (*gemdomain.Gem, error)
	Graduate(userID, id string) (*gemdomain.Gem, error)
	Release(userID, id string) error

	DailyThought(userID string) (*gemdomain.Gem, error)

	// ActiveCandidates returns the user's active thoughts shaped for the moment matcher
	ActiveCandidates(userID string) ([]ai.Candidate, error)

	SetIndexer(indexer Indexer)
}

type ContextUsecase interface {
	EnsureDefaults(userID string) error
	ListContexts(userID string) ([]gemdto.ContextResponse, error)
	GetContext(userID, id string) (*gemdto.ContextResponse, error)
	GetContextBySlug(userID, slug string) (*gemdomain.Context, error)
	CreateContext(userID string, req *gemdto.CreateContextRequest) (*gemdomain.Context, error)
	UpdateContext(userID, id string, req *gemdto.UpdateContextRequest) (*gemdomain.Context, error)
	DeleteContext(userID, id string) error
}

type SourceUsecase interface {
	CreateSource(userID string, req *gemdto.SourceRequest) (*gemdomain.Source, error)
	ListSources(userID string) ([]gemdomain.Source, error)
	GetSource(userID, id string) (*gemdomain.Source, error)
	UpdateSource(userID, id string, req *gemdto.SourceRequest) (*gemdomain.Source, error)
	DeleteSource(userID, id string) error
}
