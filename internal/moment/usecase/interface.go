package usecase

import (
	"context"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	"thoughtfolio-backend/internal/moment/domain"
	momentdto "thoughtfolio-backend/internal/moment/dto"
	"thoughtfolio-backend/pkg/ai"
)

// GemSource is the part of the thought store moments read from
type GemSource interface {
	ActiveCandidates(userID string) ([]ai.Candidate, error)
	FindByIDs(userID string, ids []string) ([]gemdomain.Gem, error)
}

type MomentUsecase interface {
	CreateMoment(ctx context.Context, userID string, req *momentdto.CreateMomentRequest) (*momentdto.MomentResponse, error)
	GetMoment(userID, id string) (*momentdto.MomentResponse, error)
	ListMoments(userID, status string, limit, offset int) (*momentdto.MomentsResponse, error)
	UpdateContext(ctx context.Context, userID, id, userContext string) (*momentdto.MomentResponse, error)
	UpdateStatus(userID, id string, status domain.MomentStatus) (*domain.Moment, error)
	RecordFeedback(userID, momentID, gemID string, helpful bool) error
	HasMomentForEvent(userID, eventID string) (bool, error)

	// MatchThoughts ranks client supplied candidates (rate limited)
	MatchThoughts(ctx context.Context, userID, description string, candidates []ai.Candidate) (*MatchResult, error)
}
