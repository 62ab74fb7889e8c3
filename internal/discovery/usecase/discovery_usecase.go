package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"thoughtfolio-backend/internal/discovery/domain"
	discoverydto "thoughtfolio-backend/internal/discovery/dto"
	"thoughtfolio-backend/internal/discovery/repository"
	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"
	"thoughtfolio-backend/pkg/ai"
	"thoughtfolio-backend/pkg/metrics"
	"thoughtfolio-backend/pkg/ratelimit"
)

const listLimit = 50

// GemCreator saves a discovery as a thought
type GemCreator interface {
	CreateGem(userID string, req *gemdto.CreateGemRequest) (*gemdomain.Gem, error)
}

type DiscoveryUsecase interface {
	Discover(ctx context.Context, userID string, req *discoverydto.DiscoverRequest) (*discoverydto.DiscoverResponse, error)
	List(userID, status string) ([]domain.Discovery, error)
	Save(userID, id string, req *discoverydto.SaveRequest) (*gemdomain.Gem, error)
	Skip(userID, id string) error
}

type discoveryUsecase struct {
	assistant ai.Service
	repo      repository.DiscoveryRepository
	gems      GemCreator
	limiter   ratelimit.Limiter
	timeout   time.Duration
}

// NewDiscoveryUsecase accepts a nil limiter to disable per-user limits
func NewDiscoveryUsecase(assistant ai.Service, repo repository.DiscoveryRepository, gems GemCreator, limiter ratelimit.Limiter, timeout time.Duration) DiscoveryUsecase {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &discoveryUsecase{
		assistant: assistant,
		repo:      repo,
		gems:      gems,
		limiter:   limiter,
		timeout:   timeout,
	}
}

// Discover tries a web grounded request first and falls back to the plain model
func (u *discoveryUsecase) Discover(ctx context.Context, userID string, req *discoverydto.DiscoverRequest) (*discoverydto.DiscoverResponse, error) {
	query := strings.TrimSpace(req.Query)
	slug := strings.TrimSpace(req.ContextSlug)
	if query == "" && slug == "" {
		return nil, domain.ErrQueryRequired
	}
	if slug == "" {
		slug = gemdomain.OtherContextSlug
	}
	if u.assistant == nil {
		return nil, domain.ErrAIUnavailable
	}

	if u.limiter != nil {
		res, err := u.limiter.Allow(ctx, userID)
		if err != nil {
			log.Printf("[DiscoveryUsecase] rate limiter error for user %s: %v", userID, err)
		} else if !res.Allowed {
			metrics.Get().RateLimitRejected.WithLabelValues("discovery").Inc()
			return nil, domain.ErrRateLimited
		}
	}

	grounded := true
	items, err := u.discover(ctx, query, slug, true)
	if err != nil {
		log.Printf("[DiscoveryUsecase] grounded discovery failed, retrying without search: %v", err)
		grounded = false
		items, err = u.discover(ctx, query, slug, false)
	}
	if err != nil {
		log.Printf("[DiscoveryUsecase] discovery failed for user %s: %v", userID, err)
		return nil, domain.ErrAIUnavailable
	}

	rows := make([]domain.Discovery, 0, len(items))
	for _, it := range items {
		rows = append(rows, domain.Discovery{
			UserID:      userID,
			Query:       query,
			Content:     strings.TrimSpace(it.Content),
			SourceTitle: strings.TrimSpace(it.SourceTitle),
			SourceURL:   strings.TrimSpace(it.SourceURL),
			ContextSlug: it.ContextSlug,
			Grounded:    grounded,
			Status:      domain.StatusNew,
		})
	}
	if err := u.repo.CreateBatch(rows); err != nil {
		return nil, err
	}
	return &discoverydto.DiscoverResponse{Discoveries: rows, Grounded: grounded}, nil
}

func (u *discoveryUsecase) discover(ctx context.Context, query, slug string, grounded bool) ([]ai.DiscoveryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	return u.assistant.Discover(ctx, query, slug, grounded)
}

func (u *discoveryUsecase) List(userID, status string) ([]domain.Discovery, error) {
	return u.repo.List(userID, domain.DiscoveryStatus(status), listLimit)
}

func (u *discoveryUsecase) pending(userID, id string) (*domain.Discovery, error) {
	d, err := u.repo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrDiscoveryNotFound
	}
	if d.Status != domain.StatusNew {
		return nil, domain.ErrAlreadyHandled
	}
	return d, nil
}

func (u *discoveryUsecase) Save(userID, id string, req *discoverydto.SaveRequest) (*gemdomain.Gem, error) {
	d, err := u.pending(userID, id)
	if err != nil {
		return nil, err
	}

	slug := d.ContextSlug
	if req != nil && strings.TrimSpace(req.ContextSlug) != "" {
		slug = strings.TrimSpace(req.ContextSlug)
	}
	gem, err := u.gems.CreateGem(userID, &gemdto.CreateGemRequest{
		Content:     d.Content,
		ContextSlug: slug,
		Source:      d.SourceTitle,
		SourceURL:   d.SourceURL,
	})
	if err != nil {
		return nil, err
	}

	d.Status = domain.StatusSaved
	d.GemID = &gem.ID
	if err := u.repo.Update(d); err != nil {
		return nil, err
	}
	return gem, nil
}

func (u *discoveryUsecase) Skip(userID, id string) error {
	d, err := u.pending(userID, id)
	if err != nil {
		return err
	}
	d.Status = domain.StatusSkipped
	return u.repo.Update(d)
}
