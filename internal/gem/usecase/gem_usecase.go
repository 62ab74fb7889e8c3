package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"
	"thoughtfolio-backend/internal/gem/repository"
	"thoughtfolio-backend/pkg/ai"
)

const indexTimeout = 30 * time.Second

type gemUsecase struct {
	gemRepo     repository.GemRepository
	contextRepo repository.ContextRepository
	contexts    ContextUsecase
	indexer     Indexer
	now         func() time.Time
}

func NewGemUsecase(gemRepo repository.GemRepository, contextRepo repository.ContextRepository, contexts ContextUsecase) GemUsecase {
	return &gemUsecase{
		gemRepo:     gemRepo,
		contextRepo: contextRepo,
		contexts:    contexts,
		now:         time.Now,
	}
}

func (u *gemUsecase) SetIndexer(indexer Indexer) {
	u.indexer = indexer
}

func (u *gemUsecase) CreateGem(userID string, req *gemdto.CreateGemRequest) (*gemdomain.Gem, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, gemdomain.ErrContentRequired
	}

	status := gemdomain.GemStatusActive
	if req.Status != "" {
		status = gemdomain.GemStatus(req.Status)
		if status != gemdomain.GemStatusActive && status != gemdomain.GemStatusPassive {
			return nil, gemdomain.ErrInvalidStatus
		}
	}

	ctx, err := u.resolveContext(userID, req.ContextID, req.ContextSlug)
	if err != nil {
		return nil, err
	}
	if status == gemdomain.GemStatusActive {
		if err := u.ensureRoom(userID, ctx); err != nil {
			return nil, err
		}
	}

	gem := &gemdomain.Gem{
		UserID:    userID,
		ContextID: ctx.ID,
		Content:   content,
		Source:    strings.TrimSpace(req.Source),
		SourceURL: strings.TrimSpace(req.SourceURL),
		SourceID:  req.SourceID,
		Status:    status,
	}
	if err := u.gemRepo.Create(gem); err != nil {
		return nil, err
	}

	u.index(gem, ctx.Slug)
	return gem, nil
}

func (u *gemUsecase) GetGem(userID, id string) (*gemdomain.Gem, error) {
	gem, err := u.gemRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if gem == nil {
		return nil, gemdomain.ErrGemNotFound
	}
	return gem, nil
}

func (u *gemUsecase) ListGems(userID string, filter gemdto.GemFilter) ([]gemdomain.Gem, int64, error) {
	if filter.Status != "" && !gemdomain.GemStatus(filter.Status).Valid() {
		return nil, 0, gemdomain.ErrInvalidStatus
	}
	return u.gemRepo.List(userID, filter)
}

func (u *gemUsecase) FindByIDs(userID string, ids []string) ([]gemdomain.Gem, error) {
	return u.gemRepo.FindByIDs(userID, ids)
}

func (u *gemUsecase) UpdateGem(userID, id string, req *gemdto.UpdateGemRequest) (*gemdomain.Gem, error) {
	gem, err := u.GetGem(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, gemdomain.ErrContentRequired
		}
		gem.Content = content
	}
	if req.Source != nil {
		gem.Source = strings.TrimSpace(*req.Source)
	}
	if req.SourceURL != nil {
		gem.SourceURL = strings.TrimSpace(*req.SourceURL)
	}

	target, err := u.contextFor(userID, gem.ContextID)
	if err != nil {
		return nil, err
	}
	moved := false
	if req.ContextID != nil && *req.ContextID != gem.ContextID {
		target, err = u.resolveContext(userID, *req.ContextID, "")
		if err != nil {
			return nil, err
		}
		moved = true
	}

	status := gem.Status
	if req.Status != nil {
		status = gemdomain.GemStatus(*req.Status)
		if !status.Valid() {
			return nil, gemdomain.ErrInvalidStatus
		}
	}

	// becoming active, or staying active in a new context, takes a slot
	if status == gemdomain.GemStatusActive && (gem.Status != gemdomain.GemStatusActive || moved) {
		if err := u.ensureRoom(userID, target); err != nil {
			return nil, err
		}
	}

	gem.ContextID = target.ID
	u.applyStatus(gem, status)

	if err := u.gemRepo.Update(gem); err != nil {
		return nil, err
	}
	u.index(gem, target.Slug)
	return gem, nil
}

// CheckIn logs an application or a skip. The fifth application graduates the thought.
func (u *gemUsecase) CheckIn(userID, id string, req *gemdto.CheckInRequest) (*gemdto.CheckInResponse, error) {
	if req.Outcome != gemdomain.CheckInApplied && req.Outcome != gemdomain.CheckInSkipped {
		return nil, gemdomain.ErrInvalidCheckIn
	}

	gem, err := u.GetGem(userID, id)
	if err != nil {
		return nil, err
	}
	if gem.Status != gemdomain.GemStatusActive && gem.Status != gemdomain.GemStatusPassive {
		return nil, gemdomain.ErrInvalidTransition
	}

	now := u.now()
	graduated := false
	if req.Outcome == gemdomain.CheckInApplied {
		gem.ApplicationCount++
		gem.LastAppliedAt = &now
		if gem.ApplicationCount >= gemdomain.GraduationThreshold {
			u.applyStatus(gem, gemdomain.GemStatusGraduated)
			graduated = true
		}
	} else {
		gem.SkipCount++
	}

	if err := u.gemRepo.Update(gem); err != nil {
		return nil, err
	}
	if err := u.gemRepo.CreateCheckIn(&gemdomain.CheckIn{
		UserID:     userID,
		GemID:      gem.ID,
		Outcome:    req.Outcome,
		Reflection: strings.TrimSpace(req.Reflection),
	}); err != nil {
		log.Printf("[GemUsecase] failed to log check-in for gem %s: %v", gem.ID, err)
	}

	if graduated {
		log.Printf("[GemUsecase] gem %s graduated after %d applications", gem.ID, gem.ApplicationCount)
	}
	return &gemdto.CheckInResponse{Gem: gem, Graduated: graduated}, nil
}

func (u *gemUsecase) Retire(userID, id string) (*gemdomain.Gem, error) {
	gem, err := u.GetGem(userID, id)
	if err != nil {
		return nil, err
	}
	if gem.Status == gemdomain.GemStatusRetired {
		return nil, gemdomain.ErrInvalidTransition
	}
	u.applyStatus(gem, gemdomain.GemStatusRetired)
	if err := u.gemRepo.Update(gem); err != nil {
		return nil, err
	}
	return gem, nil
}

// Restore brings a retired or graduated thought back to the active list
func (u *gemUsecase) Restore(userID, id string) (*gemdomain.Gem, error) {
	gem, err := u.GetGem(userID, id)
	if err != nil {
		return nil, err
	}
	if gem.Status != gemdomain.GemStatusRetired && gem.Status != gemdomain.GemStatusGraduated {
		return nil, gemdomain.ErrInvalidTransition
	}

	ctx, err := u.contextFor(userID, gem.ContextID)
	if err != nil {
		return nil, err
	}
	if err := u.ensureRoom(userID, ctx); err != nil {
		return nil, err
	}

	u.applyStatus(gem, gemdomain.GemStatusActive)
	if err := u.gemRepo.Update(gem); err != nil {
		return nil, err
	}
	return gem, nil
}

func (u *gemUsecase) Graduate(userID, id string) (*gemdomain.Gem, error) {
	gem, err := u.GetGem(userID, id)
	if err != nil {
		return nil, err
	}
	if gem.Status != gemdomain.GemStatusActive && gem.Status != gemdomain.GemStatusPassive {
		return nil, gemdomain.ErrInvalidTransition
	}
	u.applyStatus(gem, gemdomain.GemStatusGraduated)
	if err := u.gemRepo.Update(gem); err != nil {
		return nil, err
	}
	return gem, nil
}

// Release permanently deletes a thought
func (u *gemUsecase) Release(userID, id string) error {
	gem, err := u.GetGem(userID, id)
	if err != nil {
		return err
	}
	if err := u.gemRepo.Delete(userID, gem.ID); err != nil {
		return err
	}

	if u.indexer != nil {
		go func(gemID string) {
			ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
			defer cancel()
			if err := u.indexer.DeleteGem(ctx, gemID); err != nil {
				log.Printf("[GemUsecase] failed to remove gem %s from index: %v", gemID, err)
			}
		}(gem.ID)
	}
	return nil
}

// DailyThought picks the active thought surfaced least recently and stamps it
func (u *gemUsecase) DailyThought(userID string) (*gemdomain.Gem, error) {
	gem, err := u.gemRepo.NextToSurface(userID)
	if err != nil || gem == nil {
		return nil, err
	}
	now := u.now()
	if err := u.gemRepo.MarkSurfaced(userID, gem.ID, now); err != nil {
		return nil, err
	}
	gem.LastSurfacedAt = &now
	return gem, nil
}

func (u *gemUsecase) ActiveCandidates(userID string) ([]ai.Candidate, error) {
	gems, err := u.gemRepo.ListByStatus(userID, gemdomain.GemStatusActive)
	if err != nil {
		return nil, err
	}

	contexts, err := u.contextRepo.List(userID)
	if err != nil {
		return nil, err
	}
	slugs := make(map[string]string, len(contexts))
	for _, c := range contexts {
		slugs[c.ID] = c.Slug
	}

	candidates := make([]ai.Candidate, 0, len(gems))
	for _, g := range gems {
		candidates = append(candidates, ai.Candidate{ID: g.ID, Content: g.Content, ContextTag: slugs[g.ContextID]})
	}
	return candidates, nil
}

func (u *gemUsecase) applyStatus(gem *gemdomain.Gem, status gemdomain.GemStatus) {
	if gem.Status == status {
		return
	}
	now := u.now()
	switch status {
	case gemdomain.GemStatusRetired:
		gem.RetiredAt = &now
	case gemdomain.GemStatusGraduated:
		gem.GraduatedAt = &now
	case gemdomain.GemStatusActive, gemdomain.GemStatusPassive:
		gem.RetiredAt = nil
	}
	gem.Status = status
}

// resolveContext picks the context by id, then slug, then falls back to "other"
func (u *gemUsecase) resolveContext(userID, contextID, slug string) (*gemdomain.Context, error) {
	if contextID != "" {
		return u.contextFor(userID, contextID)
	}
	if slug == "" {
		slug = gemdomain.OtherContextSlug
	}
	return u.contexts.GetContextBySlug(userID, slug)
}

func (u *gemUsecase) contextFor(userID, contextID string) (*gemdomain.Context, error) {
	if contextID == "" {
		return u.contexts.GetContextBySlug(userID, gemdomain.OtherContextSlug)
	}
	c, err := u.contextRepo.FindByID(userID, contextID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, gemdomain.ErrContextNotFound
	}
	return c, nil
}

func (u *gemUsecase) ensureRoom(userID string, c *gemdomain.Context) error {
	count, err := u.gemRepo.CountActiveInContext(userID, c.ID)
	if err != nil {
		return err
	}
	if count >= int64(c.ThoughtLimit) {
		return gemdomain.ErrContextFull
	}
	return nil
}

func (u *gemUsecase) index(gem *gemdomain.Gem, contextSlug string) {
	if u.indexer == nil {
		return
	}
	go func(userID, gemID, content string) {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()
		if err := u.indexer.UpsertGem(ctx, userID, gemID, contextSlug, content); err != nil {
			log.Printf("[GemUsecase] failed to index gem %s: %v", gemID, err)
		}
	}(gem.UserID, gem.ID, gem.Content)
}
