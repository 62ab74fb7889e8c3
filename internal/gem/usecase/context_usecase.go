package usecase

import (
	"regexp"
	"strings"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"
	"thoughtfolio-backend/internal/gem/repository"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func validThoughtLimit(limit int) bool {
	return limit >= gemdomain.MinThoughtLimit && limit <= gemdomain.MaxThoughtLimit
}

type contextUsecase struct {
	contextRepo repository.ContextRepository
	gemRepo     repository.GemRepository
}

func NewContextUsecase(contextRepo repository.ContextRepository, gemRepo repository.GemRepository) ContextUsecase {
	return &contextUsecase{contextRepo: contextRepo, gemRepo: gemRepo}
}

func (u *contextUsecase) EnsureDefaults(userID string) error {
	return u.contextRepo.CreateDefaults(userID, gemdomain.DefaultContexts)
}

func (u *contextUsecase) ListContexts(userID string) ([]gemdto.ContextResponse, error) {
	if err := u.EnsureDefaults(userID); err != nil {
		return nil, err
	}
	contexts, err := u.contextRepo.List(userID)
	if err != nil {
		return nil, err
	}

	result := make([]gemdto.ContextResponse, 0, len(contexts))
	for _, c := range contexts {
		resp, err := u.withCounts(userID, c)
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

func (u *contextUsecase) GetContext(userID, id string) (*gemdto.ContextResponse, error) {
	c, err := u.contextRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, gemdomain.ErrContextNotFound
	}
	return u.withCounts(userID, *c)
}

func (u *contextUsecase) GetContextBySlug(userID, slug string) (*gemdomain.Context, error) {
	if err := u.EnsureDefaults(userID); err != nil {
		return nil, err
	}
	c, err := u.contextRepo.FindBySlug(userID, slug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, gemdomain.ErrContextNotFound
	}
	return c, nil
}

func (u *contextUsecase) withCounts(userID string, c gemdomain.Context) (*gemdto.ContextResponse, error) {
	active, err := u.gemRepo.CountActiveInContext(userID, c.ID)
	if err != nil {
		return nil, err
	}
	total, err := u.gemRepo.CountInContext(userID, c.ID)
	if err != nil {
		return nil, err
	}
	return &gemdto.ContextResponse{Context: c, ActiveCount: active, TotalCount: total}, nil
}

func (u *contextUsecase) CreateContext(userID string, req *gemdto.CreateContextRequest) (*gemdomain.Context, error) {
	limit := gemdomain.DefaultThoughtLimit
	if req.ThoughtLimit != nil {
		if !validThoughtLimit(*req.ThoughtLimit) {
			return nil, gemdomain.ErrInvalidThoughtLimit
		}
		limit = *req.ThoughtLimit
	}

	slug := slugify(req.Name)
	if slug == "" {
		return nil, gemdomain.ErrContentRequired
	}
	if err := u.EnsureDefaults(userID); err != nil {
		return nil, err
	}
	existing, err := u.contextRepo.FindBySlug(userID, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, gemdomain.ErrDuplicateSlug
	}

	contexts, err := u.contextRepo.List(userID)
	if err != nil {
		return nil, err
	}

	c := &gemdomain.Context{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Slug:         slug,
		Color:        req.Color,
		Icon:         req.Icon,
		ThoughtLimit: limit,
		SortOrder:    len(contexts),
	}
	if err := u.contextRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *contextUsecase) UpdateContext(userID, id string, req *gemdto.UpdateContextRequest) (*gemdomain.Context, error) {
	c, err := u.contextRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, gemdomain.ErrContextNotFound
	}

	if req.ThoughtLimit != nil {
		if !validThoughtLimit(*req.ThoughtLimit) {
			return nil, gemdomain.ErrInvalidThoughtLimit
		}
		c.ThoughtLimit = *req.ThoughtLimit
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		c.Name = strings.TrimSpace(*req.Name)
		// default slugs are referenced by captures and moments
		if !c.IsDefault {
			slug := slugify(c.Name)
			if slug != c.Slug {
				existing, err := u.contextRepo.FindBySlug(userID, slug)
				if err != nil {
					return nil, err
				}
				if existing != nil {
					return nil, gemdomain.ErrDuplicateSlug
				}
				c.Slug = slug
			}
		}
	}
	if req.Color != nil {
		c.Color = *req.Color
	}
	if req.Icon != nil {
		c.Icon = *req.Icon
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}

	if err := u.contextRepo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteContext removes a custom context and moves its thoughts to "other"
func (u *contextUsecase) DeleteContext(userID, id string) error {
	c, err := u.contextRepo.FindByID(userID, id)
	if err != nil {
		return err
	}
	if c == nil {
		return gemdomain.ErrContextNotFound
	}
	if c.IsDefault {
		return gemdomain.ErrDefaultContext
	}

	other, err := u.GetContextBySlug(userID, gemdomain.OtherContextSlug)
	if err != nil {
		return err
	}
	if err := u.gemRepo.MoveContext(userID, c.ID, other.ID); err != nil {
		return err
	}
	return u.contextRepo.Delete(userID, c.ID)
}
