package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"thoughtfolio-backend/internal/discovery/domain"
	discoverydto "thoughtfolio-backend/internal/discovery/dto"
	"thoughtfolio-backend/internal/discovery/repository"
	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"
	"thoughtfolio-backend/pkg/ai"
	"thoughtfolio-backend/pkg/database"
	"thoughtfolio-backend/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDiscoverer struct {
	groundedErr error
	plainErr    error
	calls       []bool
}

func (s *stubDiscoverer) MatchThoughts(context.Context, string, []ai.Candidate) ([]ai.ThoughtMatch, error) {
	return nil, errors.New("not used")
}

func (s *stubDiscoverer) ExtractCapture(context.Context, ai.CaptureInput, []string) ([]ai.CaptureItem, error) {
	return nil, errors.New("not used")
}

func (s *stubDiscoverer) Discover(_ context.Context, query, slug string, grounded bool) ([]ai.DiscoveryItem, error) {
	s.calls = append(s.calls, grounded)
	if grounded && s.groundedErr != nil {
		return nil, s.groundedErr
	}
	if !grounded && s.plainErr != nil {
		return nil, s.plainErr
	}
	return []ai.DiscoveryItem{
		{Content: "Name the emotion to tame it", SourceTitle: "Dan Siegel", ContextSlug: slug},
		{Content: "Pause before replying", SourceTitle: "Nonviolent Communication", SourceURL: "https://example.com/nvc", ContextSlug: slug},
	}, nil
}

type stubGems struct {
	created []gemdto.CreateGemRequest
	err     error
}

func (s *stubGems) CreateGem(userID string, req *gemdto.CreateGemRequest) (*gemdomain.Gem, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, *req)
	return &gemdomain.Gem{ID: "gem-1", UserID: userID, Content: req.Content}, nil
}

func newDiscovery(t *testing.T, svc ai.Service, gems GemCreator, limiter ratelimit.Limiter) DiscoveryUsecase {
	t.Helper()
	db, err := database.OpenInMemory(&domain.Discovery{})
	require.NoError(t, err)
	return NewDiscoveryUsecase(svc, repository.NewDiscoveryRepository(db), gems, limiter, time.Second)
}

func TestDiscover_Grounded(t *testing.T) {
	svc := &stubDiscoverer{}
	uc := newDiscovery(t, svc, &stubGems{}, nil)

	resp, err := uc.Discover(context.Background(), "u1", &discoverydto.DiscoverRequest{Query: "staying calm", ContextSlug: "conflict"})
	require.NoError(t, err)
	assert.True(t, resp.Grounded)
	assert.Equal(t, []bool{true}, svc.calls)
	require.Len(t, resp.Discoveries, 2)
	assert.Equal(t, domain.StatusNew, resp.Discoveries[0].Status)
	assert.Equal(t, "conflict", resp.Discoveries[0].ContextSlug)
	assert.NotEmpty(t, resp.Discoveries[0].ID)
}

func TestDiscover_FallsBackToPlain(t *testing.T) {
	svc := &stubDiscoverer{groundedErr: errors.New("tool not supported")}
	uc := newDiscovery(t, svc, &stubGems{}, nil)

	resp, err := uc.Discover(context.Background(), "u1", &discoverydto.DiscoverRequest{Query: "focus"})
	require.NoError(t, err)
	assert.False(t, resp.Grounded)
	assert.Equal(t, []bool{true, false}, svc.calls)
	assert.Equal(t, "other", resp.Discoveries[0].ContextSlug)

	svc = &stubDiscoverer{groundedErr: errors.New("down"), plainErr: errors.New("down")}
	uc = newDiscovery(t, svc, &stubGems{}, nil)
	_, err = uc.Discover(context.Background(), "u1", &discoverydto.DiscoverRequest{Query: "focus"})
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)

	_, err = uc.Discover(context.Background(), "u1", &discoverydto.DiscoverRequest{})
	assert.ErrorIs(t, err, domain.ErrQueryRequired)
}

func TestDiscover_RateLimited(t *testing.T) {
	uc := newDiscovery(t, &stubDiscoverer{}, &stubGems{}, ratelimit.NewMemoryLimiter(1, time.Hour))

	_, err := uc.Discover(context.Background(), "u1", &discoverydto.DiscoverRequest{Query: "focus"})
	require.NoError(t, err)
	_, err = uc.Discover(context.Background(), "u1", &discoverydto.DiscoverRequest{Query: "focus"})
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestSaveAndSkip(t *testing.T) {
	gems := &stubGems{}
	uc := newDiscovery(t, &stubDiscoverer{}, gems, nil)

	resp, err := uc.Discover(context.Background(), "u1", &discoverydto.DiscoverRequest{Query: "calm", ContextSlug: "conflict"})
	require.NoError(t, err)
	first, second := resp.Discoveries[0], resp.Discoveries[1]

	gem, err := uc.Save("u1", second.ID, &discoverydto.SaveRequest{ContextSlug: "feedback"})
	require.NoError(t, err)
	assert.Equal(t, "gem-1", gem.ID)
	require.Len(t, gems.created, 1)
	assert.Equal(t, "Pause before replying", gems.created[0].Content)
	assert.Equal(t, "feedback", gems.created[0].ContextSlug)
	assert.Equal(t, "https://example.com/nvc", gems.created[0].SourceURL)

	_, err = uc.Save("u1", second.ID, nil)
	assert.ErrorIs(t, err, domain.ErrAlreadyHandled)

	require.NoError(t, uc.Skip("u1", first.ID))
	assert.ErrorIs(t, uc.Skip("u1", first.ID), domain.ErrAlreadyHandled)
	assert.ErrorIs(t, uc.Skip("u2", first.ID), domain.ErrDiscoveryNotFound)

	saved, err := uc.List("u1", "saved")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.NotNil(t, saved[0].GemID)
	assert.Equal(t, "gem-1", *saved[0].GemID)
}

func TestSave_ContextFullKeepsDiscoveryPending(t *testing.T) {
	gems := &stubGems{err: gemdomain.ErrContextFull}
	uc := newDiscovery(t, &stubDiscoverer{}, gems, nil)

	resp, err := uc.Discover(context.Background(), "u1", &discoverydto.DiscoverRequest{Query: "calm"})
	require.NoError(t, err)

	_, err = uc.Save("u1", resp.Discoveries[0].ID, nil)
	assert.ErrorIs(t, err, gemdomain.ErrContextFull)

	pending, err := uc.List("u1", "new")
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}
