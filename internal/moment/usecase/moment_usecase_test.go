package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	"thoughtfolio-backend/internal/moment/domain"
	momentdto "thoughtfolio-backend/internal/moment/dto"
	"thoughtfolio-backend/internal/moment/repository"
	"thoughtfolio-backend/pkg/ai"
	"thoughtfolio-backend/pkg/database"
	"thoughtfolio-backend/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubAI struct {
	mu      sync.Mutex
	calls   int
	matches []ai.ThoughtMatch
	err     error
}

func (s *stubAI) MatchThoughts(_ context.Context, _ string, candidates []ai.Candidate) ([]ai.ThoughtMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	known := make(map[string]bool)
	for _, c := range candidates {
		known[c.ID] = true
	}
	var out []ai.ThoughtMatch
	for _, m := range s.matches {
		if known[m.GemID] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubAI) ExtractCapture(context.Context, ai.CaptureInput, []string) ([]ai.CaptureItem, error) {
	return nil, errors.New("not used")
}

func (s *stubAI) Discover(context.Context, string, string, bool) ([]ai.DiscoveryItem, error) {
	return nil, errors.New("not used")
}

type stubGems struct {
	gems []gemdomain.Gem
}

func (s *stubGems) ActiveCandidates(string) ([]ai.Candidate, error) {
	out := make([]ai.Candidate, 0, len(s.gems))
	for _, g := range s.gems {
		if g.Status == gemdomain.GemStatusActive {
			out = append(out, ai.Candidate{ID: g.ID, Content: g.Content, ContextTag: "meetings"})
		}
	}
	return out, nil
}

func (s *stubGems) FindByIDs(_ string, ids []string) ([]gemdomain.Gem, error) {
	want := make(map[string]bool)
	for _, id := range ids {
		want[id] = true
	}
	var out []gemdomain.Gem
	for _, g := range s.gems {
		if want[g.ID] {
			out = append(out, g)
		}
	}
	return out, nil
}

type fixture struct {
	db        *gorm.DB
	moments   repository.MomentRepository
	learnings repository.LearningRepository
	learning  *LearningService
	ai        *stubAI
	gems      *stubGems
	usecase   MomentUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenInMemory(&domain.Moment{}, &domain.MomentGem{}, &domain.MomentLearning{})
	require.NoError(t, err)

	f := &fixture{
		db:        db,
		moments:   repository.NewMomentRepository(db),
		learnings: repository.NewLearningRepository(db),
		ai:        &stubAI{},
		gems: &stubGems{gems: []gemdomain.Gem{
			{ID: "g1", Content: "Listen more than you speak", Status: gemdomain.GemStatusActive},
			{ID: "g2", Content: "Ask what success looks like", Status: gemdomain.GemStatusActive},
			{ID: "g3", Content: "Take a walk before hard talks", Status: gemdomain.GemStatusActive},
			{ID: "g4", Content: "Retired wisdom", Status: gemdomain.GemStatusRetired},
		}},
	}
	f.learning = NewLearningService(f.learnings, LearningConfig{})
	f.usecase = NewMomentUsecase(
		f.moments,
		f.gems,
		f.learning,
		NewRecurringMatcher(f.moments),
		NewMatcher(f.ai, ratelimit.NewMemoryLimiter(20, time.Hour)),
	)
	return f
}

func TestGetLearnedThoughts_ConfidenceThreshold(t *testing.T) {
	f := newFixture(t)
	pattern := []domain.Pattern{{Type: domain.PatternEventType, Key: string(domain.EventOneOnOne)}}
	now := time.Now()

	// g1: 4 helpful, 1 not helpful -> 0.8
	for i := 0; i < 4; i++ {
		require.NoError(t, f.learnings.IncrementHelpful("u1", "g1", pattern, now))
	}
	_, err := f.learnings.IncrementNotHelpful("u1", "g1")
	require.NoError(t, err)

	// g2: 3 helpful, 2 not helpful -> 0.6
	for i := 0; i < 3; i++ {
		require.NoError(t, f.learnings.IncrementHelpful("u1", "g2", pattern, now))
	}
	for i := 0; i < 2; i++ {
		_, err := f.learnings.IncrementNotHelpful("u1", "g2")
		require.NoError(t, err)
	}

	learned, err := f.learning.GetLearnedThoughts("u1", PatternSet{EventType: domain.EventOneOnOne})
	require.NoError(t, err)
	require.Len(t, learned, 1)
	assert.Equal(t, "g1", learned[0].GemID)
	assert.InDelta(t, 0.8, learned[0].Confidence, 1e-9)
	assert.Equal(t, []domain.PatternType{domain.PatternEventType}, learned[0].PatternSources)

	// other users see nothing
	learned, err = f.learning.GetLearnedThoughts("u2", PatternSet{EventType: domain.EventOneOnOne})
	require.NoError(t, err)
	assert.Empty(t, learned)
}

func TestGetLearnedThoughts_BelowMinHelpfulIgnored(t *testing.T) {
	f := newFixture(t)
	pattern := []domain.Pattern{{Type: domain.PatternKeyword, Key: "budget"}}
	require.NoError(t, f.learnings.IncrementHelpful("u1", "g1", pattern, time.Now()))

	learned, err := f.learning.GetLearnedThoughts("u1", PatternSet{Keywords: []string{"budget"}})
	require.NoError(t, err)
	assert.Empty(t, learned)
}

func TestIncrementHelpful_ConcurrentUpserts(t *testing.T) {
	f := newFixture(t)
	pattern := []domain.Pattern{{Type: domain.PatternKeyword, Key: "roadmap"}}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.learnings.IncrementHelpful("u1", "g1", pattern, time.Now()))
		}()
	}
	wg.Wait()

	var rows []domain.MomentLearning
	require.NoError(t, f.db.Where("user_id = ?", "u1").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].HelpfulCount)
}

func TestRecordNotHelpful_OnlyTouchesExistingRows(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.learning.RecordNotHelpful("u1", "g1"))

	var count int64
	require.NoError(t, f.db.Model(&domain.MomentLearning{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBuildPatterns(t *testing.T) {
	eventID := "abc123_20260101T090000Z"
	m := &domain.Moment{
		Description:       "Quarterly budget roadmap review with finance hiring plans and offsite agenda",
		DetectedEventType: domain.EventReview,
		CalendarEventID:   &eventID,
	}
	set := BuildPatterns(m)
	assert.Equal(t, domain.EventReview, set.EventType)
	assert.LessOrEqual(t, len(set.Keywords), 5)
	assert.Equal(t, "abc123", set.RecurringID)

	patterns := set.Patterns()
	assert.Equal(t, domain.PatternEventType, patterns[0].Type)
	assert.Equal(t, domain.PatternRecurring, patterns[len(patterns)-1].Type)

	assert.Empty(t, PatternSet{EventType: domain.EventUnknown}.Patterns())
}

func strPtr(s string) *string { return &s }

func TestCheckRecurring_ExactEventID(t *testing.T) {
	f := newFixture(t)
	prev := &domain.Moment{UserID: "u1", Description: "weekly sync", CalendarEventID: strPtr("evt42_20260101"), Status: domain.MomentStatusActive}
	require.NoError(t, f.moments.Create(prev))
	helpful := true
	require.NoError(t, f.moments.SaveMatches([]domain.MomentGem{
		{MomentID: prev.ID, GemID: "g2", UserID: "u1", RelevanceScore: 0.8, WasHelpful: &helpful, WasReviewed: true},
		{MomentID: prev.ID, GemID: "g3", UserID: "u1", RelevanceScore: 0.7},
	}))

	current := &domain.Moment{UserID: "u1", Description: "weekly sync", CalendarEventID: strPtr("evt42_20260108"), Status: domain.MomentStatusActive}
	require.NoError(t, f.moments.Create(current))

	res, err := NewRecurringMatcher(f.moments).CheckRecurring("u1", current)
	require.NoError(t, err)
	assert.True(t, res.IsRecurring)
	assert.Equal(t, domain.MatchTypeExactEventID, res.MatchType)
	assert.Equal(t, prev.ID, res.PreviousMomentID)
	assert.Equal(t, []string{"g2"}, res.HelpfulGemIDs)
}

func TestCheckRecurring_FuzzyTitle(t *testing.T) {
	f := newFixture(t)
	prev := &domain.Moment{UserID: "u1", Description: "x", CalendarEventID: strPtr("a1"), CalendarEventTitle: strPtr("Design Review"), Status: domain.MomentStatusActive}
	require.NoError(t, f.moments.Create(prev))

	current := &domain.Moment{UserID: "u1", Description: "x", CalendarEventID: strPtr("b2"), CalendarEventTitle: strPtr("  design review: checkout  "), Status: domain.MomentStatusActive}
	require.NoError(t, f.moments.Create(current))

	res, err := NewRecurringMatcher(f.moments).CheckRecurring("u1", current)
	require.NoError(t, err)
	assert.True(t, res.IsRecurring)
	assert.Equal(t, domain.MatchTypeFuzzyTitle, res.MatchType)

	manual := &domain.Moment{UserID: "u1", Description: "design review", Status: domain.MomentStatusActive}
	require.NoError(t, f.moments.Create(manual))
	res, err = NewRecurringMatcher(f.moments).CheckRecurring("u1", manual)
	require.NoError(t, err)
	assert.False(t, res.IsRecurring)
}

func TestMatcher_EmptyCandidatesSkipQuotaAndModel(t *testing.T) {
	svc := &stubAI{}
	limiter := ratelimit.NewMemoryLimiter(1, time.Hour)
	m := NewMatcher(svc, limiter)

	for i := 0; i < 3; i++ {
		res, err := m.Match(context.Background(), "u1", "standup", []ai.Candidate{{ID: "", Content: "x"}})
		require.NoError(t, err)
		assert.Empty(t, res.Matches)
		assert.Zero(t, res.ProcessingTimeMs)
	}
	assert.Zero(t, svc.calls)

	res, err := limiter.Allow(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestMatcher_RateLimited(t *testing.T) {
	svc := &stubAI{}
	m := NewMatcher(svc, ratelimit.NewMemoryLimiter(2, time.Hour))
	candidates := []ai.Candidate{{ID: "g1", Content: "Listen"}}

	for i := 0; i < 2; i++ {
		_, err := m.Match(context.Background(), "u1", "standup", candidates)
		require.NoError(t, err)
	}
	_, err := m.Match(context.Background(), "u1", "standup", candidates)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 2, svc.calls)
}

func TestCreateMoment_MergesAndCapsMatches(t *testing.T) {
	f := newFixture(t)
	f.ai.matches = []ai.ThoughtMatch{
		{GemID: "g1", RelevanceScore: 0.95, RelevanceReason: "ai pick"},
		{GemID: "g2", RelevanceScore: 0.7, RelevanceReason: "ai pick"},
		{GemID: "g4", RelevanceScore: 0.9, RelevanceReason: "retired"},
	}
	pattern := []domain.Pattern{{Type: domain.PatternEventType, Key: string(domain.EventOneOnOne)}}
	for i := 0; i < 2; i++ {
		require.NoError(t, f.learnings.IncrementHelpful("u1", "g1", pattern, time.Now()))
	}

	resp, err := f.usecase.CreateMoment(context.Background(), "u1", &momentdto.CreateMomentRequest{
		Description: "1:1 with Sam about career growth",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Analysis)
	assert.Equal(t, domain.EventOneOnOne, resp.Moment.DetectedEventType)
	assert.Equal(t, domain.MomentSourceManual, resp.Moment.Source)

	require.Len(t, resp.Matches, 2)
	bySource := map[string]domain.MatchSource{}
	for _, m := range resp.Matches {
		bySource[m.GemID] = m.MatchSource
	}
	assert.Equal(t, domain.MatchSourceLearned, bySource["g1"])
	assert.Equal(t, domain.MatchSourceAI, bySource["g2"])
	assert.Equal(t, 2, resp.Moment.GemsMatchedCount)
}

func TestCreateMoment_DegradesWhenAIFails(t *testing.T) {
	f := newFixture(t)
	f.ai.err = errors.New("model down")

	resp, err := f.usecase.CreateMoment(context.Background(), "u1", &momentdto.CreateMomentRequest{Description: "Board presentation"})
	require.NoError(t, err)
	assert.Empty(t, resp.Matches)
	assert.Equal(t, domain.MomentStatusActive, resp.Moment.Status)

	_, err = f.usecase.CreateMoment(context.Background(), "u1", &momentdto.CreateMomentRequest{})
	assert.ErrorIs(t, err, domain.ErrDescriptionRequired)
}

func TestRecordFeedback_FeedsLearningOnce(t *testing.T) {
	f := newFixture(t)
	f.ai.matches = []ai.ThoughtMatch{{GemID: "g3", RelevanceScore: 0.8, RelevanceReason: "calm"}}

	resp, err := f.usecase.CreateMoment(context.Background(), "u1", &momentdto.CreateMomentRequest{Description: "Difficult conversation about deadlines"})
	require.NoError(t, err)
	require.Len(t, resp.Matches, 1)
	id := resp.Moment.ID

	require.NoError(t, f.usecase.RecordFeedback("u1", id, "g3", true))
	require.NoError(t, f.usecase.RecordFeedback("u1", id, "g3", true))

	var rows []domain.MomentLearning
	require.NoError(t, f.db.Where("gem_id = ?", "g3").Find(&rows).Error)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.Equal(t, 1, r.HelpfulCount)
	}

	got, err := f.usecase.GetMoment("u1", id)
	require.NoError(t, err)
	require.NotNil(t, got.Matches[0].WasHelpful)
	assert.True(t, *got.Matches[0].WasHelpful)
	assert.True(t, got.Matches[0].WasReviewed)

	assert.ErrorIs(t, f.usecase.RecordFeedback("u1", id, "g1", true), domain.ErrMatchNotFound)
	assert.ErrorIs(t, f.usecase.RecordFeedback("u2", id, "g3", true), domain.ErrMomentNotFound)
}

func TestRecordFeedback_FlipCountsEachChangeOnce(t *testing.T) {
	f := newFixture(t)
	f.ai.matches = []ai.ThoughtMatch{{GemID: "g2", RelevanceScore: 0.8, RelevanceReason: "scope"}}

	resp, err := f.usecase.CreateMoment(context.Background(), "u1", &momentdto.CreateMomentRequest{Description: "Quarterly roadmap planning session"})
	require.NoError(t, err)
	require.Len(t, resp.Matches, 1)
	id := resp.Moment.ID

	require.NoError(t, f.usecase.RecordFeedback("u1", id, "g2", true))
	require.NoError(t, f.usecase.RecordFeedback("u1", id, "g2", false))
	require.NoError(t, f.usecase.RecordFeedback("u1", id, "g2", false))

	var rows []domain.MomentLearning
	require.NoError(t, f.db.Where("gem_id = ?", "g2").Find(&rows).Error)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.Equal(t, 1, r.HelpfulCount)
		assert.Equal(t, 1, r.NotHelpfulCount)
	}
}

func TestCreateMoment_AnalyzesEventDescriptionNotMomentText(t *testing.T) {
	f := newFixture(t)

	resp, err := f.usecase.CreateMoment(context.Background(), "u1", &momentdto.CreateMomentRequest{
		Description:        "Weekly planning sync",
		CalendarEventTitle: "Weekly planning sync",
		CalendarEventID:    "evt1",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Analysis)
	assert.Equal(t, domain.MomentSourceCalendar, resp.Moment.Source)
	assert.True(t, resp.Analysis.IsGeneric)
	assert.NotEmpty(t, resp.Analysis.Questions)
	assert.NotEmpty(t, resp.Analysis.TopicChips)

	detailed, err := f.usecase.CreateMoment(context.Background(), "u1", &momentdto.CreateMomentRequest{
		Description:              "Weekly planning sync\nAgree on the Q3 launch scope and owners for each workstream",
		CalendarEventTitle:       "Weekly planning sync",
		CalendarEventDescription: "Agree on the Q3 launch scope and owners for each workstream",
		CalendarEventID:          "evt2",
	})
	require.NoError(t, err)
	assert.False(t, detailed.Analysis.IsGeneric)

	manual, err := f.usecase.CreateMoment(context.Background(), "u1", &momentdto.CreateMomentRequest{Description: "Weekly planning sync"})
	require.NoError(t, err)
	assert.Equal(t, domain.MomentSourceManual, manual.Moment.Source)
	assert.True(t, manual.Analysis.IsGeneric)
}

func TestUpdateContext_KeepsReviewedMatches(t *testing.T) {
	f := newFixture(t)
	f.ai.matches = []ai.ThoughtMatch{{GemID: "g1", RelevanceScore: 0.9, RelevanceReason: "first"}}

	resp, err := f.usecase.CreateMoment(context.Background(), "u1", &momentdto.CreateMomentRequest{Description: "Team planning"})
	require.NoError(t, err)
	require.NoError(t, f.usecase.RecordFeedback("u1", resp.Moment.ID, "g1", false))

	f.ai.matches = []ai.ThoughtMatch{{GemID: "g2", RelevanceScore: 0.8, RelevanceReason: "second"}}
	updated, err := f.usecase.UpdateContext(context.Background(), "u1", resp.Moment.ID, "I am nervous about scope")
	require.NoError(t, err)
	assert.Equal(t, "I am nervous about scope", updated.Moment.UserContext)

	ids := []string{}
	for _, m := range updated.Matches {
		ids = append(ids, m.GemID)
	}
	assert.ElementsMatch(t, []string{"g1", "g2"}, ids)
	assert.Equal(t, 2, updated.Moment.GemsMatchedCount)
}

func TestUpdateStatusAndList(t *testing.T) {
	f := newFixture(t)
	resp, err := f.usecase.CreateMoment(context.Background(), "u1", &momentdto.CreateMomentRequest{Description: "Interview a candidate"})
	require.NoError(t, err)

	_, err = f.usecase.UpdateStatus("u1", resp.Moment.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	m, err := f.usecase.UpdateStatus("u1", resp.Moment.ID, domain.MomentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.MomentStatusCompleted, m.Status)

	list, err := f.usecase.ListMoments("u1", "completed", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)

	list, err = f.usecase.ListMoments("u1", "active", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, list.Total)
}
