package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	authdomain "thoughtfolio-backend/internal/auth/domain"
	authrepo "thoughtfolio-backend/internal/auth/repository"
	"thoughtfolio-backend/internal/calendar/domain"
	"thoughtfolio-backend/internal/calendar/repository"
	"thoughtfolio-backend/internal/calendar/usecase"
	momentdomain "thoughtfolio-backend/internal/moment/domain"
	momentdto "thoughtfolio-backend/internal/moment/dto"
	"thoughtfolio-backend/pkg/calendar"
	"thoughtfolio-backend/pkg/database"
	"thoughtfolio-backend/pkg/fcm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type stubProvider struct {
	events []calendar.Event
	calls  int
}

func (s *stubProvider) AuthURL(string) string { return "" }
func (s *stubProvider) Exchange(context.Context, string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "a"}, nil
}
func (s *stubProvider) PrimaryEmail(context.Context, *oauth2.Token) (string, error) { return "", nil }
func (s *stubProvider) ListEvents(context.Context, *oauth2.Token, calendar.TokenUpdateFunc, time.Time, time.Time) ([]calendar.Event, error) {
	s.calls++
	return s.events, nil
}

type stubMoments struct {
	mu      sync.Mutex
	created []momentdto.CreateMomentRequest
}

func (s *stubMoments) CreateMoment(_ context.Context, _ string, req *momentdto.CreateMomentRequest) (*momentdto.MomentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, *req)
	return &momentdto.MomentResponse{
		Moment:  &momentdomain.Moment{ID: "moment-" + req.CalendarEventID},
		Matches: []momentdto.MatchedGem{{GemID: "g1"}, {GemID: "g2"}},
	}, nil
}

func (s *stubMoments) HasMomentForEvent(_ string, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.created {
		if c.CalendarEventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

type stubNotifier struct {
	sent   []fcm.Notification
	tokens [][]string
}

func (s *stubNotifier) SendToDevices(_ context.Context, tokens []string, n fcm.Notification) ([]string, error) {
	s.sent = append(s.sent, n)
	s.tokens = append(s.tokens, tokens)
	return []string{"stale-token"}, nil
}

func TestRunOnce_CreatesMomentsForDueEvents(t *testing.T) {
	db, err := database.OpenInMemory(&domain.CalendarConnection{}, &domain.CalendarEvent{}, &authdomain.Device{})
	require.NoError(t, err)

	conns := repository.NewConnectionRepository(db)
	events := repository.NewEventRepository(db)
	devices := authrepo.NewDeviceRepository(db)
	require.NoError(t, devices.Register("u1", "good-token", "web"))
	require.NoError(t, devices.Register("u1", "stale-token", "web"))

	now := time.Now().UTC().Truncate(time.Second)
	provider := &stubProvider{events: []calendar.Event{
		{ID: "soon", Title: "Design review", Description: "Walk through the onboarding mocks", Start: now.Add(10 * time.Minute), End: now.Add(70 * time.Minute), AttendeeCount: 3},
		{ID: "solo", Title: "Focus block", Start: now.Add(5 * time.Minute), End: now.Add(65 * time.Minute), AttendeeCount: 1},
		{ID: "later", Title: "Planning", Start: now.Add(3 * time.Hour), End: now.Add(4 * time.Hour), AttendeeCount: 5},
	}}

	conn := &domain.CalendarConnection{
		UserID:          "u1",
		Provider:        domain.ProviderGoogle,
		IsActive:        true,
		LeadTimeMinutes: 15,
		EventFilter:     domain.FilterMeetings,
	}
	require.NoError(t, conns.Save(conn))

	moments := &stubMoments{}
	notifier := &stubNotifier{}
	s := NewMomentScheduler(conns, events, usecase.NewCalendarUsecase(conns, events, provider), moments, devices, notifier, Config{
		Tick:         time.Minute,
		SyncInterval: 15 * time.Minute,
	})

	s.RunOnce(context.Background())

	assert.Equal(t, 1, provider.calls)
	require.Len(t, moments.created, 1)
	req := moments.created[0]
	assert.Equal(t, "soon", req.CalendarEventID)
	assert.Equal(t, "Design review", req.CalendarEventTitle)
	assert.Equal(t, "Walk through the onboarding mocks", req.CalendarEventDescription)
	assert.Equal(t, "Design review\nWalk through the onboarding mocks", req.Description)
	assert.Equal(t, "calendar", req.Source)
	require.NotNil(t, req.CalendarEventStart)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "2 thoughts ready for this moment", notifier.sent[0].Body)
	assert.Equal(t, "moment-soon", notifier.sent[0].Data["moment_id"])
	assert.ElementsMatch(t, []string{"good-token", "stale-token"}, notifier.tokens[0])

	remaining, err := devices.ListByUser("u1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "good-token", remaining[0].Token)

	// second tick: synced recently and the moment already exists
	s.RunOnce(context.Background())
	assert.Equal(t, 1, provider.calls)
	assert.Len(t, moments.created, 1)
	assert.Len(t, notifier.sent, 1)
}

func TestRunOnce_SkipsInactiveConnections(t *testing.T) {
	db, err := database.OpenInMemory(&domain.CalendarConnection{}, &domain.CalendarEvent{}, &authdomain.Device{})
	require.NoError(t, err)
	conns := repository.NewConnectionRepository(db)
	events := repository.NewEventRepository(db)
	require.NoError(t, conns.Save(&domain.CalendarConnection{UserID: "u1", IsActive: false}))

	provider := &stubProvider{}
	s := NewMomentScheduler(conns, events, usecase.NewCalendarUsecase(conns, events, provider), &stubMoments{}, authrepo.NewDeviceRepository(db), nil, Config{})
	s.RunOnce(context.Background())
	assert.Zero(t, provider.calls)
}

func TestStartStop(t *testing.T) {
	db, err := database.OpenInMemory(&domain.CalendarConnection{}, &domain.CalendarEvent{}, &authdomain.Device{})
	require.NoError(t, err)
	conns := repository.NewConnectionRepository(db)
	events := repository.NewEventRepository(db)

	s := NewMomentScheduler(conns, events, usecase.NewCalendarUsecase(conns, events, &stubProvider{}), &stubMoments{}, authrepo.NewDeviceRepository(db), nil, Config{Tick: 10 * time.Millisecond})
	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	s.Stop()
}
