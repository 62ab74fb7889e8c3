package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"thoughtfolio-backend/internal/calendar/domain"
	caldto "thoughtfolio-backend/internal/calendar/dto"
	"thoughtfolio-backend/internal/calendar/repository"
	"thoughtfolio-backend/pkg/calendar"
	"thoughtfolio-backend/pkg/database"
	"thoughtfolio-backend/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// SyncWindow is how far ahead events are cached
const SyncWindow = 7 * 24 * time.Hour

type calendarUsecase struct {
	connRepo  repository.ConnectionRepository
	eventRepo repository.EventRepository
	provider  Provider
	now       func() time.Time
}

// NewCalendarUsecase accepts a nil provider when Google credentials are missing;
// every call that needs Google then returns domain.ErrNotConfigured
func NewCalendarUsecase(connRepo repository.ConnectionRepository, eventRepo repository.EventRepository, provider Provider) CalendarUsecase {
	return &calendarUsecase{
		connRepo:  connRepo,
		eventRepo: eventRepo,
		provider:  provider,
		now:       time.Now,
	}
}

func (u *calendarUsecase) ConnectURL(userID string) (*caldto.ConnectResponse, error) {
	if u.provider == nil {
		return nil, domain.ErrNotConfigured
	}
	state := uuid.New().String()
	return &caldto.ConnectResponse{URL: u.provider.AuthURL(state), State: state}, nil
}

func (u *calendarUsecase) HandleCallback(ctx context.Context, userID, code string) (*domain.CalendarConnection, error) {
	if u.provider == nil {
		return nil, domain.ErrNotConfigured
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrCodeRequired
	}

	token, err := u.provider.Exchange(ctx, code)
	if err != nil {
		log.Printf("[CalendarUsecase] token exchange failed for user %s: %v", userID, err)
		return nil, domain.ErrExchangeFailed
	}

	conn, err := u.connRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		conn = &domain.CalendarConnection{
			UserID:          userID,
			Provider:        domain.ProviderGoogle,
			LeadTimeMinutes: domain.DefaultLeadTimeMinutes,
			EventFilter:     domain.FilterAll,
			CustomKeywords:  database.StringArray{},
		}
	}
	conn.AccessToken = token.AccessToken
	// Google only returns a refresh token on first consent
	if token.RefreshToken != "" {
		conn.RefreshToken = token.RefreshToken
	}
	conn.TokenExpiry = token.Expiry
	conn.IsActive = true

	if email, err := u.provider.PrimaryEmail(ctx, token); err != nil {
		log.Printf("[CalendarUsecase] could not read calendar email for user %s: %v", userID, err)
	} else {
		conn.Email = email
	}

	if err := u.connRepo.Save(conn); err != nil {
		return nil, err
	}

	if _, err := u.SyncConnection(ctx, conn); err != nil {
		log.Printf("[CalendarUsecase] initial sync failed for user %s: %v", userID, err)
	}
	return conn, nil
}

func (u *calendarUsecase) connection(userID string) (*domain.CalendarConnection, error) {
	conn, err := u.connRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, domain.ErrNotConnected
	}
	return conn, nil
}

func (u *calendarUsecase) GetStatus(userID string) (*caldto.StatusResponse, error) {
	conn, err := u.connRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return &caldto.StatusResponse{Connected: false}, nil
	}
	return &caldto.StatusResponse{Connected: conn.IsActive, Connection: conn}, nil
}

func (u *calendarUsecase) UpdateSettings(userID string, req *caldto.SettingsRequest) (*domain.CalendarConnection, error) {
	conn, err := u.connection(userID)
	if err != nil {
		return nil, err
	}

	if req.LeadTimeMinutes != nil {
		if *req.LeadTimeMinutes < domain.MinLeadTimeMinutes || *req.LeadTimeMinutes > domain.MaxLeadTimeMinutes {
			return nil, domain.ErrInvalidLeadTime
		}
		conn.LeadTimeMinutes = *req.LeadTimeMinutes
	}
	if req.CustomKeywords != nil {
		keywords := make(database.StringArray, 0, len(*req.CustomKeywords))
		for _, k := range *req.CustomKeywords {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		conn.CustomKeywords = keywords
	}
	if req.EventFilter != nil {
		filter := domain.EventFilter(*req.EventFilter)
		if !filter.Valid() {
			return nil, domain.ErrInvalidFilter
		}
		conn.EventFilter = filter
	}
	if conn.EventFilter == domain.FilterKeywords && len(conn.CustomKeywords) == 0 {
		return nil, domain.ErrKeywordsRequired
	}
	if req.IsActive != nil {
		conn.IsActive = *req.IsActive
	}

	if err := u.connRepo.Save(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func (u *calendarUsecase) Sync(ctx context.Context, userID string) (*caldto.SyncResponse, error) {
	if u.provider == nil {
		return nil, domain.ErrNotConfigured
	}
	conn, err := u.connection(userID)
	if err != nil {
		return nil, err
	}
	n, err := u.SyncConnection(ctx, conn)
	if err != nil {
		return nil, err
	}
	events, err := u.ListUpcoming(userID)
	if err != nil {
		return nil, err
	}
	return &caldto.SyncResponse{Synced: n, Events: events}, nil
}

func (u *calendarUsecase) SyncConnection(ctx context.Context, conn *domain.CalendarConnection) (int, error) {
	if u.provider == nil {
		return 0, domain.ErrNotConfigured
	}

	token := &oauth2.Token{
		AccessToken:  conn.AccessToken,
		RefreshToken: conn.RefreshToken,
		Expiry:       conn.TokenExpiry,
		TokenType:    "Bearer",
	}
	onRefresh := func(t *oauth2.Token) error {
		conn.AccessToken = t.AccessToken
		if t.RefreshToken != "" {
			conn.RefreshToken = t.RefreshToken
		}
		conn.TokenExpiry = t.Expiry
		return u.connRepo.Save(conn)
	}

	now := u.now().UTC()
	events, err := u.provider.ListEvents(ctx, token, onRefresh, now, now.Add(SyncWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch events: %w", err)
	}
	metrics.Get().CalendarEventsSeen.Add(float64(len(events)))

	rows := make([]domain.CalendarEvent, 0, len(events))
	for _, ev := range events {
		rows = append(rows, domain.CalendarEvent{
			ConnectionID:    conn.ID,
			UserID:          conn.UserID,
			ExternalEventID: ev.ID,
			Title:           ev.Title,
			Description:     ev.Description,
			StartTime:       ev.Start.UTC(),
			EndTime:         ev.End.UTC(),
			AttendeeCount:   ev.AttendeeCount,
			IsRecurring:     ev.IsRecurring,
		})
	}
	if err := u.eventRepo.Upsert(rows); err != nil {
		return 0, err
	}
	if err := u.eventRepo.DeleteEndedBefore(conn.ID, now); err != nil {
		log.Printf("[CalendarUsecase] failed to prune ended events for %s: %v", conn.ID, err)
	}

	conn.LastSyncAt = &now
	if err := u.connRepo.Save(conn); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (u *calendarUsecase) ListUpcoming(userID string) ([]domain.CalendarEvent, error) {
	now := u.now().UTC()
	return u.eventRepo.ListUpcoming(userID, now, now.Add(SyncWindow))
}

func (u *calendarUsecase) Disconnect(userID string) error {
	if _, err := u.connection(userID); err != nil {
		return err
	}
	return u.connRepo.Delete(userID)
}

var _ Provider = (*calendar.Service)(nil)
