package usecase

import (
	"context"
	"time"

	"thoughtfolio-backend/internal/calendar/domain"
	caldto "thoughtfolio-backend/internal/calendar/dto"
	"thoughtfolio-backend/pkg/calendar"

	"golang.org/x/oauth2"
)

// Provider is the external calendar API
type Provider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	PrimaryEmail(ctx context.Context, token *oauth2.Token) (string, error)
	ListEvents(ctx context.Context, token *oauth2.Token, onRefresh calendar.TokenUpdateFunc, from, to time.Time) ([]calendar.Event, error)
}

type CalendarUsecase interface {
	ConnectURL(userID string) (*caldto.ConnectResponse, error)
	HandleCallback(ctx context.Context, userID, code string) (*domain.CalendarConnection, error)
	GetStatus(userID string) (*caldto.StatusResponse, error)
	UpdateSettings(userID string, req *caldto.SettingsRequest) (*domain.CalendarConnection, error)
	Sync(ctx context.Context, userID string) (*caldto.SyncResponse, error)
	ListUpcoming(userID string) ([]domain.CalendarEvent, error)
	Disconnect(userID string) error

	// SyncConnection refreshes the event cache of one connection
	SyncConnection(ctx context.Context, conn *domain.CalendarConnection) (int, error)
}
