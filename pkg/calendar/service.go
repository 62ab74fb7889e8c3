package calendar

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TokenUpdateFunc receives a token after the oauth2 library refreshed it
type TokenUpdateFunc func(token *oauth2.Token) error

// Event is the provider-neutral shape of an upcoming calendar event
type Event struct {
	ID            string
	Title         string
	Description   string
	Start         time.Time
	End           time.Time
	AttendeeCount int
	IsRecurring   bool
}

type Service struct {
	config *oauth2.Config
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			log.Printf("[Calendar] failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret, redirectURI string) *Service {
	return &Service{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gcal.CalendarReadonlyScope},
		},
	}
}

// AuthURL builds the consent URL. Offline access with forced consent so Google
// always returns a refresh token.
func (s *Service) AuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

func (s *Service) client(ctx context.Context, token *oauth2.Token, onRefresh TokenUpdateFunc) (*gcal.Service, error) {
	src := &notifyTokenSource{
		src:      s.config.TokenSource(ctx, token),
		current:  token,
		callback: onRefresh,
	}
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, src)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}
	return srv, nil
}

// PrimaryEmail returns the id of the primary calendar, which is the account email
func (s *Service) PrimaryEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	srv, err := s.client(ctx, token, nil)
	if err != nil {
		return "", err
	}
	entry, err := srv.CalendarList.Get("primary").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to read primary calendar: %w", err)
	}
	return entry.Id, nil
}

// ListEvents returns single (expanded) events on the primary calendar between from and to.
// Cancelled and all-day events are skipped.
func (s *Service) ListEvents(ctx context.Context, token *oauth2.Token, onRefresh TokenUpdateFunc, from, to time.Time) ([]Event, error) {
	srv, err := s.client(ctx, token, onRefresh)
	if err != nil {
		return nil, err
	}

	var events []Event
	pageToken := ""
	for {
		call := srv.Events.List("primary").
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			MaxResults(250).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list events: %w", err)
		}

		for _, item := range resp.Items {
			if ev, ok := convertEvent(item); ok {
				events = append(events, ev)
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	return events, nil
}

func convertEvent(item *gcal.Event) (Event, bool) {
	if item == nil || item.Status == "cancelled" || item.Start == nil || item.Start.DateTime == "" {
		return Event{}, false
	}
	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return Event{}, false
	}
	end := start
	if item.End != nil && item.End.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, item.End.DateTime); err == nil {
			end = parsed
		}
	}

	attendees := 0
	for _, a := range item.Attendees {
		if a != nil && !a.Resource {
			attendees++
		}
	}

	return Event{
		ID:            item.Id,
		Title:         item.Summary,
		Description:   item.Description,
		Start:         start,
		End:           end,
		AttendeeCount: attendees,
		IsRecurring:   item.RecurringEventId != "",
	}, true
}
