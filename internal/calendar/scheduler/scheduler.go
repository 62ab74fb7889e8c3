package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	authrepo "thoughtfolio-backend/internal/auth/repository"
	"thoughtfolio-backend/internal/calendar/domain"
	"thoughtfolio-backend/internal/calendar/repository"
	"thoughtfolio-backend/internal/calendar/usecase"
	momentdto "thoughtfolio-backend/internal/moment/dto"
	"thoughtfolio-backend/pkg/fcm"
)

// MomentCreator turns an upcoming event into a moment
type MomentCreator interface {
	CreateMoment(ctx context.Context, userID string, req *momentdto.CreateMomentRequest) (*momentdto.MomentResponse, error)
	HasMomentForEvent(userID, eventID string) (bool, error)
}

// Notifier pushes to a user's devices and returns tokens that are no longer valid
type Notifier interface {
	SendToDevices(ctx context.Context, tokens []string, n fcm.Notification) ([]string, error)
}

type Config struct {
	Tick         time.Duration
	SyncInterval time.Duration
}

// MomentScheduler syncs calendars and prepares moments ahead of upcoming events
type MomentScheduler struct {
	connRepo  repository.ConnectionRepository
	eventRepo repository.EventRepository
	calendar  usecase.CalendarUsecase
	moments   MomentCreator
	devices   authrepo.DeviceRepository
	notifier  Notifier
	cfg       Config
	now       func() time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewMomentScheduler accepts a nil notifier, in which case moments are created without pushes
func NewMomentScheduler(
	connRepo repository.ConnectionRepository,
	eventRepo repository.EventRepository,
	calendar usecase.CalendarUsecase,
	moments MomentCreator,
	devices authrepo.DeviceRepository,
	notifier Notifier,
	cfg Config,
) *MomentScheduler {
	if cfg.Tick <= 0 {
		cfg.Tick = time.Minute
	}
	if cfg.SyncInterval <= 0 {
		cfg.SyncInterval = 15 * time.Minute
	}
	return &MomentScheduler{
		connRepo:  connRepo,
		eventRepo: eventRepo,
		calendar:  calendar,
		moments:   moments,
		devices:   devices,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *MomentScheduler) Start() {
	log.Printf("[CalendarScheduler] Starting (tick: %s, sync every %s)", s.cfg.Tick, s.cfg.SyncInterval)
	if s.notifier == nil {
		log.Println("[CalendarScheduler] FCM client not available, moments will be created without push")
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RunOnce(context.Background())

		ticker := time.NewTicker(s.cfg.Tick)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.RunOnce(context.Background())
			case <-s.stopChan:
				log.Println("[CalendarScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop ends the loop and waits for the current tick to finish
func (s *MomentScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
}

// RunOnce performs a single tick over every active connection
func (s *MomentScheduler) RunOnce(ctx context.Context) {
	conns, err := s.connRepo.ListActive()
	if err != nil {
		log.Printf("[CalendarScheduler] Error listing connections: %v", err)
		return
	}

	now := s.now().UTC()
	for i := range conns {
		conn := &conns[i]
		if conn.LastSyncAt == nil || now.Sub(*conn.LastSyncAt) >= s.cfg.SyncInterval {
			if _, err := s.calendar.SyncConnection(ctx, conn); err != nil {
				log.Printf("[CalendarScheduler] Sync failed for user %s: %v", conn.UserID, err)
			}
		}
		s.prepareMoments(ctx, conn, now)
	}
}

func (s *MomentScheduler) prepareMoments(ctx context.Context, conn *domain.CalendarConnection, now time.Time) {
	due, err := s.eventRepo.FindDue(conn.ID, now, now.Add(conn.LeadTime()))
	if err != nil {
		log.Printf("[CalendarScheduler] Error finding due events for user %s: %v", conn.UserID, err)
		return
	}

	for i := range due {
		ev := &due[i]
		if !conn.Accepts(ev) {
			continue
		}

		exists, err := s.moments.HasMomentForEvent(conn.UserID, ev.ExternalEventID)
		if err != nil {
			log.Printf("[CalendarScheduler] Error checking moment for event %s: %v", ev.ExternalEventID, err)
			continue
		}

		if !exists {
			start := ev.StartTime
			resp, err := s.moments.CreateMoment(ctx, conn.UserID, &momentdto.CreateMomentRequest{
				Description:              momentDescription(ev),
				CalendarEventID:          ev.ExternalEventID,
				CalendarEventTitle:       ev.Title,
				CalendarEventDescription: ev.Description,
				CalendarEventStart:       &start,
				Source:                   "calendar",
			})
			if err != nil {
				log.Printf("[CalendarScheduler] Error creating moment for event %s: %v", ev.ExternalEventID, err)
				continue
			}
			log.Printf("[CalendarScheduler] Created moment %s for '%s' (%d thoughts)", resp.Moment.ID, ev.Title, len(resp.Matches))
			s.notify(ctx, conn.UserID, ev, resp, now)
		}

		if err := s.eventRepo.MarkMomentCreated(ev.ID); err != nil {
			log.Printf("[CalendarScheduler] Error marking event %s: %v", ev.ID, err)
		}
	}
}

func momentDescription(ev *domain.CalendarEvent) string {
	if ev.Description == "" {
		return ev.Title
	}
	return ev.Title + "\n" + ev.Description
}

func (s *MomentScheduler) notify(ctx context.Context, userID string, ev *domain.CalendarEvent, resp *momentdto.MomentResponse, now time.Time) {
	if s.notifier == nil || len(resp.Matches) == 0 {
		return
	}

	devices, err := s.devices.ListByUser(userID)
	if err != nil {
		log.Printf("[CalendarScheduler] Error getting devices for user %s: %v", userID, err)
		return
	}
	if len(devices) == 0 {
		return
	}
	tokens := make([]string, 0, len(devices))
	for _, d := range devices {
		tokens = append(tokens, d.Token)
	}

	minutes := int(ev.StartTime.Sub(now).Round(time.Minute).Minutes())
	title := fmt.Sprintf("%s in %d min", ev.Title, minutes)
	if minutes <= 0 {
		title = ev.Title + " is starting"
	}
	body := "1 thought ready for this moment"
	if n := len(resp.Matches); n > 1 {
		body = fmt.Sprintf("%d thoughts ready for this moment", n)
	}

	stale, err := s.notifier.SendToDevices(ctx, tokens, fcm.Notification{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":      "moment",
			"moment_id": resp.Moment.ID,
			"event_id":  ev.ExternalEventID,
		},
		Link: "/moments/" + resp.Moment.ID,
	})
	if err != nil {
		log.Printf("[CalendarScheduler] Error sending push for moment %s: %v", resp.Moment.ID, err)
		return
	}
	for _, token := range stale {
		if err := s.devices.DeleteByToken(token); err != nil {
			log.Printf("[CalendarScheduler] Error removing stale token: %v", err)
		}
	}
}
