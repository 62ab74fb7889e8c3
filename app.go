package main

import (
	"context"
	"fmt"
	"log"
	"time"

	api "thoughtfolio-backend/cmd/api"
	authdomain "thoughtfolio-backend/internal/auth/domain"
	authDelivery "thoughtfolio-backend/internal/auth/delivery"
	authRepo "thoughtfolio-backend/internal/auth/repository"
	authUsecase "thoughtfolio-backend/internal/auth/usecase"
	calendarDelivery "thoughtfolio-backend/internal/calendar/delivery"
	calendardomain "thoughtfolio-backend/internal/calendar/domain"
	calendarRepo "thoughtfolio-backend/internal/calendar/repository"
	"thoughtfolio-backend/internal/calendar/scheduler"
	calendarUsecase "thoughtfolio-backend/internal/calendar/usecase"
	captureDelivery "thoughtfolio-backend/internal/capture/delivery"
	capturedomain "thoughtfolio-backend/internal/capture/domain"
	captureRepo "thoughtfolio-backend/internal/capture/repository"
	captureUsecase "thoughtfolio-backend/internal/capture/usecase"
	discoveryDelivery "thoughtfolio-backend/internal/discovery/delivery"
	discoverydomain "thoughtfolio-backend/internal/discovery/domain"
	discoveryRepo "thoughtfolio-backend/internal/discovery/repository"
	discoveryUsecase "thoughtfolio-backend/internal/discovery/usecase"
	gemDelivery "thoughtfolio-backend/internal/gem/delivery"
	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemRepo "thoughtfolio-backend/internal/gem/repository"
	gemUsecase "thoughtfolio-backend/internal/gem/usecase"
	momentDelivery "thoughtfolio-backend/internal/moment/delivery"
	momentdomain "thoughtfolio-backend/internal/moment/domain"
	momentRepo "thoughtfolio-backend/internal/moment/repository"
	momentUsecase "thoughtfolio-backend/internal/moment/usecase"
	noteDelivery "thoughtfolio-backend/internal/note/delivery"
	notedomain "thoughtfolio-backend/internal/note/domain"
	noteRepo "thoughtfolio-backend/internal/note/repository"
	noteUsecase "thoughtfolio-backend/internal/note/usecase"
	searchDelivery "thoughtfolio-backend/internal/search/delivery"
	searchUsecase "thoughtfolio-backend/internal/search/usecase"
	"thoughtfolio-backend/pkg/ai"
	"thoughtfolio-backend/pkg/article"
	"thoughtfolio-backend/pkg/calendar"
	"thoughtfolio-backend/pkg/chroma"
	"thoughtfolio-backend/pkg/config"
	"thoughtfolio-backend/pkg/fcm"
	"thoughtfolio-backend/pkg/ratelimit"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const limiterSweepInterval = 10 * time.Minute

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&authdomain.User{}, &authdomain.RefreshToken{}, &authdomain.Device{},
		&gemdomain.Context{}, &gemdomain.Source{}, &gemdomain.Gem{}, &gemdomain.CheckIn{},
		&notedomain.Note{},
		&momentdomain.Moment{}, &momentdomain.MomentGem{}, &momentdomain.MomentLearning{},
		&calendardomain.CalendarConnection{}, &calendardomain.CalendarEvent{},
		&capturedomain.AIUsage{}, &capturedomain.AIExtraction{},
		&discoverydomain.Discovery{},
	)
}

// app owns the long-running pieces started by serve
type app struct {
	handler   *api.Handler
	scheduler *scheduler.MomentScheduler
	redis     *redis.Client
	memory    []*ratelimit.MemoryLimiter
}

func newApp(ctx context.Context, cfg *config.Config, db *gorm.DB) (*app, error) {
	a := &app{}

	// Repositories
	userRepo := authRepo.NewUserRepository(db)
	deviceRepo := authRepo.NewDeviceRepository(db)
	gemRepository := gemRepo.NewGemRepository(db)
	contextRepository := gemRepo.NewContextRepository(db)
	sourceRepository := gemRepo.NewSourceRepository(db)
	noteRepository := noteRepo.NewNoteRepository(db)
	momentRepository := momentRepo.NewMomentRepository(db)
	learningRepository := momentRepo.NewLearningRepository(db)
	connRepository := calendarRepo.NewConnectionRepository(db)
	eventRepository := calendarRepo.NewEventRepository(db)
	usageRepository := captureRepo.NewUsageRepository(db)
	discoveryRepository := discoveryRepo.NewDiscoveryRepository(db)

	// AI provider, switchable to Ollama at runtime through the settings API
	settings := api.NewRuntimeSettings(cfg.OllamaBaseURL, cfg.OllamaModel)
	var assistant ai.Service
	gen, err := ai.NewGeneratorWithDynamicConfig(ai.DynamicConfig{
		Provider:         ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:     cfg.GeminiApiKey,
		GeminiModel:      cfg.GeminiModel,
		GeminiRPS:        cfg.GeminiRPS,
		GetOllamaBaseURL: settings.OllamaBaseURL,
		GetOllamaModel:   settings.OllamaModel,
	})
	if err != nil {
		log.Printf("[WARN] AI disabled: %v", err)
	} else {
		assistant = ai.NewAssistant(gen)
		log.Printf("[Main] AI provider: %s", cfg.AIProvider)
	}

	matchLimiter, discoveryLimiter, err := a.newLimiters(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Use cases
	authUc := authUsecase.NewAuthUsecase(userRepo, deviceRepo, cfg)
	contextUc := gemUsecase.NewContextUsecase(contextRepository, gemRepository)
	gemUc := gemUsecase.NewGemUsecase(gemRepository, contextRepository, contextUc)
	sourceUc := gemUsecase.NewSourceUsecase(sourceRepository)
	noteUc := noteUsecase.NewNoteUsecase(noteRepository)

	var index searchUsecase.VectorIndex
	if cfg.ChromaAPIKey != "" {
		chromaClient, err := chroma.NewChromaClient(ctx, cfg)
		if err != nil {
			log.Printf("[WARN] Chroma unavailable, semantic search disabled: %v", err)
		} else {
			gemUc.SetIndexer(chromaClient)
			index = chromaClient
		}
	} else {
		log.Println("[WARN] CHROMA_API_KEY not set, semantic search disabled")
	}

	learning := momentUsecase.NewLearningService(learningRepository, momentUsecase.LearningConfig{
		MinHelpfulCount: cfg.LearningMinHelpful,
		MinConfidence:   cfg.LearningMinConfidence,
	})
	momentUc := momentUsecase.NewMomentUsecase(
		momentRepository,
		gemUc,
		learning,
		momentUsecase.NewRecurringMatcher(momentRepository),
		momentUsecase.NewMatcher(assistant, matchLimiter),
	)

	captureUc := captureUsecase.NewCaptureUsecase(assistant, usageRepository, contextUc, article.NewFetcher(cfg.ArticleFetchTimeout), captureUsecase.Config{
		DailyLimit: cfg.AIDailyCaptures,
		Timeout:    cfg.AIRequestTimeout,
	})
	discoveryUc := discoveryUsecase.NewDiscoveryUsecase(assistant, discoveryRepository, gemUc, discoveryLimiter, cfg.AIRequestTimeout)
	searchUc := searchUsecase.NewSearchUsecase(gemUc, noteUc, index)

	var provider calendarUsecase.Provider
	if cfg.GoogleClientID != "" {
		provider = calendar.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCalendarRedirectURI)
	} else {
		log.Println("[WARN] GOOGLE_CLIENT_ID not set, calendar integration disabled")
	}
	calendarUc := calendarUsecase.NewCalendarUsecase(connRepository, eventRepository, provider)

	var notifier scheduler.Notifier
	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(ctx, cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		} else {
			notifier = fcmClient
		}
	}

	if provider != nil {
		a.scheduler = scheduler.NewMomentScheduler(connRepository, eventRepository, calendarUc, momentUc, deviceRepo, notifier, scheduler.Config{
			Tick:         cfg.CalendarSchedulerTick,
			SyncInterval: cfg.CalendarSyncInterval,
		})
	}

	a.handler = api.NewHandler(authUc, api.Handlers{
		Auth:      authDelivery.NewAuthHandler(authUc),
		Gem:       gemDelivery.NewGemHandler(gemUc),
		Context:   gemDelivery.NewContextHandler(contextUc),
		Source:    gemDelivery.NewSourceHandler(sourceUc),
		Note:      noteDelivery.NewNoteHandler(noteUc),
		Moment:    momentDelivery.NewMomentHandler(momentUc),
		Capture:   captureDelivery.NewCaptureHandler(captureUc),
		Discovery: discoveryDelivery.NewDiscoveryHandler(discoveryUc),
		Search:    searchDelivery.NewSearchHandler(searchUc),
		Calendar:  calendarDelivery.NewCalendarHandler(calendarUc),
		Settings:  api.NewSettingsHandler(settings),
	})
	return a, nil
}

// newLimiters returns the moment-match and discovery limiters, shared through Redis when configured
func (a *app) newLimiters(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, ratelimit.Limiter, error) {
	if cfg.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redis = client
		log.Println("[Main] Rate limits stored in redis")
		return ratelimit.NewRedisLimiter(client, "ratelimit:moment-match", cfg.MomentMatchLimit, cfg.MomentMatchWindow),
			ratelimit.NewRedisLimiter(client, "ratelimit:discovery", cfg.MomentMatchLimit, cfg.MomentMatchWindow),
			nil
	}

	match := ratelimit.NewMemoryLimiter(cfg.MomentMatchLimit, cfg.MomentMatchWindow)
	discovery := ratelimit.NewMemoryLimiter(cfg.MomentMatchLimit, cfg.MomentMatchWindow)
	a.memory = append(a.memory, match, discovery)
	return match, discovery, nil
}

// Start launches the calendar scheduler and the in-memory limiter sweeper
func (a *app) Start(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Start()
	}
	if len(a.memory) == 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(limiterSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, l := range a.memory {
					l.Sweep()
				}
			}
		}
	}()
}

func (a *app) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("[Main] redis close: %v", err)
		}
	}
}
