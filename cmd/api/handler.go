package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	authDelivery "thoughtfolio-backend/internal/auth/delivery"
	authUsecase "thoughtfolio-backend/internal/auth/usecase"
	calendarDelivery "thoughtfolio-backend/internal/calendar/delivery"
	captureDelivery "thoughtfolio-backend/internal/capture/delivery"
	discoveryDelivery "thoughtfolio-backend/internal/discovery/delivery"
	gemDelivery "thoughtfolio-backend/internal/gem/delivery"
	momentDelivery "thoughtfolio-backend/internal/moment/delivery"
	noteDelivery "thoughtfolio-backend/internal/note/delivery"
	searchDelivery "thoughtfolio-backend/internal/search/delivery"
	"thoughtfolio-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Handlers groups the per-domain gin handlers. Settings is optional.
type Handlers struct {
	Auth      *authDelivery.AuthHandler
	Gem       *gemDelivery.GemHandler
	Context   *gemDelivery.ContextHandler
	Source    *gemDelivery.SourceHandler
	Note      *noteDelivery.NoteHandler
	Moment    *momentDelivery.MomentHandler
	Capture   *captureDelivery.CaptureHandler
	Discovery *discoveryDelivery.DiscoveryHandler
	Search    *searchDelivery.SearchHandler
	Calendar  *calendarDelivery.CalendarHandler
	Settings  *SettingsHandler
}

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	handlers    Handlers
}

func NewHandler(authUc authUsecase.AuthUsecase, handlers Handlers) *Handler {
	return &Handler{
		authUsecase: authUc,
		handlers:    handlers,
	}
}

// Engine builds the gin engine with middleware and routes
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(metrics.Get().GinMiddleware())

	SetupRoutes(r, h.authUsecase, h.handlers)
	return r
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[Server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
