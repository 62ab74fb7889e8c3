package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// AI metrics
	AIRequests *prometheus.CounterVec
	AILatency  *prometheus.HistogramVec

	// Moment metrics
	MomentsCreated     *prometheus.CounterVec
	MomentMatches      *prometheus.CounterVec
	RateLimitRejected  *prometheus.CounterVec
	LearningFeedback   *prometheus.CounterVec
	CalendarEventsSeen prometheus.Counter
	PushNotifications  *prometheus.CounterVec
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

// Get returns the process-wide metrics, registering them on first use
func Get() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "thoughtfolio_http_requests_total",
					Help: "Total HTTP requests",
				},
				[]string{"method", "route", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "thoughtfolio_http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
			AIRequests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "thoughtfolio_ai_requests_total",
					Help: "AI requests by operation and outcome",
				},
				[]string{"operation", "outcome"},
			),
			AILatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "thoughtfolio_ai_latency_seconds",
					Help:    "AI request latency in seconds",
					Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s to 32s
				},
				[]string{"operation"},
			),
			MomentsCreated: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "thoughtfolio_moments_created_total",
					Help: "Moments created by source",
				},
				[]string{"source"},
			),
			MomentMatches: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "thoughtfolio_moment_matches_total",
					Help: "Thoughts matched to moments by match source",
				},
				[]string{"match_source"},
			),
			RateLimitRejected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "thoughtfolio_rate_limit_rejected_total",
					Help: "Requests rejected by the per-user rate limiter",
				},
				[]string{"scope"},
			),
			LearningFeedback: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "thoughtfolio_learning_feedback_total",
					Help: "Helpful/not helpful feedback recorded",
				},
				[]string{"helpful"},
			),
			CalendarEventsSeen: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "thoughtfolio_calendar_events_synced_total",
					Help: "Calendar events fetched from providers",
				},
			),
			PushNotifications: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "thoughtfolio_push_notifications_total",
					Help: "Push notifications sent by outcome",
				},
				[]string{"outcome"},
			),
		}
	})
	return sharedMetrics
}

// ObserveAI records one AI call
func (m *Metrics) ObserveAI(operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.AIRequests.WithLabelValues(operation, outcome).Inc()
	m.AILatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// GinMiddleware records request count and latency per route
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
