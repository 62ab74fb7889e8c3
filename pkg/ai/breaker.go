package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while a provider's breaker rejects calls
var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerConfig holds the configuration for the circuit breaker
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures required to trip the circuit
	MaxFailures uint32
	// Timeout is how long the circuit stays open before allowing a probe
	Timeout time.Duration
	// HalfOpenMaxSuccesses is the number of probe requests allowed while half-open
	HalfOpenMaxSuccesses uint32
}

// BreakerGenerator protects a Generator from cascading failures
type BreakerGenerator struct {
	name    string
	next    Generator
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerGenerator(name string, next Generator, cfg BreakerConfig) *BreakerGenerator {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenMaxSuccesses,
		Interval:    0, // Don't clear counts periodically
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("[AI] Circuit %s: %s -> %s", name, from, to)
		},
		// A caller giving up is not a provider failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	return &BreakerGenerator{
		name:    name,
		next:    next,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.next.Generate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%s: %w", b.name, ErrCircuitOpen)
		}
		return "", err
	}
	return result.(string), nil
}

// State exposes the breaker state for health reporting
func (b *BreakerGenerator) State() string {
	return b.breaker.State().String()
}
