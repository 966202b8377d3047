package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/config"
	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/logger"
)

// RequestFunc is a function that performs the actual API request
type RequestFunc func(ctx context.Context) (interface{}, error)

// State is a snapshot of the limiter's adaptive pacing state
type State struct {
	CurrentDelay         time.Duration
	ConsecutiveSuccesses int
	ConsecutiveFailures  int
	BatchSize            int
}

// Limiter paces outbound calls to a single provider, adapting its delay to
// observed success and throttling. It is the only component that sleeps;
// callers are otherwise delay-free.
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockLimiter
type Limiter interface {
	// Do executes a rate-limited request, retrying throttled and transient
	// failures within the configured budget
	Do(ctx context.Context, fn RequestFunc) (interface{}, error)

	// State returns a snapshot of the current pacing state
	State() State
}

// limiter is the concrete adaptive limiter for one provider instance
type limiter struct {
	name   string
	config config.RateLimitConfig
	clock  adapter.Clock

	mu                   sync.Mutex
	currentDelay         time.Duration
	consecutiveSuccesses int
	consecutiveFailures  int
}

// NewLimiter creates an adaptive limiter for a named provider
func NewLimiter(name string, cfg config.RateLimitConfig, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", name, err)
	}

	return &limiter{
		name:         name,
		config:       cfg,
		clock:        clock,
		currentDelay: cfg.BaseDelay,
	}, nil
}

// Execute executes a rate-limited request and returns the result with type safety
func Execute[T any](ctx context.Context, l Limiter, fn func(ctx context.Context) (T, error)) (T, error) {
	// If no limiter is configured, execute the function directly
	if l == nil {
		return fn(ctx)
	}

	var zero T
	result, err := l.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}

// Do executes a rate-limited request, retrying throttled and transient
// failures within the configured budget
func (l *limiter) Do(ctx context.Context, fn RequestFunc) (interface{}, error) {
	var lastErr error

	for attempt := 0; attempt <= l.config.MaxRetries; attempt++ {
		if err := l.pace(ctx); err != nil {
			return nil, err
		}

		result, err := fn(ctx)
		if err == nil {
			l.recordSuccess()
			return result, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		switch {
		case isRateLimitSignal(err):
			l.recordRateLimit()
			logger.WarnCtx(ctx, "Provider throttled request, backing off",
				zap.String("provider", l.name),
				zap.Int("attempt", attempt+1),
				zap.Duration("nextDelay", l.State().CurrentDelay),
			)
		case isTransient(err):
			// Transient network failure: retry within the same budget, but
			// do not change the delay
			l.recordFailure()
			logger.WarnCtx(ctx, "Transient provider error, retrying",
				zap.String("provider", l.name),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
		default:
			// Permanent errors surface immediately
			return nil, err
		}
	}

	if isRateLimitSignal(lastErr) {
		return nil, fmt.Errorf("%w: %s after %d attempts", domain.ErrRateLimitExhausted, l.name, l.config.MaxRetries+1)
	}
	return nil, fmt.Errorf("request to %s failed after %d attempts: %w", l.name, l.config.MaxRetries+1, lastErr)
}

// State returns a snapshot of the current pacing state
func (l *limiter) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return State{
		CurrentDelay:         l.currentDelay,
		ConsecutiveSuccesses: l.consecutiveSuccesses,
		ConsecutiveFailures:  l.consecutiveFailures,
		BatchSize:            l.config.BatchSize,
	}
}

// pace sleeps for the current delay, cancellable through the context
func (l *limiter) pace(ctx context.Context) error {
	l.mu.Lock()
	delay := l.currentDelay
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.clock.After(delay):
		return nil
	}
}

// recordSuccess shortens the delay after a sustained run of successes
func (l *limiter) recordSuccess() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.consecutiveFailures = 0
	l.consecutiveSuccesses++
	if l.consecutiveSuccesses >= l.config.AdaptiveThreshold {
		reduced := time.Duration(float64(l.currentDelay) / l.config.BackoffMultiplier)
		l.currentDelay = max(reduced, l.config.BaseDelay)
		l.consecutiveSuccesses = 0
	}
}

// recordRateLimit multiplies the delay, bounded by the configured maximum
func (l *limiter) recordRateLimit() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.consecutiveSuccesses = 0
	l.consecutiveFailures++
	grown := time.Duration(float64(l.currentDelay) * l.config.BackoffMultiplier)
	l.currentDelay = min(grown, l.config.MaxDelay)
}

// recordFailure tracks a transient failure without touching the delay
func (l *limiter) recordFailure() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.consecutiveSuccesses = 0
	l.consecutiveFailures++
}

// isRateLimitSignal reports whether the error is an HTTP 429 or a
// provider-specific throttle error
func isRateLimitSignal(err error) bool {
	return errors.Is(err, domain.ErrRateLimited) || adapter.IsStatus(err, http.StatusTooManyRequests)
}

// isTransient reports whether the error is worth retrying without backoff.
// Server-side errors and plain network failures qualify; other HTTP statuses
// and domain errors are permanent.
func isTransient(err error) bool {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrMalformedRecord) {
		return false
	}

	var httpErr *adapter.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}

	// Non-HTTP errors at this point are network failures
	return true
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *config.RateLimitConfig) error {
	if cfg.BaseDelay <= 0 {
		return errors.New("base_delay must be positive")
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		return errors.New("max_delay must be >= base_delay")
	}
	if cfg.BackoffMultiplier <= 1.0 {
		return errors.New("backoff_multiplier must be > 1")
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.AdaptiveThreshold <= 0 {
		cfg.AdaptiveThreshold = 10
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return nil
}
