package ratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/config"
	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/mocks"
	"github.com/artfolio/artwork-indexer/internal/ratelimit"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func testConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		BaseDelay:         100 * time.Millisecond,
		MaxDelay:          5 * time.Second,
		BackoffMultiplier: 2.0,
		MaxRetries:        3,
		AdaptiveThreshold: 2,
		BatchSize:         10,
	}
}

// immediateClock returns a MockClock whose After fires immediately so tests
// never actually sleep
func immediateClock(ctrl *gomock.Controller) *mocks.MockClock {
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().After(gomock.Any()).DoAndReturn(func(time.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}).AnyTimes()
	return clock
}

func TestNewLimiter_InvalidConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.BaseDelay = 0

	_, err := ratelimit.NewLimiter("test", cfg, immediateClock(ctrl))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base_delay")
}

func TestLimiter_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, err := ratelimit.NewLimiter("test", testConfig(), immediateClock(ctrl))
	assert.NoError(t, err)

	result, err := ratelimit.Execute(context.Background(), l, func(ctx context.Context) (string, error) {
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, l.State().ConsecutiveSuccesses)
	assert.Equal(t, 0, l.State().ConsecutiveFailures)
}

func TestLimiter_DelayDecreasesAfterThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.AdaptiveThreshold = 3

	l, err := ratelimit.NewLimiter("test", cfg, immediateClock(ctrl))
	assert.NoError(t, err)

	// Drive the delay up first with a throttled call
	_, err = l.Do(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, domain.ErrRateLimited
	})
	assert.Error(t, err)

	raised := l.State().CurrentDelay
	assert.Greater(t, raised, cfg.BaseDelay)

	// After adaptive_threshold consecutive successes, delay strictly decreases
	for i := 0; i < cfg.AdaptiveThreshold; i++ {
		_, err = l.Do(context.Background(), func(ctx context.Context) (interface{}, error) {
			return "ok", nil
		})
		assert.NoError(t, err)
	}

	lowered := l.State().CurrentDelay
	assert.Less(t, lowered, raised)
	assert.GreaterOrEqual(t, lowered, cfg.BaseDelay)
	assert.Equal(t, 0, l.State().ConsecutiveSuccesses)
}

func TestLimiter_DelayNeverBelowBase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.AdaptiveThreshold = 1

	l, err := ratelimit.NewLimiter("test", cfg, immediateClock(ctrl))
	assert.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = l.Do(context.Background(), func(ctx context.Context) (interface{}, error) {
			return "ok", nil
		})
		assert.NoError(t, err)
	}

	assert.Equal(t, cfg.BaseDelay, l.State().CurrentDelay)
}

func TestLimiter_RateLimitGrowsDelayAndRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	l, err := ratelimit.NewLimiter("test", cfg, immediateClock(ctrl))
	assert.NoError(t, err)

	calls := 0
	before := l.State().CurrentDelay
	result, err := l.Do(context.Background(), func(ctx context.Context) (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, &adapter.HTTPError{StatusCode: http.StatusTooManyRequests, URL: "https://api.test/x"}
		}
		return "recovered", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "recovered", result)
	assert.Equal(t, 2, calls)

	// Delay strictly increased, bounded by max_delay
	after := l.State().CurrentDelay
	assert.Greater(t, after, before)
	assert.LessOrEqual(t, after, cfg.MaxDelay)
}

func TestLimiter_RateLimitExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	l, err := ratelimit.NewLimiter("test", cfg, immediateClock(ctrl))
	assert.NoError(t, err)

	calls := 0
	_, err = l.Do(context.Background(), func(ctx context.Context) (interface{}, error) {
		calls++
		return nil, domain.ErrRateLimited
	})

	assert.ErrorIs(t, err, domain.ErrRateLimitExhausted)
	assert.Equal(t, cfg.MaxRetries+1, calls)
}

func TestLimiter_DelayBoundedByMax(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.MaxRetries = 20
	cfg.MaxDelay = 400 * time.Millisecond

	l, err := ratelimit.NewLimiter("test", cfg, immediateClock(ctrl))
	assert.NoError(t, err)

	_, err = l.Do(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, domain.ErrRateLimited
	})
	assert.Error(t, err)
	assert.Equal(t, cfg.MaxDelay, l.State().CurrentDelay)
}

func TestLimiter_TransientErrorKeepsDelay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, err := ratelimit.NewLimiter("test", testConfig(), immediateClock(ctrl))
	assert.NoError(t, err)

	before := l.State().CurrentDelay
	calls := 0
	result, err := l.Do(context.Background(), func(ctx context.Context) (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection reset by peer")
		}
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, before, l.State().CurrentDelay)
}

func TestLimiter_PermanentErrorNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l, err := ratelimit.NewLimiter("test", testConfig(), immediateClock(ctrl))
	assert.NoError(t, err)

	calls := 0
	_, err = l.Do(context.Background(), func(ctx context.Context) (interface{}, error) {
		calls++
		return nil, domain.ErrNotFound
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, calls)
}

func TestLimiter_ContextCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().After(gomock.Any()).DoAndReturn(func(time.Duration) <-chan time.Time {
		// Never fires; cancellation must win
		return make(chan time.Time)
	}).AnyTimes()

	l, err := ratelimit.NewLimiter("test", testConfig(), clock)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Do(ctx, func(ctx context.Context) (interface{}, error) {
		t.Fatal("request must not run after cancellation")
		return nil, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecute_NilLimiter(t *testing.T) {
	result, err := ratelimit.Execute[int](context.Background(), nil, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, result)
}
