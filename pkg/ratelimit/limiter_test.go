package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewLimiter_DefaultInterval(t *testing.T) {
	limiter := NewLimiter(0, zerolog.Nop())

	if limiter.Interval() != DefaultInterval {
		t.Errorf("Interval() = %v, want %v", limiter.Interval(), DefaultInterval)
	}
}

func TestDefaultInterval_MatchesQuota(t *testing.T) {
	// 9 requests spaced one interval apart must fit in 60 seconds
	if 9*DefaultInterval > time.Minute {
		t.Errorf("DefaultInterval = %v, 9 requests exceed one minute", DefaultInterval)
	}
}

func TestWait_FirstRequestImmediate(t *testing.T) {
	limiter := NewLimiter(time.Second, zerolog.Nop())

	start := time.Now()
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("First Wait() took %v, want immediate", elapsed)
	}
}

func TestWait_SpacesRequests(t *testing.T) {
	interval := 150 * time.Millisecond
	limiter := NewLimiter(interval, zerolog.Nop())
	ctx := context.Background()

	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("First Wait() error = %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("Second Wait() error = %v", err)
	}

	if elapsed := time.Since(start); elapsed < interval-20*time.Millisecond {
		t.Errorf("Second Wait() returned after %v, want at least %v", elapsed, interval)
	}
}

func TestWait_NoWaitAfterIdlePeriod(t *testing.T) {
	interval := 50 * time.Millisecond
	limiter := NewLimiter(interval, zerolog.Nop())
	ctx := context.Background()

	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("First Wait() error = %v", err)
	}

	time.Sleep(2 * interval)

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("Second Wait() error = %v", err)
	}

	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Errorf("Wait() after idle period took %v, want immediate", elapsed)
	}
}

func TestWait_ContextCancelled(t *testing.T) {
	limiter := NewLimiter(time.Minute, zerolog.Nop())

	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("First Wait() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	if err != context.DeadlineExceeded {
		t.Errorf("Wait() error = %v, want context.DeadlineExceeded", err)
	}
}
