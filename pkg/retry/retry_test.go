package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2.0,
	}
}

func TestRetrier_Do_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result := New(fastConfig(3)).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	if result.Err != nil {
		t.Fatalf("expected success, got %v", result.Err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if result.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", result.Attempts)
	}
}

func TestRetrier_Do_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	result := New(fastConfig(5)).Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if result.Err != nil {
		t.Fatalf("expected success, got %v", result.Err)
	}
	if result.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", result.Attempts)
	}
}

func TestRetrier_Do_ExhaustsRetries(t *testing.T) {
	transient := errors.New("broker unavailable")
	calls := 0
	result := New(fastConfig(2)).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return transient
	})

	if !errors.Is(result.Err, ErrMaxRetriesExceeded) {
		t.Fatalf("expected ErrMaxRetriesExceeded, got %v", result.Err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls (initial + 2 retries), got %d", calls)
	}
	if !errors.Is(result.LastError, transient) {
		t.Errorf("expected last error %v, got %v", transient, result.LastError)
	}
}

func TestRetrier_Do_PermanentErrorStopsImmediately(t *testing.T) {
	fatal := errors.New("schema mismatch")
	calls := 0
	result := New(fastConfig(5)).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return Permanent(fatal)
	})

	if !errors.Is(result.Err, fatal) {
		t.Fatalf("expected permanent error %v, got %v", fatal, result.Err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetrier_Do_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := &Config{
		MaxRetries:      10,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2.0,
	}

	calls := 0
	result := New(cfg).Do(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("transient")
	})

	if !errors.Is(result.Err, ErrContextCanceled) {
		t.Fatalf("expected ErrContextCanceled, got %v", result.Err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	r := New(nil)
	if r.config.MaxRetries != 5 {
		t.Errorf("expected default MaxRetries 5, got %d", r.config.MaxRetries)
	}
	if r.config.InitialInterval != time.Second {
		t.Errorf("expected default InitialInterval 1s, got %v", r.config.InitialInterval)
	}

	r = New(&Config{MaxRetries: 2, JitterFactor: 3})
	if r.config.JitterFactor != 1 {
		t.Errorf("expected JitterFactor clamped to 1, got %f", r.config.JitterFactor)
	}
}

func TestRetrier_IntervalCapped(t *testing.T) {
	r := New(&Config{
		MaxRetries:      10,
		InitialInterval: time.Second,
		MaxInterval:     4 * time.Second,
		Multiplier:      2.0,
	})

	if got := r.interval(0); got != time.Second {
		t.Errorf("attempt 0: expected 1s, got %v", got)
	}
	if got := r.interval(10); got != 4*time.Second {
		t.Errorf("attempt 10: expected cap of 4s, got %v", got)
	}
}

func TestPermanent_NilPassthrough(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
}
