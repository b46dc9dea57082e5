package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	breaker := NewCircuitBreaker(3, time.Minute, 1)

	for i := 0; i < 3; i++ {
		if err := breaker.Allow(); err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		breaker.RecordFailure()
	}

	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if breaker.State() != CircuitStateOpen {
		t.Fatalf("unexpected state: %s", breaker.State())
	}
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	now := time.Now()
	breaker := NewCircuitBreaker(1, 10*time.Second, 1)
	breaker.now = func() time.Time { return now }

	breaker.RecordFailure()
	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}

	now = now.Add(11 * time.Second)
	if err := breaker.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass: %v", err)
	}
	breaker.RecordSuccess()

	if breaker.State() != CircuitStateClosed {
		t.Fatalf("expected closed after probe success, got %s", breaker.State())
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	now := time.Now()
	breaker := NewCircuitBreaker(1, 10*time.Second, 1)
	breaker.now = func() time.Time { return now }

	breaker.RecordFailure()
	now = now.Add(11 * time.Second)
	if err := breaker.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass: %v", err)
	}
	breaker.RecordFailure()

	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected reopened circuit, got %v", err)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{})
	defaults := DefaultCircuitBreakerConfig()

	if cfg.FailureThreshold != defaults.FailureThreshold {
		t.Fatalf("unexpected threshold: %d", cfg.FailureThreshold)
	}
	if cfg.OpenTimeout != defaults.OpenTimeout {
		t.Fatalf("unexpected open timeout: %s", cfg.OpenTimeout)
	}
	if cfg.HalfOpenMaxReq != defaults.HalfOpenMaxReq {
		t.Fatalf("unexpected half-open max: %d", cfg.HalfOpenMaxReq)
	}
}
