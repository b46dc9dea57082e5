package resilience

import "time"

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// NormalizeCircuitBreakerConfig replaces out-of-range values with the
// defaults, leaving Enabled as given.
func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	out := DefaultCircuitBreakerConfig()
	out.Enabled = cfg.Enabled
	if cfg.FailureThreshold >= 1 {
		out.FailureThreshold = cfg.FailureThreshold
	}
	if cfg.OpenTimeout > 0 {
		out.OpenTimeout = cfg.OpenTimeout
	}
	if cfg.HalfOpenMaxReq >= 1 {
		out.HalfOpenMaxReq = cfg.HalfOpenMaxReq
	}
	return out
}
