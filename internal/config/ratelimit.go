package config

import "time"

// RateLimitConfig controls the per-token access limiter. Cooldown is
// the minimum spacing between two requests presented with the same
// bearer token. MaxIdle governs eviction of stale entries and is
// clamped to at least Cooldown, so dropping an idle entry can never
// admit a request the cooldown would have rejected.
//
// RestampOnReject keeps the historical behavior of refreshing the
// last-seen timestamp even when a request is turned away, meaning a
// client hammering the API never gets back in until it pauses for a
// full cooldown.
type RateLimitConfig struct {
	Enabled         bool
	Cooldown        time.Duration
	MaxIdle         time.Duration
	SweepInterval   time.Duration
	RestampOnReject bool
}

// LoadRateLimitConfig reads the limiter settings, applying defaults
// and clamping values that would break the limiter's guarantees.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:         envBool("RATE_LIMIT_ENABLED", true),
		Cooldown:        envDur("RATE_LIMIT_COOLDOWN", 5*time.Second),
		MaxIdle:         envDur("RATE_LIMIT_MAX_IDLE", 10*time.Minute),
		SweepInterval:   envDur("RATE_LIMIT_SWEEP_INTERVAL", time.Minute),
		RestampOnReject: envBool("RATE_LIMIT_RESTAMP_ON_REJECT", true),
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 5 * time.Second
	}
	if cfg.MaxIdle < cfg.Cooldown {
		cfg.MaxIdle = cfg.Cooldown
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return cfg
}
