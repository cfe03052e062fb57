package config

import "time"

// RateLimitConfig configures the limiter on selection and checkout routes.
// Every client starts with Burst requests and regains one per Every.
// Requests that act on an existing selection or checkout are counted
// against that session; opening a new one is counted against the client
// address.
type RateLimitConfig struct {
    Enabled bool
    Burst   int
    Every   time.Duration
    Prefix  string
}

// LoadRateLimitConfig reads RATE_LIMIT_ENABLED, RATE_LIMIT_BURST,
// RATE_LIMIT_EVERY and RATE_LIMIT_PREFIX.  Burst is at least 1 and Every
// defaults to one second.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled: envBool("RATE_LIMIT_ENABLED", true),
        Burst:   envInt("RATE_LIMIT_BURST", 30),
        Every:   envDur("RATE_LIMIT_EVERY", 500*time.Millisecond),
        Prefix:  envStr("RATE_LIMIT_PREFIX", "concerts:rl"),
    }
    cfg.Burst = max(cfg.Burst, 1)
    if cfg.Every <= 0 {
        cfg.Every = time.Second
    }
    return cfg
}
