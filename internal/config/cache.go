package config

import "time"

// CacheConfig configures the Redis cache in front of the catalog routes
// (concert list, home page split and concert detail).  Catalog responses
// do not depend on the caller, so one entry serves every visitor.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration // lifetime of a cached catalog response
    Prefix       string        // Redis key prefix
    MaxBodyBytes int           // larger responses are served but not cached; 0 means no limit
}

// LoadCacheConfig reads CACHE_ENABLED, CACHE_TTL, CACHE_PREFIX and
// CACHE_MAX_BODY_BYTES.
func LoadCacheConfig() CacheConfig {
    cfg := CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        Prefix:       envStr("CACHE_PREFIX", "concerts:cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 256<<10),
    }
    if cfg.TTL <= 0 {
        cfg.TTL = 30 * time.Second
    }
    cfg.MaxBodyBytes = max(cfg.MaxBodyBytes, 0)
    return cfg
}
