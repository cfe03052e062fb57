package middleware

import (
    "context"
    "fmt"
    "math"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/concert-ticketing/internal/config"
)

// RateDecision is the outcome of one limiter check.
type RateDecision struct {
    Allowed    bool
    Remaining  int
    RetryAfter time.Duration
}

// Limiter admits or rejects one request for key.
type Limiter interface {
    Allow(ctx context.Context, key string) (RateDecision, error)
}

// gcraScript keeps one "theoretical arrival time" per key (generic cell
// rate algorithm): a request is admitted while that time stays within
// burst*emission of now.  All times are milliseconds.
var gcraScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local emission = tonumber(ARGV[2])
local burst = tonumber(ARGV[3])

local tat = tonumber(redis.call('GET', KEYS[1]))
if tat == nil or tat < now then
    tat = now
end
local next_tat = tat + emission
local allow_at = next_tat - emission * burst
if allow_at > now then
    return {0, 0, allow_at - now}
end
redis.call('SET', KEYS[1], string.format('%.0f', next_tat), 'PX', string.format('%.0f', next_tat - now))
return {1, math.floor((now - allow_at) / emission), 0}
`)

// RedisLimiter shares limits between storefront instances through Redis.
type RedisLimiter struct {
    rdb   *redis.Client
    burst int
    every time.Duration
    now   func() time.Time
}

// NewRedisLimiter returns a limiter allowing burst requests per key and one
// more every interval (at least a millisecond).
func NewRedisLimiter(rdb *redis.Client, burst int, every time.Duration) *RedisLimiter {
    return &RedisLimiter{rdb: rdb, burst: max(burst, 1), every: max(every, time.Millisecond), now: time.Now}
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (RateDecision, error) {
    res, err := gcraScript.Run(ctx, l.rdb, []string{key},
        l.now().UnixMilli(), l.every.Milliseconds(), l.burst).Int64Slice()
    if err != nil {
        return RateDecision{}, err
    }
    if len(res) != 3 {
        return RateDecision{}, fmt.Errorf("ratelimit: unexpected script result %v", res)
    }
    return RateDecision{
        Allowed:    res[0] == 1,
        Remaining:  int(res[1]),
        RetryAfter: time.Duration(res[2]) * time.Millisecond,
    }, nil
}

// NewRedisRateLimit limits storefront requests with a RedisLimiter.
// Without a client it passes every request through.
func NewRedisRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if rdb == nil {
        return NewRateLimit(cfg, nil)
    }
    return NewRateLimit(cfg, NewRedisLimiter(rdb, cfg.Burst, cfg.Every))
}

// NewRateLimit rejects requests over the limit with 429 and a Retry-After
// header.  Limiter errors let the request through.
func NewRateLimit(cfg config.RateLimitConfig, limiter Limiter) echo.MiddlewareFunc {
    if !cfg.Enabled || limiter == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := cfg.Prefix + ":" + rateSubject(c)
            d, err := limiter.Allow(c.Request().Context(), key)
            if err != nil {
                c.Logger().Warnf("ratelimit: %s: %v", key, err)
                return next(c)
            }
            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
            h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
            if !d.Allowed {
                secs := int(math.Ceil(d.RetryAfter.Seconds()))
                h.Set("Retry-After", strconv.Itoa(max(secs, 1)))
                return c.JSON(http.StatusTooManyRequests, echo.Map{
                    "error": "rate limit exceeded",
                    "code":  "too_many_requests",
                })
            }
            return next(c)
        }
    }
}
