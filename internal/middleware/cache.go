package middleware

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/concert-ticketing/internal/config"
    "github.com/iliyamo/concert-ticketing/internal/utils"
)

// CatalogStore keeps rendered catalog responses.  Get reports found=false
// for a missing entry.
type CatalogStore interface {
    Get(ctx context.Context, key string) (val []byte, found bool, err error)
    Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// RedisCatalogStore is the CatalogStore used in production.
type RedisCatalogStore struct {
    rdb *redis.Client
}

// Get implements CatalogStore.
func (s RedisCatalogStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
    bs, err := s.rdb.Get(ctx, key).Bytes()
    if errors.Is(err, redis.Nil) {
        return nil, false, nil
    }
    if err != nil {
        return nil, false, err
    }
    return bs, true, nil
}

// Set implements CatalogStore.
func (s RedisCatalogStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
    return s.rdb.Set(ctx, key, val, ttl).Err()
}

// cachedResponse is one catalog cache entry.  Only 200 responses are
// stored, so the status is implied.
type cachedResponse struct {
    ContentType string `json:"content_type"`
    Body        []byte `json:"body"`
}

// catalogCacheKey names the entry of a catalog route: the concert list, the
// featured/upcoming split or one concert.  Concert ids come from the URL,
// so they are hashed before going into a Redis key.
func catalogCacheKey(prefix string, c echo.Context) (string, bool) {
    switch c.Path() {
    case "/v1/concerts":
        return prefix + ":list", true
    case "/v1/concerts/featured":
        return prefix + ":featured", true
    case "/v1/concerts/:id":
        return prefix + ":concert:" + utils.HashKey(c.Param("id")), true
    }
    return "", false
}

// bodyRecorder tees the response body into buf until limit is exceeded;
// after that the entry is marked oversized and nothing more is kept.
type bodyRecorder struct {
    http.ResponseWriter
    status    int
    buf       bytes.Buffer
    limit     int
    oversized bool
}

func (r *bodyRecorder) WriteHeader(code int) {
    r.status = code
    r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
    if !r.oversized {
        if r.limit > 0 && r.buf.Len()+len(b) > r.limit {
            r.oversized = true
            r.buf.Reset()
        } else {
            r.buf.Write(b)
        }
    }
    return r.ResponseWriter.Write(b)
}

// NewRedisCache caches catalog responses in Redis.  Without a client it
// passes every request through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if rdb == nil {
        return NewCatalogCache(cfg, nil)
    }
    return NewCatalogCache(cfg, RedisCatalogStore{rdb: rdb})
}

// NewCatalogCache serves GET catalog routes from store and fills it on a
// miss.  Responses are marked with X-Cache HIT or MISS.  Error responses
// and bodies over cfg.MaxBodyBytes are never stored.  Store failures are
// logged and the request is served by the handler.
func NewCatalogCache(cfg config.CacheConfig, store CatalogStore) echo.MiddlewareFunc {
    if !cfg.Enabled || store == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            key, ok := catalogCacheKey(cfg.Prefix, c)
            if !ok {
                return next(c)
            }
            ctx := c.Request().Context()

            raw, found, err := store.Get(ctx, key)
            if err != nil {
                c.Logger().Warnf("catalog cache: get %s: %v", key, err)
            }
            if found {
                var hit cachedResponse
                if err := json.Unmarshal(raw, &hit); err == nil {
                    c.Response().Header().Set("X-Cache", "HIT")
                    return c.Blob(http.StatusOK, hit.ContentType, hit.Body)
                }
            }

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = rec
            defer func() { c.Response().Writer = rec.ResponseWriter }()
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if rec.status != http.StatusOK || rec.oversized {
                return nil
            }
            entry, err := json.Marshal(cachedResponse{
                ContentType: c.Response().Header().Get(echo.HeaderContentType),
                Body:        rec.buf.Bytes(),
            })
            if err == nil {
                err = store.Set(context.WithoutCancel(ctx), key, entry, cfg.TTL)
            }
            if err != nil {
                c.Logger().Warnf("catalog cache: set %s: %v", key, err)
            }
            return nil
        }
    }
}
