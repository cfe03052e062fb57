package main // Entry point package

import (
	"context"   // server lifetime
	"database/sql"
	"errors"
	"log"       // Logging library
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo's request logger and recovery
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/concert-ticketing/internal/checkout"
	"github.com/iliyamo/concert-ticketing/internal/config"   // Internal config loader
	"github.com/iliyamo/concert-ticketing/internal/database" // MySQL catalog connection
	"github.com/iliyamo/concert-ticketing/internal/handler"
	"github.com/iliyamo/concert-ticketing/internal/middleware"
	"github.com/iliyamo/concert-ticketing/internal/queue"
	"github.com/iliyamo/concert-ticketing/internal/repository"
	"github.com/iliyamo/concert-ticketing/internal/router" // Internal router setup
	"github.com/iliyamo/concert-ticketing/internal/selection"
	"github.com/iliyamo/concert-ticketing/internal/service"
	"github.com/iliyamo/concert-ticketing/internal/session"
)

func main() {
	config.LoadDotEnv()  // Pick up .env when present
	cfg := config.Load() // Load environment config

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, db := openCatalog(ctx, cfg)
	if db != nil {
		defer db.Close()
	}

	// Redis is optional: without it caching and rate limiting are skipped.
	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		log.Printf("redis unavailable, continuing without cache and rate limit: %v", err)
	} else {
		defer rdb.Close()
	}

	selections := session.NewStore[*selection.Selection]("selection", cfg.SessionTTL)
	checkouts := session.NewStore[*checkout.Machine]("checkout", cfg.SessionTTL)
	go selections.Run(ctx, cfg.SessionSweepInterval)
	go checkouts.Run(ctx, cfg.SessionSweepInterval)

	var publisher handler.OrderPublisher
	if cfg.QueueEnabled {
		publisher = service.NewQueuePublisher(cfg.AMQPURL)
		go func() {
			if err := queue.StartOrderConsumer(ctx, cfg.AMQPURL, cfg.OrderLogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("order consumer stopped: %v", err)
			}
		}()
	}

	e := newServer(cfg, catalog, rdb, selections, checkouts, publisher)

	addr := ":" + cfg.Port                                                          // Address string with port
	log.Printf("listening on %s (env=%s, catalog=%s)", addr, cfg.Env, cfg.CatalogSource) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) { // Start HTTP server
			log.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// openCatalog returns the configured concert source.  The *sql.DB is
// non-nil only for the MySQL catalog and must be closed by the caller.
func openCatalog(ctx context.Context, cfg config.Config) (handler.ConcertSource, *sql.DB) {
	if cfg.CatalogSource != config.CatalogMySQL {
		return repository.NewStaticConcertRepo(), nil
	}
	db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("catalog database: %v", err)
	}
	return repository.NewConcertRepo(db), db
}

func newServer(
	cfg config.Config,
	catalog handler.ConcertSource,
	rdb *redis.Client,
	selections *session.Store[*selection.Selection],
	checkouts *session.Store[*checkout.Machine],
	publisher handler.OrderPublisher,
) *echo.Echo {
	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	storefront := handler.NewStorefrontHandler(
		catalog,
		selections,
		checkouts,
		session.NewLedger(rdb, "concerts:order-token"),
		publisher,
		cfg.OrderTokenSecret,
		cfg.OrderTokenTTL,
		handler.DefaultPaymentInfo(cfg.PaymentAppURL, cfg.PaymentQRImage),
	)

	router.RegisterRoutes(e) // Register application routes
	router.RegisterCatalog(e, handler.NewConcertHandler(catalog), middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterStorefront(e, storefront, cfg.OrderTokenSecret, middleware.NewRedisRateLimit(config.LoadRateLimitConfig(), rdb))
	return e
}
