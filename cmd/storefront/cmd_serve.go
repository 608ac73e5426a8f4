package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inkwell/storefront/internal/api"
	"github.com/inkwell/storefront/internal/api/handler"
	"github.com/inkwell/storefront/internal/core/ports"
	"github.com/inkwell/storefront/internal/core/service"
	"github.com/inkwell/storefront/internal/infrastructure/db/mongo"
	"github.com/inkwell/storefront/internal/infrastructure/db/redis"
	"github.com/inkwell/storefront/internal/infrastructure/messaging"
	"github.com/inkwell/storefront/internal/infrastructure/messaging/rabbitmq"
	"github.com/inkwell/storefront/internal/infrastructure/queue"
	"github.com/inkwell/storefront/internal/infrastructure/ratelimit"
	"github.com/inkwell/storefront/internal/pkg/config"
	"github.com/inkwell/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "storefront",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		_ = mongoClient.Disconnect(context.Background())
		return err
	}

	checks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
		"redis":   redis.HealthCheck(rdb),
	}

	var (
		sink   ports.EventSink
		mailer ports.Mailer
		broker *rabbitmq.Broker
	)
	if cfg.RabbitMQ.URL != "" {
		broker, err = rabbitmq.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			_ = rdb.Close()
			_ = mongoClient.Disconnect(context.Background())
			return err
		}
		sink, mailer = rabbitmq.NewEventSink(broker), rabbitmq.NewMailer(broker)
		checks["rabbitmq"] = func(context.Context) error {
			if !broker.Healthy() {
				return errors.New("connection closed")
			}
			return nil
		}
	} else {
		log.Warn().Msg("RABBITMQ_URL not set, events and mail are logged only")
		sink = messaging.NewLogSink(logger.Component("events"))
		mailer = messaging.NewLogMailer(logger.Component("mail"))
	}

	dispatcher := queue.NewDispatcher(cfg.EventWorkers, sink, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	sessions := service.NewSessionService(cfg.JWTSecret, cfg.SessionTTL, dispatcher, logger.Component("sessions"))
	router := api.NewRouter(api.Dependencies{
		Auth: service.NewAuthService(
			mongo.NewAuthRepository(db),
			sessions,
			newRateLimiter(cfg, rdb),
			mailer,
			logger.Component("auth"),
		),
		Sessions:    sessions,
		Carts:       service.NewCartService(redis.NewCartStore(rdb, cfg.Redis.CartTTL), mongo.NewProductRepository(db), logger.Component("cart")),
		Orders:      service.NewOrderService(mongo.NewOrderRepository(db), dispatcher, cfg.TaxRate, logger.Component("orders")),
		PrintOrders: service.NewPrintOrderService(mongo.NewPrintOrderRepository(db), dispatcher, logger.Component("print_orders")),

		Checks:         checks,
		Cookies:        handler.CookieConfig{Secure: cfg.CookieSecure, SessionTTL: sessions.TTL(), CartTTL: cfg.Redis.CartTTL},
		RequestTimeout: cfg.RequestTimeout,
		Log:            logger.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		return shutdown(log, router.Shutdown, dispatcher, broker, mongoClient.Disconnect, rdb)
	})

	return g.Wait()
}

// shutdown stops intake first, then drains events, then closes backends.
func shutdown(
	log zerolog.Logger,
	stopHTTP func(context.Context) error,
	dispatcher *queue.Dispatcher,
	broker *rabbitmq.Broker,
	disconnectMongo func(context.Context) error,
	rdb *goredis.Client,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := stopHTTP(ctx)
	if err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	dispatcher.Stop()
	if broker != nil {
		broker.Close()
	}
	if derr := disconnectMongo(ctx); derr != nil {
		log.Error().Err(derr).Msg("mongo disconnect")
	}
	if rerr := rdb.Close(); rerr != nil {
		log.Error().Err(rerr).Msg("redis close")
	}
	return err
}

func newRateLimiter(cfg *config.Config, rdb *goredis.Client) ports.RateLimiter {
	if cfg.RateLimit.Backend == "memory" {
		return ratelimit.NewMemory(cfg.RateLimit.Max, cfg.RateLimit.Window)
	}
	return redis.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)
}
