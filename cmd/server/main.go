package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/skyway-booking/internal/config"
	"github.com/iliyamo/skyway-booking/internal/database"
	"github.com/iliyamo/skyway-booking/internal/handler"
	"github.com/iliyamo/skyway-booking/internal/logger"
	"github.com/iliyamo/skyway-booking/internal/middleware"
	"github.com/iliyamo/skyway-booking/internal/queue"
	"github.com/iliyamo/skyway-booking/internal/repository"
	"github.com/iliyamo/skyway-booking/internal/router"
	"github.com/iliyamo/skyway-booking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional unless it holds the sessions.
	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		if cfg.SessionStore == config.StoreRedis {
			zl.Fatal("redis required for SESSION_STORE=redis", zap.Error(err))
		}
		zl.Warn("redis unavailable; cache and rate limit disabled", zap.Error(err))
	} else {
		defer rdb.Close()
	}

	var sessions service.SessionStore = repository.NewMemorySessionStore()
	if cfg.SessionStore == config.StoreRedis {
		sessions = repository.NewRedisSessionStore(rdb, "")
	}

	var bookings service.BookingRepository = repository.NewMemoryBookingRepo(cfg.MockLatency)
	if cfg.BookingStore == config.StoreMySQL {
		db := openDB(ctx, cfg, zl)
		defer db.Close()
		bookings = repository.NewBookingRepo(db)
	}

	opts := []service.Option{service.WithSessionTTL(cfg.SessionTTL)}
	if cfg.EventsEnabled {
		opts = append(opts, service.WithPublisher(service.NewRabbitPublisher(cfg.AMQPURL, zl)))
		consumer := queue.NewConsumer(cfg.AMQPURL, cfg.BookingLogDir, zl)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zl.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	catalog := repository.NewCatalogRepo(cfg.MockLatency)
	svc := service.NewSeatSessionService(catalog, sessions, bookings, zl, opts...)

	e := newEcho(zl)
	router.RegisterRoutes(e)
	router.RegisterCatalog(e, handler.NewCatalogHandler(catalog), cacheFor(rdb, zl))
	router.RegisterSeatSessions(e, handler.NewSeatSessionHandler(svc, cfg.SessionSecret, zl),
		cfg.SessionSecret, limiterFor(rdb, zl))

	addr := ":" + cfg.Port
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env),
			zap.String("session_store", cfg.SessionStore), zap.String("booking_store", cfg.BookingStore))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}

func newEcho(zl *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestID(), middleware.AccessLog(zl))
	return e
}

func openDB(ctx context.Context, cfg config.Config, zl *zap.Logger) *sql.DB {
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		zl.Fatal("mysql connect", zap.Error(err))
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		zl.Fatal("mysql schema", zap.Error(err))
	}
	return db
}

func cacheFor(rdb *redis.Client, zl *zap.Logger) echo.MiddlewareFunc {
	return middleware.NewRedisCache(config.LoadCacheConfig(), rdb, zl)
}

func limiterFor(rdb *redis.Client, zl *zap.Logger) echo.MiddlewareFunc {
	return middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, zl)
}
