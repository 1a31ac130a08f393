package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/noah-isme/lernplan-api/api/swagger"
	"github.com/noah-isme/lernplan-api/internal/handler"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
	"github.com/noah-isme/lernplan-api/internal/service"
	"github.com/noah-isme/lernplan-api/pkg/cache"
	"github.com/noah-isme/lernplan-api/pkg/config"
	"github.com/noah-isme/lernplan-api/pkg/database"
	"github.com/noah-isme/lernplan-api/pkg/jobs"
	"github.com/noah-isme/lernplan-api/pkg/logger"
)

// @title Lernplan API
// @version 1.0.0
// @description Study plan calendar: slot grid, contents, sessions, rule checks and redistribution.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

type planEvents interface {
	Publish(ctx context.Context, event models.PlanEvent) error
	Subscribe(ctx context.Context, onEvent func(models.PlanEvent)) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Auth.Required && cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_REQUIRED is set but SUPABASE_JWT_SECRET is empty")
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	pingers := map[string]handler.Pinger{}

	var (
		store       repository.KVStore
		redisClient *redis.Client
		db          *sqlx.DB
		err         error
	)

	switch cfg.Store.Driver {
	case config.StoreRedis:
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		redisStore := repository.NewRedisStore(redisClient)
		store = redisStore
		pingers["redis"] = redisStore
	case config.StorePostgres:
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		pgStore := repository.NewPostgresStore(db)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		store = pgStore
		pingers["postgres"] = pgStore

		// Redis is optional next to Postgres; it only backs the cache and the event bus.
		if cfg.Rules.CacheEnabled {
			if client, err := cache.NewRedis(ctx, cfg.Redis); err != nil {
				logr.Warn("redis unavailable, running without rule cache", zap.Error(err))
			} else {
				redisClient = client
				pingers["redis"] = repository.NewRedisStore(client)
			}
		}
	case config.StoreMemory:
		logr.Warn("using in-memory store, plan data is lost on restart")
		store = repository.NewMemoryStore()
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if db != nil {
		defer db.Close()
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	docs := repository.NewPlanRepository(store, metrics)

	var (
		cacheRepo service.CacheRepository
		events    planEvents
	)
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, "cache:", logr)
		events = repository.NewRedisPlanEvents(redisClient, cfg.Events.Channel, logr)
	} else {
		events = repository.NewLocalPlanEvents()
	}
	ruleCache := service.NewCacheService(cacheRepo, metrics, cfg.Rules.CacheTTL, logr, cfg.Rules.CacheEnabled)

	publisher := service.NewPlanChangePublisher(events, ruleCache, logr)

	validate := validator.New()
	planService := service.NewPlanService(docs, publisher, validate, logr)
	slotService := service.NewSlotService(docs, publisher, validate, logr)
	contentService := service.NewContentService(docs, validate, logr)
	sessionService := service.NewSessionService(docs)
	ruleService := service.NewRuleService(docs, publisher, ruleCache, metrics, validate, logr, cfg.Rules.CacheTTL)
	migrationService := service.NewMigrationService(docs, publisher, validate, logr)
	exportService := service.NewExportService(docs, nil, nil, logr)

	eventQueue := jobs.NewQueue("plan-events", func(ctx context.Context, job jobs.Job[models.PlanEvent]) error {
		return ruleService.ProcessPlanEvent(ctx, job.Payload)
	}, jobs.QueueConfig{
		Workers:    cfg.Events.Workers,
		MaxRetries: cfg.Events.MaxRetries,
		Logger:     logr,
	})
	eventQueue.Start(ctx)
	defer eventQueue.Stop()

	onEvent := func(event models.PlanEvent) {
		job := jobs.Job[models.PlanEvent]{ID: event.PlanID + "@" + event.OccurredAt.Format(time.RFC3339Nano), Payload: event}
		if err := eventQueue.Enqueue(job); err != nil {
			logr.Warn("plan event queue rejected job, handling inline", zap.Error(err))
			ruleService.HandlePlanEvent(event)
		}
	}
	if err := events.Subscribe(ctx, onEvent); err != nil {
		return fmt.Errorf("subscribe plan events: %w", err)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Config:    cfg,
		Logger:    logr,
		Metrics:   metrics,
		Plans:     handler.NewPlanHandler(planService),
		Slots:     handler.NewSlotHandler(slotService),
		Contents:  handler.NewContentHandler(contentService),
		Sessions:  handler.NewSessionHandler(sessionService),
		Rules:     handler.NewRuleHandler(ruleService),
		Migration: handler.NewMigrationHandler(migrationService),
		Export:    handler.NewExportHandler(exportService),
		Health:    handler.NewMetricsHandler(metrics, pingers),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("auth_required", cfg.Auth.Required),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logr.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
