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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	_ "github.com/johnquangdev/meeting-insights/docs"
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-insights/internal/adapter/handler"
	"github.com/johnquangdev/meeting-insights/internal/adapter/repository"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/meeting-insights/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-insights/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-insights/pkg/ai"
	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/johnquangdev/meeting-insights/pkg/events"
	"github.com/johnquangdev/meeting-insights/pkg/jwt"
	pkgmw "github.com/johnquangdev/meeting-insights/pkg/middleware"
	pkgvalidator "github.com/johnquangdev/meeting-insights/pkg/validator"
)

// @title           Meeting Insights API
// @version         1.0
// @description     Extracts structured facts and sentiment analysis from banker-customer meeting transcripts.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin token: "Bearer <token>" (see cmd/token)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics and lifecycle events
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	dispatcher := events.NewDispatcher(cfg.Pipeline.EventBufferSize, logger, events.NewLogObserver(logger), m)
	dispatcher.OnDrop(m.EventDropped)
	defer dispatcher.Close()

	// Result cache
	store, closeStore, err := newResultCache(cfg, dispatcher)
	if err != nil {
		return err
	}
	defer closeStore()

	// Generator and pipeline
	generator, err := ai.New(ctx, cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("init %s generator: %w", cfg.LLM.Provider, err)
	}
	logger.Info("generator ready",
		zap.String("provider", generator.Name()),
		zap.String("model", cfg.LLM.Model()),
	)

	prompts, err := pipeline.LoadPrompts(cfg.Pipeline.PromptsFile)
	if err != nil {
		return fmt.Errorf("load prompts: %w", err)
	}

	var (
		runLog  repositories.RunLog
		runCtrl *handler.RunController
	)
	if cfg.Database.RunLogEnabled {
		db, err := openRunLogDB(cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = database.CloseDB(db) }()
		repo := repository.NewPipelineRunRepository(db)
		runLog = repo
		runCtrl = handler.NewRunController(repo, logger)
	}

	var archive repositories.TranscriptArchive
	if cfg.Archive.Enabled {
		a, err := storage.NewMinIOArchive(ctx, cfg.Archive)
		if err != nil {
			return fmt.Errorf("init transcript archive: %w", err)
		}
		archive = a
		logger.Info("transcript archive enabled", zap.String("bucket", cfg.Archive.BucketName))
	}

	retrier := pipeline.NewRetrier(pipeline.RetryPolicyFromConfig(cfg.Retry), dispatcher, logger)
	repairer := pipeline.NewRepairer(generator, pipeline.NewValidator(), prompts, dispatcher, logger)
	svc := pipeline.NewPipelineService(generator, store, prompts, retrier, repairer, pipeline.Options{
		Timeout:  cfg.Pipeline.Timeout,
		Recorder: m,
		Archive:  archive,
		RunLog:   runLog,
	}, logger)

	// HTTP server
	e := echo.New()
	e.HideBanner = true

	v := pkgvalidator.New()
	v.RegisterStructValidation(meeting.ValidateMeetingRequest, meeting.MeetingRequest{})
	e.Validator = v

	e.Use(middleware.Recover())
	e.Use(pkgmw.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	rateLimit := httpmw.RateLimit(httpmw.RateLimitConfig{
		PerMinute: cfg.RateLimit.PerMinute,
		OnLimited: m.RateLimited,
	})
	var tokens *jwt.Manager
	if cfg.Admin.JWTSecret != "" {
		tokens = jwt.NewManager(cfg.Admin.JWTSecret, cfg.Admin.TokenExpiry)
	} else {
		logger.Warn("ADMIN_JWT_SECRET not set, admin routes are unauthenticated")
	}

	router := handler.NewRouter(cfg, handler.NewMeetingController(svc, logger), runCtrl, registry, rateLimit, httpmw.AdminAuth(tokens))
	router.Setup(e)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.String("cache_backend", cfg.Cache.Backend),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newResultCache builds the configured cache backend. The returned func
// releases its connections.
func newResultCache(cfg *config.Config, em events.Emitter) (repositories.ResultCache, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		store := cache.NewRedisStore(client, cfg.Cache.KeyPrefix, cfg.Cache.TTL(), em)
		return store, func() { _ = client.Close() }, nil
	default:
		store := cache.NewMemoryStore(cfg.Cache.TTL(), cache.WithEmitter(em))
		return store, func() {}, nil
	}
}

// openRunLogDB connects to PostgreSQL and, outside production, applies
// pending migrations when DB_AUTO_MIGRATE is set
func openRunLogDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		return nil, err
	}
	if !cfg.Database.AutoMigrate {
		return db, nil
	}
	if cfg.Server.Environment == "production" {
		_ = database.CloseDB(db)
		return nil, errors.New("DB_AUTO_MIGRATE is not allowed in production; run cmd/migrate")
	}
	n, err := database.Migrate(db, migrate.Up)
	if err != nil {
		_ = database.CloseDB(db)
		return nil, err
	}
	logger.Info("applied migrations", zap.Int("count", n))
	return db, nil
}
