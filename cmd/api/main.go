package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/search"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/config"
	domainRepo "github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/cache"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/database"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/observability"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/repository"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/upstream"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/handler"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Version:     cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Console tables: idempotency keys and the audit log
	var (
		idempotencyRepo domainRepo.IdempotencyRepository
		auditRepo       domainRepo.AuditRepository
	)
	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		idempotencyRepo = repository.NewIdempotencyRepository(db)
		auditRepo = repository.NewAuditRepository(db)
		go database.PruneIdempotencyKeys(ctx, idempotencyRepo, time.Hour)
	} else {
		log.Println("Warning: database disabled, audit entries go to the log and idempotency keys are not stored")
	}

	// Snapshot cache
	var snapshots cache.Cache = cache.NewInMemoryCache()
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.Prefix)
		if err != nil {
			log.Printf("Warning: Redis unavailable, using in-memory cache: %v", err)
		} else {
			defer redisCache.Close()
			snapshots = redisCache
		}
	}

	// Loyalty API
	client := upstream.NewClient(upstream.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		Timeout:  cfg.Upstream.Timeout,
		PageSize: cfg.Upstream.PageSize,
		MaxPages: cfg.Upstream.MaxPages,
		Debug:    cfg.App.Debug,
	})
	repos := repository.NewLoyaltyRepositories(client, upstream.ResolveResources(cfg.Upstream.Paths))

	// Initialize services
	services := service.NewServices(repos, service.CatalogDeps{
		Cache:    snapshots,
		TTL:      cfg.Cache.TTL,
		Searches: search.NewCoordinator(cfg.Search.Debounce),
		Audit:    service.NewAuditService(auditRepo),
	})

	// Initialize handlers
	handlers := &routes.Handlers{
		User:          handler.NewUserHandler(services.Users),
		Store:         handler.NewStoreHandler(services.Stores),
		Coupon:        handler.NewCouponHandler(services.Coupons),
		Settlement:    handler.NewSettlementHandler(services.Settlements),
		Survey:        handler.NewSurveyHandler(services.Surveys),
		DailyReward:   handler.NewDailyRewardHandler(services.DailyRewards),
		FAQ:           handler.NewFAQHandler(services.FAQs),
		Term:          handler.NewTermHandler(services.Terms),
		Video:         handler.NewVideoHandler(services.Videos),
		StoreSequence: handler.NewStoreSequenceHandler(services.StoreSequence),
		Dashboard:     handler.NewDashboardHandler(services.Dashboard),
		Audit:         handler.NewAuditHandler(services.Audit),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error closing server: %v", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("Error flushing traces: %v", err)
		}
	}()

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)
	log.Printf("Loyalty API: %s", cfg.Upstream.BaseURL)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	<-done
}
