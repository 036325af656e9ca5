package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/issue-dashboard/internal/api/http"
	"github.com/spec-kit/issue-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/issue-dashboard/internal/auth"
	"github.com/spec-kit/issue-dashboard/internal/config"
	"github.com/spec-kit/issue-dashboard/internal/events"
	"github.com/spec-kit/issue-dashboard/internal/observability"
	"github.com/spec-kit/issue-dashboard/internal/persistence"
	"github.com/spec-kit/issue-dashboard/internal/repository"
	"github.com/spec-kit/issue-dashboard/internal/repository/memory"
	"github.com/spec-kit/issue-dashboard/internal/service"
	"github.com/spec-kit/issue-dashboard/internal/session"
	"github.com/spec-kit/issue-dashboard/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	// Without a postgres DSN the service runs on in-memory stores,
	// which is enough for local development and tests.
	var (
		userRepo   repository.UserRepository
		issueRepo  repository.IssueRepository
		workerRepo repository.WorkerRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		issueRepo = repository.NewIssueRepository(pool)
		workerRepo = repository.NewWorkerRepository(pool)
	} else {
		logger.Warn("postgres not configured; using in-memory stores")
		userRepo = memory.NewUserStore()
		issueRepo = memory.NewIssueStore()
		workerRepo = memory.NewWorkerStore()
	}

	var pageStore session.PageStore
	if redis.Ping(ctx) == nil {
		pageStore = session.NewRedisPageStore(redis.Client, time.Duration(cfg.Auth.AccessTokenTTLMinutes)*time.Minute)
	} else {
		logger.Warn("redis not reachable; using in-memory session store")
		pageStore = session.NewMemoryPageStore()
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(cfg.Auth, userRepo, pageStore)
	issueService := service.NewIssueService(issueRepo)
	workloadService := service.NewWorkloadService(workerRepo)
	workflowService := service.NewWorkflowService(cfg.Workflow, service.WorkflowDependencies{
		IssueService:    issueService,
		WorkloadService: workloadService,
		AuthService:     authService,
		WorkerRepo:      workerRepo,
		Dispatcher:      dispatcher,
	})
	sessionService := service.NewSessionService(pageStore)
	statsService := service.NewStatsService(issueRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(workflowService, authService),
		Issues:         handlers.NewIssuesHandler(issueService, workflowService),
		Workers:        handlers.NewWorkersHandler(workloadService),
		Session:        handlers.NewSessionHandler(sessionService),
		Stats:          handlers.NewStatsHandler(statsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
