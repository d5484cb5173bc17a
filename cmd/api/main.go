package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bpr-hq/bpr-dashboard/internal/adapters/cache"
	adapterHTTP "github.com/bpr-hq/bpr-dashboard/internal/adapters/handler/http"
	"github.com/bpr-hq/bpr-dashboard/internal/adapters/repository"
	"github.com/bpr-hq/bpr-dashboard/internal/config"
	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/bpr-hq/bpr-dashboard/internal/core/workers"
	"github.com/bpr-hq/bpr-dashboard/internal/logger"
)

// @title                      BPR Dashboard API
// @version                    1.0
// @description                Multi-brand 4DX dashboard: victory targets, power moves, tasks, commitments and department scores.
// @host                       localhost:8080
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bpr-dashboard: %v\n", err)
		os.Exit(1)
	}
}

type repositories struct {
	targets     domain.VictoryTargetRepository
	moves       domain.PowerMoveRepository
	tasks       domain.TaskRepository
	commitments domain.CommitmentRepository
	clients     domain.ClientRepository
	users       domain.UserRepository
	brands      domain.BrandRepository
	assignments domain.AssignmentRepository
	snapshots   domain.SnapshotRepository
}

func memoryRepositories() repositories {
	store := repository.NewMemoryStore()
	return repositories{
		targets:     store.VictoryTargets,
		moves:       store.PowerMoves,
		tasks:       store.Tasks,
		commitments: store.Commitments,
		clients:     store.Clients,
		users:       store.Users,
		brands:      store.Brands,
		assignments: store.Assignments,
		snapshots:   store.Snapshots,
	}
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		targets:     repository.NewPostgresVictoryTargetRepository(db),
		moves:       repository.NewPostgresPowerMoveRepository(db),
		tasks:       repository.NewPostgresTaskRepository(db),
		commitments: repository.NewPostgresCommitmentRepository(db),
		clients:     repository.NewPostgresClientRepository(db),
		users:       repository.NewPostgresUserRepository(db),
		brands:      repository.NewPostgresBrandRepository(db),
		assignments: repository.NewPostgresAssignmentRepository(db),
		snapshots:   repository.NewPostgresSnapshotRepository(db),
	}
}

// buildServer wires services, the snapshot worker and the router over repos.
// The worker is returned unstarted.
func buildServer(
	ctx context.Context,
	cfg *config.Config,
	log *zap.Logger,
	repos repositories,
	db *sqlx.DB,
	rdb *redis.Client,
	startTime time.Time,
) (*gin.Engine, *workers.SnapshotWorker, error) {
	access := services.NewAccessService(repos.assignments)
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL, repos.users)
	scoreService := services.NewScoreService(
		repos.targets, repos.moves, repos.tasks, repos.commitments, repos.snapshots, access, cfg.Scoring)

	worker := workers.NewSnapshotWorker(scoreService, repos.brands, log, cfg.SnapshotInterval)

	targetService := services.NewVictoryTargetService(repos.targets, access, worker)
	moveService := services.NewPowerMoveService(repos.moves, access)
	taskService := services.NewTaskService(repos.tasks, access)
	commitmentService := services.NewCommitmentService(repos.commitments, access)
	clientService := services.NewClientService(repos.clients, access)
	userService := services.NewUserService(repos.users)
	brandService := services.NewBrandService(repos.brands, access)
	assignmentService := services.NewAssignmentService(repos.assignments, repos.brands, repos.users, access)

	if cfg.Admin.Email != "" {
		admin, created, err := userService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Name, cfg.Admin.Password)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			log.Info("bootstrap admin created", zap.String("user_id", admin.ID), zap.String("email", admin.Email))
		}
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		VictoryTargetHandler: adapterHTTP.NewVictoryTargetHandler(targetService, log),
		PowerMoveHandler:     adapterHTTP.NewPowerMoveHandler(moveService, log),
		TaskHandler:          adapterHTTP.NewTaskHandler(taskService, log),
		CommitmentHandler:    adapterHTTP.NewCommitmentHandler(commitmentService, log),
		ClientHandler:        adapterHTTP.NewClientHandler(clientService, log),
		UserHandler:          adapterHTTP.NewUserHandler(userService, log),
		BrandHandler:         adapterHTTP.NewBrandHandler(brandService, log),
		AssignmentHandler:    adapterHTTP.NewAssignmentHandler(assignmentService, log),
		DashboardHandler:     adapterHTTP.NewDashboardHandler(scoreService, log),
		TokenService:         tokenService,
		DB:                   db,
		Redis:                rdb,
		Logger:               log,
		CORSOrigins:          cfg.CORSOrigins,
		RateLimit:            cfg.RateLimit,
		RateWindow:           cfg.RateWindow,
		StartTime:            startTime,
	})

	return router, worker, nil
}

func run() error {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		db    *sqlx.DB
		repos repositories
	)
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		repos = memoryRepositories()
	default:
		log.Info("connecting to database", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))
		db, err = sqlx.Connect("pgx", cfg.DB.DSN())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		repos = postgresRepositories(db)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		repos.targets = repository.NewCachedVictoryTargetRepository(repos.targets, rdb, log)
		log.Info("redis cache enabled", zap.String("host", cfg.Redis.Host))
	}

	router, worker, err := buildServer(ctx, cfg, log, repos, db, rdb, startTime)
	if err != nil {
		return err
	}
	worker.Start(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("BPR dashboard running", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		worker.Wait()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	worker.Wait()

	log.Info("server stopped gracefully")
	return nil
}
