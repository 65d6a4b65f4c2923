package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/config"
	"github.com/storefront/backend/internal/handler"
	"github.com/storefront/backend/internal/infra/cache"
	"github.com/storefront/backend/internal/infra/db"
	"github.com/storefront/backend/internal/infra/idgen"
	infraRepo "github.com/storefront/backend/internal/infra/repository"
	"github.com/storefront/backend/internal/infra/security"
	"github.com/storefront/backend/internal/logger"
	"github.com/storefront/backend/internal/repository"
	"github.com/storefront/backend/internal/scheduler"
	"github.com/storefront/backend/internal/server"
	"github.com/storefront/backend/internal/usecase"
	auth "github.com/storefront/backend/internal/usecase/auth_usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.Init(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	handles, err := db.Connect(ctx, cfg.Postgres, log)
	if err != nil {
		return err
	}
	defer handles.Close()

	if err := db.Migrate(handles.Gorm); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// repositories
	userRepo := infraRepo.NewUserGormRepository(handles.Gorm)
	productRepo := infraRepo.NewProductGormRepository(handles.Gorm)
	categoryRepo := infraRepo.NewCategoryGormRepository(handles.Gorm)
	inventoryRepo := infraRepo.NewInventoryGormRepository(handles.Gorm)
	auditRepo := infraRepo.NewAuditLogGormRepository(handles.Gorm)
	txManager := infraRepo.NewTxManagerGorm(handles.Gorm)

	attempts, closeAttempts, err := loginAttemptStore(ctx, cfg, handles, log)
	if err != nil {
		return err
	}
	defer closeAttempts()

	// security
	hasher := security.NewBcryptPasswordHasher(cfg.BcryptCost)
	codec, err := security.NewJWTCodec(cfg.JWT.Secret, cfg.JWT.Algorithm)
	if err != nil {
		return err
	}
	auditIDs, err := idgen.NewSnowflake(cfg.SnowflakeNode)
	if err != nil {
		return fmt.Errorf("snowflake node: %w", err)
	}

	ids := auth.UUIDGenerator{}
	clock := auth.SystemClock{}
	lockout := auth.LockoutPolicy{
		Store:       attempts,
		MaxAttempts: cfg.Lockout.MaxAttempts,
		Window:      cfg.Lockout.Window,
	}

	// usecases
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, ids, clock, cfg.AllowAdminSignup)
	loginUC := auth.NewLoginUsecase(userRepo, hasher, codec, lockout, clock, cfg.JWT.TTL)
	guard := auth.NewAccessGuard(codec, userRepo)

	audit := usecase.NewAuditRecorder(auditIDs, clock)
	userUC := usecase.NewUserUsecase(userRepo, txManager, guard, audit, clock)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, txManager, audit, ids, clock)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, txManager, audit, ids, clock)
	auditUC := usecase.NewAuditLogUsecase(auditRepo, guard)
	history := usecase.NewInventoryHistory(inventoryRepo, productRepo)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		created, err := registerUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if created {
			log.Info("admin account created", zap.String("email", cfg.Admin.Email))
		}
	}

	// background jobs
	jobs := scheduler.New(log)
	if err := jobs.AddLoginAttemptPurge(cfg.Lockout.PurgeSpec, lockout); err != nil {
		return err
	}
	jobs.Start()
	defer jobs.Stop(context.Background())

	// HTTP
	e := server.New(cfg, log)
	server.RegisterRoutes(e, server.Handlers{
		Health:       handler.NewHealthHandler(handles),
		Auth:         handler.NewAuthHandler(registerUC, loginUC),
		User:         handler.NewUserHandler(userUC),
		AdminUser:    handler.NewAdminUserHandler(userUC),
		Product:      handler.NewProductHandler(productUC, categoryUC),
		AdminProduct: handler.NewAdminProductHandler(productUC, categoryUC, history, auditUC),
	}, guard)

	log.Info("starting api",
		zap.String("env", cfg.GoEnv),
		zap.String("lockout_backend", cfg.Lockout.Backend),
	)
	return server.Run(ctx, e, cfg.HTTP, log)
}

// loginAttemptStore picks the counter backend. Redis and Postgres are shared between
// instances, memory is for a single dev process. The returned func releases
// whatever the backend opened.
func loginAttemptStore(ctx context.Context, cfg config.Config, handles *db.Handles, log *zap.Logger) (repository.LoginAttemptStore, func(), error) {
	switch cfg.Lockout.Backend {
	case config.LockoutBackendRedis:
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		closeRedis := func() {
			if err := rdb.Close(); err != nil {
				log.Warn("close redis", zap.Error(err))
			}
		}
		return cache.NewRedisLoginAttemptStore(rdb), closeRedis, nil
	case config.LockoutBackendMemory:
		log.Warn("login attempts kept in memory, lockout is per process")
		return cache.NewMemoryLoginAttemptStore(), func() {}, nil
	default:
		return infraRepo.NewLoginAttemptSQLRepository(handles.SQL), func() {}, nil
	}
}
