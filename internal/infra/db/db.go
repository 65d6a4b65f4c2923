package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/storefront/backend/internal/config"
	"github.com/storefront/backend/internal/domain/model"
)

// Handles shares one connection pool between sqlx and GORM.
type Handles struct {
	SQL  *sqlx.DB
	Gorm *gorm.DB
}

// Connect opens the pool with cfg.Driver (lib/pq by default, or pgx), sizes it,
// and layers GORM on top of it.
func Connect(ctx context.Context, cfg config.PostgresConfig, log *zap.Logger) (*Handles, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverLibPQ
	}
	sqlDB, err := sqlx.ConnectContext(ctx, driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB.DB}), &gorm.Config{
		Logger: newGormLogger(log, cfg.SlowQuery),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return &Handles{SQL: sqlDB, Gorm: gormDB}, nil
}

// Migrate creates or updates the tables used by the API.
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
		&model.LoginAttempt{},
	)
}

// Ping reports whether the database answers within ctx.
func (h *Handles) Ping(ctx context.Context) error {
	return h.SQL.PingContext(ctx)
}

func (h *Handles) Close() error {
	return h.SQL.Close()
}

func newGormLogger(log *zap.Logger, slow time.Duration) gormlogger.Interface {
	std := zap.NewStdLog(log.Named("gorm"))
	return gormlogger.New(std, gormlogger.Config{
		SlowThreshold:             slow,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
