package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the application configuration. It is read once at start-up and not mutated afterwards.
type Config struct {
	HTTP     HTTPConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Lockout  LockoutConfig
	Redis    RedisConfig
	Log      LogConfig
	Admin    AdminSeedConfig

	GoEnv            string   // dev/prod
	CORSOrigins      []string // allowed origins, "*" when empty
	AllowAdminSignup bool     // lets POST /auth/register create admins
	BcryptCost       int
	SnowflakeNode    int64 // node id for audit log ids
}

type HTTPConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	BodyLimit       string
}

type PostgresConfig struct {
	Driver          string // database/sql driver under the pool: postgres (lib/pq) or pgx
	URL             string // DATABASE_URL wins over the discrete fields
	Host            string
	Port            int
	User            string
	Password        string
	DB              string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowQuery       time.Duration
}

// DSN returns a lib/pq compatible connection string.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DB, p.SSLMode,
	)
}

type JWTConfig struct {
	Secret    string
	Algorithm string // HS256 / HS384 / HS512
	TTL       time.Duration
}

type LockoutConfig struct {
	MaxAttempts int
	Window      time.Duration
	Backend     string // postgres / redis / memory
	PurgeSpec   string // cron spec for expired counter cleanup
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Dev    bool
	File   string // rotating file pattern, stdout only when empty
	MaxAge time.Duration
}

type AdminSeedConfig struct {
	Email    string
	Password string
	Name     string
}

const (
	LockoutBackendPostgres = "postgres"
	LockoutBackendRedis    = "redis"
	LockoutBackendMemory   = "memory"
)

const (
	DriverLibPQ = "postgres"
	DriverPgx   = "pgx"
)

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds Config from the process environment only.
func FromEnv() (Config, error) {
	var errs []string
	num := func(key string, def int) int {
		v, err := envInt(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}
	dur := func(key string, unit time.Duration, def int) time.Duration {
		return time.Duration(num(key, def)) * unit
	}

	cfg := Config{
		HTTP: HTTPConfig{
			Port:            normalizePort(getenv("PORT", "8080")),
			ShutdownTimeout: dur("SHUTDOWN_TIMEOUT_SECONDS", time.Second, 10),
			BodyLimit:       getenv("HTTP_BODY_LIMIT", "1M"),
		},
		Postgres: PostgresConfig{
			Driver:          strings.ToLower(getenv("DB_DRIVER", DriverLibPQ)),
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getenv("POSTGRES_HOST", "localhost"),
			Port:            num("POSTGRES_PORT", 5432),
			User:            getenv("POSTGRES_USER", "postgres"),
			Password:        getenv("POSTGRES_PASSWORD", "postgres"),
			DB:              getenv("POSTGRES_DB", "storefront"),
			SSLMode:         getenv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    num("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    num("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: dur("DB_CONN_MAX_LIFETIME_MINUTES", time.Minute, 30),
			SlowQuery:       dur("DB_SLOW_QUERY_MS", time.Millisecond, 200),
		},
		JWT: JWTConfig{
			Secret:    os.Getenv("JWT_SECRET"),
			Algorithm: strings.ToUpper(getenv("JWT_ALGORITHM", "HS256")),
			TTL:       dur("JWT_EXPIRE_MINUTES", time.Minute, 60),
		},
		Lockout: LockoutConfig{
			MaxAttempts: num("LOGIN_MAX_ATTEMPTS", 5),
			Window:      dur("LOGIN_LOCKOUT_MINUTES", time.Minute, 15),
			Backend:     strings.ToLower(getenv("LOCKOUT_BACKEND", LockoutBackendPostgres)),
			PurgeSpec:   getenv("LOCKOUT_PURGE_CRON", "@every 10m"),
		},
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       num("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level:  os.Getenv("LOG_LEVEL"),
			Dev:    os.Getenv("LOG_DEV") == "1",
			File:   os.Getenv("LOG_FILE"),
			MaxAge: dur("LOG_MAX_AGE_DAYS", 24*time.Hour, 7),
		},
		Admin: AdminSeedConfig{
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
			Name:     getenv("ADMIN_NAME", "Administrator"),
		},

		GoEnv:            getenv("GO_ENV", "dev"),
		CORSOrigins:      splitList(os.Getenv("CORS_ORIGINS")),
		AllowAdminSignup: envBool("ALLOW_ADMIN_SIGNUP", false),
		BcryptCost:       num("BCRYPT_COST", 12),
		SnowflakeNode:    int64(num("SNOWFLAKE_NODE", 1)),
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
		if cfg.Log.Dev {
			cfg.Log.Level = "debug"
		}
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required values and ranges.
func (c Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("JWT_ALGORITHM must be one of HS256, HS384, HS512: got %q", c.JWT.Algorithm)
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_EXPIRE_MINUTES must be positive")
	}
	if c.Lockout.MaxAttempts <= 0 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be positive")
	}
	if c.Lockout.Window <= 0 {
		return fmt.Errorf("LOGIN_LOCKOUT_MINUTES must be positive")
	}
	switch c.Postgres.Driver {
	case DriverLibPQ, DriverPgx:
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or pgx: got %q", c.Postgres.Driver)
	}
	switch c.Lockout.Backend {
	case LockoutBackendPostgres, LockoutBackendRedis, LockoutBackendMemory:
	default:
		return fmt.Errorf("LOCKOUT_BACKEND must be postgres, redis or memory: got %q", c.Lockout.Backend)
	}
	if c.SnowflakeNode < 0 || c.SnowflakeNode > 1023 {
		return fmt.Errorf("SNOWFLAKE_NODE must be within 0..1023")
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s must be number", key)
	}
	return i, nil
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true":
		return true
	case "0", "false":
		return false
	default:
		return def
	}
}

func normalizePort(v string) string {
	if strings.HasPrefix(v, ":") {
		return v
	}
	return ":" + v
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
