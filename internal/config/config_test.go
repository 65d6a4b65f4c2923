package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Port)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 60*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, 5, cfg.Lockout.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Lockout.Window)
	assert.Equal(t, LockoutBackendPostgres, cfg.Lockout.Backend)
	assert.Equal(t, DriverLibPQ, cfg.Postgres.Driver)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.False(t, cfg.AllowAdminSignup)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestFromEnv_SecretRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_ALGORITHM", "hs512")
	t.Setenv("JWT_EXPIRE_MINUTES", "5")
	t.Setenv("PORT", ":9000")
	t.Setenv("LOCKOUT_BACKEND", "Redis")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("LOG_DEV", "1")
	t.Setenv("DB_DRIVER", "PGX")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.JWT.Algorithm)
	assert.Equal(t, 5*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, ":9000", cfg.HTTP.Port)
	assert.Equal(t, LockoutBackendRedis, cfg.Lockout.Backend)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DriverPgx, cfg.Postgres.Driver)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"algorithm":  {"JWT_ALGORITHM", "RS256"},
		"backend":    {"LOCKOUT_BACKEND", "etcd"},
		"driver":     {"DB_DRIVER", "mysql"},
		"not number": {"POSTGRES_PORT", "abc"},
		"attempts":   {"LOGIN_MAX_ATTEMPTS", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s")
			t.Setenv(kv[0], kv[1])

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p", DB: "shop", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=shop sslmode=disable", p.DSN())

	p.URL = "postgres://x"
	assert.Equal(t, "postgres://x", p.DSN())
}
