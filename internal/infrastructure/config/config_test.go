package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"ERPQ_APP_NAME":                   os.Getenv("ERPQ_APP_NAME"),
		"ERPQ_APP_ENV":                    os.Getenv("ERPQ_APP_ENV"),
		"ERPQ_APP_PORT":                   os.Getenv("ERPQ_APP_PORT"),
		"ERPQ_DATABASE_HOST":              os.Getenv("ERPQ_DATABASE_HOST"),
		"ERPQ_DATABASE_PORT":              os.Getenv("ERPQ_DATABASE_PORT"),
		"ERPQ_DATABASE_USER":              os.Getenv("ERPQ_DATABASE_USER"),
		"ERPQ_DATABASE_PASSWORD":          os.Getenv("ERPQ_DATABASE_PASSWORD"),
		"ERPQ_DATABASE_DBNAME":            os.Getenv("ERPQ_DATABASE_DBNAME"),
		"ERPQ_DATABASE_SSLMODE":           os.Getenv("ERPQ_DATABASE_SSLMODE"),
		"ERPQ_DATABASE_MAX_OPEN_CONNS":    os.Getenv("ERPQ_DATABASE_MAX_OPEN_CONNS"),
		"ERPQ_DATABASE_MAX_IDLE_CONNS":    os.Getenv("ERPQ_DATABASE_MAX_IDLE_CONNS"),
		"ERPQ_JWT_SECRET":                 os.Getenv("ERPQ_JWT_SECRET"),
		"ERPQ_CQRS_COMMAND_SERVICE_URL":   os.Getenv("ERPQ_CQRS_COMMAND_SERVICE_URL"),
		"ERPQ_MOBILE_RATE_LIMIT_REQUESTS": os.Getenv("ERPQ_MOBILE_RATE_LIMIT_REQUESTS"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "erp-query-service", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8000", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "erp", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "http://localhost:3000", cfg.CQRS.CommandServiceURL)
		assert.Equal(t, 100, cfg.Mobile.RateLimitRequests)
		assert.Equal(t, 300, cfg.Mobile.CacheMaxAge)
	})

	t.Run("loads values from environment variables with ERPQ prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("ERPQ_APP_NAME", "test-app")
		os.Setenv("ERPQ_APP_ENV", "testing")
		os.Setenv("ERPQ_APP_PORT", "9000")
		os.Setenv("ERPQ_DATABASE_HOST", "testdb.local")
		os.Setenv("ERPQ_DATABASE_PORT", "5433")
		os.Setenv("ERPQ_DATABASE_USER", "testuser")
		os.Setenv("ERPQ_DATABASE_PASSWORD", "testpass")
		os.Setenv("ERPQ_DATABASE_DBNAME", "testdb")
		os.Setenv("ERPQ_DATABASE_SSLMODE", "require")
		os.Setenv("ERPQ_CQRS_COMMAND_SERVICE_URL", "https://commands.example.com")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, "https://commands.example.com", cfg.CQRS.CommandServiceURL)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("ERPQ_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("ERPQ_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("ERPQ_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("ERPQ_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects short jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("ERPQ_APP_ENV", "production")
		os.Setenv("ERPQ_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "erp",
		Password: "p@ss/word",
		DBName:   "erp",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfigAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
