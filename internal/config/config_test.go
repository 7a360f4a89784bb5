package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"APP_PORT", "DB_DRIVER", "DB_DSN", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"ACCESS_TOKEN_SECRET", "JWT_SECRET", "TOKEN_TTL", "REDIS_ADDR", "REDIS_PASS", "REDIS_DB",
		"CACHE_TTL", "CORS_ORIGIN", "IS_PROD",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadConfig()

	assert.Equal(t, "5000", cfg.AppPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "legacy")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CACHE_TTL", "bogus")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, "legacy", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.IsProd)
}

func TestLoadConfig_AccessTokenSecretWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN_SECRET", "primary")
	t.Setenv("JWT_SECRET", "legacy")

	assert.Equal(t, "primary", LoadConfig().JWTSecret)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{DBUser: "app", DBPassword: "pw", DBHost: "db", DBPort: "3306", DBName: "finance"}
	assert.Equal(t, "app:pw@tcp(db:3306)/finance?parseTime=true", cfg.DSN())

	cfg.DBDSN = "override"
	assert.Equal(t, "override", cfg.DSN())

	assert.Empty(t, (&Config{}).DSN())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "missing secret", cfg: Config{DBDriver: DriverMemory}, wantErr: true},
		{name: "memory", cfg: Config{DBDriver: DriverMemory, JWTSecret: "s"}},
		{name: "mysql without dsn", cfg: Config{DBDriver: DriverMySQL, JWTSecret: "s"}, wantErr: true},
		{name: "mysql", cfg: Config{DBDriver: DriverMySQL, JWTSecret: "s", DBDSN: "dsn"}},
		{name: "unknown driver", cfg: Config{DBDriver: "mongo", JWTSecret: "s"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
