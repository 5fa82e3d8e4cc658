package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
user = "booking"
password = "from-file"
dbname = "booking"

[auth]
jwt_secret = "file-secret"

[booking]
slot_step_minutes = 15
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	for _, key := range []string{"CONFIG_PATH", "DB_PASSWORD", "JWT_SECRET", "REDIS_ADDR", "DB_HOST", "DB_USER", "DB_NAME", "DB_PORT"} {
		t.Setenv(key, "")
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, 15, cfg.Booking.SlotStepMinutes)
	assert.Equal(t, 60, cfg.Booking.DefaultBookedBlockMinutes)
	assert.Equal(t, 20, cfg.Booking.NotificationsPageSize)
	assert.Equal(t, "host=db port=5432 user=booking password=from-file dbname=booking sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_ADDR", "redis:6380")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
host = "db"
user = "booking"
dbname = "booking"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
