package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "json", cfg.Store.Driver)
	assert.Equal(t, "data/events.json", cfg.Store.SnapshotPath)
}

func TestLoad_FromEnv(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("PORT", "9090")
	os.Setenv("STORE_DRIVER", "memory")
	os.Setenv("STORE_SNAPSHOT_PATH", "/tmp/events.json")
	os.Setenv("SERVER_READ_TIMEOUT", "5s")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("PORT")
		os.Unsetenv("STORE_DRIVER")
		os.Unsetenv("STORE_SNAPSHOT_PATH")
		os.Unsetenv("SERVER_READ_TIMEOUT")
	}()

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "/tmp/events.json", cfg.Store.SnapshotPath)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	os.Setenv("SERVER_WRITE_TIMEOUT", "not-a-duration")
	defer os.Unsetenv("SERVER_WRITE_TIMEOUT")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
}
