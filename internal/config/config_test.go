package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"YATUBE_ADDR", "DATABASE_URL", "SECRET_KEY", "MEDIA_ROOT", "REDIS_URL",
		"INDEX_CACHE_TTL", "SESSION_TTL", "SECURE_COOKIES", "DEBUG",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "MIGRATIONS_PATH",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "yatube.db", cfg.DatabaseURL)
	assert.Equal(t, "media", cfg.MediaRoot)
	assert.Equal(t, 20*time.Second, cfg.IndexCacheTTL)
	assert.Equal(t, 336*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.RedisURL)
	assert.Error(t, cfg.ValidateServe())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("INDEX_CACHE_TTL", "1m")
	t.Setenv("DEBUG", "true")
	t.Setenv("DATABASE_URL", "postgres://localhost/yatube")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.IndexCacheTTL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "postgres://localhost/yatube", cfg.DatabaseURL)
	assert.NoError(t, cfg.ValidateServe())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MEDIA_ROOT=/srv/media\nSECRET_KEY=fromfile\n"), 0o644))
	t.Setenv("SECRET_KEY", "fromenv")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/media", cfg.MediaRoot)
	assert.Equal(t, "fromenv", cfg.SecretKey)

	// godotenv sets variables on the process; drop them for later tests.
	os.Unsetenv("MEDIA_ROOT")
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("INDEX_CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
