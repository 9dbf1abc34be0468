package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "files_manager", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "/tmp/files_manager", cfg.FolderPath)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FOLDER_PATH", "/var/data/blobs")
	t.Setenv("WORKER_CONCURRENCY", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/var/data/blobs", cfg.FolderPath)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoadRejectsBadInt(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "lots")

	_, err := Load()
	assert.Error(t, err)
}
