package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  allowed_origins:
    - http://localhost:4000
storage:
  database_path: test.db
logging:
  level: debug
  format: json
engine:
  date_tolerance_days: 3
  amount_tolerance: 0.05
  require_exact_category: true
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:4000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "debug", cfg.Logging.Level)

	opts := cfg.Engine.DedupOptions()
	assert.Equal(t, 3, opts.DateToleranceDays)
	assert.Equal(t, 0.05, opts.AmountTolerance)
	assert.True(t, opts.RequireExactCategory)
}

func TestLoadCustomTables(t *testing.T) {
	path := writeConfig(t, `
engine:
  categories:
    - label: Pets
      keywords: [petco, chewy]
  banks:
    - name: monzo
      patterns: [monzo]
      account_types: [checking]
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Len(t, cfg.Engine.Categories, 1)
	assert.Equal(t, "Pets", cfg.Engine.Categories[0].Label)
	require.Len(t, cfg.Engine.Banks, 1)
	assert.Equal(t, "monzo", cfg.Engine.Banks[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  database_path: only.db
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "only.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)

	opts := cfg.Engine.DedupOptions()
	assert.Equal(t, 1, opts.DateToleranceDays)
	assert.Equal(t, 0.01, opts.AmountTolerance)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RECON_DB_PATH", "env.db")
	t.Setenv("RECON_PORT", "7070")
	t.Setenv("RECON_LOG_LEVEL", "warn")

	cfg := FromEnv()

	assert.Equal(t, "env.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "reconcile.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 8080, cfg.Server.Port)
}
