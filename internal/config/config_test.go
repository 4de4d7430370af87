package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xpuzzle.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "GCP_PROJECT_ID", "GCP_REGION", "XPUZZLE_STORE_PATH"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = "9000"

[generator]
language = "en"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.UploadRate)
	assert.Equal(t, "en", cfg.Generator.Language)
	assert.Equal(t, 20, cfg.Generator.FillCount)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigWithPriorityFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t)

	cfg, path := LoadConfigWithPriority(writeConfig(t, "[server\nport = 1"))
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, path = LoadConfigWithPriority(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Empty(t, path)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfigWithPriorityDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte("[log]\nlevel = \"debug\"\n"), 0o644))

	cfg, path := LoadConfigWithPriority("")
	assert.Equal(t, DefaultPath, path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":               "3000",
		"GCP_PROJECT_ID":     "demo",
		"XPUZZLE_STORE_PATH": "/tmp/puzzles",
	}
	cfg := DefaultConfig()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "demo", cfg.Gemini.ProjectID)
	assert.Equal(t, "europe-west1", cfg.Gemini.Region)
	assert.Equal(t, "/tmp/puzzles", cfg.Store.Path)
}
