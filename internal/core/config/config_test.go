package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.deepgram.com/v1/speak", cfg.Backend.BaseURL)
	assert.Equal(t, "aura-2-thalia-en", cfg.Backend.Model)
	assert.Equal(t, 5, cfg.History.Limit)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(dataDir, "nope.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, "aura-2-thalia-en", cfg.Backend.Model)
	assert.Equal(t, 5, cfg.History.Limit)
	assert.Equal(t, dataDir, cfg.DataDir)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(dataDir, "config.yaml")

	content := `
backend:
  base_url: http://localhost:8080/api/speak
  model: aura-2-arcas-en
history:
  limit: 3
player: ["afplay"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dataDir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/speak", cfg.Backend.BaseURL)
	assert.Equal(t, "aura-2-arcas-en", cfg.Backend.Model)
	assert.Equal(t, 3, cfg.History.Limit)
	assert.Equal(t, []string{"afplay"}, cfg.Player)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(dataDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  api_key: secret\n"), 0o644))

	cfg, err := Load(path, dataDir)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Backend.APIKey)
	assert.Equal(t, "aura-2-thalia-en", cfg.Backend.Model)
	assert.Equal(t, 5, cfg.History.Limit)
}

func TestValidate_BadBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Backend.BaseURL = "ftp://example.com/speak"

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs[0].Field, "backend.base_url")
}

func TestValidate_BadLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.History.Limit = -1

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs[0].Field, "history.limit")
}

func TestPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/data/speakbox"

	assert.Equal(t, filepath.Join("/data/speakbox", "history.json"), cfg.HistoryFile())
	assert.Equal(t, filepath.Join("/data/speakbox", "audio"), cfg.AudioDir())
}
