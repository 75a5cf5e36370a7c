package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/jottings/internal/location"
	"github.com/idilsaglam/jottings/internal/model"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, model.VariantNotes, cfg.Variant())

	d, err := cfg.FixTimeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	yml := `
store:
  path: groceries.db
  variant: list
location:
  provider: none
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "groceries.db", cfg.Store.Path)
	assert.Equal(t, model.VariantList, cfg.Variant())
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "jottings.log", cfg.Logging.File)

	p, err := cfg.LocationProvider()
	require.NoError(t, err)
	assert.IsType(t, location.DeniedProvider{}, p)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte("store:\n  path: file.db\n"), 0o644))

	t.Setenv("JOTTINGS_DB", "env.db")
	t.Setenv("JOTTINGS_LAT", "51.5074")
	t.Setenv("JOTTINGS_LON", "-0.1278")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Store.Path)
	assert.Equal(t, 51.5074, cfg.Location.Latitude)
	assert.Equal(t, -0.1278, cfg.Location.Longitude)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JOTTINGS_THEME=neon\n"), 0o644))
	// godotenv sets the process env; make sure it is restored afterwards.
	t.Setenv("JOTTINGS_THEME", "")
	require.NoError(t, os.Unsetenv("JOTTINGS_THEME"))

	cfg, err := Load(filepath.Join(dir, DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.UI.Theme)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"variant":  "store:\n  variant: geo\n",
		"provider": "location:\n  provider: gps\n",
		"timeout":  "location:\n  timeout: soon\n",
		"latitude": "location:\n  latitude: 123\n",
		"yaml":     "store: [",
	}
	for name, yml := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultPath)
			require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	t.Run("bad env float", func(t *testing.T) {
		t.Setenv("JOTTINGS_LAT", "north")
		_, err := Load(filepath.Join(t.TempDir(), DefaultPath))
		assert.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultPath)
	cfg := DefaultConfig()
	cfg.Store.Variant = "list"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
