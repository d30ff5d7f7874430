package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadInDir(t *testing.T, dir string) *Config {
	t.Helper()
	viper.Reset()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		viper.Reset()
	})

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := loadInDir(t, t.TempDir())

	assert.Equal(t, 595.28, cfg.Geometry.PageWidth)
	assert.Equal(t, 841.89, cfg.Geometry.PageHeight)
	assert.Equal(t, 24.0, cfg.Geometry.LineHeight)
	assert.Equal(t, "Helvetica", cfg.Fonts.Family)
	assert.Equal(t, 12.0, cfg.Fonts.Size)
	assert.Equal(t, "development", cfg.Logger.Env)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
geometry:
  line_height: 30
  padding: 48
fonts:
  family: Times
logger:
  env: production
  level: warn
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "examsheet.yaml"), []byte(yaml), 0644))

	cfg := loadInDir(t, dir)

	assert.Equal(t, 30.0, cfg.Geometry.LineHeight)
	assert.Equal(t, 48.0, cfg.Geometry.Padding)
	assert.Equal(t, "Times", cfg.Fonts.Family)
	assert.Equal(t, "production", cfg.Logger.Env)
	assert.Equal(t, "warn", cfg.Logger.Level)

	// values absent from the file keep their defaults
	assert.Equal(t, 595.28, cfg.Geometry.PageWidth)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "examsheet.yaml"), []byte("geometry: ["), 0644))

	viper.Reset()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		viper.Reset()
	})

	_, err = Load()
	require.Error(t, err)
}
