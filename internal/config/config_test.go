package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("TEALDEER_CACHE_DIR", "/tmp/cache")
	t.Setenv("TEALDEER_CUSTOM_PAGES_DIR", "/tmp/custom")
	t.Setenv("TEALDEER_CONFIG_DIR", "/tmp/conf")
	t.Setenv("HTTP_PROXY", "http://proxy:3128")
	t.Setenv("HTTPS_PROXY", "http://sproxy:3128")

	env := FromEnv()
	assert.Equal(t, "/tmp/cache", env.CacheDir)
	assert.Equal(t, "/tmp/custom", env.CustomPagesDir)
	assert.Equal(t, "/tmp/conf", env.ConfigDir)
	assert.Equal(t, "http://proxy:3128", env.HTTPProxy)
	assert.Equal(t, "http://sproxy:3128", env.HTTPSProxy)
}

func TestDirOverride(t *testing.T) {
	assert.Equal(t, "/tmp/conf", Dir(Env{ConfigDir: "/tmp/conf"}))

	def := Dir(Env{})
	assert.True(t, filepath.IsAbs(def))
	assert.Equal(t, AppName, filepath.Base(def))
}

func TestLoadExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[display]
raw = true

[updates]
max_age_days = 7

[pages]
url = "https://example.invalid/pages.tar.gz"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	Init(Env{ConfigDir: dir})
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Display.Raw)
	assert.Equal(t, 7, cfg.Updates.MaxAgeDays)
	assert.Equal(t, "https://example.invalid/pages.tar.gz", cfg.Pages.URL)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	Init(Env{ConfigDir: t.TempDir()})
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPagesURL, cfg.Pages.URL)
	assert.Equal(t, DefaultMaxAgeDays, cfg.Updates.MaxAgeDays)
	assert.False(t, cfg.Display.Raw)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	Init(Env{ConfigDir: t.TempDir()})
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := filepath.Join(t.TempDir(), "tealdeer")
	path, err := Seed(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), path)

	// The seeded file round-trips through Load.
	Init(Env{ConfigDir: dir})
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPagesURL, cfg.Pages.URL)
}

func TestSeedRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := Seed(dir)
	require.NoError(t, err)

	_, err = Seed(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigExists))
}
