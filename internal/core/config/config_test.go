package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", c.App.HTTP.Host)
	assert.Equal(t, 8000, c.App.HTTP.Port)
	assert.Equal(t, "COM-PSU-Rizal API", c.App.Name)
	assert.Equal(t, []string{"http://localhost:3001", "http://localhost:3002"}, c.CORS.AllowOrigins)
	assert.Equal(t, int64(300), c.Limits.MaxInFlight)
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "c.yaml")
	require.NoError(t, os.WriteFile(p, []byte("app:\n  http:\n    port: 9001\nlog:\n  level: debug\n"), 0o644))
	t.Setenv("APP_LOG_LEVEL", "warn")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9001, c.App.HTTP.Port)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, 10, c.App.HTTP.WriteTimeoutSec)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
