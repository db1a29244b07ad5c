package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv(ConfigPathEnv, t.TempDir())
	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBackend, c.BackendURL)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, "default", c.Algorithm)
	assert.Equal(t, 7, c.RedCount)
	assert.Equal(t, 5, c.BlueCount)
	assert.Equal(t, 10.0, c.HoverThreshold)
	assert.True(t, c.Dark)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	body := "backend:\n  url: http://backend:5000/\n  timeout: 3s\npoints:\n  red: 12\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("HSVIZ_POINTS_BLUE", "9")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("algorithm", "", "")
	require.NoError(t, fs.Parse([]string{"--algorithm", "brute-force"}))

	c, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:5000", c.BackendURL, "trailing slash trimmed")
	assert.Equal(t, 3*time.Second, c.Timeout)
	assert.Equal(t, 12, c.RedCount)
	assert.Equal(t, 9, c.BlueCount)
	assert.Equal(t, "brute-force", c.Algorithm)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestFromViperRejectsBadTimeout(t *testing.T) {
	v := New()
	v.Set("backend.timeout", "0s")
	_, err := FromViper(v)
	assert.Error(t, err)
}

func TestAttachFlagsOnlyOverrideWhenSet(t *testing.T) {
	t.Setenv(ConfigPathEnv, t.TempDir())
	t.Setenv("HSVIZ_BACKEND_URL", "http://env:5000")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AttachFlags(fs)
	require.NoError(t, fs.Parse(nil))
	c, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "http://env:5000", c.BackendURL)

	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	AttachFlags(fs)
	require.NoError(t, fs.Parse([]string{"--backend", "http://flag:1", "--timeout", "2s"}))
	c, err = Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "http://flag:1", c.BackendURL)
	assert.Equal(t, 2*time.Second, c.Timeout)
}
