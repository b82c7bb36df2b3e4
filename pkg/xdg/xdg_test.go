package xdg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetXDGCacheDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tempHome, ".cache"))
	t.Setenv("PJ_CREATER_XDG_CACHE_HOME", "")

	dir, err := GetXDGCacheDir("templates", 0o755)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempHome, ".cache", "pj-creater", "templates"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGetXDGCacheDir_Override(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tempHome, ".cache"))
	t.Setenv("PJ_CREATER_XDG_CACHE_HOME", filepath.Join(tempHome, "custom-cache"))

	dir, err := GetXDGCacheDir("templates", 0o755)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempHome, "custom-cache", "pj-creater", "templates"), dir)
}

func TestGetXDGConfigDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempHome, ".config"))
	t.Setenv("PJ_CREATER_XDG_CONFIG_HOME", "")

	dir, err := GetXDGConfigDir("", 0o755)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempHome, ".config", "pj-creater"), dir)
}
