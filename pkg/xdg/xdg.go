// Package xdg resolves XDG base directories for pj-creater.
// PJ_CREATER_XDG_* variables take precedence over the standard XDG_* ones.
package xdg

import (
	"fmt"
	"os"
	"path/filepath"

	adrg "github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName is the directory created under every XDG base directory.
const AppName = "pj-creater"

// GetXDGCacheDir returns (and creates) the cache directory for subpath.
func GetXDGCacheDir(subpath string, perm os.FileMode) (string, error) {
	return getXDGDir("XDG_CACHE_HOME", "PJ_CREATER_XDG_CACHE_HOME", adrg.CacheHome, subpath, perm)
}

// GetXDGConfigDir returns (and creates) the config directory for subpath.
func GetXDGConfigDir(subpath string, perm os.FileMode) (string, error) {
	return getXDGDir("XDG_CONFIG_HOME", "PJ_CREATER_XDG_CONFIG_HOME", adrg.ConfigHome, subpath, perm)
}

func getXDGDir(xdgVar, overrideVar, fallback, subpath string, perm os.FileMode) (string, error) {
	v := viper.New()
	if err := v.BindEnv(xdgVar, overrideVar, xdgVar); err != nil {
		return "", fmt.Errorf("error binding %s environment variables: %w", xdgVar, err)
	}

	base := fallback
	if custom := v.GetString(xdgVar); custom != "" {
		base = custom
	}

	dir := filepath.Join(base, AppName, subpath)
	if err := os.MkdirAll(dir, perm); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return dir, nil
}
