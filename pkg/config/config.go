// Package config loads pj-creater settings from defaults, an optional
// settings file, PJ_CREATER_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errUtils "github.com/taisan11/pj-creater/errors"
	log "github.com/taisan11/pj-creater/pkg/logger"
	"github.com/taisan11/pj-creater/pkg/xdg"
)

// Settings is the resolved application configuration.
type Settings struct {
	Cache CacheSettings `mapstructure:"cache"`
	Fetch FetchSettings `mapstructure:"fetch"`
	Logs  LogsSettings  `mapstructure:"logs"`
	UI    UISettings    `mapstructure:"ui"`
}

// CacheSettings controls the remote template cache.
type CacheSettings struct {
	Dir string        `mapstructure:"dir"`
	TTL time.Duration `mapstructure:"ttl"`
}

// FetchSettings controls how remote templates are cloned.
type FetchSettings struct {
	Clients []string `mapstructure:"clients"`
	Host    string   `mapstructure:"host"`
}

// LogsSettings controls logging and error output.
type LogsSettings struct {
	Level string `mapstructure:"level"`
	// Verbose prints the error context table and the error chain on failure.
	Verbose bool `mapstructure:"verbose"`
}

// UISettings controls interactive prompts.
type UISettings struct {
	// Accessible switches prompts to plain line-based input for screen readers.
	Accessible bool `mapstructure:"accessible"`
}

// flagKeys maps command line flags to the setting they override.
var flagKeys = map[string]string{
	"logs-level": LogsLevelKey,
	"verbose":    LogsVerboseKey,
	"accessible": UIAccessibleKey,
}

// LoadOptions customises Load.
type LoadOptions struct {
	// ConfigDirs are searched for config.yaml in order. Defaults to the XDG config dir.
	ConfigDirs []string
	// Flags are bound over every other source when set on the command line.
	Flags *pflag.FlagSet
}

// Load resolves Settings. Later sources win: defaults, settings file, environment, flags.
func Load(opts LoadOptions) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readSettingsFile(v, opts.ConfigDirs); err != nil {
		return nil, err
	}

	if err := bindFlags(v, opts.Flags); err != nil {
		return nil, err
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, errUtils.Build(errUtils.ErrInvalidSettings).
			WithCause(err).
			WithHint("Check the types of the values in the settings file").
			Err()
	}

	if err := finalize(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(CacheDirKey, "")
	v.SetDefault(CacheTTLKey, DefaultCacheTTL)
	v.SetDefault(FetchClientsKey, DefaultFetchClients)
	v.SetDefault(FetchHostKey, DefaultHost)
	v.SetDefault(LogsLevelKey, "Info")
	v.SetDefault(LogsVerboseKey, false)
	v.SetDefault(UIAccessibleKey, false)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errUtils.Build(errUtils.ErrInvalidSettings).WithCause(err).WithContext("flag", name).Err()
		}
	}
	return nil
}

func readSettingsFile(v *viper.Viper, dirs []string) error {
	if len(dirs) == 0 {
		dir, err := xdg.GetXDGConfigDir("", 0o755)
		if err != nil {
			log.Debug("Unable to resolve XDG config directory", "error", err)
			return nil
		}
		dirs = []string{dir}
	}

	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	v.SetConfigName(SettingsFileName)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errUtils.Build(errUtils.ErrInvalidSettings).
			WithCause(err).
			WithExplanationf("Cannot read settings file in: `%s`", strings.Join(dirs, ", ")).
			Err()
	}

	log.Debug("Loaded settings", "file", v.ConfigFileUsed())
	return nil
}

func finalize(settings *Settings) error {
	if settings.Cache.TTL < 0 {
		return errUtils.Build(errUtils.ErrInvalidCacheTTL).
			WithExplanationf("Cache TTL must not be negative, got `%s`", settings.Cache.TTL).
			WithHint("Use a Go duration such as `24h` or `30m`").
			Err()
	}

	if settings.Cache.Dir == "" {
		dir, err := xdg.GetXDGCacheDir(CacheSubdir, 0o755)
		if err != nil {
			return errUtils.Build(errUtils.ErrCacheDirectoryCreation).WithCause(err).Err()
		}
		settings.Cache.Dir = dir
	} else {
		abs, err := filepath.Abs(settings.Cache.Dir)
		if err != nil {
			return fmt.Errorf("%w: %s", errUtils.ErrInvalidSettings, settings.Cache.Dir)
		}
		settings.Cache.Dir = abs
	}

	// Environment values arrive as one comma separated string.
	clients := lo.FlatMap(settings.Fetch.Clients, func(item string, _ int) []string {
		return strings.Split(item, ",")
	})
	clients = lo.Compact(lo.Map(clients, func(item string, _ int) string { return strings.TrimSpace(item) }))
	if len(clients) == 0 {
		clients = DefaultFetchClients
	}
	settings.Fetch.Clients = clients

	return nil
}
