package config

import "time"

const (
	// EnvPrefix is the prefix of every environment variable read by pj-creater.
	EnvPrefix = "PJ_CREATER"

	// SettingsFileName is the name (without extension) of the optional settings file.
	SettingsFileName = "config"

	// DefaultCacheTTL is how long a fetched template repository stays fresh.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultHost is the git host used for `owner/name` template references.
	DefaultHost = "github.com"

	// CacheSubdir is the XDG cache subdirectory holding fetched repositories.
	CacheSubdir = "templates"
)

// Setting keys.
const (
	CacheDirKey     = "cache.dir"
	CacheTTLKey     = "cache.ttl"
	FetchClientsKey = "fetch.clients"
	FetchHostKey    = "fetch.host"
	LogsLevelKey    = "logs.level"
	LogsVerboseKey  = "logs.verbose"
	UIAccessibleKey = "ui.accessible"
)

// DefaultFetchClients lists the clone clients tried in order.
var DefaultFetchClients = []string{"git", "go-git"}
