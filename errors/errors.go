package errors

import (
	"errors"
)

// Configuration errors.
var (
	ErrConfigParse            = errors.New("failed to parse template configuration")
	ErrConfigValidation       = errors.New("template configuration is invalid")
	ErrInvalidTemplateRef     = errors.New("invalid template reference")
	ErrInvalidGlobPattern     = errors.New("invalid glob pattern")
	ErrUnknownTemplatePath    = errors.New("unknown template path")
	ErrInvalidPromptValue     = errors.New("invalid prompt value")
	ErrNoOptionsAvailable     = errors.New("no options available")
	ErrInvalidLogLevel        = errors.New("invalid log level")
	ErrInvalidSettings        = errors.New("invalid settings")
	ErrInvalidCacheTTL        = errors.New("invalid cache ttl")
	ErrResolveTargetDirectory = errors.New("failed to resolve target directory")
)

// Resource errors.
var (
	ErrTemplateNotFound        = errors.New("template not found")
	ErrTemplateTraversal       = errors.New("failed to traverse template directory")
	ErrReadTemplateFile        = errors.New("failed to read template file")
	ErrRenderFile              = errors.New("failed to render file")
	ErrReadTargetDirectory     = errors.New("failed to read target directory")
	ErrTargetDirectoryNotEmpty = errors.New("target directory is not empty")
)

// Fetch errors.
var (
	ErrNoCapableClient        = errors.New("no capable client available")
	ErrCloneFailed            = errors.New("failed to clone template repository")
	ErrCacheLocked            = errors.New("template cache is locked")
	ErrCacheDirectoryCreation = errors.New("failed to create cache directory")
	ErrCacheClean             = errors.New("failed to clean template cache")
)

// ErrUserAborted is returned when the user cancels an interactive prompt.
// It is not a failure: the process exits with status 0.
var ErrUserAborted = errors.New("cancelled")

// Interactive errors.
var (
	ErrPromptFailed                = errors.New("prompt failed")
	ErrInteractiveModeNotAvailable = errors.New("interactive mode is not available")
)
