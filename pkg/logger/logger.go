package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"

	errUtils "github.com/taisan11/pj-creater/errors"
)

// Level is a logging level. It extends charmbracelet/log levels with Trace and Off.
type Level = charm.Level

const (
	// TraceLevel sits below charm's DebugLevel.
	TraceLevel Level = charm.DebugLevel - 1
	DebugLevel Level = charm.DebugLevel
	InfoLevel  Level = charm.InfoLevel
	WarnLevel  Level = charm.WarnLevel
	ErrorLevel Level = charm.ErrorLevel
	// OffLevel is above every level that is ever emitted.
	OffLevel Level = charm.FatalLevel + 1
)

// LogLevel is the user facing name of a level as written in settings and flags.
type LogLevel string

const (
	LogLevelOff     LogLevel = "Off"
	LogLevelTrace   LogLevel = "Trace"
	LogLevelDebug   LogLevel = "Debug"
	LogLevelInfo    LogLevel = "Info"
	LogLevelWarning LogLevel = "Warning"
)

// Logger wraps a charmbracelet logger and adds the Trace level.
type Logger struct {
	*charm.Logger
}

// NewLogger creates a Logger writing to w.
func NewLogger(w io.Writer) *Logger {
	l := charm.NewWithOptions(w, charm.Options{
		Level:           charm.InfoLevel,
		ReportTimestamp: false,
	})

	styles := charm.DefaultStyles()
	styles.Levels[TraceLevel] = lipgloss.NewStyle().
		SetString("TRCE").
		Bold(true).
		MaxWidth(4).
		Foreground(lipgloss.Color("61"))
	l.SetStyles(styles)

	return &Logger{Logger: l}
}

// Trace logs a message at TraceLevel.
func (l *Logger) Trace(msg interface{}, keyvals ...interface{}) {
	l.Log(TraceLevel, msg, keyvals...)
}

// GetLevelString returns the lowercase name of the current level.
func (l *Logger) GetLevelString() string {
	switch l.GetLevel() {
	case TraceLevel:
		return "trace"
	case OffLevel:
		return "off"
	default:
		return l.GetLevel().String()
	}
}

// ParseLogLevel parses a user facing level name. An empty string means Info.
func ParseLogLevel(logLevel string) (LogLevel, error) {
	if logLevel == "" {
		return LogLevelInfo, nil
	}

	for _, level := range []LogLevel{LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelOff} {
		if strings.EqualFold(logLevel, string(level)) {
			return level, nil
		}
	}

	return "", errUtils.Build(errUtils.ErrInvalidLogLevel).
		WithExplanationf("Unknown log level `%s`", logLevel).
		WithHint("Supported log levels are Trace, Debug, Info, Warning, Off").
		WithContext("level", logLevel).
		Err()
}

// ToLevel converts a user facing level name to a Level.
func (l LogLevel) ToLevel() Level {
	switch l {
	case LogLevelTrace:
		return TraceLevel
	case LogLevelDebug:
		return DebugLevel
	case LogLevelWarning:
		return WarnLevel
	case LogLevelOff:
		return OffLevel
	default:
		return InfoLevel
	}
}
