package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/taisan11/pj-creater/errors"
)

func TestLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.SetLevel(TraceLevel)

	logger.Trace("test trace message", "path", "/t")

	assert.Contains(t, buf.String(), "test trace message")
	assert.Contains(t, buf.String(), "path=/t")
}

func TestLogger_TraceHiddenAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.SetLevel(DebugLevel)

	logger.Trace("hidden")
	logger.Debug("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_Off(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.SetLevel(OffLevel)

	logger.Error("nothing")

	assert.Empty(t, buf.String())
}

func TestLogger_GetLevelString(t *testing.T) {
	logger := NewLogger(&bytes.Buffer{})

	logger.SetLevel(TraceLevel)
	assert.Equal(t, "trace", logger.GetLevelString())

	logger.SetLevel(DebugLevel)
	assert.Equal(t, "debug", logger.GetLevelString())

	logger.SetLevel(InfoLevel)
	assert.Equal(t, "info", logger.GetLevelString())

	logger.SetLevel(OffLevel)
	assert.Equal(t, "off", logger.GetLevelString())
}

func TestPackageLevelFunctions(t *testing.T) {
	oldLogger := Default()
	defer SetDefault(oldLogger)

	var buf bytes.Buffer
	testLogger := NewLogger(&buf)
	testLogger.SetLevel(TraceLevel)
	SetDefault(testLogger)

	Trace("package level trace")
	Debug("package level debug")
	Warn("package level warn")

	assert.Contains(t, buf.String(), "package level trace")
	assert.Contains(t, buf.String(), "package level debug")
	assert.Contains(t, buf.String(), "package level warn")
	assert.Equal(t, TraceLevel, GetLevel())
}

func TestSetDefault_IgnoresNil(t *testing.T) {
	oldLogger := Default()
	SetDefault(nil)
	assert.Same(t, oldLogger, Default())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		hasError bool
	}{
		{"Trace", LogLevelTrace, false},
		{"Debug", LogLevelDebug, false},
		{"info", LogLevelInfo, false},
		{"Warning", LogLevelWarning, false},
		{"Off", LogLevelOff, false},
		{"", LogLevelInfo, false},
		{"Invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLogLevel(tt.input)
			if tt.hasError {
				require.Error(t, err)
				assert.ErrorIs(t, err, errUtils.ErrInvalidLogLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLogLevel_ToLevel(t *testing.T) {
	assert.Equal(t, TraceLevel, LogLevelTrace.ToLevel())
	assert.Equal(t, DebugLevel, LogLevelDebug.ToLevel())
	assert.Equal(t, InfoLevel, LogLevelInfo.ToLevel())
	assert.Equal(t, WarnLevel, LogLevelWarning.ToLevel())
	assert.Equal(t, OffLevel, LogLevelOff.ToLevel())
}
