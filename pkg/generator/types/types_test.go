package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileStatus(t *testing.T) {
	tests := []struct {
		status FileStatus
		str    string
		icon   string
	}{
		{FileStatusCreated, "CREATE", "+"},
		{FileStatusUpdated, "UPDATE", "~"},
		{FileStatusSkipped, "SKIP", "-"},
		{FileStatus(42), "UNKNOWN", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.status.String())
			assert.Equal(t, tt.icon, tt.status.Icon())
		})
	}
}
