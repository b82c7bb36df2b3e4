package prompt

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/term"

	errUtils "github.com/taisan11/pj-creater/errors"
)

func TestNewHuhPrompter(t *testing.T) {
	assert.True(t, NewHuhPrompter(true).Accessible)
	assert.False(t, NewHuhPrompter(false).Accessible)
}

func TestHuhPrompter_RequiresTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal")
	}

	_, err := NewHuhPrompter(false).Input("Name?", "")
	assert.ErrorIs(t, err, errUtils.ErrInteractiveModeNotAvailable)

	_, err = NewHuhPrompter(false).Select("Pick", []Choice{{Label: "a", Value: "a"}})
	assert.ErrorIs(t, err, errUtils.ErrInteractiveModeNotAvailable)
}
