package errors

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_NilError(t *testing.T) {
	assert.Nil(t, Build(nil).WithHint("ignored").Err())
}

func TestBuild_KeepsSentinel(t *testing.T) {
	err := Build(ErrConfigValidation).
		WithExplanationf("Invalid configuration file: `%s`", "/t/pj-creater.json").
		WithHint("Check the prompts section").
		WithContext("path", "/t/pj-creater.json").
		Err()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigValidation)
	assert.Equal(t, []string{"Check the prompts section"}, errors.GetAllHints(err))
	assert.Contains(t, errors.GetAllDetails(err), "Invalid configuration file: `/t/pj-creater.json`")
}

func TestBuild_WithCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Build(ErrTemplateTraversal).WithCause(cause).Err()

	assert.ErrorIs(t, err, ErrTemplateTraversal)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestBuild_WithExitCode(t *testing.T) {
	err := Build(ErrTargetDirectoryNotEmpty).WithExitCode(2).Err()

	assert.Equal(t, 2, GetExitCode(err))
	assert.ErrorIs(t, err, ErrTargetDirectoryNotEmpty)
}

func TestBuild_WithSentinel(t *testing.T) {
	err := Build(errors.New("boom")).WithSentinel(ErrRenderFile).Err()

	assert.ErrorIs(t, err, ErrRenderFile)
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: 0},
		{name: "user aborted", err: ErrUserAborted, expected: 0},
		{name: "wrapped user aborted", err: errors.Wrap(ErrUserAborted, "select template"), expected: 0},
		{name: "plain error", err: errors.New("boom"), expected: 1},
		{name: "explicit exit code", err: WithExitCode(errors.New("boom"), 3), expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetExitCode(tt.err))
		})
	}
}

func TestWithExitCode_Nil(t *testing.T) {
	assert.Nil(t, WithExitCode(nil, 2))
}
