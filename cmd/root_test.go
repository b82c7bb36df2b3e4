package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/taisan11/pj-creater/errors"
	"github.com/taisan11/pj-creater/pkg/generator/prompt"
)

// noPrompter fails the test when a question is asked.
type noPrompter struct{ t *testing.T }

func (p noPrompter) Select(message string, _ []prompt.Choice) (string, error) {
	p.t.Fatalf("unexpected select: %s", message)
	return "", nil
}

func (p noPrompter) Input(message, _ string) (string, error) {
	p.t.Fatalf("unexpected input: %s", message)
	return "", nil
}

func (p noPrompter) Confirm(message string, _ bool) (bool, error) {
	p.t.Fatalf("unexpected confirm: %s", message)
	return false, nil
}

func setupEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("PJ_CREATER_XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("PJ_CREATER_CACHE_DIR", filepath.Join(home, "cache"))
	t.Setenv("PJ_CREATER_LOGS_LEVEL", "")
	t.Setenv("PJ_CREATER_LOGS_VERBOSE", "")
	t.Setenv("PJ_CREATER_UI_ACCESSIBLE", "")

	orig := newPrompter
	newPrompter = func(bool) prompt.Prompter { return noPrompter{t} }
	t.Cleanup(func() { newPrompter = orig })
	return home
}

func writeTemplate(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "templates")
	files := map[string]string{
		"pj-creater.json":      `{"prompts":[{"name":"name","type":"text","message":"Name?"}]}`,
		"go/pj-creater.json":   `{"prompts":[{"name":"cgo","type":"confirm","message":"cgo?"}]}`,
		"go/go.mod":            "module <%= name %>\n",
		"node/package.json":    `{"name":"<%= name %>"}`,
		"node/pj-creater.json": `{"files":{"include":["*.json"]}}`,
	}
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetErr(&stderr)
	root.SetOut(&stderr)
	err := root.ExecuteContext(context.Background())
	return stderr.String(), err
}

func TestRoot_Generate(t *testing.T) {
	setupEnv(t)
	tmpl := writeTemplate(t)
	out := filepath.Join(t.TempDir(), "demo")

	stderr, err := run(t, tmpl, out, "--select", "go", "--set", "name=example.com/demo", "--set", "cgo=false")
	require.NoError(t, err)

	mod, err := os.ReadFile(filepath.Join(out, "go.mod"))
	require.NoError(t, err)
	assert.Equal(t, "module example.com/demo\n", string(mod))
	assert.NoFileExists(t, filepath.Join(out, "pj-creater.json"))
	assert.Contains(t, stderr, "1 created")
}

func TestRoot_GenerateRejectsNonEmptyOutput(t *testing.T) {
	setupEnv(t)
	tmpl := writeTemplate(t)
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "keep.txt"), []byte("x"), 0o644))
	args := []string{tmpl, out, "--select", "node", "--set", "name=demo"}

	_, err := run(t, args...)
	assert.ErrorIs(t, err, errUtils.ErrTargetDirectoryNotEmpty)
	assert.Equal(t, 2, errUtils.GetExitCode(err))

	_, err = run(t, append(args, "--force")...)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "package.json"))
}

func TestRoot_DryRun(t *testing.T) {
	setupEnv(t)
	tmpl := writeTemplate(t)
	out := filepath.Join(t.TempDir(), "demo")

	stderr, err := run(t, tmpl, out, "--select", "node", "--set", "name=demo", "--dry-run")
	require.NoError(t, err)

	assert.NoDirExists(t, out)
	assert.Contains(t, stderr, "Dry run")
}

func TestRoot_InvalidSet(t *testing.T) {
	setupEnv(t)

	_, err := run(t, writeTemplate(t), t.TempDir(), "--set", "novalue")
	assert.ErrorIs(t, err, errUtils.ErrInvalidPromptValue)
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "list", writeTemplate(t), "--logs-level", "Loud")
	assert.ErrorIs(t, err, errUtils.ErrInvalidLogLevel)
}

func TestList(t *testing.T) {
	setupEnv(t)

	stderr, err := run(t, "list", writeTemplate(t))
	require.NoError(t, err)

	assert.Contains(t, stderr, "go")
	assert.Contains(t, stderr, "node")
}

func TestValidate(t *testing.T) {
	setupEnv(t)
	tmpl := writeTemplate(t)

	stderr, err := run(t, "validate", tmpl)
	require.NoError(t, err)
	assert.Contains(t, stderr, "3 configuration files are valid")

	require.NoError(t, os.WriteFile(filepath.Join(tmpl, "go", "pj-creater.json"), []byte(`{"prompts":[{}]}`), 0o644))
	_, err = run(t, "validate", tmpl)
	assert.ErrorIs(t, err, errUtils.ErrConfigValidation)
}

func TestClean(t *testing.T) {
	home := setupEnv(t)
	cache := filepath.Join(home, "cache")
	require.NoError(t, os.MkdirAll(filepath.Join(cache, "o__n"), 0o755))

	stderr, err := run(t, "clean")
	require.NoError(t, err)

	assert.NoDirExists(t, cache)
	assert.Contains(t, stderr, "Removed template cache")
}

func TestRun_ExitCodes(t *testing.T) {
	setupEnv(t)
	tmpl := writeTemplate(t)

	var stderr bytes.Buffer
	assert.Equal(t, 0, Run(context.Background(), []string{"list", tmpl}, &stderr))

	stderr.Reset()
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "keep.txt"), []byte("x"), 0o644))
	code := Run(context.Background(), []string{tmpl, out, "--select", "node", "--set", "name=demo"}, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "not empty")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, 130, Run(ctx, []string{tmpl, t.TempDir(), "--select", "node", "--set", "name=demo"}, &bytes.Buffer{}))
}

func TestRun_VerboseShowsErrorContext(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     string
		context bool
	}{
		{name: "default", args: []string{"./missing-template"}},
		{name: "flag", args: []string{"./missing-template", "--verbose"}, context: true},
		{name: "environment", args: []string{"./missing-template"}, env: "true", context: true},
		{name: "setup failure", args: []string{"list", "--logs-level", "Loud", "--verbose"}, context: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			t.Setenv("PJ_CREATER_LOGS_VERBOSE", tt.env)

			var stderr bytes.Buffer
			code := Run(context.Background(), tt.args, &stderr)

			assert.NotZero(t, code)
			if tt.context {
				assert.Contains(t, stderr.String(), "Context")
			} else {
				assert.NotContains(t, stderr.String(), "Context")
			}
		})
	}
}

func TestRoot_AccessiblePrompts(t *testing.T) {
	setupEnv(t)
	tmpl := writeTemplate(t)

	var accessible bool
	newPrompter = func(a bool) prompt.Prompter {
		accessible = a
		return noPrompter{t}
	}

	_, err := run(t, "list", tmpl)
	require.NoError(t, err)
	assert.False(t, accessible)

	_, err = run(t, "list", tmpl, "--accessible")
	require.NoError(t, err)
	assert.True(t, accessible)
}
