package tree

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/taisan11/pj-creater/errors"
	"github.com/taisan11/pj-creater/pkg/generator/config"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755))
	}
}

func touchConfig(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(config.PathIn(dir), []byte(`{}`), 0o644))
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "web/react", "web/vue", "cli", ".git/objects", "web/.cache")
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0o644))
	touchConfig(t, root)
	touchConfig(t, filepath.Join(root, "web"))

	tr, err := Build(root)
	require.NoError(t, err)

	assert.Equal(t, root, tr.Root.Path)
	assert.True(t, tr.Root.HasConfig)
	assert.Equal(t, []string{"cli", "web"}, tr.Root.ChildNames())

	web := tr.Root.Children["web"]
	require.NotNil(t, web)
	assert.True(t, web.HasConfig)
	assert.Equal(t, []string{"react", "vue"}, web.ChildNames())
	assert.False(t, web.Children["react"].HasConfig)

	assert.Len(t, tr.Nodes, 5)
	_, ok := tr.Lookup(filepath.Join(root, ".git"))
	assert.False(t, ok, "hidden directories are pruned")

	node, ok := tr.Lookup(filepath.Join(root, "web", "vue") + string(filepath.Separator))
	require.True(t, ok)
	assert.Equal(t, "vue", node.Name)
}

func TestBuild_IgnoresSymlinkedDirectories(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	root := t.TempDir()
	mkdirs(t, root, "a")
	require.NoError(t, os.Symlink(root, filepath.Join(root, "a", "loop")))

	tr, err := Build(root)
	require.NoError(t, err)

	assert.Len(t, tr.Nodes, 2)
}

func TestBuild_MissingRoot(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, errUtils.ErrTemplateNotFound)
}

func TestBuild_UnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission checks are not enforced")
	}
	root := t.TempDir()
	mkdirs(t, root, "locked/inner")
	require.NoError(t, os.Chmod(filepath.Join(root, "locked"), 0o000))
	t.Cleanup(func() { _ = os.Chmod(filepath.Join(root, "locked"), 0o755) })

	_, err := Build(root)
	assert.ErrorIs(t, err, errUtils.ErrTemplateTraversal)
}

func TestNode_IsFinal(t *testing.T) {
	leaf := &Node{HasConfig: true, Children: map[string]*Node{}}
	content := &Node{HasConfig: false, Children: map[string]*Node{"x": {}}}
	menu := &Node{HasConfig: true, Children: map[string]*Node{"x": {}}}

	assert.True(t, leaf.IsFinal())
	assert.True(t, content.IsFinal())
	assert.False(t, menu.IsFinal())
}
