// Package tree builds the directory hierarchy of a template root.
package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	errUtils "github.com/taisan11/pj-creater/errors"
	"github.com/taisan11/pj-creater/pkg/generator/config"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

// Node is one directory of the template hierarchy.
type Node struct {
	Name      string
	Path      string
	HasConfig bool
	Children  map[string]*Node
}

// ChildNames returns the names of the children in lexical order.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsFinal reports whether selection stops at this node: it either carries no
// configuration file (template content) or cannot be descended further.
func (n *Node) IsFinal() bool {
	return !n.HasConfig || len(n.Children) == 0
}

// Tree is an arena of nodes addressed by absolute path.
type Tree struct {
	Root  *Node
	Nodes map[string]*Node
}

// Lookup returns the node for an absolute path.
func (t *Tree) Lookup(path string) (*Node, bool) {
	node, ok := t.Nodes[filepath.Clean(path)]
	return node, ok
}

// Build walks root breadth-first over subdirectories. Hidden directories are
// neither visited nor recorded. Any listing error aborts the whole build.
func Build(root string) (*Tree, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrTemplateTraversal).WithCause(err).WithContext("path", root).Err()
	}

	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, errUtils.Build(errUtils.ErrTemplateNotFound).
			WithExplanationf("Template directory does not exist: `%s`", absRoot).
			WithContext("path", absRoot).
			Err()
	}

	rootNode := newNode(filepath.Base(absRoot), absRoot)
	t := &Tree{
		Root:  rootNode,
		Nodes: map[string]*Node{absRoot: rootNode},
	}

	queue := []*Node{rootNode}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(current.Path)
		if err != nil {
			return nil, errUtils.Build(errUtils.ErrTemplateTraversal).
				WithCause(err).
				WithExplanationf("Cannot list directory: `%s`", current.Path).
				WithContext("path", current.Path).
				Err()
		}

		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}

			childPath := filepath.Join(current.Path, entry.Name())
			if _, visited := t.Nodes[childPath]; visited {
				continue
			}

			child := newNode(entry.Name(), childPath)
			current.Children[child.Name] = child
			t.Nodes[childPath] = child
			queue = append(queue, child)
		}
	}

	log.Debug("Built template tree", "root", absRoot, "directories", len(t.Nodes))
	return t, nil
}

func newNode(name, path string) *Node {
	return &Node{
		Name:      name,
		Path:      path,
		HasConfig: config.Exists(path),
		Children:  make(map[string]*Node),
	}
}
