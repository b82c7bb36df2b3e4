// Package cascade collects the configuration files that apply to a selected
// template directory.
package cascade

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	errUtils "github.com/taisan11/pj-creater/errors"
	"github.com/taisan11/pj-creater/pkg/generator/config"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

// Entry is one configuration file of the cascade.
type Entry struct {
	Dir      string
	Config   *config.TemplateConfig
	CopyFrom bool
}

// CopyFromDir is a copy-from directory declared by the selected configuration.
type CopyFromDir struct {
	// Rel is the path as declared, relative to the selected directory.
	Rel string
	Abs string
}

// Cascade is the ordered configuration chain of a selection: ancestors from
// the root down to the selected directory, then copy-from donors.
type Cascade struct {
	Root        string
	SelectedDir string
	Entries     []Entry
	// Selected is the selected directory's own configuration, nil if it has none.
	Selected *config.TemplateConfig
	// CopyFrom lists every existing copy-from directory in declaration order.
	CopyFrom []CopyFromDir
}

// Collect loads the configuration chain for selected, which must be root or
// one of its descendants. Copy-from targets are followed one hop only.
func Collect(root, selected string) (*Cascade, error) {
	root = filepath.Clean(root)
	selected = filepath.Clean(selected)

	rel, err := filepath.Rel(root, selected)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, errUtils.Build(errUtils.ErrUnknownTemplatePath).
			WithExplanationf("`%s` is not inside the template root `%s`", selected, root).
			WithContext("root", root).
			WithContext("selected", selected).
			Err()
	}

	c := &Cascade{Root: root, SelectedDir: selected}
	visited := make(map[string]struct{})

	for _, dir := range ancestorChain(root, selected, visited) {
		if !config.Exists(dir) {
			continue
		}
		cfg, err := config.LoadDir(dir)
		if err != nil {
			return nil, err
		}
		c.Entries = append(c.Entries, Entry{Dir: dir, Config: cfg})
		if dir == selected {
			c.Selected = cfg
		}
	}

	if c.Selected == nil {
		return c, nil
	}

	// Different spellings of one directory collapse to its first declaration.
	declared := lo.UniqBy(
		lo.Map(c.Selected.Files.CopyFromPaths(), func(rel string, _ int) CopyFromDir {
			return CopyFromDir{Rel: rel, Abs: filepath.Join(selected, filepath.FromSlash(rel))}
		}),
		func(d CopyFromDir) string { return d.Abs },
	)
	for _, d := range declared {
		rel, abs := d.Rel, d.Abs

		info, err := os.Stat(abs)
		if os.IsNotExist(err) {
			log.Debug("Skipping missing copy-from directory", "path", rel, "resolved", abs)
			continue
		}
		if err != nil {
			return nil, errUtils.Build(errUtils.ErrTemplateTraversal).
				WithCause(err).
				WithContext("copy_from", rel).
				Err()
		}
		if !info.IsDir() {
			log.Warn("Copy-from target is not a directory", "path", rel, "resolved", abs)
			continue
		}

		c.CopyFrom = append(c.CopyFrom, CopyFromDir{Rel: rel, Abs: abs})

		if _, seen := visited[abs]; seen {
			log.Trace("Copy-from directory already in cascade", "path", abs)
			continue
		}
		visited[abs] = struct{}{}

		if !config.Exists(abs) {
			continue
		}
		cfg, err := config.LoadDir(abs)
		if err != nil {
			return nil, err
		}
		c.Entries = append(c.Entries, Entry{Dir: abs, Config: cfg, CopyFrom: true})
	}

	log.Debug("Collected configuration cascade", "selected", selected, "entries", len(c.Entries), "copy_from", len(c.CopyFrom))
	return c, nil
}

// ancestorChain returns the directories from root down to selected.
func ancestorChain(root, selected string, visited map[string]struct{}) []string {
	var chain []string
	for current := selected; ; {
		if _, seen := visited[current]; seen {
			break
		}
		visited[current] = struct{}{}
		chain = append(chain, current)

		parent := filepath.Dir(current)
		if current == root || parent == current {
			break
		}
		current = parent
	}
	return lo.Reverse(chain)
}
