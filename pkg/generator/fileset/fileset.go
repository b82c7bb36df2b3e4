// Package fileset computes which template files end up where in the output.
package fileset

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/taisan11/pj-creater/pkg/generator/cascade"
	"github.com/taisan11/pj-creater/pkg/generator/config"
	"github.com/taisan11/pj-creater/pkg/generator/glob"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

// FileMap maps slash-separated output paths to absolute source paths.
type FileMap map[string]string

// Keys returns the output paths in lexical order.
func (m FileMap) Keys() []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

// Resolve applies include patterns, then exclude patterns, then copy-from
// directories. Copy-from files are keyed under their declared path and are
// not subject to the exclude patterns.
func Resolve(selectedDir string, rules *config.FileRules, copyFrom []cascade.CopyFromDir) (FileMap, error) {
	files := make(FileMap)

	for _, pattern := range rules.Includes() {
		matches, err := glob.Resolve(selectedDir, pattern)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			files[match] = filepath.Join(selectedDir, filepath.FromSlash(match))
		}
	}

	for _, pattern := range rules.Excludes() {
		for _, key := range files.Keys() {
			excluded, err := glob.Match(pattern, key)
			if err != nil {
				return nil, err
			}
			if excluded {
				delete(files, key)
			}
		}
	}

	for _, dir := range copyFrom {
		matches, err := glob.Resolve(dir.Abs, glob.EverythingPattern)
		if err != nil {
			return nil, err
		}
		prefix := CopyFromPrefix(dir.Rel)
		for _, match := range matches {
			files[path.Join(prefix, match)] = filepath.Join(dir.Abs, filepath.FromSlash(match))
		}
		log.Trace("Imported copy-from directory", "path", dir.Rel, "prefix", prefix, "files", len(matches))
	}

	log.Debug("Resolved file set", "dir", selectedDir, "entries", len(files))
	return files, nil
}

// CopyFromPrefix returns the output prefix of a copy-from path: the cleaned
// path without leading `/`, `./` and `../` segments. `../shared` maps to `shared`.
func CopyFromPrefix(rel string) string {
	segments := strings.Split(path.Clean(filepath.ToSlash(rel)), "/")
	segments = lo.DropWhile(segments, func(s string) bool {
		return s == "" || s == "." || s == ".."
	})
	return strings.Join(segments, "/")
}
