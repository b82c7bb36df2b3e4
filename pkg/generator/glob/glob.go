// Package glob resolves `**` / `*` patterns to relative paths under a base directory.
package glob

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	errUtils "github.com/taisan11/pj-creater/errors"
)

// EverythingPattern matches every file and directory below a base directory.
const EverythingPattern = "**/*"

// Resolve returns the slash-separated paths under baseDir matching pattern,
// sorted lexically and without duplicates. Matches include directories.
// Symlinks are returned as-is and never followed into.
func Resolve(baseDir, pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, errUtils.Build(errUtils.ErrInvalidGlobPattern).
			WithExplanationf("Pattern `%s` is not a valid glob", pattern).
			WithHint("Supported syntax: `**`, `*`, `?`, `[abc]`, `{a,b}`").
			WithContext("pattern", pattern).
			Err()
	}

	matches, err := doublestar.Glob(os.DirFS(baseDir), pattern, doublestar.WithNoFollow(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrTemplateTraversal).
			WithCause(err).
			WithContext("dir", baseDir).
			WithContext("pattern", pattern).
			Err()
	}

	seen := make(map[string]struct{}, len(matches))
	result := make([]string, 0, len(matches))
	for _, match := range matches {
		if match == "." {
			continue
		}
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		result = append(result, match)
	}
	sort.Strings(result)

	return result, nil
}

// Match reports whether the slash-separated path matches pattern.
func Match(pattern, path string) (bool, error) {
	matched, err := doublestar.Match(filepath.ToSlash(pattern), filepath.ToSlash(path))
	if err != nil {
		return false, errUtils.Build(errUtils.ErrInvalidGlobPattern).
			WithCause(err).
			WithContext("pattern", pattern).
			Err()
	}
	return matched, nil
}
