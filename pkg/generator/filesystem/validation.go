package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	errUtils "github.com/taisan11/pj-creater/errors"
)

// ResolveTargetDirectory turns the output directory argument into an absolute path.
func ResolveTargetDirectory(targetPath string) (string, error) {
	if strings.TrimSpace(targetPath) == "" {
		return "", errUtils.Build(errUtils.ErrResolveTargetDirectory).
			WithExplanation("Output directory is empty").
			WithHint("Pass the output directory as the second argument").
			Err()
	}

	abs, err := filepath.Abs(targetPath)
	if err != nil {
		return "", errUtils.Build(errUtils.ErrResolveTargetDirectory).
			WithCause(err).
			WithContext("target_dir", targetPath).
			Err()
	}
	return abs, nil
}

// ValidateTargetDirectory checks whether the output can be written to targetPath.
// A missing directory is fine. Hidden entries do not count as content.
func ValidateTargetDirectory(targetPath string, force bool) error {
	info, err := os.Stat(targetPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errUtils.Build(errUtils.ErrReadTargetDirectory).
			WithCause(err).
			WithContext("target_dir", targetPath).
			WithExitCode(2).
			Err()
	}
	if !info.IsDir() {
		return errUtils.Build(errUtils.ErrResolveTargetDirectory).
			WithExplanationf("`%s` exists and is not a directory", targetPath).
			WithHint("Choose a different output directory").
			WithContext("target_dir", targetPath).
			WithExitCode(2).
			Err()
	}

	entries, err := os.ReadDir(targetPath)
	if err != nil {
		return errUtils.Build(errUtils.ErrReadTargetDirectory).
			WithExplanationf("Cannot read directory: `%s`", targetPath).
			WithHint("Check directory permissions").
			WithContext("target_dir", targetPath).
			WithExitCode(2).
			Err()
	}

	visible := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (string, bool) {
		return entry.Name(), !strings.HasPrefix(entry.Name(), ".")
	})
	if len(visible) == 0 || force {
		return nil
	}

	return errUtils.Build(errUtils.ErrTargetDirectoryNotEmpty).
		WithExplanationf("Directory `%s` already contains files", targetPath).
		WithExplanationf("Files: `%s`", strings.Join(visible, ", ")).
		WithHint("Use `--force` to overwrite existing files").
		WithHint("Or choose a different output directory").
		WithContext("target_dir", targetPath).
		WithContext("file_count", len(visible)).
		WithExitCode(2).
		Err()
}
