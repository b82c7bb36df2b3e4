// Package render writes a resolved file set into the output directory.
package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	errUtils "github.com/taisan11/pj-creater/errors"
	"github.com/taisan11/pj-creater/pkg/generator/config"
	"github.com/taisan11/pj-creater/pkg/generator/fileset"
	"github.com/taisan11/pj-creater/pkg/generator/types"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

const dirPerm = 0o755

// Entry is one rendered (or skipped) output path.
type Entry struct {
	Path   string
	Source string
	Status types.FileStatus
	Binary bool
	Reason string
}

// Report lists what a render did, in output path order.
type Report struct {
	OutputRoot string
	DryRun     bool
	Entries    []Entry
}

// Count returns the number of entries with the given status.
func (r *Report) Count(status types.FileStatus) int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == status {
			n++
		}
	}
	return n
}

type options struct {
	dryRun bool
}

// Option configures Render.
type Option func(*options)

// WithDryRun computes the report without touching the output directory.
func WithDryRun() Option {
	return func(o *options) { o.dryRun = true }
}

// Render copies every entry of files below outputRoot. Text files get their
// placeholders substituted from values, binary files are copied unchanged.
// The first filesystem error stops the render; files already written stay.
func Render(ctx context.Context, files fileset.FileMap, outputRoot string, values Values, opts ...Option) (*Report, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	report := &Report{OutputRoot: outputRoot, DryRun: o.dryRun}
	if !o.dryRun {
		if err := os.MkdirAll(outputRoot, dirPerm); err != nil {
			return report, renderError(err, outputRoot, "")
		}
	}

	for _, key := range files.Keys() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		source := files[key]
		if reason := skipReason(key); reason != "" {
			log.Trace("Skipping template entry", "path", key, "reason", reason)
			report.Entries = append(report.Entries, Entry{Path: key, Source: source, Status: types.FileStatusSkipped, Reason: reason})
			continue
		}

		entry, err := renderEntry(key, source, outputRoot, values, o.dryRun)
		if err != nil {
			return report, err
		}
		if entry != nil {
			report.Entries = append(report.Entries, *entry)
		}
	}

	log.Debug("Rendered template", "output", outputRoot, "entries", len(report.Entries), "dry_run", o.dryRun)
	return report, nil
}

func skipReason(key string) string {
	for _, segment := range strings.Split(key, "/") {
		if segment == ".git" {
			return "git metadata"
		}
	}
	if strings.HasSuffix(key, config.FileName) {
		return "template configuration"
	}
	return ""
}

func renderEntry(key, source, outputRoot string, values Values, dryRun bool) (*Entry, error) {
	target := filepath.Join(outputRoot, filepath.FromSlash(key))

	info, err := os.Lstat(source)
	if err != nil {
		return nil, renderError(err, source, key)
	}

	switch {
	case info.IsDir():
		if !dryRun {
			if err := os.MkdirAll(target, dirPerm); err != nil {
				return nil, renderError(err, target, key)
			}
		}
		return nil, nil
	case !info.Mode().IsRegular():
		return &Entry{Path: key, Source: source, Status: types.FileStatusSkipped, Reason: "not a regular file"}, nil
	}

	status := types.FileStatusCreated
	if _, err := os.Stat(target); err == nil {
		status = types.FileStatusUpdated
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrReadTemplateFile).
			WithCause(err).
			WithContext("source", source).
			Err()
	}

	binary := IsBinary(data)
	if !binary {
		data = []byte(Substitute(string(data), values))
	}

	entry := &Entry{Path: key, Source: source, Status: status, Binary: binary}
	if dryRun {
		return entry, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return nil, renderError(err, filepath.Dir(target), key)
	}
	if err := renameio.WriteFile(target, data, info.Mode().Perm()); err != nil {
		return nil, renderError(err, target, key)
	}
	return entry, nil
}

func renderError(cause error, path, key string) error {
	b := errUtils.Build(errUtils.ErrRenderFile).
		WithCause(cause).
		WithExplanationf("Cannot write `%s`", path).
		WithHint("Files written before this error are left in place").
		WithContext("path", path)
	if key != "" {
		b = b.WithContext("entry", key)
	}
	return b.Err()
}
