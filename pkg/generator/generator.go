// Package generator runs the template pipeline: resolve the source, select a
// template, merge its configuration, ask prompts and render the files.
package generator

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	errUtils "github.com/taisan11/pj-creater/errors"
	"github.com/taisan11/pj-creater/pkg/generator/cascade"
	"github.com/taisan11/pj-creater/pkg/generator/config"
	"github.com/taisan11/pj-creater/pkg/generator/fileset"
	"github.com/taisan11/pj-creater/pkg/generator/filesystem"
	"github.com/taisan11/pj-creater/pkg/generator/merge"
	"github.com/taisan11/pj-creater/pkg/generator/prompt"
	"github.com/taisan11/pj-creater/pkg/generator/render"
	"github.com/taisan11/pj-creater/pkg/generator/selector"
	"github.com/taisan11/pj-creater/pkg/generator/storage"
	"github.com/taisan11/pj-creater/pkg/generator/tree"
	"github.com/taisan11/pj-creater/pkg/generator/types"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

const (
	templateMessage = "テンプレートを入力してください"
	outputMessage   = "出力先ディレクトリを入力してください"
)

// UI receives progress and results.
type UI interface {
	Info(msg string)
	Success(msg string)
	Report(r *render.Report)
	Tree(t *tree.Tree)
	Validation(root string, results []types.ValidationResult) int
}

// Fetcher makes a remote template available locally.
type Fetcher interface {
	Fetch(ctx context.Context, ref storage.Ref, update bool) (string, error)
}

// Generator holds the collaborators of the pipeline.
type Generator struct {
	ui       UI
	prompter prompt.Prompter
	fetcher  Fetcher
	host     string
}

// NewGenerator creates a new generator with dependency injection.
func NewGenerator(ui UI, prompter prompt.Prompter, fetcher Fetcher) *Generator {
	return &Generator{ui: ui, prompter: prompter, fetcher: fetcher}
}

// WithHost sets the git host of `owner/name` references.
func (g *Generator) WithHost(host string) *Generator {
	g.host = host
	return g
}

// Options configure one Generate run.
type Options struct {
	// Source is a local directory or a remote reference; empty asks for one.
	Source string
	// OutputDir is where files are written; empty asks, defaulting to ./<template>.
	OutputDir string
	// Select pre-selects templates as `a/b`.
	Select string
	// Preset answers prompts by name.
	Preset map[string]string
	Update bool
	Force  bool
	DryRun bool
}

// Generate creates a project from a template.
func (g *Generator) Generate(ctx context.Context, opts Options) error {
	root, err := g.resolveSource(ctx, opts.Source, opts.Update)
	if err != nil {
		return err
	}

	t, err := tree.Build(root)
	if err != nil {
		return err
	}

	sel, err := g.selectTemplate(t, opts.Select)
	if err != nil {
		return err
	}
	if sel.Cancelled {
		return errUtils.ErrUserAborted
	}

	c, err := cascade.Collect(t.Root.Path, sel.Node.Path)
	if err != nil {
		return err
	}
	merged := merge.Merge(c)

	values, err := prompt.Collect(merged.Prompts, g.prompter, opts.Preset)
	if err != nil {
		return err
	}

	outputDir, err := g.resolveOutputDir(opts.OutputDir, sel)
	if err != nil {
		return err
	}
	if !opts.DryRun {
		if err := filesystem.ValidateTargetDirectory(outputDir, opts.Force); err != nil {
			return err
		}
	}

	files, err := fileset.Resolve(sel.Node.Path, merged.Files, c.CopyFrom)
	if err != nil {
		return err
	}

	var renderOpts []render.Option
	if opts.DryRun {
		renderOpts = append(renderOpts, render.WithDryRun())
	}
	report, err := render.Render(ctx, files, outputDir, values, renderOpts...)
	if err != nil {
		return err
	}

	g.ui.Report(report)
	return nil
}

// List prints the template hierarchy of source.
func (g *Generator) List(ctx context.Context, source string, update bool) error {
	root, err := g.resolveSource(ctx, source, update)
	if err != nil {
		return err
	}

	t, err := tree.Build(root)
	if err != nil {
		return err
	}

	g.ui.Tree(t)
	return nil
}

// Validate checks every configuration file of source.
func (g *Generator) Validate(ctx context.Context, source string, update bool) error {
	root, err := g.resolveSource(ctx, source, update)
	if err != nil {
		return err
	}

	t, err := tree.Build(root)
	if err != nil {
		return err
	}

	dirs := lo.FilterMap(lo.Values(t.Nodes), func(n *tree.Node, _ int) (string, bool) {
		return n.Path, n.HasConfig
	})
	sort.Strings(dirs)

	if len(dirs) == 0 {
		g.ui.Info("No configuration files found")
		return nil
	}

	results := make([]types.ValidationResult, 0, len(dirs))
	for _, dir := range dirs {
		_, err := config.LoadDir(dir)
		results = append(results, types.ValidationResult{Path: config.PathIn(dir), Valid: err == nil, Err: err})
	}

	if invalid := g.ui.Validation(t.Root.Path, results); invalid > 0 {
		return errUtils.Build(errUtils.ErrConfigValidation).
			WithExplanationf("%d of %d configuration files are invalid", invalid, len(results)).
			WithContext("root", t.Root.Path).
			Err()
	}
	return nil
}

func (g *Generator) resolveSource(ctx context.Context, source string, update bool) (string, error) {
	if strings.TrimSpace(source) == "" {
		answer, err := g.prompter.Input(templateMessage, "")
		if err != nil {
			return "", err
		}
		source = strings.TrimSpace(answer)
	}

	if info, err := os.Stat(source); err == nil && info.IsDir() {
		abs, err := filepath.Abs(source)
		if err != nil {
			return "", errUtils.Build(errUtils.ErrTemplateNotFound).WithCause(err).WithContext("source", source).Err()
		}
		log.Debug("Using local template", "dir", abs)
		return abs, nil
	}

	if looksLocal(source) {
		return "", errUtils.Build(errUtils.ErrTemplateNotFound).
			WithExplanationf("Template directory does not exist: `%s`", source).
			WithContext("source", source).
			Err()
	}

	ref, err := storage.ParseRefOn(source, g.host)
	if err != nil {
		return "", err
	}
	g.ui.Info("Fetching " + ref.String())
	return g.fetcher.Fetch(ctx, ref, update)
}

func looksLocal(source string) bool {
	return filepath.IsAbs(source) ||
		source == "." || source == ".." ||
		strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../") ||
		strings.HasPrefix(source, `.\`) || strings.HasPrefix(source, `..\`) ||
		strings.HasPrefix(source, "~")
}

func (g *Generator) selectTemplate(t *tree.Tree, preselect string) (selector.Selection, error) {
	if preselect == "" {
		return selector.Select(t, g.prompter)
	}

	sel, err := selector.SelectPath(t, selector.SplitPath(preselect))
	if err != nil {
		return selector.Selection{}, err
	}
	return selector.Continue(sel, g.prompter)
}

func (g *Generator) resolveOutputDir(outputDir string, sel selector.Selection) (string, error) {
	if outputDir == "" {
		answer, err := g.prompter.Input(outputMessage, "./"+sel.Node.Name)
		if err != nil {
			return "", err
		}
		outputDir = answer
	}
	return filesystem.ResolveTargetDirectory(outputDir)
}
