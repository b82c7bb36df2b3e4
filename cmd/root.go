// Package cmd implements the pj-creater command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	errUtils "github.com/taisan11/pj-creater/errors"
	"github.com/taisan11/pj-creater/pkg/config"
	"github.com/taisan11/pj-creater/pkg/generator"
	"github.com/taisan11/pj-creater/pkg/generator/prompt"
	"github.com/taisan11/pj-creater/pkg/generator/storage"
	"github.com/taisan11/pj-creater/pkg/generator/ui"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// newPrompter is replaced in tests.
var newPrompter = func(accessible bool) prompt.Prompter { return prompt.NewHuhPrompter(accessible) }

// app holds what every command needs once settings are loaded.
type app struct {
	settings *config.Settings
	cache    *storage.RepoCache
	ui       *ui.UI
}

func (a *app) generator() *generator.Generator {
	return generator.NewGenerator(a.ui, newPrompter(a.settings.UI.Accessible), a.cache).WithHost(a.settings.Fetch.Host)
}

// verbose reports whether errors should carry their context table. Settings
// may be missing when setup itself failed, so the flag is consulted then.
func (a *app) verbose(cmd *cobra.Command) bool {
	if a.settings != nil {
		return a.settings.Logs.Verbose
	}
	verbose, _ := cmd.PersistentFlags().GetBool("verbose")
	return verbose
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	var (
		force   bool
		dryRun  bool
		sets    []string
		selectP string
	)

	root := &cobra.Command{
		Use:   "pj-creater [template] [output]",
		Short: "Create a project from a template directory or repository",
		Long: `Create a project from a template.

The template is a local directory or a repository reference such as
owner/name, owner/name/sub/path or a repository URL. Directories that
carry a pj-creater.json and have subdirectories are menus: pick one
child at each level until a template is reached.`,
		Example: `  pj-creater taisan11/templates my-app
  pj-creater ./templates --select web/react --set name=demo
  pj-creater clean`,
		Args:          cobra.MaximumNArgs(2),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := prompt.ParseAssignments(sets)
			if err != nil {
				return err
			}

			opts := generator.Options{
				Select: selectP,
				Preset: preset,
				Update: updateFlag(cmd),
				Force:  force,
				DryRun: dryRun,
			}
			if len(args) > 0 {
				opts.Source = args[0]
			}
			if len(args) > 1 {
				opts.OutputDir = args[1]
			}

			return a.generator().Generate(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().String("logs-level", "Info", "Logs level: Trace, Debug, Info, Warning, Off")
	root.PersistentFlags().BoolP("update", "u", false, "Refresh the cached template repository")
	root.PersistentFlags().Bool("verbose", false, "Show error context and the full error chain")
	root.PersistentFlags().Bool("accessible", false, "Ask prompts as plain numbered questions")

	root.Flags().BoolVarP(&force, "force", "f", false, "Write into a non-empty output directory")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without writing")
	root.Flags().StringArrayVar(&sets, "set", nil, "Answer a prompt as key=value (repeatable)")
	root.Flags().StringVar(&selectP, "select", "", "Select the template path, e.g. web/react")

	root.AddCommand(newCleanCmd(a), newListCmd(a), newValidateCmd(a))
	return root, a
}

func updateFlag(cmd *cobra.Command) bool {
	update, _ := cmd.Flags().GetBool("update")
	return update
}

func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.Load(config.LoadOptions{Flags: cmd.Flags()})
	if err != nil {
		return err
	}

	level, err := log.ParseLogLevel(settings.Logs.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level.ToLevel())

	cloners, err := storage.ClonersFor(settings.Fetch.Clients)
	if err != nil {
		return err
	}

	a.settings = settings
	a.cache = storage.NewRepoCache(settings.Cache.Dir, settings.Cache.TTL, cloners)
	a.ui = ui.New(cmd.ErrOrStderr())

	log.Debug("Loaded settings", "cache", settings.Cache.Dir, "ttl", settings.Cache.TTL, "clients", settings.Fetch.Clients)
	return nil
}

// Run executes the command line, prints any error to stderr and returns the
// process exit code.
func Run(ctx context.Context, args []string, stderr io.Writer) int {
	root, a := newRootCmd()
	root.SetArgs(args)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if errors.Is(err, context.Canceled) {
		return 130
	}

	code := errUtils.GetExitCode(err)
	if code == 0 {
		// Cancelled prompts are not failures.
		fmt.Fprintln(stderr, err.Error())
		return 0
	}

	formatter := errUtils.DefaultFormatterConfig()
	formatter.Verbose = a.verbose(root)
	if stderr != io.Writer(os.Stderr) {
		formatter.Color = "never"
	}
	fmt.Fprintln(stderr, errUtils.Format(err, formatter))
	return code
}
