// Package ui prints generator progress and results to the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	lgtree "github.com/charmbracelet/lipgloss/tree"

	"github.com/taisan11/pj-creater/pkg/generator/render"
	"github.com/taisan11/pj-creater/pkg/generator/tree"
	"github.com/taisan11/pj-creater/pkg/generator/types"
)

const (
	colorGreen  = "2"
	colorRed    = "1"
	colorYellow = "3"
	colorBlue   = "4"
	colorGray   = "8"
)

// UI writes styled status lines to out.
type UI struct {
	out       io.Writer
	checkmark string
	xMark     string
	bullet    string

	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	header  lipgloss.Style
	muted   lipgloss.Style
}

// New returns a UI writing to out, or stderr when out is nil.
func New(out io.Writer) *UI {
	if out == nil {
		out = os.Stderr
	}
	r := lipgloss.NewRenderer(out)

	return &UI{
		out:       out,
		checkmark: "✓",
		xMark:     "✗",
		bullet:    "•",
		success:   r.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		failure:   r.NewStyle().Foreground(lipgloss.Color(colorRed)),
		warning:   r.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		header:    r.NewStyle().Foreground(lipgloss.Color(colorBlue)).Bold(true),
		muted:     r.NewStyle().Foreground(lipgloss.Color(colorGray)),
	}
}

// Success prints msg after a check mark.
func (u *UI) Success(msg string) {
	fmt.Fprintf(u.out, "%s %s\n", u.success.Render(u.checkmark), msg)
}

func (u *UI) Successf(format string, args ...any) {
	u.Success(fmt.Sprintf(format, args...))
}

// Error prints msg after a cross.
func (u *UI) Error(msg string) {
	fmt.Fprintf(u.out, "%s %s\n", u.failure.Render(u.xMark), msg)
}

// Info prints msg after a muted bullet.
func (u *UI) Info(msg string) {
	fmt.Fprintf(u.out, "%s %s\n", u.muted.Render(u.bullet), msg)
}

// Report prints one line per rendered entry followed by a summary.
func (u *UI) Report(r *render.Report) {
	title := "Generated"
	if r.DryRun {
		title = "Dry run"
	}
	fmt.Fprintln(u.out, u.header.Render(fmt.Sprintf("%s %s", title, r.OutputRoot)))

	for _, e := range r.Entries {
		line := fmt.Sprintf("  %s %s", u.statusStyle(e.Status).Render(e.Status.Icon()), e.Path)
		if e.Reason != "" {
			line += u.muted.Render(" (" + e.Reason + ")")
		} else if e.Binary {
			line += u.muted.Render(" (binary)")
		}
		fmt.Fprintln(u.out, line)
	}

	summary := fmt.Sprintf("%d created, %d updated, %d skipped",
		r.Count(types.FileStatusCreated), r.Count(types.FileStatusUpdated), r.Count(types.FileStatusSkipped))
	if r.DryRun {
		u.Info(summary + ", nothing written")
		return
	}
	u.Success(summary)
}

func (u *UI) statusStyle(s types.FileStatus) lipgloss.Style {
	switch s {
	case types.FileStatusCreated:
		return u.success
	case types.FileStatusUpdated:
		return u.warning
	default:
		return u.muted
	}
}

// Tree prints the selectable templates below the tree root.
func (u *UI) Tree(t *tree.Tree) {
	fmt.Fprintln(u.out, u.RenderTree(t))
}

// RenderTree renders the template hierarchy. Directories without their own
// configuration are templates and are not expanded.
func (u *UI) RenderTree(t *tree.Tree) string {
	root := lgtree.Root(u.header.Render(t.Root.Path)).
		EnumeratorStyle(u.muted)
	u.addChildren(root, t.Root)
	return root.String()
}

func (u *UI) addChildren(parent *lgtree.Tree, node *tree.Node) {
	if node.IsFinal() {
		return
	}
	for _, name := range node.ChildNames() {
		child := node.Children[name]
		if child.IsFinal() {
			parent.Child(name)
			continue
		}
		sub := lgtree.Root(name + u.muted.Render("/")).EnumeratorStyle(u.muted)
		u.addChildren(sub, child)
		parent.Child(sub)
	}
}

// Validation prints the outcome of each checked configuration file, with
// paths relative to root. It returns the number of invalid files.
func (u *UI) Validation(root string, results []types.ValidationResult) int {
	invalid := 0
	for _, r := range results {
		rel, err := filepath.Rel(root, r.Path)
		if err != nil {
			rel = r.Path
		}
		if r.Valid {
			u.Success(filepath.ToSlash(rel))
			continue
		}
		invalid++
		u.Error(fmt.Sprintf("%s: %v", filepath.ToSlash(rel), r.Err))
	}

	if invalid == 0 {
		u.Successf("%d configuration files are valid", len(results))
	} else {
		fmt.Fprintln(u.out, u.failure.Render(fmt.Sprintf("%d of %d configuration files are invalid", invalid, len(results))))
	}
	return invalid
}
