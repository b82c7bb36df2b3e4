// Package selector walks the template tree down to the template to generate.
package selector

import (
	"errors"
	"fmt"
	"strings"

	errUtils "github.com/taisan11/pj-creater/errors"
	"github.com/taisan11/pj-creater/pkg/generator/prompt"
	"github.com/taisan11/pj-creater/pkg/generator/tree"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

// Selection is either a selected node or a cancelled walk.
type Selection struct {
	Node *tree.Node
	// Path holds the child names chosen from the root down to Node.
	Path      []string
	Cancelled bool
}

// Display returns the selection as an absolute-looking path, `/` for the root.
func (s Selection) Display() string {
	return "/" + strings.Join(s.Path, "/")
}

// Select asks for one child at every directory that has its own
// configuration and children, starting at the root.
func Select(t *tree.Tree, p prompt.Prompter) (Selection, error) {
	return Continue(Selection{Node: t.Root}, p)
}

// Continue resumes the walk from a partial selection.
func Continue(from Selection, p prompt.Prompter) (Selection, error) {
	current := from
	for !current.Node.IsFinal() {
		names := current.Node.ChildNames()
		choices := make([]prompt.Choice, 0, len(names))
		for _, name := range names {
			choices = append(choices, prompt.Choice{Label: name, Value: name})
		}

		answer, err := p.Select(fmt.Sprintf("%q の次を選択してください", current.Display()), choices)
		if errors.Is(err, errUtils.ErrUserAborted) {
			log.Debug("Template selection cancelled", "at", current.Display())
			return Selection{Path: current.Path, Cancelled: true}, nil
		}
		if err != nil {
			return Selection{}, err
		}

		child, ok := current.Node.Children[answer]
		if !ok {
			return Selection{}, unknownChild(current, answer)
		}
		current = descend(current, child)
	}

	log.Debug("Selected template", "path", current.Display(), "dir", current.Node.Path)
	return current, nil
}

// SelectPath walks the given child names without asking. The result may
// still need Continue when it stops above a final directory.
func SelectPath(t *tree.Tree, segments []string) (Selection, error) {
	current := Selection{Node: t.Root}
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		if current.Node.IsFinal() {
			return Selection{}, errUtils.Build(errUtils.ErrUnknownTemplatePath).
				WithExplanationf("`%s` is a template and has no selectable children", current.Display()).
				WithHintf("Select `%s` instead", current.Display()).
				WithContext("segment", segment).
				Err()
		}
		child, ok := current.Node.Children[segment]
		if !ok {
			return Selection{}, unknownChild(current, segment)
		}
		current = descend(current, child)
	}
	return current, nil
}

// SplitPath splits a `--select` value like `web/react` into child names.
func SplitPath(s string) []string {
	var segments []string
	for _, segment := range strings.Split(strings.Trim(s, "/"), "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func descend(s Selection, child *tree.Node) Selection {
	path := make([]string, len(s.Path), len(s.Path)+1)
	copy(path, s.Path)
	return Selection{Node: child, Path: append(path, child.Name)}
}

func unknownChild(s Selection, name string) error {
	return errUtils.Build(errUtils.ErrUnknownTemplatePath).
		WithExplanationf("`%s` has no template named `%s`", s.Display(), name).
		WithHintf("Available: %s", strings.Join(s.Node.ChildNames(), ", ")).
		WithContext("path", s.Display()).
		WithContext("segment", name).
		Err()
}
