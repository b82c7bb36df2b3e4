package prompt

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	errUtils "github.com/taisan11/pj-creater/errors"
)

// HuhPrompter asks questions in the terminal.
type HuhPrompter struct {
	// Accessible replaces the interactive widgets with numbered, line-based
	// questions that also work without a TTY.
	Accessible bool
}

// NewHuhPrompter returns a terminal prompter.
func NewHuhPrompter(accessible bool) *HuhPrompter {
	return &HuhPrompter{Accessible: accessible}
}

// Select asks for one of choices and returns its value.
func (h *HuhPrompter) Select(message string, choices []Choice) (string, error) {
	var value string
	options := make([]huh.Option[string], 0, len(choices))
	for _, c := range choices {
		label := c.Label
		if c.Hint != "" {
			label += " (" + c.Hint + ")"
		}
		options = append(options, huh.NewOption(label, c.Value))
	}

	err := h.run(huh.NewSelect[string]().
		Title(message).
		Options(options...).
		Value(&value))
	return value, err
}

// Input asks for free text, pre-filled with initial.
func (h *HuhPrompter) Input(message, initial string) (string, error) {
	value := initial
	err := h.run(huh.NewInput().
		Title(message).
		Placeholder(initial).
		Value(&value))
	return value, err
}

// Confirm asks a yes/no question.
func (h *HuhPrompter) Confirm(message string, initial bool) (bool, error) {
	value := initial
	err := h.run(huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&value))
	return value, err
}

func (h *HuhPrompter) run(field huh.Field) error {
	if !h.Accessible && !term.IsTerminal(int(os.Stdin.Fd())) {
		return errUtils.Build(errUtils.ErrInteractiveModeNotAvailable).
			WithExplanation("Standard input is not a terminal").
			WithHint("Answer prompts with `--set key=value`").
			WithHint("Pick the template with `--select a/b`").
			Err()
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("ctrl+c/esc", "quit"),
	)

	form := huh.NewForm(huh.NewGroup(field)).
		WithKeyMap(keyMap).
		WithTheme(huh.ThemeCharm()).
		WithAccessible(h.Accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errUtils.ErrUserAborted
		}
		return errUtils.Build(errUtils.ErrPromptFailed).WithCause(err).Err()
	}
	return nil
}
