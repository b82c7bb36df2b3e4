// Package prompt asks the questions declared by template configuration.
package prompt

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	errUtils "github.com/taisan11/pj-creater/errors"
	"github.com/taisan11/pj-creater/pkg/generator/config"
	"github.com/taisan11/pj-creater/pkg/generator/render"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

// Choice is one option of a select question.
type Choice struct {
	Label string
	Value string
	Hint  string
}

// Prompter asks the user one question at a time. Cancellation is reported as
// errUtils.ErrUserAborted.
type Prompter interface {
	Select(message string, choices []Choice) (string, error)
	Input(message, initial string) (string, error)
	Confirm(message string, initial bool) (bool, error)
}

// Collect asks every prompt in order. A preset answer skips its question.
func Collect(prompts []config.Prompt, p Prompter, preset map[string]string) (render.Values, error) {
	values := make(render.Values, len(prompts))

	for _, pr := range prompts {
		value, err := ask(pr, p, preset)
		if err != nil {
			return nil, err
		}
		values[pr.Name] = value
	}

	return values, nil
}

func ask(pr config.Prompt, p Prompter, preset map[string]string) (any, error) {
	raw, hasPreset := preset[pr.Name]
	if hasPreset {
		log.Debug("Using preset prompt value", "name", pr.Name)
	}

	switch pr.Type {
	case config.PromptConfirm:
		if hasPreset {
			return parseBool(pr.Name, raw)
		}
		return p.Confirm(pr.Message, parseInitialBool(pr.Initial))

	case config.PromptSelect:
		if len(pr.Options) == 0 {
			return nil, errUtils.Build(errUtils.ErrNoOptionsAvailable).
				WithExplanationf("Select prompt `%s` declares no options", pr.Name).
				WithHint("Add `options` to the prompt or change its `type`").
				WithContext("prompt", pr.Name).
				Err()
		}
		choices := lo.Map(pr.Options, func(o config.PromptOption, _ int) Choice {
			return Choice{Label: o.Label, Value: o.Value, Hint: o.Hint}
		})
		if hasPreset {
			if !lo.ContainsBy(choices, func(c Choice) bool { return c.Value == raw }) {
				return nil, errUtils.Build(errUtils.ErrInvalidPromptValue).
					WithExplanationf("`%s` is not an option of `%s`", raw, pr.Name).
					WithHintf("Valid values: %s", strings.Join(lo.Map(choices, func(c Choice, _ int) string { return c.Value }), ", ")).
					WithContext("prompt", pr.Name).
					Err()
			}
			return raw, nil
		}
		return p.Select(pr.Message, choices)

	default:
		if hasPreset {
			return raw, nil
		}
		return p.Input(pr.Message, pr.Initial)
	}
}

func parseBool(name, raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, errUtils.Build(errUtils.ErrInvalidPromptValue).
			WithCause(err).
			WithExplanationf("`%s` expects a boolean, got `%s`", name, raw).
			WithHint("Use true/false or yes/no").
			WithContext("prompt", name).
			Err()
	}
	return b, nil
}

func parseInitialBool(initial string) bool {
	b, err := parseBool("", initial)
	return err == nil && b
}

// ParseAssignments parses repeated `key=value` arguments.
func ParseAssignments(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errUtils.Build(errUtils.ErrInvalidPromptValue).
				WithExplanationf("Invalid value `%s`", pair).
				WithHint("Use `--set key=value`").
				Err()
		}
		result[key] = value
	}
	return result, nil
}
