package config

import (
	"encoding/json"
	"fmt"

	"github.com/taisan11/pj-creater/pkg/generator/glob"
)

// PromptKind is the kind of an interactive question.
type PromptKind string

const (
	PromptText    PromptKind = "text"
	PromptSelect  PromptKind = "select"
	PromptConfirm PromptKind = "confirm"
)

// TemplateConfig is one parsed and validated configuration file.
type TemplateConfig struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Prompts     []Prompt   `json:"prompts,omitempty"`
	Files       *FileRules `json:"files,omitempty"`
}

// Prompt declares one question. Its Name is both the override key across
// configuration files and the substitution variable.
type Prompt struct {
	Name    string         `json:"name"`
	Type    PromptKind     `json:"type"`
	Message string         `json:"message"`
	Initial string         `json:"initial,omitempty"`
	Options []PromptOption `json:"options,omitempty"`
}

// PromptOption is one choice of a select prompt.
type PromptOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Hint  string `json:"hint,omitempty"`
}

// UnmarshalJSON accepts either a bare string (label and value are the same)
// or a {label, value, hint} object.
func (o *PromptOption) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		*o = PromptOption{Label: bare, Value: bare}
		return nil
	}

	type plain PromptOption
	var opt plain
	if err := json.Unmarshal(data, &opt); err != nil {
		return fmt.Errorf("prompt option must be a string or an object: %w", err)
	}
	*o = PromptOption(opt)
	return nil
}

// FileRules selects the files of a template. A nil Include means everything.
type FileRules struct {
	Include  []string `json:"include,omitempty"`
	Exclude  []string `json:"exclude,omitempty"`
	CopyFrom []string `json:"copyFrom,omitempty"`
}

// Includes returns the include patterns, defaulting to everything.
func (r *FileRules) Includes() []string {
	if r == nil || r.Include == nil {
		return []string{glob.EverythingPattern}
	}
	return r.Include
}

// Excludes returns the exclude patterns.
func (r *FileRules) Excludes() []string {
	if r == nil {
		return nil
	}
	return r.Exclude
}

// CopyFromPaths returns the copy-from paths relative to the owning directory.
func (r *FileRules) CopyFromPaths() []string {
	if r == nil {
		return nil
	}
	return r.CopyFrom
}
