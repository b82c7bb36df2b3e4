// Package config loads and validates per-directory template configuration files.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/jsonc"

	errUtils "github.com/taisan11/pj-creater/errors"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

// FileName is the configuration file looked up in every template directory.
const FileName = "pj-creater.json"

const schemaURL = "pj-creater.schema.json"

//go:embed schema.json
var schemaJSON []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// PathIn returns the configuration file path inside dir.
func PathIn(dir string) string {
	return filepath.Join(dir, FileName)
}

// Exists reports whether dir directly contains a configuration file.
func Exists(dir string) bool {
	info, err := os.Stat(PathIn(dir))
	return err == nil && info.Mode().IsRegular()
}

// LoadDir loads the configuration file inside dir.
func LoadDir(dir string) (*TemplateConfig, error) {
	return Load(PathIn(dir))
}

// Load reads, validates and decodes the configuration file at path.
// Comments and trailing commas are accepted.
func Load(path string) (*TemplateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrReadTemplateFile).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrConfigValidation).
			WithCause(err).
			WithExplanationf("Invalid template configuration: `%s`", path).
			WithHint("Prompt types are `text`, `select` and `confirm`").
			WithHint("`files.include`, `files.exclude` and `files.copyFrom` are lists of strings").
			WithContext("path", path).
			Err()
	}

	log.Trace("Loaded template configuration", "path", path, "prompts", len(cfg.Prompts))
	return cfg, nil
}

// Parse validates data against the configuration schema and decodes it.
func Parse(data []byte) (*TemplateConfig, error) {
	stripped := jsonc.ToJSON(data)

	var doc interface{}
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, errors.Join(errUtils.ErrConfigParse, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, err
	}

	var cfg TemplateConfig
	if err := json.Unmarshal(stripped, &cfg); err != nil {
		return nil, errors.Join(errUtils.ErrConfigParse, err)
	}

	if err := checkPromptNames(cfg.Prompts); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// checkPromptNames enforces unique prompt names within one file.
func checkPromptNames(prompts []Prompt) error {
	seen := make(map[string]struct{}, len(prompts))
	for _, prompt := range prompts {
		if _, ok := seen[prompt.Name]; ok {
			return errUtils.Build(errUtils.ErrConfigValidation).
				WithExplanationf("Prompt `%s` is declared more than once", prompt.Name).
				WithContext("prompt", prompt.Name).
				Err()
		}
		seen[prompt.Name] = struct{}{}
	}
	return nil
}
