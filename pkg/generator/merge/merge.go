// Package merge folds a configuration cascade into one effective configuration.
package merge

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/taisan11/pj-creater/pkg/generator/cascade"
	"github.com/taisan11/pj-creater/pkg/generator/config"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

// Result is the effective configuration of a selection.
type Result struct {
	Prompts []config.Prompt
	// Files are the selected directory's own rules; nil means defaults.
	Files *config.FileRules
}

// Merge combines prompts across the cascade by name. A later prompt replaces
// an earlier one of the same name but keeps the position where the name was
// first seen. File rules are never inherited.
func Merge(c *cascade.Cascade) *Result {
	prompts := orderedmap.New[string, config.Prompt]()

	for _, entry := range c.Entries {
		for _, p := range entry.Config.Prompts {
			if _, replaced := prompts.Set(p.Name, p); replaced {
				log.Trace("Prompt overridden", "name", p.Name, "dir", entry.Dir)
			}
		}
	}

	result := &Result{Prompts: make([]config.Prompt, 0, prompts.Len())}
	for pair := prompts.Oldest(); pair != nil; pair = pair.Next() {
		result.Prompts = append(result.Prompts, pair.Value)
	}
	if c.Selected != nil {
		result.Files = c.Selected.Files
	}

	return result
}
