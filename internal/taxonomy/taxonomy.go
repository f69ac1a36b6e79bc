// Package taxonomy holds the static threat category catalog. The catalog is
// loaded once from the embedded YAML data file and never mutated; adding a
// category or pattern is a data change only.
package taxonomy

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/skillhawk/skillhawk/internal/severity"
)

// Category IDs. SecretsCategory has no taxonomy patterns; the secret
// detector family owns it.
const (
	PromptInjection  = "PROMPT_INJECTION"
	CodeInjection    = "CODE_INJECTION"
	DataExfiltration = "DATA_EXFILTRATION"
	ToolAbuse        = "TOOL_ABUSE"
	Obfuscation      = "OBFUSCATION"
	SocialEngineer   = "SOCIAL_ENGINEERING"
	TransitiveTrust  = "TRANSITIVE_TRUST"
	AutonomyAbuse    = "AUTONOMY_ABUSE"
	ToolChaining     = "TOOL_CHAINING"
	ResourceAbuse    = "RESOURCE_ABUSE"
	SecretsCategory  = "HARDCODED_SECRETS"
)

//go:embed categories.yaml
var catalogData []byte

type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// Category is one named threat class with a default severity and an ordered
// set of detection patterns.
type Category struct {
	ID          string         `yaml:"id"`
	Severity    severity.Level `yaml:"severity"`
	Description string         `yaml:"description"`
	Techniques  []string       `yaml:"techniques"`
	Patterns    []Pattern      `yaml:"patterns"`
}

// Pattern is a single case-insensitive detection regex, optionally
// overriding the category's default severity.
type Pattern struct {
	Regex    string         `yaml:"regex"`
	Severity severity.Level `yaml:"severity,omitempty"`

	re *regexp.Regexp
}

// Match reports whether the pattern matches the line and returns the
// matched text.
func (p Pattern) Match(line string) (string, bool) {
	loc := p.re.FindString(line)
	if loc == "" {
		return "", false
	}
	return loc, true
}

var (
	loadOnce sync.Once
	catalog  []Category
	loadErr  error
)

// Categories returns the full threat catalog. The returned slice is shared;
// callers must not modify it.
func Categories() []Category {
	loadOnce.Do(load)
	if loadErr != nil {
		// The catalog is fixed at build time; a compile failure here is a
		// packaging bug, not a runtime condition.
		panic(loadErr)
	}
	return catalog
}

// ByID returns the category with the given id, or nil if unknown.
func ByID(id string) *Category {
	cats := Categories()
	for i := range cats {
		if cats[i].ID == id {
			return &cats[i]
		}
	}
	return nil
}

// EffectiveSeverity returns the pattern's severity override, or the
// category default when the pattern has none.
func EffectiveSeverity(c Category, p Pattern) severity.Level {
	if p.Severity != "" {
		return p.Severity
	}
	return c.Severity
}

func load() {
	var f catalogFile
	if err := yaml.Unmarshal(catalogData, &f); err != nil {
		loadErr = fmt.Errorf("parse taxonomy catalog: %w", err)
		return
	}
	for ci := range f.Categories {
		c := &f.Categories[ci]
		if c.ID == "" {
			loadErr = fmt.Errorf("taxonomy category missing id")
			return
		}
		if _, err := severity.Normalize(string(c.Severity)); err != nil {
			loadErr = fmt.Errorf("category %s: %w", c.ID, err)
			return
		}
		for pi := range c.Patterns {
			p := &c.Patterns[pi]
			re, err := regexp.Compile("(?i)" + p.Regex)
			if err != nil {
				loadErr = fmt.Errorf("category %s pattern %d: %w", c.ID, pi, err)
				return
			}
			p.re = re
			if p.Severity != "" {
				if _, err := severity.Normalize(string(p.Severity)); err != nil {
					loadErr = fmt.Errorf("category %s pattern %d: %w", c.ID, pi, err)
					return
				}
			}
		}
	}
	catalog = f.Categories
}
