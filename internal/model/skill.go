// Package model holds the shared data types exchanged between the parser,
// scanner, evaluators, and scoring calculator.
package model

// Skill is one parsed agent-skill document: the SKILL.md body plus its
// frontmatter and origin metadata.
type Skill struct {
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Content       string      `json:"content"`
	Frontmatter   Frontmatter `json:"frontmatter"`
	DirectoryName string      `json:"directory_name,omitempty"`
	Source        Source      `json:"source"`
}

// Frontmatter is the YAML header of a SKILL.md document. All fields are
// optional; consumers must treat absent values as their zero defaults.
type Frontmatter struct {
	Name          string            `yaml:"name,omitempty" json:"name,omitempty"`
	Description   string            `yaml:"description,omitempty" json:"description,omitempty"`
	Compatibility string            `yaml:"compatibility,omitempty" json:"compatibility,omitempty"`
	Metadata      map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Requires      []Requirement     `yaml:"requires,omitempty" json:"requires,omitempty"`
	Test          *TestSpec         `yaml:"test,omitempty" json:"test,omitempty"`

	// Unknown collects frontmatter keys outside the published schema so the
	// compliance evaluator can warn about them.
	Unknown []string `yaml:"-" json:"-"`
}

// Requirement declares a dependency on another skill.
type Requirement struct {
	Skill   string `yaml:"skill" json:"skill"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
}

// TestSpec declares the skill's test cases and runner configuration.
type TestSpec struct {
	Cases  string      `yaml:"cases,omitempty" json:"cases,omitempty"`
	Config *TestConfig `yaml:"config,omitempty" json:"config,omitempty"`
}

// TestConfig tunes test execution.
type TestConfig struct {
	Timeout  int  `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Parallel bool `yaml:"parallel,omitempty" json:"parallel,omitempty"`
}

// Source records where a skill came from. Priority orders sources when a
// duplicate group must pick its canonical member; lower wins.
type Source struct {
	Repo     string `json:"repo,omitempty"`
	Provider string `json:"provider,omitempty"`
	Priority int    `json:"priority"`
}
