// Package scaffold generates a starter SKILL.md for a new skill.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const skillTemplate = `---
name: %s
description: %s
metadata:
  license: MIT
---

# %s

Describe what this skill does and when an agent should reach for it.

## Usage

1. Explain the first step.
2. Explain the next step.

## Example

` + "```" + `
show a worked example here
` + "```" + `
`

// Slugify converts free-form input into a valid skill name: lowercase
// alphanumeric runs joined by single hyphens, truncated to 64 characters.
// Input with no usable characters yields "new-skill".
func Slugify(input string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(input) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	slug := b.String()
	if len(slug) > 64 {
		slug = strings.TrimRight(slug[:64], "-")
	}
	if slug == "" {
		return "new-skill"
	}
	return slug
}

// Render produces the SKILL.md content for a slug.
func Render(slug, description string) string {
	if description == "" {
		description = "Describe what " + slug + " does in one or two sentences."
	}
	return fmt.Sprintf(skillTemplate, slug, description, titleCase(slug))
}

func titleCase(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Create writes <dir>/<slug>/SKILL.md and returns the file path. It refuses
// to overwrite an existing skill.
func Create(dir, name, description string) (string, error) {
	slug := Slugify(name)
	skillDir := filepath.Join(dir, slug)
	path := filepath.Join(skillDir, "SKILL.md")

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(Render(slug, description)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
