// Package validate evaluates skills against the publishing contract:
// frontmatter compliance, content quality metrics, and the declared test
// setup. Evaluators report problems as values, never as errors, so the
// scoring calculator always receives a full picture.
package validate

import (
	"fmt"
	"regexp"

	"github.com/skillhawk/skillhawk/internal/model"
)

// Naming rules for published skills.
const (
	MaxNameLength        = 64
	MinDescriptionLength = 20
)

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidName reports whether a skill name satisfies the naming rules:
// 1 to 64 characters, lowercase alphanumeric, single inner hyphens.
func ValidName(name string) bool {
	return len(name) >= 1 && len(name) <= MaxNameLength && namePattern.MatchString(name)
}

// Compliance checks a skill's frontmatter against the contract. Missing
// required fields and naming violations are errors; softer problems are
// warnings.
func Compliance(skill model.Skill) model.ComplianceResult {
	var res model.ComplianceResult

	switch {
	case skill.Frontmatter.Name == "":
		res.Errors = append(res.Errors, "frontmatter is missing required field: name")
	case !ValidName(skill.Frontmatter.Name):
		res.Errors = append(res.Errors, fmt.Sprintf(
			"invalid name %q: 1-%d chars, lowercase alphanumeric with single inner hyphens",
			skill.Frontmatter.Name, MaxNameLength))
	}

	if skill.Frontmatter.Description == "" {
		res.Errors = append(res.Errors, "frontmatter is missing required field: description")
	} else if len(skill.Frontmatter.Description) < MinDescriptionLength {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"description is very short (%d chars); say what the skill does and when to use it",
			len(skill.Frontmatter.Description)))
	}

	if skill.Frontmatter.Name != "" && skill.DirectoryName != "" && skill.Frontmatter.Name != skill.DirectoryName {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"name %q does not match directory %q", skill.Frontmatter.Name, skill.DirectoryName))
	}

	for _, key := range skill.Frontmatter.Unknown {
		res.Warnings = append(res.Warnings, "unknown frontmatter key: "+key)
	}

	for i, req := range skill.Frontmatter.Requires {
		if req.Skill == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("requires[%d] is missing a skill name", i))
		} else if !ValidName(req.Skill) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("requires[%d]: %q is not a valid skill name", i, req.Skill))
		}
	}

	return res
}
