package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/skillhawk/skillhawk/internal/model"
)

// versionRange accepts the constraint shapes the contract allows: an exact
// version or a single ^, ~, >=, <=, >, < prefix.
var versionRange = regexp.MustCompile(`^(\^|~|>=|<=|>|<)?\d+(\.\d+){0,2}$`)

// testCase is one entry in a declared cases file.
type testCase struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input,omitempty"`
	Expect string `yaml:"expect,omitempty"`
}

// Testing evaluates the skill's declared test setup. skillDir resolves the
// relative cases path; an unreadable or malformed cases file counts as zero
// tests with a dependency-style issue attached.
func Testing(skill model.Skill, skillDir string) model.TestingResult {
	res := model.TestingResult{
		HasDependencies: len(skill.Frontmatter.Requires) > 0,
	}

	for i, req := range skill.Frontmatter.Requires {
		if req.Skill == "" {
			res.DependencyIssues = append(res.DependencyIssues, fmt.Sprintf("requires[%d] has no skill name", i))
			continue
		}
		if req.Version != "" && !versionRange.MatchString(req.Version) {
			res.DependencyIssues = append(res.DependencyIssues,
				fmt.Sprintf("requires[%d]: malformed version range %q", i, req.Version))
		}
	}

	spec := skill.Frontmatter.Test
	if spec == nil || spec.Cases == "" {
		return res
	}

	cases, err := loadCases(filepath.Join(skillDir, spec.Cases))
	if err != nil {
		res.DependencyIssues = append(res.DependencyIssues, fmt.Sprintf("test cases: %v", err))
		return res
	}
	res.TestCases = len(cases)
	return res
}

func loadCases(path string) ([]testCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cases []testCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cases, nil
}
