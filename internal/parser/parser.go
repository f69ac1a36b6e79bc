// Package parser reads SKILL.md files: optional YAML frontmatter between
// --- delimiters, then a markdown body.
package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skillhawk/skillhawk/internal/model"
)

// knownKeys are the frontmatter keys the contract defines. Anything else is
// recorded in Frontmatter.Unknown for the compliance evaluator to warn on.
var knownKeys = map[string]struct{}{
	"name":          {},
	"description":   {},
	"compatibility": {},
	"metadata":      {},
	"requires":      {},
	"test":          {},
}

// ParseFile reads and parses one SKILL.md. The enclosing directory's name
// becomes DirectoryName and the fallback skill name.
func ParseFile(path string) (model.Skill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Skill{}, fmt.Errorf("read skill: %w", err)
	}
	skill, err := Parse(data)
	if err != nil {
		return model.Skill{}, fmt.Errorf("parse %s: %w", path, err)
	}
	skill.DirectoryName = filepath.Base(filepath.Dir(path))
	if skill.Name == "" {
		skill.Name = skill.DirectoryName
	}
	return skill, nil
}

// Parse splits frontmatter from body and decodes the frontmatter. A file
// with no frontmatter is a valid skill with an empty Frontmatter; missing
// optional keys keep their zero values.
func Parse(content []byte) (model.Skill, error) {
	fm, body, hasFM := splitFrontmatter(content)

	skill := model.Skill{
		Content: strings.TrimSpace(string(body)),
	}
	if !hasFM {
		return skill, nil
	}

	if err := yaml.Unmarshal(fm, &skill.Frontmatter); err != nil {
		return model.Skill{}, fmt.Errorf("frontmatter: %w", err)
	}
	skill.Frontmatter.Unknown = unknownKeys(fm)
	skill.Name = skill.Frontmatter.Name
	skill.Description = skill.Frontmatter.Description
	return skill, nil
}

// splitFrontmatter returns (frontmatter, body, found). The opening ---
// must be the first non-blank line; an unterminated block is treated as
// body text rather than an error.
func splitFrontmatter(content []byte) ([]byte, []byte, bool) {
	trimmed := bytes.TrimLeft(content, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("---")) {
		return nil, content, false
	}
	nl := bytes.IndexByte(trimmed, '\n')
	if nl < 0 {
		return nil, content, false
	}
	rest := trimmed[nl+1:]

	// Walk raw bytes so CRLF line endings keep offsets exact.
	pos := 0
	for {
		end := bytes.IndexByte(rest[pos:], '\n')
		var line []byte
		next := len(rest)
		if end >= 0 {
			line = rest[pos : pos+end]
			next = pos + end + 1
		} else {
			line = rest[pos:]
		}
		if bytes.Equal(bytes.TrimSpace(line), []byte("---")) {
			return rest[:pos], rest[next:], true
		}
		if end < 0 {
			return nil, content, false
		}
		pos = next
	}
}

// unknownKeys lists top-level frontmatter keys outside the contract, sorted
// for stable warning output.
func unknownKeys(fm []byte) []string {
	var raw map[string]any
	if err := yaml.Unmarshal(fm, &raw); err != nil {
		return nil
	}
	var unknown []string
	for key := range raw {
		if _, ok := knownKeys[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}
