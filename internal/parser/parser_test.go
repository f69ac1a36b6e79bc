package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const fullDoc = `---
name: csv-report-builder
description: Builds CSV reports from tabular data.
compatibility: ">=1.2"
metadata:
  author: data-team
  license: MIT
requires:
  - skill: table-loader
    version: "^2.0"
test:
  cases: tests/cases.yaml
  config:
    timeout: 30
    parallel: true
---

# CSV Report Builder

Feed it rows, get a report.
`

func TestParseFullDocument(t *testing.T) {
	skill, err := Parse([]byte(fullDoc))
	if err != nil {
		t.Fatal(err)
	}

	if skill.Name != "csv-report-builder" {
		t.Fatalf("name = %q", skill.Name)
	}
	if skill.Description != "Builds CSV reports from tabular data." {
		t.Fatalf("description = %q", skill.Description)
	}
	if skill.Frontmatter.Compatibility != ">=1.2" {
		t.Fatalf("compatibility = %q", skill.Frontmatter.Compatibility)
	}
	if got := skill.Frontmatter.Metadata["author"]; got != "data-team" {
		t.Fatalf("metadata author = %q", got)
	}
	if len(skill.Frontmatter.Requires) != 1 || skill.Frontmatter.Requires[0].Skill != "table-loader" {
		t.Fatalf("requires = %+v", skill.Frontmatter.Requires)
	}
	if skill.Frontmatter.Test == nil || skill.Frontmatter.Test.Cases != "tests/cases.yaml" {
		t.Fatalf("test spec = %+v", skill.Frontmatter.Test)
	}
	if !skill.Frontmatter.Test.Config.Parallel || skill.Frontmatter.Test.Config.Timeout != 30 {
		t.Fatalf("test config = %+v", skill.Frontmatter.Test.Config)
	}
	if skill.Content == "" || skill.Content[0] != '#' {
		t.Fatalf("body not preserved: %q", skill.Content)
	}
	if len(skill.Frontmatter.Unknown) != 0 {
		t.Fatalf("unexpected unknown keys: %v", skill.Frontmatter.Unknown)
	}
}

func TestParseNoFrontmatterIsBodyOnly(t *testing.T) {
	skill, err := Parse([]byte("# Just a body\n\nNothing else.\n"))
	if err != nil {
		t.Fatal(err)
	}
	if skill.Name != "" || skill.Description != "" {
		t.Fatalf("expected empty identity, got %q / %q", skill.Name, skill.Description)
	}
	if skill.Content != "# Just a body\n\nNothing else." {
		t.Fatalf("content = %q", skill.Content)
	}
}

func TestParseCRLFDocument(t *testing.T) {
	doc := "---\r\nname: crlf-tool\r\ndescription: Windows line endings throughout.\r\n---\r\n# Body\r\nhello\r\n"
	skill, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if skill.Name != "crlf-tool" {
		t.Fatalf("name = %q", skill.Name)
	}
	if skill.Description != "Windows line endings throughout." {
		t.Fatalf("description = %q", skill.Description)
	}
	if skill.Content != "# Body\r\nhello" {
		t.Fatalf("closing delimiter leaked into body: %q", skill.Content)
	}
}

func TestParseBodyStartingWithoutNewline(t *testing.T) {
	doc := "---\nname: x\n---\nbody"
	skill, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if skill.Content != "body" {
		t.Fatalf("content = %q", skill.Content)
	}
}

func TestParseUnterminatedFrontmatterIsBody(t *testing.T) {
	doc := "---\nname: oops\nno closing delimiter\n"
	skill, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if skill.Name != "" {
		t.Fatalf("unterminated frontmatter should not parse, name = %q", skill.Name)
	}
}

func TestParseCollectsUnknownKeys(t *testing.T) {
	doc := "---\nname: x\nauthor: someone\nzebra: stripes\n---\nbody\n"
	skill, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(skill.Frontmatter.Unknown, []string{"author", "zebra"}) {
		t.Fatalf("unknown keys = %v", skill.Frontmatter.Unknown)
	}
}

func TestParseMalformedYAMLIsAnError(t *testing.T) {
	doc := "---\nname: [unclosed\n---\nbody\n"
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("expected a frontmatter error")
	}
}

func TestParseFileUsesDirectoryName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "table-loader")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "SKILL.md")
	if err := os.WriteFile(path, []byte("# Loads tables\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	skill, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if skill.DirectoryName != "table-loader" {
		t.Fatalf("directoryName = %q", skill.DirectoryName)
	}
	if skill.Name != "table-loader" {
		t.Fatalf("name should fall back to the directory, got %q", skill.Name)
	}
}
