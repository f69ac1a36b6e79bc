package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skillhawk/skillhawk/internal/analyze"
	"github.com/skillhawk/skillhawk/internal/model"
	"github.com/skillhawk/skillhawk/internal/severity"
)

func sampleBatch() analyze.BatchReport {
	return analyze.BatchReport{
		ID: "batch-1",
		Reports: []analyze.Report{{
			ID:    "report-1",
			Path:  "skills/csv-report-builder/SKILL.md",
			Skill: model.Skill{Name: "csv-report-builder"},
			Compliance: model.ComplianceResult{
				Warnings: []string{"description is very short"},
			},
			Security: model.SecurityScanResult{
				MaxSeverity: severity.Critical,
				Findings: []model.SecurityFinding{{
					Category:    "CODE_INJECTION",
					Severity:    severity.Critical,
					Description: "Shell or interpreter command injection embedded in instructions",
					Location:    "Line 3",
					LineNumber:  3,
				}},
			},
			Score: model.ScoreResult{
				GlobalScore: 42,
				Passed:      false,
				Summary:     "FAIL 42/100",
				KPIs: []model.KPIScore{
					{Name: "security", Score: 50, Weight: 25, Passed: false, Issues: []string{"critical finding"}},
				},
			},
		}},
		Groups: []model.DuplicateGroup{{
			Canonical:  "csv-report-builder",
			Duplicates: []model.GroupedDuplicate{{Name: "csv-report-maker", Similarity: 0.9}},
		}},
	}
}

func TestRenderCLI(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatCLI, sampleBatch()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"csv-report-builder",
		"score 42/100",
		"security",
		"critical finding",
		"duplicate group",
		"0/1 skills passed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("cli output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatJSON, sampleBatch()); err != nil {
		t.Fatal(err)
	}

	var decoded analyze.BatchReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.ID != "batch-1" || len(decoded.Reports) != 1 {
		t.Fatalf("decoded batch = %+v", decoded)
	}
	if decoded.Reports[0].Score.GlobalScore != 42 {
		t.Fatalf("score lost in encoding: %+v", decoded.Reports[0].Score)
	}
}

func TestRenderGitHubAnnotations(t *testing.T) {
	summary := filepath.Join(t.TempDir(), "summary.md")
	t.Setenv("GITHUB_STEP_SUMMARY", summary)

	var buf bytes.Buffer
	if err := Render(&buf, FormatGitHub, sampleBatch()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "::error file=skills/csv-report-builder/SKILL.md,line=3::") {
		t.Errorf("missing finding annotation:\n%s", out)
	}
	if !strings.Contains(out, "::warning file=skills/csv-report-builder/SKILL.md::") {
		t.Errorf("missing warning annotation:\n%s", out)
	}
	if !strings.Contains(out, "failed validation") {
		t.Errorf("missing failure annotation:\n%s", out)
	}

	data, err := os.ReadFile(summary)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "csv-report-builder | 42/100") {
		t.Errorf("step summary content:\n%s", data)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if err := Render(&bytes.Buffer{}, "yaml", sampleBatch()); err == nil {
		t.Fatal("expected an unknown-format error")
	}
}

func TestRenderDefaultsToCLI(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "", sampleBatch()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty output")
	}
}
