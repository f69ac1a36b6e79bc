package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/skillhawk/skillhawk/internal/analyze"
	"github.com/skillhawk/skillhawk/internal/severity"
)

// renderGitHub emits workflow annotations and, when GITHUB_STEP_SUMMARY is
// set, appends a markdown summary table to it.
func renderGitHub(w io.Writer, batch analyze.BatchReport) error {
	for _, r := range batch.Reports {
		for _, e := range r.Compliance.Errors {
			annotate(w, "error", r.Path, 0, r.Skill.Name+": "+e)
		}
		for _, warn := range r.Compliance.Warnings {
			annotate(w, "warning", r.Path, 0, r.Skill.Name+": "+warn)
		}
		for _, f := range r.Security.Findings {
			level := "warning"
			if f.Severity == severity.Critical || f.Severity == severity.High {
				level = "error"
			}
			annotate(w, level, r.Path, f.LineNumber,
				fmt.Sprintf("%s: %s [%s]", r.Skill.Name, f.Description, f.Category))
		}
		if !r.Score.Passed {
			annotate(w, "error", r.Path, 0,
				fmt.Sprintf("%s failed validation: %s", r.Skill.Name, r.Score.Summary))
		}
	}

	if path := os.Getenv("GITHUB_STEP_SUMMARY"); path != "" {
		if err := appendStepSummary(path, batch); err != nil {
			return err
		}
	}
	return nil
}

// annotate writes one workflow command. Newlines would terminate the
// command early, so the message is flattened.
func annotate(w io.Writer, level, file string, line int, msg string) {
	msg = strings.ReplaceAll(msg, "\n", " ")
	switch {
	case file != "" && line > 0:
		fmt.Fprintf(w, "::%s file=%s,line=%d::%s\n", level, file, line, msg)
	case file != "":
		fmt.Fprintf(w, "::%s file=%s::%s\n", level, file, msg)
	default:
		fmt.Fprintf(w, "::%s::%s\n", level, msg)
	}
}

func appendStepSummary(path string, batch analyze.BatchReport) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString("## Skill validation\n\n")
	b.WriteString("| Skill | Score | Result | Findings |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, r := range batch.Reports {
		result := "❌ fail"
		if r.Score.Passed {
			result = "✅ pass"
		}
		fmt.Fprintf(&b, "| %s | %d/100 | %s | %d |\n",
			r.Skill.Name, r.Score.GlobalScore, result, len(r.Security.Findings))
	}
	if len(batch.Groups) > 0 {
		b.WriteString("\n### Duplicate groups\n\n")
		for _, g := range batch.Groups {
			names := make([]string, 0, len(g.Duplicates))
			for _, d := range g.Duplicates {
				names = append(names, d.Name)
			}
			fmt.Fprintf(&b, "- keep `%s`, duplicates: %s\n", g.Canonical, strings.Join(names, ", "))
		}
	}
	_, err = f.WriteString(b.String())
	return err
}
