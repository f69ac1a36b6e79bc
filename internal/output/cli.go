package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/skillhawk/skillhawk/internal/analyze"
	"github.com/skillhawk/skillhawk/internal/severity"
)

var (
	passBadge = color.New(color.FgGreen, color.Bold).Sprint("PASS")
	failBadge = color.New(color.FgRed, color.Bold).Sprint("FAIL")

	critColor = color.New(color.FgRed, color.Bold).SprintFunc()
	highColor = color.New(color.FgRed).SprintFunc()
	medColor  = color.New(color.FgYellow).SprintFunc()
	dimColor  = color.New(color.Faint).SprintFunc()
)

func renderCLI(w io.Writer, batch analyze.BatchReport) error {
	for i, r := range batch.Reports {
		if i > 0 {
			fmt.Fprintln(w)
		}

		badge := failBadge
		if r.Score.Passed {
			badge = passBadge
		}
		fmt.Fprintf(w, "%s %s  score %d/100\n", badge, r.Skill.Name, r.Score.GlobalScore)
		if r.Path != "" {
			fmt.Fprintf(w, "  %s\n", dimColor(r.Path))
		}

		for _, k := range r.Score.KPIs {
			mark := "ok"
			if !k.Passed {
				mark = "!!"
			}
			fmt.Fprintf(w, "  [%s] %-16s %3d/100 (weight %d)\n", mark, k.Name, k.Score, k.Weight)
			for _, issue := range k.Issues {
				fmt.Fprintf(w, "       - %s\n", issue)
			}
			for _, detail := range k.Details {
				fmt.Fprintf(w, "       - %s\n", dimColor(detail))
			}
		}

		for _, f := range r.Security.Findings {
			fmt.Fprintf(w, "  %s %s: %s (%s)\n",
				severityBadge(f.Severity), f.Category, f.Description, f.Location)
		}
	}

	for _, g := range batch.Groups {
		fmt.Fprintf(w, "\nduplicate group: keep %q\n", g.Canonical)
		for _, d := range g.Duplicates {
			fmt.Fprintf(w, "  duplicates %q (%.0f%% similar)\n", d.Name, d.Similarity*100)
		}
	}

	passed := 0
	for _, r := range batch.Reports {
		if r.Score.Passed {
			passed++
		}
	}
	fmt.Fprintf(w, "\n%d/%d skills passed\n", passed, len(batch.Reports))
	return nil
}

func severityBadge(level severity.Level) string {
	s := string(level)
	switch level {
	case severity.Critical:
		return critColor(s)
	case severity.High:
		return highColor(s)
	case severity.Medium:
		return medColor(s)
	default:
		return dimColor(s)
	}
}
