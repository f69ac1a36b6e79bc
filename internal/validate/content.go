package validate

import (
	"regexp"
	"strings"

	"github.com/skillhawk/skillhawk/internal/model"
)

// RecommendedMaxLines is the soft body-length budget; agent runtimes load
// the whole document into context.
const RecommendedMaxLines = 500

var (
	exampleMarker = regexp.MustCompile(`(?im)^#{1,6}\s.*example|^\x60\x60\x60`)
	stepMarker    = regexp.MustCompile(`(?im)^\s*\d+[.)]\s+\S|^#{1,6}\s.*\bsteps?\b`)
)

// Content measures the skill body: length, worked examples, and
// step-by-step structure.
func Content(skill model.Skill) model.ContentMetrics {
	body := skill.Content
	lines := 0
	if body != "" {
		lines = strings.Count(body, "\n") + 1
	}
	return model.ContentMetrics{
		WordCount:      len(strings.Fields(body)),
		LineCount:      lines,
		HasExamples:    exampleMarker.MatchString(body),
		HasSteps:       stepMarker.MatchString(body),
		OverLineBudget: lines > RecommendedMaxLines,
		RecommendedMax: RecommendedMaxLines,
	}
}
