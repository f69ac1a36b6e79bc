package similar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhawk/skillhawk/internal/model"
)

func TestCheckRegistryExactNameWins(t *testing.T) {
	skill := model.Skill{Name: "csv-report-builder", Description: "Builds CSV reports."}
	matches := CheckRegistry(skill, []Candidate{
		{Name: "CSV-Report-Builder", Source: "marketplace"},
		{Name: "totally-unrelated", Description: "Cooks dinner."},
	})

	require.Len(t, matches, 1)
	assert.Equal(t, model.MatchExactName, matches[0].MatchType)
	assert.Equal(t, 1.0, matches[0].Similarity)
	assert.Equal(t, "marketplace", matches[0].Source)
}

func TestCheckRegistryContentHash(t *testing.T) {
	content := "# Report builder\n\nDoes the thing.\n"
	skill := model.Skill{Name: "my-builder", Content: content}
	matches := CheckRegistry(skill, []Candidate{
		{Name: "their-builder", ContentHash: ContentHash(content)},
	})

	require.Len(t, matches, 1)
	assert.Equal(t, model.MatchContentHash, matches[0].MatchType)
	assert.Equal(t, 1.0, matches[0].Similarity)
}

func TestCheckRegistrySimilarNameBeforeDescription(t *testing.T) {
	skill := model.Skill{
		Name:        "csv-report-builder",
		Description: "Generates tabular reports from comma separated files.",
	}
	matches := CheckRegistry(skill, []Candidate{
		{Name: "csv-report-builder-pro", Description: "unrelated"},
		{Name: "spreadsheet-helper", Description: "Generates tabular reports from comma separated files."},
	})

	require.Len(t, matches, 2)
	types := []model.MatchType{matches[0].MatchType, matches[1].MatchType}
	assert.Contains(t, types, model.MatchSimilarName)
	assert.Contains(t, types, model.MatchSimilarDesc)
	for _, m := range matches {
		assert.Greater(t, m.Similarity, 0.0)
		assert.LessOrEqual(t, m.Similarity, 1.0)
	}
}

func TestCheckRegistryDissimilarEntriesDropped(t *testing.T) {
	skill := model.Skill{Name: "csv-report-builder", Description: "Builds CSV reports."}
	matches := CheckRegistry(skill, []Candidate{
		{Name: "weather-fetcher", Description: "Fetches tomorrow's forecast."},
	})
	assert.Empty(t, matches)
}

func TestCheckRegistryTopFiveSortedDescending(t *testing.T) {
	skill := model.Skill{Name: "csv-report-builder"}
	candidates := []Candidate{{Name: "csv-report-builder"}}
	for i := 0; i < 6; i++ {
		candidates = append(candidates, Candidate{Name: fmt.Sprintf("csv-report-builder-fork%d", i)})
	}

	matches := CheckRegistry(skill, candidates)
	require.Len(t, matches, MaxRegistryMatches)
	assert.Equal(t, model.MatchExactName, matches[0].MatchType)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Similarity, matches[i].Similarity)
	}
}
