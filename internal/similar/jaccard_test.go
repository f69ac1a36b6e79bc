package similar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokensExtractsAlphabeticRuns(t *testing.T) {
	got := Tokens("CSV-Report Builder v2, builds CSV!")
	want := map[string]struct{}{
		"csv": {}, "report": {}, "builder": {}, "builds": {},
	}
	assert.Equal(t, want, got, "short runs and digits are dropped, repeats collapse")
}

func TestKeywordsDropsStopwordsAndShortTokens(t *testing.T) {
	got := Keywords("use the csv builder for reports")
	assert.Contains(t, got, "builder")
	assert.Contains(t, got, "reports")
	assert.NotContains(t, got, "the")
	assert.NotContains(t, got, "use")
	assert.NotContains(t, got, "csv", "below keyword length")
}

func TestJaccardProperties(t *testing.T) {
	a := Tokens("alpha beta gamma")
	b := Tokens("beta gamma delta")

	assert.Equal(t, Jaccard(a, b), Jaccard(b, a), "symmetric")
	assert.InDelta(t, 0.5, Jaccard(a, b), 1e-9)
	assert.Equal(t, 1.0, Jaccard(a, a), "identical nonempty sets")
	assert.Equal(t, 0.0, Jaccard(a, Tokens("")), "empty set")
	assert.Equal(t, 0.0, Jaccard(Tokens(""), Tokens("")), "empty union")
}

func TestJaccardBounded(t *testing.T) {
	pairs := [][2]string{
		{"one two three", "four five six"},
		{"shared words here", "shared words there"},
		{"", "nonempty text body"},
	}
	for _, p := range pairs {
		sim := TextSimilarity(p[0], p[1])
		assert.GreaterOrEqual(t, sim, 0.0)
		assert.LessOrEqual(t, sim, 1.0)
	}
}
