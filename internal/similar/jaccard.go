// Package similar measures how alike two skills are using Jaccard
// similarity over token sets, and applies it two ways: checking one skill
// against a registry snapshot, and grouping duplicates within a batch.
package similar

import (
	"strings"
	"unicode"
)

const (
	minTokenLen   = 3
	minKeywordLen = 4
)

// stopwords are dropped during keyword extraction. Ordinary token sets keep
// them so short names like "the-thing" still compare sensibly.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {},
	"from": {}, "your": {}, "you": {}, "are": {}, "can": {}, "will": {},
	"use": {}, "using": {}, "when": {}, "how": {}, "what": {}, "all": {},
	"any": {}, "has": {}, "have": {}, "its": {}, "into": {}, "then": {},
	"them": {}, "they": {}, "not": {}, "but": {}, "each": {}, "via": {},
}

// Tokens lowercases text and extracts alphabetic runs of at least three
// letters as a set. Repeats collapse.
func Tokens(text string) map[string]struct{} {
	return tokenSet(text, minTokenLen, false)
}

// Keywords extracts longer tokens with stopwords removed, for trigger
// keyword comparison.
func Keywords(text string) map[string]struct{} {
	return tokenSet(text, minKeywordLen, true)
}

func tokenSet(text string, minLen int, dropStopwords bool) map[string]struct{} {
	set := make(map[string]struct{})
	var run strings.Builder
	flush := func() {
		if run.Len() >= minLen {
			tok := run.String()
			if !dropStopwords {
				set[tok] = struct{}{}
			} else if _, stop := stopwords[tok]; !stop {
				set[tok] = struct{}{}
			}
		}
		run.Reset()
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) {
			run.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return set
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when the union is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// TextSimilarity tokenizes both texts and returns their Jaccard index.
func TextSimilarity(a, b string) float64 {
	return Jaccard(Tokens(a), Tokens(b))
}
