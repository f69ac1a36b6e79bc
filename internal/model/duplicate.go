package model

// MatchType tags how a duplicate was identified.
type MatchType string

const (
	MatchExactName   MatchType = "exact-name"
	MatchSimilarName MatchType = "similar-name"
	MatchSimilarDesc MatchType = "similar-description"
	MatchContentHash MatchType = "content-hash"
)

// DuplicateMatch is one similarity hit between a subject skill and a
// registry entry.
type DuplicateMatch struct {
	Name       string    `json:"name"`
	Source     string    `json:"source,omitempty"`
	Similarity float64   `json:"similarity"`
	MatchType  MatchType `json:"match_type"`
}

// DuplicateGroup is a set of sibling skills in a batch judged to be the
// same skill. Canonical is chosen by lowest source priority, tie-broken by
// longest content.
type DuplicateGroup struct {
	Canonical  string             `json:"canonical"`
	Duplicates []GroupedDuplicate `json:"duplicates"`
}

// GroupedDuplicate is one non-canonical member of a duplicate group.
type GroupedDuplicate struct {
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}
