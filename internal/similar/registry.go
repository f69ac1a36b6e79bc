package similar

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/skillhawk/skillhawk/internal/model"
)

// Registry check thresholds. A candidate below both thresholds is not
// reported at all.
const (
	NameSimilarityThreshold        = 0.7
	DescriptionSimilarityThreshold = 0.6
	MaxRegistryMatches             = 5
)

// Candidate is one known registry entry to compare against. ContentHash is
// optional; snapshots that carry it enable exact content matching.
type Candidate struct {
	Name        string
	Description string
	Source      string
	ContentHash string
}

// ContentHash hashes skill body text for exact duplicate detection.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// CheckRegistry compares a skill against known registry entries and returns
// up to MaxRegistryMatches matches, strongest first. An exact normalized
// name match or an identical content hash scores 1.0; otherwise the
// candidate is scored by Jaccard similarity on name, falling back to
// description.
func CheckRegistry(skill model.Skill, candidates []Candidate) []model.DuplicateMatch {
	subjectName := normalizeName(skill.Name)
	subjectNameTokens := Tokens(skill.Name)
	subjectDescTokens := Tokens(skill.Description)
	subjectHash := ""
	if skill.Content != "" {
		subjectHash = ContentHash(skill.Content)
	}

	matches := make([]model.DuplicateMatch, 0)
	for _, c := range candidates {
		switch {
		case normalizeName(c.Name) == subjectName:
			matches = append(matches, model.DuplicateMatch{
				Name:       c.Name,
				Source:     c.Source,
				Similarity: 1,
				MatchType:  model.MatchExactName,
			})
		case subjectHash != "" && c.ContentHash == subjectHash:
			matches = append(matches, model.DuplicateMatch{
				Name:       c.Name,
				Source:     c.Source,
				Similarity: 1,
				MatchType:  model.MatchContentHash,
			})
		default:
			if sim := Jaccard(subjectNameTokens, Tokens(c.Name)); sim >= NameSimilarityThreshold {
				matches = append(matches, model.DuplicateMatch{
					Name:       c.Name,
					Source:     c.Source,
					Similarity: sim,
					MatchType:  model.MatchSimilarName,
				})
				continue
			}
			if sim := Jaccard(subjectDescTokens, Tokens(c.Description)); sim >= DescriptionSimilarityThreshold {
				matches = append(matches, model.DuplicateMatch{
					Name:       c.Name,
					Source:     c.Source,
					Similarity: sim,
					MatchType:  model.MatchSimilarDesc,
				})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > MaxRegistryMatches {
		matches = matches[:MaxRegistryMatches]
	}
	return matches
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
