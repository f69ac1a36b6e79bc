package similar

import (
	"github.com/skillhawk/skillhawk/internal/model"
)

// Combined-score weights and the grouping threshold for batch mode.
const (
	nameWeight    = 0.2
	descWeight    = 0.3
	contentWeight = 0.5

	// GroupThreshold is the combined similarity two skills must reach to
	// land in the same group.
	GroupThreshold = 0.75
)

// CombinedSimilarity weighs name, description, and content Jaccard into one
// score in [0,1].
func CombinedSimilarity(a, b model.Skill) float64 {
	return nameWeight*TextSimilarity(a.Name, b.Name) +
		descWeight*TextSimilarity(a.Description, b.Description) +
		contentWeight*TextSimilarity(a.Content, b.Content)
}

// GroupBatch partitions a batch into duplicate groups. Grouping is greedy
// and single-pass: each unclaimed skill claims every sufficiently similar
// unclaimed skill after it in the list. The similarity graph's transitive
// closure is never computed, so the outcome depends on input order.
func GroupBatch(skills []model.Skill) []model.DuplicateGroup {
	claimed := make([]bool, len(skills))
	groups := make([]model.DuplicateGroup, 0)

	for i := range skills {
		if claimed[i] {
			continue
		}
		members := []int{i}
		sims := map[int]float64{i: 1}
		for j := i + 1; j < len(skills); j++ {
			if claimed[j] {
				continue
			}
			sim := CombinedSimilarity(skills[i], skills[j])
			if sim < GroupThreshold {
				continue
			}
			claimed[j] = true
			members = append(members, j)
			sims[j] = sim
		}
		if len(members) < 2 {
			continue
		}
		claimed[i] = true

		canonical := pickCanonical(skills, members)
		group := model.DuplicateGroup{Canonical: skills[canonical].Name}
		for _, m := range members {
			if m == canonical {
				continue
			}
			group.Duplicates = append(group.Duplicates, model.GroupedDuplicate{
				Name:       skills[m].Name,
				Similarity: sims[m],
			})
		}
		groups = append(groups, group)
	}
	return groups
}

// pickCanonical prefers the lowest source priority value, then the longest
// content.
func pickCanonical(skills []model.Skill, members []int) int {
	best := members[0]
	for _, m := range members[1:] {
		cur, cand := skills[best], skills[m]
		switch {
		case cand.Source.Priority < cur.Source.Priority:
			best = m
		case cand.Source.Priority == cur.Source.Priority && len(cand.Content) > len(cur.Content):
			best = m
		}
	}
	return best
}
