// Package severity defines the fixed finding severity ordering.
package severity

import "fmt"

// Level is a finding severity. The ordering is total and fixed:
// CRITICAL > HIGH > MEDIUM > LOW > SAFE.
type Level string

const (
	Critical Level = "CRITICAL"
	High     Level = "HIGH"
	Medium   Level = "MEDIUM"
	Low      Level = "LOW"
	Safe     Level = "SAFE"
)

var rank = map[Level]int{
	Safe:     0,
	Low:      1,
	Medium:   2,
	High:     3,
	Critical: 4,
}

// Normalize validates a severity string against the known levels.
func Normalize(v string) (Level, error) {
	l := Level(v)
	if _, ok := rank[l]; !ok {
		return "", fmt.Errorf("invalid severity level: %s", v)
	}
	return l, nil
}

// Rank returns the numeric position of a level; unknown levels rank as SAFE.
func Rank(l Level) int {
	return rank[l]
}

// MoreSevere reports whether a is strictly more severe than b.
func MoreSevere(a, b Level) bool {
	return rank[a] > rank[b]
}

// MeetsOrAbove reports whether level is at least as severe as threshold.
func MeetsOrAbove(level, threshold Level) bool {
	l, okL := rank[level]
	t, okT := rank[threshold]
	if !okL || !okT {
		return false
	}
	return l >= t
}

// Max returns the most severe level present, defaulting to Safe when the
// list is empty.
func Max(levels ...Level) Level {
	out := Safe
	for _, l := range levels {
		if rank[l] > rank[out] {
			out = l
		}
	}
	return out
}
