// Package baseline stores findings a maintainer has reviewed and accepted,
// so repeat scans only fail on new problems.
package baseline

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/skillhawk/skillhawk/internal/model"
)

// File is the on-disk baseline document.
type File struct {
	Version string  `json:"version"`
	Entries []Entry `json:"entries"`
}

// Entry suppresses one finding, keyed the same way deduplication keys
// findings: category, location, and a hash of the matched text (hashed so
// the baseline file never stores matched secrets).
type Entry struct {
	Category  string `json:"category"`
	Location  string `json:"location"`
	MatchHash string `json:"match_hash"`
	Reason    string `json:"reason,omitempty"`
}

// ComputeMatchHash hashes a finding's matched text for baseline storage.
func ComputeMatchHash(matchedText string) string {
	sum := sha1.Sum([]byte(matchedText))
	return hex.EncodeToString(sum[:])
}

// EntryFor builds the baseline entry that would suppress the finding.
func EntryFor(f model.SecurityFinding, reason string) Entry {
	return Entry{
		Category:  f.Category,
		Location:  f.Location,
		MatchHash: ComputeMatchHash(f.MatchedText),
		Reason:    reason,
	}
}

// Load reads a baseline file. A missing file is an empty baseline, not an
// error.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{Version: "1"}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{Version: "1"}, nil
		}
		return nil, fmt.Errorf("read baseline: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if f.Version == "" {
		f.Version = "1"
	}
	return &f, nil
}

// Save writes the baseline file.
func Save(path string, f File) error {
	if f.Version == "" {
		f.Version = "1"
	}
	payload, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}

// Filter returns the findings not suppressed by the baseline.
func (f *File) Filter(findings []model.SecurityFinding) []model.SecurityFinding {
	if f == nil || len(f.Entries) == 0 {
		return findings
	}
	out := make([]model.SecurityFinding, 0, len(findings))
	for _, finding := range findings {
		if f.suppresses(finding) {
			continue
		}
		out = append(out, finding)
	}
	return out
}

func (f *File) suppresses(finding model.SecurityFinding) bool {
	hash := ComputeMatchHash(finding.MatchedText)
	for _, e := range f.Entries {
		if e.Category == finding.Category && e.Location == finding.Location && e.MatchHash == hash {
			return true
		}
	}
	return false
}
