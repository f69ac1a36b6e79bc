package model

import "github.com/skillhawk/skillhawk/internal/severity"

// SecurityFinding is one reported match of a detector against skill content.
// After a scan, the dedup step may drop a finding and credential
// verification may raise its confidence; nothing else touches them.
type SecurityFinding struct {
	Category     string         `json:"category"`
	TechniqueIDs []string       `json:"technique_ids,omitempty"`
	Severity     severity.Level `json:"severity"`
	Description  string         `json:"description"`
	MatchedText  string         `json:"matched_text"`
	Location     string         `json:"location"`
	LineNumber   int            `json:"line_number,omitempty"`
	Confidence   float64        `json:"confidence"`
	DetectorName string         `json:"detector_name"`

	// Secret holds the unredacted credential for in-process verification.
	// MatchedText stays redacted; Secret must never reach serialized output.
	Secret string `json:"-"`
}

// DedupKey identifies a finding for deduplication. First occurrence in
// collection order wins a key collision.
type DedupKey struct {
	Category    string
	Location    string
	MatchedText string
}

// Key returns the finding's deduplication key.
func (f SecurityFinding) Key() DedupKey {
	return DedupKey{Category: f.Category, Location: f.Location, MatchedText: f.MatchedText}
}

// SecretScanSummary is the secret-detector sub-result of a scan.
type SecretScanSummary struct {
	DetectorName  string `json:"detector_name"`
	SecretsFound  int    `json:"secrets_found"`
	SecretsExist  bool   `json:"secrets_exist"`
	ToolAvailable bool   `json:"tool_available"`
}

// SecurityScanResult is the merged, deduplicated output of one scan call.
// It is computed fresh per call and never cached.
type SecurityScanResult struct {
	IsSecure       bool               `json:"is_secure"`
	MaxSeverity    severity.Level     `json:"max_severity"`
	Findings       []SecurityFinding  `json:"findings"`
	ScanDurationMS int64              `json:"scan_duration_ms"`
	Secrets        *SecretScanSummary `json:"secrets,omitempty"`
}
