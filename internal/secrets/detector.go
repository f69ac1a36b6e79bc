// Package secrets provides pluggable hardcoded-credential detectors: two
// external tool integrations (gitleaks, trufflehog) and a built-in pattern
// fallback. The scanner commits to the first available detector in
// preference order.
package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/skillhawk/skillhawk/internal/model"
	"github.com/skillhawk/skillhawk/internal/severity"
	"github.com/skillhawk/skillhawk/internal/taxonomy"
)

// Confidence levels per detector class. Tool-verified secrets rank highest;
// the pattern fallback cannot verify anything.
const (
	ConfidenceVerified = 1.0
	ConfidenceTool     = 0.95
	ConfidenceFallback = 0.7
)

// DefaultTimeout bounds one external tool invocation.
const DefaultTimeout = 20 * time.Second

// Detector identifies hardcoded credentials in text.
type Detector interface {
	Name() string
	// Available reports whether the detector can run on this host. It may
	// probe for an external binary.
	Available() bool
	Detect(ctx context.Context, content string, pathHint string) ([]model.SecurityFinding, error)
}

// DefaultOrder is the standard preference order: gitleaks, then trufflehog,
// then the built-in fallback (always available).
func DefaultOrder() []Detector {
	return []Detector{
		NewGitleaksDetector(DefaultTimeout),
		NewTrufflehogDetector(DefaultTimeout),
		NewFallbackDetector(),
	}
}

// OrderByNames resolves detector names into a preference order, binding the
// external tool timeout (zero means DefaultTimeout). Unknown names are an
// error so a typo in configuration is caught early.
func OrderByNames(names []string, timeout time.Duration) ([]Detector, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if len(names) == 0 {
		names = []string{"gitleaks", "trufflehog", "fallback"}
	}
	out := make([]Detector, 0, len(names))
	for _, n := range names {
		switch n {
		case "gitleaks":
			out = append(out, NewGitleaksDetector(timeout))
		case "trufflehog":
			out = append(out, NewTrufflehogDetector(timeout))
		case "fallback", "patterns":
			out = append(out, NewFallbackDetector())
		default:
			return nil, fmt.Errorf("unknown secret detector: %s", n)
		}
	}
	return out, nil
}

// Select returns the first available detector, or nil when none is.
func Select(order []Detector) Detector {
	for _, d := range order {
		if d.Available() {
			return d
		}
	}
	return nil
}

// secretFinding builds the SecurityFinding shape every secret detector
// emits: HARDCODED_SECRETS category at CRITICAL severity.
func secretFinding(detector string, secretType string, line int, matched string, confidence float64) model.SecurityFinding {
	return model.SecurityFinding{
		Category:     taxonomy.SecretsCategory,
		TechniqueIDs: []string{"LLM06"},
		Severity:     severity.Critical,
		Description:  fmt.Sprintf("Hardcoded secret: %s", secretType),
		MatchedText:  redact(matched),
		Location:     location(line),
		LineNumber:   line,
		Confidence:   confidence,
		DetectorName: detector,
		Secret:       matched,
	}
}

func location(line int) string {
	if line < 1 {
		return "content"
	}
	return fmt.Sprintf("Line %d", line)
}

func redact(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
