// Package scan orchestrates the security scanners: the selected secret
// detector, the optional remote guard, and the taxonomy pattern matcher.
// Findings are merged, deduplicated, and severity-ranked into one result.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/skillhawk/skillhawk/internal/baseline"
	"github.com/skillhawk/skillhawk/internal/guard"
	"github.com/skillhawk/skillhawk/internal/model"
	"github.com/skillhawk/skillhawk/internal/secrets"
	"github.com/skillhawk/skillhawk/internal/severity"
	"github.com/skillhawk/skillhawk/internal/taxonomy"
)

// TaxonomyConfidence is assigned to taxonomy pattern matches. Patterns are
// tuned for recall over natural language, so they rank below tool and guard
// detections.
const TaxonomyConfidence = 0.8

// TaxonomyDetectorName identifies taxonomy findings in scan output.
const TaxonomyDetectorName = "taxonomy"

// Engine runs security scans over parsed skills. The secret detector is
// chosen lazily on first scan and reused for the engine's lifetime.
type Engine struct {
	order          []secrets.Detector
	disableSecrets bool
	guard          *guard.Client
	base           *baseline.File
	log            *slog.Logger

	selectOnce sync.Once
	detector   secrets.Detector
}

// Option configures an Engine.
type Option func(*Engine)

// WithDetectorOrder overrides the secret detector preference order.
func WithDetectorOrder(order []secrets.Detector) Option {
	return func(e *Engine) { e.order = order }
}

// WithoutSecretDetection disables the secret detector entirely; the scan
// result then carries no secrets sub-result.
func WithoutSecretDetection() Option {
	return func(e *Engine) { e.disableSecrets = true }
}

// WithGuard attaches a remote guard client. A disabled client is ignored.
func WithGuard(g *guard.Client) Option {
	return func(e *Engine) { e.guard = g }
}

// WithBaseline attaches an accepted-findings baseline; suppressed findings
// are dropped after deduplication.
func WithBaseline(b *baseline.File) Option {
	return func(e *Engine) { e.base = b }
}

// WithLogger replaces the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New builds a scan engine with the default detector order.
func New(opts ...Option) *Engine {
	e := &Engine{
		order: secrets.DefaultOrder(),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scan runs every configured detector against the skill and returns the
// merged, deduplicated result. Detector-level failures are logged and
// treated as zero findings from that detector; Scan itself fails only when
// the context is cancelled.
func (e *Engine) Scan(ctx context.Context, skill model.Skill) (model.SecurityScanResult, error) {
	start := time.Now()

	buffer := skill.Content
	if skill.Description != "" {
		if buffer != "" {
			buffer += "\n"
		}
		buffer += skill.Description
	}
	lines := strings.Split(strings.ReplaceAll(buffer, "\r\n", "\n"), "\n")

	// Collection order matters: secret findings first, then guard, then
	// taxonomy, so the highest-trust detector wins a dedup key collision.
	collected := make([]model.SecurityFinding, 0)
	var secretsSummary *model.SecretScanSummary

	if !e.disableSecrets {
		detector := e.selectDetector()
		if detector == nil {
			secretsSummary = &model.SecretScanSummary{ToolAvailable: false}
		} else {
			found, err := detector.Detect(ctx, buffer, skill.DirectoryName)
			if err != nil {
				if ctx.Err() != nil {
					return model.SecurityScanResult{}, ctx.Err()
				}
				e.log.Warn("secret detector failed, continuing without it",
					"detector", detector.Name(), "error", err)
				found = nil
			}
			secretsSummary = &model.SecretScanSummary{
				DetectorName:  detector.Name(),
				SecretsFound:  len(found),
				SecretsExist:  len(found) > 0,
				ToolAvailable: true,
			}
			collected = append(collected, found...)
		}
	}

	if e.guard != nil && e.guard.Enabled() {
		found, err := e.guard.Classify(ctx, buffer)
		if err != nil {
			if ctx.Err() != nil {
				return model.SecurityScanResult{}, ctx.Err()
			}
			e.log.Warn("remote guard failed, continuing without it", "error", err)
		} else {
			collected = append(collected, found...)
		}
	}

	collected = append(collected, matchTaxonomy(lines)...)

	findings := Deduplicate(collected)
	if e.base != nil {
		findings = e.base.Filter(findings)
	}

	maxSev := severity.Safe
	for _, f := range findings {
		if severity.MoreSevere(f.Severity, maxSev) {
			maxSev = f.Severity
		}
	}

	return model.SecurityScanResult{
		IsSecure:       len(findings) == 0,
		MaxSeverity:    maxSev,
		Findings:       findings,
		ScanDurationMS: time.Since(start).Milliseconds(),
		Secrets:        secretsSummary,
	}, nil
}

// selectDetector commits to the first available detector exactly once per
// engine instance.
func (e *Engine) selectDetector() secrets.Detector {
	e.selectOnce.Do(func() {
		e.detector = secrets.Select(e.order)
		if e.detector != nil {
			e.log.Debug("secret detector selected", "detector", e.detector.Name())
		}
	})
	return e.detector
}

// matchTaxonomy scans line by line so every match carries a 1-based line
// number; the same pattern matching several lines yields several findings.
func matchTaxonomy(lines []string) []model.SecurityFinding {
	findings := make([]model.SecurityFinding, 0)
	for _, cat := range taxonomy.Categories() {
		for _, p := range cat.Patterns {
			for i, line := range lines {
				matched, ok := p.Match(line)
				if !ok {
					continue
				}
				findings = append(findings, model.SecurityFinding{
					Category:     cat.ID,
					TechniqueIDs: cat.Techniques,
					Severity:     taxonomy.EffectiveSeverity(cat, p),
					Description:  cat.Description,
					MatchedText:  matched,
					Location:     fmt.Sprintf("Line %d", i+1),
					LineNumber:   i + 1,
					Confidence:   TaxonomyConfidence,
					DetectorName: TaxonomyDetectorName,
				})
			}
		}
	}
	return findings
}

// Deduplicate drops findings whose (category, location, matchedText) key
// was already seen, keeping the first occurrence in collection order. It is
// idempotent and never mutates surviving findings.
func Deduplicate(findings []model.SecurityFinding) []model.SecurityFinding {
	seen := make(map[model.DedupKey]struct{}, len(findings))
	out := make([]model.SecurityFinding, 0, len(findings))
	for _, f := range findings {
		key := f.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}
