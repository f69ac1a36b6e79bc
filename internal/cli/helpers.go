package cli

import (
	"context"
	"log/slog"

	"github.com/skillhawk/skillhawk/internal/analyze"
	"github.com/skillhawk/skillhawk/internal/baseline"
	"github.com/skillhawk/skillhawk/internal/config"
	"github.com/skillhawk/skillhawk/internal/guard"
	"github.com/skillhawk/skillhawk/internal/registry"
	"github.com/skillhawk/skillhawk/internal/scan"
	"github.com/skillhawk/skillhawk/internal/score"
	"github.com/skillhawk/skillhawk/internal/secrets"
)

// buildEngine assembles the scan engine from config plus command flags.
// Flag values win over the environment.
func buildEngine(cfg config.Config, disableSecrets bool, baselinePath string) (*scan.Engine, error) {
	opts := make([]scan.Option, 0, 4)

	if disableSecrets || cfg.Scan.DisableSecrets {
		opts = append(opts, scan.WithoutSecretDetection())
	} else {
		order, err := secrets.OrderByNames(cfg.Scan.DetectorOrder, cfg.Scan.Timeout)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scan.WithDetectorOrder(order))
	}

	if cfg.Guard.Endpoint != "" {
		g := guard.New(cfg.Guard.Endpoint, cfg.Guard.APIKey, guard.WithTimeout(cfg.Scan.Timeout))
		opts = append(opts, scan.WithGuard(g))
	}

	if baselinePath == "" {
		baselinePath = cfg.Scan.BaselinePath
	}
	if baselinePath != "" {
		base, err := baseline.Load(baselinePath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scan.WithBaseline(base))
	}

	return scan.New(opts...), nil
}

// buildAnalyzer wires the engine and scoring config, plus registry
// candidates when a registry is configured. A registry failure downgrades
// to a warning; originality then sees no known entries.
func buildAnalyzer(ctx context.Context, cfg config.Config, engine *scan.Engine) *analyze.Analyzer {
	opts := []analyze.Option{
		analyze.WithScanEngine(engine),
		analyze.WithMinimumScore(cfg.Score.MinimumScore),
		analyze.WithWeights(score.Weights{
			SpecCompliance: cfg.Score.WeightCompliance,
			Security:       cfg.Score.WeightSecurity,
			Content:        cfg.Score.WeightContent,
			Testing:        cfg.Score.WeightTesting,
			Originality:    cfg.Score.WeightOriginality,
		}),
	}

	if cfg.Registry.URL != "" {
		client := registry.New(cfg.Registry.URL, cfg.Registry.CachePath,
			registry.WithMaxSkills(cfg.Registry.MaxSkills),
			registry.WithTimeout(cfg.Scan.Timeout))
		snap, err := client.Snapshot(ctx)
		if err != nil {
			slog.Warn("registry unavailable, skipping duplicate check", "error", err)
		} else {
			opts = append(opts, analyze.WithRegistryCandidates(snap.Candidates()))
		}
	}

	return analyze.New(opts...)
}
