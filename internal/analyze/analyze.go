// Package analyze runs the full evaluation pipeline for one skill or a
// batch: parse, compliance, security scan, content metrics, testing, and
// duplicate checking, funneled into a scored report.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/skillhawk/skillhawk/internal/model"
	"github.com/skillhawk/skillhawk/internal/parser"
	"github.com/skillhawk/skillhawk/internal/scan"
	"github.com/skillhawk/skillhawk/internal/score"
	"github.com/skillhawk/skillhawk/internal/similar"
	"github.com/skillhawk/skillhawk/internal/validate"
)

// Report is the full evaluation of one skill.
type Report struct {
	ID          string                   `json:"id"`
	Path        string                   `json:"path"`
	Skill       model.Skill              `json:"skill"`
	Compliance  model.ComplianceResult   `json:"compliance"`
	Security    model.SecurityScanResult `json:"security"`
	Content     model.ContentMetrics     `json:"content"`
	Testing     model.TestingResult      `json:"testing"`
	Duplicates  []model.DuplicateMatch   `json:"duplicates,omitempty"`
	Score       model.ScoreResult        `json:"score"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// BatchReport is the evaluation of a list of skills plus cross-skill
// duplicate groups.
type BatchReport struct {
	ID      string                 `json:"id"`
	Reports []Report               `json:"reports"`
	Groups  []model.DuplicateGroup `json:"groups,omitempty"`
	Passed  bool                   `json:"passed"`
}

// Analyzer wires the evaluators together. The zero value is not usable;
// construct with New.
type Analyzer struct {
	engine     *scan.Engine
	weights    score.Weights
	minScore   int
	candidates []similar.Candidate
	log        *slog.Logger
	now        func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithScanEngine replaces the security scan engine.
func WithScanEngine(e *scan.Engine) Option {
	return func(a *Analyzer) { a.engine = e }
}

// WithWeights replaces the KPI weights.
func WithWeights(w score.Weights) Option {
	return func(a *Analyzer) { a.weights = w }
}

// WithMinimumScore replaces the global pass threshold.
func WithMinimumScore(minimum int) Option {
	return func(a *Analyzer) { a.minScore = minimum }
}

// WithRegistryCandidates supplies known registry entries for duplicate
// checking. Without them the originality KPI sees no matches.
func WithRegistryCandidates(c []similar.Candidate) Option {
	return func(a *Analyzer) { a.candidates = c }
}

// WithLogger replaces the analyzer's logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// New builds an analyzer with default weights and threshold.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		engine:   scan.New(),
		weights:  score.DefaultWeights,
		minScore: score.DefaultMinimumScore,
		log:      slog.Default(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeFile parses and evaluates one SKILL.md.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (Report, error) {
	skill, err := parser.ParseFile(path)
	if err != nil {
		return Report{}, err
	}
	return a.analyze(ctx, path, skill)
}

// AnalyzeSkill evaluates an already-parsed skill.
func (a *Analyzer) AnalyzeSkill(ctx context.Context, skill model.Skill) (Report, error) {
	return a.analyze(ctx, "", skill)
}

func (a *Analyzer) analyze(ctx context.Context, path string, skill model.Skill) (Report, error) {
	security, err := a.engine.Scan(ctx, skill)
	if err != nil {
		return Report{}, fmt.Errorf("scan %s: %w", skill.Name, err)
	}

	report := Report{
		ID:          uuid.NewString(),
		Path:        path,
		Skill:       skill,
		Compliance:  validate.Compliance(skill),
		Security:    security,
		Content:     validate.Content(skill),
		Testing:     validate.Testing(skill, filepath.Dir(path)),
		Duplicates:  similar.CheckRegistry(skill, a.candidates),
		GeneratedAt: a.now(),
	}
	report.Score = score.Calculate(score.Input{
		Compliance: report.Compliance,
		Security:   report.Security,
		Content:    report.Content,
		Testing:    report.Testing,
		Duplicates: report.Duplicates,
	}, a.weights, a.minScore)

	a.log.Debug("skill analyzed",
		"skill", skill.Name,
		"score", report.Score.GlobalScore,
		"passed", report.Score.Passed)
	return report, nil
}

// AnalyzeBatch evaluates each path in order and groups duplicates across
// the batch. The batch passes only when every skill passes.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, paths []string) (BatchReport, error) {
	batch := BatchReport{ID: uuid.NewString(), Passed: true}
	skills := make([]model.Skill, 0, len(paths))

	for _, path := range paths {
		report, err := a.AnalyzeFile(ctx, path)
		if err != nil {
			return BatchReport{}, err
		}
		batch.Reports = append(batch.Reports, report)
		skills = append(skills, report.Skill)
		if !report.Score.Passed {
			batch.Passed = false
		}
	}

	batch.Groups = similar.GroupBatch(skills)
	return batch, nil
}
