// Package score converts evaluation results into per-domain KPI scores and
// one weighted global score with pass/fail semantics. Everything here is
// pure arithmetic over already-computed inputs.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/skillhawk/skillhawk/internal/model"
	"github.com/skillhawk/skillhawk/internal/severity"
	"github.com/skillhawk/skillhawk/internal/taxonomy"
)

// DefaultMinimumScore is the global pass threshold.
const DefaultMinimumScore = 70

// gateWeight: a KPI at or above this weight must itself pass for the
// global gate to pass; lighter KPIs cannot single-handedly fail it.
const gateWeight = 20

// KPI names.
const (
	KPISpecCompliance = "spec-compliance"
	KPISecurity       = "security"
	KPIContent        = "content-quality"
	KPITesting        = "testing"
	KPIOriginality    = "originality"
)

// Penalty tables. Adjusting a deduction is a one-line change here.
const (
	penaltyComplianceError   = 25
	penaltyComplianceWarning = 5
	maxListedWarnings        = 10

	penaltySecurityCritical = 50
	penaltySecurityHigh     = 25
	penaltySecurityMedium   = 10
	penaltySecurityLow      = 2
	penaltySecretDetected   = 50

	penaltyContentTiny       = 40
	penaltyContentShort      = 20
	penaltyContentNoExamples = 15
	penaltyContentNoSteps    = 10
	penaltyContentOverBudget = 10
	tinyWordCount            = 20
	shortWordCount           = 50

	penaltyNoTests      = 30
	penaltyFewTests     = 10
	penaltyDepIssue     = 10
	penaltyDepsNoTests  = 20
	minRecommendedTests = 3

	penaltyExactName   = 50
	penaltyContentHash = 60
	penaltySimilarName = 20
	penaltySimilarDesc = 15

	passThreshold = 50
)

// Weights assigns each KPI its share of the global score, in percentage
// points. The calculator normalizes by the total actually supplied.
type Weights struct {
	SpecCompliance int
	Security       int
	Content        int
	Testing        int
	Originality    int
}

// DefaultWeights sums to 100.
var DefaultWeights = Weights{
	SpecCompliance: 30,
	Security:       25,
	Content:        20,
	Testing:        15,
	Originality:    10,
}

// Input carries the independent evaluation results for one skill.
type Input struct {
	Compliance model.ComplianceResult
	Security   model.SecurityScanResult
	Content    model.ContentMetrics
	Testing    model.TestingResult
	Duplicates []model.DuplicateMatch
}

// Calculate derives all KPI scores and the weighted global result.
func Calculate(in Input, weights Weights, minimumScore int) model.ScoreResult {
	kpis := []model.KPIScore{
		complianceKPI(in.Compliance, weights.SpecCompliance),
		securityKPI(in.Security, weights.Security),
		contentKPI(in.Content, weights.Content),
		testingKPI(in.Testing, weights.Testing),
		originalityKPI(in.Duplicates, weights.Originality),
	}

	totalWeight := 0
	weighted := 0.0
	for _, k := range kpis {
		totalWeight += k.Weight
		weighted += float64(k.Score) * float64(k.Weight)
	}

	global := 0
	if totalWeight > 0 {
		global = int(math.Round(weighted / float64(totalWeight)))
	}

	passed := global >= minimumScore
	for _, k := range kpis {
		if k.Weight >= gateWeight && !k.Passed {
			passed = false
		}
	}

	return model.ScoreResult{
		GlobalScore: global,
		Passed:      passed,
		KPIs:        kpis,
		Summary:     summarize(global, passed, kpis),
	}
}

func complianceKPI(c model.ComplianceResult, weight int) model.KPIScore {
	s := 100
	issues := make([]string, 0, len(c.Errors))
	details := make([]string, 0)

	for _, e := range c.Errors {
		s -= penaltyComplianceError
		issues = append(issues, "error: "+e)
	}
	for i, w := range c.Warnings {
		s -= penaltyComplianceWarning
		if i < maxListedWarnings {
			details = append(details, "warning: "+w)
		}
	}
	if extra := len(c.Warnings) - maxListedWarnings; extra > 0 {
		details = append(details, fmt.Sprintf("+%d more warnings", extra))
	}

	return model.KPIScore{
		Name:    KPISpecCompliance,
		Score:   clamp(s),
		Weight:  weight,
		Passed:  len(c.Errors) == 0,
		Details: details,
		Issues:  issues,
	}
}

func securityKPI(sec model.SecurityScanResult, weight int) model.KPIScore {
	s := 100
	criticals := 0
	secretFindings := 0
	issues := make([]string, 0, len(sec.Findings))

	for _, f := range sec.Findings {
		issues = append(issues, fmt.Sprintf("[%s] %s (%s)", f.Severity, f.Description, f.Location))
		// Secret findings are charged once through the flat secret penalty,
		// never again per severity.
		if f.Category == taxonomy.SecretsCategory {
			secretFindings++
			continue
		}
		switch f.Severity {
		case severity.Critical:
			s -= penaltySecurityCritical
			criticals++
		case severity.High:
			s -= penaltySecurityHigh
		case severity.Medium:
			s -= penaltySecurityMedium
		case severity.Low:
			s -= penaltySecurityLow
		}
	}

	secretDetected := secretFindings > 0 || (sec.Secrets != nil && sec.Secrets.SecretsExist)
	if secretDetected {
		s -= penaltySecretDetected
		issues = append(issues, "hardcoded secret detected")
	}

	final := clamp(s)
	return model.KPIScore{
		Name:   KPISecurity,
		Score:  final,
		Weight: weight,
		Passed: final >= passThreshold && criticals == 0 && !secretDetected,
		Issues: issues,
	}
}

func contentKPI(c model.ContentMetrics, weight int) model.KPIScore {
	s := 100
	issues := make([]string, 0)

	switch {
	case c.WordCount < tinyWordCount:
		s -= penaltyContentTiny
		issues = append(issues, fmt.Sprintf("content too short: %d words", c.WordCount))
	case c.WordCount < shortWordCount:
		s -= penaltyContentShort
		issues = append(issues, fmt.Sprintf("content is thin: %d words", c.WordCount))
	}
	if !c.HasExamples {
		s -= penaltyContentNoExamples
		issues = append(issues, "no usage examples detected")
	}
	if !c.HasSteps {
		s -= penaltyContentNoSteps
		issues = append(issues, "no step-by-step instructions detected")
	}
	if c.OverLineBudget {
		s -= penaltyContentOverBudget
		issues = append(issues, fmt.Sprintf("content exceeds %d recommended lines (%d)", c.RecommendedMax, c.LineCount))
	}

	final := clamp(s)
	return model.KPIScore{
		Name:   KPIContent,
		Score:  final,
		Weight: weight,
		Passed: final >= passThreshold,
		Issues: issues,
	}
}

func testingKPI(tr model.TestingResult, weight int) model.KPIScore {
	s := 100
	issues := make([]string, 0)

	if tr.TestCases == 0 {
		s -= penaltyNoTests
		issues = append(issues, "no test cases declared")
	} else if tr.TestCases < minRecommendedTests {
		s -= penaltyFewTests
		issues = append(issues, fmt.Sprintf("only %d test cases declared", tr.TestCases))
	}
	for _, issue := range tr.DependencyIssues {
		s -= penaltyDepIssue
		issues = append(issues, "dependency: "+issue)
	}
	if tr.HasDependencies && tr.TestCases == 0 {
		s -= penaltyDepsNoTests
		issues = append(issues, "skill declares dependencies but no tests")
	}

	final := clamp(s)
	return model.KPIScore{
		Name:   KPITesting,
		Score:  final,
		Weight: weight,
		Passed: final >= passThreshold,
		Issues: issues,
	}
}

func originalityKPI(matches []model.DuplicateMatch, weight int) model.KPIScore {
	s := 100
	issues := make([]string, 0, len(matches))

	for _, m := range matches {
		switch m.MatchType {
		case model.MatchExactName:
			s -= penaltyExactName
		case model.MatchContentHash:
			s -= penaltyContentHash
		case model.MatchSimilarName:
			// Scaled by similarity so a borderline match costs less than a
			// near-identical one.
			s -= int(math.Round(penaltySimilarName * m.Similarity))
		case model.MatchSimilarDesc:
			s -= penaltySimilarDesc
		}
		issues = append(issues, fmt.Sprintf("%s match against %q (%.0f%%)", m.MatchType, m.Name, m.Similarity*100))
	}

	final := clamp(s)
	return model.KPIScore{
		Name:   KPIOriginality,
		Score:  final,
		Weight: weight,
		Passed: final >= passThreshold,
		Issues: issues,
	}
}

func clamp(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func summarize(global int, passed bool, kpis []model.KPIScore) string {
	verdict := "FAIL"
	if passed {
		verdict = "PASS"
	}
	parts := make([]string, 0, len(kpis))
	for _, k := range kpis {
		parts = append(parts, fmt.Sprintf("%s=%d", k.Name, k.Score))
	}
	return fmt.Sprintf("%s %d/100 (%s)", verdict, global, strings.Join(parts, " "))
}
