package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhawk/skillhawk/internal/model"
	"github.com/skillhawk/skillhawk/internal/severity"
	"github.com/skillhawk/skillhawk/internal/taxonomy"
)

func secure() model.SecurityScanResult {
	return model.SecurityScanResult{IsSecure: true, MaxSeverity: severity.Safe}
}

func goodContent() model.ContentMetrics {
	return model.ContentMetrics{WordCount: 200, LineCount: 80, HasExamples: true, HasSteps: true, RecommendedMax: 500}
}

func goodTesting() model.TestingResult {
	return model.TestingResult{TestCases: 5}
}

func perfectInput() Input {
	return Input{
		Security: secure(),
		Content:  goodContent(),
		Testing:  goodTesting(),
	}
}

func TestPerfectInputScoresHundred(t *testing.T) {
	res := Calculate(perfectInput(), DefaultWeights, DefaultMinimumScore)
	assert.Equal(t, 100, res.GlobalScore)
	assert.True(t, res.Passed)
	for _, k := range res.KPIs {
		assert.Equalf(t, 100, k.Score, "kpi %s", k.Name)
		assert.Truef(t, k.Passed, "kpi %s", k.Name)
	}
}

func TestEqualWeightsAllHundredPasses(t *testing.T) {
	equal := Weights{SpecCompliance: 20, Security: 20, Content: 20, Testing: 20, Originality: 20}
	res := Calculate(perfectInput(), equal, DefaultMinimumScore)
	assert.Equal(t, 100, res.GlobalScore)
	assert.True(t, res.Passed)
}

func TestComplianceDeductions(t *testing.T) {
	in := perfectInput()
	in.Compliance = model.ComplianceResult{
		Errors:   []string{"missing name"},
		Warnings: []string{"description is short", "unknown key: author"},
	}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)

	k := kpiByName(t, res, KPISpecCompliance)
	assert.Equal(t, 100-25-5-5, k.Score)
	assert.False(t, k.Passed, "any error fails compliance regardless of score")
	assert.False(t, res.Passed, "compliance carries gate weight")
}

func TestComplianceZeroErrorsZeroWarningsIsHundred(t *testing.T) {
	res := Calculate(perfectInput(), DefaultWeights, DefaultMinimumScore)
	k := kpiByName(t, res, KPISpecCompliance)
	assert.Equal(t, 100, k.Score)
	assert.True(t, k.Passed)
}

func TestComplianceWarningsBeyondTenthCountedNotListed(t *testing.T) {
	in := perfectInput()
	for i := 0; i < 14; i++ {
		in.Compliance.Warnings = append(in.Compliance.Warnings, "w")
	}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	k := kpiByName(t, res, KPISpecCompliance)
	assert.Equal(t, 100-14*5, k.Score)
	require.Len(t, k.Details, 11)
	assert.Equal(t, "+4 more warnings", k.Details[10])
}

func TestSecurityPenalties(t *testing.T) {
	in := perfectInput()
	in.Security = model.SecurityScanResult{
		MaxSeverity: severity.Critical,
		Findings: []model.SecurityFinding{
			{Severity: severity.Critical, Description: "code injection", Location: "Line 3"},
			{Severity: severity.High, Description: "prompt injection", Location: "Line 9"},
			{Severity: severity.Medium, Description: "obfuscation", Location: "Line 12"},
			{Severity: severity.Low, Description: "minor", Location: "Line 20"},
		},
	}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	k := kpiByName(t, res, KPISecurity)
	assert.Equal(t, 100-50-25-10-2, k.Score)
	assert.False(t, k.Passed, "critical finding fails security even when score is borderline")
}

func secretFinding() model.SecurityFinding {
	return model.SecurityFinding{
		Category:    taxonomy.SecretsCategory,
		Severity:    severity.Critical,
		Description: "Hardcoded secret: aws-access-key-id",
		Location:    "Line 5",
	}
}

func TestSingleSecretAloneScoresExactlyFifty(t *testing.T) {
	// The scanner reports every secret as a CRITICAL finding alongside the
	// summary; the flat secret penalty owns those findings, so a lone secret
	// lands on exactly 50.
	in := perfectInput()
	in.Security = model.SecurityScanResult{
		MaxSeverity: severity.Critical,
		Findings:    []model.SecurityFinding{secretFinding()},
		Secrets:     &model.SecretScanSummary{SecretsExist: true, SecretsFound: 1, ToolAvailable: true},
	}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	k := kpiByName(t, res, KPISecurity)
	assert.Equal(t, 50, k.Score)
	assert.False(t, k.Passed, "a detected secret fails security even at score 50")
}

func TestSecretPenaltyIndependentOfOtherFindings(t *testing.T) {
	in := perfectInput()
	in.Security = model.SecurityScanResult{
		MaxSeverity: severity.Critical,
		Findings: []model.SecurityFinding{
			secretFinding(),
			{Severity: severity.High, Description: "prompt injection", Location: "Line 9"},
		},
		Secrets: &model.SecretScanSummary{SecretsExist: true, SecretsFound: 1, ToolAvailable: true},
	}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	k := kpiByName(t, res, KPISecurity)
	assert.Equal(t, 100-50-25, k.Score)
	assert.False(t, k.Passed)
}

func TestSecretFindingWithoutSummaryStillGates(t *testing.T) {
	in := perfectInput()
	in.Security = model.SecurityScanResult{
		MaxSeverity: severity.Critical,
		Findings:    []model.SecurityFinding{secretFinding()},
	}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	k := kpiByName(t, res, KPISecurity)
	assert.Equal(t, 50, k.Score)
	assert.False(t, k.Passed)
}

func TestSecurityScoreClampsAtZero(t *testing.T) {
	in := perfectInput()
	findings := make([]model.SecurityFinding, 5)
	for i := range findings {
		findings[i] = model.SecurityFinding{Severity: severity.Critical, Location: "Line 1"}
	}
	in.Security = model.SecurityScanResult{MaxSeverity: severity.Critical, Findings: findings}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	k := kpiByName(t, res, KPISecurity)
	assert.Equal(t, 0, k.Score)
}

func TestContentPenaltiesStack(t *testing.T) {
	in := perfectInput()
	in.Content = model.ContentMetrics{WordCount: 10, LineCount: 600, OverLineBudget: true, RecommendedMax: 500}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	k := kpiByName(t, res, KPIContent)
	assert.Equal(t, 100-40-15-10-10, k.Score)
	assert.False(t, k.Passed)
}

func TestContentThinVersusTiny(t *testing.T) {
	in := perfectInput()
	in.Content = model.ContentMetrics{WordCount: 30, HasExamples: true, HasSteps: true, RecommendedMax: 500}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	assert.Equal(t, 80, kpiByName(t, res, KPIContent).Score)
}

func TestTestingPenalties(t *testing.T) {
	in := perfectInput()
	in.Testing = model.TestingResult{
		TestCases:        0,
		HasDependencies:  true,
		DependencyIssues: []string{"requires unknown skill \"ghost\""},
	}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	k := kpiByName(t, res, KPITesting)
	// -30 no tests, -10 dep issue, -20 deps without tests.
	assert.Equal(t, 40, k.Score)
	assert.False(t, k.Passed)
	assert.True(t, res.Passed, "testing weight is below the gate threshold")
}

func TestFewTestsIsMilder(t *testing.T) {
	in := perfectInput()
	in.Testing = model.TestingResult{TestCases: 2}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	assert.Equal(t, 90, kpiByName(t, res, KPITesting).Score)
}

func TestOriginalityDeductionsAccumulate(t *testing.T) {
	in := perfectInput()
	in.Duplicates = []model.DuplicateMatch{
		{Name: "other", MatchType: model.MatchExactName, Similarity: 1},
		{Name: "other", MatchType: model.MatchContentHash, Similarity: 1},
	}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	k := kpiByName(t, res, KPIOriginality)
	assert.Equal(t, 0, k.Score, "exact name plus content hash clamps to zero")
	assert.False(t, k.Passed)
	assert.True(t, res.Passed, "originality weight is below the gate threshold")
}

func TestSimilarNameDeductionScalesWithSimilarity(t *testing.T) {
	in := perfectInput()
	in.Duplicates = []model.DuplicateMatch{{Name: "near", MatchType: model.MatchSimilarName, Similarity: 0.5}}
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	assert.Equal(t, 90, kpiByName(t, res, KPIOriginality).Score)
}

func TestZeroTotalWeightIsDegenerateButDefined(t *testing.T) {
	res := Calculate(perfectInput(), Weights{}, DefaultMinimumScore)
	assert.Equal(t, 0, res.GlobalScore)
	assert.False(t, res.Passed)
}

func TestGlobalScoreIsWeightedAverage(t *testing.T) {
	in := perfectInput()
	in.Testing = model.TestingResult{TestCases: 0} // testing KPI = 70
	res := Calculate(in, DefaultWeights, DefaultMinimumScore)
	// (100*30 + 100*25 + 100*20 + 70*15 + 100*10) / 100 = 95.5 -> 96
	assert.Equal(t, 96, res.GlobalScore)
	assert.True(t, res.Passed)
}

func kpiByName(t *testing.T, res model.ScoreResult, name string) model.KPIScore {
	t.Helper()
	for _, k := range res.KPIs {
		if k.Name == name {
			return k
		}
	}
	t.Fatalf("kpi %s not found", name)
	return model.KPIScore{}
}
