package model

// KPIScore is one scored evaluation domain contributing to the global score.
type KPIScore struct {
	Name    string   `json:"name"`
	Score   int      `json:"score"`
	Weight  int      `json:"weight"`
	Passed  bool     `json:"passed"`
	Details []string `json:"details,omitempty"`
	Issues  []string `json:"issues,omitempty"`
}

// ScoreResult is the weighted aggregate across all KPIs.
type ScoreResult struct {
	GlobalScore int        `json:"global_score"`
	Passed      bool       `json:"passed"`
	KPIs        []KPIScore `json:"kpis"`
	Summary     string     `json:"summary"`
}

// ComplianceResult carries spec-compliance errors and warnings for scoring.
type ComplianceResult struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ContentMetrics carries the content-quality signals for scoring.
type ContentMetrics struct {
	WordCount      int  `json:"word_count"`
	LineCount      int  `json:"line_count"`
	HasExamples    bool `json:"has_examples"`
	HasSteps       bool `json:"has_steps"`
	OverLineBudget bool `json:"over_line_budget"`
	RecommendedMax int  `json:"recommended_max_lines"`
}

// TestingResult carries declared test and dependency signals for scoring.
type TestingResult struct {
	TestCases        int      `json:"test_cases"`
	HasDependencies  bool     `json:"has_dependencies"`
	DependencyIssues []string `json:"dependency_issues,omitempty"`
}
