package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/skillhawk/skillhawk/internal/model"
)

// GitleaksDetector shells out to a locally installed gitleaks binary. The
// content is written to a fresh temp directory so the tool never touches
// the caller's working tree.
type GitleaksDetector struct {
	binary   string
	timeout  time.Duration
	lookPath func(string) (string, error)
}

func NewGitleaksDetector(timeout time.Duration) *GitleaksDetector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GitleaksDetector{binary: "gitleaks", timeout: timeout, lookPath: exec.LookPath}
}

func (*GitleaksDetector) Name() string { return "gitleaks" }

func (d *GitleaksDetector) Available() bool {
	_, err := d.lookPath(d.binary)
	return err == nil
}

type gitleaksReportEntry struct {
	Description string `json:"Description"`
	RuleID      string `json:"RuleID"`
	Secret      string `json:"Secret"`
	Match       string `json:"Match"`
	StartLine   int    `json:"StartLine"`
}

func (d *GitleaksDetector) Detect(ctx context.Context, content string, pathHint string) ([]model.SecurityFinding, error) {
	dir, err := os.MkdirTemp("", "skillhawk-gitleaks-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	target := filepath.Join(dir, scratchName(pathHint))
	if err := os.WriteFile(target, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("write scratch file: %w", err)
	}
	reportPath := filepath.Join(dir, "report.json")

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.binary,
		"detect", "--no-git", "--no-banner",
		"--source", dir,
		"--report-format", "json",
		"--report-path", reportPath,
	)
	if err := cmd.Run(); err != nil {
		// Exit code 1 means leaks were found; the report is still written.
		var ee *exec.ExitError
		if !errors.As(err, &ee) || ee.ExitCode() != 1 {
			return nil, fmt.Errorf("gitleaks: %w", err)
		}
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		return nil, fmt.Errorf("read gitleaks report: %w", err)
	}
	var entries []gitleaksReportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse gitleaks report: %w", err)
	}

	findings := make([]model.SecurityFinding, 0, len(entries))
	for _, e := range entries {
		secretType := e.Description
		if secretType == "" {
			secretType = e.RuleID
		}
		matched := e.Secret
		if matched == "" {
			matched = e.Match
		}
		findings = append(findings, secretFinding(d.Name(), secretType, e.StartLine, matched, ConfidenceTool))
	}
	return findings, nil
}

// scratchName keeps the path hint's extension so tools apply the right
// per-filetype rules, without trusting the hint as a path.
func scratchName(pathHint string) string {
	base := filepath.Base(pathHint)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "SKILL.md"
	}
	return base
}
