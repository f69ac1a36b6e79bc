package secrets

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/skillhawk/skillhawk/internal/model"
)

// TrufflehogDetector shells out to a locally installed trufflehog binary
// and parses its newline-delimited JSON output from stdout.
type TrufflehogDetector struct {
	binary   string
	timeout  time.Duration
	lookPath func(string) (string, error)
}

func NewTrufflehogDetector(timeout time.Duration) *TrufflehogDetector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TrufflehogDetector{binary: "trufflehog", timeout: timeout, lookPath: exec.LookPath}
}

func (*TrufflehogDetector) Name() string { return "trufflehog" }

func (d *TrufflehogDetector) Available() bool {
	_, err := d.lookPath(d.binary)
	return err == nil
}

type trufflehogEntry struct {
	DetectorName   string `json:"DetectorName"`
	Raw            string `json:"Raw"`
	Verified       bool   `json:"Verified"`
	SourceMetadata struct {
		Data struct {
			Filesystem struct {
				Line int `json:"line"`
			} `json:"Filesystem"`
		} `json:"Data"`
	} `json:"SourceMetadata"`
}

func (d *TrufflehogDetector) Detect(ctx context.Context, content string, pathHint string) ([]model.SecurityFinding, error) {
	dir, err := os.MkdirTemp("", "skillhawk-trufflehog-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	target := filepath.Join(dir, scratchName(pathHint))
	if err := os.WriteFile(target, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("write scratch file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.binary, "filesystem", dir, "--json", "--no-update")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		// Nonzero exit with findings on stdout is still a usable result
		// (trufflehog exits nonzero under --fail); only a spawn or timeout
		// failure with no output is fatal.
		var ee *exec.ExitError
		if !errors.As(err, &ee) || stdout.Len() == 0 {
			return nil, fmt.Errorf("trufflehog: %w", err)
		}
	}

	findings := make([]model.SecurityFinding, 0)
	scanner := bufio.NewScanner(&stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}
		var e trufflehogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("parse trufflehog output: %w", err)
		}
		if e.DetectorName == "" && e.Raw == "" {
			continue
		}
		confidence := ConfidenceTool
		secretType := e.DetectorName
		if e.Verified {
			confidence = ConfidenceVerified
			secretType += " (verified)"
		}
		findings = append(findings, secretFinding(d.Name(), secretType, e.SourceMetadata.Data.Filesystem.Line, e.Raw, confidence))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return findings, nil
}
