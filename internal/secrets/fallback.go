package secrets

import (
	"bufio"
	"context"
	"regexp"
	"strings"

	"github.com/skillhawk/skillhawk/internal/model"
)

// FallbackDetector is the always-available built-in pattern catalog, used
// when neither external tool is installed. It cannot verify secrets, so its
// confidence is lower than the tool-backed detectors.
type FallbackDetector struct{}

func NewFallbackDetector() *FallbackDetector { return &FallbackDetector{} }

func (*FallbackDetector) Name() string    { return "pattern-fallback" }
func (*FallbackDetector) Available() bool { return true }

type secretPattern struct {
	Type  string
	Regex *regexp.Regexp
}

var secretPatterns = []secretPattern{
	{"AWS access key ID", regexp.MustCompile(`\b(A3T[A-Z0-9]|AKIA|ASIA|ABIA|ACCA)[0-9A-Z]{16}\b`)},
	{"AWS secret access key", regexp.MustCompile(`(?i)aws[^\n]{0,20}['"][0-9A-Za-z/+]{40}['"]`)},
	{"GitHub personal access token", regexp.MustCompile(`\bghp_[0-9A-Za-z]{36}\b`)},
	{"GitHub fine-grained token", regexp.MustCompile(`\bgithub_pat_[0-9A-Za-z_]{82}\b`)},
	{"GitHub OAuth token", regexp.MustCompile(`\bgho_[0-9A-Za-z]{36}\b`)},
	{"GitHub app token", regexp.MustCompile(`\b(ghu|ghs)_[0-9A-Za-z]{36}\b`)},
	{"GitLab personal access token", regexp.MustCompile(`\bglpat-[0-9A-Za-z\-_]{20}\b`)},
	{"Slack token", regexp.MustCompile(`\bxox[baprs]-[0-9A-Za-z\-]{10,}\b`)},
	{"Slack webhook", regexp.MustCompile(`hooks\.slack\.com/services/T[0-9A-Za-z]+/B[0-9A-Za-z]+/[0-9A-Za-z]+`)},
	{"Stripe secret key", regexp.MustCompile(`\b(sk|rk)_live_[0-9A-Za-z]{24,}\b`)},
	{"Google API key", regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{35}\b`)},
	{"GCP service account", regexp.MustCompile(`"type"\s*:\s*"service_account"`)},
	{"OpenAI API key", regexp.MustCompile(`\bsk-[A-Za-z0-9]{20}T3BlbkFJ[A-Za-z0-9]{20}\b`)},
	{"Anthropic API key", regexp.MustCompile(`\bsk-ant-[A-Za-z0-9\-_]{24,}\b`)},
	{"JSON web token", regexp.MustCompile(`\beyJ[A-Za-z0-9_\-]{10,}\.[A-Za-z0-9_\-]{10,}\.[A-Za-z0-9_\-]{5,}\b`)},
	{"Private key PEM block", regexp.MustCompile(`-----BEGIN (RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY( BLOCK)?-----`)},
	{"PostgreSQL connection string with credentials", regexp.MustCompile(`postgres(ql)?://[^:\s/]+:[^@\s]+@`)},
	{"MySQL connection string with credentials", regexp.MustCompile(`mysql://[^:\s/]+:[^@\s]+@`)},
	{"MongoDB connection string with credentials", regexp.MustCompile(`mongodb(\+srv)?://[^:\s/]+:[^@\s]+@`)},
	{"Redis connection string with credentials", regexp.MustCompile(`rediss?://[^@\s]*:[^@\s]+@`)},
	{"SendGrid API key", regexp.MustCompile(`\bSG\.[0-9A-Za-z\-_]{22}\.[0-9A-Za-z\-_]{43}\b`)},
	{"Twilio API key", regexp.MustCompile(`\bSK[0-9a-fA-F]{32}\b`)},
	{"npm access token", regexp.MustCompile(`\bnpm_[A-Za-z0-9]{36}\b`)},
	{"PyPI upload token", regexp.MustCompile(`\bpypi-AgEIcHlwaS5vcmc[A-Za-z0-9\-_]{50,}\b`)},
	{"Telegram bot token", regexp.MustCompile(`\b\d{8,10}:AA[0-9A-Za-z\-_]{33}\b`)},
	{"Hugging Face token", regexp.MustCompile(`\bhf_[A-Za-z0-9]{34}\b`)},
	{"Azure storage account key", regexp.MustCompile(`AccountKey=[A-Za-z0-9+/=]{88}`)},
	{"Discord webhook", regexp.MustCompile(`discord(app)?\.com/api/webhooks/\d+/[0-9A-Za-z\-_]+`)},
	{"Generic API key assignment", regexp.MustCompile(`(?i)(api[_\-]?key|secret|token|password|passwd)\s*[:=]\s*['"]?[A-Za-z0-9\-_/+]{16,}['"]?`)},
}

// Values matching these markers are documentation placeholders, not leaked
// credentials.
var placeholderMarkers = []string{
	"your-", "your_", "<", ">", "{{", "}}", "xxx", "example", "sample",
	"placeholder", "changeme", "change-me", "change_me", "todo", "fixme",
	"dummy", "insert-", "replace-", "...",
}

func isPlaceholder(value string) bool {
	v := strings.ToLower(value)
	for _, marker := range placeholderMarkers {
		if strings.Contains(v, marker) {
			return true
		}
	}
	return false
}

// Detect scans content line by line against the built-in credential
// patterns, suppressing placeholder values.
func (d *FallbackDetector) Detect(ctx context.Context, content string, pathHint string) ([]model.SecurityFinding, error) {
	_ = pathHint
	findings := make([]model.SecurityFinding, 0)
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		line := scanner.Text()
		for _, sp := range secretPatterns {
			match := sp.Regex.FindString(line)
			if match == "" {
				continue
			}
			if isPlaceholder(match) {
				continue
			}
			findings = append(findings, secretFinding(d.Name(), sp.Type, lineNo, match, ConfidenceFallback))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return findings, nil
}
