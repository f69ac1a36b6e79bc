// Package guard integrates an optional remote content classifier for
// prompt-injection style threats. Guard failures never fail a scan; they
// are logged and coerced to zero findings at the scanner boundary.
package guard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/skillhawk/skillhawk/internal/model"
	"github.com/skillhawk/skillhawk/internal/severity"
	"github.com/skillhawk/skillhawk/internal/taxonomy"
)

// Confidence assigned to guard classifications; the guard is treated as a
// high-trust detector.
const Confidence = 0.95

// DetectorName identifies guard findings in scan output.
const DetectorName = "remote-guard"

// categoryMap translates the guard's breakdown categories into the local
// taxonomy. Unmapped categories fall back to prompt injection.
var categoryMap = map[string]string{
	"prompt_injection": taxonomy.PromptInjection,
	"jailbreak":        taxonomy.PromptInjection,
	"unknown_links":    taxonomy.TransitiveTrust,
	"pii":              taxonomy.DataExfiltration,
	"sensitive_info":   taxonomy.DataExfiltration,
	"malicious_code":   taxonomy.CodeInjection,
}

// Client talks to the remote guard endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithEndpoint overrides the classification endpoint URL.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithTimeout bounds one classification request. Non-positive values keep
// the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New builds a guard client. The client is disabled (Enabled() == false)
// when no API key is supplied.
func New(endpoint string, apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether the guard is configured with a credential.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.endpoint != ""
}

type classifyRequest struct {
	Messages  []message `json:"messages"`
	Breakdown bool      `json:"breakdown"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type classifyResponse struct {
	Flagged   bool                         `json:"flagged"`
	Breakdown map[string]categoryBreakdown `json:"breakdown"`
}

type categoryBreakdown struct {
	Detected bool `json:"detected"`
}

// Classify sends the content to the guard endpoint and maps flagged
// breakdown categories into taxonomy findings. Callers own the
// degrade-to-empty policy; Classify itself returns transport and status
// errors.
func (c *Client) Classify(ctx context.Context, content string) ([]model.SecurityFinding, error) {
	if !c.Enabled() {
		return nil, nil
	}

	payload, err := json.Marshal(classifyRequest{
		Messages:  []message{{Role: "user", Content: content}},
		Breakdown: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("guard classify status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("parse guard response: %w", err)
	}
	if !out.Flagged {
		return nil, nil
	}

	findings := make([]model.SecurityFinding, 0, len(out.Breakdown))
	for guardCat, detail := range out.Breakdown {
		if !detail.Detected {
			continue
		}
		localCat, ok := categoryMap[guardCat]
		if !ok {
			localCat = taxonomy.PromptInjection
		}
		cat := taxonomy.ByID(localCat)
		sev := severity.High
		desc := fmt.Sprintf("Remote guard flagged content: %s", guardCat)
		var techniques []string
		if cat != nil {
			sev = cat.Severity
			techniques = cat.Techniques
		}
		findings = append(findings, model.SecurityFinding{
			Category:     localCat,
			TechniqueIDs: techniques,
			Severity:     sev,
			Description:  desc,
			MatchedText:  guardCat,
			Location:     "content",
			Confidence:   Confidence,
			DetectorName: DetectorName,
		})
	}
	return findings, nil
}
