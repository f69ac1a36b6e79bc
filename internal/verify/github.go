package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type githubVerifier struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	sleep      func(time.Duration)
}

var githubTokenPrefixes = []string{"ghp_", "github_pat_", "gho_", "ghu_", "ghs_"}

func newGitHubVerifier() Verifier {
	return githubVerifier{
		baseURL:    "https://api.github.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        func() time.Time { return time.Now().UTC() },
		sleep:      time.Sleep,
	}
}

func (githubVerifier) Name() string { return "github" }

func (githubVerifier) CanVerify(secret string) bool {
	for _, prefix := range githubTokenPrefixes {
		if strings.HasPrefix(secret, prefix) {
			return true
		}
	}
	return false
}

// Verify hits the /user endpoint with the token. A 401 means the token was
// revoked; any other non-200 is a hard error.
func (v githubVerifier) Verify(ctx context.Context, secret string) (*Result, error) {
	if strings.Contains(secret, "...") {
		return nil, fmt.Errorf("redacted token cannot be verified")
	}
	status, body, err := v.doRequestWithRetry(ctx, v.baseURL+"/user", secret)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return &Result{Active: false, Method: "github-user-api", CheckedAt: v.now()}, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("github verify status=%d", status)
	}

	var payload struct {
		Login string `json:"login"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	return &Result{
		Active: true,
		Method: "github-user-api",
		Details: map[string]string{
			"username": payload.Login,
		},
		CheckedAt: v.now(),
	}, nil
}

func (v githubVerifier) doRequestWithRetry(ctx context.Context, url string, token string) (int, []byte, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		status, body, err := v.doRequest(ctx, url, token)
		if err == nil {
			return status, body, nil
		}
		lastErr = err
		v.sleep(time.Duration(attempt*attempt) * 300 * time.Millisecond)
	}
	return 0, nil, lastErr
}

func (v githubVerifier) doRequest(ctx context.Context, url string, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "token "+token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "skillhawk")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
