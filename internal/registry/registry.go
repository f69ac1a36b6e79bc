// Package registry maintains a local snapshot of the public skill registry
// for duplicate checking. The snapshot is cached on disk and refreshed when
// stale; a failed refresh is logged and the stale snapshot is served.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/skillhawk/skillhawk/internal/similar"
)

const (
	// StaleAfter is the snapshot age past which a refresh is attempted.
	StaleAfter = 24 * time.Hour

	// DefaultMaxSkills bounds the paginated fetch.
	DefaultMaxSkills = 5000

	pageSize = 100
)

// Entry is one known skill in the registry snapshot.
type Entry struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source"`
	Installs    int       `json:"installs,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Snapshot is the cached registry document.
type Snapshot struct {
	Version     string    `json:"version"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Source      string    `json:"source"`
	TotalSkills int       `json:"totalSkills"`
	Skills      []Entry   `json:"skills"`
}

// Candidates converts snapshot entries for similarity comparison.
func (s *Snapshot) Candidates() []similar.Candidate {
	out := make([]similar.Candidate, 0, len(s.Skills))
	for _, e := range s.Skills {
		out = append(out, similar.Candidate{
			Name:        e.Name,
			Description: e.Description,
			Source:      e.Source,
			ContentHash: e.ContentHash,
		})
	}
	return out
}

// Client fetches and caches registry snapshots.
type Client struct {
	baseURL    string
	cachePath  string
	maxSkills  int
	httpClient *http.Client
	log        *slog.Logger
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithMaxSkills caps how many entries a refresh will page through.
func WithMaxSkills(n int) Option {
	return func(c *Client) { c.maxSkills = n }
}

// WithTimeout bounds one page fetch. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger replaces the client's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New builds a registry client. baseURL is the registry API root; cachePath
// is where the snapshot JSON lives on disk.
func New(baseURL, cachePath string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		cachePath:  cachePath,
		maxSkills:  DefaultMaxSkills,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        slog.Default(),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the freshest snapshot available: the disk cache if still
// current, otherwise a refreshed fetch. A refresh failure falls back to the
// cached snapshot, however stale; only a missing cache plus a failed fetch
// yields an error.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	cached, cacheErr := c.loadCache()
	if cacheErr == nil && !c.stale(cached) {
		return cached, nil
	}

	fresh, err := c.refresh(ctx)
	if err != nil {
		if cacheErr == nil {
			c.log.Warn("registry refresh failed, serving stale snapshot",
				"error", err, "updatedAt", cached.UpdatedAt)
			return cached, nil
		}
		return nil, fmt.Errorf("refresh registry: %w", err)
	}

	if err := c.saveCache(fresh); err != nil {
		c.log.Warn("could not persist registry snapshot", "error", err)
	}
	return fresh, nil
}

func (c *Client) stale(s *Snapshot) bool {
	return c.now().Sub(s.UpdatedAt) > StaleAfter
}

func (c *Client) loadCache() (*Snapshot, error) {
	return LoadCached(c.cachePath)
}

// LoadCached reads a snapshot from disk without touching the network.
func LoadCached(path string) (*Snapshot, error) {
	if path == "" {
		return nil, errors.New("no cache path configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return &s, nil
}

func (c *Client) saveCache(s *Snapshot) error {
	if c.cachePath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.cachePath), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.cachePath, append(payload, '\n'), 0o644)
}

// refresh pages through the registry until an empty page, the reported
// total, or the max-skills cap.
func (c *Client) refresh(ctx context.Context) (*Snapshot, error) {
	now := c.now()
	snapshot := &Snapshot{
		Version:   "1",
		UpdatedAt: now,
		Source:    c.baseURL,
	}

	for page := 1; len(snapshot.Skills) < c.maxSkills; page++ {
		entries, total, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			break
		}
		for i := range entries {
			entries[i].FetchedAt = now
		}
		snapshot.Skills = append(snapshot.Skills, entries...)
		snapshot.TotalSkills = total
		if total > 0 && len(snapshot.Skills) >= total {
			break
		}
	}
	if len(snapshot.Skills) > c.maxSkills {
		snapshot.Skills = snapshot.Skills[:c.maxSkills]
	}
	if snapshot.TotalSkills == 0 {
		snapshot.TotalSkills = len(snapshot.Skills)
	}
	return snapshot, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) ([]Entry, int, error) {
	u, err := url.Parse(c.baseURL + "/skills")
	if err != nil {
		return nil, 0, err
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "skillhawk")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("registry page %d status=%d", page, resp.StatusCode)
	}

	var payload struct {
		Skills []Entry `json:"skills"`
		Total  int     `json:"total"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, 0, fmt.Errorf("parse registry page %d: %w", page, err)
	}
	return payload.Skills, payload.Total, nil
}
