// Package verify checks whether credentials found in skill content are
// still live, so a maintainer can tell an active leak from a stale one.
// Verification runs after scanning and only on request; a confirmed live
// credential raises the finding's confidence and notes the provider.
package verify

import (
	"context"
	"fmt"
	"time"
)

// Result is the outcome of checking one credential.
type Result struct {
	Active    bool              `json:"active"`
	Method    string            `json:"method"`
	Details   map[string]string `json:"details,omitempty"`
	CheckedAt time.Time         `json:"checked_at"`
}

// Verifier checks credentials of one provider.
type Verifier interface {
	Name() string
	// CanVerify reports whether the secret's shape belongs to this provider.
	CanVerify(secret string) bool
	Verify(ctx context.Context, secret string) (*Result, error)
}

// Registry lists the available verifiers.
func Registry() []Verifier {
	return []Verifier{
		newAWSVerifier(),
		newGitHubVerifier(),
	}
}

// ByName finds a verifier by provider name.
func ByName(name string) (Verifier, error) {
	for _, v := range Registry() {
		if v.Name() == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("verifier not found: %s", name)
}

// ForSecret returns the first verifier that recognizes the secret's shape,
// or nil when none does.
func ForSecret(secret string) Verifier {
	for _, v := range Registry() {
		if v.CanVerify(secret) {
			return v
		}
	}
	return nil
}
