package verify

import (
	"context"
	"log/slog"

	"github.com/skillhawk/skillhawk/internal/model"
	"github.com/skillhawk/skillhawk/internal/taxonomy"
)

// AnnotateFindings probes each secret finding that still carries its raw
// credential against the first verifier recognizing its shape. A confirmed
// live credential is marked with full confidence; probe failures are logged
// and leave the finding untouched.
func AnnotateFindings(ctx context.Context, findings []model.SecurityFinding, verifiers []Verifier) {
	for i := range findings {
		f := &findings[i]
		if f.Category != taxonomy.SecretsCategory || f.Secret == "" {
			continue
		}
		for _, v := range verifiers {
			if !v.CanVerify(f.Secret) {
				continue
			}
			res, err := v.Verify(ctx, f.Secret)
			if err != nil {
				slog.Warn("secret verification failed", "provider", v.Name(), "error", err)
				break
			}
			if res.Active {
				f.Confidence = 1.0
				f.Description += " (verified active via " + v.Name() + ")"
			}
			break
		}
	}
}
