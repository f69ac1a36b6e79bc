// Package output renders analysis reports for humans, machines, and CI.
// Rendering never changes computed values; every format shows the same
// result.
package output

import (
	"fmt"
	"io"

	"github.com/skillhawk/skillhawk/internal/analyze"
)

// Supported formats.
const (
	FormatCLI    = "cli"
	FormatJSON   = "json"
	FormatGitHub = "github"
)

// Render writes the batch report in the requested format.
func Render(w io.Writer, format string, batch analyze.BatchReport) error {
	switch format {
	case FormatCLI, "":
		return renderCLI(w, batch)
	case FormatJSON:
		return renderJSON(w, batch)
	case FormatGitHub:
		return renderGitHub(w, batch)
	default:
		return fmt.Errorf("unknown output format: %s (want cli|json|github)", format)
	}
}
