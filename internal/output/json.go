package output

import (
	"encoding/json"
	"io"

	"github.com/skillhawk/skillhawk/internal/analyze"
)

func renderJSON(w io.Writer, batch analyze.BatchReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(batch)
}
