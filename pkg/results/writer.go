// Package results persists fetched grant rows to JSON files.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/candid-tools/grants-fetcher/pkg/logging"
)

// document is the on-disk shape of a result file.
type document struct {
	Grants []json.RawMessage `json:"grants"`
}

// Writer writes accumulated grant rows into a directory.
type Writer struct {
	dir    string
	logger zerolog.Logger
}

// NewWriter creates a writer rooted at dir. An empty dir means the current
// working directory.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{
		dir:    dir,
		logger: logging.NewLogger("results"),
	}
}

// Filename returns the result file name for a prefix and page range:
// {prefix}_pages_{start}-{end}.json.
func Filename(prefix string, pageStart, pageEnd int) string {
	return fmt.Sprintf("%s_pages_%d-%d.json", prefix, pageStart, pageEnd)
}

// Write stores grants as {"grants": [...]}, pretty-printed with 2-space
// indentation, and returns the path written. A nil slice writes an empty
// grants array rather than null.
func (w *Writer) Write(grants []json.RawMessage, prefix string, pageStart, pageEnd int) (string, error) {
	if grants == nil {
		grants = []json.RawMessage{}
	}

	data, err := json.MarshalIndent(document{Grants: grants}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal grants: %w", err)
	}

	path := filepath.Join(w.dir, Filename(prefix, pageStart, pageEnd))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write results file: %w", err)
	}

	w.logger.Info().
		Str("path", path).
		Int("rows", len(grants)).
		Msg("Grants data saved")

	return path, nil
}
