package ticker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile overwrites path with the pretty-printed document. Encode leaves
// the trailing newline the downstream commit step expects.
func WriteFile(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		file.Close()
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
