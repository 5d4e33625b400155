package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sadopc/punchclock/internal/record"
)

// FileName is the name exported logs are written under.
const FileName = "checkinData.json"

// DefaultPath returns dir/checkinData.json.
func DefaultPath(dir string) string {
	return filepath.Join(dir, FileName)
}

// WriteJSON writes the log as a single compact JSON array, with no wrapper
// object and no indentation, so the file can be imported again as is.
func WriteJSON(records []record.Record, path string) error {
	data, err := record.Encode(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename json file: %w", err)
	}
	return nil
}

// ReadJSON loads a user-selected export file and validates its shape.
// Validation failures wrap record.ErrValidation.
func ReadJSON(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	records, err := record.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", filepath.Base(path), err)
	}
	return records, nil
}
