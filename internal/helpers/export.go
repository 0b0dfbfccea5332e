package helpers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveStatsToJSON writes an aggregation result to a JSON file, creating
// the parent directory when missing.
func SaveStatsToJSON(path string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %v", err)
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export data: %v", err)
	}

	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}

	return nil
}

// ReadSeedFile loads a JSON array of documents for seeding. A missing
// file is not an error; it returns nil so the caller can fall back to
// generated fixtures.
func ReadSeedFile(path string) ([]map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	var docs []map[string]interface{}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}

	return docs, nil
}
