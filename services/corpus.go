package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"virtualta/models"
)

// LoadCorpus reads a JSON array of records from path. A missing or
// malformed file is an error; the caller is expected to refuse to start.
func LoadCorpus(path string) ([]models.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return ParseCorpus(b)
}

func ParseCorpus(b []byte) ([]models.Record, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New("parse corpus: expected a JSON array")
	}

	var records []models.Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	return records, nil
}
