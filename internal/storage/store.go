// Package storage persists response records as a flat JSON array on disk.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/steadyeval/steady/internal/models"
	"github.com/steadyeval/steady/internal/validation"
)

// Store is the persistence boundary for response records. The evaluation
// engine only ever sees an ordered sequence of records; format and
// durability live behind this interface.
type Store interface {
	// Load returns every stored record in append order. A store that has
	// never been written to returns an empty slice, not an error.
	Load() ([]models.ResponseRecord, error)
	// Append adds one record to the end of the store.
	Append(record models.ResponseRecord) error
	// AppendAll adds records in order, in a single write.
	AppendAll(records []models.ResponseRecord) error
	// Clear removes all stored records.
	Clear() error
}

// JSONStore keeps records as a single pretty-printed JSON array file.
type JSONStore struct {
	path string

	mu sync.Mutex
}

// NewJSONStore creates a store backed by the JSON file at path. The file is
// created on first append.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file path.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the backing file. A missing file is an empty store.
func (s *JSONStore) Load() ([]models.ResponseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JSONStore) load() ([]models.ResponseRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.ResponseRecord{}, nil
		}
		return nil, fmt.Errorf("reading record file: %w", err)
	}

	// Structural violations (not an array, mistyped fields) are load
	// errors. Records merely missing fields pass; the aggregator's
	// tolerance policy owns those.
	if errs := validation.ValidateRecordsBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("record file %s is invalid: %s", s.path, strings.Join(errs, "; "))
	}

	var records []models.ResponseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing record file %s: %w", s.path, err)
	}
	return records, nil
}

// Append adds one record to the end of the file, stamping it with the
// current time when it carries none.
func (s *JSONStore) Append(record models.ResponseRecord) error {
	return s.AppendAll([]models.ResponseRecord{record})
}

// AppendAll adds records in order. The whole file is rewritten: record files
// stay small enough that append-in-place is not worth a custom format.
func (s *JSONStore) AppendAll(records []models.ResponseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		if r.Timestamp == "" {
			r.Timestamp = now
		}
		existing = append(existing, r)
	}

	return s.write(existing)
}

// Clear removes the backing file. Clearing a store that was never written is
// a no-op.
func (s *JSONStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing record file: %w", err)
	}
	return nil
}

func (s *JSONStore) write(records []models.ResponseRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0644)
}
