// Package file persists the stream set as a single JSON document on local
// disk. Writes go through a temp file + rename so a crash mid-write never
// leaves a truncated snapshot behind.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/streamkas/streamkas/pkg/models"
	"github.com/streamkas/streamkas/pkg/storage"
)

// Store implements storage.StreamStore on a local JSON file.
type Store struct {
	Path string
}

// New creates a Store writing to the given path.
func New(path string) *Store {
	return &Store{Path: path}
}

// Make sure we conform to the interface
var _ storage.StreamStore = (*Store)(nil)

// LoadStreams reads the persisted stream set. A missing file is an empty
// set, not an error, so first startup needs no special casing.
func (s *Store) LoadStreams(ctx context.Context) ([]models.Stream, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read streams file: %w", err)
	}

	var streams []models.Stream
	if err := json.Unmarshal(data, &streams); err != nil {
		return nil, fmt.Errorf("failed to decode streams file: %w", err)
	}

	return streams, nil
}

// SaveStreams overwrites the full persisted set.
func (s *Store) SaveStreams(ctx context.Context, streams []models.Stream) error {
	if streams == nil {
		streams = []models.Stream{}
	}

	data, err := json.MarshalIndent(streams, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode streams: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".streams-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace streams file: %w", err)
	}

	return nil
}
