package storage

import (
	"context"

	"github.com/streamkas/streamkas/pkg/models"
)

// StreamLoader defines the interface for reading the persisted stream set.
type StreamLoader interface {
	// LoadStreams returns every persisted stream in creation order.
	LoadStreams(ctx context.Context) ([]models.Stream, error)
}

// StreamSaver defines the interface for writing the persisted stream set.
type StreamSaver interface {
	// SaveStreams overwrites the full persisted set with the given snapshot.
	// Snapshot writes keep a partially applied mutation from ever being
	// observable on disk.
	SaveStreams(ctx context.Context, streams []models.Stream) error
}

// StreamStore combines the loader and saver interfaces. The engine depends
// on this; components that only read should depend on StreamLoader.
type StreamStore interface {
	StreamLoader
	StreamSaver
}
