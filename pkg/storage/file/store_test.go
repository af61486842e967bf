package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/streamkas/streamkas/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStreamsMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "streams.json"))

	streams, err := store.LoadStreams(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, streams)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "streams.json"))

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	streams := []models.Stream{
		{
			Id:          "stream-1",
			Recipient:   "kaspatest:qz0s22ece8ej08hcqp0wxkg2v5kjqmzjvm0vxyz0",
			CreatedAt:   created,
			TotalAmount: 10_000_000_000,
			AmountSent:  2_500_000_000,
			FlowRate:    2_500_000_000,
			Interval:    15 * time.Second,
			Duration:    time.Minute,
			NumPayments: 4,
			Status:      models.StreamPaused,
			History: []models.StreamTransaction{
				{TxID: "aaaa", Amount: 2_500_000_000, Timestamp: created, OnChainStatus: models.TxAccepted},
			},
			Color: "#49EACB",
		},
		{Id: "stream-2", Status: models.StreamPending},
	}

	require.NoError(t, store.SaveStreams(context.Background(), streams))

	loaded, err := store.LoadStreams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, streams, loaded)
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "streams.json"))
	ctx := context.Background()

	require.NoError(t, store.SaveStreams(ctx, []models.Stream{{Id: "a"}, {Id: "b"}}))
	require.NoError(t, store.SaveStreams(ctx, []models.Stream{{Id: "a"}}))

	loaded, err := store.LoadStreams(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "a", loaded[0].Id)
}

func TestSaveNilWritesEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streams.json")
	store := New(path)

	require.NoError(t, store.SaveStreams(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streams.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := New(path)
	_, err := store.LoadStreams(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode streams file")
}
