package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimit(Buy, 99, 5)
	ob.AddLimit(Buy, 98, 2)
	ob.AddLimit(Sell, 101, 3)

	snap := ob.TakeSnapshot()
	restored, err := Restore(snap)
	require.NoError(t, err)

	assert.Equal(t, ob.BestBid(), restored.BestBid())
	assert.Equal(t, ob.BestAsk(), restored.BestAsk())

	// The restored book must still behave like a live book: matching works.
	mr := restored.ExecuteMarket(Buy, 3)
	assert.Equal(t, Quantity(3), mr.Filled)
}

func TestSnapshotDetectsCorruption(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimit(Buy, 99, 5)

	snap := ob.TakeSnapshot()
	snap.Checksum ^= 0xFFFFFFFF

	_, err := Restore(snap)
	assert.ErrorIs(t, err, ErrSnapshotCorrupt)
}

func TestSnapshotRejectsUnknownSchemaVersion(t *testing.T) {
	ob := NewOrderBook()
	snap := ob.TakeSnapshot()
	snap.SchemaVersion = 99

	_, err := Restore(snap)
	assert.ErrorIs(t, err, ErrSnapshotVersion)
}

func TestSnapshotPreservesNextID(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimit(Buy, 100, 1)
	ob.AddLimit(Buy, 100, 1)

	snap := ob.TakeSnapshot()
	restored, err := Restore(snap)
	require.NoError(t, err)

	id, _ := restored.AddLimit(Buy, 100, 1)
	assert.Equal(t, OrderId(3), id)
}
