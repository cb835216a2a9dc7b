package book

import "hash/crc32"

// SnapshotSchemaVersion is bumped whenever OrderSnapshot's shape changes
// in a backward-incompatible way.
const SnapshotSchemaVersion = 1

// OrderSnapshot is one resting order as captured by Snapshot, in level
// (time) order.
type OrderSnapshot struct {
	ID    OrderId
	Side  Side
	Price Price
	Qty   Quantity
}

// Snapshot is the full captured state of an OrderBook: enough to rebuild
// an identical book with Restore. This is an optional capability — the
// engine's matching path never calls it — kept for hosts that want to
// persist/restore state between runs (Non-goals in spec.md exclude
// automatic crash recovery, not an opt-in capability used by the caller).
type Snapshot struct {
	SchemaVersion int
	NextID        uint64
	Bids          []OrderSnapshot // best (highest) price first, oldest order first within a level
	Asks          []OrderSnapshot // best (lowest) price first, oldest order first within a level
	Checksum      uint32
}

// TakeSnapshot captures the current book state.
func (ob *OrderBook) TakeSnapshot() *Snapshot {
	snap := &Snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		NextID:        ob.nextID,
		Bids:          ob.sideToSnapshot(ob.bids),
		Asks:          ob.sideToSnapshot(ob.asks),
	}
	snap.Checksum = snap.computeChecksum()
	return snap
}

func (ob *OrderBook) sideToSnapshot(sb *sideBook) []OrderSnapshot {
	var out []OrderSnapshot
	for el := sb.levels.Front(); el != nil; el = el.Next() {
		lv := el.Value.(*level)
		for _, idx := range lv.indices {
			slot := ob.arena.get(idx)
			out = append(out, OrderSnapshot{ID: slot.id, Side: slot.side, Price: slot.price, Qty: slot.qty})
		}
	}
	return out
}

// computeChecksum is a CRC32 over the snapshot's order fields, in the
// exact order they'll be replayed by Restore.
func (s *Snapshot) computeChecksum() uint32 {
	h := crc32.NewIEEE()
	var buf [8]byte
	writeOrders := func(orders []OrderSnapshot) {
		for _, o := range orders {
			putUint64(buf[:], uint64(o.ID))
			h.Write(buf[:])
			putUint64(buf[:], uint64(o.Price))
			h.Write(buf[:])
			putUint64(buf[:], uint64(o.Qty))
			h.Write(buf[:])
			h.Write([]byte{byte(o.Side)})
		}
	}
	writeOrders(s.Bids)
	writeOrders(s.Asks)
	return h.Sum32()
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// Restore rebuilds an OrderBook from a Snapshot. It returns a nil book and
// ErrSnapshotVersion if the schema version is unsupported, or a nil book
// and ErrSnapshotCorrupt if the checksum does not match.
func Restore(snap *Snapshot) (*OrderBook, error) {
	if snap.SchemaVersion != SnapshotSchemaVersion {
		return nil, ErrSnapshotVersion
	}
	if snap.computeChecksum() != snap.Checksum {
		return nil, ErrSnapshotCorrupt
	}

	ob := NewOrderBook(WithArenaCapacityHint(len(snap.Bids) + len(snap.Asks)))
	ob.nextID = snap.NextID

	restoreSide := func(orders []OrderSnapshot, sb *sideBook) {
		for _, o := range orders {
			idx := ob.arena.alloc()
			*ob.arena.get(idx) = orderSlot{id: o.ID, side: o.Side, price: o.Price, qty: o.Qty, active: true}
			ob.index[o.ID] = idx
			sb.levelAt(o.Price).pushBack(idx, o.Qty)
		}
	}
	restoreSide(snap.Bids, ob.bids)
	restoreSide(snap.Asks, ob.asks)

	return ob, nil
}
