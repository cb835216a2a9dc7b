package book

import "errors"

// The matching engine's own operations are total: invalid input produces
// a defined no-op result, never an error. These sentinels are for the
// boundary layers this repo adds around the engine — snapshotting and
// restore.
var (
	ErrSnapshotCorrupt = errors.New("book: snapshot checksum mismatch")
	ErrSnapshotVersion = errors.New("book: unsupported snapshot schema version")
)
