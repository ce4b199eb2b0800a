package buffer

import (
	"fmt"
	"sync/atomic"
)

// ByteOffset represents a byte position in the buffer.
// This is the fundamental position type, directly indexing into the text.
type ByteOffset = int64

// RevisionID uniquely identifies a buffer revision.
// Each committed edit creates a new revision.
type RevisionID uint64

// String returns a human-readable representation of the revision.
func (r RevisionID) String() string {
	return fmt.Sprintf("r%d", uint64(r))
}

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
// This is thread-safe using atomic operations.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
