package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Operation represents a single replacement within a transaction.
// Start and End are byte offsets into the text the operation applies to.
type Operation struct {
	Start   int64  // Inclusive start of the replaced range
	End     int64  // Exclusive end of the replaced range
	OldText string // Text that was replaced (for undo)
	NewText string // Text that was inserted (for redo)
}

// Delta returns the change in document length.
func (op Operation) Delta() int64 {
	return int64(len(op.NewText)) - (op.End - op.Start)
}

// IsNoop returns true if this operation makes no changes.
func (op Operation) IsNoop() bool {
	return op.OldText == op.NewText
}

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	return fmt.Sprintf("Replace[%d:%d) %q -> %q", op.Start, op.End, op.OldText, op.NewText)
}

// Transaction groups the operations of one committed edit.
type Transaction struct {
	ID         string
	Name       string
	Operations []Operation
	Timestamp  time.Time
}

// NewTransaction creates a transaction from ops.
// The operations are copied and sorted by start offset.
func NewTransaction(name string, ops []Operation) *Transaction {
	sorted := make([]Operation, len(ops))
	copy(sorted, ops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	return &Transaction{
		ID:         uuid.NewString(),
		Name:       name,
		Operations: sorted,
		Timestamp:  time.Now(),
	}
}

// Invert returns the transaction that undoes t.
// The inverse operations are expressed in the coordinates of the text after
// t was applied.
func (t *Transaction) Invert() *Transaction {
	inv := make([]Operation, len(t.Operations))

	var shift int64
	for i, op := range t.Operations {
		start := op.Start + shift
		inv[i] = Operation{
			Start:   start,
			End:     start + int64(len(op.NewText)),
			OldText: op.NewText,
			NewText: op.OldText,
		}
		shift += op.Delta()
	}

	return &Transaction{
		ID:         t.ID,
		Name:       t.Name,
		Operations: inv,
		Timestamp:  t.Timestamp,
	}
}

// IsNoop returns true if no operation in t changes text.
func (t *Transaction) IsNoop() bool {
	for _, op := range t.Operations {
		if !op.IsNoop() {
			return false
		}
	}
	return true
}
