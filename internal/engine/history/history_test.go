package history

import (
	"errors"
	"testing"
)

// stringTarget applies operations to a plain string.
type stringTarget struct {
	text string
	fail error
}

func (s *stringTarget) ApplyOperations(ops []Operation) error {
	if s.fail != nil {
		return s.fail
	}
	// Operations are sorted ascending; apply from the end so offsets stay valid.
	text := s.text
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		text = text[:op.Start] + op.NewText + text[op.End:]
	}
	s.text = text
	return nil
}

func swapTransaction() *Transaction {
	// "a bb" -> "bb a"
	return NewTransaction("swap", []Operation{
		{Start: 2, End: 4, OldText: "bb", NewText: "a"},
		{Start: 0, End: 1, OldText: "a", NewText: "bb"},
	})
}

func TestNewTransactionSortsOperations(t *testing.T) {
	tx := swapTransaction()

	if tx.ID == "" {
		t.Error("transaction should have an ID")
	}
	if tx.Operations[0].Start != 0 || tx.Operations[1].Start != 2 {
		t.Errorf("operations not sorted: %v", tx.Operations)
	}
}

func TestTransactionInvert(t *testing.T) {
	tx := swapTransaction()
	inv := tx.Invert()

	want := []Operation{
		{Start: 0, End: 2, OldText: "bb", NewText: "a"},
		{Start: 3, End: 4, OldText: "a", NewText: "bb"},
	}
	if len(inv.Operations) != len(want) {
		t.Fatalf("expected %d operations, got %d", len(want), len(inv.Operations))
	}
	for i, op := range inv.Operations {
		if op != want[i] {
			t.Errorf("op %d: expected %v, got %v", i, want[i], op)
		}
	}
	if inv.ID != tx.ID {
		t.Error("inverse should keep the transaction ID")
	}
}

func TestTransactionIsNoop(t *testing.T) {
	tx := NewTransaction("same", []Operation{{Start: 0, End: 1, OldText: "x", NewText: "x"}})
	if !tx.IsNoop() {
		t.Error("identical replacement should be a no-op")
	}
	if swapTransaction().IsNoop() {
		t.Error("swap should not be a no-op")
	}
}

func TestHistoryUndoRedo(t *testing.T) {
	target := &stringTarget{text: "a bb"}
	tx := swapTransaction()
	if err := target.ApplyOperations(tx.Operations); err != nil {
		t.Fatal(err)
	}
	if target.text != "bb a" {
		t.Fatalf("expected 'bb a', got %q", target.text)
	}

	h := NewHistory(10)
	h.Push(tx)

	if !h.CanUndo() {
		t.Fatal("should be able to undo")
	}
	if _, err := h.Undo(target); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if target.text != "a bb" {
		t.Errorf("after undo expected 'a bb', got %q", target.text)
	}
	if h.UndoCount() != 0 || h.RedoCount() != 1 {
		t.Errorf("unexpected stack sizes: undo=%d redo=%d", h.UndoCount(), h.RedoCount())
	}

	if _, err := h.Redo(target); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if target.text != "bb a" {
		t.Errorf("after redo expected 'bb a', got %q", target.text)
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(0)
	target := &stringTarget{}

	if _, err := h.Undo(target); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if _, err := h.Redo(target); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
	if h.MaxEntries() != DefaultMaxEntries {
		t.Errorf("expected default max entries %d, got %d", DefaultMaxEntries, h.MaxEntries())
	}
}

func TestHistoryUndoFailureRestoresEntry(t *testing.T) {
	boom := errors.New("boom")
	target := &stringTarget{text: "bb a", fail: boom}

	h := NewHistory(10)
	h.Push(swapTransaction())

	if _, err := h.Undo(target); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if h.UndoCount() != 1 {
		t.Errorf("failed undo should keep the entry, got %d", h.UndoCount())
	}
	if h.CanRedo() {
		t.Error("failed undo should not populate redo")
	}
}

func TestHistoryPushClearsRedo(t *testing.T) {
	target := &stringTarget{text: "bb a"}
	h := NewHistory(10)
	h.Push(swapTransaction())

	if _, err := h.Undo(target); err != nil {
		t.Fatal(err)
	}
	h.Push(NewTransaction("other", nil))

	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Push(NewTransaction("tx", nil))
	}
	if h.UndoCount() != 3 {
		t.Errorf("expected 3 entries, got %d", h.UndoCount())
	}

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("clear should empty both stacks")
	}
}

func TestTargetFunc(t *testing.T) {
	var got []Operation
	f := TargetFunc(func(ops []Operation) error {
		got = ops
		return nil
	})

	ops := []Operation{{Start: 1, End: 2, NewText: "x"}}
	if err := f.ApplyOperations(ops); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].NewText != "x" {
		t.Errorf("unexpected operations: %v", got)
	}
}
