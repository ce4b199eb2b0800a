// Package buffer provides the text store targeted by editor commands.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Immutable snapshots that never observe later edits
//   - Spans: immutable (start, length) references into one snapshot
//   - Scoped edit transactions that commit a batch of replacements atomically
//   - Line ending normalization
//   - Undo/redo of committed transactions
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("foo bar baz")
//	snap := buf.Snapshot()
//
//	first, _ := snap.Span(0, 3)  // "foo"
//	second, _ := snap.Span(8, 11) // "baz"
//
//	edit := buf.CreateEdit()
//	_ = edit.Replace(first, second.Text())
//	_ = edit.Replace(second, first.Text())
//	if _, err := edit.Apply(); err != nil {
//	    // the buffer is unchanged
//	}
//	// buf.Text() == "baz bar foo"
//
// Edit Coordinates:
//
// Every replacement queued on a TextEdit is expressed against the snapshot the
// edit was opened on. Text shifting is deferred until Apply, so the order in
// which replacements are queued never changes the result.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Snapshots and Spans are immutable and
// may be shared freely. A TextEdit must be used from one goroutine.
package buffer
