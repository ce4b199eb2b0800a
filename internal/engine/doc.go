// Package engine provides the editor view the swap command operates on.
//
// An Engine combines a text buffer with an ordered set of selections and
// keeps the two consistent: every edit committed through the engine maps the
// selections through the replacements, and so do Undo and Redo.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: immutable snapshots, spans and scoped edit transactions
//   - cursor: selections, selection sets and edit transforms
//   - history: transaction-based undo/redo
//
// # Basic Usage
//
//	e := engine.New(
//	    engine.WithContent("foo bar baz"),
//	    engine.WithSelections(
//	        cursor.NewSelection(0, 3),
//	        cursor.NewSelection(8, 11),
//	    ),
//	)
//
//	spans := e.SelectedSpans() // "foo", "baz"
//
//	edit := e.CreateEdit()
//	edit.Replace(spans[0], spans[1].Text())
//	edit.Replace(spans[1], spans[0].Text())
//	edit.Apply() // "baz bar foo", selections now cover "baz" and "foo"
//
//	e.Undo() // "foo bar baz"
//
// An Engine satisfies both swap.SelectionProvider and swap.Editor.
//
// # Read-Only Mode
//
//	e := engine.New(engine.WithContent("text"), engine.WithReadOnly())
//	err := e.Replace(0, 4, "TEXT")
//	// errors.Is(err, engine.ErrReadOnly)
package engine
