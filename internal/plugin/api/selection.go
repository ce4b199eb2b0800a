package api

import (
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/swapsel/internal/engine/buffer"
	"github.com/dshills/swapsel/internal/engine/cursor"
)

// SelectionProvider gives scripts access to the editor's selections.
type SelectionProvider interface {
	SelectedSpans() []buffer.Span
	SelectionCount() int
	SetSelections(sels ...cursor.Selection) error
}

// Swapper runs the swap command on behalf of scripts.
type Swapper interface {
	// CanSwap reports whether exactly two selections are non-empty.
	CanSwap() bool

	// Swap exchanges the two selected texts. It returns false, nil when
	// the selections do not form a pair.
	Swap() (bool, error)
}

// Context provides editor state to API modules.
type Context struct {
	Selections SelectionProvider
	Swapper    Swapper
}

// SelectionModule implements the ks.sel API module.
type SelectionModule struct {
	ctx *Context
}

// NewSelectionModule creates a new selection module.
func NewSelectionModule(ctx *Context) *SelectionModule {
	return &SelectionModule{ctx: ctx}
}

// Name returns the module name.
func (m *SelectionModule) Name() string {
	return "sel"
}

// Register registers the module into the Lua state.
func (m *SelectionModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "count", L.NewFunction(m.count))
	L.SetField(mod, "spans", L.NewFunction(m.spans))
	L.SetField(mod, "set", L.NewFunction(m.set))
	L.SetField(mod, "applicable", L.NewFunction(m.applicable))
	L.SetField(mod, "swap", L.NewFunction(m.swap))

	L.SetGlobal("_ks_sel", mod)
	return nil
}

// count() -> number
// Returns the number of selections, carets included.
func (m *SelectionModule) count(L *lua.LState) int {
	if m.ctx.Selections == nil {
		L.Push(lua.LNumber(0))
		return 1
	}

	L.Push(lua.LNumber(m.ctx.Selections.SelectionCount()))
	return 1
}

// spans() -> {{start, finish, text}, ...}
// Returns the selections in reporting order.
func (m *SelectionModule) spans(L *lua.LState) int {
	tbl := L.NewTable()
	if m.ctx.Selections == nil {
		L.Push(tbl)
		return 1
	}

	for i, span := range m.ctx.Selections.SelectedSpans() {
		entry := L.NewTable()
		L.SetField(entry, "start", lua.LNumber(span.Start()))
		L.SetField(entry, "finish", lua.LNumber(span.End()))
		L.SetField(entry, "text", lua.LString(span.Text()))
		tbl.RawSetInt(i+1, entry)
	}

	L.Push(tbl)
	return 1
}

// set({{start, finish}, ...}) -> nil
// Replaces all selections. start > finish selects backwards.
func (m *SelectionModule) set(L *lua.LState) int {
	tbl := L.CheckTable(1)

	if m.ctx.Selections == nil {
		L.RaiseError("set: no selections available")
		return 0
	}

	sels := make([]cursor.Selection, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.ArgError(1, "each selection must be a {start, finish} table")
			return 0
		}

		start, okStart := entry.RawGetInt(1).(lua.LNumber)
		finish, okFinish := entry.RawGetInt(2).(lua.LNumber)
		if !okStart || !okFinish {
			L.ArgError(1, "each selection must be a {start, finish} table")
			return 0
		}
		if !isOffset(start) || !isOffset(finish) {
			L.ArgError(1, "offsets must be non-negative integers")
			return 0
		}

		sels = append(sels, cursor.NewSelection(buffer.ByteOffset(start), buffer.ByteOffset(finish)))
	}

	if err := m.ctx.Selections.SetSelections(sels...); err != nil {
		L.RaiseError("set: %v", err)
	}
	return 0
}

func isOffset(n lua.LNumber) bool {
	f := float64(n)
	return f >= 0 && f == math.Trunc(f) && !math.IsInf(f, 0)
}

// applicable() -> bool
func (m *SelectionModule) applicable(L *lua.LState) int {
	if m.ctx.Swapper == nil {
		L.Push(lua.LFalse)
		return 1
	}

	L.Push(lua.LBool(m.ctx.Swapper.CanSwap()))
	return 1
}

// swap() -> bool
// Swaps the two selected texts. Raises an error if the edit is rejected.
func (m *SelectionModule) swap(L *lua.LState) int {
	if m.ctx.Swapper == nil {
		L.RaiseError("swap: no editor available")
		return 0
	}

	swapped, err := m.ctx.Swapper.Swap()
	if err != nil {
		L.RaiseError("swap: %v", err)
		return 0
	}

	L.Push(lua.LBool(swapped))
	return 1
}
