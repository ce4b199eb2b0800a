package swap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/swapsel/internal/engine/buffer"
	"github.com/dshills/swapsel/internal/engine/cursor"
)

// liveSelection resolves its selections against the buffer on every call,
// the way an editor view reports them.
type liveSelection struct {
	buf  *buffer.Buffer
	sels *cursor.Set
}

func newLiveSelection(buf *buffer.Buffer, sels ...cursor.Selection) *liveSelection {
	return &liveSelection{buf: buf, sels: cursor.NewSet(sels...)}
}

func (l *liveSelection) SelectedSpans() []buffer.Span {
	return l.sels.Spans(l.buf.Snapshot())
}

// trackingEditor applies edits to buf and maps the selection through them.
type trackingEditor struct {
	sel *liveSelection
}

func (e *trackingEditor) CreateEdit() buffer.TextEdit {
	return &trackingEdit{TextEdit: e.sel.buf.CreateEdit(), sel: e.sel}
}

type trackingEdit struct {
	buffer.TextEdit
	sel   *liveSelection
	edits []buffer.Edit
}

func (e *trackingEdit) Replace(span buffer.Span, text string) error {
	if err := e.TextEdit.Replace(span, text); err != nil {
		return err
	}
	e.edits = append(e.edits, buffer.NewEdit(span.Range(), text))
	return nil
}

func (e *trackingEdit) Apply() (*buffer.Snapshot, error) {
	snap, err := e.TextEdit.Apply()
	if err != nil {
		return nil, err
	}
	cursor.TransformSet(e.sel.sels, e.edits)
	return snap, nil
}

// rejectingEditor records cancellation and fails Apply.
type rejectingEditor struct {
	buf       *buffer.Buffer
	err       error
	cancelled bool
}

func (r *rejectingEditor) CreateEdit() buffer.TextEdit {
	return &rejectingEdit{TextEdit: r.buf.CreateEdit(), owner: r}
}

type rejectingEdit struct {
	buffer.TextEdit
	owner *rejectingEditor
}

func (e *rejectingEdit) Apply() (*buffer.Snapshot, error) {
	return nil, e.owner.err
}

func (e *rejectingEdit) Cancel() {
	e.owner.cancelled = true
	e.TextEdit.Cancel()
}

func sel(start, end buffer.ByteOffset) cursor.Selection {
	return cursor.NewSelection(start, end)
}

func caret(offset buffer.ByteOffset) cursor.Selection {
	return cursor.NewCursorSelection(offset)
}

func TestPerformSwapScenarios(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		selections  []cursor.Selection
		wantSwapped bool
		wantText    string
	}{
		{
			name:        "two words",
			text:        "foo bar baz",
			selections:  []cursor.Selection{sel(0, 3), sel(8, 11)},
			wantSwapped: true,
			wantText:    "baz bar foo",
		},
		{
			name:        "caret between selections",
			text:        "xxyyzz",
			selections:  []cursor.Selection{sel(0, 2), caret(4), sel(4, 6)},
			wantSwapped: true,
			wantText:    "zzyyxx",
		},
		{
			name:        "three selections",
			text:        "a b c",
			selections:  []cursor.Selection{sel(0, 1), sel(2, 3), sel(4, 5)},
			wantSwapped: false,
			wantText:    "a b c",
		},
		{
			name:        "single selection",
			text:        "a b c",
			selections:  []cursor.Selection{sel(0, 3)},
			wantSwapped: false,
			wantText:    "a b c",
		},
		{
			name:        "no selection",
			text:        "a b c",
			selections:  nil,
			wantSwapped: false,
			wantText:    "a b c",
		},
		{
			name:        "carets only",
			text:        "a b c",
			selections:  []cursor.Selection{caret(0), caret(2)},
			wantSwapped: false,
			wantText:    "a b c",
		},
		{
			name:        "different lengths",
			text:        "a bbb",
			selections:  []cursor.Selection{sel(0, 1), sel(2, 5)},
			wantSwapped: true,
			wantText:    "bbb a",
		},
		{
			name:        "backward selection",
			text:        "left right",
			selections:  []cursor.Selection{sel(10, 5), sel(0, 4)},
			wantSwapped: true,
			wantText:    "right left",
		},
		{
			name:        "multiline",
			text:        "one\ntwo\nthree",
			selections:  []cursor.Selection{sel(0, 3), caret(5), sel(8, 13)},
			wantSwapped: true,
			wantText:    "three\ntwo\none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buffer.NewBufferFromString(tt.text)
			live := newLiveSelection(buf, tt.selections...)

			if got := IsSwapApplicable(live); got != tt.wantSwapped {
				t.Errorf("IsSwapApplicable() = %v, want %v", got, tt.wantSwapped)
			}

			swapped, err := PerformSwap(buf, live)
			if err != nil {
				t.Fatalf("PerformSwap() error = %v", err)
			}
			if swapped != tt.wantSwapped {
				t.Errorf("PerformSwap() = %v, want %v", swapped, tt.wantSwapped)
			}
			if buf.Text() != tt.wantText {
				t.Errorf("text = %q, want %q", buf.Text(), tt.wantText)
			}
		})
	}
}

func TestPerformSwapNoopDoesNotTouchBuffer(t *testing.T) {
	buf := buffer.NewBufferFromString("a b c")
	rev := buf.RevisionID()
	live := newLiveSelection(buf, sel(0, 1), sel(2, 3), sel(4, 5))

	if _, err := PerformSwap(buf, live); err != nil {
		t.Fatal(err)
	}
	if buf.RevisionID() != rev {
		t.Error("no-op swap must not create a revision")
	}
	if buf.History().CanUndo() {
		t.Error("no-op swap must not add an undo step")
	}
}

func TestPerformSwapRederivesSelection(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar baz")
	live := newLiveSelection(buf, sel(0, 3), sel(8, 11))

	if !IsSwapApplicable(live) {
		t.Fatal("expected swap to be applicable")
	}

	// Selection changes between the status check and the command.
	live.sels.Add(sel(4, 7))

	swapped, err := PerformSwap(buf, live)
	if err != nil {
		t.Fatal(err)
	}
	if swapped {
		t.Error("swap must use the selection current at invocation")
	}
	if buf.Text() != "foo bar baz" {
		t.Errorf("buffer should be unchanged, got %q", buf.Text())
	}
}

func TestPerformSwapSingleUndoStep(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar baz")
	live := newLiveSelection(buf, sel(0, 3), sel(8, 11))

	if _, err := PerformSwap(buf, live); err != nil {
		t.Fatal(err)
	}
	if buf.History().UndoCount() != 1 {
		t.Fatalf("expected one undo step, got %d", buf.History().UndoCount())
	}
	if _, err := buf.Undo(); err != nil {
		t.Fatal(err)
	}
	if buf.Text() != "foo bar baz" {
		t.Errorf("undo should restore the original, got %q", buf.Text())
	}
}

func TestPerformSwapReadOnly(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar baz", buffer.WithReadOnly(true))
	live := newLiveSelection(buf, sel(0, 3), sel(8, 11))

	swapped, err := PerformSwap(buf, live)
	if !errors.Is(err, buffer.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	if swapped {
		t.Error("rejected swap should report false")
	}
	if buf.Text() != "foo bar baz" {
		t.Errorf("rejected swap must not modify the buffer, got %q", buf.Text())
	}
}

func TestExecuteRejectedEditIsCancelled(t *testing.T) {
	boom := errors.New("edit rejected")
	buf := buffer.NewBufferFromString("foo bar baz")
	ed := &rejectingEditor{buf: buf, err: boom}
	live := newLiveSelection(buf, sel(0, 3), sel(8, 11))

	_, err := PerformSwap(ed, live)
	if err != boom {
		t.Fatalf("error should be returned unchanged, got %v", err)
	}
	if !ed.cancelled {
		t.Error("rejected edit should be cancelled")
	}
	if buf.Text() != "foo bar baz" {
		t.Errorf("buffer should be unchanged, got %q", buf.Text())
	}
}

func TestExecuteOverlappingSpansRejected(t *testing.T) {
	buf := buffer.NewBufferFromString("abcdef")
	live := newLiveSelection(buf, sel(0, 4), sel(2, 6))

	_, err := PerformSwap(buf, live)
	if !errors.Is(err, buffer.ErrEditsOverlap) {
		t.Fatalf("expected ErrEditsOverlap, got %v", err)
	}
	if buf.Text() != "abcdef" {
		t.Errorf("buffer should be unchanged, got %q", buf.Text())
	}
}

func TestExecuteStalePair(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar baz")
	pair, ok := Classify(newLiveSelection(buf, sel(0, 3), sel(8, 11)).SelectedSpans())
	if !ok {
		t.Fatal("expected a pair")
	}

	if _, err := buf.Replace(4, 7, "BAR"); err != nil {
		t.Fatal(err)
	}

	if err := Execute(buf, pair); !errors.Is(err, buffer.ErrSnapshotMismatch) {
		t.Errorf("expected ErrSnapshotMismatch, got %v", err)
	}
	if buf.Text() != "foo BAR baz" {
		t.Errorf("stale pair must not apply, got %q", buf.Text())
	}
}

func TestSwapSelfInverse(t *testing.T) {
	texts := []struct {
		text       string
		selections []cursor.Selection
	}{
		{"foo bar baz", []cursor.Selection{sel(0, 3), sel(8, 11)}},
		{"a bbb", []cursor.Selection{sel(0, 1), sel(2, 5)}},
		{"short, much longer text", []cursor.Selection{sel(0, 5), caret(6), sel(7, 23)}},
	}

	for _, tt := range texts {
		buf := buffer.NewBufferFromString(tt.text)
		live := newLiveSelection(buf, tt.selections...)
		ed := &trackingEditor{sel: live}

		for i := 0; i < 2; i++ {
			swapped, err := PerformSwap(ed, live)
			if err != nil || !swapped {
				t.Fatalf("%q swap %d: swapped=%v err=%v", tt.text, i+1, swapped, err)
			}
		}
		if buf.Text() != tt.text {
			t.Errorf("swapping twice should restore %q, got %q", tt.text, buf.Text())
		}
	}
}

func TestSwapSplitLineEnding(t *testing.T) {
	// "a\r" and "b" straddle a CRLF; the lone \r must move as-is.
	buf := buffer.NewBufferFromString("a\r\nb", buffer.WithLineEnding(buffer.LineEndingCRLF))
	live := newLiveSelection(buf, sel(0, 2), sel(3, 4))
	ed := &trackingEditor{sel: live}

	if _, err := PerformSwap(ed, live); err != nil {
		t.Fatal(err)
	}
	if buf.Text() != "b\na\r" {
		t.Fatalf("expected %q, got %q", "b\na\r", buf.Text())
	}
	want := []cursor.Selection{sel(0, 1), sel(2, 4)}
	if diff := cmp.Diff(want, live.sels.All()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}

	if _, err := PerformSwap(ed, live); err != nil {
		t.Fatal(err)
	}
	if buf.Text() != "a\r\nb" {
		t.Errorf("second swap should restore %q, got %q", "a\r\nb", buf.Text())
	}
}

func TestSwapTrackedSelectionsCoverSwappedText(t *testing.T) {
	buf := buffer.NewBufferFromString("a bbb")
	live := newLiveSelection(buf, sel(0, 1), sel(2, 5))

	if _, err := PerformSwap(&trackingEditor{sel: live}, live); err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, span := range live.SelectedSpans() {
		got = append(got, span.Text())
	}
	if diff := cmp.Diff([]string{"bbb", "a"}, got); diff != "" {
		t.Errorf("selections should cover the swapped text (-want +got):\n%s", diff)
	}
}

func TestSwapSymmetric(t *testing.T) {
	const text = "alpha, beta; gamma"
	forward := buffer.NewBufferFromString(text)
	backward := buffer.NewBufferFromString(text)

	pairA, _ := Classify(newLiveSelection(forward, sel(0, 5), sel(13, 18)).SelectedSpans())
	pairB, _ := Classify(newLiveSelection(backward, sel(13, 18), sel(0, 5)).SelectedSpans())

	if err := Execute(forward, pairA); err != nil {
		t.Fatal(err)
	}
	if err := Execute(backward, pairB); err != nil {
		t.Fatal(err)
	}
	if forward.Text() != backward.Text() {
		t.Errorf("swap(A,B) = %q, swap(B,A) = %q", forward.Text(), backward.Text())
	}
	if forward.Text() != "gamma, beta; alpha" {
		t.Errorf("unexpected result %q", forward.Text())
	}
}
