package buffer

import (
	"fmt"

	"github.com/dshills/swapsel/internal/engine/history"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithReadOnly makes the buffer reject all edits.
func WithReadOnly(readOnly bool) Option {
	return func(b *Buffer) {
		b.readOnly = readOnly
	}
}

// WithVerbatimContent keeps initial content byte for byte instead of
// converting its line endings to the buffer's style.
func WithVerbatimContent() Option {
	return func(b *Buffer) {
		b.verbatim = true
	}
}

// WithHistoryLimit sets the maximum number of undo entries.
func WithHistoryLimit(maxEntries int) Option {
	return func(b *Buffer) {
		b.history = history.NewHistory(maxEntries)
	}
}

// ParseLineEnding parses a configured line ending name.
// "auto" is not a line ending; callers detect it from content.
func ParseLineEnding(name string) (LineEnding, error) {
	switch name {
	case "lf", "LF", "":
		return LineEndingLF, nil
	case "crlf", "CRLF":
		return LineEndingCRLF, nil
	case "cr", "CR":
		return LineEndingCR, nil
	default:
		return LineEndingLF, fmt.Errorf("unknown line ending %q", name)
	}
}

// DetectLineEnding returns a LineEnding based on the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	i := 0
	for i < len(text) {
		if i+1 < len(text) && text[i] == '\r' && text[i+1] == '\n' {
			crlfCount++
			i += 2
		} else if text[i] == '\r' {
			crCount++
			i++
		} else if text[i] == '\n' {
			lfCount++
			i++
		} else {
			i++
		}
	}

	// Return the most common line ending
	if crlfCount >= lfCount && crlfCount >= crCount {
		if crlfCount > 0 {
			return LineEndingCRLF
		}
	}
	if crCount >= lfCount && crCount >= crlfCount {
		if crCount > 0 {
			return LineEndingCR
		}
	}

	return LineEndingLF
}
