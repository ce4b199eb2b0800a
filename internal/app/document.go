package app

import (
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/swapsel/internal/engine"
)

// Document is an open text with its editor state.
type Document struct {
	// ID identifies the document for the lifetime of the process.
	ID uuid.UUID

	// Path is the absolute file path (empty for scratch documents).
	Path string

	// Name is the display name (file name, or the name given to OpenReader).
	Name string

	// Engine holds the buffer and its selections.
	Engine *engine.Engine

	modified atomic.Bool
}

// NewDocument wraps an engine as a document.
// An empty name is derived from path, or "Untitled" for scratch documents.
func NewDocument(path, name string, eng *engine.Engine) *Document {
	if name == "" {
		name = "Untitled"
		if path != "" {
			name = filepath.Base(path)
		}
	}
	return &Document{
		ID:     uuid.New(),
		Path:   path,
		Name:   name,
		Engine: eng,
	}
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified.Load()
}

// SetModified sets the modified flag.
func (d *Document) SetModified(modified bool) {
	d.modified.Store(modified)
}

// IsScratch returns true if this document has no file path.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Content returns the full document content.
func (d *Document) Content() string {
	return d.Engine.Text()
}
