// Package ui holds the in-process document the game client renders into.
//
// The document stands in for the page markup: a flat set of elements keyed
// by the fixed identifiers the markup layer exposes. Frontends draw it; the
// renderer and the localizer write to it through a Bindings table.
package ui

import (
	"fmt"
	"sync"

	"LegacyGuardians/internal/model"
)

// ElementID is the identifier of one element of the page.
type ElementID string

// Element is one addressable node of the page.
type Element struct {
	ID       ElementID
	Text     string
	Active   bool      // scenes
	Disabled bool      // controls
	Lines    []string  // multi-line blocks
	Controls []Control // generated child controls
}

// Control is a generated button carrying the action it triggers.
type Control struct {
	Caption string
	Action  model.ActionRequest
}

// Document is the set of elements of one page. All reads and writes of
// element fields go through Read and Update.
type Document struct {
	mu       sync.RWMutex
	elements map[ElementID]*Element
	order    []ElementID
}

// NewDocument creates a document with one empty element per id, in order.
func NewDocument(ids ...ElementID) *Document {
	d := &Document{elements: make(map[ElementID]*Element, len(ids))}
	for _, id := range ids {
		if _, ok := d.elements[id]; ok {
			continue
		}
		d.elements[id] = &Element{ID: id}
		d.order = append(d.order, id)
	}
	return d
}

// Lookup returns the element with the given id.
func (d *Document) Lookup(id ElementID) (*Element, bool) {
	el, ok := d.elements[id]
	return el, ok
}

// IDs returns element ids in page order.
func (d *Document) IDs() []ElementID {
	out := make([]ElementID, len(d.order))
	copy(out, d.order)
	return out
}

// Update runs fn with exclusive access to the elements.
func (d *Document) Update(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

// Read runs fn with shared access to the elements.
func (d *Document) Read(fn func()) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn()
}

// Text returns the text of one element, "" when it does not exist.
func (d *Document) Text(id ElementID) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if el, ok := d.elements[id]; ok {
		return el.Text
	}
	return ""
}

// SceneID is the element id of the scene that shows the given level.
func SceneID(level int) ElementID {
	return ElementID(fmt.Sprintf("level-%d-scene", level))
}
