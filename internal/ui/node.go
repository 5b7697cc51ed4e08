// Package ui builds the 2D overlay of the viewer as a flat list of styled nodes: the
// inspector panel, the play-mode GUI of StarterGui and the status line. Drawing is left to
// package render.
package ui

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Node is a single UI element: panel, label or button. Class and ID select CSS rules.
type Node struct {
	Type   string // "panel", "label", "button"
	Class  string // e.g. "inspector" for .inspector
	ID     string // e.g. "status" for #status
	Bounds Rect
	Text   string

	// Fill overrides the stylesheet background, e.g. a GUI element's own color.
	Fill string
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}
