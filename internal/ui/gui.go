package ui

import (
	"game-studio/internal/hierarchy"
	"game-studio/internal/instance"
	"game-studio/internal/templates"
)

// Default size of a GUI element whose size was never set.
const (
	DefaultGuiWidth  = 100
	DefaultGuiHeight = 50
)

// Layout places the play-mode GUI of a w by h screen. Every ScreenGui under StarterGui
// covers the whole screen. An element's position is a fraction of its parent's box and
// marks the element's centre; its size is in pixels. Children are laid out inside their
// parent, parents first, so later nodes draw on top.
func Layout(files hierarchy.Forest, w, h float32) []*Node {
	root, ok := hierarchy.Find(files, templates.StarterGui)
	if !ok {
		return nil
	}
	screen := Rect{Width: w, Height: h}
	var out []*Node
	for _, g := range root.Children() {
		if g.Kind != instance.ScreenGui {
			continue
		}
		for _, c := range g.Children() {
			out = layoutElement(out, c, screen)
		}
	}
	return out
}

func layoutElement(out []*Node, n *instance.Instance, parent Rect) []*Node {
	if !instance.IsGui(n.Kind) || n.Kind == instance.ScreenGui {
		return out
	}
	var props instance.GuiProps
	if n.Gui != nil {
		props = *n.Gui
	}
	width, height := float32(props.Size.X), float32(props.Size.Y)
	if width == 0 {
		width = DefaultGuiWidth
	}
	if height == 0 {
		height = DefaultGuiHeight
	}
	cx := parent.X + float32(props.Position.X)*parent.Width
	cy := parent.Y + float32(props.Position.Y)*parent.Height

	node := NewNode("panel", "gui-frame", n.ID, "")
	if n.Kind == instance.TextButton {
		node = NewNode("button", "gui-button", n.ID, props.Text)
	}
	node.Fill = props.BackgroundColor
	node.Bounds = Rect{X: cx - width/2, Y: cy - height/2, Width: width, Height: height}
	out = append(out, node)
	for _, c := range n.Children() {
		out = layoutElement(out, c, node.Bounds)
	}
	return out
}

// HitTest returns the topmost node containing the point, if any.
func HitTest(nodes []*Node, x, y float32) (*Node, bool) {
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Bounds.Contains(x, y) {
			return nodes[i], true
		}
	}
	return nil, false
}
