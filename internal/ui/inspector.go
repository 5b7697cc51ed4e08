package ui

import (
	"fmt"

	"game-studio/internal/instance"
	"game-studio/internal/scene"
)

const (
	inspectorRowHeight = 24
	inspectorHeaderGap = 8
)

// Row is one line of the inspector. Heading rows start a property group.
type Row struct {
	Text    string
	Heading bool
}

// Inspect lists the properties of the selected instance and of its scene object, if any.
// A nil node yields the empty-selection placeholder.
func Inspect(n *instance.Instance, o *scene.Object) []Row {
	if n == nil {
		return []Row{{Text: "No instance selected"}}
	}
	rows := []Row{{Text: n.Name, Heading: true}, {Text: "ID: " + n.ID}}
	if o != nil {
		t := o.Transform
		rows = append(rows,
			Row{Text: "Transform", Heading: true},
			Row{Text: "Position " + vec(t.Position)},
			Row{Text: "Rotation " + vec(t.Rotation)},
			Row{Text: "Scale " + vec(t.Scale)},
			Row{Text: "Appearance", Heading: true},
			Row{Text: "Color " + o.Color},
		)
		if o.Texture != "" {
			rows = append(rows, Row{Text: "Texture set"})
		}
		if o.Light != nil {
			rows = append(rows, Row{Text: "Light", Heading: true}, Row{Text: fmt.Sprintf("Intensity %.1f", o.Light.Intensity)})
		}
		if o.Camera != nil {
			rows = append(rows,
				Row{Text: "ViewPort", Heading: true},
				Row{Text: "Mode " + cameraLabel(o.Camera.Mode)},
				Row{Text: fmt.Sprintf("Zoom %.1f", o.Camera.Zoom)},
			)
		}
	}
	if v := n.Value(); v != nil {
		rows = append(rows, Row{Text: "Value", Heading: true}, Row{Text: "Data " + v.String()})
	}
	return rows
}

func vec(v scene.Vec3) string {
	return fmt.Sprintf("%.1f, %.1f, %.1f", v.X, v.Y, v.Z)
}

func cameraLabel(m scene.CameraMode) string {
	if m == scene.FirstPerson {
		return "1st Person"
	}
	return "3rd Person"
}

// Inspector is the right-side properties panel. It reuses its nodes between frames.
type Inspector struct {
	panel *Node
	rows  []*Node
}

func NewInspector() *Inspector {
	return &Inspector{panel: NewNode("panel", "inspector", "", "")}
}

// AppendNodes lays rows out top to bottom inside the panel and appends the panel and its
// rows to dst. The panel is placed by the stylesheet first so rows can follow it.
func (in *Inspector) AppendNodes(dst []*Node, sheet *Stylesheet, w, h float32, rows []Row) []*Node {
	style := sheet.Resolve(in.panel)
	Place(in.panel, style, w, h)

	for len(in.rows) < len(rows) {
		in.rows = append(in.rows, NewNode("label", "", "", ""))
	}
	pad := float32(style.Padding)
	x := in.panel.Bounds.X + pad
	y := in.panel.Bounds.Y + pad
	dst = append(dst, in.panel)
	for i, r := range rows {
		n := in.rows[i]
		n.Text = r.Text
		switch {
		case i == 0 && r.Heading:
			n.Class = "inspector-title"
		case r.Heading:
			n.Class = "inspector-heading"
			y += inspectorHeaderGap
		case len(rows) == 1:
			n.Class = "inspector-empty"
		case i == 1:
			n.Class = "inspector-id"
		default:
			n.Class = "inspector-row"
		}
		n.Bounds = Rect{X: x, Y: y, Width: in.panel.Bounds.Width - 2*pad, Height: inspectorRowHeight}
		y += inspectorRowHeight
		dst = append(dst, n)
	}
	in.panel.Bounds.Height = y - in.panel.Bounds.Y + pad
	return dst
}
