package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"game-studio/internal/ui"
)

// overlay draws ui nodes with the stylesheet. Nodes are drawn in order, so later nodes
// cover earlier ones.
type overlay struct {
	sheet *ui.Stylesheet
	font  rl.Font
}

func color(c ui.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// hexColor converts an object color, falling back to gray.
func hexColor(s string) rl.Color {
	if c, ok := ui.ParseHexColor(s); ok {
		return color(c)
	}
	return rl.Gray
}

func (o *overlay) draw(nodes []*ui.Node) {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	for _, n := range nodes {
		style := o.sheet.Resolve(n)
		ui.Place(n, style, w, h)
		b := n.Bounds
		rec := rl.NewRectangle(b.X, b.Y, b.Width, b.Height)
		if style.Background.A > 0 && b.Width > 0 && b.Height > 0 {
			rl.DrawRectangleRec(rec, color(style.Background))
		}
		if style.HasBorder && b.Width > 0 && b.Height > 0 {
			rl.DrawRectangleLinesEx(rec, 1, color(style.Border))
		}
		if n.Text == "" {
			continue
		}
		size := float32(style.FontSize)
		x, y := b.X+float32(style.Padding), b.Y+float32(style.Padding)
		if n.Type == "button" {
			m := o.measure(n.Text, size)
			x, y = b.X+(b.Width-m.X)/2, b.Y+(b.Height-m.Y)/2
		}
		if o.font.Texture.ID != 0 {
			rl.DrawTextEx(o.font, n.Text, rl.NewVector2(x, y), size, 1, color(style.Color))
		} else {
			rl.DrawText(n.Text, int32(x), int32(y), int32(size), color(style.Color))
		}
	}
}

func (o *overlay) measure(text string, size float32) rl.Vector2 {
	if o.font.Texture.ID != 0 {
		return rl.MeasureTextEx(o.font, text, size, 1)
	}
	return rl.NewVector2(float32(rl.MeasureText(text, int32(size))), size)
}
