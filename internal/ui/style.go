package ui

import (
	_ "embed"
	"strconv"
	"strings"
)

// Rule is a single CSS rule: one selector and its raw property values.
type Rule struct {
	Selector string            // ".panel" or "#status"
	Props    map[string]string // "background" -> "#333"
}

// Stylesheet is an ordered list of rules; later rules override earlier ones.
type Stylesheet struct {
	Rules []Rule
}

//go:embed editor.css
var editorCSS string

// DefaultStylesheet returns the built-in editor theme.
func DefaultStylesheet() *Stylesheet {
	return ParseCSS(editorCSS)
}

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	Transparent = Color{}
	White       = Color{255, 255, 255, 255}
	Black       = Color{0, 0, 0, 255}
)

// ComputedStyle holds the resolved values used for drawing. LeftPct and TopPct are 0-100
// for percentage positioning, or -1 to use Left and Top as pixels.
type ComputedStyle struct {
	Background Color
	Color      Color
	Border     Color
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Padding    int32
	FontSize   int32
}

// DefaultComputedStyle is a transparent node with white 20px text.
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Color:    White,
		Border:   Black,
		LeftPct:  -1,
		TopPct:   -1,
		Padding:  4,
		FontSize: 20,
	}
}

// Resolve merges every rule matching n's class or id, in order, and resolves the result.
// A node Fill overrides the background.
func (s *Stylesheet) Resolve(n *Node) ComputedStyle {
	merged := make(map[string]string)
	if s != nil {
		for _, r := range s.Rules {
			if matches(r.Selector, n) {
				for k, v := range r.Props {
					merged[k] = v
				}
			}
		}
	}
	if n.Fill != "" {
		merged["background"] = n.Fill
	}
	return ResolveProps(merged)
}

func matches(sel string, n *Node) bool {
	switch sel[0] {
	case '.':
		return n.Class != "" && sel[1:] == n.Class
	case '#':
		return n.ID != "" && sel[1:] == n.ID
	}
	return false
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA.
func ParseHexColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return Black, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Black, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Black, false
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// ParsePx parses a number with an optional "px" suffix.
func ParsePx(s string) (int32, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px")))
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" with N in [0, 100].
func ParsePct(s string) (int32, bool) {
	num, ok := strings.CutSuffix(strings.TrimSpace(s), "%")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from merged properties. Unparsable values are ignored.
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		switch k {
		case "background":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "border":
			if c, ok := ParseHexColor(v); ok {
				out.Border, out.HasBorder = c, true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}

// Place sets n.Bounds from style for a screen of w by h pixels. Nodes whose layout was
// computed elsewhere (zero style size) keep their bounds.
func Place(n *Node, style ComputedStyle, w, h float32) {
	if style.Width == 0 && style.Height == 0 && style.LeftPct < 0 && style.TopPct < 0 && style.Left == 0 && style.Top == 0 {
		return
	}
	if style.Width > 0 {
		n.Bounds.Width = float32(style.Width)
	}
	if style.Height > 0 {
		n.Bounds.Height = float32(style.Height)
	}
	n.Bounds.X = float32(style.Left)
	if style.LeftPct >= 0 {
		n.Bounds.X = (w - n.Bounds.Width) * float32(style.LeftPct) / 100
	}
	n.Bounds.Y = float32(style.Top)
	if style.TopPct >= 0 {
		n.Bounds.Y = (h - n.Bounds.Height) * float32(style.TopPct) / 100
	}
}
