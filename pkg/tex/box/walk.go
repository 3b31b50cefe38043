package box

import "github.com/matzehuels/texbox/pkg/tex/color"

// Visit is called for each box with the absolute position of its origin
// (left edge, baseline) and the inherited foreground color. Returning false
// skips the box's children.
type Visit func(b *Box, x, y float64, fg *color.Color) bool

// Walk traverses b depth first, starting with b's origin at (x, y).
func Walk(b *Box, x, y float64, fn Visit) {
	walk(b, x, y, nil, fn)
}

func walk(b *Box, x, y float64, fg *color.Color, fn Visit) {
	if b.Foreground != nil {
		fg = b.Foreground
	}
	if !fn(b, x, y, fg) {
		return
	}
	switch b.Kind {
	case KindHBox:
		cx := x
		for _, c := range b.Children {
			walk(c, cx, y+c.Shift, fg, fn)
			cx += c.Width
		}
	case KindVBox:
		cy := y - b.Height
		for _, c := range b.Children {
			cy += c.Height
			walk(c, x+c.Shift, cy, fg, fn)
			cy += c.Depth
		}
	}
}

// Glyphs returns every char box under b in painting order.
func Glyphs(b *Box) []*Box {
	var out []*Box
	Walk(b, 0, 0, func(c *Box, _, _ float64, _ *color.Color) bool {
		if c.Kind == KindChar {
			out = append(out, c)
		}
		return true
	})
	return out
}
