package box

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/font"
)

// Kind discriminates box variants.
type Kind int

const (
	KindChar Kind = iota
	KindHBox
	KindVBox
	KindStrut
	KindRule
	KindGlue
)

var kindNames = [...]string{"char", "hbox", "vbox", "strut", "rule", "glue"}

func (k Kind) String() string {
	if k < KindChar || k > KindGlue {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func parseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown box kind %q", s)
}

// Align positions a box inside a wider slot.
type Align int

const (
	Center Align = iota
	Left
	Right
)

// Box is one node of the measured layout tree.
type Box struct {
	Kind   Kind
	Width  float64
	Height float64
	Depth  float64
	Shift  float64

	// Foreground colors glyphs and rules; nil inherits from the parent.
	Foreground *color.Color
	// Background fills the box rectangle; nil is transparent.
	Background *color.Color

	Children []*Box
	// Glyph is set for char boxes.
	Glyph *font.Char
	// LastFontID is the font of the rightmost glyph, or font.NoFont.
	LastFontID int

	// Elder is the box that adopted this one. It does not own it.
	Elder *Box
	// Breaks lists child indices of an hbox after which a line may end.
	Breaks []int
}

// NewChar returns a char box for g.
func NewChar(g font.Char) *Box {
	return &Box{
		Kind:       KindChar,
		Width:      g.Width,
		Height:     g.Height,
		Depth:      g.Depth,
		Glyph:      &g,
		LastFontID: g.FontID,
	}
}

// NewStrut returns invisible space with the given dimensions.
func NewStrut(w, h, d, shift float64) *Box {
	return &Box{Kind: KindStrut, Width: w, Height: h, Depth: d, Shift: shift, LastFontID: font.NoFont}
}

// NewRule returns a rule of the given thickness and width whose bottom
// edge sits raise above the baseline.
func NewRule(thickness, width, raise float64) *Box {
	return &Box{Kind: KindRule, Width: width, Height: thickness, Shift: -raise, LastFontID: font.NoFont}
}

// NewVRule returns a rule spanning height above and depth below the
// baseline.
func NewVRule(width, height, depth float64) *Box {
	return &Box{Kind: KindRule, Width: width, Height: height, Depth: depth, LastFontID: font.NoFont}
}

// NewGlue returns horizontal space of the given width.
func NewGlue(width float64) *Box {
	return &Box{Kind: KindGlue, Width: width, LastFontID: font.NoFont}
}

// NewHBox returns a horizontal box holding children.
func NewHBox(children ...*Box) *Box {
	b := &Box{Kind: KindHBox, LastFontID: font.NoFont}
	for _, c := range children {
		b.Add(c)
	}
	return b
}

// NewHBoxAligned wraps c in a horizontal box of at least width, placing c
// according to align. Infinite or smaller widths leave c unpadded.
func NewHBoxAligned(c *Box, width float64, align Align) *Box {
	b := NewHBox()
	diff := width - c.Width
	if math.IsInf(width, 0) || diff <= font.Prec {
		b.Add(c)
		return b
	}
	switch align {
	case Left:
		b.Add(c)
		b.Add(NewStrut(diff, 0, 0, 0))
	case Right:
		b.Add(NewStrut(diff, 0, 0, 0))
		b.Add(c)
	default:
		b.Add(NewStrut(diff/2, 0, 0, 0))
		b.Add(c)
		b.Add(NewStrut(diff/2, 0, 0, 0))
	}
	return b
}

// NewVBox returns an empty vertical box.
func NewVBox() *Box {
	return &Box{Kind: KindVBox, LastFontID: font.NoFont}
}

// NewVBoxAligned wraps c in a vertical box at least width wide, placing c
// horizontally according to align.
func NewVBoxAligned(c *Box, width float64, align Align) *Box {
	b := NewVBox()
	b.Add(NewHBoxAligned(c, width, align))
	return b
}

// Add appends c. In an hbox the width grows by c's width; in a vbox c is
// stacked below the current content.
func (b *Box) Add(c *Box) {
	b.AddAt(len(b.Children), c)
}

// AddAt inserts c before position pos.
func (b *Box) AddAt(pos int, c *Box) {
	if c == nil {
		return
	}
	if pos < 0 || pos > len(b.Children) {
		pos = len(b.Children)
	}
	first := len(b.Children) == 0
	b.Children = append(b.Children, nil)
	copy(b.Children[pos+1:], b.Children[pos:])
	b.Children[pos] = c
	if c.Elder == nil {
		c.Elder = b
	}

	switch b.Kind {
	case KindVBox:
		switch {
		case first:
			b.Height, b.Depth = c.Height, c.Depth
		case pos == 0:
			b.Depth += b.Height + c.Depth
			b.Height = c.Height
		default:
			b.Depth += c.Height + c.Depth
		}
		if first || c.Width+c.Shift > b.Width {
			b.Width = c.Width + c.Shift
		}
		if c.LastFontID != font.NoFont {
			b.LastFontID = c.LastFontID
		}
	default:
		b.Width += c.Width
		h, d := c.Height-c.Shift, c.Depth+c.Shift
		if first {
			b.Height, b.Depth = h, d
		} else {
			b.Height = math.Max(b.Height, h)
			b.Depth = math.Max(b.Depth, d)
		}
		if pos == len(b.Children)-1 && c.LastFontID != font.NoFont {
			b.LastFontID = c.LastFontID
		}
		for i, at := range b.Breaks {
			if at >= pos {
				b.Breaks[i]++
			}
		}
	}
}

// Total is the height plus depth of b.
func (b *Box) Total() float64 { return b.Height + b.Depth }

// SetBaseline moves the baseline of b to h below its top, keeping the
// total size.
func (b *Box) SetBaseline(h float64) {
	t := b.Total()
	b.Height = h
	b.Depth = t - h
}

// MarkBreak records that a line may end after the last child of an hbox.
func (b *Box) MarkBreak() {
	if b.Kind != KindHBox || len(b.Children) == 0 {
		return
	}
	b.Breaks = append(b.Breaks, len(b.Children)-1)
}

// IsSpace reports whether b paints nothing.
func (b *Box) IsSpace() bool {
	return b.Kind == KindGlue || b.Kind == KindStrut
}

// String is a compact one-line description for logs.
func (b *Box) String() string {
	s := fmt.Sprintf("%s(w=%.4g h=%.4g d=%.4g", b.Kind, b.Width, b.Height, b.Depth)
	if b.Shift != 0 {
		s += fmt.Sprintf(" s=%.4g", b.Shift)
	}
	if b.Glyph != nil {
		s += fmt.Sprintf(" %q@%d", b.Glyph.C, b.Glyph.FontID)
	}
	return s + ")"
}

// Dump renders the subtree of b as an indented outline.
func (b *Box) Dump() string {
	var sb strings.Builder
	var rec func(x *Box, depth int)
	rec = func(x *Box, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(x.String())
		sb.WriteByte('\n')
		for _, c := range x.Children {
			rec(c, depth+1)
		}
	}
	rec(b, 0)
	return sb.String()
}
