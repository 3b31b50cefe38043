// Package env defines the style context threaded through atom layout.
//
// An [Environment] is a plain value. Every derivation returns a new value,
// so a child atom laid out in a sub-environment can never disturb its
// parent's context.
package env

import (
	"math"

	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/font"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

// DefaultPointSize is the size in points of one em at text style.
const DefaultPointSize = 10.0

// Spacer returns the inter-atom glue width between two categories. It is
// implemented by *glue.Table.
type Spacer interface {
	Width(left, right class.Type, e Environment) float64
}

// Environment is the layout context of one atom.
type Environment struct {
	Style style.Style
	// TextWidth bounds alignments and line splitting; +Inf when unbounded.
	TextWidth  float64
	Foreground *color.Color
	Background *color.Color
	Variant    font.Variant
	// LastFontID is the font of the previous glyph, used for ex and
	// interword spaces.
	LastFontID int
	// Interline is the gap between split lines, in em.
	Interline float64
	// Scale multiplies every length in the final output.
	Scale     float64
	PointSize float64
	Fonts     font.Provider
	Spacing   Spacer
	// FenceHeight is the delimiter size of the enclosing \left...\right
	// pair once it is known; \middle delimiters grow to it.
	FenceHeight float64
}

// New returns the root environment for a formula. Spacing is left nil, so
// rows insert no glue until a table is attached.
func New(fonts font.Provider, st style.Style) Environment {
	return Environment{
		Style:      st,
		TextWidth:  math.Inf(1),
		LastFontID: font.NoFont,
		Interline:  1,
		Scale:      1,
		PointSize:  DefaultPointSize,
		Fonts:      fonts,
	}
}

// WithStyle returns e in style s.
func (e Environment) WithStyle(s style.Style) Environment {
	e.Style = s
	return e
}

// Cramp returns e in the cramped variant of its style.
func (e Environment) Cramp() Environment { return e.WithStyle(e.Style.Cramp()) }

// Sub returns the environment of a subscript.
func (e Environment) Sub() Environment { return e.WithStyle(e.Style.Sub()) }

// Sup returns the environment of a superscript.
func (e Environment) Sup() Environment { return e.WithStyle(e.Style.Sup()) }

// Num returns the environment of a numerator.
func (e Environment) Num() Environment { return e.WithStyle(e.Style.Num()) }

// Denom returns the environment of a denominator.
func (e Environment) Denom() Environment { return e.WithStyle(e.Style.Denom()) }

// Root returns the environment of a radical index.
func (e Environment) Root() Environment { return e.WithStyle(e.Style.Root()) }

// WithColor returns e with a foreground color.
func (e Environment) WithColor(c *color.Color) Environment {
	e.Foreground = c
	return e
}

// WithBackground returns e with a background color.
func (e Environment) WithBackground(c *color.Color) Environment {
	e.Background = c
	return e
}

// WithVariant returns e with a font style descriptor.
func (e Environment) WithVariant(v font.Variant) Environment {
	e.Variant = v
	return e
}

// WithTextWidth returns e bounded to w.
func (e Environment) WithTextWidth(w float64) Environment {
	e.TextWidth = w
	return e
}

// WithSpacing returns e using s for inter-atom glue.
func (e Environment) WithSpacing(s Spacer) Environment {
	e.Spacing = s
	return e
}

// WithFenceHeight returns e inside a fence of height h.
func (e Environment) WithFenceHeight(h float64) Environment {
	e.FenceHeight = h
	return e
}

// WithLastFont records the font of the previous glyph.
func (e Environment) WithLastFont(id int) Environment {
	e.LastFontID = id
	return e
}

// ResetColor clears the colors of e in place. A row calls it on its own
// copy so that colors already applied to the row box are not painted again
// by every child.
func (e *Environment) ResetColor() {
	e.Foreground = nil
	e.Background = nil
}

// Params returns the TeX parameter table for the current style.
func (e Environment) Params() font.Params { return e.Fonts.Params(e.Style) }

// SizeFactor is the scale of the current style relative to text size.
func (e Environment) SizeFactor() float64 { return e.Fonts.SizeFactor(e.Style) }

// AxisHeight is the height of the math axis.
func (e Environment) AxisHeight() float64 { return e.Params().AxisHeight }

// RuleThickness is the default rule thickness.
func (e Environment) RuleThickness() float64 { return e.Params().DefaultRuleThickness }

// Quad is one em of the math-unit font at the current style.
func (e Environment) Quad() float64 { return e.Fonts.Quad(e.Style, e.Fonts.MuFontID()) }

// Mu is one math unit, 1/18 em.
func (e Environment) Mu() float64 { return e.Quad() / 18 }

// XHeight is the x-height of the last font used, or of the roman font.
func (e Environment) XHeight() float64 {
	id := e.LastFontID
	if id == font.NoFont {
		id = 0
	}
	return e.Fonts.XHeight(e.Style, id)
}

// Space is the interword space of the last font used.
func (e Environment) Space() float64 {
	id := e.LastFontID
	if id == font.NoFont || !e.Fonts.HasSpace(id) {
		id = 0
	}
	return e.Fonts.Space(e.Style, id)
}

// Glue is the inter-atom glue width between left and right.
func (e Environment) Glue(left, right class.Type) float64 {
	if e.Spacing == nil {
		return 0
	}
	return e.Spacing.Width(left, right, e)
}

// Point is one TeX point in em.
func (e Environment) Point() float64 {
	if e.PointSize <= 0 {
		return 1 / DefaultPointSize
	}
	return 1 / e.PointSize
}
