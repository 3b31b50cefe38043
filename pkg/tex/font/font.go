package font

import (
	"math"

	"github.com/matzehuels/texbox/pkg/tex/style"
)

// NoFont is the font id reported by boxes that contain no glyph.
const NoFont = -1

// Metrics are the dimensions of a glyph.
type Metrics struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
	Italic float64 `json:"italic,omitempty"`
}

// CharFont identifies a glyph independently of size.
type CharFont struct {
	C      rune
	FontID int
}

// Char is a resolved glyph with metrics scaled for a style.
type Char struct {
	C      rune
	FontID int
	// Scale is the style size factor the glyph is drawn at.
	Scale float64
	// Step is the index in the font's chain of larger variants; 0 is the
	// base glyph.
	Step int
	// XScale and YScale stretch the glyph outline on top of Scale.
	XScale, YScale float64
	Metrics
}

// CharFont returns the size-independent identity of c.
func (c Char) CharFont() CharFont { return CharFont{C: c.C, FontID: c.FontID} }

// Total is the glyph's height plus depth.
func (c Char) Total() float64 { return c.Height + c.Depth }

// StretchX returns c widened to width w by horizontal scaling.
func (c Char) StretchX(w float64) Char {
	if c.Width <= 0 || w <= 0 {
		return c
	}
	f := w / c.Width
	c.XScale *= f
	c.Width = w
	c.Italic *= f
	return c
}

// Extension holds the pieces of an extensible delimiter. Any piece except
// Repeat may be nil.
type Extension struct {
	Top, Middle, Repeat, Bottom *Char
}

// Params is the TeX math parameter table at one style size.
type Params struct {
	AxisHeight           float64
	DefaultRuleThickness float64

	Num1, Num2, Num3 float64
	Denom1, Denom2   float64

	Sup1, Sup2, Sup3 float64
	Sub1, Sub2       float64
	SupDrop, SubDrop float64

	Delim1, Delim2 float64

	BigOpSpacing1, BigOpSpacing2, BigOpSpacing3, BigOpSpacing4, BigOpSpacing5 float64
}

func (p Params) scaled(f float64) Params {
	return Params{
		AxisHeight:           p.AxisHeight * f,
		DefaultRuleThickness: p.DefaultRuleThickness * f,
		Num1:                 p.Num1 * f,
		Num2:                 p.Num2 * f,
		Num3:                 p.Num3 * f,
		Denom1:               p.Denom1 * f,
		Denom2:               p.Denom2 * f,
		Sup1:                 p.Sup1 * f,
		Sup2:                 p.Sup2 * f,
		Sup3:                 p.Sup3 * f,
		Sub1:                 p.Sub1 * f,
		Sub2:                 p.Sub2 * f,
		SupDrop:              p.SupDrop * f,
		SubDrop:              p.SubDrop * f,
		Delim1:               p.Delim1 * f,
		Delim2:               p.Delim2 * f,
		BigOpSpacing1:        p.BigOpSpacing1 * f,
		BigOpSpacing2:        p.BigOpSpacing2 * f,
		BigOpSpacing3:        p.BigOpSpacing3 * f,
		BigOpSpacing4:        p.BigOpSpacing4 * f,
		BigOpSpacing5:        p.BigOpSpacing5 * f,
	}
}

// Info describes a font for painters.
type Info struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Family string `json:"family"`
	Style  string `json:"style,omitempty"`
	Weight string `json:"weight,omitempty"`
}

// Provider is the font-metrics contract consumed by the layout engine.
//
// Implementations must be safe for concurrent use once constructed.
type Provider interface {
	// Char resolves a character typed in the formula under a style
	// descriptor.
	Char(c rune, v Variant, s style.Style) Char
	// Symbol resolves a named symbol from the symbol table.
	Symbol(name string, s style.Style) (Char, bool)
	// Glyph returns the metrics of an explicit glyph.
	Glyph(cf CharFont, s style.Style) Char

	// Kern returns the kern between two adjacent glyphs, or 0.
	Kern(left, right CharFont, s style.Style) float64
	// Ligature returns the glyph replacing two adjacent glyphs.
	Ligature(left, right CharFont) (CharFont, bool)

	HasNextLarger(c Char) bool
	NextLarger(c Char, s style.Style) Char
	IsExtensible(c Char) bool
	Extension(c Char, s style.Style) Extension

	// Skew is the accent skew of a glyph: its kern with the font's skew
	// character.
	Skew(cf CharFont, s style.Style) float64
	// HasSpace reports whether the font is a text font with interword
	// space.
	HasSpace(fontID int) bool

	Space(s style.Style, fontID int) float64
	Quad(s style.Style, fontID int) float64
	XHeight(s style.Style, fontID int) float64
	// MuFontID is the font whose quad defines the math unit.
	MuFontID() int

	SizeFactor(s style.Style) float64
	Params(s style.Style) Params

	Info(fontID int) (Info, bool)
}

// Prec is the precision below which lengths are treated as zero.
const Prec = 1e-7

// Zero reports whether v is within [Prec] of zero.
func Zero(v float64) bool { return math.Abs(v) < Prec }
