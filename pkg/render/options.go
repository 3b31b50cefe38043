package render

import (
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/font"
)

// DefaultSize is the default number of pixels per em.
const DefaultSize = 20.0

// DefaultPadding is the default margin around the formula in em.
const DefaultPadding = 0.1

// Fonts describes the fonts referenced by glyph boxes. *font.Set
// implements it.
type Fonts interface {
	Info(fontID int) (font.Info, bool)
	Fonts() []font.Info
}

// Options configure the SVG and JSON sinks.
type Options struct {
	// Size is the number of pixels per em; zero means DefaultSize.
	Size float64
	// Padding is the margin around the formula in em; negative means none
	// and zero means DefaultPadding.
	Padding float64
	// Foreground colors glyphs and rules without an explicit color;
	// nil means black.
	Foreground *color.Color
	// Background fills the whole image; nil is transparent.
	Background *color.Color
	// EmbedFonts adds @font-face rules for the Latin Modern families.
	EmbedFonts bool
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	switch {
	case o.Padding == 0:
		o.Padding = DefaultPadding
	case o.Padding < 0:
		o.Padding = 0
	}
	if o.Foreground == nil {
		o.Foreground = &color.Black
	}
	return o
}
