package box

import (
	"encoding/json"

	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/font"
)

type glyphJSON struct {
	C      string  `json:"c"`
	Font   int     `json:"font"`
	Scale  float64 `json:"scale"`
	Step   int     `json:"step,omitempty"`
	XScale float64 `json:"xscale"`
	YScale float64 `json:"yscale"`
	Italic float64 `json:"italic,omitempty"`
}

type boxJSON struct {
	Kind       string       `json:"kind"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Depth      float64      `json:"depth"`
	Shift      float64      `json:"shift,omitempty"`
	Foreground *color.Color `json:"fg,omitempty"`
	Background *color.Color `json:"bg,omitempty"`
	Glyph      *glyphJSON   `json:"glyph,omitempty"`
	Breaks     []int        `json:"breaks,omitempty"`
	Children   []*Box       `json:"children,omitempty"`
}

// MarshalJSON encodes b and its subtree. Elder pointers are omitted.
func (b *Box) MarshalJSON() ([]byte, error) {
	out := boxJSON{
		Kind:       b.Kind.String(),
		Width:      b.Width,
		Height:     b.Height,
		Depth:      b.Depth,
		Shift:      b.Shift,
		Foreground: b.Foreground,
		Background: b.Background,
		Breaks:     b.Breaks,
		Children:   b.Children,
	}
	if g := b.Glyph; g != nil {
		out.Glyph = &glyphJSON{
			C:      string(g.C),
			Font:   g.FontID,
			Scale:  g.Scale,
			Step:   g.Step,
			XScale: g.XScale,
			YScale: g.YScale,
			Italic: g.Italic,
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a subtree written by MarshalJSON and relinks the
// Elder pointers of its children.
func (b *Box) UnmarshalJSON(data []byte) error {
	var in boxJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	k, err := parseKind(in.Kind)
	if err != nil {
		return err
	}
	*b = Box{
		Kind:       k,
		Width:      in.Width,
		Height:     in.Height,
		Depth:      in.Depth,
		Shift:      in.Shift,
		Foreground: in.Foreground,
		Background: in.Background,
		Breaks:     in.Breaks,
		Children:   in.Children,
		LastFontID: font.NoFont,
	}
	if g := in.Glyph; g != nil {
		var r rune
		for _, c := range g.C {
			r = c
			break
		}
		b.Glyph = &font.Char{
			C:      r,
			FontID: g.Font,
			Scale:  g.Scale,
			Step:   g.Step,
			XScale: g.XScale,
			YScale: g.YScale,
			Metrics: font.Metrics{
				Width:  in.Width,
				Height: in.Height,
				Depth:  in.Depth,
				Italic: g.Italic,
			},
		}
		b.LastFontID = g.Font
	}
	for _, c := range b.Children {
		c.Elder = b
		if c.LastFontID != font.NoFont {
			b.LastFontID = c.LastFontID
		}
	}
	return nil
}
