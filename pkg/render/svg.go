package render

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"

	"github.com/matzehuels/texbox/pkg/fonts"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/font"
)

// SVG paints b. The baseline of b sits Padding + Height below the top edge.
func SVG(b *box.Box, fs Fonts, opts Options) []byte {
	opts = opts.withDefaults()
	s := opts.Size
	pad := opts.Padding

	w := (b.Width + 2*pad) * s
	h := (b.Height + b.Depth + 2*pad) * s
	if w < 0 {
		w = 0
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(w), num(h), num(math.Ceil(w)), num(math.Ceil(h)))

	used := usedFonts(b, fs)
	if len(used) > 0 || opts.EmbedFonts {
		fmt.Fprintf(&buf, "  <style>\n%s  </style>\n", fonts.StyleSheet(used, opts.EmbedFonts))
	}
	if opts.Background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%"%s/>`+"\n", fill(*opts.Background))
	}

	p := painter{buf: &buf, size: s, fg: *opts.Foreground}
	box.Walk(b, pad, pad+b.Height, p.visit)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

type painter struct {
	buf  *bytes.Buffer
	size float64
	fg   color.Color
}

func (p painter) visit(b *box.Box, x, y float64, fg *color.Color) bool {
	c := p.fg
	if fg != nil {
		c = *fg
	}
	if b.Background != nil && b.Width > 0 {
		p.rect(x, y-b.Height, b.Width, b.Height+b.Depth, *b.Background)
	}
	switch b.Kind {
	case box.KindChar:
		p.glyph(b.Glyph, x, y, c)
	case box.KindRule:
		if b.Width > 0 && b.Height+b.Depth > 0 {
			p.rect(x, y-b.Height, b.Width, b.Height+b.Depth, c)
		}
	}
	return true
}

func (p painter) rect(x, y, w, h float64, c color.Color) {
	fmt.Fprintf(p.buf, `  <rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
		num(x*p.size), num(y*p.size), num(w*p.size), num(h*p.size), fill(c))
}

func (p painter) glyph(g *font.Char, x, y float64, c color.Color) {
	if g == nil {
		return
	}
	text := html.EscapeString(string(g.C))
	size := g.Scale * p.size
	if g.XScale == 1 && g.YScale == 1 || g.XScale == 0 || g.YScale == 0 {
		fmt.Fprintf(p.buf, `  <text x="%s" y="%s" class="%s" font-size="%s"%s>%s</text>`+"\n",
			num(x*p.size), num(y*p.size), fonts.Class(g.FontID), num(size), fill(c), text)
		return
	}
	fmt.Fprintf(p.buf, `  <text transform="translate(%s %s) scale(%s %s)" class="%s" font-size="%s"%s>%s</text>`+"\n",
		num(x*p.size), num(y*p.size), num(g.XScale), num(g.YScale), fonts.Class(g.FontID), num(size), fill(c), text)
}

// usedFonts returns the infos of the fonts referenced by glyphs of b in
// id order.
func usedFonts(b *box.Box, fs Fonts) []font.Info {
	if fs == nil {
		return nil
	}
	seen := map[int]bool{}
	for _, g := range box.Glyphs(b) {
		seen[g.Glyph.FontID] = true
	}
	var out []font.Info
	for _, f := range fs.Fonts() {
		if seen[f.ID] {
			out = append(out, f)
		}
	}
	return out
}

func fill(c color.Color) string {
	s := fmt.Sprintf(` fill="%s"`, c.Clamped().Hex())
	if c.A < 1 {
		s += fmt.Sprintf(` fill-opacity="%s"`, num(math.Max(c.A, 0)))
	}
	return s
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
