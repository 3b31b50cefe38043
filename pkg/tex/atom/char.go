package atom

import (
	"unicode"

	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/font"
	"github.com/matzehuels/texbox/pkg/tex/style"
	"github.com/matzehuels/texbox/pkg/tex/symbol"
)

// Char is a character typed in the formula. Its font follows the variant
// of the environment.
type Char struct {
	base
	C rune
}

// NewChar returns an Ord character atom.
func NewChar(c rune) *Char {
	return &Char{base: base{typ: class.Ord}, C: c}
}

func (c *Char) glyph(e env.Environment) font.Char {
	return e.Fonts.Char(c.C, e.Variant, e.Style)
}

func (c *Char) CreateBox(e env.Environment) *box.Box { return box.NewChar(c.glyph(e)) }

func (c *Char) CharFont(e env.Environment) font.CharFont { return c.glyph(e).CharFont() }

func (c *Char) IsText() bool { return false }

func (c *Char) Clone() Atom {
	cp := *c
	return &cp
}

// Symbol is a named glyph from the symbol table.
type Symbol struct {
	base
	Name      string
	Delimiter bool
	// Text marks symbols typed in text mode.
	Text bool
}

// NewSymbol returns an atom for s with its table category.
func NewSymbol(s symbol.Symbol) *Symbol {
	a := &Symbol{base: base{typ: s.Type}, Name: s.Name, Delimiter: s.Delimiter}
	if s.NoLimits {
		a.limits = class.NoLimits
	}
	return a
}

// AsText returns a copy of s marked as typed in text mode.
func (s *Symbol) AsText() *Symbol {
	cp := *s
	cp.Text = true
	return &cp
}

func (s *Symbol) glyph(e env.Environment) (font.Char, bool) {
	c, ok := e.Fonts.Symbol(s.Name, e.Style)
	if ok && e.Variant.Bold && s.typ == class.Ord && unicode.IsLetter(c.C) {
		c = e.Fonts.Char(c.C, e.Variant, e.Style)
	}
	return c, ok
}

// CreateBox returns the glyph. A big operator uses its display-size variant
// in display style, is centered on the axis and carries its italic
// correction.
func (s *Symbol) CreateBox(e env.Environment) *box.Box {
	c, ok := s.glyph(e)
	if !ok {
		return box.NewStrut(0, 0, 0, 0)
	}
	if s.typ != class.Op {
		return box.NewChar(c)
	}
	cb := box.NewChar(s.opGlyph(c, e))
	center(cb, e.AxisHeight())
	hb := box.NewHBox(cb)
	if cb.Glyph.Italic > font.Prec {
		hb.Add(box.NewStrut(cb.Glyph.Italic, 0, 0, 0))
	}
	return hb
}

func (s *Symbol) opGlyph(c font.Char, e env.Environment) font.Char {
	if e.Style < style.Text && e.Fonts.HasNextLarger(c) {
		return e.Fonts.NextLarger(c, e.Style)
	}
	return c
}

func (s *Symbol) CharFont(e env.Environment) font.CharFont {
	c, _ := s.glyph(e)
	return c.CharFont()
}

func (s *Symbol) IsText() bool { return s.Text }

func (s *Symbol) Clone() Atom {
	cp := *s
	return &cp
}

// glyph is the merged result of a ligature.
type glyph struct {
	base
	cf font.CharFont
}

func (g *glyph) CreateBox(e env.Environment) *box.Box {
	return box.NewChar(e.Fonts.Glyph(g.cf, e.Style))
}

func (g *glyph) CharFont(env.Environment) font.CharFont { return g.cf }

func (g *glyph) IsText() bool { return false }

func (g *glyph) Clone() Atom {
	cp := *g
	return &cp
}

// Placeholder marks a failure in partial parsing. It shows the offending
// command in red.
type Placeholder struct {
	base
	Command string
	Err     error
}

// NewPlaceholder returns a placeholder for command. err may be nil.
func NewPlaceholder(command string, err error) *Placeholder {
	return &Placeholder{base: base{typ: class.Ord}, Command: command, Err: err}
}

func (p *Placeholder) CreateBox(e env.Environment) *box.Box {
	text := p.Command
	if text == "" {
		text = "?"
	}
	v := font.Variant{}.AsText()
	hb := box.NewHBox()
	for _, r := range text {
		hb.Add(box.NewChar(e.Fonts.Char(r, v, e.Style)))
	}
	red := color.Red
	hb.Foreground = &red
	return hb
}

func (p *Placeholder) Clone() Atom {
	cp := *p
	return &cp
}

// Empty lays out to nothing. Rows skip it.
type Empty struct{ base }

// NewEmpty returns an empty atom.
func NewEmpty() *Empty { return &Empty{} }

func (*Empty) CreateBox(env.Environment) *box.Box { return box.NewStrut(0, 0, 0, 0) }

func (*Empty) Clone() Atom { return &Empty{} }
