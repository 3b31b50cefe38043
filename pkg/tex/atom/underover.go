package atom

import (
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
)

// UnderOver stacks atoms above and below a base without the big operator
// spacing. It takes the category of its base.
type UnderOver struct {
	base
	Base, Over, Under     Atom
	OverKern, UnderKern   env.Length
	OverSmall, UnderSmall bool
}

// NewUnderOver returns b with over above and under below it. Small parts
// are laid out in script style.
func NewUnderOver(b, over, under Atom, small bool) (*UnderOver, error) {
	if b == nil {
		return nil, construction("under/over needs a base")
	}
	return &UnderOver{
		base:       base{typ: b.Type()},
		Base:       b,
		Over:       over,
		Under:      under,
		OverSmall:  small,
		UnderSmall: small,
	}, nil
}

func (u *UnderOver) Children() []Atom { return nonNil(u.Base, u.Over, u.Under) }

func (u *UnderOver) Clone() Atom {
	cp := *u
	cp.Base, cp.Over, cp.Under = clone(u.Base), clone(u.Over), clone(u.Under)
	return &cp
}

func (u *UnderOver) CreateBox(e env.Environment) *box.Box {
	b := createBox(u.Base, e)
	ke := e.WithLastFont(b.LastFontID)
	var over, under *box.Box
	if u.Over != nil {
		oe := e
		if u.OverSmall {
			oe = e.Sup()
		}
		over = createBox(u.Over, oe)
	}
	if u.Under != nil {
		ue := e
		if u.UnderSmall {
			ue = e.Sub()
		}
		under = createBox(u.Under, ue)
	}
	return stack(b, over, under, length(u.OverKern, ke), length(u.UnderKern, ke))
}

// stack centers over, b and under on the widest of them and keeps the
// baseline of b. Nil parts and their kerns are left out.
func stack(b, over, under *box.Box, overKern, underKern float64) *box.Box {
	w := maxWidth(b, over, under)
	vb := box.NewVBox()
	if over != nil {
		vb.Add(widen(settle(over), w))
		vb.Add(box.NewStrut(0, overKern, 0, 0))
	}
	mid := widen(settle(b), w)
	vb.Add(mid)
	h := vb.Total() - mid.Depth
	if under != nil {
		vb.Add(box.NewStrut(0, underKern, 0, 0))
		vb.Add(widen(settle(under), w))
	}
	vb.SetBaseline(h)
	// Arrow glyphs sit above the baseline with negative depth.
	vb.Depth = max(vb.Depth, 0)
	return vb
}

// settle wraps a shifted box so its shift keeps its meaning in a vbox.
func settle(b *box.Box) *box.Box {
	if b.Shift == 0 {
		return b
	}
	return box.NewHBox(b)
}

// OverBar draws a rule over its content, as \overline does.
type OverBar struct {
	base
	Content Atom
}

func NewOverBar(content Atom) *OverBar {
	return &OverBar{base: base{typ: class.Ord}, Content: content}
}

func (o *OverBar) Children() []Atom { return nonNil(o.Content) }

func (o *OverBar) CreateBox(e env.Environment) *box.Box {
	b := createBox(o.Content, e.Cramp())
	t := e.RuleThickness()
	return overBar(b, 3*t, t)
}

// overBar puts a rule of thickness t over b, separated by kern, with
// another t of clearance on top.
func overBar(b *box.Box, kern, t float64) *box.Box {
	vb := box.NewVBox()
	vb.Add(box.NewStrut(0, t, 0, 0))
	vb.Add(box.NewRule(t, b.Width, 0))
	vb.Add(box.NewStrut(0, kern, 0, 0))
	vb.Add(settle(b))
	vb.SetBaseline(2*t + kern + b.Height)
	return vb
}

func (o *OverBar) Clone() Atom { return &OverBar{base: o.base, Content: clone(o.Content)} }

// UnderBar draws a rule under its content, as \underline does.
type UnderBar struct {
	base
	Content Atom
}

func NewUnderBar(content Atom) *UnderBar {
	return &UnderBar{base: base{typ: class.Ord}, Content: content}
}

func (u *UnderBar) Children() []Atom { return nonNil(u.Content) }

func (u *UnderBar) CreateBox(e env.Environment) *box.Box {
	b := createBox(u.Content, e)
	t := e.RuleThickness()
	vb := box.NewVBox()
	vb.Add(settle(b))
	vb.Add(box.NewStrut(0, 3*t, 0, 0))
	vb.Add(box.NewRule(t, b.Width, 0))
	vb.Add(box.NewStrut(0, t, 0, 0))
	vb.SetBaseline(b.Height)
	return vb
}

func (u *UnderBar) Clone() Atom { return &UnderBar{base: u.base, Content: clone(u.Content)} }

// Gaps between a horizontal extensible and its base.
var (
	BraceGap = env.Length{Value: 3, Unit: env.Pt}
	ArrowGap = env.Length{Value: -1, Unit: env.Pt}
)

// HExtensible stretches a horizontal glyph over or under its base:
// \overbrace, \underbrace, \overrightarrow and friends.
type HExtensible struct {
	base
	Base Atom
	// Glyph names the symbol that is stretched.
	Glyph string
	Over  bool
	Gap   env.Length
}

// NewBrace returns a brace over or under b. Braces are operators that take
// their scripts as limits.
func NewBrace(b Atom, glyph string, over bool) *HExtensible {
	return &HExtensible{base: base{typ: class.Op, limits: class.WithLimits}, Base: b, Glyph: glyph, Over: over, Gap: BraceGap}
}

// NewArrowOver returns a stretched arrow over b.
func NewArrowOver(b Atom, glyph string) *HExtensible {
	return &HExtensible{base: base{typ: class.Ord}, Base: b, Glyph: glyph, Over: true, Gap: ArrowGap}
}

func (h *HExtensible) Children() []Atom { return nonNil(h.Base) }

func (h *HExtensible) Clone() Atom {
	cp := *h
	cp.Base = clone(h.Base)
	return &cp
}

func (h *HExtensible) CreateBox(e env.Environment) *box.Box {
	b := createBox(h.Base, e)
	g, ok := e.Fonts.Symbol(h.Glyph, e.Style)
	if !ok {
		return b
	}
	if b.Width > g.Width {
		g = g.StretchX(b.Width)
	}
	gb := box.NewChar(g)
	gap := length(h.Gap, e)
	if h.Over {
		return stack(b, gb, nil, gap, 0)
	}
	return stack(b, nil, gb, 0, gap)
}

// XArrow is an arrow stretched to fit labels above and below it:
// \xrightarrow and \xleftarrow.
type XArrow struct {
	base
	Glyph       string
	Over, Under Atom
	// LeftPad and RightPad surround the labels, in script-style mu.
	LeftPad, RightPad float64
}

// NewXArrow returns an extensible arrow. Right arrows pad their labels
// 5mu on the left and 9mu on the right; left arrows the reverse.
func NewXArrow(glyph string, over, under Atom, left bool) *XArrow {
	x := &XArrow{base: base{typ: class.Rel}, Glyph: glyph, Over: over, Under: under, LeftPad: 5, RightPad: 9}
	if left {
		x.LeftPad, x.RightPad = 9, 5
	}
	return x
}

func (x *XArrow) Children() []Atom { return nonNil(x.Over, x.Under) }

func (x *XArrow) Clone() Atom {
	cp := *x
	cp.Over, cp.Under = clone(x.Over), clone(x.Under)
	return &cp
}

func (x *XArrow) label(a Atom, e env.Environment) *box.Box {
	if a == nil {
		return nil
	}
	mu := e.Mu()
	return box.NewHBox(box.NewStrut(x.LeftPad*mu, 0, 0, 0), createBox(a, e), box.NewStrut(x.RightPad*mu, 0, 0, 0))
}

func (x *XArrow) CreateBox(e env.Environment) *box.Box {
	over := x.label(x.Over, e.Sup())
	under := x.label(x.Under, e.Sub())
	g, found := e.Fonts.Symbol(x.Glyph, e.Style)
	if !found {
		return box.NewStrut(0, 0, 0, 0)
	}
	if w := maxWidth(over, under); w > g.Width {
		g = g.StretchX(w)
	}
	arrow := box.NewChar(g)
	p := e.Params()
	var above, below float64
	if over != nil {
		above = max(p.BigOpSpacing1, p.BigOpSpacing3-over.Depth)
	}
	if under != nil {
		below = max(p.BigOpSpacing2, p.BigOpSpacing4-under.Height)
	}
	return stack(arrow, over, under, above, below)
}
