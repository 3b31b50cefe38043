package atom

import (
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/font"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

// transparent reports the categories of an atom that wraps content
// without changing how its neighbors see it.
type transparent struct {
	base
	Content Atom
}

func (t *transparent) Type() class.Type {
	if t.set || t.Content == nil {
		return t.typ
	}
	return t.Content.Type()
}

func (t *transparent) LeftType() class.Type {
	if t.set || t.Content == nil {
		return t.typ
	}
	return t.Content.LeftType()
}

func (t *transparent) RightType() class.Type {
	if t.set || t.Content == nil {
		return t.typ
	}
	return t.Content.RightType()
}

func (t *transparent) Limits() class.Limits {
	if t.limits == class.Normal && t.Content != nil {
		return t.Content.Limits()
	}
	return t.limits
}

func (t *transparent) Children() []Atom { return nonNil(t.Content) }

func (t transparent) clone() transparent {
	t.Content = clone(t.Content)
	return t
}

// Color paints its content (\color, \textcolor, \colorbox without
// padding).
type Color struct {
	transparent
	Foreground, Background *color.Color
}

// NewColor wraps content. Either color may be nil.
func NewColor(content Atom, fg, bg *color.Color) *Color {
	return &Color{transparent: transparent{Content: content}, Foreground: fg, Background: bg}
}

func (c *Color) CreateBox(e env.Environment) *box.Box {
	if c.Foreground != nil {
		e = e.WithColor(c.Foreground)
	}
	if c.Background != nil {
		e = e.WithBackground(c.Background)
	}
	r, ok := c.Content.(*Row)
	if !ok {
		r = NewRow(c.Content)
	}
	return r.CreateBox(e)
}

func (c *Color) Clone() Atom {
	return &Color{transparent: c.transparent.clone(), Foreground: c.Foreground, Background: c.Background}
}

// StyleChange lays its content out in a fixed style (\displaystyle …).
type StyleChange struct {
	transparent
	Style style.Style
}

// NewStyleChange wraps content.
func NewStyleChange(s style.Style, content Atom) *StyleChange {
	return &StyleChange{transparent: transparent{Content: content}, Style: s}
}

func (s *StyleChange) CreateBox(e env.Environment) *box.Box {
	return createBox(s.Content, e.WithStyle(s.Style))
}

func (s *StyleChange) Clone() Atom {
	return &StyleChange{transparent: s.transparent.clone(), Style: s.Style}
}

// Styled lays its content out with a font variant (\mathbf, \mathcal …).
type Styled struct {
	transparent
	Variant font.Variant
}

// NewStyled wraps content.
func NewStyled(v font.Variant, content Atom) *Styled {
	return &Styled{transparent: transparent{Content: content}, Variant: v}
}

func (s *Styled) CreateBox(e env.Environment) *box.Box {
	return createBox(s.Content, e.WithVariant(s.Variant))
}

func (s *Styled) Clone() Atom {
	return &Styled{transparent: s.transparent.clone(), Variant: s.Variant}
}

// Text is a text-mode run (\text, \mbox, \textbf …). It is an Ord.
type Text struct {
	base
	Content Atom
	Variant font.Variant
}

// NewText wraps content laid out in text mode with variant v.
func NewText(v font.Variant, content Atom) *Text {
	return &Text{base: base{typ: class.Ord}, Content: content, Variant: v.AsText()}
}

func (t *Text) CreateBox(e env.Environment) *box.Box {
	return createBox(t.Content, e.WithVariant(t.Variant))
}

func (t *Text) Children() []Atom { return nonNil(t.Content) }

func (t *Text) Clone() Atom {
	return &Text{base: t.base, Content: clone(t.Content), Variant: t.Variant}
}

// Typed forces a category on its content (\mathrel, \mathop …).
type Typed struct {
	base
	Content Atom
}

// NewTyped wraps content as category t.
func NewTyped(t class.Type, content Atom) *Typed {
	a := &Typed{Content: content}
	a.SetType(t)
	return a
}

func (t *Typed) CreateBox(e env.Environment) *box.Box { return createBox(t.Content, e) }

func (t *Typed) Children() []Atom { return nonNil(t.Content) }

func (t *Typed) Clone() Atom {
	return &Typed{base: t.base, Content: clone(t.Content)}
}

// Phantom reserves the selected dimensions of its content and draws
// nothing (\phantom, \hphantom, \vphantom).
type Phantom struct {
	base
	Content              Atom
	Width, Height, Depth bool
}

// NewPhantom wraps content.
func NewPhantom(content Atom, width, height, depth bool) *Phantom {
	return &Phantom{base: base{typ: class.Ord}, Content: content, Width: width, Height: height, Depth: depth}
}

func (p *Phantom) CreateBox(e env.Environment) *box.Box {
	b := createBox(p.Content, e)
	var w, h, d float64
	if p.Width {
		w = b.Width
	}
	if p.Height {
		h = b.Height
	}
	if p.Depth {
		d = b.Depth
	}
	return box.NewStrut(w, h, d, 0)
}

func (p *Phantom) Children() []Atom { return nonNil(p.Content) }

func (p *Phantom) Clone() Atom {
	cp := *p
	cp.Content = clone(p.Content)
	return &cp
}

// Smash draws its content with zero height, depth or both.
type Smash struct {
	base
	Content     Atom
	Top, Bottom bool
}

// NewSmash wraps content.
func NewSmash(content Atom, top, bottom bool) *Smash {
	return &Smash{base: base{typ: class.Ord}, Content: content, Top: top, Bottom: bottom}
}

func (s *Smash) CreateBox(e env.Environment) *box.Box {
	hb := box.NewHBox(createBox(s.Content, e))
	if s.Top {
		hb.Height = 0
	}
	if s.Bottom {
		hb.Depth = 0
	}
	return hb
}

func (s *Smash) Children() []Atom { return nonNil(s.Content) }

func (s *Smash) Clone() Atom {
	cp := *s
	cp.Content = clone(s.Content)
	return &cp
}

// Raise lifts its content (\raisebox). Height and Depth, when set,
// replace the reported dimensions.
type Raise struct {
	base
	Content       Atom
	Raise         env.Length
	Height, Depth *env.Length
}

// NewRaise wraps content.
func NewRaise(content Atom, raise env.Length, height, depth *env.Length) (*Raise, error) {
	ls := []env.Length{raise}
	if height != nil {
		ls = append(ls, *height)
	}
	if depth != nil {
		ls = append(ls, *depth)
	}
	if err := checkUnits(ls...); err != nil {
		return nil, err
	}
	return &Raise{base: base{typ: class.Ord}, Content: content, Raise: raise, Height: height, Depth: depth}, nil
}

func (r *Raise) CreateBox(e env.Environment) *box.Box {
	in := box.NewHBox(createBox(r.Content, e))
	in.Shift = -length(r.Raise, e)
	hb := box.NewHBox(in)
	if r.Height != nil {
		hb.Height = length(*r.Height, e)
	}
	if r.Depth != nil {
		hb.Depth = length(*r.Depth, e)
	}
	return hb
}

func (r *Raise) Children() []Atom { return nonNil(r.Content) }

func (r *Raise) Clone() Atom {
	cp := *r
	cp.Content = clone(r.Content)
	return &cp
}

// Lap draws its content with zero width, overlapping to the left or the
// right (\llap, \rlap).
type Lap struct {
	base
	Content Atom
	Left    bool
}

// NewLap wraps content.
func NewLap(content Atom, left bool) *Lap {
	return &Lap{base: base{typ: class.Ord}, Content: content, Left: left}
}

func (l *Lap) CreateBox(e env.Environment) *box.Box {
	b := createBox(l.Content, e)
	back := box.NewStrut(-b.Width, 0, 0, 0)
	if l.Left {
		return box.NewHBox(back, b)
	}
	return box.NewHBox(b, back)
}

func (l *Lap) Children() []Atom { return nonNil(l.Content) }

func (l *Lap) Clone() Atom {
	return &Lap{base: l.base, Content: clone(l.Content), Left: l.Left}
}

// VCenter centers its content on the math axis.
type VCenter struct {
	base
	Content Atom
}

// NewVCenter wraps content.
func NewVCenter(content Atom) *VCenter {
	return &VCenter{base: base{typ: class.Ord}, Content: content}
}

func (v *VCenter) CreateBox(e env.Environment) *box.Box {
	in := box.NewHBox(createBox(v.Content, e))
	in.Shift = (in.Height-in.Depth)/2 - e.AxisHeight()
	return box.NewHBox(in)
}

func (v *VCenter) Children() []Atom { return nonNil(v.Content) }

func (v *VCenter) Clone() Atom {
	return &VCenter{base: v.base, Content: clone(v.Content)}
}

// Framed draws a rectangle around its content (\fbox, \boxed,
// \fcolorbox, \colorbox). A zero thickness draws only the fill.
type Framed struct {
	base
	Content   Atom
	Sep, Rule env.Length
	Frame     *color.Color
	Fill      *color.Color
}

// Default \fboxsep and \fboxrule.
var (
	FrameSep  = env.Length{Value: 3, Unit: env.Pt}
	FrameRule = env.Length{Value: 0.4, Unit: env.Pt}
)

// NewFramed wraps content. frame and fill may be nil.
func NewFramed(content Atom, sep, rule env.Length, frame, fill *color.Color) (*Framed, error) {
	if err := checkUnits(sep, rule); err != nil {
		return nil, err
	}
	return &Framed{base: base{typ: class.Ord}, Content: content, Sep: sep, Rule: rule, Frame: frame, Fill: fill}, nil
}

func (f *Framed) CreateBox(e env.Environment) *box.Box {
	b := createBox(f.Content, e)
	sep, t := length(f.Sep, e), length(f.Rule, e)

	in := box.NewHBox()
	paint := func(r *box.Box) *box.Box {
		r.Foreground = f.Frame
		return r
	}
	if t > 0 {
		in.Add(paint(box.NewVRule(t, b.Height+sep, b.Depth+sep)))
	}
	pad := box.NewHBox(box.NewStrut(sep, b.Height+sep, b.Depth+sep, 0), b, box.NewStrut(sep, 0, 0, 0))
	pad.Background = f.Fill
	in.Add(pad)
	if t > 0 {
		in.Add(paint(box.NewVRule(t, b.Height+sep, b.Depth+sep)))
	}
	if t <= 0 {
		return in
	}

	vb := box.NewVBox()
	vb.Add(paint(box.NewRule(t, in.Width, 0)))
	vb.Add(in)
	vb.Add(paint(box.NewRule(t, in.Width, 0)))
	vb.Height = t + in.Height
	vb.Depth = in.Depth + t
	return vb
}

func (f *Framed) Children() []Atom { return nonNil(f.Content) }

func (f *Framed) Clone() Atom {
	cp := *f
	cp.Content = clone(f.Content)
	return &cp
}
