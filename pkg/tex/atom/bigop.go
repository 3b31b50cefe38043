package atom

import (
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

// BigOperator places limits above and below an operator. In text style,
// or when the operator asks for \nolimits, it falls back to scripts.
type BigOperator struct {
	base
	Base, Under, Over Atom
}

// NewBigOperator returns op with limits. The limits mode starts from that
// of op.
func NewBigOperator(op, under, over Atom) (*BigOperator, error) {
	if op == nil {
		return nil, construction("big operator needs an operator")
	}
	return &BigOperator{base: base{typ: class.Op, limits: op.Limits()}, Base: op, Under: under, Over: over}, nil
}

func (o *BigOperator) Children() []Atom { return nonNil(o.Base, o.Under, o.Over) }

func (o *BigOperator) Clone() Atom {
	return &BigOperator{base: o.base, Base: clone(o.Base), Under: clone(o.Under), Over: clone(o.Over)}
}

func (o *BigOperator) CreateBox(e env.Environment) *box.Box {
	if o.limits == class.NoLimits || (o.limits == class.Normal && e.Style >= style.Text) {
		sc := NewScripts(o.Base, o.Under, o.Over)
		sc.limits = o.limits
		return sc.CreateBox(e)
	}

	var y *box.Box
	var delta float64
	if s, ok := inner(o.Base).(*Symbol); ok && s.typ == class.Op {
		c, _ := s.glyph(e)
		cb := box.NewChar(s.opGlyph(c, e))
		center(cb, e.AxisHeight())
		y = box.NewHBox(cb)
		delta = cb.Glyph.Italic
	} else {
		y = box.NewHBox(createBox(o.Base, e))
	}

	var x, z *box.Box
	if o.Over != nil {
		x = createBox(o.Over, e.Sup())
	}
	if o.Under != nil {
		z = createBox(o.Under, e.Sub())
	}
	w := maxWidth(x, y, z)
	y = widen(y, w)

	p := e.Params()
	vb := box.NewVBox()
	var kern float64
	if x != nil {
		x = widen(x, w)
		vb.Add(box.NewStrut(0, p.BigOpSpacing5, 0, 0))
		x.Shift = delta / 2
		vb.Add(x)
		kern = max(p.BigOpSpacing1, p.BigOpSpacing3-x.Depth)
		vb.Add(box.NewStrut(0, kern, 0, 0))
	}
	vb.Add(y)
	if z != nil {
		z = widen(z, w)
		vb.Add(box.NewStrut(0, max(p.BigOpSpacing2, p.BigOpSpacing4-z.Height), 0, 0))
		z.Shift = -delta / 2
		vb.Add(z)
		vb.Add(box.NewStrut(0, p.BigOpSpacing5, 0, 0))
	}

	h := y.Height
	if x != nil {
		h += p.BigOpSpacing5 + x.Total() + kern
	}
	vb.SetBaseline(h)
	return vb
}
