package atom

import (
	"math"

	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/font"
)

// Accented puts an accent over a base. A *Symbol accent is a simple
// accent: the widest variant that fits the base is chosen and it sits at
// min(base height, x-height) below the usual position. Any other atom is a
// composite accent, separated from the base by 1mu.
type Accented struct {
	base
	Base, Accent Atom
	// ChangeSize lays a composite accent out in subscript style.
	ChangeSize bool
}

// NewAccented returns b under accent.
func NewAccented(b, accent Atom, changeSize bool) (*Accented, error) {
	if accent == nil {
		return nil, construction("accent is missing")
	}
	if s, ok := accent.(*Symbol); ok && s.typ != class.Accent {
		return nil, construction("symbol %q is not an accent", s.Name)
	}
	return &Accented{base: base{typ: class.Ord}, Base: b, Accent: accent, ChangeSize: changeSize}, nil
}

func (a *Accented) Children() []Atom { return nonNil(a.Base, a.Accent) }

func (a *Accented) Clone() Atom {
	return &Accented{base: a.base, Base: clone(a.Base), Accent: clone(a.Accent), ChangeSize: a.ChangeSize}
}

// accentBox returns the accent box and the kern removed between it and a
// base of width u and height h.
func (a *Accented) accentBox(e env.Environment, u, h float64) (*box.Box, float64) {
	sym, ok := a.Accent.(*Symbol)
	if !ok {
		ae := e
		if a.ChangeSize {
			ae = e.Sub()
		}
		return a.Accent.CreateBox(ae), -e.Mu()
	}
	ch, _ := e.Fonts.Symbol(sym.Name, e.Style)
	for e.Fonts.HasNextLarger(ch) {
		larger := e.Fonts.NextLarger(ch, e.Style)
		if larger.Width > u {
			break
		}
		ch = larger
	}
	delta := math.Min(h, e.Fonts.XHeight(e.Style, ch.FontID))
	cb := box.NewChar(ch)
	if math.Abs(ch.Italic) > font.Prec {
		return box.NewHBox(box.NewStrut(-ch.Italic, 0, 0, 0), cb), delta
	}
	return cb, delta
}

func (a *Accented) CreateBox(e env.Environment) *box.Box {
	b := createBox(a.Base, e.Cramp())
	u := b.Width
	var skew float64
	if cs, ok := inner(a.Base).(CharSymbol); ok {
		skew = e.Fonts.Skew(cs.CharFont(e), e.Style)
	}

	y, delta := a.accentBox(e, u, b.Height)
	diff := (u - y.Width) / 2
	y.Shift = skew + math.Max(diff, 0)
	if diff < 0 {
		b = box.NewHBoxAligned(b, y.Width, box.Center)
	}

	vb := box.NewVBox()
	vb.Add(y)
	vb.Add(box.NewStrut(0, -delta, 0, 0))
	vb.Add(b)
	vb.SetBaseline(vb.Total() - b.Depth)
	if diff < 0 {
		return box.NewHBox(box.NewStrut(diff, 0, 0, 0), vb, box.NewStrut(diff, 0, 0, 0))
	}
	return vb
}
