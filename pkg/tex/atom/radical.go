package atom

import (
	"math"

	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

// RootRaise is the fraction of the radical's height minus depth by which
// the index is raised.
var RootRaise = 0.6

// Radical is \sqrt with an optional index.
type Radical struct {
	base
	Base, Index Atom
}

// NewRadical returns the root of b. index may be nil.
func NewRadical(b, index Atom) (*Radical, error) {
	if b == nil {
		return nil, construction("radical needs a radicand")
	}
	return &Radical{base: base{typ: class.Ord}, Base: b, Index: index}, nil
}

func (r *Radical) Children() []Atom { return nonNil(r.Base, r.Index) }

func (r *Radical) Clone() Atom {
	return &Radical{base: r.base, Base: clone(r.Base), Index: clone(r.Index)}
}

func (r *Radical) CreateBox(e env.Environment) *box.Box {
	drt := e.RuleThickness()
	phi := drt
	if e.Style < style.Text {
		if c, ok := e.Fonts.Symbol("sqrt", e.Style); ok {
			phi = e.Fonts.XHeight(e.Style, c.FontID)
		}
	}
	clr := drt + math.Abs(phi)/4

	ce := e.Cramp()
	b := box.NewHBox(createBox(r.Base, ce), box.NewStrut(ce.Mu(), 0, 0, 0))
	total := b.Total()

	sign := Delimiter("sqrt", total+clr+drt, e)
	clr += (sign.Depth - (total + clr)) / 2
	sign.Shift = -(b.Height + clr)
	sq := box.NewHBox(sign, overBar(b, clr, sign.Height))
	if r.Index == nil {
		return sq
	}

	idx := box.NewHBox(createBox(r.Index, e.Root()))
	idx.Shift = -RootRaise * (sq.Height - sq.Depth)
	mu := e.Mu()
	return box.NewHBox(box.NewStrut(5*mu, 0, 0, 0), idx, box.NewStrut(-10*mu, 0, 0, 0), sq)
}
