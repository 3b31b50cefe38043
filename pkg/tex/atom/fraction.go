package atom

import (
	"math"

	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

// NullDelimiterSpace pads both sides of a fraction without delimiters.
var NullDelimiterSpace = env.Length{Value: 0.12, Unit: env.Em}

// Fraction is a generalized fraction: \frac, \over, \atop, \binom,
// \genfrac and their relatives.
type Fraction struct {
	base
	Num, Den Atom
	// Rule draws the fraction bar.
	Rule bool
	// Thickness replaces the default rule thickness when set.
	Thickness *env.Length
	// Factor scales the default rule thickness when Thickness is nil. Zero
	// means one.
	Factor             float64
	NumAlign, DenAlign box.Align
	// Left and Right name delimiter symbols drawn around the fraction at
	// the delim1/delim2 size, replacing the null-delimiter padding.
	Left, Right string
}

// NewFraction returns num over den.
func NewFraction(num, den Atom, rule bool) (*Fraction, error) {
	if num == nil || den == nil {
		return nil, construction("fraction needs a numerator and a denominator")
	}
	return &Fraction{base: base{typ: class.Ord}, Num: num, Den: den, Rule: rule}, nil
}

func (f *Fraction) Children() []Atom { return nonNil(f.Num, f.Den) }

func (f *Fraction) Clone() Atom {
	cp := *f
	cp.Num, cp.Den = clone(f.Num), clone(f.Den)
	if f.Thickness != nil {
		t := *f.Thickness
		cp.Thickness = &t
	}
	return &cp
}

func (f *Fraction) thickness(e env.Environment) float64 {
	if !f.Rule {
		return 0
	}
	if f.Thickness != nil {
		return length(*f.Thickness, e)
	}
	if f.Factor != 0 {
		return f.Factor * e.RuleThickness()
	}
	return e.RuleThickness()
}

func (f *Fraction) CreateBox(e env.Environment) *box.Box {
	p := e.Params()
	theta := f.thickness(e)
	display := e.Style < style.Text

	num := createBox(f.Num, e.Num())
	den := createBox(f.Den, e.Denom())
	if num.Width < den.Width {
		num = box.NewHBoxAligned(num, den.Width, f.NumAlign)
	} else {
		den = box.NewHBoxAligned(den, num.Width, f.DenAlign)
	}

	var shiftUp, shiftDown float64
	switch {
	case display:
		shiftUp, shiftDown = p.Num1, p.Denom1
	case theta > 0:
		shiftUp, shiftDown = p.Num2, p.Denom2
	default:
		shiftUp, shiftDown = p.Num3, p.Denom2
	}

	vb := box.NewVBox()
	vb.Add(num)
	if theta > 0 {
		clr := theta
		if display {
			clr = 3 * theta
		}
		half := theta / 2
		kern1 := shiftUp - num.Depth - (p.AxisHeight + half)
		kern2 := p.AxisHeight - half - (den.Height - shiftDown)
		if d := clr - kern1; d > 0 {
			shiftUp += d
			kern1 += d
		}
		if d := clr - kern2; d > 0 {
			shiftDown += d
			kern2 += d
		}
		vb.Add(box.NewStrut(0, kern1, 0, 0))
		vb.Add(box.NewRule(theta, num.Width, 0))
		vb.Add(box.NewStrut(0, kern2, 0, 0))
	} else {
		clr := 3 * p.DefaultRuleThickness
		if display {
			clr = 7 * p.DefaultRuleThickness
		}
		kern := shiftUp - num.Depth - (den.Height - shiftDown)
		if d := (clr - kern) / 2; d > 0 {
			shiftUp += d
			shiftDown += d
			kern += 2 * d
		}
		vb.Add(box.NewStrut(0, kern, 0, 0))
	}
	vb.Add(den)
	vb.Height = shiftUp + num.Height
	vb.Depth = shiftDown + den.Depth

	if f.Left == "" && f.Right == "" {
		pad := length(NullDelimiterSpace, e)
		return box.NewHBoxAligned(vb, vb.Width+2*pad, box.Center)
	}
	size := p.Delim2
	if display {
		size = p.Delim1
	}
	hb := box.NewHBox()
	hb.Add(axisDelimiter(f.Left, size, e))
	hb.Add(vb)
	hb.Add(axisDelimiter(f.Right, size, e))
	return hb
}

// maxWidth returns the widest of bs.
func maxWidth(bs ...*box.Box) float64 {
	w := math.Inf(-1)
	for _, b := range bs {
		if b != nil && b.Width > w {
			w = b.Width
		}
	}
	if math.IsInf(w, -1) {
		return 0
	}
	return w
}

// SetAlign aligns the numerator, as \cfrac[l] and \cfrac[r] do.
func (f *Fraction) SetAlign(a box.Align) { f.NumAlign = a }
