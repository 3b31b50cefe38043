package atom

import (
	"math"

	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/font"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

// ScriptSpace is the space added after every script (\scriptspace).
var ScriptSpace = env.Length{Value: 0.5, Unit: env.Pt}

// Scripts attaches a subscript, a superscript or both to a base. Either
// script may be nil; a nil base attaches to an empty box.
type Scripts struct {
	base
	Base, Sub, Sup Atom
	// Align is Right for prescripts, which are padded to the wider of the
	// two so that both end at the base.
	Align box.Align
}

// NewScripts returns base with scripts.
func NewScripts(b, sub, sup Atom) *Scripts {
	return &Scripts{base: base{typ: class.Ord}, Base: b, Sub: sub, Sup: sup, Align: box.Left}
}

func (s *Scripts) Type() class.Type {
	if s.set || s.Base == nil {
		return s.typ
	}
	return s.Base.Type()
}

func (s *Scripts) LeftType() class.Type {
	if s.set || s.Base == nil {
		return s.typ
	}
	return s.Base.LeftType()
}

func (s *Scripts) RightType() class.Type {
	if s.set || s.Base == nil {
		return s.typ
	}
	return s.Base.RightType()
}

// Limits is the mode set on the scripts themselves, if any, else that of
// the base.
func (s *Scripts) Limits() class.Limits {
	if s.limits != class.Normal || s.Base == nil {
		return s.limits
	}
	return s.Base.Limits()
}

func (s *Scripts) Children() []Atom { return nonNil(s.Base, s.Sub, s.Sup) }

func (s *Scripts) Clone() Atom {
	return &Scripts{base: s.base, Base: clone(s.Base), Sub: clone(s.Sub), Sup: clone(s.Sup), Align: s.Align}
}

// stacksLimits reports whether scripts on b go above and below it in style
// st under limits mode l.
func stacksLimits(b Atom, l class.Limits, st style.Style) bool {
	if b == nil || b.Type() != class.Op {
		return false
	}
	switch l {
	case class.WithLimits:
		return true
	case class.Normal:
		return st < style.Text
	}
	return false
}

func (s *Scripts) CreateBox(e env.Environment) *box.Box {
	if s.Sub == nil && s.Sup == nil {
		return createBox(s.Base, e)
	}
	if stacksLimits(s.Base, s.Limits(), e.Style) {
		op := &BigOperator{base: base{typ: class.Op, limits: class.WithLimits}, Base: s.Base, Under: s.Sub, Over: s.Sup}
		return op.CreateBox(e)
	}

	supEnv, subEnv := e.Sup(), e.Sub()
	var hor *box.Box
	var shiftUp, shiftDown, delta float64

	switch b := inner(s.Base).(type) {
	case *Accented:
		ab := createBox(b.Base, e.Cramp())
		hor = box.NewHBox(createBox(s.Base, e))
		shiftUp = ab.Height - supEnv.Params().SupDrop
		shiftDown = ab.Depth + subEnv.Params().SubDrop
	case *Symbol:
		if b.typ == class.Op {
			c, _ := b.glyph(e)
			cb := box.NewChar(b.opGlyph(c, e))
			center(cb, e.AxisHeight())
			hor = box.NewHBox(cb)
			delta = cb.Glyph.Italic
			if delta > font.Prec && s.Sub == nil {
				hor.Add(box.NewStrut(delta, 0, 0, 0))
				delta = 0
			}
			shiftUp = hor.Height - supEnv.Params().SupDrop
			shiftDown = hor.Depth + subEnv.Params().SubDrop
			break
		}
		hor, delta = charBase(s, b, e)
	case CharSymbol:
		hor, delta = charBase(s, b, e)
	default:
		hor = box.NewHBox(createBox(s.Base, e))
		shiftUp = hor.Height - supEnv.Params().SupDrop
		shiftDown = hor.Depth + subEnv.Params().SubDrop
	}

	p := e.Params()
	xh := math.Abs(e.WithLastFont(hor.LastFontID).XHeight())
	sp := length(ScriptSpace, e)

	if s.Sup == nil {
		sub := box.NewHBox(createBox(s.Sub, subEnv), box.NewStrut(sp, 0, 0, 0))
		shiftDown = math.Max(math.Max(shiftDown, p.Sub1), sub.Height-4*xh/5)
		sub.Shift = shiftDown
		hor.Add(sub)
		return hor
	}

	sup := box.NewHBox(createBox(s.Sup, supEnv), box.NewStrut(sp, 0, 0, 0))
	minUp := p.Sup2
	switch {
	case e.Style == style.Display:
		minUp = p.Sup1
	case e.Style.IsCramped():
		minUp = p.Sup3
	}
	shiftUp = math.Max(math.Max(shiftUp, minUp), sup.Depth+xh/4)

	if s.Sub == nil {
		sup.Shift = -shiftUp
		hor.Add(sup)
		return hor
	}

	sub := box.NewHBox(createBox(s.Sub, subEnv), box.NewStrut(sp, 0, 0, 0))
	shiftDown = math.Max(shiftDown, p.Sub2)
	drt := p.DefaultRuleThickness
	if gap := (shiftUp - sup.Depth) - (sub.Height - shiftDown); gap < 4*drt {
		shiftUp += 4*drt - gap
		if psi := 4*xh/5 - (shiftUp - sup.Depth); psi > 0 {
			shiftUp += psi
			shiftDown -= psi
		}
	}

	if s.Align == box.Right {
		w := math.Max(sup.Width, sub.Width)
		sup = box.NewHBoxAligned(sup, w, box.Right)
		sub = box.NewHBoxAligned(sub, w, box.Right)
	}
	sup.Shift = delta
	vb := box.NewVBox()
	vb.Add(sup)
	vb.Add(box.NewStrut(0, shiftUp-sup.Depth+shiftDown-sub.Height, 0, 0))
	vb.Add(sub)
	vb.Height = shiftUp + sup.Height
	vb.Depth = shiftDown + sub.Depth
	hor.Add(vb)
	return hor
}

// charBase lays out a single-glyph base. Its italic correction either
// widens the base (superscript only) or offsets the superscript.
func charBase(s *Scripts, cs CharSymbol, e env.Environment) (*box.Box, float64) {
	hor := box.NewHBox(createBox(s.Base, e))
	cf := cs.CharFont(e)
	var delta float64
	if !cs.IsText() || !e.Fonts.HasSpace(cf.FontID) {
		delta = e.Fonts.Glyph(cf, e.Style).Italic
	}
	if delta > font.Prec && s.Sub == nil {
		hor.Add(box.NewStrut(delta, 0, 0, 0))
		delta = 0
	}
	return hor, delta
}
