package atom

import (
	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/font"
)

// Atom is a node of the formula tree.
type Atom interface {
	// CreateBox lays the atom out in e.
	CreateBox(e env.Environment) *box.Box
	// Type is the category used for limits and reclassification.
	Type() class.Type
	// LeftType is the category seen by the atom's left neighbor.
	LeftType() class.Type
	// RightType is the category seen by the atom's right neighbor.
	RightType() class.Type
	// Limits is the limits override of a big operator.
	Limits() class.Limits
	// Clone returns an independent deep copy.
	Clone() Atom
}

// Overrider is implemented by every atom in this package. The parser uses
// it for \mathop, \limits and \nolimits.
type Overrider interface {
	SetType(t class.Type)
	SetLimits(l class.Limits)
}

// CharSymbol is an atom that resolves to exactly one glyph.
type CharSymbol interface {
	Atom
	// CharFont resolves the glyph identity in e.
	CharFont(e env.Environment) font.CharFont
	// IsText reports whether the glyph was typed in text mode, where it is
	// exempt from math ligatures.
	IsText() bool
}

// Kern is an explicit space. Rows insert no glue on either side of it.
type Kern interface {
	Atom
	isKern()
}

// Composite exposes the children of an atom in reading order. Nil slots
// are omitted.
type Composite interface {
	Atom
	Children() []Atom
}

// base carries the category state shared by every variant.
type base struct {
	typ    class.Type
	limits class.Limits
	// set marks an explicit SetType on transparent atoms.
	set bool
}

func (b *base) Type() class.Type { return b.typ }

func (b *base) LeftType() class.Type { return b.typ }

func (b *base) RightType() class.Type { return b.typ }

func (b *base) Limits() class.Limits { return b.limits }

func (b *base) SetType(t class.Type) {
	b.typ = t
	b.set = true
}

func (b *base) SetLimits(l class.Limits) { b.limits = l }

func construction(format string, args ...any) error {
	return errors.New(errors.ErrCodeConstruction, format, args...)
}

// createBox lays out a, treating nil as an empty box.
func createBox(a Atom, e env.Environment) *box.Box {
	if a == nil {
		return box.NewStrut(0, 0, 0, 0)
	}
	return a.CreateBox(e)
}

func clone(a Atom) Atom {
	if a == nil {
		return nil
	}
	return a.Clone()
}

func cloneAll(as []Atom) []Atom {
	if as == nil {
		return nil
	}
	out := make([]Atom, len(as))
	for i, a := range as {
		out[i] = clone(a)
	}
	return out
}

func nonNil(as ...Atom) []Atom {
	out := make([]Atom, 0, len(as))
	for _, a := range as {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// inner unwraps single-child rows and wrappers down to the atom a script
// or accent actually attaches to.
func inner(a Atom) Atom {
	for {
		switch x := a.(type) {
		case *Row:
			if len(x.Elems) != 1 || x.set {
				return a
			}
			a = x.Elems[0]
		case *Styled:
			a = x.Content
		default:
			return a
		}
	}
}

// center gives b a shift that centers it vertically on the math axis.
func center(b *box.Box, axis float64) {
	b.Shift = -(b.Total()/2 - b.Height) - axis
}

// widen pads b to width w, centering it.
func widen(b *box.Box, w float64) *box.Box {
	if w-b.Width <= font.Prec {
		return b
	}
	return box.NewHBoxAligned(b, w, box.Center)
}
