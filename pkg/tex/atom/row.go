package atom

import (
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/font"
)

// Row is a horizontal list of atoms.
//
// A row is transparent to its neighbors: its left category is that of its
// first child and its right category that of its last, unless SetType
// fixed it (braced groups are fixed to Ord).
type Row struct {
	base
	Elems []Atom
}

// NewRow returns a row holding elems. Nil elements are dropped.
func NewRow(elems ...Atom) *Row {
	return &Row{Elems: nonNil(elems...)}
}

// Group returns a braced group: a row fixed to Ord.
func Group(elems ...Atom) *Row {
	r := NewRow(elems...)
	r.SetType(class.Ord)
	return r
}

// Add appends a to the row.
func (r *Row) Add(a Atom) {
	if a != nil {
		r.Elems = append(r.Elems, a)
	}
}

// Last returns the final atom, or nil.
func (r *Row) Last() Atom {
	if len(r.Elems) == 0 {
		return nil
	}
	return r.Elems[len(r.Elems)-1]
}

// Pop removes and returns the final atom, or nil.
func (r *Row) Pop() Atom {
	a := r.Last()
	if a != nil {
		r.Elems = r.Elems[:len(r.Elems)-1]
	}
	return a
}

// Len is the number of children.
func (r *Row) Len() int { return len(r.Elems) }

func (r *Row) Type() class.Type {
	if !r.set && len(r.Elems) == 1 {
		return r.Elems[0].Type()
	}
	return r.typ
}

func (r *Row) LeftType() class.Type {
	if r.set || len(r.Elems) == 0 {
		return r.typ
	}
	return r.Elems[0].LeftType()
}

func (r *Row) RightType() class.Type {
	if r.set || len(r.Elems) == 0 {
		return r.typ
	}
	return r.Elems[len(r.Elems)-1].RightType()
}

func (r *Row) Limits() class.Limits {
	if r.limits == class.Normal && len(r.Elems) == 1 {
		return r.Elems[0].Limits()
	}
	return r.limits
}

func (r *Row) Children() []Atom { return r.Elems }

func (r *Row) Clone() Atom {
	return &Row{base: r.base, Elems: cloneAll(r.Elems)}
}

type item struct {
	a    Atom
	kern float64
}

type sides struct{ left, right class.Type }

// CreateBox lays the children out left to right. The row paints the
// colors of e itself and clears them for its children.
func (r *Row) CreateBox(e env.Environment) *box.Box {
	hb := box.NewHBox()
	hb.Foreground, hb.Background = e.Foreground, e.Background
	e.ResetColor()

	items := r.ligatures(e)
	cats := classify(items)
	for i, it := range items {
		if i > 0 && !isKern(items[i-1].a) && !isKern(it.a) {
			if w := e.Glue(cats[i-1].right, cats[i].left); w != 0 {
				hb.Add(box.NewGlue(w))
			}
		}
		b := it.a.CreateBox(e)
		hb.Add(b)
		if b.LastFontID != font.NoFont {
			e = e.WithLastFont(b.LastFontID)
		}
		if it.kern != 0 {
			hb.Add(box.NewStrut(it.kern, 0, 0, 0))
		}
		if t := cats[i].right; t == class.Rel || t == class.Bin {
			hb.MarkBreak()
		}
	}
	return hb
}

// ligatures merges runs of adjacent char symbols into ligature glyphs and
// records the font kern after each glyph.
func (r *Row) ligatures(e env.Environment) []item {
	items := make([]item, 0, len(r.Elems))
	for i := 0; i < len(r.Elems); i++ {
		a := r.Elems[i]
		if _, ok := a.(*Empty); ok {
			continue
		}
		cs, ok := a.(CharSymbol)
		if !ok || cs.IsText() {
			items = append(items, item{a: a})
			continue
		}
		cf := cs.CharFont(e)
		merged := false
		kern := 0.0
		for i+1 < len(r.Elems) {
			next, ok := r.Elems[i+1].(CharSymbol)
			if !ok || next.IsText() {
				break
			}
			ncf := next.CharFont(e)
			if lig, ok := e.Fonts.Ligature(cf, ncf); ok {
				cf = lig
				merged = true
				i++
				continue
			}
			kern = e.Fonts.Kern(cf, ncf, e.Style)
			break
		}
		if merged {
			a = &glyph{base: base{typ: cs.Type()}, cf: cf}
		}
		items = append(items, item{a: a, kern: kern})
	}
	return items
}

// classify computes the effective categories of the items, demoting
// binary operators that lack an operand on either side to Ord.
func classify(items []item) []sides {
	cats := make([]sides, len(items))
	prev := -1
	for i, it := range items {
		cats[i] = sides{it.a.LeftType(), it.a.RightType()}
		if isKern(it.a) {
			continue
		}
		if cats[i].left == class.Bin {
			demote := prev < 0
			if !demote {
				switch cats[prev].right {
				case class.Bin, class.Op, class.Rel, class.Open, class.Punct:
					demote = true
				}
			}
			if demote {
				demoteLeft(&cats[i])
			}
		}
		if prev >= 0 && cats[prev].right == class.Bin {
			switch cats[i].left {
			case class.Rel, class.Close, class.Punct:
				demoteRight(&cats[prev])
			}
		}
		prev = i
	}
	if prev >= 0 && cats[prev].right == class.Bin {
		demoteRight(&cats[prev])
	}
	return cats
}

func demoteLeft(s *sides) {
	if s.right == s.left {
		s.right = class.Ord
	}
	s.left = class.Ord
}

func demoteRight(s *sides) {
	if s.right == s.left {
		s.left = class.Ord
	}
	s.right = class.Ord
}

func isKern(a Atom) bool {
	_, ok := a.(Kern)
	return ok
}
