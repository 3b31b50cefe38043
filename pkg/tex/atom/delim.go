package atom

import (
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/font"
)

// Delimiter sizing of \left and \right: the delimiter covers at least
// DelimiterFactor/1000 of the content and at most DelimiterShortfall less.
var (
	DelimiterFactor    = 901.0
	DelimiterShortfall = env.Length{Value: 5, Unit: env.Pt}
)

// Delimiter returns the named delimiter at least minHeight tall. It walks
// the chain of larger glyphs and falls back to an extensible vbox built
// from repeated pieces. When neither reaches minHeight the largest glyph is
// used. Unknown names give an empty box.
func Delimiter(name string, minHeight float64, e env.Environment) *box.Box {
	c, ok := e.Fonts.Symbol(name, e.Style)
	if !ok {
		return box.NewStrut(0, 0, 0, 0)
	}
	for c.Total() < minHeight && e.Fonts.HasNextLarger(c) {
		c = e.Fonts.NextLarger(c, e.Style)
	}
	if c.Total() >= minHeight || !e.Fonts.IsExtensible(c) {
		return box.NewChar(c)
	}
	return extensible(e.Fonts.Extension(c, e.Style), minHeight)
}

func extensible(ext font.Extension, minHeight float64) *box.Box {
	vb := box.NewVBox()
	for _, p := range []*font.Char{ext.Top, ext.Middle, ext.Bottom} {
		if p != nil {
			vb.Add(box.NewChar(*p))
		}
	}
	if ext.Repeat == nil || ext.Repeat.Total() <= font.Prec {
		return vb
	}
	rep := *ext.Repeat
	for vb.Total() <= minHeight {
		switch {
		case ext.Top != nil && ext.Bottom != nil:
			vb.AddAt(1, box.NewChar(rep))
			if ext.Middle != nil {
				vb.AddAt(len(vb.Children)-1, box.NewChar(rep))
			}
		case ext.Bottom != nil:
			vb.AddAt(0, box.NewChar(rep))
		default:
			vb.Add(box.NewChar(rep))
		}
	}
	return vb
}

// fenceHeight is the delimiter size needed around b.
func fenceHeight(b *box.Box, e env.Environment) float64 {
	axis := e.AxisHeight()
	delta := max(b.Height-axis, b.Depth+axis)
	return max(delta/500*DelimiterFactor, 2*delta-length(DelimiterShortfall, e))
}

// axisDelimiter returns the named delimiter centered on the axis, or the
// null delimiter when name is empty.
func axisDelimiter(name string, minHeight float64, e env.Environment) *box.Box {
	if name == "" {
		return box.NewStrut(length(NullDelimiterSpace, e), 0, 0, 0)
	}
	d := Delimiter(name, minHeight, e)
	center(d, e.AxisHeight())
	return box.NewHBox(d)
}

// delimiterName accepts a delimiter symbol or nil for the null delimiter.
func delimiterName(a Atom) (string, error) {
	if a == nil {
		return "", nil
	}
	s, ok := inner(a).(*Symbol)
	if !ok {
		return "", construction("missing delimiter")
	}
	if !s.Delimiter {
		return "", construction("symbol %q is not a delimiter", s.Name)
	}
	return s.Name, nil
}

// Fenced is a \left...\right group. Empty names are null delimiters.
type Fenced struct {
	base
	Left, Right string
	Content     Atom
}

// NewFenced returns content between left and right, which must be
// delimiter symbols or nil.
func NewFenced(left, content, right Atom) (*Fenced, error) {
	l, err := delimiterName(left)
	if err != nil {
		return nil, err
	}
	r, err := delimiterName(right)
	if err != nil {
		return nil, err
	}
	return &Fenced{base: base{typ: class.Inner}, Left: l, Right: r, Content: content}, nil
}

func (f *Fenced) Children() []Atom { return nonNil(f.Content) }

func (f *Fenced) Clone() Atom {
	return &Fenced{base: f.base, Left: f.Left, Right: f.Right, Content: clone(f.Content)}
}

func (f *Fenced) CreateBox(e env.Environment) *box.Box {
	b := createBox(f.Content, e)
	minHeight := fenceHeight(b, e)
	if hasMiddle(f.Content) {
		b = createBox(f.Content, e.WithFenceHeight(minHeight))
	}

	hb := box.NewHBox()
	hb.Add(axisDelimiter(f.Left, minHeight, e))
	space := f.Content == nil || isKern(f.Content)
	if !space {
		hb.Add(box.NewGlue(e.Glue(class.Open, f.Content.LeftType())))
	}
	hb.Add(b)
	if !space {
		hb.Add(box.NewGlue(e.Glue(f.Content.RightType(), class.Close)))
	}
	hb.Add(axisDelimiter(f.Right, minHeight, e))
	return hb
}

// hasMiddle reports whether a \middle belongs to this fence level.
func hasMiddle(a Atom) bool {
	switch x := a.(type) {
	case nil:
		return false
	case *Middle:
		return true
	case *Fenced:
		return false
	case Composite:
		for _, c := range x.Children() {
			if hasMiddle(c) {
				return true
			}
		}
	}
	return false
}

// Middle is a \middle delimiter. It grows to the size of the enclosing
// fence and spaces like a closing delimiter on its left and an opening one
// on its right.
type Middle struct {
	base
	Name string
}

// NewMiddle returns a \middle delimiter.
func NewMiddle(delim Atom) (*Middle, error) {
	n, err := delimiterName(delim)
	if err != nil {
		return nil, err
	}
	if n == "" {
		return nil, construction("missing delimiter")
	}
	return &Middle{base: base{typ: class.Ord}, Name: n}, nil
}

func (m *Middle) LeftType() class.Type { return class.Close }

func (m *Middle) RightType() class.Type { return class.Open }

func (m *Middle) CreateBox(e env.Environment) *box.Box {
	return axisDelimiter(m.Name, e.FenceHeight, e)
}

func (m *Middle) Clone() Atom { return &Middle{base: m.base, Name: m.Name} }

// bigHeights are the nominal heights of \big, \Big, \bigg and \Bigg.
var bigHeights = [...]float64{0.85, 1.15, 1.45, 1.75}

// BigDelimiter is a delimiter of fixed size: \big( or \Biggr].
type BigDelimiter struct {
	base
	Name string
	Size int
}

// NewBigDelimiter returns delim at size 1 to 4. The category comes from the
// l, m or r suffix of the command and is Ord otherwise.
func NewBigDelimiter(delim Atom, size int, t class.Type) (*BigDelimiter, error) {
	if size < 1 || size > len(bigHeights) {
		return nil, construction("delimiter size %d out of range", size)
	}
	n, err := delimiterName(delim)
	if err != nil {
		return nil, err
	}
	if n == "" {
		return nil, construction("missing delimiter")
	}
	return &BigDelimiter{base: base{typ: t}, Name: n, Size: size}, nil
}

func (d *BigDelimiter) CreateBox(e env.Environment) *box.Box {
	h := length(env.Length{Value: bigHeights[d.Size-1], Unit: env.Em}, e)
	return axisDelimiter(d.Name, fenceHeight(box.NewStrut(0, h, 0, 0), e), e)
}

func (d *BigDelimiter) Clone() Atom { return &BigDelimiter{base: d.base, Name: d.Name, Size: d.Size} }
