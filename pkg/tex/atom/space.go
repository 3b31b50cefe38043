package atom

import (
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
)

// Space is explicit horizontal space, optionally with height and depth.
type Space struct {
	base
	Width, Height, Depth env.Length
	// Interword uses the interword space of the last font instead of
	// Width.
	Interword bool
}

// NewSpace returns a space of width w.
func NewSpace(w env.Length) (*Space, error) {
	return NewStrut(w, env.Length{Unit: env.Em}, env.Length{Unit: env.Em})
}

// NewStrut returns an invisible box with the given dimensions.
func NewStrut(w, h, d env.Length) (*Space, error) {
	if err := checkUnits(w, h, d); err != nil {
		return nil, err
	}
	return &Space{base: base{typ: class.Ord}, Width: w, Height: h, Depth: d}, nil
}

// Mu returns a space of n math units. It cannot fail.
func Mu(n float64) *Space {
	return &Space{base: base{typ: class.Ord}, Width: env.Length{Value: n, Unit: env.Mu}}
}

// Em returns a space of n em. It cannot fail.
func Em(n float64) *Space {
	return &Space{base: base{typ: class.Ord}, Width: env.Length{Value: n, Unit: env.Em}}
}

// Interword returns the space typed between words in text mode.
func Interword() *Space {
	return &Space{base: base{typ: class.Ord}, Interword: true}
}

func (s *Space) CreateBox(e env.Environment) *box.Box {
	w := length(s.Width, e)
	if s.Interword {
		w = e.Space()
	}
	h, d := length(s.Height, e), length(s.Depth, e)
	if h == 0 && d == 0 {
		return box.NewGlue(w)
	}
	return box.NewStrut(w, h, d, 0)
}

func (s *Space) isKern() {}

func (s *Space) Clone() Atom {
	cp := *s
	return &cp
}

// Rule is a filled rectangle (\rule).
type Rule struct {
	base
	Width, Height, Raise env.Length
}

// NewRule returns a rule width wide and height tall whose bottom sits
// raise above the baseline.
func NewRule(width, height, raise env.Length) (*Rule, error) {
	if err := checkUnits(width, height, raise); err != nil {
		return nil, err
	}
	return &Rule{base: base{typ: class.Ord}, Width: width, Height: height, Raise: raise}, nil
}

func (r *Rule) CreateBox(e env.Environment) *box.Box {
	return box.NewRule(length(r.Height, e), length(r.Width, e), length(r.Raise, e))
}

func (r *Rule) Clone() Atom {
	cp := *r
	return &cp
}

func checkUnits(ls ...env.Length) error {
	for _, l := range ls {
		if l.Unit == "" && l.Value == 0 {
			continue
		}
		if !env.ValidUnit(l.Unit) {
			return construction("unknown unit %q", string(l.Unit))
		}
	}
	return nil
}

// length converts a validated length. Zero-valued lengths without a unit
// are zero.
func length(l env.Length, e env.Environment) float64 {
	if l.Value == 0 {
		return 0
	}
	v, err := l.In(e)
	if err != nil {
		return 0
	}
	return v
}
