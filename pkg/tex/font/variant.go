package font

// Family selects the typeface family of a run of characters.
type Family int

const (
	// Math is the default math family: italic letters, upright digits.
	Math Family = iota
	Roman
	Sans
	Mono
)

// Alphabet selects a Unicode mathematical alphabet.
type Alphabet int

const (
	Plain Alphabet = iota
	Calligraphic
	Blackboard
	Fraktur
)

// Variant is the immutable font style descriptor carried by the layout
// environment.
type Variant struct {
	Family   Family
	Bold     bool
	Italic   bool
	Alphabet Alphabet
	// Text marks text-mode runs, where ligatures and interword spaces apply.
	Text bool
}

// WithFamily returns v with the family replaced and the alphabet reset.
func (v Variant) WithFamily(f Family) Variant {
	v.Family = f
	v.Alphabet = Plain
	return v
}

// WithBold returns v with the weight set.
func (v Variant) WithBold(b bool) Variant {
	v.Bold = b
	return v
}

// WithItalic returns v with the slant set.
func (v Variant) WithItalic(i bool) Variant {
	v.Italic = i
	return v
}

// WithAlphabet returns v drawing letters from a mathematical alphabet.
func (v Variant) WithAlphabet(a Alphabet) Variant {
	v.Alphabet = a
	return v
}

// AsText returns v in text mode with the roman family.
func (v Variant) AsText() Variant {
	v.Text = true
	if v.Family == Math {
		v.Family = Roman
	}
	return v
}

// AsMath returns v in math mode.
func (v Variant) AsMath() Variant {
	v.Text = false
	return v
}

// String renders the descriptor for structural dumps.
func (v Variant) String() string {
	s := [...]string{"math", "roman", "sans", "mono"}[v.Family]
	if v.Bold {
		s += "+bold"
	}
	if v.Italic {
		s += "+italic"
	}
	switch v.Alphabet {
	case Calligraphic:
		s += "+cal"
	case Blackboard:
		s += "+bb"
	case Fraktur:
		s += "+frak"
	}
	if v.Text {
		s += "+text"
	}
	return s
}
