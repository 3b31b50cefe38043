package font

import "unicode"

// Offsets into the Unicode mathematical alphanumeric block. Holes in the
// block are filled from the letterlike symbols block.
const (
	scriptCapital = 0x1D49C
	frakturLower  = 0x1D51E
	frakturCap    = 0x1D504
	doubleCapital = 0x1D538
	doubleDigit   = 0x1D7D8
)

var scriptHoles = map[rune]rune{
	'B': 'ℬ', 'E': 'ℰ', 'F': 'ℱ', 'H': 'ℋ', 'I': 'ℐ', 'L': 'ℒ', 'M': 'ℳ', 'R': 'ℛ',
}

var frakturHoles = map[rune]rune{
	'C': 'ℭ', 'H': 'ℌ', 'I': 'ℑ', 'R': 'ℜ', 'Z': 'ℨ',
}

var doubleHoles = map[rune]rune{
	'C': 'ℂ', 'H': 'ℍ', 'N': 'ℕ', 'P': 'ℙ', 'Q': 'ℚ', 'R': 'ℝ', 'Z': 'ℤ',
}

func isLatin(c rune) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isGreekLower(c rune) bool {
	if c >= 'α' && c <= 'ω' {
		return true
	}
	switch c {
	case 'ϑ', 'ϕ', 'ϖ', 'ϱ', 'ϵ', 'ϰ':
		return true
	}
	return false
}

func isGreekUpper(c rune) bool { return c >= 'Α' && c <= 'Ω' }

// alphabetRune maps c into a Unicode mathematical alphabet. It reports
// false when the alphabet has no glyph for c.
func alphabetRune(c rune, a Alphabet) (rune, bool) {
	switch a {
	case Calligraphic:
		if c >= 'A' && c <= 'Z' {
			if h, ok := scriptHoles[c]; ok {
				return h, true
			}
			return scriptCapital + (c - 'A'), true
		}
	case Fraktur:
		switch {
		case c >= 'A' && c <= 'Z':
			if h, ok := frakturHoles[c]; ok {
				return h, true
			}
			return frakturCap + (c - 'A'), true
		case c >= 'a' && c <= 'z':
			return frakturLower + (c - 'a'), true
		}
	case Blackboard:
		switch {
		case c >= 'A' && c <= 'Z':
			if h, ok := doubleHoles[c]; ok {
				return h, true
			}
			return doubleCapital + (c - 'A'), true
		case isDigit(c):
			return doubleDigit + (c - '0'), true
		}
	}
	return c, false
}

// fontFor chooses the font and code point for a typed character.
func (s *Set) fontFor(c rune, v Variant) (int, rune) {
	if id, ok := s.blockFont(c); ok {
		return id, c
	}

	if v.Alphabet != Plain {
		if r, ok := alphabetRune(c, v.Alphabet); ok {
			switch v.Alphabet {
			case Calligraphic:
				return s.id(FontCal), r
			case Fraktur:
				return s.id(FontFraktur), r
			default:
				return s.id(FontBlackboard), r
			}
		}
	}

	letter := isLatin(c) || isGreekLower(c)
	switch v.Family {
	case Roman:
		switch {
		case v.Bold && v.Italic:
			return s.first(FontBoldItalic, FontBold, FontRoman), c
		case v.Bold:
			return s.first(FontBold, FontRoman), c
		case v.Italic:
			return s.first(FontTextItalic, FontMathItalic, FontRoman), c
		}
		if letter || isDigit(c) || isGreekUpper(c) {
			return s.id(FontRoman), c
		}
	case Sans:
		if v.Bold {
			return s.first(FontBold, FontSansSerif), c
		}
		return s.first(FontSansSerif, FontRoman), c
	case Mono:
		return s.first(FontTypewriter, FontRoman), c
	default:
		if letter {
			if v.Bold {
				return s.first(FontBoldMath, FontMathItalic), c
			}
			return s.id(FontMathItalic), c
		}
		if isDigit(c) || isGreekUpper(c) {
			if v.Bold {
				return s.first(FontBold, FontRoman), c
			}
			return s.id(FontRoman), c
		}
	}

	// Everything else goes to the first font that actually has the glyph.
	for _, name := range []string{FontRoman, FontSymbols, FontMathItalic, FontExtension} {
		if id, ok := s.byName[name]; ok {
			if _, has := s.fonts[id].chars[c]; has {
				return id, c
			}
		}
	}
	if unicode.IsLetter(c) && v.Family == Math && !v.Text {
		return s.id(FontMathItalic), c
	}
	return s.id(FontRoman), c
}

// first returns the first of the named fonts that exists.
func (s *Set) first(names ...string) int {
	for _, n := range names {
		if id, ok := s.byName[n]; ok {
			return id
		}
	}
	return 0
}
