// Package style defines the eight TeX math styles and the total functions
// that derive one style from another.
//
// Styles are small integers: display=0, text=2, script=4, scriptscript=6.
// Each odd value is the cramped variant of the even style below it.
//
// # Derivations
//
// The derivation functions follow TeX's rules (TeXbook appendix G):
// superscripts and subscripts drop one size level (bottoming out at
// scriptscript), numerators and denominators drop from display to text and
// from text to script, and subscripts and denominators are always cramped.
package style

import "fmt"

// Style is a TeX math style level.
type Style int

// The eight math styles.
const (
	Display Style = iota
	DisplayCramped
	Text
	TextCramped
	Script
	ScriptCramped
	ScriptScript
	ScriptScriptCramped
)

var names = [...]string{
	"display", "display'", "text", "text'",
	"script", "script'", "scriptscript", "scriptscript'",
}

// String returns the style name, with a trailing quote for cramped styles.
func (s Style) String() string {
	if s < Display || s > ScriptScriptCramped {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return names[s]
}

// Parse accepts the uncramped style names used by CLI flags and API requests.
func Parse(name string) (Style, error) {
	switch name {
	case "display", "D":
		return Display, nil
	case "text", "T", "inline":
		return Text, nil
	case "script", "S":
		return Script, nil
	case "scriptscript", "SS":
		return ScriptScript, nil
	}
	return Text, fmt.Errorf("unknown style %q (must be one of: display, text, script, scriptscript)", name)
}

// IsCramped reports whether s is a cramped variant.
func (s Style) IsCramped() bool { return s%2 == 1 }

// Cramp returns the cramped variant of s.
func (s Style) Cramp() Style {
	if s.IsCramped() {
		return s
	}
	return s + 1
}

// Sub returns the style of a subscript attached in style s.
func (s Style) Sub() Style { return 2*(s/4) + 4 + 1 }

// Sup returns the style of a superscript attached in style s.
func (s Style) Sup() Style { return 2*(s/4) + 4 + s%2 }

// Num returns the style of a fraction numerator built in style s.
func (s Style) Num() Style { return s + 2 - 2*(s/6) }

// Denom returns the style of a fraction denominator built in style s.
func (s Style) Denom() Style { return 2*(s/2) + 1 + 2 - 2*(s/6) }

// Root returns the style of a radical index.
func (s Style) Root() Style { return ScriptScript }

// Uncramped strips the cramped flag.
func (s Style) Uncramped() Style { return s - s%2 }

// Size is the size level: 0 for display and text, 1 for script, 2 for
// scriptscript.
func (s Style) Size() int {
	switch {
	case s < Script:
		return 0
	case s < ScriptScript:
		return 1
	default:
		return 2
	}
}

// Class is the bucket a style falls into for spacing lookups.
type Class int

// Style classes used as glue table columns.
const (
	ClassDisplay Class = iota
	ClassText
	ClassScript
	ClassScriptScript
)

// ClassNames maps configuration keys to classes.
var ClassNames = map[string]Class{
	"display":      ClassDisplay,
	"text":         ClassText,
	"script":       ClassScript,
	"scriptscript": ClassScriptScript,
}

func (c Class) String() string {
	switch c {
	case ClassDisplay:
		return "display"
	case ClassText:
		return "text"
	case ClassScript:
		return "script"
	case ClassScriptScript:
		return "scriptscript"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Class returns the spacing bucket of s.
func (s Style) Class() Class { return Class(s / 2) }
