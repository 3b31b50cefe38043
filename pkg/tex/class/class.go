// Package class defines atom categories and limits modes.
//
// Categories drive inter-atom glue and binary-operator reclassification;
// the limits mode decides whether big-operator scripts are stacked.
package class

import "fmt"

// Type is the TeX category of an atom.
type Type int

// Atom categories. The first eight take part in glue lookups.
const (
	Ord Type = iota
	Op
	Bin
	Rel
	Open
	Close
	Punct
	Inner
	Accent
	Intertext
	Multicolumn
	Hline
	Multirow
)

var typeNames = map[Type]string{
	Ord:         "ord",
	Op:          "op",
	Bin:         "bin",
	Rel:         "rel",
	Open:        "open",
	Close:       "close",
	Punct:       "punct",
	Inner:       "inner",
	Accent:      "accent",
	Intertext:   "intertext",
	Multicolumn: "multicolumn",
	Hline:       "hline",
	Multirow:    "multirow",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Spacing reports whether t is one of the eight categories with glue entries.
func (t Type) Spacing() bool { return t >= Ord && t <= Inner }

// Parse accepts the category names used in the symbol configuration.
func Parse(name string) (Type, error) {
	switch name {
	case "ord", "ordinary", "acc":
		return Ord, nil
	case "op", "bigop", "big operator":
		return Op, nil
	case "bin", "binop", "binary operator":
		return Bin, nil
	case "rel", "relation":
		return Rel, nil
	case "open", "opening":
		return Open, nil
	case "close", "closing":
		return Close, nil
	case "punct", "punctuation":
		return Punct, nil
	case "inner":
		return Inner, nil
	case "accent":
		return Accent, nil
	}
	return Ord, fmt.Errorf("unknown atom type %q", name)
}

// Limits is a big-operator script placement override.
type Limits int

const (
	// Normal places limits above and below in display style only.
	Normal Limits = iota
	// WithLimits always stacks scripts (\limits).
	WithLimits
	// NoLimits always attaches scripts to the side (\nolimits).
	NoLimits
)

func (l Limits) String() string {
	switch l {
	case WithLimits:
		return "limits"
	case NoLimits:
		return "nolimits"
	}
	return "normal"
}
