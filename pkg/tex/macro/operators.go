package macro

import (
	"strings"

	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/class"
)

// Named operators that take limits in display style. Every other name in
// namedOperators attaches its scripts to the side.
var displayLimits = map[string]bool{
	"det": true, "gcd": true, "inf": true, "lim": true, "liminf": true,
	"limsup": true, "max": true, "min": true, "Pr": true, "sup": true,
	"injlim": true, "projlim": true,
}

// namedOperators maps each command to the text it sets; a space becomes a
// thin space.
var namedOperators = map[string]string{
	"arccos": "arccos", "arcsin": "arcsin", "arctan": "arctan", "arg": "arg",
	"cos": "cos", "cosh": "cosh", "cot": "cot", "coth": "coth", "csc": "csc",
	"deg": "deg", "det": "det", "dim": "dim", "exp": "exp", "gcd": "gcd",
	"hom": "hom", "inf": "inf", "ker": "ker", "lg": "lg", "lim": "lim",
	"liminf": "lim inf", "limsup": "lim sup", "ln": "ln", "log": "log",
	"max": "max", "min": "min", "Pr": "Pr", "sec": "sec", "sin": "sin",
	"sinh": "sinh", "sup": "sup", "tan": "tan", "tanh": "tanh",
	"injlim": "inj lim", "projlim": "proj lim",
}

func operatorMacros() []Macro {
	ms := []Macro{
		constant("bmod", func() atom.Atom { return atom.NewTyped(class.Bin, word("mod")) }),
		fixed("pmod", 1, pmod(true)),
		fixed("pod", 1, pmod(false)),
		fixed("mod", 1, mod),
		fixed("not", 1, not),
	}
	for name, text := range namedOperators {
		l := class.NoLimits
		if displayLimits[name] {
			l = class.Normal
		}
		ms = append(ms, constant(name, namedOperator(text, l)))
	}
	return ms
}

// NamedOperator returns an upright operator atom setting text, as
// \DeclareMathOperator does.
func NamedOperator(text string, l class.Limits) atom.Atom {
	return namedOperator(text, l)()
}

func namedOperator(text string, l class.Limits) func() atom.Atom {
	return func() atom.Atom {
		parts := strings.Fields(text)
		r := atom.NewRow()
		for i, p := range parts {
			if i > 0 {
				r.Add(atom.Mu(3))
			}
			r.Add(word(p))
		}
		op := atom.NewTyped(class.Op, r)
		op.SetLimits(l)
		return op
	}
}

// pmod is (mod n) set 18mu after the preceding material; pod omits the
// word.
func pmod(withWord bool) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		a, err := ctx.Parse(args.Arg(0))
		if err != nil {
			return nil, err
		}
		parens, err := symbols(ctx, "lparen", "rparen")
		if err != nil {
			return nil, err
		}
		r := atom.NewRow(atom.Mu(18), parens[0])
		if withWord {
			r.Add(word("mod"))
			r.Add(atom.Mu(6))
		}
		r.Add(a)
		r.Add(parens[1])
		return r, nil
	}
}

func mod(ctx Context, args Args) (atom.Atom, error) {
	a, err := ctx.Parse(args.Arg(0))
	if err != nil {
		return nil, err
	}
	return atom.NewRow(atom.Mu(18), word("mod"), atom.Mu(12), a), nil
}

// not overlays a slash on the following relation.
func not(ctx Context, args Args) (atom.Atom, error) {
	rel, err := ctx.Parse(args.Arg(0))
	if err != nil {
		return nil, err
	}
	slash, err := ctx.Symbol("not")
	if err != nil {
		return nil, err
	}
	return atom.NewTyped(class.Rel, atom.NewRow(atom.NewLap(slash, false), rel)), nil
}
