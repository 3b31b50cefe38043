package macro

import (
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/class"
)

// Accent commands and the symbol each draws.
var accents = map[string]string{
	"hat":       "hat",
	"widehat":   "widehat",
	"tilde":     "tilde",
	"widetilde": "widetilde",
	"bar":       "bar",
	"vec":       "vec",
	"dot":       "dot",
	"ddot":      "ddot",
	"acute":     "acute",
	"grave":     "grave",
	"check":     "check",
	"breve":     "breve",
	"mathring":  "mathring",
}

func accentMacros() []Macro {
	ms := []Macro{
		fixed("dddot", 1, dddot),
		fixed("overline", 1, wrap(func(a atom.Atom) atom.Atom { return atom.NewOverBar(a) })),
		fixed("underline", 1, wrap(func(a atom.Atom) atom.Atom { return atom.NewUnderBar(a) })),
		fixed("overbrace", 1, wrap(func(a atom.Atom) atom.Atom { return atom.NewBrace(a, "overbrace", true) })),
		fixed("underbrace", 1, wrap(func(a atom.Atom) atom.Atom { return atom.NewBrace(a, "underbrace", false) })),
		fixed("overrightarrow", 1, wrap(func(a atom.Atom) atom.Atom { return atom.NewArrowOver(a, "rightarrow") })),
		fixed("overleftarrow", 1, wrap(func(a atom.Atom) atom.Atom { return atom.NewArrowOver(a, "leftarrow") })),
		optional("xrightarrow", 1, OptFirst, xarrow("rightarrow", false)),
		optional("xleftarrow", 1, OptFirst, xarrow("leftarrow", true)),
	}
	for name, sym := range accents {
		ms = append(ms, fixed(name, 1, accent(sym)))
	}
	return ms
}

// wrap builds a one-argument macro from an atom constructor.
func wrap(build func(atom.Atom) atom.Atom) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		a, err := ctx.Parse(args.Arg(0))
		if err != nil {
			return nil, err
		}
		return build(a), nil
	}
}

func accent(name string) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		b, err := ctx.Parse(args.Arg(0))
		if err != nil {
			return nil, err
		}
		s, err := ctx.Symbol(name)
		if err != nil {
			return nil, err
		}
		return atom.NewAccented(b, s, false)
	}
}

// dddot has no glyph of its own: three dots set in script size.
func dddot(ctx Context, args Args) (atom.Atom, error) {
	b, err := ctx.Parse(args.Arg(0))
	if err != nil {
		return nil, err
	}
	dots, err := symbols(ctx, "ldotp", "ldotp", "ldotp")
	if err != nil {
		return nil, err
	}
	return atom.NewAccented(b, atom.NewTyped(class.Ord, atom.NewRow(dots...)), true)
}

// xarrow is \xrightarrow[under]{over}.
func xarrow(glyph string, left bool) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		over, err := ctx.Parse(args.Arg(0))
		if err != nil {
			return nil, err
		}
		var under atom.Atom
		if args.HasOpt {
			if under, err = ctx.Parse(args.Opt); err != nil {
				return nil, err
			}
		}
		return atom.NewXArrow(glyph, over, under, left), nil
	}
}
