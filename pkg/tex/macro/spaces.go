package macro

import (
	"strings"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

func spaceMacros() []Macro {
	mu := func(n float64) func() atom.Atom { return func() atom.Atom { return atom.Mu(n) } }
	em := func(n float64) func() atom.Atom { return func() atom.Atom { return atom.Em(n) } }
	return []Macro{
		constant(",", mu(3)),
		constant(":", mu(4)),
		constant(">", mu(4)),
		constant(";", mu(5)),
		constant("!", mu(-3)),
		constant(" ", func() atom.Atom { return atom.Interword() }),
		constant("thinspace", mu(3)),
		constant("medspace", mu(4)),
		constant("thickspace", mu(5)),
		constant("negthinspace", mu(-3)),
		constant("negmedspace", mu(-4)),
		constant("negthickspace", mu(-5)),
		constant("enspace", em(0.5)),
		constant("quad", em(1)),
		constant("qquad", em(2)),
		fixed("hspace", 1, hspace),
		fixed("hspace*", 1, hspace),
		fixed("kern", 0, kern),
		fixed("hskip", 0, kern),
		fixed("mkern", 0, kern),
		fixed("mskip", 0, kern),
	}
}

func hspace(_ Context, args Args) (atom.Atom, error) {
	l, err := parseLength(args.Arg(0))
	if err != nil {
		return nil, err
	}
	return atom.NewSpace(l)
}

// kern reads its dimension straight from the input: \kern-2pt.
func kern(ctx Context, _ Args) (atom.Atom, error) {
	l, err := ctx.ReadLength()
	if err != nil {
		return nil, err
	}
	return atom.NewSpace(l)
}

var (
	strutHeight = env.Length{Value: 8.5, Unit: env.Pt}
	strutDepth  = env.Length{Value: 3.5, Unit: env.Pt}
)

func boxMacros() []Macro {
	return []Macro{
		fixed("phantom", 1, phantom(true, true, true)),
		fixed("hphantom", 1, phantom(true, false, false)),
		fixed("vphantom", 1, phantom(false, true, true)),
		optional("smash", 1, OptFirst, smash),
		fixed("mathstrut", 0, mathstrut),
		fixed("strut", 0, func(Context, Args) (atom.Atom, error) {
			return atom.NewStrut(env.Length{}, strutHeight, strutDepth)
		}),
		optional("rule", 2, OptFirst, rule),
		fixed("raisebox", 2, raisebox),
		fixed("llap", 1, lap(true, true)),
		fixed("rlap", 1, lap(false, true)),
		fixed("mathllap", 1, lap(true, false)),
		fixed("mathrlap", 1, lap(false, false)),
		fixed("vcenter", 1, wrap(func(a atom.Atom) atom.Atom { return atom.NewVCenter(a) })),
		fixed("fbox", 1, fbox),
		fixed("boxed", 1, boxed),
	}
}

func phantom(w, h, d bool) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		a, err := inMode(ctx, args.Arg(0))
		if err != nil {
			return nil, err
		}
		return atom.NewPhantom(a, w, h, d), nil
	}
}

// smash is \smash[t]{x}, \smash[b]{x} or \smash{x}.
func smash(ctx Context, args Args) (atom.Atom, error) {
	a, err := inMode(ctx, args.Arg(0))
	if err != nil {
		return nil, err
	}
	switch strings.TrimSpace(args.OptOr("tb")) {
	case "t":
		return atom.NewSmash(a, true, false), nil
	case "b":
		return atom.NewSmash(a, false, true), nil
	case "tb", "bt", "":
		return atom.NewSmash(a, true, true), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, `\smash takes [t] or [b], got [%s]`, args.Opt)
}

// mathstrut is an invisible parenthesis.
func mathstrut(ctx Context, _ Args) (atom.Atom, error) {
	p, err := ctx.Symbol("lparen")
	if err != nil {
		return nil, err
	}
	return atom.NewPhantom(p, false, true, true), nil
}

// rule is \rule[raise]{width}{height}.
func rule(_ Context, args Args) (atom.Atom, error) {
	w, err := parseLength(args.Arg(0))
	if err != nil {
		return nil, err
	}
	h, err := parseLength(args.Arg(1))
	if err != nil {
		return nil, err
	}
	var raise env.Length
	if args.HasOpt {
		if raise, err = parseLength(args.Opt); err != nil {
			return nil, err
		}
	}
	return atom.NewRule(w, h, raise)
}

// raisebox is \raisebox{lift}{text}.
func raisebox(ctx Context, args Args) (atom.Atom, error) {
	l, err := parseLength(args.Arg(0))
	if err != nil {
		return nil, err
	}
	a, err := ctx.ParseText(args.Arg(1))
	if err != nil {
		return nil, err
	}
	return atom.NewRaise(atom.NewText(roman, a), l, nil, nil)
}

func lap(left, text bool) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		if !text {
			a, err := ctx.Parse(args.Arg(0))
			if err != nil {
				return nil, err
			}
			return atom.NewLap(a, left), nil
		}
		a, err := ctx.ParseText(args.Arg(0))
		if err != nil {
			return nil, err
		}
		return atom.NewLap(atom.NewText(roman, a), left), nil
	}
}

func fbox(ctx Context, args Args) (atom.Atom, error) {
	a, err := ctx.ParseText(args.Arg(0))
	if err != nil {
		return nil, err
	}
	return atom.NewFramed(atom.NewText(roman, a), atom.FrameSep, atom.FrameRule, nil, nil)
}

// boxed frames a formula set in display style.
func boxed(ctx Context, args Args) (atom.Atom, error) {
	a, err := ctx.Parse(args.Arg(0))
	if err != nil {
		return nil, err
	}
	return atom.NewFramed(atom.NewStyleChange(style.Display, a), atom.FrameSep, atom.FrameRule, nil, nil)
}

func classMacros() []Macro {
	classes := map[string]class.Type{
		"mathord":   class.Ord,
		"mathop":    class.Op,
		"mathbin":   class.Bin,
		"mathrel":   class.Rel,
		"mathopen":  class.Open,
		"mathclose": class.Close,
		"mathpunct": class.Punct,
		"mathinner": class.Inner,
	}
	ms := make([]Macro, 0, len(classes))
	for name, t := range classes {
		ms = append(ms, fixed(name, 1, typed(t)))
	}
	return ms
}

func typed(t class.Type) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		a, err := ctx.Parse(args.Arg(0))
		if err != nil {
			return nil, err
		}
		return atom.NewTyped(t, a), nil
	}
}
