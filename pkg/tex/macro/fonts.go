package macro

import (
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/font"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

var (
	roman      = font.Variant{Family: font.Roman}
	bold       = roman.WithBold(true)
	italic     = roman.WithItalic(true)
	sans       = font.Variant{Family: font.Sans}
	mono       = font.Variant{Family: font.Mono}
	boldMath   = font.Variant{}.WithBold(true)
	calligraph = font.Variant{}.WithAlphabet(font.Calligraphic)
	blackboard = font.Variant{}.WithAlphabet(font.Blackboard)
	fraktur    = font.Variant{}.WithAlphabet(font.Fraktur)
)

func fontMacros() []Macro {
	ms := []Macro{
		fixed("displaystyle", 0, restInStyle(style.Display)),
		fixed("textstyle", 0, restInStyle(style.Text)),
		fixed("scriptstyle", 0, restInStyle(style.Script)),
		fixed("scriptscriptstyle", 0, restInStyle(style.ScriptScript)),
		fixed("operatorname", 1, operatorName(class.NoLimits)),
		fixed("operatorname*", 1, operatorName(class.Normal)),
	}

	alphabets := map[string]font.Variant{
		"mathrm":     roman,
		"mathbf":     bold,
		"mathit":     italic,
		"mathsf":     sans,
		"mathtt":     mono,
		"mathnormal": {},
		"mathcal":    calligraph,
		"mathbb":     blackboard,
		"mathfrak":   fraktur,
		"boldsymbol": boldMath,
	}
	for name, v := range alphabets {
		ms = append(ms, fixed(name, 1, styled(v)))
	}

	// Old-style switches apply to the rest of the group.
	switches := map[string]font.Variant{
		"rm":  roman,
		"bf":  bold,
		"it":  italic,
		"sf":  sans,
		"tt":  mono,
		"cal": calligraph,
	}
	for name, v := range switches {
		ms = append(ms, fixed(name, 0, restStyled(v)))
	}

	texts := map[string]font.Variant{
		"text":       {},
		"mbox":       {},
		"textrm":     roman,
		"textnormal": roman,
		"textbf":     bold,
		"textit":     italic,
		"textsf":     sans,
		"texttt":     mono,
	}
	for name, v := range texts {
		ms = append(ms, fixed(name, 1, text(v)))
	}
	return ms
}

func restInStyle(st style.Style) Invoker {
	return func(ctx Context, _ Args) (atom.Atom, error) {
		rest, err := ctx.Rest()
		if err != nil {
			return nil, err
		}
		return atom.NewStyleChange(st, rest), nil
	}
}

func styled(v font.Variant) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		a, err := ctx.Parse(args.Arg(0))
		if err != nil {
			return nil, err
		}
		return atom.NewStyled(v, a), nil
	}
}

func restStyled(v font.Variant) Invoker {
	return func(ctx Context, _ Args) (atom.Atom, error) {
		rest, err := ctx.Rest()
		if err != nil {
			return nil, err
		}
		if ctx.InText() {
			return atom.NewText(v, rest), nil
		}
		return atom.NewStyled(v, rest), nil
	}
}

func text(v font.Variant) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		a, err := ctx.ParseText(args.Arg(0))
		if err != nil {
			return nil, err
		}
		return atom.NewText(v, a), nil
	}
}

// operatorName sets its argument upright as an operator. The starred
// form takes limits in display style only.
func operatorName(l class.Limits) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		a, err := ctx.Parse(args.Arg(0))
		if err != nil {
			return nil, err
		}
		op := atom.NewTyped(class.Op, atom.NewStyled(roman, a))
		op.SetLimits(l)
		return op, nil
	}
}

// word sets s in roman letters without going through the parser.
func word(s string) atom.Atom {
	r := atom.NewRow()
	for _, c := range s {
		r.Add(atom.NewChar(c))
	}
	return atom.NewStyled(roman, r)
}

// inMode parses src in the mode of the invoking command.
func inMode(ctx Context, src string) (atom.Atom, error) {
	if ctx.InText() {
		return ctx.ParseText(src)
	}
	return ctx.Parse(src)
}
