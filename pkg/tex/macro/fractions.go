package macro

import (
	"strings"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

func fractionMacros() []Macro {
	return []Macro{
		fixed("frac", 2, frac(-1)),
		fixed("dfrac", 2, frac(style.Display)),
		fixed("tfrac", 2, frac(style.Text)),
		optional("cfrac", 2, OptFirst, cfrac),
		fixed("genfrac", 6, genfrac),
		fixed("binom", 2, binom(-1)),
		fixed("dbinom", 2, binom(style.Display)),
		fixed("tbinom", 2, binom(style.Text)),
		optional("sqrt", 1, OptFirst, sqrt),
	}
}

// inStyle wraps a in a style change unless st is negative.
func inStyle(st style.Style, a atom.Atom) atom.Atom {
	if st < 0 {
		return a
	}
	return atom.NewStyleChange(st, a)
}

func frac(st style.Style) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		as, err := parseArgs(ctx, args)
		if err != nil {
			return nil, err
		}
		f, err := atom.NewFraction(as[0], as[1], true)
		if err != nil {
			return nil, err
		}
		return inStyle(st, f), nil
	}
}

func binom(st style.Style) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		as, err := parseArgs(ctx, args)
		if err != nil {
			return nil, err
		}
		f, err := atom.NewFraction(as[0], as[1], false)
		if err != nil {
			return nil, err
		}
		f.Left, f.Right = "lparen", "rparen"
		return inStyle(st, f), nil
	}
}

// cfrac sets a continued fraction: both parts in display style, the
// numerator optionally flushed left or right.
func cfrac(ctx Context, args Args) (atom.Atom, error) {
	as, err := parseArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	align := box.Center
	switch args.OptOr("c") {
	case "l":
		align = box.Left
	case "r":
		align = box.Right
	case "c":
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, `\cfrac alignment must be l, c or r, got %q`, args.Opt)
	}
	num := atom.NewStyleChange(style.Display, as[0])
	den := atom.NewStyleChange(style.Display, as[1])
	f, err := atom.NewFraction(num, den, true)
	if err != nil {
		return nil, err
	}
	f.SetAlign(align)
	return atom.NewStyleChange(style.Display, f), nil
}

// genfrac is \genfrac{left}{right}{thickness}{style}{num}{den}.
func genfrac(ctx Context, args Args) (atom.Atom, error) {
	left, err := delimiter(ctx, args.Arg(0))
	if err != nil {
		return nil, err
	}
	right, err := delimiter(ctx, args.Arg(1))
	if err != nil {
		return nil, err
	}
	num, err := ctx.Parse(args.Arg(4))
	if err != nil {
		return nil, err
	}
	den, err := ctx.Parse(args.Arg(5))
	if err != nil {
		return nil, err
	}

	f, err := atom.NewFraction(num, den, true)
	if err != nil {
		return nil, err
	}
	f.Left, f.Right = left, right
	if t := strings.TrimSpace(args.Arg(2)); t != "" {
		l, err := parseLength(t)
		if err != nil {
			return nil, err
		}
		f.Thickness = &l
		f.Rule = l.Value != 0
	}

	st := style.Style(-1)
	switch s := strings.TrimSpace(args.Arg(3)); s {
	case "":
	case "0", "1", "2", "3":
		st = style.Style(2 * int(s[0]-'0'))
	default:
		return nil, errors.New(errors.ErrCodeInvalidNumber, `\genfrac style must be 0 to 3, got %q`, s)
	}
	return inStyle(st, f), nil
}

func sqrt(ctx Context, args Args) (atom.Atom, error) {
	b, err := ctx.Parse(args.Arg(0))
	if err != nil {
		return nil, err
	}
	var index atom.Atom
	if args.HasOpt {
		if index, err = ctx.Parse(args.Opt); err != nil {
			return nil, err
		}
	}
	return atom.NewRadical(b, index)
}
