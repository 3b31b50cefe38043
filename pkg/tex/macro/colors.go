package macro

import (
	"strings"

	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/env"
)

func colorMacros() []Macro {
	return []Macro{
		optional("color", 1, OptFirst, colorSwitch),
		optional("textcolor", 2, OptFirst, textColor),
		optional("colorbox", 2, OptFirst, colorBox),
		optional("fcolorbox", 3, OptFirst, fcolorBox),
		fixed("definecolor", 3, defineColor),
	}
}

// resolve reads the color argument i, using the optional argument as the
// color model.
func resolve(ctx Context, args Args, i int) (*color.Color, error) {
	c, err := ctx.Color(strings.TrimSpace(args.OptOr("")), strings.TrimSpace(args.Arg(i)))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func colorSwitch(ctx Context, args Args) (atom.Atom, error) {
	c, err := resolve(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	rest, err := ctx.Rest()
	if err != nil {
		return nil, err
	}
	return atom.NewColor(rest, c, nil), nil
}

func textColor(ctx Context, args Args) (atom.Atom, error) {
	c, err := resolve(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	a, err := inMode(ctx, args.Arg(1))
	if err != nil {
		return nil, err
	}
	return atom.NewColor(a, c, nil), nil
}

func colorBox(ctx Context, args Args) (atom.Atom, error) {
	fill, err := resolve(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	a, err := ctx.ParseText(args.Arg(1))
	if err != nil {
		return nil, err
	}
	return atom.NewFramed(atom.NewText(roman, a), atom.FrameSep, env.Length{}, nil, fill)
}

func fcolorBox(ctx Context, args Args) (atom.Atom, error) {
	frame, err := resolve(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	fill, err := resolve(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	a, err := ctx.ParseText(args.Arg(2))
	if err != nil {
		return nil, err
	}
	return atom.NewFramed(atom.NewText(roman, a), atom.FrameSep, atom.FrameRule, frame, fill)
}

// defineColor is \definecolor{name}{model}{spec}.
func defineColor(ctx Context, args Args) (atom.Atom, error) {
	name := strings.TrimSpace(args.Arg(0))
	return nil, ctx.DefineColor(name, strings.TrimSpace(args.Arg(1)), strings.TrimSpace(args.Arg(2)))
}
