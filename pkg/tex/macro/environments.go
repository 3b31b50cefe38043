package macro

import (
	"strconv"
	"strings"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/box"
)

// fences of the delimited matrix environments.
var fences = map[string][2]string{
	"matrix":  {"", ""},
	"pmatrix": {"lparen", "rparen"},
	"bmatrix": {"lbrack", "rbrack"},
	"Bmatrix": {"lbrace", "rbrace"},
	"vmatrix": {"lvert", "rvert"},
	"Vmatrix": {"lVert", "rVert"},
}

func environmentMacros() []Macro {
	ms := []Macro{
		environment("array", 2, OptFirst, array),
		environment("eqnarray", 1, OptNone, eqnarray),
		environment("eqnarray*", 1, OptNone, eqnarray),
		environment("smallmatrix", 1, OptNone, flavored(atom.FlavorSmallMatrix)),
		environment("cases", 1, OptNone, cases("lbrace", "")),
		environment("rcases", 1, OptNone, cases("", "rbrace")),
		environment("align", 1, OptNone, flavored(atom.FlavorAlign)),
		environment("align*", 1, OptNone, flavored(atom.FlavorAlign)),
		environment("aligned", 1, OptFirst, flavored(atom.FlavorAligned)),
		environment("split", 1, OptNone, flavored(atom.FlavorAligned)),
		environment("alignat", 2, OptNone, alignAt(atom.FlavorAlignAt)),
		environment("alignat*", 2, OptNone, alignAt(atom.FlavorAlignAt)),
		environment("alignedat", 2, OptFirst, alignAt(atom.FlavorAlignedAt)),
		environment("flalign", 1, OptNone, flavored(atom.FlavorFlAlign)),
		environment("flalign*", 1, OptNone, flavored(atom.FlavorFlAlign)),
		environment("gather", 1, OptNone, flavored(atom.FlavorGather)),
		environment("gather*", 1, OptNone, flavored(atom.FlavorGather)),
		environment("gathered", 1, OptFirst, flavored(atom.FlavorGather)),
	}
	for name, f := range fences {
		ms = append(ms,
			environment(name, 1, OptNone, matrix(f[0], f[1])),
			environment(name+"*", 1, OptFirst, matrix(f[0], f[1])))
	}
	return ms
}

// environment declares a built-in environment. Its last required
// argument is the body.
func environment(name string, args int, pos OptPosition, f Invoker) Macro {
	return Macro{Name: name + PrimitiveSuffix, Args: args, Opt: pos, Invoke: f}
}

// body returns the environment body, the last required argument.
func body(args Args) string { return args.Arg(len(args.Req) - 1) }

// array is \begin{array}[pos]{cols} ... \end{array}. The vertical
// position argument is accepted and ignored.
func array(ctx Context, args Args) (atom.Atom, error) {
	cols, err := atom.ParseColumns(args.Arg(0))
	if err != nil {
		return nil, err
	}
	g, err := ctx.ParseGrid(body(args))
	if err != nil {
		return nil, err
	}
	return atom.NewArray(g, cols)
}

func eqnarray(ctx Context, args Args) (atom.Atom, error) {
	cols, err := atom.ParseColumns("rcl")
	if err != nil {
		return nil, err
	}
	g, err := ctx.ParseGrid(body(args))
	if err != nil {
		return nil, err
	}
	return atom.NewArray(g, cols)
}

func flavored(f atom.Flavor) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		g, err := ctx.ParseGrid(body(args))
		if err != nil {
			return nil, err
		}
		return atom.NewMatrix(g, f)
	}
}

// alignAt is \begin{alignat}{n}, n being the column pair count.
func alignAt(f atom.Flavor) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		n, err := strconv.Atoi(strings.TrimSpace(args.Arg(0)))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidNumber, err, "invalid column pair count %q", args.Arg(0))
		}
		g, err := ctx.ParseGrid(body(args))
		if err != nil {
			return nil, err
		}
		return atom.NewAlignAt(g, f, n)
	}
}

// matrix builds a matrix between two delimiters. The starred forms take
// the cell alignment as [l], [c] or [r].
func matrix(left, right string) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		g, err := ctx.ParseGrid(body(args))
		if err != nil {
			return nil, err
		}
		m, err := atom.NewMatrix(g, atom.FlavorMatrix)
		if err != nil {
			return nil, err
		}
		if args.HasOpt {
			switch strings.TrimSpace(args.Opt) {
			case "l":
				m.SetAlign(box.Left)
			case "c":
				m.SetAlign(box.Center)
			case "r":
				m.SetAlign(box.Right)
			default:
				return nil, errors.New(errors.ErrCodeInvalidInput, "matrix alignment must be l, c or r, got %q", args.Opt)
			}
		}
		return fence(ctx, left, m, right)
	}
}

func cases(left, right string) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		g, err := ctx.ParseGrid(body(args))
		if err != nil {
			return nil, err
		}
		m, err := atom.NewMatrix(g, atom.FlavorCases)
		if err != nil {
			return nil, err
		}
		return fence(ctx, left, m, right)
	}
}

// fence surrounds a with the named delimiters. Without either it returns a
// unchanged.
func fence(ctx Context, left string, a atom.Atom, right string) (atom.Atom, error) {
	if left == "" && right == "" {
		return a, nil
	}
	var l, r atom.Atom
	if left != "" {
		s, err := ctx.Symbol(left)
		if err != nil {
			return nil, err
		}
		l = s
	}
	if right != "" {
		s, err := ctx.Symbol(right)
		if err != nil {
			return nil, err
		}
		r = s
	}
	return atom.NewFenced(l, a, r)
}
