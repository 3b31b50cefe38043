package macro

import (
	"strings"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/env"
)

// Default returns a registry holding the built-in command set.
func Default() (*Registry, error) {
	r := NewRegistry()
	if err := Install(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Install registers the built-in commands, environments and formula
// fragments in r, replacing existing definitions of the same names.
func Install(r *Registry) error {
	sets := [][]Macro{
		fractionMacros(),
		scriptMacros(),
		accentMacros(),
		delimiterMacros(),
		fontMacros(),
		colorMacros(),
		spaceMacros(),
		boxMacros(),
		classMacros(),
		operatorMacros(),
		environmentMacros(),
	}
	for _, set := range sets {
		for _, m := range set {
			if err := r.Define(m); err != nil {
				return err
			}
		}
	}
	for name, src := range fragments {
		if err := r.DefineFragment(name, src); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Helpers shared by the builtin files
// =============================================================================

func fixed(name string, args int, f Invoker) Macro {
	return Macro{Name: name, Args: args, Invoke: f}
}

func optional(name string, args int, pos OptPosition, f Invoker) Macro {
	return Macro{Name: name, Args: args, Opt: pos, Invoke: f}
}

// constant is a macro without arguments that always builds the same atom.
func constant(name string, build func() atom.Atom) Macro {
	return fixed(name, 0, func(Context, Args) (atom.Atom, error) { return build(), nil })
}

// parseArgs parses every required argument in math mode.
func parseArgs(ctx Context, args Args) ([]atom.Atom, error) {
	out := make([]atom.Atom, len(args.Req))
	for i, src := range args.Req {
		a, err := ctx.Parse(src)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// single unwraps rows holding exactly one atom.
func single(a atom.Atom) atom.Atom {
	for {
		r, ok := a.(*atom.Row)
		if !ok || r.Len() != 1 {
			return a
		}
		a = r.Elems[0]
	}
}

// delimiter parses src as a delimiter and returns its symbol name. "" and
// "." are the null delimiter.
func delimiter(ctx Context, src string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" || src == "." {
		return "", nil
	}
	a, err := ctx.Parse(src)
	if err != nil {
		return "", err
	}
	s, ok := single(a).(*atom.Symbol)
	if !ok || !s.Delimiter {
		return "", errors.New(errors.ErrCodeUnknownSymbol, "%q is not a delimiter", src)
	}
	return s.Name, nil
}

func parseLength(src string) (env.Length, error) {
	return env.ParseLength(strings.TrimSpace(src))
}

// symbols returns the named symbol atoms.
func symbols(ctx Context, names ...string) ([]atom.Atom, error) {
	out := make([]atom.Atom, len(names))
	for i, n := range names {
		s, err := ctx.Symbol(n)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
