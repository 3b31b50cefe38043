package macro

import (
	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
)

func scriptMacros() []Macro {
	return []Macro{
		fixed("limits", 0, limits(class.WithLimits)),
		fixed("nolimits", 0, limits(class.NoLimits)),
		fixed("displaylimits", 0, limits(class.Normal)),
		fixed("stackrel", 2, stackrel),
		fixed("overset", 2, overset),
		fixed("underset", 2, underset),
		fixed("sideset", 3, sideset),
		fixed("cumsup", 1, cumulative(false)),
		fixed("cumsub", 1, cumulative(true)),
	}
}

// limits changes the limits mode of the preceding operator in place.
func limits(l class.Limits) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		prev := ctx.Prev()
		if prev == nil || prev.Type() != class.Op {
			return nil, errors.New(errors.ErrCodeInvalidInput, `\%s is allowed only after an operator`, args.Name)
		}
		o, ok := prev.(atom.Overrider)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, `\%s cannot change %s`, args.Name, atom.Label(prev))
		}
		o.SetLimits(l)
		return nil, nil
	}
}

func stackrel(ctx Context, args Args) (atom.Atom, error) {
	as, err := parseArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	u, err := atom.NewUnderOver(as[1], as[0], nil, true)
	if err != nil {
		return nil, err
	}
	return atom.NewTyped(class.Rel, u), nil
}

func overset(ctx Context, args Args) (atom.Atom, error) {
	as, err := parseArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	return atom.NewUnderOver(as[1], as[0], nil, true)
}

func underset(ctx Context, args Args) (atom.Atom, error) {
	as, err := parseArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	return atom.NewUnderOver(as[1], nil, as[0], true)
}

// sideset is \sideset{_a^b}{_c^d}\sum: prescripts and postscripts on an
// operator, which keeps its limits only above and below.
func sideset(ctx Context, args Args) (atom.Atom, error) {
	as, err := parseArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	op := as[2]
	if op == nil {
		return nil, errors.New(errors.ErrCodeMissingArgument, `\sideset needs an operator`)
	}
	preSub, preSup := scriptsOf(as[0])
	postSub, postSup := scriptsOf(as[1])

	if o, ok := single(op).(atom.Overrider); ok {
		o.SetLimits(class.NoLimits)
	}
	row := atom.NewRow()
	if preSub != nil || preSup != nil {
		pre := atom.NewScripts(nil, preSub, preSup)
		pre.Align = box.Right
		row.Add(pre)
	}
	if postSub != nil || postSup != nil {
		row.Add(atom.NewScripts(op, postSub, postSup))
	} else {
		row.Add(op)
	}
	return atom.NewTyped(class.Op, row), nil
}

// scriptsOf extracts the scripts of an argument such as "_a^b".
func scriptsOf(a atom.Atom) (sub, sup atom.Atom) {
	s, ok := single(a).(*atom.Scripts)
	if !ok {
		return nil, nil
	}
	return s.Sub, s.Sup
}

// cumulative appends to the superscript or subscript of the preceding
// atom, creating it when needed. The parser emits it for Unicode
// superscript and subscript characters, so "x²³" stacks "23".
func cumulative(sub bool) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		script, err := ctx.Parse(args.Arg(0))
		if err != nil {
			return nil, err
		}
		prev := ctx.PopPrev()
		s, ok := prev.(*atom.Scripts)
		if !ok {
			s = atom.NewScripts(prev, nil, nil)
		}
		slot := &s.Sup
		if sub {
			slot = &s.Sub
		}
		if *slot == nil {
			*slot = script
		} else {
			*slot = atom.NewRow(*slot, script)
		}
		return s, nil
	}
}
