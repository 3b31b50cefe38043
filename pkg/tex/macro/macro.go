package macro

import (
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/env"
)

// OptPosition says where a macro takes its optional [..] argument.
type OptPosition int

const (
	OptNone OptPosition = iota
	// OptFirst reads [..] before the required arguments, as \sqrt[3]{x}.
	OptFirst
	// OptLast reads [..] after them.
	OptLast
	// OptBoth reads one before and one after.
	OptBoth
)

// Args are the raw arguments of one invocation. Arguments are source text;
// the macro decides how to parse each.
type Args struct {
	Name string
	Req  []string
	// Opt is the leading (or only) optional argument.
	Opt    string
	HasOpt bool
	// Opt2 is the trailing optional argument of OptBoth.
	Opt2    string
	HasOpt2 bool
}

// Arg returns required argument i, or "" when absent.
func (a Args) Arg(i int) string {
	if i < 0 || i >= len(a.Req) {
		return ""
	}
	return a.Req[i]
}

// OptOr returns the optional argument, or def when it was not given.
func (a Args) OptOr(def string) string {
	if !a.HasOpt {
		return def
	}
	return a.Opt
}

// Invoker builds the atom of one invocation. A nil atom with a nil error
// is a side-effect-only macro such as \definecolor or \limits.
type Invoker func(ctx Context, args Args) (atom.Atom, error)

// Macro is a command implemented in Go.
type Macro struct {
	Name   string
	Args   int
	Opt    OptPosition
	Invoke Invoker
}

// Template is a user macro defined in markup by \newcommand. Its body is
// substituted during expansion.
type Template struct {
	Name string
	Args int
	// Default is the first argument's default value; nil when every
	// argument is required.
	Default *string
	Body    string
}

// Env is an environment defined by \newenvironment. Begin and End are
// substituted around the body.
type Env struct {
	Name       string
	Args       int
	Default    *string
	Begin, End string
}

// PrimitiveSuffix names the macro that implements a built-in environment:
// "pmatrix" is backed by "pmatrix@env", which takes the environment's
// arguments followed by the body.
const PrimitiveSuffix = "@env"

// Context is what a macro may ask of the parser that invoked it.
type Context interface {
	// Parse parses a math-mode fragment.
	Parse(src string) (atom.Atom, error)
	// ParseText parses a text-mode fragment.
	ParseText(src string) (atom.Atom, error)
	// ParseGrid parses the body of an array-like environment.
	ParseGrid(src string) (*atom.Grid, error)
	// Rest parses the remainder of the enclosing group, for switches such
	// as \color and \displaystyle.
	Rest() (atom.Atom, error)
	// ReadLength reads a dimension straight from the input, as in
	// \kern-3mu.
	ReadLength() (env.Length, error)
	// Prev is the atom before the command in the current row, or nil.
	Prev() atom.Atom
	// PopPrev removes and returns the atom before the command.
	PopPrev() atom.Atom
	// Symbol returns the atom of a named symbol.
	Symbol(name string) (*atom.Symbol, error)
	// Color resolves spec in model, or as a named color or expression
	// when model is empty.
	Color(model, spec string) (color.Color, error)
	// DefineColor defines a named color for the rest of the parse.
	DefineColor(name, model, spec string) error
	// InText reports whether the command appears in text mode.
	InText() bool
}
