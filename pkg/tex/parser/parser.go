package parser

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/font"
	"github.com/matzehuels/texbox/pkg/tex/macro"
	"github.com/matzehuels/texbox/pkg/tex/symbol"
)

// Parser builds atom trees from markup. It is safe for concurrent use as
// long as nobody replaces its fields meanwhile.
type Parser struct {
	Symbols *symbol.Table
	Macros  *macro.Registry
	Colors  *color.Registry
	// Partial replaces failing commands with placeholders instead of
	// failing the parse.
	Partial bool
	Limits  Limits
	Logger  *log.Logger
}

// New returns a strict parser over the given registries.
func New(symbols *symbol.Table, macros *macro.Registry, colors *color.Registry) *Parser {
	return &Parser{Symbols: symbols, Macros: macros, Colors: colors}
}

func (p *Parser) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

// Parse parses src in math mode and returns its top-level row.
func (p *Parser) Parse(src string) (atom.Atom, error) {
	return p.parse(src, false)
}

// ParseText parses src in text mode, as the argument of \text.
func (p *Parser) ParseText(src string) (atom.Atom, error) {
	return p.parse(src, true)
}

func (p *Parser) parse(src string, text bool) (atom.Atom, error) {
	sh := &shared{
		symbols: p.Symbols,
		macros:  p.Macros.Child(),
		colors:  p.Colors.Child(),
		limits:  p.Limits.withDefaults(),
		partial: p.Partial,
	}
	expanded, err := Expand(src, sh.macros, sh.limits)
	if err != nil {
		if p.Partial {
			p.logger().Debug("expansion failed", "err", err)
			return atom.Group(atom.NewPlaceholder(commandOf(err), err)), nil
		}
		return nil, err
	}
	st := &state{shared: sh, s: newScanner(expanded), text: text, top: true}
	row, err := st.list(nil)
	if err != nil {
		return nil, err
	}
	p.logger().Debug("parsed markup", "runes", len(st.s.src), "atoms", row.Len(), "partial", p.Partial)
	return row, nil
}

// Errors returns the errors recorded by the placeholders of a partial
// parse, in document order.
func Errors(a atom.Atom) []error {
	var out []error
	var walk func(atom.Atom)
	walk = func(a atom.Atom) {
		switch x := a.(type) {
		case *atom.Placeholder:
			if x.Err != nil {
				out = append(out, x.Err)
			}
		case atom.Composite:
			for _, c := range x.Children() {
				walk(c)
			}
		}
	}
	if a != nil {
		walk(a)
	}
	return out
}

// shared is the state common to one parse and all its sub-parses.
type shared struct {
	symbols *symbol.Table
	macros  *macro.Registry
	colors  *color.Registry
	limits  Limits
	partial bool
}

// state parses one piece of text: the whole input or a macro argument.
type state struct {
	*shared
	s    *scanner
	text bool
	// top marks the state over the full expanded input; only it knows
	// positions.
	top   bool
	depth int
	// grid collects the cells while an array body is parsed.
	grid *atom.Grid
	// row is the row under construction, stop ends the current list.
	row  *atom.Row
	stop func() bool
}

// sub returns a state for src one level deeper.
func (st *state) sub(src string, text bool) (*state, error) {
	if st.depth+1 > st.limits.MaxDepth {
		return nil, errors.New(errors.ErrCodeExpansionLimit, "formula nested deeper than %d", st.limits.MaxDepth)
	}
	return &state{shared: st.shared, s: newScanner(src), text: text, depth: st.depth + 1}, nil
}

// parse parses src in a fresh state. Blank input yields nil.
func (st *state) parse(src string, text bool) (atom.Atom, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	sub, err := st.sub(src, text)
	if err != nil {
		return nil, err
	}
	row, err := sub.list(nil)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Infix fraction commands, which take everything before them in the
// current list as numerator.
var infixes = map[string]bool{
	"over": true, "atop": true, "choose": true, "brack": true, "brace": true, "above": true,
}

// list parses atoms until stop reports true or the input ends.
func (st *state) list(stop func() bool) (*atom.Row, error) {
	row := atom.NewRow()
	savedRow, savedStop := st.row, st.stop
	st.row, st.stop = row, stop
	defer func() { st.row, st.stop = savedRow, savedStop }()

	var (
		num       *atom.Row
		infix     string
		thickness *env.Length
	)
	for !st.s.eof() && (stop == nil || !stop()) {
		start := st.s.pos
		if name := st.s.peekCommand(); infixes[name] {
			st.s.skipCommand()
			if infix != "" {
				return nil, locate(errors.New(errors.ErrCodeInvalidInput, `ambiguous fraction: \%s after \%s`, name, infix), `\`+name, st.s, start, st.top)
			}
			if name == "above" {
				l, err := st.readLength()
				if err != nil {
					return nil, locate(err, `\above`, st.s, start, st.top)
				}
				thickness = &l
			}
			infix, num = name, row
			row = atom.NewRow()
			st.row = row
			continue
		}
		if err := st.step(row); err != nil {
			err = locate(err, "", st.s, start, st.top)
			if !st.partial {
				return nil, err
			}
			cmd := commandOf(err)
			if cmd == "" {
				cmd = st.s.slice(start, st.s.pos)
			}
			row.Add(atom.NewPlaceholder(cmd, err))
			if st.s.pos == start {
				st.s.next()
			}
		}
	}
	if infix == "" {
		return row, nil
	}
	f, err := infixFraction(infix, num, row, thickness)
	if err != nil {
		return nil, err
	}
	return atom.NewRow(f), nil
}

func infixFraction(name string, num, den *atom.Row, thickness *env.Length) (*atom.Fraction, error) {
	f, err := atom.NewFraction(num, den, name == "over" || name == "above")
	if err != nil {
		return nil, err
	}
	switch name {
	case "above":
		f.Thickness = thickness
		f.Rule = thickness.Value != 0
	case "choose":
		f.Left, f.Right = "lparen", "rparen"
	case "brack":
		f.Left, f.Right = "lbrack", "rbrack"
	case "brace":
		f.Left, f.Right = "lbrace", "rbrace"
	}
	return f, nil
}

// step parses one item into row.
func (st *state) step(row *atom.Row) error {
	r := st.s.peek()
	switch {
	case unicode.IsSpace(r):
		st.s.skipSpace()
		if st.text {
			row.Add(atom.Interword())
		}
		return nil
	case r == '{':
		return st.group(row)
	case r == '}':
		st.s.next()
		return errors.New(errors.ErrCodeUnbalancedGroup, "unexpected }")
	case r == '\\':
		return st.command(row)
	case st.text:
		return st.textChar(row)
	case r == '^' || r == '_':
		return st.script(row, r == '_')
	case r == '\'':
		return st.primes(row)
	case r == '&':
		st.s.next()
		return errors.New(errors.ErrCodeArrayMode, "& outside an array")
	case r == '~':
		st.s.next()
		row.Add(atom.Interword())
		return nil
	case r == '$':
		st.s.next()
		return errors.New(errors.ErrCodeInvalidInput, "$ in math mode")
	case r == '#':
		st.s.next()
		return errors.New(errors.ErrCodeInvalidInput, "macro parameter # outside a definition")
	}
	st.s.next()
	if combining[st.s.peek()] == "" {
		if s, ok := st.symbols.ForChar(r); ok {
			row.Add(atom.NewSymbol(s))
			return nil
		}
	}
	return st.char(row, r)
}

func (st *state) textChar(row *atom.Row) error {
	switch r := st.s.next(); r {
	case '~':
		row.Add(atom.Interword())
	case '$':
		return st.inlineMath(row)
	case '#':
		return errors.New(errors.ErrCodeInvalidInput, "macro parameter # outside a definition")
	default:
		return st.char(row, r)
	}
	return nil
}

// inlineMath parses $..$ inside text.
func (st *state) inlineMath(row *atom.Row) error {
	st.text = false
	content, err := st.list(func() bool { return st.s.peek() == '$' })
	st.text = true
	if err != nil {
		return err
	}
	if st.s.eof() {
		return errors.New(errors.ErrCodeUnbalancedGroup, "missing closing $")
	}
	st.s.next()
	row.Add(atom.NewStyled(font.Variant{}, content))
	return nil
}

func (st *state) group(row *atom.Row) error {
	if st.depth+1 > st.limits.MaxDepth {
		return errors.New(errors.ErrCodeExpansionLimit, "groups nested deeper than %d", st.limits.MaxDepth)
	}
	st.s.next()
	st.depth++
	content, err := st.list(func() bool { return st.s.peek() == '}' })
	st.depth--
	if err != nil {
		return err
	}
	if st.s.eof() {
		return errors.New(errors.ErrCodeUnbalancedGroup, "missing } to close a group")
	}
	st.s.next()
	if st.text {
		row.Add(content)
		return nil
	}
	row.Add(atom.Group(content.Elems...))
	return nil
}

// script parses ^x or _x and attaches it to the preceding atom.
func (st *state) script(row *atom.Row, sub bool) error {
	c := st.s.next()
	a, err := st.scriptArgument(string(c))
	if err != nil {
		return err
	}
	return attach(row, sub, a)
}

func (st *state) scriptArgument(op string) (atom.Atom, error) {
	raw, err := st.rawArgument(op)
	if err != nil {
		return nil, err
	}
	a, err := st.parse(raw, st.text)
	if err != nil {
		return nil, err
	}
	if a == nil {
		a = atom.Group()
	}
	return a, nil
}

// primes parses x', x'' and x'^2; the primes open the superscript.
func (st *state) primes(row *atom.Row) error {
	sup := atom.NewRow()
	for st.s.peek() == '\'' {
		st.s.next()
		s, ok := st.symbols.Lookup("prime")
		if !ok {
			return errors.New(errors.ErrCodeUnknownSymbol, "no prime symbol")
		}
		sup.Add(atom.NewSymbol(s))
	}
	if st.s.peek() == '^' {
		st.s.next()
		a, err := st.scriptArgument("^")
		if err != nil {
			return err
		}
		sup.Add(a)
	}
	return attach(row, false, sup)
}

// attach sets a script of the last atom of row, wrapping it in Scripts
// unless it already has scripts with that slot free.
func attach(row *atom.Row, sub bool, a atom.Atom) error {
	s, ok := row.Last().(*atom.Scripts)
	if !ok {
		s = atom.NewScripts(row.Pop(), nil, nil)
		row.Add(s)
	}
	slot, what := &s.Sup, "superscript"
	if sub {
		slot, what = &s.Sub, "subscript"
	}
	if *slot != nil {
		return errors.New(errors.ErrCodeDoubleScript, "double %s", what)
	}
	*slot = a
	return nil
}

// combining maps combining marks to the accent commands that draw them.
var combining = map[rune]string{
	0x0300: "grave",
	0x0301: "acute",
	0x0302: "hat",
	0x0303: "tilde",
	0x0304: "bar",
	0x0306: "breve",
	0x0307: "dot",
	0x0308: "ddot",
	0x030A: "mathring",
	0x030C: "check",
	0x20D7: "vec",
}

// char adds a character, decomposing precomposed accented letters and
// applying combining marks that follow.
func (st *state) char(row *atom.Row, r rune) error {
	base, marks := r, []string(nil)
	if d := []rune(norm.NFD.String(string(r))); len(d) > 1 {
		if names, ok := accentNames(d[1:]); ok {
			base, marks = d[0], names
		}
	}
	for {
		name, ok := combining[st.s.peek()]
		if !ok {
			break
		}
		st.s.next()
		marks = append(marks, name)
	}
	if len(marks) == 0 {
		row.Add(atom.NewChar(r))
		return nil
	}
	src := string(base)
	for _, m := range marks {
		src = `\` + m + `{` + src + `}`
	}
	a, err := st.parse(src, st.text)
	if err != nil {
		return err
	}
	if r, ok := a.(*atom.Row); ok {
		for _, e := range r.Elems {
			row.Add(e)
		}
		return nil
	}
	row.Add(a)
	return nil
}

func accentNames(marks []rune) ([]string, bool) {
	names := make([]string, len(marks))
	for i, m := range marks {
		n, ok := combining[m]
		if !ok {
			return nil, false
		}
		names[i] = n
	}
	return names, true
}

// rawArgument reads a required argument as source text: a group's inner
// text, a command with its own arguments, or one character with the
// combining marks after it.
func (st *state) rawArgument(what string) (string, error) {
	st.s.skipSpace()
	switch r := st.s.peek(); {
	case st.s.eof(), r == '}':
		return "", errors.New(errors.ErrCodeMissingArgument, "missing argument for %s", what)
	case r == '{':
		return st.s.group()
	case r == '\\':
		start := st.s.pos
		st.s.next()
		name := st.commandName()
		if m, ok := st.lookup(name); ok {
			if _, err := st.readArgs(m); err != nil {
				return "", err
			}
		}
		return st.s.slice(start, st.s.pos), nil
	default:
		start := st.s.pos
		st.s.next()
		for combining[st.s.peek()] != "" {
			st.s.next()
		}
		return st.s.slice(start, st.s.pos), nil
	}
}

// readArgs reads the optional and required arguments of m.
func (st *state) readArgs(m macro.Macro) (macro.Args, error) {
	args := macro.Args{Name: m.Name}
	var err error
	if m.Opt == macro.OptFirst || m.Opt == macro.OptBoth {
		if args.Opt, args.HasOpt, err = st.s.optional(); err != nil {
			return args, err
		}
	}
	for i := 0; i < m.Args; i++ {
		a, err := st.rawArgument(`\` + m.Name)
		if err != nil {
			return args, err
		}
		args.Req = append(args.Req, a)
	}
	switch m.Opt {
	case macro.OptLast:
		args.Opt, args.HasOpt, err = st.s.optional()
	case macro.OptBoth:
		args.Opt2, args.HasOpt2, err = st.s.optional()
	}
	return args, err
}

// readLength reads a dimension straight from the input: an optional sign,
// digits and a two-letter unit.
func (st *state) readLength() (env.Length, error) {
	st.s.skipSpace()
	start := st.s.pos
	if r := st.s.peek(); r == '-' || r == '+' {
		st.s.next()
		st.s.skipSpace()
	}
	for r := st.s.peek(); (r >= '0' && r <= '9') || r == '.'; r = st.s.peek() {
		st.s.next()
	}
	st.s.skipSpace()
	for i := 0; i < 2 && st.s.peek() >= 'a' && st.s.peek() <= 'z'; i++ {
		st.s.next()
	}
	return env.ParseLength(st.s.slice(start, st.s.pos))
}
