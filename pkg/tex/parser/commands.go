package parser

import (
	"strconv"
	"strings"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/font"
	"github.com/matzehuels/texbox/pkg/tex/macro"
)

var (
	roman = font.Variant{Family: font.Roman}
	mono  = font.Variant{Family: font.Mono}
)

// escapes are the escaped characters typeset as themselves.
var escapes = map[string]bool{"#": true, "$": true, "%": true, "&": true, "_": true}

// command parses the command at the current position into row.
func (st *state) command(row *atom.Row) error {
	start := st.s.pos
	st.s.next()
	name := st.commandName()
	if st.text && isWord(name) {
		st.s.skipSpace()
	}
	a, err := st.dispatch(name, row)
	if err != nil {
		return locate(err, `\`+name, st.s, start, st.top)
	}
	row.Add(a)
	return nil
}

func isWord(name string) bool {
	return name != "" && isASCIILetter([]rune(name)[0])
}

// commandName reads a name after its backslash. "@env" is read whole; it
// marks the built-in environments emitted by Expand.
func (st *state) commandName() string {
	if st.s.hasPrefix("@env") {
		st.s.pos += len("@env")
		return "@env"
	}
	return st.s.name()
}

// lookup finds the macro called name, preferring its starred form when a
// '*' follows, which it then consumes.
func (st *state) lookup(name string) (macro.Macro, bool) {
	if st.s.peek() == '*' {
		if m, ok := st.macros.Lookup(name + "*"); ok {
			st.s.next()
			return m, true
		}
	}
	return st.macros.Lookup(name)
}

// dispatch builds the atom of command name. Formula fragments are parsed
// and spliced into row directly.
func (st *state) dispatch(name string, row *atom.Row) (atom.Atom, error) {
	switch name {
	case "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "trailing backslash")
	case "left":
		return st.fenced()
	case "right":
		return nil, errors.New(errors.ErrCodeUnbalancedGroup, `\right without \left`)
	case `\`, "cr":
		return nil, errors.New(errors.ErrCodeArrayMode, "line break outside an array")
	case "hline":
		if st.grid == nil {
			return nil, errors.New(errors.ErrCodeArrayMode, `\hline outside an array`)
		}
		st.grid.AddHline()
		return nil, nil
	case "multicolumn":
		return st.multicolumn()
	case "intertext":
		return st.intertext()
	case "begin", "end":
		return nil, errors.New(errors.ErrCodeUnknownEnvironment, `\%s cannot be used here`, name)
	case "@env":
		return st.primitive()
	case "verb":
		return st.verb()
	case "url", "detokenize":
		st.s.skipSpace()
		if st.s.peek() != '{' {
			return nil, errors.New(errors.ErrCodeMissingArgument, `\%s needs a {..} argument`, name)
		}
		g, err := st.s.group()
		if err != nil {
			return nil, err
		}
		v := roman
		if name == "url" {
			v = mono
		}
		return atom.NewText(v, literal(g)), nil
	case "{":
		return st.namedSymbol("lbrace")
	case "}":
		return st.namedSymbol("rbrace")
	case "|":
		return st.namedSymbol("Vert")
	}
	if escapes[name] {
		return atom.NewChar([]rune(name)[0]), nil
	}
	if m, ok := st.lookup(name); ok {
		return st.invoke(m)
	}
	if src, ok := st.macros.Fragment(name); ok {
		a, err := st.parse(src, st.text)
		if err != nil {
			return nil, err
		}
		if r, ok := a.(*atom.Row); ok {
			for _, e := range r.Elems {
				row.Add(e)
			}
			return nil, nil
		}
		return a, nil
	}
	if _, ok := st.symbols.Lookup(name); ok {
		return st.namedSymbol(name)
	}
	return nil, errors.New(errors.ErrCodeUnknownCommand, `undefined command \%s`, name)
}

func (st *state) namedSymbol(name string) (atom.Atom, error) {
	s, ok := st.symbols.Lookup(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownSymbol, "unknown symbol %s", name)
	}
	a := atom.NewSymbol(s)
	if st.text {
		return a.AsText(), nil
	}
	return a, nil
}

func (st *state) invoke(m macro.Macro) (atom.Atom, error) {
	args, err := st.readArgs(m)
	if err != nil {
		return nil, err
	}
	return m.Invoke(call{st}, args)
}

// fenced parses \left<delim> ... \right<delim>.
func (st *state) fenced() (atom.Atom, error) {
	left, err := st.delimiter(`\left`)
	if err != nil {
		return nil, err
	}
	content, err := st.list(func() bool { return st.s.peekCommand() == "right" })
	if err != nil {
		return nil, err
	}
	if st.s.eof() {
		return nil, errors.New(errors.ErrCodeUnbalancedGroup, `\left without \right`)
	}
	st.s.skipCommand()
	right, err := st.delimiter(`\right`)
	if err != nil {
		return nil, err
	}
	return atom.NewFenced(left, content, right)
}

// delimiter reads the delimiter after \left or \right. "." is the null
// delimiter and yields nil.
func (st *state) delimiter(what string) (atom.Atom, error) {
	st.s.skipSpace()
	if st.s.eof() {
		return nil, errors.New(errors.ErrCodeMissingArgument, "missing delimiter after %s", what)
	}
	var name string
	switch r := st.s.next(); r {
	case '.':
		return nil, nil
	case '<':
		name = "langle"
	case '>':
		name = "rangle"
	case '\\':
		switch cmd := st.s.name(); cmd {
		case "{":
			name = "lbrace"
		case "}":
			name = "rbrace"
		case "|":
			name = "Vert"
		default:
			name = cmd
		}
	default:
		s, ok := st.symbols.ForChar(r)
		if !ok || !s.Delimiter {
			return nil, errors.New(errors.ErrCodeUnknownSymbol, "%q is not a delimiter", r)
		}
		return atom.NewSymbol(s), nil
	}
	s, ok := st.symbols.Lookup(name)
	if !ok || !s.Delimiter {
		return nil, errors.New(errors.ErrCodeUnknownSymbol, "%s is not a delimiter", name)
	}
	return atom.NewSymbol(s), nil
}

// primitive runs a built-in environment emitted by Expand as
// \@env{name}[opt]{args}{body}.
func (st *state) primitive() (atom.Atom, error) {
	name, err := envName(st.s)
	if err != nil {
		return nil, err
	}
	m, ok := st.macros.Primitive(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownEnvironment, "unknown environment %s", name)
	}
	a, err := st.invoke(m)
	if err != nil {
		return nil, locate(err, `\begin{`+name+`}`, st.s, 0, false)
	}
	return a, nil
}

// verb reads \verb|text| into upright monospaced text.
func (st *state) verb() (atom.Atom, error) {
	if st.s.peek() == '*' {
		st.s.next()
	}
	if st.s.eof() {
		return nil, errors.New(errors.ErrCodeMissingArgument, `\verb needs a delimiter`)
	}
	d := st.s.next()
	start := st.s.pos
	for !st.s.eof() && st.s.peek() != d {
		st.s.next()
	}
	if st.s.eof() {
		return nil, errors.New(errors.ErrCodeUnbalancedGroup, `\verb%c is not closed`, d)
	}
	text := st.s.slice(start, st.s.pos)
	st.s.next()
	return atom.NewText(mono, literal(text)), nil
}

// literal sets text character by character.
func literal(text string) *atom.Row {
	r := atom.NewRow()
	for _, c := range text {
		if c == ' ' {
			r.Add(atom.Interword())
			continue
		}
		r.Add(atom.NewChar(c))
	}
	return r
}

// multicolumn parses \multicolumn{n}{spec}{content} inside an array.
func (st *state) multicolumn() (atom.Atom, error) {
	if st.grid == nil {
		return nil, errors.New(errors.ErrCodeArrayMode, `\multicolumn outside an array`)
	}
	args, err := st.readArgs(macro.Macro{Name: "multicolumn", Args: 3})
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(args.Arg(0)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNumber, err, "invalid column span %q", args.Arg(0))
	}
	content, err := st.parse(args.Arg(2), st.text)
	if err != nil {
		return nil, err
	}
	return atom.NewMulticolumn(n, args.Arg(1), content)
}

// intertext parses \intertext{text} inside an alignment.
func (st *state) intertext() (atom.Atom, error) {
	if st.grid == nil {
		return nil, errors.New(errors.ErrCodeArrayMode, `\intertext outside an alignment`)
	}
	args, err := st.readArgs(macro.Macro{Name: "intertext", Args: 1})
	if err != nil {
		return nil, err
	}
	content, err := st.parse(args.Arg(0), true)
	if err != nil {
		return nil, err
	}
	return atom.NewIntertext(atom.NewText(roman, content)), nil
}
