package parser

import (
	"strconv"
	"strings"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/macro"
)

// Limits bound the work of one parse.
type Limits struct {
	// MaxExpansions caps user macro and environment substitutions.
	MaxExpansions int
	// MaxDepth caps the nesting of groups, arguments and environments.
	MaxDepth int
}

const (
	DefaultMaxExpansions = 10000
	DefaultMaxDepth      = 200
)

func (l Limits) withDefaults() Limits {
	if l.MaxExpansions <= 0 {
		l.MaxExpansions = DefaultMaxExpansions
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	return l
}

// Unicode shorthands rewritten before parsing.
var (
	superscripts = map[rune]rune{
		'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4', '⁵': '5', '⁶': '6',
		'⁷': '7', '⁸': '8', '⁹': '9', '⁺': '+', '⁻': '-', '⁼': '=', '⁽': '(',
		'⁾': ')', 'ⁿ': 'n', 'ⁱ': 'i',
	}
	subscripts = map[rune]rune{
		'₀': '0', '₁': '1', '₂': '2', '₃': '3', '₄': '4', '₅': '5', '₆': '6',
		'₇': '7', '₈': '8', '₉': '9', '₊': '+', '₋': '-', '₌': '=', '₍': '(',
		'₎': ')', 'ₐ': 'a', 'ₑ': 'e', 'ₒ': 'o', 'ₓ': 'x', 'ₕ': 'h', 'ₖ': 'k',
		'ₗ': 'l', 'ₘ': 'm', 'ₙ': 'n', 'ₚ': 'p', 'ₛ': 's', 'ₜ': 't',
	}
	primes = map[rune]string{'′': "'", '″': "''", '‴': "'''"}
)

// Expand runs the first parsing phase over src. Definitions are recorded
// in reg. Built-in environments come out as \@env{name}... calls that the
// second phase hands to their primitive macros.
func Expand(src string, reg *macro.Registry, limits Limits) (string, error) {
	x := &expander{reg: reg, limits: limits.withDefaults()}
	return x.run(src, 0)
}

type expander struct {
	reg    *macro.Registry
	limits Limits
	n      int
	at     bool
}

func (x *expander) run(src string, depth int) (string, error) {
	if depth > x.limits.MaxDepth {
		return "", errors.New(errors.ErrCodeExpansionLimit, "environments nested deeper than %d", x.limits.MaxDepth)
	}
	s := newScanner(src)
	s.at = x.at
	var out strings.Builder
	for !s.eof() {
		r := s.peek()
		switch {
		case r == '%':
			for !s.eof() && s.peek() != '\n' {
				s.next()
			}
		case r == '\\':
			start := s.pos
			name, err := x.command(s, &out, depth)
			if err != nil {
				return "", locate(err, `\`+name, s, start, depth == 0)
			}
		case superscripts[r] != 0:
			out.WriteString(`\cumsup{` + shorthand(s, superscripts) + `}`)
		case subscripts[r] != 0:
			out.WriteString(`\cumsub{` + shorthand(s, subscripts) + `}`)
		case primes[r] != "":
			out.WriteString(primes[s.next()])
		default:
			out.WriteRune(s.next())
		}
	}
	return out.String(), nil
}

// shorthand consumes the longest run of characters in m and returns their
// images.
func shorthand(s *scanner, m map[rune]rune) string {
	var b strings.Builder
	for !s.eof() && m[s.peek()] != 0 {
		b.WriteRune(m[s.next()])
	}
	return b.String()
}

// command handles the command at the current position and returns its
// name.
func (x *expander) command(s *scanner, out *strings.Builder, depth int) (string, error) {
	start := s.pos
	s.next()
	name := s.name()
	switch name {
	case "":
		out.WriteRune('\\')
		return name, nil
	case "makeatletter", "makeatother":
		x.at = name == "makeatletter"
		s.at = x.at
		return name, nil
	case "newcommand":
		return name, x.define(s, macro.New)
	case "renewcommand":
		return name, x.define(s, macro.Renew)
	case "providecommand":
		return name, x.define(s, macro.Provide)
	case "newenvironment":
		return name, x.defineEnv(s, macro.New)
	case "renewenvironment":
		return name, x.defineEnv(s, macro.Renew)
	case "DeclareMathOperator":
		return name, x.declareOperator(s)
	case "begin":
		return name, x.begin(s, out, start, depth)
	case "end":
		env, _ := envName(s)
		return name, errors.New(errors.ErrCodeUnbalancedGroup, `\end{%s} without \begin`, env)
	case "verb":
		return name, verbatim(s, out, start)
	case "detokenize", "url":
		s.skipSpace()
		if s.peek() != '{' {
			return name, errors.New(errors.ErrCodeMissingArgument, `\%s needs a {..} argument`, name)
		}
		g, err := s.group()
		if err != nil {
			return name, err
		}
		out.WriteString(`\` + name + `{` + g + `}`)
		return name, nil
	}
	if t, ok := x.reg.Template(name); ok {
		return name, x.invoke(s, start, t)
	}
	out.WriteString(s.slice(start, s.pos))
	return name, nil
}

// count records one substitution.
func (x *expander) count(name string) error {
	x.n++
	if x.n > x.limits.MaxExpansions {
		return errors.New(errors.ErrCodeExpansionLimit, `more than %d macro expansions (at \%s)`, x.limits.MaxExpansions, name)
	}
	return nil
}

func (x *expander) invoke(s *scanner, start int, t macro.Template) error {
	if err := x.count(t.Name); err != nil {
		return err
	}
	args, err := templateArgs(s, t.Name, t.Args, t.Default)
	if err != nil {
		return err
	}
	pushback(s, start, substitute(t.Body, args))
	return nil
}

// templateArgs reads n arguments. With a default the first one is
// optional.
func templateArgs(s *scanner, name string, n int, def *string) ([]string, error) {
	args := make([]string, 0, n)
	if def != nil && n > 0 {
		raw, ok, err := s.optional()
		if err != nil {
			return nil, err
		}
		if !ok {
			raw = *def
		}
		args = append(args, raw)
	}
	for len(args) < n {
		a, err := s.token()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMissingArgument, err, `\%s takes %d arguments, got %d`, name, n, len(args))
		}
		args = append(args, a)
	}
	return args, nil
}

// pushback puts text in front of the input. A space keeps a trailing
// control word from merging with a following letter.
func pushback(s *scanner, start int, text string) {
	if endsWithControlWord(text) && s.isLetter(s.peek()) {
		text += " "
	}
	s.push(start, text)
}

// substitute replaces #1..#9 in body; ## stands for #.
func substitute(body string, args []string) string {
	var b strings.Builder
	rs := []rune(body)
	for i := 0; i < len(rs); i++ {
		if rs[i] != '#' || i+1 == len(rs) {
			b.WriteRune(rs[i])
			continue
		}
		switch next := rs[i+1]; {
		case next == '#':
			b.WriteRune('#')
			i++
		case next >= '1' && next <= '9':
			if k := int(next - '1'); k < len(args) {
				arg := args[k]
				if endsWithControlWord(b.String()) && arg != "" && isASCIILetter([]rune(arg)[0]) {
					b.WriteRune(' ')
				}
				b.WriteString(arg)
			}
			i++
		default:
			b.WriteRune('#')
		}
	}
	return b.String()
}

func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func endsWithControlWord(s string) bool {
	rs := []rune(s)
	i := len(rs)
	for i > 0 && isASCIILetter(rs[i-1]) {
		i--
	}
	if i == len(rs) || i == 0 || rs[i-1] != '\\' {
		return false
	}
	// An even run of backslashes is a line break followed by letters.
	n := 0
	for j := i - 1; j >= 0 && rs[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// define handles \newcommand{\name}[n][default]{body} and its relatives.
func (x *expander) define(s *scanner, mode macro.Mode) error {
	if s.peek() == '*' {
		s.next()
	}
	name, err := definedName(s)
	if err != nil {
		return err
	}
	n, def, err := argSpec(s)
	if err != nil {
		return err
	}
	body, err := s.token()
	if err != nil {
		return errors.Wrap(errors.ErrCodeMissingArgument, err, `missing body for \%s`, name)
	}
	return x.reg.DefineTemplate(macro.Template{Name: name, Args: n, Default: def, Body: body}, mode)
}

// definedName reads the \name or {\name} being defined.
func definedName(s *scanner) (string, error) {
	raw, err := s.token()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMissingArgument, err, "missing command name")
	}
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '\\' {
		return "", errors.New(errors.ErrCodeInvalidInput, "expected a command name, got %q", raw)
	}
	return raw[1:], nil
}

// argSpec reads the optional [n][default] of a definition.
func argSpec(s *scanner) (int, *string, error) {
	n := 0
	raw, ok, err := s.optional()
	if err != nil {
		return 0, nil, err
	}
	if ok {
		if n, err = strconv.Atoi(strings.TrimSpace(raw)); err != nil {
			return 0, nil, errors.Wrap(errors.ErrCodeInvalidNumber, err, "invalid argument count %q", raw)
		}
	}
	raw, ok, err = s.optional()
	if err != nil || !ok {
		return n, nil, err
	}
	return n, &raw, nil
}

// defineEnv handles \newenvironment{name}[n][default]{begin}{end}.
func (x *expander) defineEnv(s *scanner, mode macro.Mode) error {
	name, err := envName(s)
	if err != nil {
		return err
	}
	n, def, err := argSpec(s)
	if err != nil {
		return err
	}
	begin, err := s.token()
	if err != nil {
		return errors.Wrap(errors.ErrCodeMissingArgument, err, "missing begin code for environment %s", name)
	}
	end, err := s.token()
	if err != nil {
		return errors.Wrap(errors.ErrCodeMissingArgument, err, "missing end code for environment %s", name)
	}
	if n < 0 || n > 9 {
		return errors.New(errors.ErrCodeInvalidNumber, "environment %s takes 0 to 9 arguments, got %d", name, n)
	}
	return x.reg.DefineEnv(macro.Env{Name: name, Args: n, Default: def, Begin: begin, End: end}, mode)
}

// declareOperator handles \DeclareMathOperator{\name}{text}; the starred
// form takes limits in display style.
func (x *expander) declareOperator(s *scanner) error {
	star := ""
	if s.peek() == '*' {
		s.next()
		star = "*"
	}
	name, err := definedName(s)
	if err != nil {
		return err
	}
	text, err := s.token()
	if err != nil {
		return errors.Wrap(errors.ErrCodeMissingArgument, err, `missing text for \%s`, name)
	}
	body := `\operatorname` + star + `{` + text + `}`
	return x.reg.DefineTemplate(macro.Template{Name: name, Body: body}, macro.New)
}

// envName reads the {name} of \begin and \end.
func envName(s *scanner) (string, error) {
	s.skipSpace()
	if s.peek() != '{' {
		return "", errors.New(errors.ErrCodeMissingArgument, "missing environment name")
	}
	g, err := s.group()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(g), nil
}

// begin expands \begin{name}. Template environments are substituted in
// place; built-in ones become \@env calls with an expanded body.
func (x *expander) begin(s *scanner, out *strings.Builder, start, depth int) error {
	name, err := envName(s)
	if err != nil {
		return err
	}
	if e, ok := x.reg.Env(name); ok {
		if err := x.count(name); err != nil {
			return err
		}
		args, err := templateArgs(s, name, e.Args, e.Default)
		if err != nil {
			return err
		}
		body, err := envBody(s, name)
		if err != nil {
			return err
		}
		pushback(s, start, substitute(e.Begin, args)+body+substitute(e.End, args))
		return nil
	}
	m, ok := x.reg.Primitive(name)
	if !ok {
		return errors.New(errors.ErrCodeUnknownEnvironment, "unknown environment %s", name)
	}
	var b strings.Builder
	b.WriteString(`\@env{` + name + `}`)
	if m.Opt == macro.OptFirst || m.Opt == macro.OptBoth {
		raw, ok, err := s.optional()
		if err != nil {
			return err
		}
		if ok {
			b.WriteString("[" + raw + "]")
		}
	}
	for i := 0; i < m.Args-1; i++ {
		a, err := s.token()
		if err != nil {
			return errors.Wrap(errors.ErrCodeMissingArgument, err, "environment %s takes %d arguments", name, m.Args-1)
		}
		b.WriteString("{" + a + "}")
	}
	body, err := envBody(s, name)
	if err != nil {
		return err
	}
	expanded, err := x.run(body, depth+1)
	if err != nil {
		return err
	}
	b.WriteString("{" + expanded + "}")
	out.WriteString(b.String())
	return nil
}

// envBody reads up to the \end{name} matching the current \begin and
// consumes it.
func envBody(s *scanner, name string) (string, error) {
	start := s.pos
	depth := 1
	for !s.eof() {
		switch s.peek() {
		case '%':
			for !s.eof() && s.peek() != '\n' {
				s.next()
			}
			continue
		case '\\':
		default:
			s.next()
			continue
		}
		at := s.pos
		s.next()
		cmd := s.name()
		if cmd != "begin" && cmd != "end" {
			continue
		}
		save := s.pos
		env, err := envName(s)
		if err != nil || env != name {
			s.pos = save
			continue
		}
		if cmd == "begin" {
			depth++
			continue
		}
		if depth--; depth == 0 {
			return s.slice(start, at), nil
		}
	}
	return "", errors.New(errors.ErrCodeUnbalancedGroup, `\begin{%s} without \end{%s}`, name, name)
}

// verbatim copies \verb|text| unchanged.
func verbatim(s *scanner, out *strings.Builder, start int) error {
	if s.peek() == '*' {
		s.next()
	}
	if s.eof() {
		return errors.New(errors.ErrCodeMissingArgument, `\verb needs a delimiter`)
	}
	d := s.next()
	for !s.eof() && s.peek() != d {
		s.next()
	}
	if s.eof() {
		return errors.New(errors.ErrCodeUnbalancedGroup, `\verb%c is not closed`, d)
	}
	s.next()
	out.WriteString(s.slice(start, s.pos))
	return nil
}
