package parser

import (
	"unicode"

	"github.com/matzehuels/texbox/pkg/errors"
)

// scanner reads markup rune by rune. Both phases share it.
type scanner struct {
	src []rune
	pos int
	// at makes '@' a letter in command names, as \makeatletter does.
	at bool

	// orig is the text positions refer to. Once text has been pushed back
	// in front of the input, positions collapse to anchor.
	orig   []rune
	pushed bool
	anchor int
}

func newScanner(src string) *scanner {
	rs := []rune(src)
	return &scanner{src: rs, orig: rs}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() rune { return s.peekAt(0) }

func (s *scanner) peekAt(off int) rune {
	i := s.pos + off
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

func (s *scanner) next() rune {
	r := s.peek()
	if !s.eof() {
		s.pos++
	}
	return r
}

// skipSpace skips white space and reports whether there was any.
func (s *scanner) skipSpace() bool {
	start := s.pos
	for !s.eof() && unicode.IsSpace(s.peek()) {
		s.pos++
	}
	return s.pos > start
}

func (s *scanner) slice(from, to int) string { return string(s.src[from:to]) }

func (s *scanner) hasPrefix(p string) bool {
	i := s.pos
	for _, r := range p {
		if i >= len(s.src) || s.src[i] != r {
			return false
		}
		i++
	}
	return true
}

// origin maps an offset of the current input to one in the original text.
func (s *scanner) origin(off int) int {
	if s.pushed {
		return s.anchor
	}
	return off
}

// position returns the 1-based line and column of offset off.
func (s *scanner) position(off int) (int, int) {
	off = s.origin(off)
	line, col := 1, 1
	for i := 0; i < off && i < len(s.orig); i++ {
		if s.orig[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// push inserts text before the unread input. start is where the replaced
// command began.
func (s *scanner) push(start int, text string) {
	if !s.pushed {
		s.pushed = true
		s.anchor = start
	}
	rs := []rune(text)
	out := make([]rune, 0, len(rs)+len(s.src)-s.pos)
	out = append(out, rs...)
	s.src = append(out, s.src[s.pos:]...)
	s.pos = 0
}

func (s *scanner) isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (s.at && r == '@')
}

// name reads a command name after its backslash: a run of letters or one
// other character.
func (s *scanner) name() string {
	if s.eof() {
		return ""
	}
	start := s.pos
	for !s.eof() && s.isLetter(s.peek()) {
		s.pos++
	}
	if s.pos == start {
		s.pos++
	}
	return s.slice(start, s.pos)
}

// peekCommand returns the name of the command at the current position
// without consuming it, or "" when none starts there.
func (s *scanner) peekCommand() string {
	if s.peek() != '\\' {
		return ""
	}
	save := s.pos
	s.next()
	name := s.name()
	s.pos = save
	return name
}

func (s *scanner) skipCommand() {
	s.next()
	s.name()
}

// group reads a {..} group at the current position and returns its inner
// text. Escaped braces do not count.
func (s *scanner) group() (string, error) {
	start := s.pos
	s.next()
	depth := 1
	for !s.eof() {
		switch s.next() {
		case '\\':
			s.next()
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s.slice(start+1, s.pos-1), nil
			}
		}
	}
	s.pos = start
	return "", errors.New(errors.ErrCodeUnbalancedGroup, "missing } for the group opened here")
}

// optional reads a [..] argument, skipping white space before it. A ']'
// inside braces does not close it.
func (s *scanner) optional() (string, bool, error) {
	save := s.pos
	s.skipSpace()
	if s.peek() != '[' {
		s.pos = save
		return "", false, nil
	}
	start := s.pos
	s.next()
	depth := 0
	for !s.eof() {
		switch s.next() {
		case '\\':
			s.next()
		case '{':
			depth++
		case '}':
			depth--
		case ']':
			if depth == 0 {
				return s.slice(start+1, s.pos-1), true, nil
			}
		}
	}
	s.pos = start
	return "", false, errors.New(errors.ErrCodeUnbalancedGroup, "missing ] for the optional argument opened here")
}

// token reads one undelimited argument: a group's inner text, a command
// or a single character.
func (s *scanner) token() (string, error) {
	s.skipSpace()
	switch r := s.peek(); {
	case s.eof(), r == '}':
		return "", errors.New(errors.ErrCodeMissingArgument, "missing argument")
	case r == '{':
		return s.group()
	case r == '\\':
		start := s.pos
		s.skipCommand()
		return s.slice(start, s.pos), nil
	default:
		s.next()
		return string(r), nil
	}
}
