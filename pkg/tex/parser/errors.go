package parser

import (
	stderrors "errors"
	"fmt"

	"github.com/matzehuels/texbox/pkg/errors"
)

// ParseError locates a markup error. Line and Column are 1-based and refer
// to the expanded text; an error raised inside a macro argument or a
// substituted user macro reports the outermost command containing it.
type ParseError struct {
	Code errors.Code
	// Command is the innermost command that failed, with its backslash.
	Command      string
	Line, Column int
	Err          error
}

func (e *ParseError) Error() string {
	msg := errors.UserMessage(e.Err)
	if e.Command != "" {
		msg = e.Command + ": " + msg
	}
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s (%s)", e.Line, e.Column, msg, e.Code)
	}
	return fmt.Sprintf("%s (%s)", msg, e.Code)
}

// Unwrap returns the underlying *errors.Error.
func (e *ParseError) Unwrap() error { return e.Err }

// locate returns err as a *ParseError naming cmd. Errors that already are
// one keep their command; pos fills in a position when at reports true.
func locate(err error, cmd string, s *scanner, pos int, at bool) error {
	var pe *ParseError
	if !stderrors.As(err, &pe) {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		pe = &ParseError{Code: code, Command: cmd, Err: err}
	}
	if at && pe.Line == 0 {
		pe.Line, pe.Column = s.position(pos)
	}
	return pe
}

// commandOf returns the command a parse error names, or "".
func commandOf(err error) string {
	var pe *ParseError
	if stderrors.As(err, &pe) {
		return pe.Command
	}
	return ""
}
