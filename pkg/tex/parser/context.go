package parser

import (
	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/macro"
)

// call is the macro.Context of one invocation.
type call struct{ st *state }

var _ macro.Context = call{}

func (c call) Parse(src string) (atom.Atom, error) { return c.st.parse(src, false) }

func (c call) ParseText(src string) (atom.Atom, error) { return c.st.parse(src, true) }

func (c call) Rest() (atom.Atom, error) {
	row, err := c.st.list(c.st.stop)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (c call) ReadLength() (env.Length, error) { return c.st.readLength() }

func (c call) Prev() atom.Atom {
	if c.st.row == nil {
		return nil
	}
	return c.st.row.Last()
}

func (c call) PopPrev() atom.Atom {
	if c.st.row == nil {
		return nil
	}
	return c.st.row.Pop()
}

func (c call) Symbol(name string) (*atom.Symbol, error) {
	s, ok := c.st.symbols.Lookup(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownSymbol, "unknown symbol %s", name)
	}
	return atom.NewSymbol(s), nil
}

func (c call) Color(model, spec string) (color.Color, error) {
	return c.st.colors.Resolve(model, spec)
}

func (c call) DefineColor(name, model, spec string) error {
	col, err := c.st.colors.Resolve(model, spec)
	if err != nil {
		return err
	}
	c.st.colors.Define(name, col)
	return nil
}

func (c call) InText() bool { return c.st.text }

// ParseGrid parses an array body: cells separated by &, rows ended by \\
// or \cr with an optional [length] of extra space.
func (c call) ParseGrid(src string) (*atom.Grid, error) {
	sub, err := c.st.sub(src, false)
	if err != nil {
		return nil, err
	}
	sub.grid = atom.NewGrid()
	if err := sub.cells(); err != nil {
		return nil, err
	}
	return sub.grid, nil
}

func (st *state) lineBreak() bool {
	n := st.s.peekCommand()
	return n == `\` || n == "cr"
}

func (st *state) cells() error {
	g := st.grid
	endOfCell := func() bool { return st.s.peek() == '&' || st.lineBreak() }
	rowStart := true
	for {
		st.s.skipSpace()
		if rowStart && st.s.peekCommand() == "intertext" {
			st.s.skipCommand()
			a, err := st.intertext()
			if err != nil {
				return err
			}
			g.AddCell(a)
			g.EndRow(nil)
			st.s.skipSpace()
			if st.lineBreak() {
				st.s.skipCommand()
			}
			continue
		}
		content, err := st.list(endOfCell)
		if err != nil {
			return err
		}
		g.AddCell(cell(content))
		if st.s.eof() {
			break
		}
		if st.s.peek() == '&' {
			st.s.next()
			rowStart = false
			continue
		}
		st.s.skipCommand()
		if st.s.peek() == '*' {
			st.s.next()
		}
		raw, ok, err := st.s.optional()
		if err != nil {
			return err
		}
		var extra *env.Length
		if ok {
			l, err := env.ParseLength(raw)
			if err != nil {
				return err
			}
			extra = &l
		}
		g.EndRow(extra)
		rowStart = true
	}
	g.Finish()
	return nil
}

// cell unwraps a cell holding only a \multicolumn so the grid sees the
// span.
func cell(r *atom.Row) atom.Atom {
	if r.Len() == 1 {
		if mc, ok := r.Elems[0].(*atom.Multicolumn); ok {
			return mc
		}
	}
	return r
}
