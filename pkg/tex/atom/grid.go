package atom

import (
	"strconv"
	"strings"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
)

// Columns is a parsed column specification such as "l|c|r".
type Columns struct {
	Align []box.Align
	// Lines counts the vertical rules at each column boundary; it has one
	// more entry than Align.
	Lines []int
}

// ParseColumns reads an array column specification. It accepts l, c, r,
// | and *{n}{spec}; spaces are ignored.
func ParseColumns(spec string) (Columns, error) {
	s, err := expandRepeats(spec, 0)
	if err != nil {
		return Columns{}, err
	}
	c := Columns{Lines: []int{0}}
	for _, r := range s {
		switch r {
		case 'l', 'c', 'r':
			c.Align = append(c.Align, alignOf(r))
			c.Lines = append(c.Lines, 0)
		case '|':
			c.Lines[len(c.Lines)-1]++
		case ' ':
		default:
			return Columns{}, errors.New(errors.ErrCodeInvalidInput, "unknown column type %q in %q", r, spec)
		}
	}
	return c, nil
}

func alignOf(r rune) box.Align {
	switch r {
	case 'l':
		return box.Left
	case 'r':
		return box.Right
	}
	return box.Center
}

const maxRepeatDepth = 8

// expandRepeats rewrites *{n}{spec} into n copies of spec.
func expandRepeats(spec string, depth int) (string, error) {
	i := strings.IndexByte(spec, '*')
	if i < 0 {
		return spec, nil
	}
	if depth > maxRepeatDepth {
		return "", errors.New(errors.ErrCodeInvalidInput, "column repeats nested too deeply")
	}
	count, rest, ok := braced(spec[i+1:])
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "malformed column repeat in %q", spec)
	}
	body, rest, ok := braced(rest)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "malformed column repeat in %q", spec)
	}
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n < 0 || n > 100 {
		return "", errors.New(errors.ErrCodeInvalidNumber, "invalid column repeat count %q", count)
	}
	return expandRepeats(spec[:i]+strings.Repeat(body, n)+rest, depth+1)
}

// braced splits a leading {...} group, skipping spaces before it.
func braced(s string) (group, rest string, ok bool) {
	s = strings.TrimLeft(s, " ")
	if !strings.HasPrefix(s, "{") {
		return "", s, false
	}
	level := 0
	for i, r := range s {
		switch r {
		case '{':
			level++
		case '}':
			level--
			if level == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", s, false
}

// Hline is a \hline in an array. It lays out to nothing on its own; the
// enclosing matrix draws the rule.
type Hline struct{ base }

func NewHline() *Hline { return &Hline{base{typ: class.Hline}} }

func (*Hline) CreateBox(env.Environment) *box.Box { return box.NewStrut(0, 0, 0, 0) }

func (h *Hline) Clone() Atom { return &Hline{h.base} }

// Multicolumn is a cell spanning several columns with its own alignment
// and boundary rules.
type Multicolumn struct {
	base
	Span    int
	Columns Columns
	Content Atom
}

// NewMulticolumn returns content spanning n columns. spec must describe
// exactly one column.
func NewMulticolumn(n int, spec string, content Atom) (*Multicolumn, error) {
	if n < 1 {
		return nil, construction("multicolumn span %d must be positive", n)
	}
	cols, err := ParseColumns(spec)
	if err != nil {
		return nil, err
	}
	if len(cols.Align) != 1 {
		return nil, construction("multicolumn needs one column type, got %q", spec)
	}
	return &Multicolumn{base: base{typ: class.Multicolumn}, Span: n, Columns: cols, Content: content}, nil
}

func (m *Multicolumn) CreateBox(e env.Environment) *box.Box {
	return box.NewHBox(createBox(m.Content, e))
}

func (m *Multicolumn) Children() []Atom { return nonNil(m.Content) }

func (m *Multicolumn) Clone() Atom {
	cp := *m
	cp.Content = clone(m.Content)
	return &cp
}

// Intertext is a left-aligned line of text between the rows of an
// alignment.
type Intertext struct {
	base
	Content Atom
}

func NewIntertext(content Atom) *Intertext {
	return &Intertext{base: base{typ: class.Intertext}, Content: content}
}

func (t *Intertext) CreateBox(e env.Environment) *box.Box {
	return box.NewHBox(createBox(t.Content, e.WithStyle(e.Style.Uncramped())))
}

func (t *Intertext) Children() []Atom { return nonNil(t.Content) }

func (t *Intertext) Clone() Atom { return &Intertext{base: t.base, Content: clone(t.Content)} }

// Grid collects the cells of an array while it is parsed. Rows end with
// EndRow; Finish closes the last row.
type Grid struct {
	rows [][]Atom
	// gaps[i] is the extra space requested after row i by \\[len].
	gaps []*env.Length
	// hlines[i] counts the rules drawn above row i; index len(rows) is the
	// bottom.
	hlines map[int]int
	row    []Atom
	cols   int
}

func NewGrid() *Grid { return &Grid{hlines: map[int]int{}} }

// AddCell appends a cell to the current row. \hline cells are recorded as
// rules above the row being built.
func (g *Grid) AddCell(a Atom) {
	if _, ok := a.(*Hline); ok {
		g.AddHline()
		return
	}
	g.row = append(g.row, a)
}

// AddHline records a rule above the current row.
func (g *Grid) AddHline() { g.hlines[len(g.rows)]++ }

// EndRow closes the current row. extra is the optional \\[len] space.
func (g *Grid) EndRow(extra *env.Length) {
	g.rows = append(g.rows, g.row)
	g.gaps = append(g.gaps, extra)
	if n := span(g.row); n > g.cols {
		g.cols = n
	}
	g.row = nil
}

// Finish closes a pending non-empty row. A trailing \\ leaves no empty
// row behind.
func (g *Grid) Finish() {
	if len(g.row) == 0 {
		return
	}
	if len(g.row) == 1 {
		if e, ok := g.row[0].(*Row); ok && e.Len() == 0 {
			g.row = nil
			return
		}
	}
	g.EndRow(nil)
}

// Rows is the number of closed rows.
func (g *Grid) Rows() int { return len(g.rows) }

// Cols is the widest row, counting spanned columns.
func (g *Grid) Cols() int { return g.cols }

// Cells returns the cells of row i.
func (g *Grid) Cells(i int) []Atom { return g.rows[i] }

func (g *Grid) clone() *Grid {
	cp := &Grid{hlines: make(map[int]int, len(g.hlines)), cols: g.cols, row: cloneAll(g.row)}
	for i, r := range g.rows {
		cp.rows = append(cp.rows, cloneAll(r))
		var gap *env.Length
		if g.gaps[i] != nil {
			l := *g.gaps[i]
			gap = &l
		}
		cp.gaps = append(cp.gaps, gap)
	}
	for k, v := range g.hlines {
		cp.hlines[k] = v
	}
	return cp
}

// span counts the columns a row occupies.
func span(row []Atom) int {
	n := 0
	for _, a := range row {
		if mc, ok := a.(*Multicolumn); ok {
			n += mc.Span
			continue
		}
		n++
	}
	return n
}

// intertext returns the only cell of an \intertext row.
func intertext(row []Atom) (*Intertext, bool) {
	if len(row) != 1 {
		return nil, false
	}
	t, ok := row[0].(*Intertext)
	return t, ok
}
