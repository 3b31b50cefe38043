package atom

import (
	"math"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

// Flavor selects the column spacing, cell alignment and cell style of a
// Matrix.
type Flavor int

const (
	FlavorArray Flavor = iota
	FlavorMatrix
	FlavorSmallMatrix
	FlavorAlign
	FlavorAligned
	FlavorAlignAt
	FlavorAlignedAt
	FlavorFlAlign
	FlavorGather
	FlavorCases
)

var flavorNames = [...]string{
	"array", "matrix", "smallmatrix", "align", "aligned",
	"alignat", "alignedat", "flalign", "gather", "cases",
}

func (f Flavor) String() string {
	if int(f) < len(flavorNames) {
		return flavorNames[f]
	}
	return "flavor?"
}

// aligns reports whether f pairs columns as right/left.
func (f Flavor) aligns() bool {
	switch f {
	case FlavorAlign, FlavorAligned, FlavorAlignAt, FlavorAlignedAt, FlavorFlAlign:
		return true
	}
	return false
}

// Separation constants of the matrix flavors.
var (
	ArrayColSep    = env.Length{Value: 0.5, Unit: env.Em}
	MatrixColSep   = env.Length{Value: 1, Unit: env.Em}
	AlignedPairSep = env.Length{Value: 2, Unit: env.Em}
	RowSep         = env.Length{Value: 1, Unit: env.Ex}
	DoubleRuleSep  = env.Length{Value: 2, Unit: env.Pt}
)

// Matrix lays out a Grid. Array uses the explicit column specification;
// the other flavors derive theirs.
type Matrix struct {
	base
	Grid   *Grid
	Flavor Flavor
	// Columns is the column specification of an array.
	Columns Columns
	// Pairs is the column pair count of alignat and alignedat.
	Pairs int
	// Align overrides the cell alignment of matrix flavors when set.
	Align *box.Align
}

// NewMatrix returns g laid out as f. Use NewArray and NewAlignAt for the
// flavors that take a column argument.
func NewMatrix(g *Grid, f Flavor) (*Matrix, error) {
	if g == nil {
		return nil, construction("matrix needs a grid")
	}
	switch f {
	case FlavorArray:
		return nil, construction("array needs a column specification")
	case FlavorGather:
		if g.Cols() > 1 {
			return nil, errors.New(errors.ErrCodeColumnMismatch, "gather allows one column, got %d", g.Cols())
		}
	case FlavorCases:
		if g.Cols() > 2 {
			return nil, errors.New(errors.ErrCodeColumnMismatch, "cases allows two columns, got %d", g.Cols())
		}
	}
	return &Matrix{base: base{typ: class.Ord}, Grid: g, Flavor: f}, nil
}

// NewArray returns g laid out with an explicit column specification.
func NewArray(g *Grid, cols Columns) (*Matrix, error) {
	if g == nil {
		return nil, construction("matrix needs a grid")
	}
	if g.Cols() > len(cols.Align) {
		return nil, errors.New(errors.ErrCodeColumnMismatch, "row has %d columns, specification has %d", g.Cols(), len(cols.Align))
	}
	return &Matrix{base: base{typ: class.Ord}, Grid: g, Flavor: FlavorArray, Columns: cols}, nil
}

// NewAlignAt returns an alignat or alignedat grid of pairs column pairs.
func NewAlignAt(g *Grid, f Flavor, pairs int) (*Matrix, error) {
	if f != FlavorAlignAt && f != FlavorAlignedAt {
		return nil, construction("flavor %s takes no column pairs", f)
	}
	if g == nil {
		return nil, construction("matrix needs a grid")
	}
	if pairs < 1 {
		return nil, construction("alignat needs a positive column pair count")
	}
	if g.Cols() > 2*pairs {
		return nil, errors.New(errors.ErrCodeColumnMismatch, "row has %d columns, alignat allows %d", g.Cols(), 2*pairs)
	}
	return &Matrix{base: base{typ: class.Ord}, Grid: g, Flavor: f, Pairs: pairs}, nil
}

// SetAlign sets the alignment of every cell of a matrix flavor.
func (m *Matrix) SetAlign(a box.Align) { m.Align = &a }

func (m *Matrix) Children() []Atom {
	var out []Atom
	for i := 0; i < m.Grid.Rows(); i++ {
		out = append(out, nonNil(m.Grid.Cells(i)...)...)
	}
	return out
}

func (m *Matrix) Clone() Atom {
	cp := *m
	cp.Grid = m.Grid.clone()
	cp.Columns = Columns{
		Align: append([]box.Align(nil), m.Columns.Align...),
		Lines: append([]int(nil), m.Columns.Lines...),
	}
	if m.Align != nil {
		a := *m.Align
		cp.Align = &a
	}
	return &cp
}

// cellStyle is the style cells are laid out in.
func (m *Matrix) cellStyle() style.Style {
	switch {
	case m.Flavor == FlavorSmallMatrix:
		return style.Script
	case m.Flavor.aligns() || m.Flavor == FlavorGather:
		return style.Display
	}
	return style.Text
}

func (m *Matrix) cols() int {
	n := m.Grid.Cols()
	switch m.Flavor {
	case FlavorArray:
		n = len(m.Columns.Align)
	case FlavorAlignAt, FlavorAlignedAt:
		n = max(n, 2*m.Pairs)
	}
	return n
}

func (m *Matrix) align(j int) box.Align {
	switch {
	case m.Flavor == FlavorArray:
		if j < len(m.Columns.Align) {
			return m.Columns.Align[j]
		}
	case m.Flavor.aligns():
		if j%2 == 0 {
			return box.Right
		}
		return box.Left
	case m.Flavor == FlavorCases:
		return box.Left
	case m.Align != nil:
		return *m.Align
	}
	return box.Center
}

func (m *Matrix) lines(k int) int {
	if m.Flavor != FlavorArray || k >= len(m.Columns.Lines) {
		return 0
	}
	return m.Columns.Lines[k]
}

// separators returns the space at each of the n+1 column boundaries for
// columns of the given widths.
func (m *Matrix) separators(e env.Environment, widths []float64) []float64 {
	n := len(widths)
	seps := make([]float64, n+1)
	if n == 0 {
		return seps
	}
	var sum float64
	for _, w := range widths {
		sum += w
	}
	free := e.TextWidth - sum
	bounded := !math.IsInf(e.TextWidth, 1)
	pairs := (n + 1) / 2

	switch m.Flavor {
	case FlavorArray:
		inner := length(ArrayColSep, e)
		for k := range seps {
			seps[k] = 2 * inner
		}
		seps[0], seps[n] = inner, inner
	case FlavorMatrix, FlavorSmallMatrix, FlavorCases, FlavorGather:
		sep := length(MatrixColSep, e)
		for k := 1; k < n; k++ {
			seps[k] = sep
		}
	case FlavorAlign:
		if !bounded {
			m.pairSeps(seps, length(AlignedPairSep, e))
			break
		}
		s := math.Max(free/float64(pairs+1), 0)
		seps[0], seps[n] = s, s
		m.pairSeps(seps, s)
	case FlavorAlignAt:
		if bounded {
			s := math.Max(free/2, 0)
			seps[0], seps[n] = s, s
		}
	case FlavorFlAlign:
		if !bounded {
			m.pairSeps(seps, length(AlignedPairSep, e))
			break
		}
		if pairs > 1 {
			m.pairSeps(seps, math.Max(free/float64(pairs-1), 0))
		} else {
			seps[n] = math.Max(free, 0)
		}
	case FlavorAligned:
		m.pairSeps(seps, length(AlignedPairSep, e))
	}
	return seps
}

// pairSeps sets the boundaries between column pairs.
func (m *Matrix) pairSeps(seps []float64, s float64) {
	for k := 2; k < len(seps)-1; k += 2 {
		seps[k] = s
	}
}

// cell is one laid-out cell.
type cell struct {
	b     *box.Box
	col   int
	span  int
	align box.Align
	// left and right are the rule counts at the cell's outer boundaries.
	left, right int
}

func (m *Matrix) CreateBox(e env.Environment) *box.Box {
	ce := e.WithStyle(m.cellStyle())
	n := m.cols()
	widths := make([]float64, n)
	rows := make([][]cell, m.Grid.Rows())
	heights := make([]float64, len(rows))
	depths := make([]float64, len(rows))
	texts := map[int]*box.Box{}

	for i := range rows {
		cells := m.Grid.Cells(i)
		if t, ok := intertext(cells); ok {
			b := t.CreateBox(e.WithStyle(style.Text))
			texts[i] = b
			heights[i], depths[i] = b.Height, b.Depth
			continue
		}
		j := 0
		for _, a := range cells {
			c := cell{b: createBox(a, ce), col: j, span: 1, align: m.align(j), left: m.lines(j), right: m.lines(j + 1)}
			if mc, ok := a.(*Multicolumn); ok {
				c.span = min(mc.Span, n-j)
				c.align = mc.Columns.Align[0]
				c.right = mc.Columns.Lines[1]
				if j == 0 {
					c.left = mc.Columns.Lines[0]
				}
			}
			if c.span == 1 && j < n {
				widths[j] = math.Max(widths[j], c.b.Width)
			}
			heights[i] = math.Max(heights[i], c.b.Height)
			depths[i] = math.Max(depths[i], c.b.Depth)
			rows[i] = append(rows[i], c)
			j += c.span
		}
	}

	// Spanning cells wider than their columns widen them evenly, in one
	// pass in reading order.
	seps := m.separators(e, widths)
	for _, r := range rows {
		for _, c := range r {
			if c.span < 2 {
				continue
			}
			if excess := c.b.Width - spanWidth(widths, seps, c.col, c.span); excess > 0 {
				for k := c.col; k < c.col+c.span; k++ {
					widths[k] += excess / float64(c.span)
				}
			}
		}
	}
	seps = m.separators(e, widths)

	total := seps[n] + m.ruleWidth(n, e)
	for j, w := range widths {
		total += seps[j] + m.ruleWidth(j, e) + w
	}
	if !math.IsInf(e.TextWidth, 1) && len(texts) > 0 {
		total = math.Max(total, e.TextWidth)
	}

	drt := e.RuleThickness()
	gap := length(RowSep, e)
	vb := box.NewVBox()
	hline := func(at int) {
		for k := 0; k < m.Grid.hlines[at]; k++ {
			if k > 0 {
				vb.Add(box.NewStrut(0, length(DoubleRuleSep, e), 0, 0))
			}
			vb.Add(box.NewRule(drt, total, 0))
		}
	}

	hline(0)
	for i, r := range rows {
		after := 0.0
		if i < len(rows)-1 {
			after = gap
			if l := m.Grid.gaps[i]; l != nil {
				after += length(*l, e)
			}
		}
		if t, ok := texts[i]; ok {
			vb.Add(box.NewHBoxAligned(t, total, box.Left))
		} else {
			vb.Add(m.row(r, widths, seps, heights[i], depths[i]+after, e))
		}
		if i == len(rows)-1 {
			break
		}
		if m.Grid.hlines[i+1] > 0 {
			vb.Add(box.NewStrut(0, after/2, 0, 0))
			hline(i + 1)
			vb.Add(box.NewStrut(0, after/2, 0, 0))
		} else {
			vb.Add(box.NewStrut(0, after, 0, 0))
		}
	}
	if len(rows) > 0 {
		hline(len(rows))
	}

	t := vb.Total()
	axis := e.AxisHeight()
	vb.Height = t/2 + axis
	vb.Depth = t/2 - axis
	return vb
}

// row lays out one row. Vertical rules span the row height and its depth,
// which includes the gap to the next row.
func (m *Matrix) row(r []cell, widths, seps []float64, h, d float64, e env.Environment) *box.Box {
	hb := box.NewHBox()
	boundary := func(k, rules int) {
		if rules == 0 {
			hb.Add(box.NewGlue(seps[k]))
			return
		}
		hb.Add(box.NewGlue(seps[k] / 2))
		for i := 0; i < rules; i++ {
			if i > 0 {
				hb.Add(box.NewGlue(length(DoubleRuleSep, e)))
			}
			hb.Add(box.NewVRule(e.RuleThickness(), h, d))
		}
		hb.Add(box.NewGlue(seps[k] / 2))
	}

	if len(r) == 0 {
		boundary(0, m.lines(0))
	}
	j := 0
	for idx, c := range r {
		if idx == 0 {
			boundary(0, c.left)
		}
		hb.Add(box.NewHBoxAligned(c.b, spanWidth(widths, seps, c.col, c.span), c.align))
		boundary(c.col+c.span, c.right)
		j = c.col + c.span
	}
	// Missing trailing cells still take their width and rules.
	for ; j < len(widths); j++ {
		hb.Add(box.NewStrut(widths[j], 0, 0, 0))
		boundary(j+1, m.lines(j+1))
	}
	return hb
}

// ruleWidth is the width the rules at boundary k add to its separator.
func (m *Matrix) ruleWidth(k int, e env.Environment) float64 {
	n := m.lines(k)
	if n == 0 {
		return 0
	}
	return float64(n)*e.RuleThickness() + float64(n-1)*length(DoubleRuleSep, e)
}

// spanWidth is the width of span columns from col, including the inner
// separators.
func spanWidth(widths, seps []float64, col, span int) float64 {
	var w float64
	for k := col; k < col+span && k < len(widths); k++ {
		w += widths[k]
		if k > col {
			w += seps[k]
		}
	}
	return w
}
