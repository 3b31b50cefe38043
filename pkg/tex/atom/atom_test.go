package atom

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/font"
	"github.com/matzehuels/texbox/pkg/tex/glue"
	"github.com/matzehuels/texbox/pkg/tex/style"
	"github.com/matzehuels/texbox/pkg/tex/symbol"
)

const eps = 1e-9

func testEnv(t *testing.T, st style.Style) env.Environment {
	t.Helper()
	syms := testSymbols(t)
	fonts, err := font.Default(syms)
	if err != nil {
		t.Fatalf("font.Default() error = %v", err)
	}
	g, err := glue.Default()
	if err != nil {
		t.Fatalf("glue.Default() error = %v", err)
	}
	return env.New(fonts, st).WithSpacing(g)
}

func testSymbols(t *testing.T) *symbol.Table {
	t.Helper()
	syms, err := symbol.Default()
	if err != nil {
		t.Fatalf("symbol.Default() error = %v", err)
	}
	return syms
}

func sym(t *testing.T, name string) *Symbol {
	t.Helper()
	s, ok := testSymbols(t).Lookup(name)
	if !ok {
		t.Fatalf("symbol %q not found", name)
	}
	return NewSymbol(s)
}

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestRowBinaryReclassification(t *testing.T) {
	e := testEnv(t, style.Text)
	wx := NewChar('x').CreateBox(e).Width
	wy := NewChar('y').CreateBox(e).Width
	wm := sym(t, "minus").CreateBox(e).Width
	med := 4 * e.Mu()

	tests := []struct {
		name  string
		row   *Row
		width float64
	}{
		{"leading bin is ord", NewRow(sym(t, "minus"), NewChar('x')), wm + wx},
		{"infix bin", NewRow(NewChar('x'), sym(t, "minus"), NewChar('y')), wx + wm + wy + 2*med},
		{"trailing bin is ord", NewRow(NewChar('x'), sym(t, "minus")), wx + wm},
		{"bin after rel is ord", NewRow(NewChar('x'), sym(t, "equals"), sym(t, "minus"), NewChar('y')),
			wx + sym(t, "equals").CreateBox(e).Width + wm + wy + 2*5*e.Mu()},
		{"ord ord has no glue", NewRow(NewChar('x'), NewChar('y')), wx + wy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.CreateBox(e).Width; !near(got, tt.width) {
				t.Errorf("Width = %v, want %v", got, tt.width)
			}
		})
	}
}

func TestRowKernSuppressesGlue(t *testing.T) {
	e := testEnv(t, style.Text)
	plain := NewRow(NewChar('x'), sym(t, "equals"), NewChar('y')).CreateBox(e).Width
	kerned := NewRow(NewChar('x'), Mu(0), sym(t, "equals"), Mu(0), NewChar('y')).CreateBox(e).Width
	if want := plain - 2*5*e.Mu(); !near(kerned, want) {
		t.Errorf("Width with kerns = %v, want %v", kerned, want)
	}
}

func TestRowBreaks(t *testing.T) {
	e := testEnv(t, style.Text)
	b := NewRow(NewChar('a'), sym(t, "equals"), NewChar('b'), sym(t, "plus"), NewChar('c')).CreateBox(e)
	if len(b.Breaks) != 2 {
		t.Errorf("Breaks = %v, want two break points", b.Breaks)
	}
}

func TestFractionGeometry(t *testing.T) {
	e := testEnv(t, style.Display)
	f, err := NewFraction(NewChar('1'), NewChar('2'), true)
	if err != nil {
		t.Fatalf("NewFraction() error = %v", err)
	}
	b := f.CreateBox(e)

	p := e.Params()
	one := NewChar('1').CreateBox(e.Num())
	two := NewChar('2').CreateBox(e.Denom())
	if want := p.Num1 + one.Height; !near(b.Height, want) {
		t.Errorf("Height = %v, want num1 + h(1) = %v", b.Height, want)
	}
	if want := p.Denom1 + two.Depth; !near(b.Depth, want) {
		t.Errorf("Depth = %v, want denom1 + d(2) = %v", b.Depth, want)
	}
	pad := length(NullDelimiterSpace, e)
	if want := math.Max(one.Width, two.Width) + 2*pad; !near(b.Width, want) {
		t.Errorf("Width = %v, want %v", b.Width, want)
	}
}

func TestFractionWithoutRule(t *testing.T) {
	e := testEnv(t, style.Text)
	ruled, _ := NewFraction(NewChar('a'), NewChar('b'), true)
	bare, _ := NewFraction(NewChar('a'), NewChar('b'), false)
	if r, b := ruled.CreateBox(e), bare.CreateBox(e); !near(r.Width, b.Width) {
		t.Errorf("Width = %v and %v, want equal widths", r.Width, b.Width)
	}
}

func TestScripts(t *testing.T) {
	e := testEnv(t, style.Text)
	x := NewChar('x').CreateBox(e)
	p := e.Params()

	sup := NewScripts(NewChar('x'), nil, NewChar('2')).CreateBox(e)
	if sup.Height <= x.Height {
		t.Errorf("superscript Height = %v, want above %v", sup.Height, x.Height)
	}
	sub := NewScripts(NewChar('x'), NewChar('3'), nil).CreateBox(e)
	three := NewChar('3').CreateBox(e.Sub())
	if sub.Depth < p.Sub1+three.Depth-eps {
		t.Errorf("subscript Depth = %v, want at least sub1 + d(3) = %v", sub.Depth, p.Sub1+three.Depth)
	}
	both := NewScripts(NewChar('x'), NewChar('3'), NewChar('2')).CreateBox(e)
	if both.Height < sup.Height-eps || both.Depth < sub.Depth-eps {
		t.Errorf("both scripts = %v, want at least %v over %v", both, sup, sub)
	}
	space := length(ScriptSpace, e)
	if want := x.Width + NewChar('2').CreateBox(e.Sup()).Width + space; sup.Width < want-eps {
		t.Errorf("superscript Width = %v, want at least %v", sup.Width, want)
	}
}

func TestScriptsClearance(t *testing.T) {
	e := testEnv(t, style.Text)
	deep, err := NewFraction(NewChar('a'), NewChar('g'), true)
	if err != nil {
		t.Fatalf("NewFraction() error = %v", err)
	}
	tall, err := NewFraction(NewChar('b'), NewChar('c'), true)
	if err != nil {
		t.Fatalf("NewFraction() error = %v", err)
	}
	b := NewScripts(NewChar('x'), tall, deep).CreateBox(e)

	if len(b.Children) == 0 {
		t.Fatalf("scripts box %v has no children", b)
	}
	stack := b.Children[len(b.Children)-1]
	if stack.Kind != box.KindVBox || len(stack.Children) != 3 {
		t.Fatalf("script stack = %v, want a vbox of superscript, gap and subscript", stack)
	}
	sup, gap := stack.Children[0], stack.Children[1]

	if theta := e.Params().DefaultRuleThickness; gap.Height < 4*theta-eps {
		t.Errorf("gap between scripts = %v, want at least 4θ = %v", gap.Height, 4*theta)
	}
	xh := e.WithLastFont(NewChar('x').CreateBox(e).LastFontID).XHeight()
	if bottom := stack.Height - sup.Total(); bottom < 4*xh/5-eps {
		t.Errorf("superscript bottom = %v, want at least 4/5 x-height = %v", bottom, 4*xh/5)
	}
}

func TestBigOperatorLimits(t *testing.T) {
	tests := []struct {
		name    string
		st      style.Style
		limits  class.Limits
		stacked bool
	}{
		{"display stacks", style.Display, class.Normal, true},
		{"text scripts", style.Text, class.Normal, false},
		{"limits in text", style.Text, class.WithLimits, true},
		{"nolimits in display", style.Display, class.NoLimits, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEnv(t, tt.st)
			op, err := NewBigOperator(sym(t, "sum"), NewChar('i'), NewChar('n'))
			if err != nil {
				t.Fatalf("NewBigOperator() error = %v", err)
			}
			op.SetLimits(tt.limits)
			b := op.CreateBox(e)
			if got := b.Kind == box.KindVBox; got != tt.stacked {
				t.Errorf("stacked = %v, want %v (box %v)", got, tt.stacked, b)
			}
		})
	}
}

func TestScriptsLimitsOverride(t *testing.T) {
	e := testEnv(t, style.Display)
	sc := NewScripts(sym(t, "sum"), NewChar('i'), NewChar('n'))
	if b := sc.CreateBox(e); b.Kind != box.KindVBox {
		t.Fatalf("display sum = %v, want stacked limits", b)
	}
	sc.SetLimits(class.NoLimits)
	if got := sc.Limits(); got != class.NoLimits {
		t.Errorf("Limits() = %v, want nolimits", got)
	}
	if b := sc.CreateBox(e); b.Kind == box.KindVBox {
		t.Errorf("display sum with nolimits = %v, want side scripts", b)
	}
}

func TestRowLigaturesAndKerns(t *testing.T) {
	e := testEnv(t, style.Text).WithVariant(font.Variant{Family: font.Roman})

	ffi := NewRow(NewChar('f'), NewChar('f'), NewChar('i')).CreateBox(e)
	glyphs := box.Glyphs(ffi)
	if len(glyphs) != 1 || glyphs[0].Glyph.C != 'ﬃ' {
		var got []rune
		for _, g := range glyphs {
			got = append(got, g.Glyph.C)
		}
		t.Errorf("glyphs of ffi = %q, want one ﬃ ligature", string(got))
	}

	a := NewChar('A').CreateBox(e).Width
	v := NewChar('V').CreateBox(e).Width
	av := NewRow(NewChar('A'), NewChar('V')).CreateBox(e).Width
	if av >= a+v {
		t.Errorf("AV width = %v, want narrower than A + V = %v", av, a+v)
	}
	cf := NewChar('A').CharFont(e)
	if k := e.Fonts.Kern(cf, NewChar('V').CharFont(e), e.Style); !near(av, a+v+k) {
		t.Errorf("AV width = %v, want A + V + kern = %v", av, a+v+k)
	}
}

func TestAccentSumOfParts(t *testing.T) {
	e := testEnv(t, style.Text)
	a, err := NewAccented(NewChar('x'), sym(t, "hat"), false)
	if err != nil {
		t.Fatalf("NewAccented() error = %v", err)
	}
	got := a.CreateBox(e)
	base := NewChar('x').CreateBox(e.Cramp())
	acc, delta := a.accentBox(e, base.Width, base.Height)
	if want := acc.Total() - delta + base.Total(); !near(got.Total(), want) {
		t.Errorf("Total = %v, want accent + base - kern = %v", got.Total(), want)
	}
	if !near(got.Depth, base.Depth) {
		t.Errorf("Depth = %v, want base depth %v", got.Depth, base.Depth)
	}
	if xh := e.Fonts.XHeight(e.Style, acc.LastFontID); !near(delta, math.Min(base.Height, xh)) {
		t.Errorf("kern = %v, want min(%v, %v)", delta, base.Height, xh)
	}
}

func TestMatrixTwoByTwo(t *testing.T) {
	e := testEnv(t, style.Text)
	g := NewGrid()
	g.AddCell(NewChar('a'))
	g.AddCell(NewChar('b'))
	g.EndRow(nil)
	g.AddCell(NewChar('c'))
	g.AddCell(NewChar('d'))
	g.Finish()
	if g.Rows() != 2 || g.Cols() != 2 {
		t.Fatalf("grid = %dx%d, want 2x2", g.Rows(), g.Cols())
	}
	m, err := NewMatrix(g, FlavorMatrix)
	if err != nil {
		t.Fatalf("NewMatrix() error = %v", err)
	}
	b := m.CreateBox(e)

	ch := func(c rune) *box.Box { return NewChar(c).CreateBox(e) }
	a, bb, c, d := ch('a'), ch('b'), ch('c'), ch('d')
	width := math.Max(a.Width, c.Width) + length(MatrixColSep, e) + math.Max(bb.Width, d.Width)
	if !near(b.Width, width) {
		t.Errorf("Width = %v, want %v", b.Width, width)
	}
	row1 := math.Max(a.Height, bb.Height) + math.Max(a.Depth, bb.Depth)
	row2 := math.Max(c.Height, d.Height) + math.Max(c.Depth, d.Depth)
	if want := row1 + length(RowSep, e) + row2; !near(b.Total(), want) {
		t.Errorf("Total = %v, want %v", b.Total(), want)
	}
	if got := b.Height - b.Depth; !near(got, 2*e.AxisHeight()) {
		t.Errorf("Height - Depth = %v, want centered on axis (%v)", got, 2*e.AxisHeight())
	}
}

func TestMatrixMulticolumn(t *testing.T) {
	e := testEnv(t, style.Text)
	wide, _ := NewMulticolumn(2, "c", NewRow(NewChar('w'), NewChar('w'), NewChar('w'), NewChar('w')))
	g := NewGrid()
	g.AddCell(NewChar('a'))
	g.AddCell(NewChar('b'))
	g.EndRow(nil)
	g.AddCell(wide)
	g.Finish()
	cols, _ := ParseColumns("cc")
	m, err := NewArray(g, cols)
	if err != nil {
		t.Fatalf("NewArray() error = %v", err)
	}
	b := m.CreateBox(e)
	ww := wide.CreateBox(e.WithStyle(style.Text)).Width
	if want := ww + 2*length(ArrayColSep, e); b.Width < want-eps {
		t.Errorf("Width = %v, want at least %v", b.Width, want)
	}
}

func TestMatrixColumnMismatch(t *testing.T) {
	g := NewGrid()
	g.AddCell(NewChar('a'))
	g.AddCell(NewChar('b'))
	g.AddCell(NewChar('c'))
	g.Finish()
	cols, _ := ParseColumns("cc")
	if _, err := NewArray(g, cols); !errors.Is(err, errors.ErrCodeColumnMismatch) {
		t.Errorf("NewArray() error = %v, want %s", err, errors.ErrCodeColumnMismatch)
	}
	if _, err := NewAlignAt(g, FlavorAlignAt, 1); !errors.Is(err, errors.ErrCodeColumnMismatch) {
		t.Errorf("NewAlignAt() error = %v, want %s", err, errors.ErrCodeColumnMismatch)
	}
}

func TestAlignSeparators(t *testing.T) {
	e := testEnv(t, style.Text)
	m := &Matrix{Grid: NewGrid(), Flavor: FlavorAlign}
	widths := []float64{1, 1, 1, 1}

	unbounded := m.separators(e, widths)
	if want := length(AlignedPairSep, e); !near(unbounded[2], want) || unbounded[0] != 0 {
		t.Errorf("unbounded separators = %v, want pair gap %v and no margins", unbounded, want)
	}

	bounded := m.separators(e.WithTextWidth(10), widths)
	for _, k := range []int{0, 2, 4} {
		if !near(bounded[k], 2) {
			t.Errorf("bounded separator %d = %v, want 2", k, bounded[k])
		}
	}
	if bounded[1] != 0 || bounded[3] != 0 {
		t.Errorf("separators inside pairs = %v, want 0", bounded)
	}

	at := &Matrix{Grid: NewGrid(), Flavor: FlavorAlignAt, Pairs: 2}
	margins := at.separators(e.WithTextWidth(10), widths)
	if !near(margins[0], 3) || !near(margins[4], 3) || margins[2] != 0 {
		t.Errorf("alignat separators = %v, want margins of 3", margins)
	}
}

func TestParseColumns(t *testing.T) {
	tests := []struct {
		spec  string
		align []box.Align
		lines []int
	}{
		{"lcr", []box.Align{box.Left, box.Center, box.Right}, []int{0, 0, 0, 0}},
		{"|c|c|", []box.Align{box.Center, box.Center}, []int{1, 1, 1}},
		{"*{3}{c}", []box.Align{box.Center, box.Center, box.Center}, []int{0, 0, 0, 0}},
		{"l||r", []box.Align{box.Left, box.Right}, []int{0, 2, 0}},
		{"*{2}{l|}", []box.Align{box.Left, box.Left}, []int{0, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseColumns(tt.spec)
			if err != nil {
				t.Fatalf("ParseColumns(%q) error = %v", tt.spec, err)
			}
			if len(got.Align) != len(tt.align) || len(got.Lines) != len(tt.lines) {
				t.Fatalf("ParseColumns(%q) = %+v, want %v %v", tt.spec, got, tt.align, tt.lines)
			}
			for i := range tt.align {
				if got.Align[i] != tt.align[i] {
					t.Errorf("Align[%d] = %v, want %v", i, got.Align[i], tt.align[i])
				}
			}
			for i := range tt.lines {
				if got.Lines[i] != tt.lines[i] {
					t.Errorf("Lines[%d] = %v, want %v", i, got.Lines[i], tt.lines[i])
				}
			}
		})
	}

	for _, bad := range []string{"lxr", "*{3}", "*{q}{c}"} {
		if _, err := ParseColumns(bad); err == nil {
			t.Errorf("ParseColumns(%q) error = nil, want error", bad)
		}
	}
}

func TestDelimiterSizes(t *testing.T) {
	e := testEnv(t, style.Text)
	tests := []struct {
		name string
		min  float64
	}{
		{"natural", 0},
		{"larger variant", 1.5},
		{"extensible", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Delimiter("lparen", tt.min, e); got.Total() < tt.min {
				t.Errorf("Delimiter(lparen, %v).Total() = %v, want at least %v", tt.min, got.Total(), tt.min)
			}
		})
	}
	if got := Delimiter("nosuchdelimiter", 1, e); got.Width != 0 {
		t.Errorf("Delimiter(unknown) = %v, want empty box", got)
	}
}

func TestFenced(t *testing.T) {
	e := testEnv(t, style.Text)
	frac, _ := NewFraction(NewChar('a'), NewChar('b'), true)
	mid, err := NewMiddle(sym(t, "vert"))
	if err != nil {
		t.Fatalf("NewMiddle() error = %v", err)
	}
	f, err := NewFenced(sym(t, "lparen"), NewRow(frac, mid, NewChar('c')), sym(t, "rparen"))
	if err != nil {
		t.Fatalf("NewFenced() error = %v", err)
	}
	b := f.CreateBox(e)
	content := frac.CreateBox(e)
	if b.Total() < content.Total() {
		t.Errorf("fence Total = %v, want at least content %v", b.Total(), content.Total())
	}
	bare := mid.CreateBox(e)
	grown := mid.CreateBox(e.WithFenceHeight(fenceHeight(content, e)))
	if grown.Total() < bare.Total() {
		t.Errorf("middle Total = %v, want at least %v", grown.Total(), bare.Total())
	}

	null, _ := NewFenced(nil, NewChar('x'), sym(t, "rparen"))
	if got := null.CreateBox(e).Children[0].Width; !near(got, length(NullDelimiterSpace, e)) {
		t.Errorf("null delimiter width = %v, want %v", got, length(NullDelimiterSpace, e))
	}
}

func TestBigDelimiterGrows(t *testing.T) {
	e := testEnv(t, style.Text)
	var last float64
	for size := 1; size <= 4; size++ {
		d, err := NewBigDelimiter(sym(t, "lparen"), size, class.Open)
		if err != nil {
			t.Fatalf("NewBigDelimiter(%d) error = %v", size, err)
		}
		got := d.CreateBox(e).Total()
		if got <= last {
			t.Errorf("size %d Total = %v, want more than %v", size, got, last)
		}
		last = got
	}
}

func TestRadical(t *testing.T) {
	e := testEnv(t, style.Text)
	r, err := NewRadical(NewChar('x'), nil)
	if err != nil {
		t.Fatalf("NewRadical() error = %v", err)
	}
	b := r.CreateBox(e)
	x := NewChar('x').CreateBox(e.Cramp())
	if b.Width <= x.Width || b.Height <= x.Height {
		t.Errorf("radical = %v, want larger than radicand %v", b, x)
	}
	indexed, _ := NewRadical(NewChar('x'), NewChar('3'))
	if got := indexed.CreateBox(e); got.Height < b.Height-eps {
		t.Errorf("indexed radical Height = %v, want at least %v", got.Height, b.Height)
	}
}

func TestUnderOverBaseline(t *testing.T) {
	e := testEnv(t, style.Text)
	u, err := NewUnderOver(NewChar('x'), NewChar('a'), NewChar('b'), true)
	if err != nil {
		t.Fatalf("NewUnderOver() error = %v", err)
	}
	u.OverKern = env.Length{Value: 2, Unit: env.Pt}
	b := u.CreateBox(e)
	x := NewChar('x').CreateBox(e)
	a := NewChar('a').CreateBox(e.Sup())
	kern := length(u.OverKern, e)
	if want := a.Total() + kern + x.Height; !near(b.Height, want) {
		t.Errorf("Height = %v, want %v", b.Height, want)
	}
	if u.Type() != class.Ord {
		t.Errorf("Type() = %v, want base type ord", u.Type())
	}
}

func TestOverBar(t *testing.T) {
	e := testEnv(t, style.Text)
	b := NewOverBar(NewChar('x')).CreateBox(e)
	x := NewChar('x').CreateBox(e.Cramp())
	if want := x.Height + 5*e.RuleThickness(); !near(b.Height, want) {
		t.Errorf("Height = %v, want %v", b.Height, want)
	}
	if !near(b.Depth, x.Depth) {
		t.Errorf("Depth = %v, want %v", b.Depth, x.Depth)
	}
}

func TestXArrowDepth(t *testing.T) {
	e := testEnv(t, style.Text)
	g, ok := e.Fonts.Symbol("rightarrow", e.Style)
	if !ok {
		t.Fatal("Symbol(rightarrow) not found")
	}
	tests := []struct {
		name  string
		under Atom
	}{
		{"over only", nil},
		{"over and under", NewChar('g')},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewXArrow("rightarrow", NewChar('f'), tt.under, false).CreateBox(e)
			if b.Depth < 0 || b.Depth < g.Depth {
				t.Errorf("Depth = %v, want >= max(0, %v)", b.Depth, g.Depth)
			}
			if b.Width < g.Width {
				t.Errorf("Width = %v, want >= %v", b.Width, g.Width)
			}
		})
	}
}

func TestConstructionErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"fraction missing numerator", func() error { _, err := NewFraction(nil, NewChar('b'), true); return err }},
		{"radical missing radicand", func() error { _, err := NewRadical(nil, nil); return err }},
		{"big delimiter from ord", func() error { _, err := NewBigDelimiter(NewChar('x'), 1, class.Ord); return err }},
		{"big delimiter size", func() error { _, err := NewBigDelimiter(sym(t, "lparen"), 5, class.Open); return err }},
		{"fence with non delimiter", func() error { _, err := NewFenced(sym(t, "alpha"), NewChar('x'), nil); return err }},
		{"accent from relation", func() error { _, err := NewAccented(NewChar('x'), sym(t, "equals"), false); return err }},
		{"unknown unit", func() error { _, err := NewSpace(env.Length{Value: 1, Unit: "zz"}); return err }},
		{"bigop missing operator", func() error { _, err := NewBigOperator(nil, nil, nil); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, errors.ErrCodeConstruction) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeConstruction)
			}
		})
	}
}

func TestPlaceholderIsRed(t *testing.T) {
	e := testEnv(t, style.Text)
	b := NewPlaceholder(`\foo`, nil).CreateBox(e)
	if b.Foreground == nil || *b.Foreground != color.Red {
		t.Errorf("Foreground = %v, want red", b.Foreground)
	}
	if len(b.Children) != 4 {
		t.Errorf("children = %d, want one per character of \\foo", len(b.Children))
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := NewRow(NewChar('a'), NewScripts(NewChar('x'), nil, NewChar('2')))
	cp := orig.Clone().(*Row)
	cp.Elems[0].(*Char).C = 'z'
	cp.Elems[1].(*Scripts).Sup.(*Char).C = '3'
	if orig.Elems[0].(*Char).C != 'a' || orig.Elems[1].(*Scripts).Sup.(*Char).C != '2' {
		t.Errorf("Clone() shares children with the original: %s", Dump(orig))
	}
}

func TestDump(t *testing.T) {
	f, _ := NewFraction(NewChar('a'), NewChar('b'), true)
	got := Dump(NewRow(f))
	want := "row [ord]\n  fraction [ord]\n    char 'a' [ord]\n    char 'b' [ord]\n"
	if got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
	if l := Label(NewTyped(class.Rel, NewChar('x'))); !strings.HasSuffix(l, "[rel]") {
		t.Errorf("Label() = %q, want rel category", l)
	}
}
