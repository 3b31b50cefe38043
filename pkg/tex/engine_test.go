package tex

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/parser"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

const eps = 1e-9

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func build(t *testing.T, e *Engine, src string, opts Options) *Result {
	t.Helper()
	res, err := e.Build(src, opts)
	if err != nil {
		t.Fatalf("Build(%q) error = %v", src, err)
	}
	return res
}

func TestNewMalformedTables(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"glue", WithGlueData([]byte("rows = [1,"))},
		{"symbols", WithSymbolData([]byte("[[group]\n"))},
		{"colors", WithColorData([]byte("red = 12 12"))},
		{"fonts", WithFontData([]byte("mufont = "))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); !errors.Is(err, errors.ErrCodeConfig) {
				t.Errorf("New(%s) error = %v, want %s", tt.name, err, errors.ErrCodeConfig)
			}
		})
	}
}

func TestDisplayFractionGeometry(t *testing.T) {
	e := newEngine(t)
	opts := Options{Style: style.Display}
	b := build(t, e, `\frac{1}{2}`, opts).Box

	en := e.Environment(opts)
	p := en.Params()
	one := atom.NewChar('1').CreateBox(en.Num())
	two := atom.NewChar('2').CreateBox(en.Denom())
	if want := p.Num1 + one.Height; math.Abs(b.Height-want) > eps {
		t.Errorf("Height = %v, want num1 + h(1) = %v", b.Height, want)
	}
	if want := p.Denom1 + two.Depth; math.Abs(b.Depth-want) > eps {
		t.Errorf("Depth = %v, want denom1 + d(2) = %v", b.Depth, want)
	}
	if b.Width <= math.Max(one.Width, two.Width) {
		t.Errorf("Width = %v, want wider than both parts", b.Width)
	}
}

func TestEquivalentWidths(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"infix fraction", `a \over b`, `\frac{a}{b}`},
		{"script order", `x^2_3`, `x_3^2`},
		{"braced group", `{a}+b`, `a+b`},
	}
	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := build(t, e, tt.a, Options{}).Box
			b := build(t, e, tt.b, Options{}).Box
			if math.Abs(a.Width-b.Width) > eps || math.Abs(a.Height-b.Height) > eps || math.Abs(a.Depth-b.Depth) > eps {
				t.Errorf("Build(%q) = %v, Build(%q) = %v, want equal dimensions", tt.a, a, tt.b, b)
			}
		})
	}
}

func TestUndefinedCommand(t *testing.T) {
	e := newEngine(t)

	_, err := e.Build(`a+\foo`, Options{})
	if !errors.Is(err, errors.ErrCodeUnknownCommand) {
		t.Fatalf("Build() strict error = %v, want %s", err, errors.ErrCodeUnknownCommand)
	}
	var pe *parser.ParseError
	if !stderrors.As(err, &pe) {
		t.Fatalf("Build() error %T, want *parser.ParseError", err)
	}
	if pe.Line != 1 || pe.Column != 3 {
		t.Errorf("error position = %d:%d, want 1:3", pe.Line, pe.Column)
	}

	res := build(t, e, `a+\foo`, Options{Partial: true})
	if len(res.Errors) != 1 {
		t.Errorf("len(Errors) = %d, want 1", len(res.Errors))
	}
	if res.Box == nil || res.Box.Width <= 0 {
		t.Errorf("partial Box = %v, want a laid out formula", res.Box)
	}
}

func TestEmptyNumeratorFails(t *testing.T) {
	e := newEngine(t)
	if _, err := e.Build(`\frac{}{b}`, Options{}); err == nil {
		t.Error(`Build(\frac{}{b}) error = nil, want an error`)
	}
}

func TestRadicalEnclosesRadicand(t *testing.T) {
	e := newEngine(t)
	x := build(t, e, `x`, Options{}).Box
	r := build(t, e, `\sqrt{x}`, Options{}).Box
	if r.Width <= x.Width || r.Height <= x.Height {
		t.Errorf(`\sqrt{x} = %v, want larger than x = %v`, r, x)
	}
	if len(box.Glyphs(r)) < 2 {
		t.Errorf(`\sqrt{x} glyphs = %d, want the radical sign and x`, len(box.Glyphs(r)))
	}
}

func TestMatrixRows(t *testing.T) {
	e := newEngine(t)
	m := build(t, e, `\begin{matrix}a&b\\c&d\end{matrix}`, Options{Style: style.Text}).Box
	row := build(t, e, `ab`, Options{Style: style.Text}).Box
	if m.Width <= row.Width {
		t.Errorf("matrix Width = %v, want wider than %v", m.Width, row.Width)
	}
	if m.Total() <= 2*row.Total() {
		t.Errorf("matrix Total = %v, want taller than two rows (%v)", m.Total(), 2*row.Total())
	}
}

func TestLayoutSplitsLongFormula(t *testing.T) {
	e := newEngine(t)
	src := `a+b+c+d+e+f+g+h+i+j+k+l+m+n`
	wide := build(t, e, src, Options{}).Box
	split := build(t, e, src, Options{Width: wide.Width / 3}).Box
	if split.Kind != box.KindVBox {
		t.Fatalf("Kind = %v, want vbox", split.Kind)
	}
	if split.Width > wide.Width/3+eps {
		t.Errorf("Width = %v, want at most %v", split.Width, wide.Width/3)
	}
}

func TestBuildDeterministic(t *testing.T) {
	e := newEngine(t)
	src := `\sum_{i=1}^{n} \frac{\alpha_i}{\sqrt{1+x^2}} \left( \begin{pmatrix}1&0\\0&1\end{pmatrix} \right)`
	first, err := json.Marshal(build(t, e, src, Options{}).Box)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	second, _ := json.Marshal(build(t, e, src, Options{}).Box)
	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("Build() not deterministic (-first +second):\n%s", diff)
	}
}

func TestEngineExtension(t *testing.T) {
	e := newEngine(t)
	if err := e.DefineOperator("sgn", "sgn", false); err != nil {
		t.Fatalf("DefineOperator() error = %v", err)
	}
	if err := e.DefineColor("brand", "#ff8800"); err != nil {
		t.Fatalf("DefineColor() error = %v", err)
	}
	if err := e.DefineFragment("half", `\frac{1}{2}`); err != nil {
		t.Fatalf("DefineFragment() error = %v", err)
	}

	for _, src := range []string{`\sgn x`, `\color{brand} x`, `\half + 1`} {
		if _, err := e.Parse(src); err != nil {
			t.Errorf("Parse(%q) error = %v", src, err)
		}
	}
	if err := e.DefineColor("broken", "nope"); err == nil {
		t.Error("DefineColor(nope) error = nil, want an error")
	}
}

func TestConcurrentBuildsKeepDefinitionsLocal(t *testing.T) {
	e := newEngine(t)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := e.Build(`\newcommand{\v}{x}\v^2`, Options{}); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := e.Build(`\frac{a}{b}`, Options{}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Build() error = %v", err)
	}
	if _, err := e.Parse(`\v`); !errors.Is(err, errors.ErrCodeUnknownCommand) {
		t.Errorf(`Parse(\v) error = %v, want %s`, err, errors.ErrCodeUnknownCommand)
	}
}
