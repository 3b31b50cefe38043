package render

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/color"
)

func newEngine(t *testing.T) *tex.Engine {
	t.Helper()
	e, err := tex.New()
	if err != nil {
		t.Fatalf("tex.New() error = %v", err)
	}
	return e
}

func layout(t *testing.T, e *tex.Engine, src string) *box.Box {
	t.Helper()
	res, err := e.Build(src, tex.Options{})
	if err != nil {
		t.Fatalf("Build(%q) error = %v", src, err)
	}
	return res.Box
}

func TestSVG(t *testing.T) {
	e := newEngine(t)
	red := color.Red
	tests := []struct {
		name string
		src  string
		opts Options
		want []string
	}{
		{"glyphs", `x+y`, Options{}, []string{`<svg xmlns=`, `>x</text>`, `>+</text>`, `fill="#000000"`, `<style>`}},
		{"fraction rule", `\frac{a}{b}`, Options{}, []string{`<rect x=`, `>a</text>`, `>b</text>`}},
		{"color command", `\color{red}x`, Options{}, []string{`fill="#ff0000"`}},
		{"background option", `x`, Options{Background: &red}, []string{`<rect width="100%" height="100%" fill="#ff0000"/>`}},
		{"escaped text", `a<b`, Options{}, []string{`&lt;`}},
		{"embedded faces", `x`, Options{EmbedFonts: true}, []string{`@font-face`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(SVG(layout(t, e, tt.src), e.Fonts, tt.opts))
			for _, w := range tt.want {
				if !strings.Contains(svg, w) {
					t.Errorf("SVG(%q) missing %q:\n%s", tt.src, w, svg)
				}
			}
		})
	}
}

func TestSVGViewBox(t *testing.T) {
	e := newEngine(t)
	b := layout(t, e, `\sum_{i=1}^n i`)
	svg := string(SVG(b, e.Fonts, Options{Size: 10, Padding: -1}))
	want := `viewBox="0 0 ` + num(b.Width*10) + " " + num((b.Height+b.Depth)*10) + `"`
	if !strings.Contains(svg, want) {
		t.Errorf("SVG() = %s\nwant %s", svg[:strings.Index(svg, "\n")], want)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1.5, "1.5"},
		{2.00049, "2"},
		{-0.1234, "-0.123"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	e := newEngine(t)
	b := layout(t, e, `\sqrt{x^2+1}`)
	data, err := JSON(`\sqrt{x^2+1}`, b, e.Fonts, Options{})
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	doc, err := ReadJSON(data)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if doc.Source != `\sqrt{x^2+1}` || doc.Size != DefaultSize {
		t.Errorf("document header = %q, %v", doc.Source, doc.Size)
	}
	if len(doc.Fonts) == 0 {
		t.Error("document lists no fonts")
	}
	if math.Abs(doc.Box.Width-b.Width) > 1e-9 || len(box.Glyphs(doc.Box)) != len(box.Glyphs(b)) {
		t.Errorf("decoded box = %v, want %v", doc.Box, b)
	}
}

func TestAtomDOT(t *testing.T) {
	e := newEngine(t)
	a, err := e.Parse(`\frac{a}{b}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	dot := AtomDOT(a)
	for _, w := range []string{"digraph atoms", `label="fraction`, "n0 -> n1"} {
		if !strings.Contains(dot, w) {
			t.Errorf("AtomDOT() missing %q:\n%s", w, dot)
		}
	}

	partial, _ := e.ParsePartial(`a+\foo`)
	if dot := AtomDOT(partial); !strings.Contains(dot, "color=red") {
		t.Errorf("AtomDOT() of a placeholder = %s, want a red node", dot)
	}
	if dot := AtomDOT(nil); strings.Contains(dot, "n0") {
		t.Errorf("AtomDOT(nil) = %s, want an empty graph", dot)
	}
}

func TestAtomSVG(t *testing.T) {
	e := newEngine(t)
	a, err := e.Parse(`x^2`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	svg, err := AtomSVG(context.Background(), AtomDOT(a))
	if err != nil {
		t.Fatalf("AtomSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("AtomSVG() = %q, want svg", svg)
	}
}

func TestConvertWithoutTool(t *testing.T) {
	old := rsvgConvert
	rsvgConvert = "texbox-no-such-converter"
	defer func() { rsvgConvert = old }()

	if _, err := ToPNG(context.Background(), []byte("<svg/>"), 2); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
	if _, err := ToPDF(context.Background(), []byte("<svg/>")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}
