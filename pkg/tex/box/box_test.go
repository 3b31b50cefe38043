package box

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/font"
)

func glyph(c rune, w, h, d float64) font.Char {
	return font.Char{C: c, FontID: 1, Scale: 1, XScale: 1, YScale: 1,
		Metrics: font.Metrics{Width: w, Height: h, Depth: d}}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestHBoxDimensions(t *testing.T) {
	a := NewChar(glyph('a', 0.5, 0.43, 0))
	p := NewChar(glyph('p', 0.55, 0.43, 0.19))
	up := NewStrut(0.1, 0.2, 0.1, -0.5)
	b := NewHBox(a, p, up)

	if !near(b.Width, 1.15) {
		t.Errorf("Width = %v, want 1.15", b.Width)
	}
	// Negative shift raises the strut: height 0.2+0.5, depth 0.1-0.5.
	if !near(b.Height, 0.7) {
		t.Errorf("Height = %v, want 0.7", b.Height)
	}
	if !near(b.Depth, 0.19) {
		t.Errorf("Depth = %v, want 0.19", b.Depth)
	}
	if b.LastFontID != 1 {
		t.Errorf("LastFontID = %v, want 1", b.LastFontID)
	}
	for _, c := range b.Children {
		if c.Elder != b {
			t.Errorf("child %v Elder not set", c)
		}
	}
}

func TestHBoxNegativeDepth(t *testing.T) {
	eq := NewChar(glyph('=', 0.78, 0.37, -0.13))
	b := NewHBox(eq)
	if !near(b.Depth, -0.13) {
		t.Errorf("Depth = %v, want -0.13", b.Depth)
	}
	neg := NewHBox(NewGlue(-0.2))
	if !near(neg.Width, -0.2) {
		t.Errorf("Width = %v, want -0.2", neg.Width)
	}
}

func TestVBoxStacking(t *testing.T) {
	v := NewVBox()
	v.Add(NewStrut(1, 0.3, 0.1, 0))
	v.Add(NewStrut(2, 0.2, 0.05, 0.5))
	if !near(v.Height, 0.3) || !near(v.Depth, 0.1+0.25) {
		t.Errorf("vbox h=%v d=%v, want 0.3 0.35", v.Height, v.Depth)
	}
	if !near(v.Width, 2.5) {
		t.Errorf("Width = %v, want 2.5", v.Width)
	}

	v.AddAt(0, NewStrut(0.5, 0.4, 0.0, 0))
	if !near(v.Height, 0.4) || !near(v.Total(), 0.4+0.4+0.25) {
		t.Errorf("after AddAt(0) h=%v total=%v", v.Height, v.Total())
	}

	v.SetBaseline(0.5)
	if !near(v.Height, 0.5) || !near(v.Depth, 0.55) {
		t.Errorf("SetBaseline h=%v d=%v, want 0.5 0.55", v.Height, v.Depth)
	}
}

func TestHBoxAligned(t *testing.T) {
	c := NewStrut(1, 1, 0, 0)
	tests := []struct {
		name  string
		align Align
		width float64
		wantX float64
	}{
		{"center", Center, 3, 1},
		{"left", Left, 3, 0},
		{"right", Right, 3, 2},
		{"narrower", Center, 0.5, 0},
		{"unbounded", Center, math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := NewStrut(1, 1, 0, 0)
			b := NewHBoxAligned(inner, tt.width, tt.align)
			want := math.Max(tt.width, c.Width)
			if math.IsInf(tt.width, 0) {
				want = c.Width
			}
			if !near(b.Width, want) {
				t.Errorf("Width = %v, want %v", b.Width, want)
			}
			var x float64
			Walk(b, 0, 0, func(x0 *Box, px, _ float64, _ *color.Color) bool {
				if x0 == inner {
					x = px
				}
				return true
			})
			if !near(x, tt.wantX) {
				t.Errorf("content x = %v, want %v", x, tt.wantX)
			}
		})
	}
}

func TestWalkPositions(t *testing.T) {
	red := color.Red
	top := NewChar(glyph('t', 1, 0.5, 0.1))
	bot := NewChar(glyph('b', 1, 0.4, 0.2))
	v := NewVBox()
	v.Add(top)
	v.Add(NewStrut(0, 0.3, 0, 0))
	bot.Shift = 0.25
	v.Add(bot)
	v.Foreground = &red
	h := NewHBox(NewGlue(2), v)

	type pos struct {
		X, Y float64
		Red  bool
	}
	got := map[rune]pos{}
	Walk(h, 10, 20, func(b *Box, x, y float64, fg *color.Color) bool {
		if b.Glyph != nil {
			got[b.Glyph.C] = pos{x, y, fg != nil && fg.Hex() == "#ff0000"}
		}
		return true
	})
	want := map[rune]pos{
		't': {12, 20, true},
		'b': {12.25, 20 + 0.1 + 0.3 + 0.4, true},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Walk positions mismatch (-want +got):\n%s", diff)
	}

	var visited int
	Walk(h, 0, 0, func(b *Box, _, _ float64, _ *color.Color) bool {
		visited++
		return b.Kind != KindVBox
	})
	if visited != 3 {
		t.Errorf("pruned walk visited %d boxes, want 3", visited)
	}
}

func TestJSONRoundTripTree(t *testing.T) {
	fg := color.RGB(0, 0, 1)
	b := NewHBox(
		NewChar(glyph('x', 0.57, 0.43, 0)),
		NewGlue(0.27),
		NewRule(0.04, 1, 0.25),
	)
	b.Foreground = &fg
	b.MarkBreak()

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got Box
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	opts := cmp.Options{
		cmpopts.IgnoreFields(Box{}, "Elder"),
		cmp.Comparer(func(a, b color.Color) bool { return a.Hex() == b.Hex() }),
	}
	if diff := cmp.Diff(b, &got, opts); diff != "" {
		t.Errorf("decoded tree mismatch (-want +got):\n%s", diff)
	}
	for _, c := range got.Children {
		if c.Elder != &got {
			t.Errorf("decoded child %v has no Elder", c)
		}
	}
}

func TestUnmarshalUnknownKind(t *testing.T) {
	var b Box
	if err := json.Unmarshal([]byte(`{"kind":"oval"}`), &b); err == nil {
		t.Error("Unmarshal(unknown kind) error = nil")
	}
}

func TestSplit(t *testing.T) {
	mk := func() *Box {
		b := NewHBox()
		for i := 0; i < 6; i++ {
			b.Add(NewChar(glyph('a'+rune(i), 1, 0.5, 0)))
			if i%2 == 1 && i < 5 {
				b.MarkBreak()
				b.Add(NewGlue(0.25))
			}
		}
		return b
	}

	tests := []struct {
		name      string
		width     float64
		wantLines int
	}{
		{"fits", 100, 1},
		{"two per line", 2.5, 3},
		{"four per line", 4.6, 2},
		{"narrower than any segment", 0.5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mk()
			out := Split(b, tt.width, 0.2)
			if tt.wantLines == 1 {
				if out != b {
					t.Fatalf("Split() returned a new box for a fitting line")
				}
				return
			}
			var lines []*Box
			for _, c := range out.Children {
				if c.Kind == KindHBox {
					lines = append(lines, c)
				}
			}
			if len(lines) != tt.wantLines {
				t.Fatalf("Split() made %d lines, want %d:\n%s", len(lines), tt.wantLines, out.Dump())
			}
			var glyphs int
			for i, l := range lines {
				if i > 0 && l.Children[0].Kind == KindGlue {
					t.Errorf("line %d starts with glue", i)
				}
				glyphs += len(Glyphs(l))
			}
			if glyphs != 6 {
				t.Errorf("Split() kept %d glyphs, want 6", glyphs)
			}
			if !near(out.Height, lines[0].Height) {
				t.Errorf("split baseline h=%v, want first line %v", out.Height, lines[0].Height)
			}
		})
	}
}

func TestSplitWithoutBreaks(t *testing.T) {
	b := NewHBox(NewStrut(5, 1, 0, 0))
	if got := Split(b, 1, 0); got != b {
		t.Errorf("Split() without breaks = %v, want input", got)
	}
	v := NewVBox()
	if got := Split(v, 1, 0); got != v {
		t.Errorf("Split(vbox) = %v, want input", got)
	}
}
