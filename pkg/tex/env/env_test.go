package env

import (
	"math"
	"testing"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/font"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

func testEnv(t *testing.T) Environment {
	t.Helper()
	fonts, err := font.Default(nil)
	if err != nil {
		t.Fatalf("font.Default() error = %v", err)
	}
	return New(fonts, style.Display)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDerivationsAreValues(t *testing.T) {
	e := testEnv(t)
	red := color.Red
	colored := e.WithColor(&red)
	if e.Foreground != nil {
		t.Error("WithColor mutated the receiver")
	}

	tests := []struct {
		name string
		got  Environment
		want style.Style
	}{
		{"cramp", e.Cramp(), style.DisplayCramped},
		{"sub", e.Sub(), style.ScriptCramped},
		{"sup", e.Sup(), style.Script},
		{"num", e.Num(), style.Text},
		{"denom", e.Denom(), style.TextCramped},
		{"root", e.Root(), style.ScriptScript},
		{"nested", e.Num().Num().Sup(), style.ScriptScript},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Style != tt.want {
				t.Errorf("Style = %v, want %v", tt.got.Style, tt.want)
			}
		})
	}

	colored.ResetColor()
	if colored.Foreground != nil || colored.Background != nil {
		t.Error("ResetColor left colors set")
	}
	if !math.IsInf(e.TextWidth, 1) {
		t.Errorf("TextWidth = %v, want +Inf", e.TextWidth)
	}
}

func TestFactor(t *testing.T) {
	e := testEnv(t)
	script := e.WithStyle(style.Script)

	tests := []struct {
		name string
		env  Environment
		unit Unit
		want float64
	}{
		{"em", e, Em, 1},
		{"em script", script, Em, 0.7},
		{"mu", e, Mu, 1.0 / 18},
		{"mu script", script, Mu, 0.7 / 18},
		{"ex", e, Ex, 0.430555},
		{"pt", e, Pt, 0.1},
		{"pt script", script, Pt, 0.1},
		{"pc", e, Pc, 1.2},
		{"in", e, In, 7.227},
		{"cm", e, Cm, 7.227 / 2.54},
		{"bp", e, Bp, 0.1 * 72.27 / 72},
		{"sp", e, Sp, 0.1 / 65536},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.env.Factor(tt.unit)
			if err != nil {
				t.Fatalf("Factor(%v) error = %v", tt.unit, err)
			}
			if !near(got, tt.want) {
				t.Errorf("Factor(%v) = %v, want %v", tt.unit, got, tt.want)
			}
		})
	}

	if _, err := e.Factor("furlong"); !errors.Is(err, errors.ErrCodeInvalidUnit) {
		t.Errorf("Factor(furlong) error = %v, want INVALID_UNIT", err)
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		input string
		want  Length
		code  errors.Code
	}{
		{"3pt", Length{3, Pt}, ""},
		{"-0.5em", Length{-0.5, Em}, ""},
		{" .25 ex ", Length{0.25, Ex}, ""},
		{"+2mu", Length{2, Mu}, ""},
		{"1.in", Length{1, In}, ""},
		{"3xy", Length{}, errors.ErrCodeInvalidUnit},
		{"3 furlongs", Length{}, errors.ErrCodeInvalidUnit},
		{"em", Length{}, errors.ErrCodeInvalidNumber},
		{"", Length{}, errors.ErrCodeInvalidNumber},
		{"1.2.3pt", Length{}, errors.ErrCodeInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLength(tt.input)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("ParseLength(%q) error = %v, want %v", tt.input, err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLength(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLength(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLengthIn(t *testing.T) {
	e := testEnv(t)
	got, err := Length{Value: 18, Unit: Mu}.In(e)
	if err != nil || !near(got, 1) {
		t.Errorf("18mu = %v, %v, want 1em", got, err)
	}
	if s := (Length{Value: 0.5, Unit: Em}).String(); s != "0.5em" {
		t.Errorf("String() = %q, want 0.5em", s)
	}
}

func TestSpaceAndXHeight(t *testing.T) {
	e := testEnv(t)
	if !near(e.Space(), 0.333334) {
		t.Errorf("Space() = %v, want roman space", e.Space())
	}
	mi, _ := e.Fonts.(*font.Set).FontID(font.FontMathItalic)
	if !near(e.WithLastFont(mi).Space(), 0.333334) {
		t.Error("Space() after math italic should fall back to roman")
	}
	if !near(e.AxisHeight(), 0.25) || !near(e.RuleThickness(), 0.04) {
		t.Errorf("axis=%v rule=%v", e.AxisHeight(), e.RuleThickness())
	}
}
