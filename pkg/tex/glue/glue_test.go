package glue

import (
	"math"
	"testing"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/font"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

func defaultTable(t *testing.T) *Table {
	t.Helper()
	tab, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return tab
}

func TestGet(t *testing.T) {
	tab := defaultTable(t)

	tests := []struct {
		name        string
		left, right class.Type
		class       style.Class
		want        float64
	}{
		{"ord ord", class.Ord, class.Ord, style.ClassText, 0},
		{"ord op", class.Ord, class.Op, style.ClassScript, 3},
		{"ord bin text", class.Ord, class.Bin, style.ClassText, 4},
		{"ord bin script", class.Ord, class.Bin, style.ClassScript, 0},
		{"ord rel display", class.Ord, class.Rel, style.ClassDisplay, 5},
		{"rel ord scriptscript", class.Rel, class.Ord, style.ClassScriptScript, 0},
		{"op op", class.Op, class.Op, style.ClassScriptScript, 3},
		{"bin bin impossible", class.Bin, class.Bin, style.ClassText, 0},
		{"open anything", class.Open, class.Inner, style.ClassText, 0},
		{"close op", class.Close, class.Op, style.ClassScript, 3},
		{"punct ord", class.Punct, class.Ord, style.ClassText, 3},
		{"inner op", class.Inner, class.Op, style.ClassScript, 3},
		{"inner close", class.Inner, class.Close, style.ClassText, 0},
		{"accent has no entries", class.Accent, class.Ord, style.ClassText, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tab.Get(tt.left, tt.right, tt.class).Space; got != tt.want {
				t.Errorf("Get(%v, %v, %v) = %v, want %v", tt.left, tt.right, tt.class, got, tt.want)
			}
		})
	}

	med := tab.Get(class.Bin, class.Ord, style.ClassDisplay)
	if med.Name != "med" || med.Stretch != 2 || med.Shrink != 4 {
		t.Errorf("bin/ord glue = %+v, want med 4 plus 2 minus 4", med)
	}
}

func TestWidth(t *testing.T) {
	tab := defaultTable(t)
	fonts, err := font.Default(nil)
	if err != nil {
		t.Fatalf("font.Default() error = %v", err)
	}
	e := env.New(fonts, style.Text)

	got := tab.Width(class.Ord, class.Rel, e)
	if math.Abs(got-5.0/18) > 1e-9 {
		t.Errorf("Width(ord, rel) = %v, want 5/18", got)
	}
	sub := e.Sub()
	if w := tab.Width(class.Ord, class.Op, sub); math.Abs(w-3*0.7/18) > 1e-9 {
		t.Errorf("Width(ord, op) in script = %v, want %v", w, 3*0.7/18)
	}
	if b := tab.Box(class.Ord, class.Ord, e); b.Width != 0 {
		t.Errorf("Box(ord, ord).Width = %v, want 0", b.Width)
	}
}

func TestNewTableErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "[table"},
		{"unknown row", "[table]\nfoo = [\"\", \"\", \"\", \"\", \"\", \"\", \"\", \"\"]\n"},
		{"short row", "[table]\nord = [\"\"]\n"},
		{"undefined glue", "[table]\nord = [\"wide\", \"\", \"\", \"\", \"\", \"\", \"\", \"\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable([]byte(tt.data)); !errors.Is(err, errors.ErrCodeConfig) {
				t.Errorf("NewTable() error = %v, want CONFIG", err)
			}
		})
	}
}
