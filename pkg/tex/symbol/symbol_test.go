package symbol

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/class"
)

func TestDefaultTable(t *testing.T) {
	tab, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	tests := []struct {
		name      string
		typ       class.Type
		font      string
		c         rune
		delimiter bool
		noLimits  bool
	}{
		{"alpha", class.Ord, "cmmi10", 'α', false, false},
		{"varphi", class.Ord, "cmmi10", 'φ', false, false},
		{"leq", class.Rel, "cmsy10", '≤', false, false},
		{"plus", class.Bin, "cmr10", '+', false, false},
		{"sum", class.Op, "cmex10", '∑', false, false},
		{"int", class.Op, "cmex10", '∫', false, true},
		{"lbrace", class.Open, "cmsy10", '{', true, false},
		{"rparen", class.Close, "cmr10", ')', true, false},
		{"uparrow", class.Rel, "cmsy10", '↑', true, false},
		{"hat", class.Accent, "cmr10", 'ˆ', false, false},
		{"widehat", class.Accent, "cmex10", 'ˆ', false, false},
		{"comma", class.Punct, "cmmi10", ',', false, false},
		{"ddots", class.Inner, "cmsy10", '⋱', false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := tab.Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			want := Symbol{Name: tt.name, Type: tt.typ, Font: tt.font, C: tt.c, Delimiter: tt.delimiter, NoLimits: tt.noLimits}
			if diff := cmp.Diff(want, s); diff != "" {
				t.Errorf("Lookup(%q) mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestForChar(t *testing.T) {
	tab, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	tests := []struct {
		c    rune
		want string
		ok   bool
	}{
		{'+', "plus", true},
		{'-', "minus", true},
		{'=', "equals", true},
		{'(', "lparen", true},
		{'≤', "leq", true},
		{'α', "alpha", true},
		{'Ω', "Omega", true},
		{'!', "faculty", true},
		{'x', "", false},
		{'7', "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.c), func(t *testing.T) {
			s, ok := tab.ForChar(tt.c)
			if ok != tt.ok {
				t.Fatalf("ForChar(%q) ok = %v, want %v", tt.c, ok, tt.ok)
			}
			if s.Name != tt.want {
				t.Errorf("ForChar(%q) = %q, want %q", tt.c, s.Name, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tab, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	font, c, ok := tab.Resolve("rightarrow")
	if !ok || font != "cmsy10" || c != '→' {
		t.Errorf("Resolve(rightarrow) = %q, %q, %v", font, c, ok)
	}
	if _, _, ok := tab.Resolve("nosuchsymbol"); ok {
		t.Error("Resolve(nosuchsymbol) ok = true, want false")
	}
}

func TestDefine(t *testing.T) {
	tab, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	if err := tab.Define(Symbol{Name: "heart", Type: class.Ord, Font: "cmsy10", C: '♡'}); err != nil {
		t.Fatalf("Define() error: %v", err)
	}
	if s, ok := tab.Lookup("heart"); !ok || s.C != '♡' {
		t.Errorf("Lookup(heart) = %+v, %v", s, ok)
	}
	if err := tab.MapChar('♥', "heart"); err != nil {
		t.Fatalf("MapChar() error: %v", err)
	}
	if s, ok := tab.ForChar('♥'); !ok || s.Name != "heart" {
		t.Errorf("ForChar(♥) = %+v, %v", s, ok)
	}

	invalid := []Symbol{
		{Name: "", Font: "cmsy10", C: 'x'},
		{Name: "a b", Font: "cmsy10", C: 'x'},
		{Name: `\x`, Font: "cmsy10", C: 'x'},
		{Name: "nofont", C: 'x'},
	}
	for _, s := range invalid {
		if err := tab.Define(s); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Define(%+v) error = %v, want INVALID_INPUT", s, err)
		}
	}
	if err := tab.MapChar('♦', "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("MapChar(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestSymbolsFilter(t *testing.T) {
	tab, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	ops := tab.Symbols(func(s Symbol) bool { return s.Type == class.Op })
	if len(ops) < 10 {
		t.Fatalf("Symbols(op) returned %d symbols, want at least 10", len(ops))
	}
	for i := 1; i < len(ops); i++ {
		if ops[i-1].Name >= ops[i].Name {
			t.Errorf("Symbols() not sorted: %q before %q", ops[i-1].Name, ops[i].Name)
		}
	}
	if all := tab.Symbols(nil); len(all) <= len(ops) {
		t.Errorf("Symbols(nil) = %d symbols, want more than %d", len(all), len(ops))
	}
}

func TestNewTableErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "[[group]\n"},
		{"bad type", "[[group]]\nfont = \"cmr10\"\ntype = \"weird\"\nsymbols = { a = \"a\" }\n"},
		{"no font", "[[group]]\ntype = \"ord\"\nsymbols = { a = \"a\" }\n"},
		{"multi char", "[[group]]\nfont = \"cmr10\"\ntype = \"ord\"\nsymbols = { a = \"ab\" }\n"},
		{"duplicate", "[[group]]\nfont = \"cmr10\"\ntype = \"ord\"\nsymbols = { a = \"a\" }\n[[group]]\nfont = \"cmr10\"\ntype = \"rel\"\nsymbols = { a = \"b\" }\n"},
		{"unknown char target", "[[group]]\nfont = \"cmr10\"\ntype = \"ord\"\nsymbols = { a = \"a\" }\n[chars]\n\"x\" = \"b\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeConfig) {
				t.Errorf("NewTable() error = %v, want CONFIG", err)
			}
		})
	}
}

func TestTableConcurrent(t *testing.T) {
	tab, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = tab.Define(Symbol{Name: "s" + string(rune('a'+i)), Font: "cmr10", C: 'x'})
			tab.Lookup("alpha")
			tab.ForChar('+')
		}(i)
	}
	wg.Wait()
	if _, ok := tab.Lookup("sa"); !ok {
		t.Error("concurrently defined symbol missing")
	}
}
