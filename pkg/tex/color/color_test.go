package color

import (
	"encoding/json"
	"math"
	"sync"
	"testing"

	"github.com/matzehuels/texbox/pkg/errors"
)

func defaultRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return r
}

func TestParse(t *testing.T) {
	r := defaultRegistry(t)

	tests := []struct {
		name string
		spec string
		want string
	}{
		{"named", "red", "#ff0000"},
		{"dvips", "Black", "#000000"},
		{"dvips cmyk", "Cyan", "#00ffff"},
		{"hex", "#12abef", "#12abef"},
		{"short hex", "#fa0", "#ffaa00"},
		{"hex alpha", "#ff000080", "#ff000080"},
		{"tint", "red!50", "#ff8080"},
		{"mix", "red!50!blue", "#800080"},
		{"full", "blue!100!red", "#0000ff"},
		{"none", "blue!0!red", "#ff0000"},
		{"complement", "-red", "#00ffff"},
		{"chain", "red!50!blue!0!green", "#00ff00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got.Hex() != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.spec, got.Hex(), tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	r := defaultRegistry(t)

	tests := []struct {
		name string
		spec string
		code errors.Code
	}{
		{"empty", " ", errors.ErrCodeInvalidInput},
		{"unknown", "nosuchcolor", errors.ErrCodeNotFound},
		{"bad hex", "#12", errors.ErrCodeInvalidInput},
		{"bad percent", "red!x", errors.ErrCodeInvalidInput},
		{"percent range", "red!150", errors.ErrCodeInvalidInput},
		{"unknown mix", "red!50!nosuch", errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Parse(tt.spec)
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.code)
			}
		})
	}
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		model, value string
		want         string
		wantErr      bool
	}{
		{"rgb", "1,0.5,0", "#ff8000", false},
		{"RGB", "255, 0, 128", "#ff0080", false},
		{"cmyk", "0,1,1,0", "#ff0000", false},
		{"cmyk", "0,0,0,1", "#000000", false},
		{"gray", "0.5", "#808080", false},
		{"HTML", "00FF00", "#00ff00", false},
		{"hsb", "0,1,1", "#ff0000", false},
		{"rgb", "1,0", "", true},
		{"rgb", "2,0,0", "", true},
		{"RGB", "a,b,c", "", true},
		{"lab", "1,2,3", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.model+"/"+tt.value, func(t *testing.T) {
			got, err := ParseModel(tt.model, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseModel(%q, %q) error = %v, wantErr %v", tt.model, tt.value, err, tt.wantErr)
			}
			if err == nil && got.Hex() != tt.want {
				t.Errorf("ParseModel(%q, %q) = %v, want %v", tt.model, tt.value, got.Hex(), tt.want)
			}
		})
	}
}

func TestRegistryLayers(t *testing.T) {
	base := defaultRegistry(t)
	child := base.Child()
	child.Define("accent", RGB(0, 0.5, 0))
	child.Define("red", RGB(0.5, 0, 0))

	if _, ok := base.Lookup("accent"); ok {
		t.Error("parent sees child definition")
	}
	if c, _ := child.Lookup("red"); c.Hex() != "#800000" {
		t.Errorf("child red = %v, want shadowed #800000", c.Hex())
	}
	if c, _ := base.Lookup("red"); c.Hex() != "#ff0000" {
		t.Errorf("parent red = %v, want #ff0000", c.Hex())
	}
	if c, err := child.Resolve("", "accent!50"); err != nil || c.Hex() != "#80bf80" {
		t.Errorf("Resolve(accent!50) = %v, %v", c.Hex(), err)
	}

	names := child.Names()
	var found bool
	for _, n := range names {
		if n == "accent" {
			found = true
		}
	}
	if !found {
		t.Errorf("Names() missing child color, got %d names", len(names))
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r := defaultRegistry(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := r.Child()
			c.Define("mine", RGB(float64(i)/8, 0, 0))
			r.Define("shared", Black)
			if _, ok := c.Lookup("mine"); !ok {
				t.Error("child lost its definition")
			}
			_, _ = r.Parse("red!20!blue")
		}(i)
	}
	wg.Wait()
}

func TestColorJSON(t *testing.T) {
	in := struct {
		Fg Color `json:"fg"`
	}{Fg: RGB(1, 0, 0)}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"fg":"#ff0000"}` {
		t.Errorf("Marshal() = %s", b)
	}
	var out struct {
		Fg Color `json:"fg"`
	}
	if err := json.Unmarshal([]byte(`{"fg":"#00ff0080"}`), &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out.Fg.G != 1 || math.Abs(out.Fg.A-128.0/255) > 1e-9 {
		t.Errorf("Unmarshal() = %+v", out.Fg)
	}
}

func TestNewRegistryErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "[colors"},
		{"bad hex", "[colors]\nx = \"#zz\"\n"},
		{"short cmyk", "[dvipsnames]\nX = [0.1, 0.2]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry([]byte(tt.data)); !errors.Is(err, errors.ErrCodeConfig) {
				t.Errorf("NewRegistry() error = %v, want CONFIG", err)
			}
		})
	}
}
