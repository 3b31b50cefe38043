package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/texbox/pkg/errors"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "", "formula"},
		{"", "-", "formula"},
		{"", "eq/quadratic.tex", "eq/quadratic"},
		{"out.svg", "in.tex", "out"},
		{"out.png", "", "out"},
		{"out.v2", "", "out.v2"},
		{"out", "", "out"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, format string
		n                     int
		want                  string
	}{
		{"eq.svg", "", "svg", 1, "eq.svg"},
		{"eq.image", "", "svg", 1, "eq.image"},
		{"eq.svg", "", "png", 2, "eq.png"},
		{"", "a.tex", "json", 1, "a.json"},
		{"", "", "svg", 1, "formula.svg"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.format, tt.n); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %d) = %q, want %q", tt.output, tt.input, tt.format, tt.n, got, tt.want)
		}
	}
}

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.tex")
	if err := os.WriteFile(path, []byte("x^2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	old := stdin
	t.Cleanup(func() { stdin = old })

	tests := []struct {
		name  string
		args  []string
		input string
		stdin string
		want  string
	}{
		{"argument", []string{`\frac{a}{b}`}, "", "", `\frac{a}{b}`},
		{"joined", []string{"a", "+", "b"}, "", "", "a + b"},
		{"file", nil, path, "", "x^2"},
		{"file wins", []string{"y"}, path, "", "x^2"},
		{"stdin dash arg", []string{"-"}, "", "z_1\n", "z_1"},
		{"stdin input", nil, "-", "w", "w"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdin = strings.NewReader(tt.stdin)
			got, err := readSource(tt.args, tt.input)
			if err != nil {
				t.Fatalf("readSource() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("readSource() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := readSource(nil, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("readSource(nothing) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, err := readSource(nil, filepath.Join(t.TempDir(), "missing.tex")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("readSource(missing) error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
}

func TestRenderCommandFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out", "eq")
	if _, err := runCLI(t, "render", "-f", "svg,json,dot", "-o", base, `\sqrt{x^2+1}`); err != nil {
		t.Fatalf("render error = %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg = %.40q, want an svg document", svg)
	}
	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if !json.Valid(data) {
		t.Error("json output is not valid JSON")
	}
	if dot, err := os.ReadFile(base + ".dot"); err != nil || !bytes.Contains(dot, []byte("digraph")) {
		t.Errorf("dot = %q, %v; want a digraph", dot, err)
	}
}

func TestRenderCommandStdout(t *testing.T) {
	out, err := runCLI(t, "render", "-o", "-", "--style", "text", "--fg", "blue", "a+b")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.HasPrefix(out, "<svg") {
		t.Errorf("stdout = %.40q, want an svg document", out)
	}

	if _, err := runCLI(t, "render", "-o", "-", "-f", "svg,json", "x"); err == nil {
		t.Error("render -o - with two formats error = nil, want an error")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"undefined command", []string{"render", "-o", "-", `a+\foo`}, errors.ErrCodeUnknownCommand},
		{"bad format", []string{"render", "-o", "-", "-f", "gif", "x"}, errors.ErrCodeInvalidFormat},
		{"bad style", []string{"render", "-o", "-", "-s", "huge", "x"}, errors.ErrCodeInvalidStyle},
		{"bad color", []string{"render", "-o", "-", "--bg", "nope", "x"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("render error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderCommandPartial(t *testing.T) {
	out, err := runCLI(t, "render", "-o", "-", "--partial", `a+\foo`)
	if err != nil {
		t.Fatalf("render --partial error = %v", err)
	}
	if !strings.HasPrefix(out, "<svg") {
		t.Errorf("stdout = %.40q, want an svg document", out)
	}
}

func TestLayoutCommand(t *testing.T) {
	out, err := runCLI(t, "layout", `x_1`)
	if err != nil {
		t.Fatalf("layout error = %v", err)
	}
	for _, want := range []string{"width", "height", "depth", "hbox"} {
		if !strings.Contains(out, want) {
			t.Errorf("layout output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "layout", "--json", "--no-cache", `x_1`)
	if err != nil {
		t.Fatalf("layout --json error = %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Errorf("layout --json output is not JSON: %q", out)
	}
}
