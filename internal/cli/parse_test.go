package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/texbox/pkg/errors"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"dump", []string{"parse", `\frac{a}{b}`}, "fraction"},
		{"dot", []string{"parse", "--dot", `x^2`}, "digraph"},
		{"joined args", []string{"parse", "a", "+", "b"}, "\n"},
		{"partial", []string{"parse", "--partial", `a+\foo`}, `\foo`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("%v error = %v", tt.args, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("%v output = %q, want it to contain %q", tt.args, out, tt.want)
			}
		})
	}
}

func TestParseCommandStrictError(t *testing.T) {
	_, err := runCLI(t, "parse", `a+\foo`)
	if !errors.Is(err, errors.ErrCodeUnknownCommand) {
		t.Errorf("parse error = %v, want %s", err, errors.ErrCodeUnknownCommand)
	}
}

func TestParseCommandPreamble(t *testing.T) {
	dir := t.TempDir()
	pre := filepath.Join(dir, "defs.tex")
	if err := os.WriteFile(pre, []byte(`\newcommand{\R}{\mathbb{R}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "parse", "--preamble", pre, `x \in \R`); err != nil {
		t.Errorf("parse with preamble error = %v", err)
	}
}

func TestParseCommandOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.txt")
	out, err := runCLI(t, "parse", "-o", path, `\sqrt{x}`)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing with -o", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("tree file is empty")
	}
}
