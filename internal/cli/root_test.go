package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/texbox/pkg/buildinfo"
)

// runCLI executes the root command with args in an isolated environment
// and returns what the command wrote to its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	captureStatus(t)

	c := New(io.Discard, LogInfo)
	var out bytes.Buffer
	c.Out = &out
	cmd := c.RootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"render", "parse", "layout", "edit", "symbols", "serve", "cache", "completion", "version"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("Find(%q) = %v, %v; want the %s command", name, cmd, err, name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out, buildinfo.Version) {
		t.Errorf("version output = %q, want %q", out, buildinfo.Version)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := runCLI(t, "completion", shell)
		if err != nil {
			t.Errorf("completion %s error = %v", shell, err)
			continue
		}
		if !strings.Contains(out, "texbox") {
			t.Errorf("completion %s output does not mention texbox", shell)
		}
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh error = nil, want an error")
	}
}

func TestBadConfigFails(t *testing.T) {
	if _, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "cache", "path"); err == nil {
		t.Error("missing --config file error = nil, want an error")
	}
}
