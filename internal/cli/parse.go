package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/texbox/pkg/render"
	"github.com/matzehuels/texbox/pkg/tex/atom"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	input    string // file holding the formula ("-" for stdin)
	preamble string // file of definitions applied before the formula
	output   string // output file (stdout if empty)
	partial  bool   // replace errors with placeholders
	dot      bool   // print Graphviz DOT instead of the indented dump
	graph    string // also draw the atom tree to this SVG file
}

// parseCommand creates the parse command, which prints the atom tree.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [formula]",
		Short: "Print the atom tree of a formula",
		Long: `Parse a formula and print its atom tree.

The default output is an indented dump with one atom per line. --dot
prints the tree as a Graphviz digraph instead, and --graph draws it to
an SVG file. In --partial mode failures become placeholder atoms and are
listed on stderr.`,
		Example: `  texbox parse 'x^2_3'
  texbox parse --dot '\frac{a}{b}' | dot -Tpng > tree.png
  texbox parse --graph tree.svg '\sqrt[3]{x}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args, opts.input)
			if err != nil {
				return err
			}
			pre, err := readPreamble(opts.preamble)
			if err != nil {
				return err
			}
			if pre != "" {
				src = pre + "\n" + src
			}
			return c.runParse(cmd, src, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "read the formula from a file (- for stdin)")
	f.StringVar(&opts.preamble, "preamble", "", "file of \\newcommand and \\definecolor definitions")
	f.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	f.BoolVar(&opts.partial, "partial", false, "show errors as placeholders instead of failing")
	f.BoolVar(&opts.dot, "dot", false, "print the tree as Graphviz DOT")
	f.StringVar(&opts.graph, "graph", "", "draw the tree as SVG to this file")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, src string, opts *parseOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	e, err := c.newEngine()
	if err != nil {
		return err
	}

	sw := startStopwatch(logger, "parse")
	var (
		a    atom.Atom
		errs []error
	)
	if opts.partial {
		a, errs = e.ParsePartial(src)
		for _, err := range errs {
			printWarning("%v", err)
		}
	} else if a, err = e.Parse(src); err != nil {
		return err
	}
	sw.lap("parsed formula", "partial", opts.partial, "errors", len(errs))

	text := atom.Dump(a)
	if opts.dot || opts.graph != "" {
		dot := render.AtomDOT(a)
		if opts.dot {
			text = dot
		}
		if opts.graph != "" {
			svg, err := render.AtomSVG(ctx, dot)
			if err != nil {
				return err
			}
			if err := writeArtifact(opts.graph, svg); err != nil {
				return err
			}
			printFile(opts.graph)
		}
	}
	return c.writeText(opts.output, text)
}

// writeText writes text to path, or to the CLI output when path is empty.
func (c *CLI) writeText(path, text string) error {
	var w io.Writer = c.Out
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	if _, err := io.WriteString(w, text); err != nil {
		return err
	}
	if len(text) > 0 && text[len(text)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
