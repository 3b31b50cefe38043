package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/texbox/pkg/pipeline"
	"github.com/matzehuels/texbox/pkg/render"
)

// layoutCommand creates the layout command, which prints the box tree.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		input    string
		preamble string
		output   string
		asJSON   bool
		noCache  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [formula]",
		Short: "Print the box tree and metrics of a formula",
		Long: `Lay out a formula and print its box tree.

Each line of the dump is one box with its kind, width, height, depth and
shift in em. --json prints the painter-neutral JSON document instead
(the same as 'render -f json'). Results are cached like render's.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args, input)
			if err != nil {
				return err
			}
			opts.Source = src
			if opts.Preamble, err = readPreamble(preamble); err != nil {
				return err
			}
			return c.runLayout(cmd, opts, output, asJSON, noCache)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "read the formula from a file (- for stdin)")
	f.StringVar(&preamble, "preamble", "", "file of \\newcommand and \\definecolor definitions")
	f.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	f.BoolVar(&asJSON, "json", false, "print the JSON box document")
	f.BoolVar(&noCache, "no-cache", false, "disable caching")
	f.StringVarP(&opts.Style, "style", "s", "", "math style: display (default), text, script, scriptscript")
	f.Float64Var(&opts.Width, "width", 0, "break lines wider than this many em (0: never)")
	f.Float64Var(&opts.Interline, "interline", 0, "extra space between broken lines in em")
	f.BoolVar(&opts.Partial, "partial", false, "lay out errors as placeholders instead of failing")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, opts pipeline.Options, output string, asJSON, noCache bool) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	cfg.PipelineDefaults(&opts)

	runner, err := c.newRunner(cmd, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	l, hit, err := runner.LayoutWithCacheInfo(cmd.Context(), opts)
	if err != nil {
		return err
	}
	for _, msg := range l.Errors {
		printWarning("%s", msg)
	}

	if asJSON {
		data, err := render.JSON(opts.Source, l.Box, runner.Engine.Fonts, render.Options{Size: opts.Size, Padding: opts.Padding})
		if err != nil {
			return err
		}
		return c.writeText(output, string(data))
	}

	if output == "" {
		printKeyValue(c.Out, "width", fmt.Sprintf("%.4f em", l.Box.Width))
		printKeyValue(c.Out, "height", fmt.Sprintf("%.4f em", l.Box.Height))
		printKeyValue(c.Out, "depth", fmt.Sprintf("%.4f em", l.Box.Depth))
		printKeyValue(c.Out, "cache", map[bool]string{true: iconCached, false: iconFresh}[hit])
		fmt.Fprintln(c.Out)
	}
	return c.writeText(output, l.Box.Dump())
}
