package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/texbox/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input    string // file holding the formula ("-" for stdin)
	output   string // output file, base path for several formats, or "-" for stdout
	formats  string // comma-separated output formats
	preamble string // file of definitions applied before the formula
	noCache  bool
	pipeline.Options
}

// renderCommand creates the render command for typesetting a formula.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [formula]",
		Short: "Typeset a formula to SVG, PNG, PDF, JSON or DOT",
		Long: `Typeset a formula and write it in one or more formats.

The formula is taken from the arguments, from --input, or from stdin
when the argument is "-". Several formats write one file each, sharing
the --output base name.`,
		Example: `  texbox render '\frac{a}{b}'
  texbox render -f svg,png -o quadratic 'x = \frac{-b \pm \sqrt{b^2-4ac}}{2a}'
  echo '\sum_{i=1}^n i' | texbox render -o - -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args, opts.input)
			if err != nil {
				return err
			}
			opts.Source = src
			if opts.Preamble, err = readPreamble(opts.preamble); err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				opts.Formats = pipeline.ParseFormats(opts.formats)
			}
			return c.runRender(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "read the formula from a file (- for stdin)")
	f.StringVarP(&opts.output, "output", "o", "", "output file, base path for several formats, or - for stdout")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	f.StringVar(&opts.preamble, "preamble", "", "file of \\newcommand and \\definecolor definitions")
	f.StringVarP(&opts.Style, "style", "s", "", "math style: display (default), text, script, scriptscript")
	f.Float64Var(&opts.Size, "size", 0, "pixels per em (default from config, 20)")
	f.Float64Var(&opts.Width, "width", 0, "break lines wider than this many em (0: never)")
	f.Float64Var(&opts.Interline, "interline", 0, "extra space between broken lines in em")
	f.Float64Var(&opts.Padding, "padding", 0, "padding around the formula in em (negative: none)")
	f.Float64Var(&opts.Scale, "scale", 0, "PNG resolution multiplier")
	f.StringVar(&opts.Foreground, "fg", "", "text color (name, #hex or xcolor expression)")
	f.StringVar(&opts.Background, "bg", "", "background color")
	f.BoolVar(&opts.Partial, "partial", false, "render errors as placeholders instead of failing")
	f.BoolVar(&opts.EmbedFonts, "embed-fonts", false, "embed @font-face rules in SVG output")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runRender executes the pipeline and writes each artifact.
func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	ctx := cmd.Context()
	cfg, err := c.config()
	if err != nil {
		return err
	}
	cfg.PipelineDefaults(&opts.Options)

	runner, err := c.newRunner(cmd, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	toStdout := opts.output == "-"
	if toStdout && len(opts.Formats) != 1 {
		return fmt.Errorf("--output - needs exactly one format, got %d", len(opts.Formats))
	}

	result, err := c.execute(ctx, runner, opts.Options, !toStdout)
	if err != nil {
		return err
	}

	if toStdout {
		_, err := c.Out.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	printSuccess("Typeset formula")
	printStats(result.Stats.Width, result.Stats.Height, result.Stats.Depth, result.CacheInfo.LayoutHit)
	for _, msg := range result.Layout.Errors {
		printWarning("%s", msg)
	}
	for _, format := range opts.Formats {
		path := outputPath(opts.output, opts.input, format, len(opts.Formats))
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// execute runs the pipeline, showing a spinner for the slower raster
// formats.
func (c *CLI) execute(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, interactive bool) (*pipeline.Result, error) {
	sw := startStopwatch(c.Logger, "render")
	slow := slices.Contains(opts.Formats, pipeline.FormatPNG) || slices.Contains(opts.Formats, pipeline.FormatPDF)
	var spin *Spinner
	if interactive && slow {
		spin = newSpinnerWithContext(ctx, "Rasterizing...")
		spin.Start()
	}
	result, err := runner.Execute(ctx, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, err
	}
	sw.lap("rendered formula",
		"formats", len(result.Artifacts),
		"layout_cached", result.CacheInfo.LayoutHit,
		"render_cached", result.CacheInfo.RenderHit)
	return result, nil
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
