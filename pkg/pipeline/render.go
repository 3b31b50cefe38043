package pipeline

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/observability"
	"github.com/matzehuels/texbox/pkg/render"
	"github.com/matzehuels/texbox/pkg/tex"
	"github.com/matzehuels/texbox/pkg/tex/color"
)

// RenderOptions converts pipeline options to sink options, resolving color
// specs against the engine's color table.
func RenderOptions(e *tex.Engine, opts Options) (render.Options, error) {
	ro := render.Options{
		Size:       opts.Size,
		Padding:    opts.Padding,
		EmbedFonts: opts.EmbedFonts,
	}
	var err error
	if ro.Foreground, err = parseColor(e, opts.Foreground); err != nil {
		return ro, err
	}
	if ro.Background, err = parseColor(e, opts.Background); err != nil {
		return ro, err
	}
	return ro, nil
}

func parseColor(e *tex.Engine, spec string) (*color.Color, error) {
	if spec == "" {
		return nil, nil
	}
	c, err := e.Colors.Parse(spec)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", spec)
	}
	return &c, nil
}

// Render generates the requested formats from a layout. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, e *tex.Engine, l *Layout, opts Options) (map[string][]byte, error) {
	ro, err := RenderOptions(e, opts)
	if err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var svg []byte
	for _, f := range opts.Formats {
		if f == FormatSVG || f == FormatPNG || f == FormatPDF {
			svg = render.SVG(l.Box, e.Fonts, ro)
			break
		}
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(gctx, e, l, svg, f, ro, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			artifacts[f] = data
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, e *tex.Engine, l *Layout, svg []byte, format string, ro render.Options, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		return render.ToPNG(ctx, svg, opts.Scale)
	case FormatPDF:
		return render.ToPDF(ctx, svg)
	case FormatJSON:
		return render.JSON(opts.Source, l.Box, e.Fonts, ro)
	case FormatDOT:
		if l.Atom == nil {
			return nil, errors.New(errors.ErrCodeInternal, "dot output needs the parsed atom tree")
		}
		return []byte(render.AtomDOT(l.Atom)), nil
	}
	return nil, ValidateFormat(format)
}
