// Package pkg provides the core libraries for texbox math typesetting.
//
// # Overview
//
// texbox parses LaTeX math into a tree of atoms and typesets that tree into
// TeX-style boxes and glue with Computer Modern metrics. The pkg directory is
// organized into these areas:
//
//  1. [tex] - The engine: parser, atoms, boxes, fonts, spacing and colors
//  2. [render] - Sinks turning a box tree into SVG, PNG, PDF, JSON or DOT
//  3. [pipeline] - Orchestration (parse → layout → render) with caching
//  4. [cache] - File, Redis and MongoDB backends for layouts and artifacts
//  5. [errors], [observability], [buildinfo], [fonts] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through texbox:
//
//	LaTeX source
//	     ↓
//	[tex/parser] package (tokens → atom tree)
//	     ↓
//	[tex/atom] package (atom tree → box tree, per math style)
//	     ↓
//	[render] package (box tree → output)
//	     ↓
//	SVG/PDF/PNG/JSON/DOT output
//
// # Quick Start
//
// Typeset a formula and write it as SVG:
//
//	e, _ := tex.New()
//	res, _ := e.Build(`\frac{1}{\sqrt{1+x^2}}`, tex.Options{Style: style.Display})
//	svg := render.SVG(res.Box, e.Fonts, render.Options{Size: 32})
//
// Or run the whole pipeline with caching:
//
//	c, _ := cache.NewFileCache(dir)
//	r := pipeline.NewRunner(e, c, nil, nil)
//	result, _ := r.Execute(ctx, pipeline.Options{
//	    Source:  `e^{i\pi} + 1 = 0`,
//	    Formats: []string{"svg", "png"},
//	})
//
// # Main Packages
//
// [tex/parser] - Tokenizes and parses LaTeX math, expanding user macros and
// reporting positioned errors. Partial mode replaces failures with
// placeholders and keeps going.
//
// [tex/atom] - Atom kinds (characters, fractions, radicals, scripts, arrays,
// delimiters, accents, colors, ...) and their box construction.
//
// [tex/box] - Horizontal and vertical lists of boxes, glue and rules.
//
// [tex/font], [tex/glue], [tex/symbol], [tex/color] - Data tables loaded
// from embedded TOML and extendable at runtime.
//
// [pipeline] - The single entry point used by the CLI and the HTTP server.
// Ensures consistent behavior across both.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/tex/...                # Engine only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [tex]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/tex
// [tex/parser]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/tex/parser
// [tex/atom]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/tex/atom
// [tex/box]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/tex/box
// [tex/font]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/tex/font
// [tex/glue]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/tex/glue
// [tex/symbol]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/tex/symbol
// [tex/color]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/tex/color
// [render]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/buildinfo
// [fonts]: https://pkg.go.dev/github.com/matzehuels/texbox/pkg/fonts
package pkg
