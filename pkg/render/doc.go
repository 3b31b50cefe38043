// Package render turns laid out formulas into output files.
//
// # Sinks
//
//   - [SVG]: paints a box tree with [box.Walk]; glyphs become text elements
//     in the engine's font families, rules become rectangles
//   - [JSON]: the box tree with font descriptions, for external painters
//   - [ToPNG], [ToPDF]: convert SVG with the external rsvg-convert tool
//   - [AtomDOT], [AtomSVG]: the parsed atom tree as a Graphviz diagram,
//     for debugging macro expansion
//
// Lengths in the box tree are in em; [Options.Size] gives the pixels per
// em used by the raster and vector sinks.
//
//	b := engine.Layout(a, tex.Options{})
//	svg := render.SVG(b, engine.Fonts, render.Options{Size: 24})
//	png, err := render.ToPNG(ctx, svg, 2)
//
// PNG and PDF require librsvg: brew install librsvg (macOS), apt install
// librsvg2-bin (Linux).
package render
