// Package tex turns LaTeX math markup into a measured box tree.
//
// An [Engine] owns every table the conversion reads: symbols, macros and
// environments, colors, font metrics and inter-atom glue. It is built once
// with [New] and is safe for concurrent use; definitions made by markup
// (\newcommand, \definecolor, ...) are scoped to the parse that made them.
//
// # Usage
//
//	eng, err := tex.New()
//	if err != nil {
//	    return err
//	}
//	res, err := eng.Build(`\frac{1}{2}`, tex.Options{Style: style.Display})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Box.Width, res.Box.Height, res.Box.Depth)
//
// # Stages
//
// [Engine.Parse] runs the two-phase parser from [parser] and returns the
// atom tree. [Engine.Layout] lays an atom tree out under an environment
// derived from [Options]. [Engine.Build] does both and, when Options.Width
// is set, splits lines that are too wide with [box.Split].
//
// # Extension
//
// DefineMacro, DefineEnvironment, DefineSymbol, DefineColor,
// DefineOperator and DefineAlphabet extend the engine's tables for every
// later parse. Alternative tables are loaded with [WithFontData],
// [WithGlueData], [WithSymbolData] and [WithColorData].
package tex
