// Package font defines the font-metrics contract the layout engine depends
// on and ships a TOML-backed implementation modelled on Computer Modern.
//
// # Contract
//
// [Provider] answers every metric question the atom layout algorithms ask:
// glyph dimensions for a character or a named symbol under a style, kerns
// and ligatures between adjacent glyphs, the chain of larger variants and
// extensible pieces used by delimiters and big operators, and the TeX
// parameter table (axis height, numerator and denominator shifts, script
// shifts and drops, big-operator spacing, default rule thickness).
//
// All lengths are expressed in em of the formula's base size. Metrics for
// script styles are already multiplied by the style's size factor.
//
// # Glyph identity
//
// Glyphs are Unicode code points inside a numbered font. Larger variants of
// the same code point are modelled as scale steps rather than separate
// glyphs, so a painter draws every [Char] as its rune at
// pointSize*Scale with an additional (XScale, YScale) stretch.
//
// # Styles
//
// [Variant] is the immutable style descriptor (family, weight, slant,
// alphabet) threaded through layout. It replaces mutable "bold" or
// "roman" toggles on a shared font object.
//
// # Data
//
// [Default] loads the embedded data/cm.toml. Alternative metrics can be
// supplied with [NewSet] and any document in the same format.
package font
