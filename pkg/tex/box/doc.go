// Package box implements the TeX boxes-and-glue model produced by layout.
//
// A [Box] is a measured rectangle relative to a baseline: Width extends to
// the right of the origin, Height above the baseline and Depth below it.
// Shift displaces a box inside its parent: down in a horizontal box, right
// in a vertical box.
//
// # Kinds
//
//   - char: one glyph; Glyph carries the font, code point and scale
//   - hbox: children laid left to right on a common baseline
//   - vbox: children stacked top to bottom; the baseline is that of the
//     first child until the owner renormalizes Height and Depth
//   - strut: invisible space with explicit dimensions
//   - rule: a filled rectangle
//   - glue: horizontal space between atoms
//
// # Ownership
//
// Boxes form a tree owned by the root returned from layout. Elder is a
// non-owning pointer to the box that adopted a child; it is never
// serialized and is rebuilt on decode.
//
// # Painting
//
// [Walk] visits every box with its absolute origin, which is the complete
// contract a painter needs. The JSON form produced by MarshalJSON is the
// painter-neutral exchange format used by caches and the JSON sink.
package box
