// Package atom implements the typed formula tree and its layout.
//
// An [Atom] is an unmeasured node: a row, a character, a fraction, a
// matrix. Calling CreateBox with an [env.Environment] lays the atom out
// and returns a measured [box.Box]. Layout recurses into children with
// derived environments and never mutates the atom, so one tree can be laid
// out many times, in different styles, from different goroutines.
//
// # Categories
//
// Every atom reports TeX categories through Type, LeftType and RightType.
// Rows and color or style wrappers are transparent: their left and right
// categories are those of their first and last children. A [Row] uses the
// categories to insert glue and to demote binary operators that have no
// left or right operand.
//
// # Capabilities
//
// Three small interfaces mark variants with extra behavior:
//
//   - [CharSymbol] atoms resolve to a single glyph, so rows can merge them
//     into ligatures and kern them against their neighbors
//   - [Kern] atoms are explicit spaces; no glue is inserted next to them
//   - [Composite] atoms expose their children to tree walkers such as
//     [Dump]
//
// # Construction
//
// Constructors validate their inputs and report contract violations as
// *errors.Error values with code CONSTRUCTION. The parser checks the same
// conditions first, so these errors indicate a caller bug.
package atom
