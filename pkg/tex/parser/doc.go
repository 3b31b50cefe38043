// Package parser turns formula markup into an atom tree.
//
// Parsing runs in two phases. [Expand] records user definitions
// (\newcommand, \newenvironment, \DeclareMathOperator), substitutes user
// macros and environments, strips comments and rewrites Unicode script
// shorthands. The expanded text then goes through [Parser.Parse], which
// builds atoms by dispatching each command to the macro registry.
//
// # Modes
//
// A strict parser fails on the first error with a [*ParseError]. A partial
// parser (Partial set) never fails on markup: each failing command becomes
// an [atom.Placeholder] and parsing resumes after it, which suits editors
// that re-parse on every keystroke. [Errors] collects what the placeholders
// recorded.
//
// # Scope
//
// Every Parse works on child registries. Definitions made by the markup
// disappear when the parse ends, and concurrent parses sharing a Parser do
// not see each other's definitions.
package parser
