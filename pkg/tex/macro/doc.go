// Package macro holds the command set of the markup language.
//
// Commands come in three kinds, looked up in this order by the parser:
//
//   - Macros are implemented in Go. They receive their arguments as source
//     text and a [Context] through which they parse them, read lengths or
//     inspect the preceding atom.
//   - Templates are defined in markup with \newcommand and substituted
//     during expansion. Environments defined with \newenvironment work the
//     same way.
//   - Fragments are predefined formula source such as \ldots, parsed on
//     every use.
//
// Built-in environments are macros named after the environment with a
// "@env" suffix. Their last argument is the environment body.
//
// A [Registry] layers definitions: each parse writes its \newcommand
// definitions into a [Registry.Child] so that they never leak into the
// engine-wide registry.
package macro
