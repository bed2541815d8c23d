// Package lang implements the chirp expression language: a tokenizer and
// recursive-descent parser producing a small expression tree, and a
// tree-walking interpreter that evaluates expressions against a mutable
// binding environment supplied by the host.
//
// The language is deliberately tiny. An expression is an integer literal,
// a quoted string, a bare variable reference, or a function call with
// positional arguments:
//
//	let(greeting, "Hello")
//	define(ping, args(author), echo("@", author))
//	repeat(echo(greeting, ", ", author, "!"), 3)
//
// Hosts embed the language by constructing an Interp, registering native
// functions with Register, seeding per-session variables with SetVar, and
// feeding it parsed expressions (or whole sources via Run). Function
// arguments reach native implementations unevaluated, so natives control
// evaluation order and can short-circuit; the builtin catalog (if, and,
// define, ...) is built on exactly the same protocol as host functions.
//
// Parsing and evaluation report failures through two separate surfaces:
// *ParseError for malformed text (with location and caret snippet) and the
// sentinel-based *Error taxonomy for well-formed expressions that fail to
// evaluate. End of input is a third, non-error outcome (ErrEndOfInput).
package lang
