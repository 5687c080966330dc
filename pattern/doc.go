/*
Package pattern parses rule-field text (targets, replacements,
environments) into a structured pattern: an ordered slice of Atom
values.

Parsing happens in two stages, the same division of labor the teacher
uses for its own small languages (see terexlang/scan.go +
terexlang/parse.go): lex.go tokenizes the field text with a
lexmachine-built lexer into a flat stream of bracket/operator/literal
tokens, and parse.go structures that stream into Atoms, recursing into
"(...)" (Optional) and "[...]" (Category) groups.

Two open questions the original tool left ambiguous across revisions
are resolved here, not guessed silently:

  - Environments split on '|', not ','.
  - Count selectors ("@0|2") are 0-based indices into the order in
    which a target's matches were discovered scanning left to right.

"{...}" subset syntax is reserved: it is rejected with ErrFormat rather
than silently parsed away, so a ruleset author is told their rule was
not understood instead of having part of it vanish.
*/
package pattern

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sce.pattern'.
func tracer() tracing.Trace {
	return tracing.Select("sce.pattern")
}
