/*
Package graph segments raw orthographic text into graphemes.

A grapheme is either a single character or a user-declared polygraph
(a multi-character unit such as "ng" or "kʷ"). Tokenize resolves the
standard longest-match ambiguity greedily: a separator character lets
callers write a sequence of single characters that would otherwise be
swallowed by a polygraph.

Package structure is intentionally small — this package has no
dependency on categories, patterns or rules; it only knows how to turn
text into tokens and back.
*/
package graph

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sce.graph'.
func tracer() tracing.Trace {
	return tracing.Select("sce.graph")
}
