/*
Package ruleset implements the ruleset driver of §4.G: parsing a
source text into a sequence of category-store edits and rules, and
driving the newest-first, repeat/age application loop over a batch of
words.
*/
package ruleset

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sce.ruleset'.
func tracer() tracing.Trace {
	return tracing.Select("sce.ruleset")
}
