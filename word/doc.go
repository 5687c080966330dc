/*
Package word holds the Word model: an ordered, boundary-flanked sequence
of graph.Token. Word itself knows nothing about patterns or rules — the
Matcher interface is the seam that lets package rule drive matching
over a Word without word importing rule, the same split the teacher
keeps between lr and its scanner packages.
*/
package word

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sce.word'.
func tracer() tracing.Trace {
	return tracing.Select("sce.word")
}
