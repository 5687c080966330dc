/*
Package rule implements the matcher (match.go) and the Rule object
(rule.go) of the sound-change engine: pattern matching over a
word.Word, rule-source parsing, and rule application.

Engine is the concrete word.Matcher: word.Word.Find delegates to it,
which is how rule depends on word without word depending back on rule.
*/
package rule

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sce.rule'.
func tracer() tracing.Trace {
	return tracing.Select("sce.rule")
}
