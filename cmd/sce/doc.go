/*
Command sce is a thin CLI front-end over the sce engine: it reads a
polygraph list, a category-definition file, a rules file, and a list
of words, applies the rules in order, and prints the transformed
lexicon, one word per line.

Usage:

	sce apply <graphs-file> <cats-file> <rules-file> <words-file>

Exit codes follow §6: 0 on success, 2 when any input failed to parse,
3 on an I/O error. Neither this package nor cmd/scerepl is exercised
by the core's tests — both are external collaborators per the
Non-goals, thin wrappers around the root sce package.

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.
*/
package main

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sce.cmd'.
func tracer() tracing.Trace {
	return tracing.Select("sce.cmd")
}
