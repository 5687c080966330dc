/*
Command scerepl is an interactive sandbox for exploring a ruleset
incrementally, mirroring gorgo/terex/terexlang/trepl: type a category
edit or a rule line and see it applied to a working set of words
immediately.

	sce> V = a,e,i,o,u
	sce> :words kata, pan
	sce> [V] > e / _ #
	kate pan

":words" resets the working set of words the next rule lines are
tried against; any other non-empty line is fed to the current
Ruleset, so categories and rules accumulate across the session the
way a ruleset source file would if read top to bottom.

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
