/*
Package cats implements the category store: named, ordered collections
of graphemes (phoneme classes) and the assignment operators a sound
change ruleset uses to define, extend and shrink them.

A Category is ordered — substitution of one category for another is
positional, so index i of a target category must correspond to index i
of a replacement category — and is backed by an arraylist so that
positional lookup stays O(1) as categories are built up incrementally
from += / -= edits.

Category definitions may reference another named category with
"[name]" syntax; such references are resolved eagerly, against the
store as it stands at definition time, not lazily at lookup time.
*/
package cats

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sce.cats'.
func tracer() tracing.Trace {
	return tracing.Select("sce.cats")
}
