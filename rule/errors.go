package rule

import "errors"

// ErrFormat is returned for malformed rule-source text.
var ErrFormat = errors.New("malformed rule")

// ErrUnknownFlag is returned when a rule's flag clause names a flag
// this engine does not recognize.
var ErrUnknownFlag = errors.New("unknown rule flag")

// ErrWordUnchanged signals that Apply ran to completion but produced
// no change to the word. It is not a failure: ruleset.Apply catches it
// to break out of a repeat loop, per the driver contract.
var ErrWordUnchanged = errors.New("word unchanged")

// ErrPathological is returned at parse time for a rule whose target
// occurs as a contiguous run inside a strictly longer replacement while
// its repeat flag is not set above 1 — such a rule grows the word on
// every application instead of converging.
var ErrPathological = errors.New("rule target recurs in its own replacement under unbounded repeat")
