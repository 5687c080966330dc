package rule

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/orthogram/sce/pattern"
)

// checkPathological guards against a rule whose target recurs as a
// contiguous run inside its own, strictly longer replacement while
// repeat is not set above 1 (e.g. "a > aa"). An identity rule such as
// "a > a" is not rejected: it is a no-op that signals ErrWordUnchanged.
// Per §5, this is checked once, at parse time, rather than by timing
// out a runaway apply loop.
func checkPathological(tars []pattern.Target, reps [][]pattern.Atom, flags Flags) error {
	if flags.Repeat() > 1 {
		return nil
	}
	for i, t := range tars {
		rep := repForIndex(reps, i)
		if len(rep) <= len(t.Pattern) || len(t.Pattern) == 0 {
			continue
		}
		if atomRunContains(atomsHash(rep), atomsHash(t.Pattern)) {
			return fmt.Errorf("%w: %q", ErrPathological, renderAtomKinds(t.Pattern))
		}
	}
	return nil
}

// atomKey is the hashable projection of an Atom: Atom itself carries a
// *cats.Category pointer and is not meaningfully comparable by value,
// so structhash hashes this stand-in instead.
type atomKey struct {
	Kind    pattern.AtomKind
	Literal string
	Ref     pattern.TargetRefKind
	CatVals []string
}

func keyOf(a pattern.Atom) atomKey {
	k := atomKey{Kind: a.Kind, Literal: string(a.Literal), Ref: a.Ref}
	if a.Cat != nil {
		for _, tok := range a.Cat.Tokens() {
			k.CatVals = append(k.CatVals, string(tok))
		}
	}
	return k
}

// atomsHash renders atoms as a pipe-joined sequence of per-atom
// structhash digests, so containment of one atom run within another
// can be tested on atom boundaries rather than character boundaries.
func atomsHash(atoms []pattern.Atom) string {
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		h, err := structhash.Hash(keyOf(a), 1)
		if err != nil {
			panic(err) // structhash.Hash only errors on unsupported field kinds
		}
		parts[i] = h
	}
	return strings.Join(parts, "|")
}

func atomRunContains(haystack, needle string) bool {
	return strings.Contains("|"+haystack+"|", "|"+needle+"|")
}

func renderAtomKinds(atoms []pattern.Atom) string {
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		parts[i] = a.Kind.String()
	}
	return strings.Join(parts, " ")
}

func repForIndex(reps [][]pattern.Atom, i int) []pattern.Atom {
	if len(reps) == 1 {
		return reps[0]
	}
	if i >= 0 && i < len(reps) {
		return reps[i]
	}
	return nil
}
