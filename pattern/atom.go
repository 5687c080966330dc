package pattern

import (
	"fmt"

	"github.com/orthogram/sce/cats"
	"github.com/orthogram/sce/graph"
)

// AtomKind tags the variant held by an Atom.
type AtomKind int8

const (
	KindLiteral AtomKind = iota
	KindBoundary
	KindWildcard
	KindCategory
	KindOptional
	KindTargetRef
)

// String is a small hand-written stringer, in lieu of running
// `go:generate stringer` (see DESIGN.md for why golang.org/x/tools is
// not wired in as a runtime dependency).
func (k AtomKind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindBoundary:
		return "Boundary"
	case KindWildcard:
		return "Wildcard"
	case KindCategory:
		return "Category"
	case KindOptional:
		return "Optional"
	case KindTargetRef:
		return "TargetRef"
	default:
		return fmt.Sprintf("AtomKind(%d)", int8(k))
	}
}

// TargetRefKind distinguishes the two target placeholders usable only
// in replacements and environments.
type TargetRefKind int8

const (
	// RefMatch ('%') stands for the matched target, in original order.
	RefMatch TargetRefKind = iota
	// RefReversed ('<') stands for the matched target, reversed.
	RefReversed
)

func (k TargetRefKind) String() string {
	if k == RefReversed {
		return "<"
	}
	return "%"
}

// Atom is a single element of a pattern: a tagged union over the six
// atom kinds the grammar supports. Only the fields relevant to Kind are
// populated; callers should switch on Kind before reading them.
type Atom struct {
	Kind    AtomKind
	Literal graph.Token      // KindLiteral
	Cat     *cats.Category   // KindCategory
	Sub     []Atom           // KindOptional
	Ref     TargetRefKind    // KindTargetRef
}

// BoundaryAtom is the singleton atom matching a word edge.
var BoundaryAtom = Atom{Kind: KindBoundary}

// WildcardAtom is the singleton atom matching zero or more tokens.
var WildcardAtom = Atom{Kind: KindWildcard}

// NewLiteral wraps a single grapheme as a literal atom.
func NewLiteral(tok graph.Token) Atom {
	return Atom{Kind: KindLiteral, Literal: tok}
}

// NewCategory wraps a resolved category as a category atom.
func NewCategory(c *cats.Category) Atom {
	return Atom{Kind: KindCategory, Cat: c}
}

// NewOptional wraps a sub-pattern as an optional atom.
func NewOptional(sub []Atom) Atom {
	return Atom{Kind: KindOptional, Sub: sub}
}

// NewTargetRef wraps a target-reference placeholder.
func NewTargetRef(k TargetRefKind) Atom {
	return Atom{Kind: KindTargetRef, Ref: k}
}

// Reversed returns a pattern with atoms in reverse order, recursing
// into Optional sub-patterns. It is a pure view: the input slice is
// never mutated in place, so a parsed pattern may be shared safely
// across an ltr rule and its non-reversed sibling fields.
func Reversed(atoms []Atom) []Atom {
	out := make([]Atom, len(atoms))
	for i, a := range atoms {
		rev := a
		if a.Kind == KindOptional {
			rev.Sub = Reversed(a.Sub)
		}
		out[len(atoms)-1-i] = rev
	}
	return out
}

// Len returns the number of tokens a flat (no Optional/Wildcard)
// pattern consumes: one per Literal, Boundary or Category atom.
func Len(atoms []Atom) int {
	n := 0
	for _, a := range atoms {
		switch a.Kind {
		case KindCategory, KindLiteral, KindBoundary:
			n++
		}
	}
	return n
}
