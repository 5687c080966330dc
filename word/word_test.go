package word

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/orthogram/sce/graph"
)

func toks(ss ...string) []graph.Token {
	out := make([]graph.Token, len(ss))
	for i, s := range ss {
		out[i] = graph.Token(s)
	}
	return out
}

func TestWordBasics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.word")
	defer teardown()
	w := New(toks("#", "k", "a", "t", "a", "#"))
	if w.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", w.Len())
	}
	if w.At(1) != "k" {
		t.Fatalf("At(1) = %q, want k", w.At(1))
	}
	w.Set(1, "g")
	if w.At(1) != "g" {
		t.Fatalf("Set did not take effect")
	}
}

func TestCollapseBoundariesAfterDelete(t *testing.T) {
	w := New(toks("#", "k", "#", "a", "#"))
	w.Delete(1)
	collapsed := CollapseBoundaries(w.Tokens())
	for i, tok := range collapsed {
		if i > 0 && tok == graph.Boundary && collapsed[i-1] == graph.Boundary {
			t.Fatalf("adjacent boundaries survived collapse: %v", collapsed)
		}
	}
}

func TestWordReplace(t *testing.T) {
	w := New(toks("#", "k", "a", "t", "a", "#"))
	w.Replace(1, 1, toks("g"))
	want := New(toks("#", "g", "a", "t", "a", "#"))
	if !w.Equal(want) {
		t.Fatalf("Replace: got %v, want %v", w.Tokens(), want.Tokens())
	}
}

func TestWordInsert(t *testing.T) {
	w := New(toks("#", "k", "a", "#"))
	w.Insert(2, "n")
	want := New(toks("#", "k", "n", "a", "#"))
	if !w.Equal(want) {
		t.Fatalf("Insert: got %v, want %v", w.Tokens(), want.Tokens())
	}
}

func TestWordSliceAndReverse(t *testing.T) {
	w := New(toks("#", "k", "a", "t", "a", "#"))
	s := w.Slice(1, 5)
	if s.String() != "k a t a" {
		t.Fatalf("Slice rendered %q", s.String())
	}
	rev := s.Reversed()
	if rev.String() != "a t a k" {
		t.Fatalf("Reversed rendered %q", rev.String())
	}
	// Reversed must not mutate the receiver.
	if s.String() != "k a t a" {
		t.Fatalf("Reversed mutated its receiver: %q", s.String())
	}
}

func TestWordConcat(t *testing.T) {
	a := New(toks("#", "k", "a"))
	b := New(toks("t", "a", "#"))
	a.Concat(b)
	if a.String() != "# k a t a #" {
		t.Fatalf("Concat rendered %q", a.String())
	}
}

func TestWordRepeatCollapsesBoundary(t *testing.T) {
	w := New(toks("#", "k", "a", "#"))
	rep := w.Repeat(2)
	want := New(toks("#", "k", "a", "#", "k", "a", "#"))
	if !rep.Equal(want) {
		t.Fatalf("Repeat: got %v, want %v", rep.Tokens(), want.Tokens())
	}
}

func TestWordEqual(t *testing.T) {
	a := New(toks("#", "k", "a", "#"))
	b := New(toks("#", "k", "a", "#"))
	c := New(toks("#", "k", "o", "#"))
	if !a.Equal(b) {
		t.Fatal("expected equal words to compare equal")
	}
	if a.Equal(c) {
		t.Fatal("expected differing words to compare unequal")
	}
}
