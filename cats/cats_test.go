package cats

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDefineAndLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.cats")
	defer teardown()
	//
	s := NewStore()
	if err := s.Define("V", []string{"a", "e", "i", "o", "u"}); err != nil {
		t.Fatal(err)
	}
	v, ok := s.Lookup("V")
	if !ok || v.Len() != 5 {
		t.Fatalf("expected category V of length 5, got %v", v)
	}
}

func TestDefineResolvesReferences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.cats")
	defer teardown()
	//
	s := NewStore()
	must(t, s.Define("V", []string{"a", "i", "u"}))
	must(t, s.Define("N", []string{"m", "n"}))
	must(t, s.Define("C", []string{"[N]", "p", "t", "k"}))
	c, _ := s.Lookup("C")
	want := []string{"m", "n", "p", "t", "k"}
	assertCatEquals(t, c, want)
}

func TestUnknownReferenceFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.cats")
	defer teardown()
	//
	s := NewStore()
	err := s.Define("C", []string{"[ghost]"})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestAugmentAndReduce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.cats")
	defer teardown()
	//
	s := NewStore()
	must(t, s.Define("V", []string{"a", "e"}))
	must(t, s.Augment("V", []string{"i"}))
	v, _ := s.Lookup("V")
	assertCatEquals(t, v, []string{"a", "e", "i"})

	must(t, s.Reduce("V", []string{"a", "e"}))
	v, ok := s.Lookup("V")
	assertCatEquals(t, v, []string{"i"})
	if !ok {
		t.Fatal("category V should still exist")
	}
}

func TestReduceToEmptyDeletesCategory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.cats")
	defer teardown()
	//
	s := NewStore()
	must(t, s.Define("V", []string{"a", "e"}))
	must(t, s.Reduce("V", []string{"a", "e"}))
	if _, ok := s.Lookup("V"); ok {
		t.Fatal("category V should have been deleted once empty")
	}
}

func TestIntersectAndDifferenceIdentities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.cats")
	defer teardown()
	//
	a, _ := NewCategory([]string{"a", "e", "i"}, nil)
	b, _ := NewCategory([]string{"e", "i", "o"}, nil)

	if got := a.Intersect(a); got.Len() != a.Len() {
		t.Errorf("A & A should equal A, got %v", got)
	}
	if got := a.Difference(a); got.Len() != 0 {
		t.Errorf("A - A should be empty, got %v", got)
	}
	union := a.Union(b)
	diff := union.Difference(b)
	for _, tok := range a.Difference(b).Tokens() {
		if !diff.Contains(tok) {
			t.Errorf("(A+B)-B should be a superset of A-B; missing %v", tok)
		}
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func assertCatEquals(t *testing.T, c *Category, want []string) {
	t.Helper()
	if c.Len() != len(want) {
		t.Fatalf("got %v, want %v", c, want)
	}
	for i, w := range want {
		if string(c.At(i)) != w {
			t.Errorf("index %d: got %q, want %q", i, c.At(i), w)
		}
	}
}
