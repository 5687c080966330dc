package graph

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTokenizeSingleChars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.graph")
	defer teardown()
	//
	toks := Tokenize("kata", Alphabet{})
	want := []Token{"#", "k", "a", "t", "a", "#"}
	assertTokens(t, toks, want)
}

func TestTokenizePolygraphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.graph")
	defer teardown()
	//
	a := Alphabet{Polygraphs: []string{"ng", "kw"}}
	toks := Tokenize("bangkwa", a)
	want := []Token{"#", "b", "a", "ng", "kw", "a", "#"}
	assertTokens(t, toks, want)
}

func TestTokenizeSeparatorDisambiguates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.graph")
	defer teardown()
	//
	a := Alphabet{Separator: '\'', Polygraphs: []string{"ng"}}
	toks := Tokenize("n'g", a)
	want := []Token{"#", "n", "g", "#"}
	assertTokens(t, toks, want)
}

func TestTokenizeWhitespaceCollapses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.graph")
	defer teardown()
	//
	toks := Tokenize("ka   ta", Alphabet{})
	want := []Token{"#", "k", "a", "#", "t", "a", "#"}
	assertTokens(t, toks, want)
}

func TestTokenizeRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.graph")
	defer teardown()
	//
	a := Alphabet{Polygraphs: []string{"ng", "kw"}}
	for _, word := range []string{"bangkwa", "kata", "ngatanga"} {
		toks := Tokenize(word, a)
		rendered := Render(toks, a)
		retoks := Tokenize(rendered, a)
		assertTokens(t, retoks, toks)
	}
}

func assertTokens(t *testing.T, got, want []Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
