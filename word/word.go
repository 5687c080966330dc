package word

import (
	"github.com/orthogram/sce/graph"
	"github.com/orthogram/sce/pattern"
)

// Matcher is implemented by rule.Engine. It is declared here, not in
// rule, so that Word.Find can call into the matcher without word
// importing rule (which itself must import word).
type Matcher interface {
	// Find returns the smallest index i in [start, end) at which
	// pattern matches w, or -1 if none does.
	Find(w *Word, pat []pattern.Atom, start, end int) int
}

// Word is an ordered sequence of grapheme tokens, flanked by Boundary
// tokens at both ends. Consecutive Boundary tokens never occur:
// callers that delete tokens must call CollapseBoundaries (or rely on
// the rule package, which does) to restore that invariant.
type Word struct {
	tokens []graph.Token
}

// New wraps toks as a Word, without re-tokenizing or re-flanking it;
// callers pass the already-bounded output of graph.Tokenize.
func New(toks []graph.Token) *Word {
	w := &Word{tokens: append([]graph.Token{}, toks...)}
	return w
}

// Len returns the number of tokens, boundaries included.
func (w *Word) Len() int {
	return len(w.tokens)
}

// At returns the token at position i.
func (w *Word) At(i int) graph.Token {
	return w.tokens[i]
}

// Set overwrites the token at position i.
func (w *Word) Set(i int, tok graph.Token) {
	w.tokens[i] = tok
}

// Delete removes the token at position i.
func (w *Word) Delete(i int) {
	w.tokens = append(w.tokens[:i], w.tokens[i+1:]...)
}

// DeleteRun removes the run of run tokens starting at start.
func (w *Word) DeleteRun(start, run int) {
	w.tokens = append(w.tokens[:start], w.tokens[start+run:]...)
}

// InsertAll splices toks into the word starting at position i.
func (w *Word) InsertAll(i int, toks []graph.Token) {
	tail := append([]graph.Token{}, w.tokens[i:]...)
	w.tokens = append(w.tokens[:i:i], toks...)
	w.tokens = append(w.tokens, tail...)
}

// Normalize collapses any adjacent Boundary tokens a deletion may have
// juxtaposed, restoring the word invariant.
func (w *Word) Normalize() {
	w.tokens = CollapseBoundaries(w.tokens)
}

// Insert places tok at position i, shifting the remainder right.
func (w *Word) Insert(i int, tok graph.Token) {
	w.tokens = append(w.tokens, "")
	copy(w.tokens[i+1:], w.tokens[i:])
	w.tokens[i] = tok
}

// Replace substitutes the run [start, start+run) with rep.
func (w *Word) Replace(start, run int, rep []graph.Token) {
	tail := append([]graph.Token{}, w.tokens[start+run:]...)
	w.tokens = append(w.tokens[:start:start], rep...)
	w.tokens = append(w.tokens, tail...)
}

// Slice returns a new Word over tokens [i, j).
func (w *Word) Slice(i, j int) *Word {
	return New(w.tokens[i:j])
}

// Tokens returns a copy of the word's tokens.
func (w *Word) Tokens() []graph.Token {
	return append([]graph.Token{}, w.tokens...)
}

// Reverse reverses the word in place.
func (w *Word) Reverse() {
	for i, j := 0, len(w.tokens)-1; i < j; i, j = i+1, j-1 {
		w.tokens[i], w.tokens[j] = w.tokens[j], w.tokens[i]
	}
}

// Reversed returns a new, reversed Word, leaving w untouched.
func (w *Word) Reversed() *Word {
	out := w.Tokens()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return New(out)
}

// Concat appends other's tokens to w and returns w.
func (w *Word) Concat(other *Word) *Word {
	w.tokens = append(w.tokens, other.Tokens()...)
	return w
}

// Repeat returns a new Word consisting of w repeated n times, with a
// single Boundary between repetitions rather than a doubled one.
func (w *Word) Repeat(n int) *Word {
	if n <= 0 {
		return New(nil)
	}
	out := w.Tokens()
	for i := 1; i < n; i++ {
		if len(out) > 0 && out[len(out)-1] == graph.Boundary {
			out = out[:len(out)-1]
		}
		out = append(out, w.Tokens()...)
	}
	return New(CollapseBoundaries(out))
}

// Contains reports whether pattern matches anywhere in w.
func (w *Word) Contains(m Matcher, pat []pattern.Atom) bool {
	return m.Find(w, pat, 0, w.Len()) != -1
}

// Find delegates to m, the seam that lets rule.Engine supply matching
// without word importing rule.
func (w *Word) Find(m Matcher, pat []pattern.Atom, start, end int) int {
	return m.Find(w, pat, start, end)
}

// Equal reports token-wise equality, the word model's notion of
// semantic equality.
func (w *Word) Equal(other *Word) bool {
	if len(w.tokens) != len(other.tokens) {
		return false
	}
	for i := range w.tokens {
		if w.tokens[i] != other.tokens[i] {
			return false
		}
	}
	return true
}

// String renders the word's tokens space-joined, for diagnostics.
func (w *Word) String() string {
	out := make([]string, len(w.tokens))
	for i, t := range w.tokens {
		out[i] = string(t)
	}
	b := ""
	for i, s := range out {
		if i > 0 {
			b += " "
		}
		b += s
	}
	return b
}

// CollapseBoundaries merges consecutive Boundary tokens into one,
// restoring the word invariant after a deletion may have juxtaposed
// two of them.
func CollapseBoundaries(toks []graph.Token) []graph.Token {
	out := make([]graph.Token, 0, len(toks))
	for _, t := range toks {
		if t == graph.Boundary && len(out) > 0 && out[len(out)-1] == graph.Boundary {
			continue
		}
		out = append(out, t)
	}
	return out
}
