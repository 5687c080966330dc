package rule

import (
	"github.com/orthogram/sce/graph"
	"github.com/orthogram/sce/pattern"
	"github.com/orthogram/sce/word"
	"golang.org/x/exp/slices"
)

// Engine is the concrete word.Matcher: it implements pattern matching
// over a word.Word per §4.E, and the selection/gating logic a Rule
// needs to turn a pattern match into a set of apply positions.
type Engine struct{}

// NewEngine constructs a matcher. Engine carries no state; a single
// instance can be shared across rules and words.
func NewEngine() *Engine {
	return &Engine{}
}

// Find implements word.Matcher: the smallest position in [start, end)
// at which pat matches w, or -1.
func (e *Engine) Find(w *word.Word, pat []pattern.Atom, start, end int) int {
	if end > w.Len()+1 {
		end = w.Len() + 1
	}
	for p := start; p < end; p++ {
		if _, ok := e.matchAt(w, pat, p); ok {
			return p
		}
	}
	return -1
}

// matchAt reports whether pat matches w starting exactly at pos, and
// if so how many tokens the match consumed.
func (e *Engine) matchAt(w *word.Word, pat []pattern.Atom, pos int) (int, bool) {
	if len(pat) == 0 {
		return 0, true
	}
	head, rest := pat[0], pat[1:]
	switch head.Kind {
	case pattern.KindLiteral:
		if pos >= w.Len() || w.At(pos) != head.Literal {
			return 0, false
		}
		if n, ok := e.matchAt(w, rest, pos+1); ok {
			return n + 1, true
		}
		return 0, false
	case pattern.KindBoundary:
		if pos >= w.Len() || w.At(pos) != graph.Boundary {
			return 0, false
		}
		if n, ok := e.matchAt(w, rest, pos+1); ok {
			return n + 1, true
		}
		return 0, false
	case pattern.KindCategory:
		if pos >= w.Len() || !head.Cat.Contains(w.At(pos)) {
			return 0, false
		}
		if n, ok := e.matchAt(w, rest, pos+1); ok {
			return n + 1, true
		}
		return 0, false
	case pattern.KindWildcard:
		for k := 0; pos+k <= w.Len(); k++ {
			if n, ok := e.matchAt(w, rest, pos+k); ok {
				return n + k, true
			}
		}
		return 0, false
	case pattern.KindOptional:
		expanded := make([]pattern.Atom, 0, len(head.Sub)+len(rest))
		expanded = append(expanded, head.Sub...)
		expanded = append(expanded, rest...)
		if n, ok := e.matchAt(w, expanded, pos); ok {
			return n, true
		}
		return e.matchAt(w, rest, pos)
	case pattern.KindTargetRef:
		// matchEnv expands '%'/'<' to literal atoms (the matched
		// target, in order or reversed) before handing an environment
		// to matchAt/Find, so this case is never reached from there;
		// it is a safe fallback for any atom slice that reaches
		// matchAt with an un-expanded reference.
		return 0, false
	}
	return 0, false
}

// matchSpan is a match position together with the number of tokens it
// consumed (which varies per position when the pattern contains a
// Wildcard or Optional atom).
type matchSpan struct {
	Pos int
	Run int
}

// MatchTarget implements §4.E's selection and gating: the positions
// where t matches w, restricted by t's count selector and sorted in
// decreasing order, split into those that pass the environment/
// exception gates and those that don't (the latter are where an
// else-branch, if any, gets a chance to apply instead).
func (e *Engine) MatchTarget(w *word.Word, t pattern.Target, envs, excs []pattern.Environment) (accepted, rejected []matchSpan) {
	var found []matchSpan
	for p := 0; p <= w.Len(); p++ {
		if run, ok := e.matchAt(w, t.Pattern, p); ok {
			found = append(found, matchSpan{p, run})
		}
	}
	selected := found
	if len(t.Counts) > 0 {
		selected = nil
		for _, c := range t.Counts {
			if c >= 0 && c < len(found) {
				selected = append(selected, found[c])
			}
		}
	}
	slices.SortFunc(selected, func(a, b matchSpan) bool { return a.Pos > b.Pos })

	for _, m := range selected {
		if e.anyMatches(w, excs, m.Pos, m.Run) {
			rejected = append(rejected, m)
			continue
		}
		if len(envs) == 0 || e.anyMatches(w, envs, m.Pos, m.Run) {
			accepted = append(accepted, m)
		} else {
			rejected = append(rejected, m)
		}
	}
	return accepted, rejected
}

// GateAllPositions implements the epenthesis match policy: every
// inter-token slot strictly between the word's leading and trailing
// boundary tokens is a candidate position (run is always 0), gated the
// same way as MatchTarget. A word is always boundary-flanked
// ([#, ..., #]), so slot 0 sits before the leading '#' and slot
// w.Len() sits after the trailing one — both lie outside the word
// proper, and including them lets an env like "_#" match the word's
// own leading boundary as if it were "the end of the word", inserting
// a spurious token outside the flanking pair. Slots 1 and w.Len()-1
// (immediately after the leading '#' and immediately before the
// trailing one) remain valid and still gate correctly against "#_" and
// "_#" environments.
func (e *Engine) GateAllPositions(w *word.Word, envs, excs []pattern.Environment) (accepted, rejected []int) {
	var all []int
	for p := 1; p < w.Len(); p++ {
		all = append(all, p)
	}
	slices.SortFunc(all, func(a, b int) bool { return a > b })
	for _, p := range all {
		if e.anyMatches(w, excs, p, 0) {
			rejected = append(rejected, p)
			continue
		}
		if len(envs) == 0 || e.anyMatches(w, envs, p, 0) {
			accepted = append(accepted, p)
		} else {
			rejected = append(rejected, p)
		}
	}
	return accepted, rejected
}

func (e *Engine) anyMatches(w *word.Word, envs []pattern.Environment, pos, run int) bool {
	for _, env := range envs {
		if e.matchEnv(env, w, pos, run) {
			return true
		}
	}
	return false
}

// matchEnv implements match_env(env, word, pos, run) of §4.E. '%'/'<'
// inside an environment or exception stand for the target span
// currently under test, so they are expanded to literal atoms (drawn
// from the same [pos, pos+run) span MatchTarget/GateAllPositions is
// gating) before the environment is matched against the word.
func (e *Engine) matchEnv(env pattern.Environment, w *word.Word, pos, run int) bool {
	matched := append([]graph.Token{}, w.Tokens()[pos:pos+run]...)
	if env.Single {
		one := expandTargetRefs(env.One, matched)
		return e.Find(w, one, 0, w.Len()+1) != -1
	}
	// env.Left is stored already reversed (it is matched against a
	// reversed view of the word), so its '%'/'<' expansion must draw
	// from the matched span reversed too, to stay consistent with that
	// storage convention.
	left := expandTargetRefs(env.Left, reverseTokens(matched))
	right := expandTargetRefs(env.Right, matched)
	leftOK := false
	if pos == 0 {
		leftOK = len(left) == 0
	} else {
		rev := w.Reversed()
		leftPos := w.Len() - pos
		_, leftOK = e.matchAt(rev, left, leftPos)
	}
	if !leftOK {
		return false
	}
	_, rightOK := e.matchAt(w, right, pos+run)
	return rightOK
}

// expandTargetRefs substitutes every TargetRef atom in pat with literal
// atoms built from matched (in order for '%', reversed for '<'),
// recursing into Optional sub-patterns, mirroring the replacement-side
// expansion in expandReplacement. Atoms of any other kind pass through
// unchanged.
func expandTargetRefs(pat []pattern.Atom, matched []graph.Token) []pattern.Atom {
	out := make([]pattern.Atom, 0, len(pat))
	for _, a := range pat {
		switch a.Kind {
		case pattern.KindTargetRef:
			toks := matched
			if a.Ref == pattern.RefReversed {
				toks = reverseTokens(matched)
			}
			for _, tok := range toks {
				out = append(out, pattern.NewLiteral(tok))
			}
		case pattern.KindOptional:
			sub := a
			sub.Sub = expandTargetRefs(a.Sub, matched)
			out = append(out, sub)
		default:
			out = append(out, a)
		}
	}
	return out
}
