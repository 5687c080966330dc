package pattern

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/orthogram/sce/cats"
	"github.com/orthogram/sce/graph"
)

// Target is a pattern paired with an optional count selector: the set
// of 0-based ordinals (into the order matches were discovered,
// scanning left to right) choosing which matches to act on. An empty
// Counts means "all matches".
type Target struct {
	Pattern []Atom
	Counts  []int
}

// Environment is either a one-element form (One is set, matches
// "pattern occurs anywhere in the word") or a two-element form (Left,
// Right set). Left is stored already reversed, per the Design Notes:
// the matcher walks it against the reversed word, uniformly with how
// it walks Right against the forward word.
type Environment struct {
	Single bool
	One    []Atom
	Left   []Atom
	Right  []Atom
}

// Parse converts pattern-field text into a structured pattern: an
// ordered slice of Atom. Whitespace separates atoms, is otherwise
// insignificant, and is preserved verbatim only inside bracket groups
// where it is structurally part of a nested sub-pattern.
func Parse(text string, store *cats.Store, alpha graph.Alphabet) ([]Atom, error) {
	toks, err := lexField(text)
	if err != nil {
		return nil, err
	}
	return walkTokens(toks[:len(toks)-1], store, alpha)
}

// ParseTargets implements the target-field grammar: a comma-separated
// list of patterns, each with an optional "@n|n|..." count selector.
// Count selector values are 0-based indices into the order in which
// the target's matches are discovered scanning left to right.
func ParseTargets(text string, store *cats.Store, alpha graph.Alphabet) ([]Target, error) {
	groups, err := splitFieldOutside(text, lexComma)
	if err != nil {
		return nil, err
	}
	targets := make([]Target, 0, len(groups))
	for _, g := range groups {
		if g == "" {
			continue
		}
		patText, counts, err := splitCountSelector(g)
		if err != nil {
			return nil, err
		}
		atoms, err := Parse(patText, store, alpha)
		if err != nil {
			return nil, err
		}
		targets = append(targets, Target{Pattern: atoms, Counts: counts})
	}
	return targets, nil
}

func splitCountSelector(text string) (string, []int, error) {
	toks, err := lexField(text)
	if err != nil {
		return "", nil, err
	}
	toks = toks[:len(toks)-1]
	groups := splitTokensOutside(toks, lexAt)
	if len(groups) == 1 {
		return text, nil, nil
	}
	if len(groups) != 2 {
		return "", nil, fmt.Errorf("%w: malformed count selector in %q", ErrFormat, text)
	}
	patText := strings.TrimSpace(renderTokens(groups[0]))
	var counts []int
	for _, piece := range splitTokensOutside(groups[1], lexPipe) {
		numStr := strings.TrimSpace(renderTokens(piece))
		n, err := strconv.Atoi(numStr)
		if err != nil {
			return "", nil, fmt.Errorf("%w: bad count selector %q", ErrFormat, numStr)
		}
		counts = append(counts, n)
	}
	return patText, counts, nil
}

// ParseReplacements implements the replacement-field grammar: a
// comma-separated list of patterns. "(" and ")" are rejected — an
// Optional makes no sense as something to substitute in.
func ParseReplacements(text string, store *cats.Store, alpha graph.Alphabet) ([][]Atom, error) {
	groups, err := splitFieldOutside(text, lexComma)
	if err != nil {
		return nil, err
	}
	reps := make([][]Atom, 0, len(groups))
	for _, g := range groups {
		if g == "" {
			reps = append(reps, nil)
			continue
		}
		if strings.ContainsAny(g, "()") {
			return nil, fmt.Errorf("%w: replacement %q may not contain an optional group", ErrFormat, g)
		}
		atoms, err := Parse(g, store, alpha)
		if err != nil {
			return nil, err
		}
		reps = append(reps, atoms)
	}
	return reps, nil
}

// ParseEnvironments implements the environment-field grammar: a
// pipe-separated list of environments, where "~X" expands to "X_|_X",
// and each individual environment is split on its first (and only)
// top-level underscore into a reversed-left / right pair.
func ParseEnvironments(text string, store *cats.Store, alpha graph.Alphabet) ([]Environment, error) {
	groups, err := splitFieldOutside(text, lexPipe)
	if err != nil {
		return nil, err
	}
	var envs []Environment
	for _, g := range groups {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if strings.HasPrefix(g, "~") {
			rest := strings.TrimSpace(g[1:])
			expanded, err := ParseEnvironments(rest+"_|_"+rest, store, alpha)
			if err != nil {
				return nil, err
			}
			envs = append(envs, expanded...)
			continue
		}
		env, err := parseOneEnv(g, store, alpha)
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return envs, nil
}

func parseOneEnv(text string, store *cats.Store, alpha graph.Alphabet) (Environment, error) {
	parts, err := splitFieldOutside(text, lexUnderscore)
	if err != nil {
		return Environment{}, err
	}
	switch len(parts) {
	case 1:
		atoms, err := Parse(parts[0], store, alpha)
		if err != nil {
			return Environment{}, err
		}
		return Environment{Single: true, One: atoms}, nil
	case 2:
		left, err := Parse(parts[0], store, alpha)
		if err != nil {
			return Environment{}, err
		}
		right, err := Parse(parts[1], store, alpha)
		if err != nil {
			return Environment{}, err
		}
		return Environment{Left: Reversed(left), Right: right}, nil
	default:
		return Environment{}, fmt.Errorf("%w: multiple '_' in environment %q", ErrFormat, text)
	}
}

// --- token-stream structuring -------------------------------------------

// walkTokens is the recursive-descent structuring pass: it turns a
// flat token stream (brackets, operators, literal/whitespace runs)
// into a slice of Atom, recursing into bracket groups.
func walkTokens(toks []lexTok, store *cats.Store, alpha graph.Alphabet) ([]Atom, error) {
	var atoms []Atom
	i := 0
	for i < len(toks) {
		t := toks[i]
		switch t.kind {
		case lexSpace:
			i++
		case lexHash:
			atoms = append(atoms, BoundaryAtom)
			i++
		case lexStar:
			atoms = append(atoms, WildcardAtom)
			i++
		case lexPercent:
			atoms = append(atoms, NewTargetRef(RefMatch))
			i++
		case lexLt:
			atoms = append(atoms, NewTargetRef(RefReversed))
			i++
		case lexText:
			for _, tok := range graph.Tokenize(t.text, alpha) {
				if tok == graph.Boundary {
					continue
				}
				atoms = append(atoms, NewLiteral(tok))
			}
			i++
		case lexLParen:
			end, err := matchingClose(toks, i)
			if err != nil {
				return nil, err
			}
			sub, err := walkTokens(toks[i+1:end], store, alpha)
			if err != nil {
				return nil, err
			}
			atoms = append(atoms, NewOptional(sub))
			i = end + 1
		case lexLBracket:
			end, err := matchingClose(toks, i)
			if err != nil {
				return nil, err
			}
			cat, err := parseCatRefTokens(toks[i+1:end], store)
			if err != nil {
				return nil, err
			}
			atoms = append(atoms, NewCategory(cat))
			i = end + 1
		case lexLBrace:
			_, err := matchingClose(toks, i)
			if err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: subset syntax {...} is reserved", ErrFormat)
		case lexRParen, lexRBracket, lexRBrace:
			return nil, fmt.Errorf("%w: unbalanced bracket at %q", ErrFormat, t.text)
		default:
			return nil, fmt.Errorf("%w: unexpected %q in pattern", ErrFormat, t.text)
		}
	}
	return atoms, nil
}

// matchingClose returns the index, within toks, of the bracket that
// closes the opening bracket at openIdx, detecting both unbalanced and
// mixed-kind (e.g. "(a]") nesting.
func matchingClose(toks []lexTok, openIdx int) (int, error) {
	closerFor := map[lexTokKind]lexTokKind{lexLParen: lexRParen, lexLBracket: lexRBracket, lexLBrace: lexRBrace}
	var stack []lexTokKind
	stack = append(stack, toks[openIdx].kind)
	for i := openIdx + 1; i < len(toks); i++ {
		switch toks[i].kind {
		case lexLParen, lexLBracket, lexLBrace:
			stack = append(stack, toks[i].kind)
		case lexRParen, lexRBracket, lexRBrace:
			if len(stack) == 0 || closerFor[stack[len(stack)-1]] != toks[i].kind {
				return 0, fmt.Errorf("%w: mismatched bracket", ErrFormat)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unbalanced brackets", ErrFormat)
}

// parseCatRefTokens interprets the tokens inside a "[...]" group: a
// comma-separated value list (nonce category), a "name+feature" /
// "name-feature" filter, or a bare named-category reference.
func parseCatRefTokens(inner []lexTok, store *cats.Store) (*cats.Category, error) {
	if idx := findAtDepth0(inner, lexComma); idx != -1 {
		groups := splitTokensOutside(inner, lexComma)
		vals := make([]string, 0, len(groups))
		for _, g := range groups {
			v := strings.TrimSpace(renderTokens(g))
			if v != "" {
				vals = append(vals, v)
			}
		}
		return cats.NewCategory(vals, store)
	}
	if idx := findOpAtDepth0(inner); idx != -1 {
		name := strings.TrimSpace(renderTokens(inner[:idx]))
		feature := strings.TrimSpace(renderTokens(inner[idx+1:]))
		base, ok := store.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", cats.ErrUnknownCategory, name)
		}
		sub := base.WithFeature(feature)
		if inner[idx].kind == lexMinus {
			return base.Difference(sub), nil
		}
		return sub, nil
	}
	name := strings.TrimSpace(renderTokens(inner))
	cat, ok := store.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", cats.ErrUnknownCategory, name)
	}
	return cat, nil
}

func findAtDepth0(toks []lexTok, kind lexTokKind) int {
	depth := 0
	for i, t := range toks {
		switch t.kind {
		case lexLParen, lexLBracket, lexLBrace:
			depth++
		case lexRParen, lexRBracket, lexRBrace:
			depth--
		default:
			if depth == 0 && t.kind == kind {
				return i
			}
		}
	}
	return -1
}

func findOpAtDepth0(toks []lexTok) int {
	depth := 0
	for i, t := range toks {
		switch t.kind {
		case lexLParen, lexLBracket, lexLBrace:
			depth++
		case lexRParen, lexRBracket, lexRBrace:
			depth--
		case lexPlus, lexMinus:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTokensOutside groups toks into runs separated by a top-level
// (bracket-depth 0) occurrence of sep.
func splitTokensOutside(toks []lexTok, sep lexTokKind) [][]lexTok {
	var groups [][]lexTok
	var cur []lexTok
	depth := 0
	for _, t := range toks {
		switch t.kind {
		case lexLParen, lexLBracket, lexLBrace:
			depth++
		case lexRParen, lexRBracket, lexRBrace:
			depth--
		}
		if depth == 0 && t.kind == sep {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	groups = append(groups, cur)
	return groups
}

// splitFieldOutside lexes field, validates overall bracket balance,
// and splits the token stream on a top-level occurrence of sep,
// rendering each group back to source text.
func splitFieldOutside(field string, sep lexTokKind) ([]string, error) {
	toks, err := lexField(field)
	if err != nil {
		return nil, err
	}
	toks = toks[:len(toks)-1]
	if err := validateBrackets(toks); err != nil {
		return nil, err
	}
	groups := splitTokensOutside(toks, sep)
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = strings.TrimSpace(renderTokens(g))
	}
	return out, nil
}

func validateBrackets(toks []lexTok) error {
	closerFor := map[lexTokKind]lexTokKind{lexLParen: lexRParen, lexLBracket: lexRBracket, lexLBrace: lexRBrace}
	var stack []lexTokKind
	for _, t := range toks {
		switch t.kind {
		case lexLParen, lexLBracket, lexLBrace:
			stack = append(stack, t.kind)
		case lexRParen, lexRBracket, lexRBrace:
			if len(stack) == 0 || closerFor[stack[len(stack)-1]] != t.kind {
				return fmt.Errorf("%w: mismatched bracket", ErrFormat)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		return fmt.Errorf("%w: unbalanced brackets", ErrFormat)
	}
	return nil
}

// renderTokens reconstructs source text from a token slice, the
// inverse of lexField for the structural token kinds.
func renderTokens(toks []lexTok) string {
	var b strings.Builder
	for _, t := range toks {
		switch t.kind {
		case lexText, lexSpace:
			b.WriteString(t.text)
		default:
			for _, lk := range literalKinds {
				if lk.kind == t.kind {
					b.WriteString(lk.lit)
					break
				}
			}
		}
	}
	return b.String()
}
