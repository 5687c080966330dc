package rule

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/orthogram/sce/cats"
	"github.com/orthogram/sce/graph"
	"github.com/orthogram/sce/pattern"
	"github.com/orthogram/sce/word"
	"golang.org/x/exp/slices"
)

const maxElseDepth = 8

// Flags holds a rule's execution parameters, keyed the way the
// original tool keeps them (a name->int map with defaults), rather
// than one bool/int field per flag — new flags need no struct change.
type Flags struct {
	values map[string]int
}

func defaultFlags() Flags {
	return Flags{values: map[string]int{"ltr": 0, "repeat": 1, "age": 1, "chance": 100}}
}

// DefaultFlags returns the engine's built-in flag defaults (ltr: false,
// repeat: 1, age: 1, chance: 100), per §3.
func DefaultFlags() Flags {
	return defaultFlags()
}

// NewFlags builds a Flags value from explicit defaults, the hook a
// caller's Config uses to change a ruleset-wide default before any
// rule is parsed against it.
func NewFlags(ltr bool, repeat, age, chance int) Flags {
	f := Flags{values: map[string]int{"repeat": repeat, "age": age, "chance": chance}}
	if ltr {
		f.values["ltr"] = 1
	} else {
		f.values["ltr"] = 0
	}
	return f
}

// LTR reports whether the rule runs right-to-left-reversed (i.e. its
// net effect is left-to-right application).
func (f Flags) LTR() bool { return f.values["ltr"] != 0 }

// Repeat is the number of times the rule may apply per word per pass.
func (f Flags) Repeat() int { return f.values["repeat"] }

// Age is the number of ruleset passes the rule survives for.
func (f Flags) Age() int { return f.values["age"] }

// Chance is the percentage probability (0-100) that a single Apply
// call takes effect at all.
func (f Flags) Chance() int { return f.values["chance"] }

// DecrementAge returns a copy of f with age reduced by one.
func (f Flags) DecrementAge() Flags {
	out := Flags{values: make(map[string]int, len(f.values))}
	for k, v := range f.values {
		out.values[k] = v
	}
	out.values["age"]--
	return out
}

func parseFlags(base Flags, text string) (Flags, error) {
	f := Flags{values: make(map[string]int, len(base.values))}
	for k, v := range base.values {
		f.values[k] = v
	}
	text = strings.ReplaceAll(text, ",", " ")
	for _, tok := range strings.Fields(text) {
		name, val, hasVal := strings.Cut(tok, ":")
		if _, known := f.values[name]; !known {
			return Flags{}, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
		}
		if !hasVal {
			f.values[name] = 1 - f.values[name]
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return Flags{}, fmt.Errorf("%w: flag %q wants an integer value", ErrFormat, name)
		}
		f.values[name] = n
	}
	return f, nil
}

// Rule is a parsed sound-change rule: a record of its targets,
// replacements, environments, exceptions, optional else-branch, and
// flags, per §3/§4.F.
type Rule struct {
	Source string
	Tars   []pattern.Target
	Reps   [][]pattern.Atom
	Envs   []pattern.Environment
	Excs   []pattern.Environment
	Else   *Rule
	Flags  Flags
}

// ParseRule parses a rule-source line of the shape
// "tars OP reps / envs ! excs  flags", OP one of '>', '+', '-'.
// Environments default to "_" (anywhere), exceptions to none, flags to
// their defaults (ltr off, repeat 1, age 1, chance 100). A rule-source continuing past its first
// OP/envs/excs clause with another '>', '/', or '!' is parsed as an
// else-branch, recursively, to a maximum nesting of 8.
func ParseRule(src string, store *cats.Store, alpha graph.Alphabet) (*Rule, error) {
	return parseRuleDepth(src, store, alpha, 0, defaultFlags())
}

// ParseRuleWithDefaults parses like ParseRule, but a rule clause that
// omits a given flag starts from defaults' value for it instead of
// the engine's built-in default — the hook a caller's Config uses to
// change, say, the default repeat count ruleset-wide.
func ParseRuleWithDefaults(src string, store *cats.Store, alpha graph.Alphabet, defaults Flags) (*Rule, error) {
	return parseRuleDepth(src, store, alpha, 0, defaults)
}

func parseRuleDepth(src string, store *cats.Store, alpha graph.Alphabet, depth int, defaults Flags) (*Rule, error) {
	if depth > maxElseDepth {
		return nil, fmt.Errorf("%w: else-rule chain nests deeper than %d", ErrFormat, maxElseDepth)
	}
	body, flagsText := splitBodyAndFlags(src, defaults)
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: empty rule", ErrFormat)
	}

	forcedEmptyReps := false
	switch body[0] {
	case '+':
		body = ">" + body[1:]
	case '-':
		body = body[1:]
		forcedEmptyReps = true
	}

	clauses := scanClauses(body)
	tarsText := clauses[0].text

	var reps, envs, excs *string
	if forcedEmptyReps {
		empty := ""
		reps = &empty
	}
	elseStart := -1
	for i := 1; i < len(clauses); i++ {
		c := clauses[i]
		switch c.marker {
		case '>':
			if reps == nil {
				t := c.text
				reps = &t
				continue
			}
		case '/':
			if envs == nil {
				t := c.text
				envs = &t
				if reps == nil {
					empty := ""
					reps = &empty
				}
				continue
			}
		case '!':
			if excs == nil {
				t := c.text
				excs = &t
				if envs == nil {
					u := "_"
					envs = &u
				}
				if reps == nil {
					empty := ""
					reps = &empty
				}
				continue
			}
		}
		elseStart = i
		break
	}
	if reps == nil {
		empty := ""
		reps = &empty
	}
	if envs == nil {
		u := "_"
		envs = &u
	}
	if excs == nil {
		empty := ""
		excs = &empty
	}

	tars, err := pattern.ParseTargets(tarsText, store, alpha)
	if err != nil {
		return nil, err
	}
	repAtoms, err := pattern.ParseReplacements(*reps, store, alpha)
	if err != nil {
		return nil, err
	}
	if forcedEmptyReps {
		// "- tars" is sugar for "tars >" with the replacement list truly
		// empty (the Deletion dispatch shape), not a single empty
		// replacement entry (which ParseReplacements("") would produce).
		repAtoms = nil
	}
	envAtoms, err := pattern.ParseEnvironments(*envs, store, alpha)
	if err != nil {
		return nil, err
	}
	excAtoms, err := pattern.ParseEnvironments(*excs, store, alpha)
	if err != nil {
		return nil, err
	}
	flags, err := parseFlags(defaults, flagsText)
	if err != nil {
		return nil, err
	}
	if err := checkPathological(tars, repAtoms, flags); err != nil {
		return nil, err
	}
	// §3 invariant: a Category target and a Category replacement must
	// have the same number of members.
	for i, t := range tars {
		if tarCat, repCat, ok := categoryCorrespondence(t.Pattern, repForIndex(repAtoms, i)); ok && tarCat.Len() != repCat.Len() {
			return nil, fmt.Errorf("%w: category target and replacement differ in length", ErrFormat)
		}
	}

	r := &Rule{Source: src, Tars: tars, Reps: repAtoms, Envs: envAtoms, Excs: excAtoms, Flags: flags}

	if elseStart != -1 {
		var b strings.Builder
		b.WriteString(tarsText)
		for _, c := range clauses[elseStart:] {
			b.WriteByte(c.marker)
			b.WriteString(c.text)
		}
		elseRule, err := parseRuleDepth(b.String(), store, alpha, depth+1, defaults)
		if err != nil {
			return nil, err
		}
		r.Else = elseRule
	}
	tracer().Debugf("parsed rule %q: %d target(s), else=%v", src, len(tars), r.Else != nil)
	return r, nil
}

// splitBodyAndFlags separates a rule-source line's body from its
// trailing flags clause. The original tool's rule bodies never contain
// whitespace, so it can always split on the first space; this spec's
// rule grammar writes operators with surrounding spaces (e.g. "a > b",
// "a > e / _ i > o / _ u"), so splitting on the first space would
// truncate the body at its first field. Instead:
//   - zero or one whitespace field: no flags clause at all.
//   - exactly two fields, the first of which already reads as a
//     complete clause on its own (anything but a bare "+"/"-" sugar
//     prefix): the original's own convention — a compact, space-free
//     body followed by one flags token, kept even when that token
//     names no known flag, so parseFlags can report ErrUnknownFlag on
//     it rather than have it silently swallowed into the body.
//   - otherwise: peel a trailing run of fields that name a known flag
//     (optionally "name:value"); a trailing field that isn't a known
//     flag name is assumed to be body text (e.g. a bare grapheme
//     closing an environment clause, or the target half of a spaced
//     "- tars"/"+ reps" sugar form) and is left in the body untouched.
//     A lone "+"/"-" sugar field is never left to stand as the whole
//     body: it names no target without the field after it.
func splitBodyAndFlags(src string, known Flags) (string, string) {
	fields := strings.Fields(src)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	}
	if len(fields) == 2 && fields[0] != "+" && fields[0] != "-" {
		return fields[0], fields[1]
	}
	end := len(fields)
	for end > 1 && isKnownFlagToken(fields[end-1], known) {
		end--
	}
	if (fields[0] == "+" || fields[0] == "-") && end < 2 {
		end = 2
	}
	if end == len(fields) {
		return src, ""
	}
	return strings.Join(fields[:end], " "), strings.Join(fields[end:], " ")
}

func isKnownFlagToken(tok string, known Flags) bool {
	name, _, _ := strings.Cut(tok, ":")
	_, ok := known.values[name]
	return ok
}

type fieldClause struct {
	marker byte
	text   string
}

// scanClauses splits body into a leading unmarked clause and any
// number of top-level (bracket-depth 0) '>'/'/'/'!' marked clauses.
func scanClauses(body string) []fieldClause {
	var out []fieldClause
	depth := 0
	start := 0
	marker := byte(0)
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '>', '/', '!':
			if depth == 0 {
				out = append(out, fieldClause{marker, body[start:i]})
				marker = body[i]
				start = i + 1
			}
		}
	}
	out = append(out, fieldClause{marker, body[start:]})
	return out
}

// Reversed returns a deep, non-mutating view of r with every target,
// replacement, environment, exception, and else-branch reversed, per
// the Design Notes' explicit resolution to make direction-handling a
// pure transform rather than the original's in-place reverse().
func (r *Rule) Reversed() *Rule {
	if r == nil {
		return nil
	}
	out := &Rule{Source: r.Source, Flags: r.Flags}
	out.Tars = make([]pattern.Target, len(r.Tars))
	for i, t := range r.Tars {
		out.Tars[i] = pattern.Target{Pattern: pattern.Reversed(t.Pattern), Counts: t.Counts}
	}
	out.Reps = make([][]pattern.Atom, len(r.Reps))
	for i, rep := range r.Reps {
		out.Reps[i] = pattern.Reversed(rep)
	}
	out.Envs = reverseEnvs(r.Envs)
	out.Excs = reverseEnvs(r.Excs)
	out.Else = r.Else.Reversed()
	return out
}

// reverseEnvs swaps and re-reverses each environment's sides: the new
// left-reversed is the reverse of the old right, and the new right is
// the reverse of the old (already-reversed) left.
func reverseEnvs(envs []pattern.Environment) []pattern.Environment {
	out := make([]pattern.Environment, len(envs))
	for i, e := range envs {
		if e.Single {
			out[i] = pattern.Environment{Single: true, One: pattern.Reversed(e.One)}
			continue
		}
		out[i] = pattern.Environment{Left: pattern.Reversed(e.Right), Right: pattern.Reversed(e.Left)}
	}
	return out
}

// Apply implements §4.F step 2: dispatch by rule shape, honoring ltr
// and chance, and reports ErrWordUnchanged if w ended up untouched.
func (r *Rule) Apply(w *word.Word, eng *Engine) error {
	if r.Flags.Chance() < 100 {
		if rand.Intn(100) >= r.Flags.Chance() {
			return ErrWordUnchanged
		}
	}
	before := w.Tokens()

	active := r
	if r.Flags.LTR() {
		active = r.Reversed()
		w.Reverse()
	}
	active.dispatch(w, eng)
	w.Normalize()
	if r.Flags.LTR() {
		w.Reverse()
	}

	if tokensEqual(before, w.Tokens()) {
		return ErrWordUnchanged
	}
	return nil
}

func tokensEqual(a, b []graph.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (r *Rule) dispatch(w *word.Word, eng *Engine) {
	switch {
	case len(r.Tars) == 0:
		r.applyEpenthesis(w, eng)
	case len(r.Reps) == 0:
		r.applyDeletion(w, eng)
	default:
		r.applySubstitution(w, eng)
	}
}

// dispatchAction is one position an apply pass must act on, tagged
// with whether it passed the rule's own gate (apply the main
// operation) or fell to the else-branch. Accepted and rejected
// positions are merged into a single decreasing-position order before
// any edit happens: an else-edit and a main edit can shift each
// other's indices exactly like two main edits would, so they must
// share the same "process highest position first" discipline.
type dispatchAction struct {
	span    matchSpan
	useElse bool
}

func mergeActions(accepted, rejected []matchSpan) []dispatchAction {
	actions := make([]dispatchAction, 0, len(accepted)+len(rejected))
	for _, m := range accepted {
		actions = append(actions, dispatchAction{span: m})
	}
	for _, m := range rejected {
		actions = append(actions, dispatchAction{span: m, useElse: true})
	}
	slices.SortFunc(actions, func(a, b dispatchAction) bool { return a.span.Pos > b.span.Pos })
	return actions
}

func (r *Rule) applyEpenthesis(w *word.Word, eng *Engine) {
	rep := repForIndex(r.Reps, 0)
	accepted, rejected := eng.GateAllPositions(w, r.Envs, r.Excs)
	acceptedSpans := make([]matchSpan, len(accepted))
	for i, p := range accepted {
		acceptedSpans[i] = matchSpan{Pos: p}
	}
	rejectedSpans := make([]matchSpan, len(rejected))
	for i, p := range rejected {
		rejectedSpans[i] = matchSpan{Pos: p}
	}
	for _, act := range mergeActions(acceptedSpans, rejectedSpans) {
		if act.useElse {
			if r.Else != nil {
				r.Else.applyElseAt(w, eng, act.span.Pos, 0, 0)
			}
			continue
		}
		w.InsertAll(act.span.Pos, expandReplacement(rep, nil))
	}
}

func (r *Rule) applyDeletion(w *word.Word, eng *Engine) {
	for i, t := range r.Tars {
		accepted, rejected := eng.MatchTarget(w, t, r.Envs, r.Excs)
		for _, act := range mergeActions(accepted, rejected) {
			if act.useElse {
				if r.Else != nil {
					r.Else.applyElseAt(w, eng, act.span.Pos, act.span.Run, i)
				}
				continue
			}
			w.DeleteRun(act.span.Pos, act.span.Run)
		}
	}
}

func (r *Rule) applySubstitution(w *word.Word, eng *Engine) {
	for i, t := range r.Tars {
		rep := repForIndex(r.Reps, i)
		accepted, rejected := eng.MatchTarget(w, t, r.Envs, r.Excs)
		for _, act := range mergeActions(accepted, rejected) {
			if act.useElse {
				if r.Else != nil {
					r.Else.applyElseAt(w, eng, act.span.Pos, act.span.Run, i)
				}
				continue
			}
			matched := tokensAt(w, act.span)
			w.Replace(act.span.Pos, act.span.Run, resolveReplacement(t.Pattern, rep, matched))
		}
	}
}

// applyElseAt applies an else-rule r (or, recursively, its own
// else-branch) at a position and run length established by the
// parent's target match — the else-rule shares the parent's target
// text verbatim, so the span is guaranteed to still apply.
func (r *Rule) applyElseAt(w *word.Word, eng *Engine, pos, run, repIdx int) {
	if r == nil {
		return
	}
	if eng.anyMatches(w, r.Excs, pos, run) {
		r.Else.applyElseAt(w, eng, pos, run, repIdx)
		return
	}
	if len(r.Envs) != 0 && !eng.anyMatches(w, r.Envs, pos, run) {
		r.Else.applyElseAt(w, eng, pos, run, repIdx)
		return
	}
	if len(r.Reps) == 0 {
		w.DeleteRun(pos, run)
		return
	}
	rep := repForIndex(r.Reps, repIdx)
	matched := append([]graph.Token{}, w.Tokens()[pos:pos+run]...)
	var tarPattern []pattern.Atom
	if repIdx >= 0 && repIdx < len(r.Tars) {
		tarPattern = r.Tars[repIdx].Pattern
	}
	w.Replace(pos, run, resolveReplacement(tarPattern, rep, matched))
}

func resolveReplacement(tarPattern, rep []pattern.Atom, matched []graph.Token) []graph.Token {
	if tarCat, repCat, ok := categoryCorrespondence(tarPattern, rep); ok && len(matched) == 1 {
		idx := tarCat.IndexOf(matched[0])
		if idx >= 0 && idx < repCat.Len() {
			return []graph.Token{repCat.At(idx)}
		}
		return matched
	}
	if isMetathesis(rep) {
		return reverseTokens(matched)
	}
	return expandReplacement(rep, matched)
}

func categoryCorrespondence(tar, rep []pattern.Atom) (*cats.Category, *cats.Category, bool) {
	if len(tar) == 1 && len(rep) == 1 && tar[0].Kind == pattern.KindCategory && rep[0].Kind == pattern.KindCategory {
		return tar[0].Cat, rep[0].Cat, true
	}
	return nil, nil, false
}

// isMetathesis reports whether rep is the literal single-atom "?"
// marker, meaning "the matched span, reversed".
func isMetathesis(rep []pattern.Atom) bool {
	return len(rep) == 1 && rep[0].Kind == pattern.KindLiteral && rep[0].Literal == "?"
}

func reverseTokens(toks []graph.Token) []graph.Token {
	out := append([]graph.Token{}, toks...)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// expandReplacement renders a replacement pattern to literal tokens,
// expanding '%' to matched (in order) and '<' to matched reversed.
func expandReplacement(rep []pattern.Atom, matched []graph.Token) []graph.Token {
	var out []graph.Token
	for _, a := range rep {
		switch a.Kind {
		case pattern.KindLiteral:
			out = append(out, a.Literal)
		case pattern.KindBoundary:
			out = append(out, graph.Boundary)
		case pattern.KindTargetRef:
			if a.Ref == pattern.RefReversed {
				out = append(out, reverseTokens(matched)...)
			} else {
				out = append(out, matched...)
			}
		case pattern.KindOptional:
			out = append(out, expandReplacement(a.Sub, matched)...)
		case pattern.KindCategory:
			if a.Cat.Len() > 0 {
				out = append(out, a.Cat.At(0))
			}
		}
	}
	return out
}

func tokensAt(w *word.Word, m matchSpan) []graph.Token {
	return append([]graph.Token{}, w.Tokens()[m.Pos:m.Pos+m.Run]...)
}
