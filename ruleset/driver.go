package ruleset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/orthogram/sce/cats"
	"github.com/orthogram/sce/graph"
	"github.com/orthogram/sce/rule"
	"github.com/orthogram/sce/word"
)

// ParseRuleset splits source into lines and turns each non-empty one
// into either a category-store edit (applied immediately against
// store) or a parsed Rule. A malformed line produces a Diagnostic
// carrying its 1-based line number and is skipped; parsing continues
// with the remaining lines.
func ParseRuleset(source string, store *cats.Store, alpha graph.Alphabet) ([]*rule.Rule, []Diagnostic) {
	return ParseRulesetWithDefaults(source, store, alpha, rule.DefaultFlags())
}

// ParseRulesetWithDefaults parses like ParseRuleset, but a rule clause
// that omits a given flag starts from defaults' value for it instead
// of the engine's built-in defaults — the hook a caller's Config uses
// to change, say, the default repeat count ruleset-wide.
func ParseRulesetWithDefaults(source string, store *cats.Store, alpha graph.Alphabet, defaults rule.Flags) ([]*rule.Rule, []Diagnostic) {
	var rules []*rule.Rule
	var diags []Diagnostic
	for i, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if idx := strings.IndexByte(line, '='); idx != -1 {
			if err := applyCategoryEdit(line, idx, store); err != nil {
				diags = append(diags, Diagnostic{Line: i + 1, Message: err.Error()})
			}
			continue
		}
		r, err := rule.ParseRuleWithDefaults(line, store, alpha, defaults)
		if err != nil {
			diags = append(diags, Diagnostic{Line: i + 1, Message: err.Error()})
			continue
		}
		rules = append(rules, r)
	}
	return rules, diags
}

// applyCategoryEdit dispatches a line containing an '=' (anywhere in
// the line, brackets included) to
// the store's Define ("name = vals"), Augment ("name += vals"), or
// Reduce ("name -= vals") operation, splitting vals on commas and
// whitespace alike.
func applyCategoryEdit(line string, eqIdx int, store *cats.Store) error {
	op := "="
	nameEnd := eqIdx
	if eqIdx > 0 && (line[eqIdx-1] == '+' || line[eqIdx-1] == '-') {
		op = string(line[eqIdx-1]) + "="
		nameEnd = eqIdx - 1
	}
	name := strings.TrimSpace(line[:nameEnd])
	vals := splitValues(line[eqIdx+1:])
	switch op {
	case "+=":
		return store.Augment(name, vals)
	case "-=":
		return store.Reduce(name, vals)
	default:
		return store.Define(name, vals)
	}
}

func splitValues(text string) []string {
	return strings.Fields(strings.ReplaceAll(text, ",", " "))
}

// Apply drives §4.G's application loop: for each rule in order, it
// joins the "active" set, and every active rule (newest first) is
// applied to every word up to its repeat count, stopping early on
// ErrWordUnchanged. After each rule's pass, every active rule's age is
// decremented and rules reaching age zero are dropped. ctx is checked
// once per word, between words, never mid-rule — cancelling a large
// batch does not interrupt a single rule application.
func Apply(ctx context.Context, words []*word.Word, rules []*rule.Rule) ([]*word.Word, error) {
	eng := rule.NewEngine()
	active := doublylinkedlist.New()
	for _, r := range rules {
		active.Add(r)
		for _, w := range words {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			snapshot := active.Values()
			for i := len(snapshot) - 1; i >= 0; i-- {
				s := snapshot[i].(*rule.Rule)
				for k := 0; k < s.Flags.Repeat(); k++ {
					if err := s.Apply(w, eng); err != nil {
						if errors.Is(err, rule.ErrWordUnchanged) {
							break
						}
						return nil, fmt.Errorf("applying rule %q to word %q: %w", s.Source, w.String(), err)
					}
				}
			}
			tracer().Debugf("after rule %q joined: word = %s", r.Source, w.String())
		}
		snapshot := active.Values()
		for i := len(snapshot) - 1; i >= 0; i-- {
			s := snapshot[i].(*rule.Rule)
			s.Flags = s.Flags.DecrementAge()
			if s.Flags.Age() <= 0 {
				active.Remove(i)
			}
		}
	}
	return words, nil
}
