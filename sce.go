package sce

import (
	"context"

	"github.com/orthogram/sce/cats"
	"github.com/orthogram/sce/graph"
	"github.com/orthogram/sce/rule"
	"github.com/orthogram/sce/ruleset"
	"github.com/orthogram/sce/word"
)

// Ruleset is a parsed, ready-to-apply sequence of rules together with
// the category store they were parsed against. A Ruleset is built by
// ParseRuleset and consumed by ApplyRuleset; its Store is exposed so a
// caller (e.g. cmd/scerepl) can keep feeding it further category edits
// or rules incrementally, as §4.G's driver does line by line.
type Ruleset struct {
	Store *cats.Store
	Rules []*rule.Rule
	Diags []ruleset.Diagnostic
}

// Tokenize segments text into graphemes under cfg's alphabet, per
// §4.A / §6.
func Tokenize(text string, cfg Config) []graph.Token {
	return graph.Tokenize(text, cfg.Alphabet())
}

// Render reconstructs orthographic text from tokens, the inverse of
// Tokenize.
func Render(tokens []graph.Token, cfg Config) string {
	return graph.Render(tokens, cfg.Alphabet())
}

// ParseRuleset parses ruleset source text into a Ruleset: a fresh
// category store seeded by the source's own category-definition
// lines, and the sequence of rules those lines interleave with, per
// §4.G. Malformed lines are isolated as Diagnostics rather than
// aborting the parse.
func ParseRuleset(source string, cfg Config) (*Ruleset, []ruleset.Diagnostic) {
	store := cats.NewStore()
	rules, diags := ruleset.ParseRulesetWithDefaults(source, store, cfg.Alphabet(), cfg.Flags())
	return &Ruleset{Store: store, Rules: rules, Diags: diags}, diags
}

// ExtendRuleset parses additional ruleset source against an existing
// Ruleset's category store, appending any newly parsed rules to it.
// This is the entry point an incremental caller (a REPL, or a driver
// replaying a language description one ruleset file at a time) uses
// to keep growing the same rule list and store rather than starting a
// fresh one.
func ExtendRuleset(rs *Ruleset, source string, cfg Config) []ruleset.Diagnostic {
	rules, diags := ruleset.ParseRulesetWithDefaults(source, rs.Store, cfg.Alphabet(), cfg.Flags())
	rs.Rules = append(rs.Rules, rules...)
	rs.Diags = append(rs.Diags, diags...)
	return diags
}

// ApplyRuleset tokenizes words under cfg's alphabet, drives rs's rules
// over them per §4.G's newest-first repeat/age application loop, and
// renders the results back to orthographic text, in input order, per
// §6's apply_ruleset entry point.
func ApplyRuleset(words []string, rs *Ruleset, cfg Config) ([]string, error) {
	return ApplyRulesetContext(context.Background(), words, rs, cfg)
}

// ApplyRulesetContext is ApplyRuleset with an explicit context, for a
// caller embedding the engine in a server that wants to cancel a very
// large batch between words (never mid-rule — see §5).
func ApplyRulesetContext(ctx context.Context, words []string, rs *Ruleset, cfg Config) ([]string, error) {
	alpha := cfg.Alphabet()
	ws := make([]*word.Word, len(words))
	for i, s := range words {
		ws[i] = word.New(graph.Tokenize(s, alpha))
	}
	out, err := ruleset.Apply(ctx, ws, rs.Rules)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(out))
	for i, w := range out {
		res[i] = graph.Render(w.Tokens(), alpha)
	}
	return res, nil
}
