package sce

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func setupTrace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sce.sce")
	t.Cleanup(teardown)
}

// TestSixScenarios runs the six canonical acceptance scenarios of §8
// end to end through the public API: ParseRuleset then ApplyRuleset.
func TestSixScenarios(t *testing.T) {
	setupTrace(t)
	cases := []struct {
		name   string
		source string
		words  []string
		want   []string
	}{
		{
			name:   "substitution",
			source: "a > b",
			words:  []string{"a"},
			want:   []string{"b"},
		},
		{
			name:   "epenthesis",
			source: "+ b / _ #",
			words:  []string{"a"},
			want:   []string{"ab"},
		},
		{
			name:   "deletion",
			source: "- b",
			words:  []string{"ab"},
			want:   []string{"a"},
		},
		{
			name:   "category deletion at boundary",
			source: "V = a,e,i,o,u\n[V] > / _ #",
			words:  []string{"kata"},
			want:   []string{"kat"},
		},
		{
			name:   "metathesis",
			source: "V = a,i,u\nN = m,n\n[V][N] > ?",
			words:  []string{"pan"},
			want:   []string{"pna"},
		},
		{
			name:   "else branch",
			source: "a > e / _ i > o / _ u",
			words:  []string{"ai", "au", "aa"},
			want:   []string{"ei", "ou", "aa"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := NewConfig()
			rs, diags := ParseRuleset(c.source, cfg)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			got, err := ApplyRuleset(c.words, rs, cfg)
			if err != nil {
				t.Fatalf("ApplyRuleset: %v", err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("got %v, want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("word %d: got %q, want %q", i, got[i], c.want[i])
				}
			}
		})
	}
}

// TestTokenizeRoundTrip checks Testable Property 1: Tokenize is
// idempotent when serialized back (Render) and retokenized under the
// same polygraph set.
func TestTokenizeRoundTrip(t *testing.T) {
	setupTrace(t)
	cfg := NewConfig(WithPolygraphs("ng", "kw"))
	for _, text := range []string{"singing", "kwala", "banana"} {
		toks := Tokenize(text, cfg)
		rendered := Render(toks, cfg)
		again := Tokenize(rendered, cfg)
		if len(toks) != len(again) {
			t.Fatalf("%q: round trip changed length: %v vs %v", text, toks, again)
		}
		for i := range toks {
			if toks[i] != again[i] {
				t.Fatalf("%q: round trip mismatch at %d: %v vs %v", text, i, toks, again)
			}
		}
	}
}

// TestExtendRulesetSharesStore exercises the incremental entry point a
// REPL front-end needs: categories defined in one chunk of source are
// visible to rules parsed from a later chunk against the same Ruleset.
func TestExtendRulesetSharesStore(t *testing.T) {
	setupTrace(t)
	cfg := NewConfig()
	rs, diags := ParseRuleset("V = a,e,i,o,u", cfg)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if diags := ExtendRuleset(rs, "[V] > e", cfg); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(rs.Rules) != 1 {
		t.Fatalf("expected 1 rule after extension, got %d", len(rs.Rules))
	}
	got, err := ApplyRuleset([]string{"kita"}, rs, cfg)
	if err != nil {
		t.Fatalf("ApplyRuleset: %v", err)
	}
	if got[0] != "kete" {
		t.Fatalf("got %q, want %q", got[0], "kete")
	}
}

// TestDefaultRepeatFlowsFromConfig checks that Config's default rule
// flags reach rules whose source omits an explicit clause.
func TestDefaultRepeatFlowsFromConfig(t *testing.T) {
	setupTrace(t)
	cfg := NewConfig(WithDefaultRepeat(3))
	rs, diags := ParseRuleset("a > b", cfg)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if rs.Rules[0].Flags.Repeat() != 3 {
		t.Fatalf("Repeat() = %d, want 3", rs.Rules[0].Flags.Repeat())
	}
}
