package pattern

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/orthogram/sce/cats"
	"github.com/orthogram/sce/graph"
)

func setup(t *testing.T) (*cats.Store, graph.Alphabet) {
	teardown := gotestingadapter.QuickConfig(t, "sce.pattern")
	t.Cleanup(teardown)
	store := cats.NewStore()
	if err := store.Define("V", []string{"a", "e", "i", "o", "u"}); err != nil {
		t.Fatalf("Define(V): %v", err)
	}
	if err := store.Define("C", []string{"p", "t", "k", "s"}); err != nil {
		t.Fatalf("Define(C): %v", err)
	}
	return store, graph.Alphabet{Separator: graph.DefaultSeparator}
}

func TestParseLiteral(t *testing.T) {
	store, alpha := setup(t)
	atoms, err := Parse("kata", store, alpha)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(atoms) != 4 {
		t.Fatalf("got %d atoms, want 4", len(atoms))
	}
	for _, a := range atoms {
		if a.Kind != KindLiteral {
			t.Fatalf("atom %+v not a literal", a)
		}
	}
}

func TestParseBoundaryAndWildcard(t *testing.T) {
	store, alpha := setup(t)
	atoms, err := Parse("# * a", store, alpha)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(atoms) != 3 || atoms[0].Kind != KindBoundary || atoms[1].Kind != KindWildcard {
		t.Fatalf("unexpected atoms: %+v", atoms)
	}
}

func TestParseCategory(t *testing.T) {
	store, alpha := setup(t)
	atoms, err := Parse("[V]", store, alpha)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(atoms) != 1 || atoms[0].Kind != KindCategory {
		t.Fatalf("unexpected atoms: %+v", atoms)
	}
	if atoms[0].Cat.Len() != 5 {
		t.Fatalf("category length = %d, want 5", atoms[0].Cat.Len())
	}
}

func TestParseNonceCategory(t *testing.T) {
	store, alpha := setup(t)
	atoms, err := Parse("[p,t,k]", store, alpha)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if atoms[0].Cat.Len() != 3 {
		t.Fatalf("category length = %d, want 3", atoms[0].Cat.Len())
	}
}

func TestParseOptional(t *testing.T) {
	store, alpha := setup(t)
	atoms, err := Parse("a(b)c", store, alpha)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(atoms) != 3 || atoms[1].Kind != KindOptional {
		t.Fatalf("unexpected atoms: %+v", atoms)
	}
	if len(atoms[1].Sub) != 1 || atoms[1].Sub[0].Literal != "b" {
		t.Fatalf("optional sub-pattern wrong: %+v", atoms[1].Sub)
	}
}

func TestParseUnbalancedBracketsFails(t *testing.T) {
	store, alpha := setup(t)
	if _, err := Parse("[V", store, alpha); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestParseMixedBracketOverlapFails(t *testing.T) {
	store, alpha := setup(t)
	if _, err := Parse("(a[b)c]", store, alpha); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat for mixed overlap, got %v", err)
	}
}

func TestParseSubsetSyntaxRejected(t *testing.T) {
	store, alpha := setup(t)
	if _, err := Parse("{a,b}", store, alpha); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat for subset syntax, got %v", err)
	}
}

func TestParseTargetsCountSelector(t *testing.T) {
	store, alpha := setup(t)
	targets, err := ParseTargets("a@0|2, b", store, alpha)
	if err != nil {
		t.Fatalf("ParseTargets: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if len(targets[0].Counts) != 2 || targets[0].Counts[0] != 0 || targets[0].Counts[1] != 2 {
		t.Fatalf("unexpected counts: %+v", targets[0].Counts)
	}
	if targets[1].Counts != nil {
		t.Fatalf("expected no count selector on second target, got %+v", targets[1].Counts)
	}
}

func TestParseReplacementsRejectsOptional(t *testing.T) {
	store, alpha := setup(t)
	if _, err := ParseReplacements("a(b)", store, alpha); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestParseEnvironmentsTwoElementForm(t *testing.T) {
	store, alpha := setup(t)
	envs, err := ParseEnvironments("#_", store, alpha)
	if err != nil {
		t.Fatalf("ParseEnvironments: %v", err)
	}
	if len(envs) != 1 || envs[0].Single {
		t.Fatalf("unexpected environments: %+v", envs)
	}
	if len(envs[0].Left) != 1 || envs[0].Left[0].Kind != KindBoundary {
		t.Fatalf("left side wrong: %+v", envs[0].Left)
	}
	if len(envs[0].Right) != 0 {
		t.Fatalf("right side should be empty: %+v", envs[0].Right)
	}
}

func TestParseEnvironmentsAnywhereForm(t *testing.T) {
	store, alpha := setup(t)
	envs, err := ParseEnvironments("k", store, alpha)
	if err != nil {
		t.Fatalf("ParseEnvironments: %v", err)
	}
	if len(envs) != 1 || !envs[0].Single {
		t.Fatalf("expected anywhere-form environment, got %+v", envs)
	}
}

func TestParseEnvironmentsTildeShorthand(t *testing.T) {
	store, alpha := setup(t)
	envs, err := ParseEnvironments("~k", store, alpha)
	if err != nil {
		t.Fatalf("ParseEnvironments: %v", err)
	}
	if len(envs) != 2 {
		t.Fatalf("expected tilde shorthand to expand to 2 environments, got %d", len(envs))
	}
}

func TestParseEnvironmentsPipeSplits(t *testing.T) {
	store, alpha := setup(t)
	envs, err := ParseEnvironments("a_b|c_d", store, alpha)
	if err != nil {
		t.Fatalf("ParseEnvironments: %v", err)
	}
	if len(envs) != 2 {
		t.Fatalf("got %d environments, want 2", len(envs))
	}
}

func TestParseFeatureFilteredCategory(t *testing.T) {
	store, alpha := setup(t)
	cat, _ := store.Lookup("V")
	cat.SetFeature("front", []graph.Token{"e", "i"})
	atoms, err := Parse("[V+front]", store, alpha)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if atoms[0].Cat.Len() != 2 {
		t.Fatalf("feature-filtered category length = %d, want 2", atoms[0].Cat.Len())
	}
}

func TestParseUnknownCategoryFails(t *testing.T) {
	store, alpha := setup(t)
	if _, err := Parse("[Z]", store, alpha); !errors.Is(err, cats.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestParseTargetRefs(t *testing.T) {
	store, alpha := setup(t)
	atoms, err := Parse("% <", store, alpha)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(atoms) != 2 || atoms[0].Ref != RefMatch || atoms[1].Ref != RefReversed {
		t.Fatalf("unexpected atoms: %+v", atoms)
	}
}
