package grammar

import (
	"errors"
	"testing"
)

func TestConstruct(t *testing.T) {
	rules := []Rule{
		{LHS: "expr", RHS: []string{"expr", "add", "term"}},
		{LHS: "expr", RHS: []string{"term"}},
		{LHS: "term", RHS: []string{"id"}},
	}

	g, err := Construct(rules, "expr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("augmentation production is ID 0", func(t *testing.T) {
		aug := g.Augmented()
		if aug == nil {
			t.Fatal("augmented production not found")
		}
		if aug.ID() != idAugmented {
			t.Fatalf("want ID 0, got %v", aug.ID())
		}
		if aug.LHS() != g.AugmentedStart() {
			t.Fatal("augmentation LHS must be the augmented start symbol")
		}
		if len(aug.RHS()) != 1 || aug.RHS()[0] != g.Start() {
			t.Fatal("augmentation RHS must be exactly the original start symbol")
		}
	})

	t.Run("remaining productions are numbered contiguously from 1 in input order", func(t *testing.T) {
		all := g.Productions()
		if len(all) != len(rules)+1 {
			t.Fatalf("want %v productions, got %v", len(rules)+1, len(all))
		}
		for i, r := range rules {
			p := findProduction(t, g, r.LHS, r.RHS...)
			if p.ID().Int() != i+1 {
				t.Fatalf("production %v -> %v: want ID %v, got %v", r.LHS, r.RHS, i+1, p.ID())
			}
		}
	})

	t.Run("symbols are classified terminal or non-terminal by LHS membership", func(t *testing.T) {
		if !mustSymbol(t, g, "expr").IsNonTerminal() {
			t.Fatal("expr must be a non-terminal")
		}
		if !mustSymbol(t, g, "term").IsNonTerminal() {
			t.Fatal("term must be a non-terminal")
		}
		if !mustSymbol(t, g, "add").IsTerminal() {
			t.Fatal("add must be a terminal")
		}
		if !mustSymbol(t, g, "id").IsTerminal() {
			t.Fatal("id must be a terminal")
		}
	})

	t.Run("augmented start does not collide with an existing symbol", func(t *testing.T) {
		augSym, ok := g.SymbolTable().ToSymbol("expr'")
		if !ok {
			t.Fatal("expected synthesized start symbol \"expr'\"")
		}
		if augSym != g.AugmentedStart() {
			t.Fatal("synthesized start symbol mismatch")
		}
	})
}

func TestConstructSynthesizesAugmentedNameAroundCollision(t *testing.T) {
	rules := []Rule{
		{LHS: "expr", RHS: []string{"expr'"}},
		{LHS: "expr'", RHS: []string{"id"}},
	}

	g, err := Construct(rules, "expr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, ok := g.SymbolTable().ToText(g.AugmentedStart())
	if !ok {
		t.Fatal("augmented start has no text representation")
	}
	if text != "expr''" {
		t.Fatalf("want \"expr''\", got %q", text)
	}
}

func TestConstructRejectsEmptyProductionList(t *testing.T) {
	_, err := Construct(nil, "s")
	assertInvalidGrammar(t, err, ReasonEmpty)
}

func TestConstructRejectsUnknownStart(t *testing.T) {
	rules := []Rule{
		{LHS: "s", RHS: []string{"a"}},
	}
	_, err := Construct(rules, "not_s")
	assertInvalidGrammar(t, err, ReasonUnknownStart)
}

func TestConstructRejectsReservedSymbolsInRHS(t *testing.T) {
	tests := []string{"$", "ε"}
	for _, reserved := range tests {
		t.Run(reserved, func(t *testing.T) {
			rules := []Rule{
				{LHS: "s", RHS: []string{reserved}},
			}
			_, err := Construct(rules, "s")
			assertInvalidGrammar(t, err, ReasonReservedInRHS)
		})
	}
}

func assertInvalidGrammar(t *testing.T, err error, reason InvalidGrammarReason) {
	t.Helper()

	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	var ig *InvalidGrammar
	if !errors.As(err, &ig) {
		t.Fatalf("want *InvalidGrammar, got %T: %v", err, err)
	}
	if ig.Reason != reason {
		t.Fatalf("want reason %v, got %v", reason, ig.Reason)
	}
}
