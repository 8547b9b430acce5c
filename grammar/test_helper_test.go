package grammar

import (
	"testing"

	"github.com/rgrund/clr1/grammar/symbol"
)

func mustConstruct(t *testing.T, rules []Rule, start string) *Grammar {
	t.Helper()

	g, err := Construct(rules, start)
	if err != nil {
		t.Fatalf("failed to construct grammar: %v", err)
	}
	return g
}

func mustSymbol(t *testing.T, g *Grammar, text string) symbol.Symbol {
	t.Helper()

	sym, ok := g.SymbolTable().ToSymbol(text)
	if !ok {
		t.Fatalf("symbol was not found: %v", text)
	}
	return sym
}

// findProduction locates the production with the given LHS and RHS texts,
// failing the test if none or more than one matches.
func findProduction(t *testing.T, g *Grammar, lhs string, rhs ...string) *Production {
	t.Helper()

	lhsSym := mustSymbol(t, g, lhs)
	rhsSyms := make([]symbol.Symbol, len(rhs))
	for i, text := range rhs {
		rhsSyms[i] = mustSymbol(t, g, text)
	}

	for _, p := range g.ProductionsFor(lhsSym) {
		if len(p.rhs) != len(rhsSyms) {
			continue
		}
		match := true
		for i, s := range p.rhs {
			if s != rhsSyms[i] {
				match = false
				break
			}
		}
		if match {
			return p
		}
	}

	t.Fatalf("production not found: %v -> %v", lhs, rhs)
	return nil
}
