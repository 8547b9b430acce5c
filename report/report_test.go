package report

import (
	"strings"
	"testing"

	"github.com/rgrund/clr1/grammar"
)

func TestWriteConflictFreeGrammar(t *testing.T) {
	rules := []grammar.Rule{
		{LHS: "E", RHS: []string{"E", "add", "T"}},
		{LHS: "E", RHS: []string{"T"}},
		{LHS: "T", RHS: []string{"id"}},
	}
	g, err := grammar.Construct(rules, "E")
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	c, tab, first, follow, err := grammar.Analyze(g)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var sb strings.Builder
	if err := Write(&sb, g, c, tab, first, follow); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"No conflict was detected.",
		"E →",
		"T →",
		"id",
		"FIRST(E) = { id }",
		"FIRST(T) = { id }",
		"FOLLOW(E) = { add $ }",
		"## State 0",
		"accept on $",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q; full report:\n%v", want, out)
		}
	}
}

func TestWriteReportsConflicts(t *testing.T) {
	rules := []grammar.Rule{
		{LHS: "S", RHS: []string{"A"}},
		{LHS: "S", RHS: []string{"B"}},
		{LHS: "A", RHS: []string{"x"}},
		{LHS: "B", RHS: []string{"x"}},
	}
	g, err := grammar.Construct(rules, "S")
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	c, tab, first, follow, err := grammar.Analyze(g)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(tab.Conflicts) != 1 {
		t.Fatalf("want 1 conflict, got %v", len(tab.Conflicts))
	}

	var sb strings.Builder
	if err := Write(&sb, g, c, tab, first, follow); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "1 conflict detected.") {
		t.Fatalf("want a singular conflict summary line; full report:\n%v", out)
	}
	if !strings.Contains(out, "reduce/reduce conflict on $") {
		t.Fatalf("want a reduce/reduce conflict line; full report:\n%v", out)
	}
	if !strings.Contains(out, "FIRST(S) = { x }") {
		t.Fatalf("want a FIRST(S) line; full report:\n%v", out)
	}
	if !strings.Contains(out, "FOLLOW(A) = { $ }") {
		t.Fatalf("want a FOLLOW(A) line; full report:\n%v", out)
	}
}
