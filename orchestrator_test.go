package clr1

import (
	"testing"

	"github.com/rgrund/clr1/driver"
	"github.com/rgrund/clr1/grammar"
)

// Scenario C (spec §8): a classical expression grammar with precedence
// encoded structurally (no #prec/#assoc directives — this grammar has
// none) parses "id * id + id" as (id * id) + id.
func TestGenerateScenarioC(t *testing.T) {
	rules := []grammar.Rule{
		{LHS: "E", RHS: []string{"E", "add", "T"}},
		{LHS: "E", RHS: []string{"T"}},
		{LHS: "T", RHS: []string{"T", "mul", "F"}},
		{LHS: "T", RHS: []string{"F"}},
		{LHS: "F", RHS: []string{"id"}},
	}
	d, err := Generate(rules, "E")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(d.Conflicts()) != 0 {
		t.Fatalf("want a conflict-free grammar, got %v", d.Conflicts())
	}

	tree, _, err := d.Parse([]string{"id", "mul", "id", "add", "id"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The root E -> E add T must have T reduced from the single trailing
	// "id", and its left child E -> T must in turn have T reduced from the
	// "id mul id" subtree — i.e. multiplication binds tighter.
	if len(tree.Children) != 3 {
		t.Fatalf("want E -> E add T at the root, got %v children", len(tree.Children))
	}
	left, plus := tree.Children[0], tree.Children[1]
	if plus.Text != "add" {
		t.Fatalf("want the root's middle child to be the add token, got %+v", plus)
	}
	if len(left.Yield()) != 3 {
		t.Fatalf("want the left subtree to yield \"id mul id\", got %v", left.Yield())
	}
}

// Scenario D (spec §8): the dangling-else grammar S -> iCtS | iCtSeS | a,
// C -> b produces a shift/reduce conflict on "e", resolved toward shift,
// and still parses the classic ambiguous "i b t i b t a e a" construct.
func TestGenerateScenarioD(t *testing.T) {
	rules := []grammar.Rule{
		{LHS: "S", RHS: []string{"i", "C", "t", "S"}},
		{LHS: "S", RHS: []string{"i", "C", "t", "S", "e", "S"}},
		{LHS: "S", RHS: []string{"a"}},
		{LHS: "C", RHS: []string{"b"}},
	}
	d, err := Generate(rules, "S")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var sr []grammar.ConflictRecord
	for _, c := range d.Conflicts() {
		if c.Kind == grammar.ConflictShiftReduce {
			sr = append(sr, c)
		}
	}
	if len(sr) == 0 {
		t.Fatal("want at least one shift/reduce conflict on the dangling else")
	}
	for _, c := range sr {
		if c.Kept.Kind != grammar.ActionShift {
			t.Fatalf("shift/reduce conflict %v resolved without keeping a shift", c)
		}
	}

	_, _, err = d.Parse([]string{"i", "b", "t", "i", "b", "t", "a", "e", "a"})
	if err != nil {
		t.Fatalf("the dangling-else construct must still parse (shift wins): %v", err)
	}
}

func TestGenerateRejectsInvalidGrammar(t *testing.T) {
	_, err := Generate(nil, "s")
	var ig *grammar.InvalidGrammar
	if err == nil {
		t.Fatal("want an error for an empty production list")
	}
	if !asInvalidGrammar(err, &ig) {
		t.Fatalf("want *grammar.InvalidGrammar, got %T: %v", err, err)
	}
	if ig.Reason != grammar.ReasonEmpty {
		t.Fatalf("want reason %v, got %v", grammar.ReasonEmpty, ig.Reason)
	}
}

func TestDriverParseErrorIsObservable(t *testing.T) {
	rules := []grammar.Rule{
		{LHS: "S", RHS: []string{"a"}},
	}
	d, err := Generate(rules, "S")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	_, _, err = d.Parse([]string{"b"})
	if err == nil {
		t.Fatal("want a rejected parse")
	}
	var perr *driver.ParseError
	if !asParseError(err, &perr) {
		t.Fatalf("want *driver.ParseError, got %T: %v", err, err)
	}
}

func asInvalidGrammar(err error, target **grammar.InvalidGrammar) bool {
	ig, ok := err.(*grammar.InvalidGrammar)
	if !ok {
		return false
	}
	*target = ig
	return true
}

func asParseError(err error, target **driver.ParseError) bool {
	perr, ok := err.(*driver.ParseError)
	if !ok {
		return false
	}
	*target = perr
	return true
}
