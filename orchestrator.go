// Package clr1 is the root package of this module: it wires the grammar
// model, FIRST/FOLLOW engine, item-set builder, and table builder (C1-C4)
// together with the parse driver (C5) into the single end-to-end entry
// point described as the Orchestrator (C6).
package clr1

import (
	"github.com/rgrund/clr1/driver"
	"github.com/rgrund/clr1/grammar"
)

// Driver is the prepared, reusable result of Generate: a grammar and its
// tables, ready to parse any number of token streams. Its zero value is
// not usable — construct one with Generate.
type Driver struct {
	Grammar    *grammar.Grammar
	Collection *grammar.Collection
	Table      *grammar.Table
	First      *grammar.FirstSets
	Follow     *grammar.FollowSets

	parser *driver.Parser
}

// Generate runs C1 through C4 over rules and start, and returns a *Driver
// ready to parse token streams. It never suppresses conflicts: a grammar
// with shift/reduce or reduce/reduce ambiguities still produces a usable
// Driver, and every conflict observed while building its tables is
// reachable through Conflicts.
func Generate(rules []grammar.Rule, start string) (*Driver, error) {
	g, err := grammar.Construct(rules, start)
	if err != nil {
		return nil, err
	}

	collection, tab, first, follow, err := grammar.Analyze(g)
	if err != nil {
		return nil, err
	}

	if n := len(tab.Conflicts); n > 0 {
		tracer().Infof("grammar %q has %v unresolved-by-default conflict(s)", start, n)
	}

	return &Driver{
		Grammar:    g,
		Collection: collection,
		Table:      tab,
		First:      first,
		Follow:     follow,
		parser:     driver.NewParser(g, tab),
	}, nil
}

// Conflicts reports every ACTION-table conflict observed while building
// d's tables, in the order the table builder encountered them. An empty
// result means the grammar is conflict-free for this resolution policy.
func (d *Driver) Conflicts() []grammar.ConflictRecord {
	return d.Table.Conflicts
}

// Parse runs C5 over tokens using d's grammar and tables, returning the
// parse-tree root and derivation on success, or a *driver.ParseError on a
// rejected input. Conflicts recorded during construction (see Conflicts)
// do not change; they already influenced which action the tables chose.
func (d *Driver) Parse(tokens []string) (*driver.Node, []grammar.ID, error) {
	return d.parser.Parse(tokens)
}
