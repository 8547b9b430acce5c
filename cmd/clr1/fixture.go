package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rgrund/clr1/grammar"
)

// fixture is the CLI's input format: a grammar (productions plus a start
// symbol) and, for the parse subcommand, a token stream to run against it.
// There is no grammar DSL or lexer here — the generator consumes already
// structured data, so a fixture is just its JSON encoding.
type fixture struct {
	Start       string        `json:"start"`
	Productions []fixtureRule `json:"productions"`
	Tokens      []string      `json:"tokens,omitempty"`
}

type fixtureRule struct {
	LHS string   `json:"lhs"`
	RHS []string `json:"rhs"`
}

func readFixture(path string) (*fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open fixture %v: %w", path, err)
	}
	defer f.Close()

	var fx fixture
	if err := json.NewDecoder(f).Decode(&fx); err != nil {
		return nil, fmt.Errorf("cannot decode fixture %v: %w", path, err)
	}
	return &fx, nil
}

func (fx *fixture) rules() []grammar.Rule {
	rules := make([]grammar.Rule, len(fx.Productions))
	for i, p := range fx.Productions {
		rules[i] = grammar.Rule{LHS: p.LHS, RHS: p.RHS}
	}
	return rules
}
