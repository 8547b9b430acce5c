package grammar

import (
	"testing"
)

type followCase struct {
	nonTerm string
	symbols []string
	eof     bool
}

func TestGenFollowSet(t *testing.T) {
	tests := []struct {
		caption string
		rules   []Rule
		start   string
		follow  []followCase
	}{
		{
			caption: "productions contain only non-empty productions",
			rules: []Rule{
				{LHS: "expr", RHS: []string{"expr", "add", "term"}},
				{LHS: "expr", RHS: []string{"term"}},
				{LHS: "term", RHS: []string{"term", "mul", "factor"}},
				{LHS: "term", RHS: []string{"factor"}},
				{LHS: "factor", RHS: []string{"l_paren", "expr", "r_paren"}},
				{LHS: "factor", RHS: []string{"id"}},
			},
			start: "expr",
			follow: []followCase{
				{nonTerm: "expr", symbols: []string{"add", "r_paren"}, eof: true},
				{nonTerm: "term", symbols: []string{"add", "mul", "r_paren"}, eof: true},
				{nonTerm: "factor", symbols: []string{"add", "mul", "r_paren"}, eof: true},
			},
		},
		{
			caption: "a production contains an empty alternative",
			rules: []Rule{
				{LHS: "s", RHS: []string{"foo", "bar"}},
				{LHS: "foo", RHS: []string{}},
				{LHS: "bar", RHS: []string{"bar_tok"}},
			},
			start: "s",
			follow: []followCase{
				{nonTerm: "s", symbols: []string{}, eof: true},
				{nonTerm: "foo", symbols: []string{"bar_tok"}},
				{nonTerm: "bar", symbols: []string{}, eof: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := mustConstruct(t, tt.rules, tt.start)
			fst, err := genFirstSet(g.productionSet)
			if err != nil {
				t.Fatalf("genFirstSet failed: %v", err)
			}
			flw, err := genFollowSet(g.productionSet, fst, g.Start())
			if err != nil {
				t.Fatalf("genFollowSet failed: %v", err)
			}

			for _, c := range tt.follow {
				sym := mustSymbol(t, g, c.nonTerm)

				actual, err := flw.find(sym)
				if err != nil {
					t.Fatalf("failed to get FOLLOW for %v: %v", c.nonTerm, err)
				}

				expected := newFollowEntry()
				if c.eof {
					expected.addEOF()
				}
				for _, text := range c.symbols {
					expected.add(mustSymbol(t, g, text))
				}

				testFollow(t, c.nonTerm, actual, expected)
			}
		})
	}
}

func testFollow(t *testing.T, nonTerm string, actual, expected *followEntry) {
	t.Helper()

	if actual.eof != expected.eof {
		t.Errorf("%v: eof is mismatched; want: %v, got: %v", nonTerm, expected.eof, actual.eof)
	}
	if len(actual.symbols) != len(expected.symbols) {
		t.Fatalf("%v: unexpected FOLLOW set; want: %+v, got: %+v", nonTerm, expected.symbols, actual.symbols)
	}
	for sym := range expected.symbols {
		if _, ok := actual.symbols[sym]; !ok {
			t.Fatalf("%v: invalid FOLLOW set; want: %+v, got: %+v", nonTerm, expected.symbols, actual.symbols)
		}
	}
}
