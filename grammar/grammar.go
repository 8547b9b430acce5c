package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgrund/clr1/grammar/symbol"
)

// Rule is a single `LHS → RHS` rule as supplied by a caller, before symbols
// have been interned (spec §4.1, §6).
type Rule struct {
	LHS string
	RHS []string
}

// Grammar is a fully validated, augmented context-free grammar: the output
// of C1 (spec §4.1) and the input to every later component.
type Grammar struct {
	symbolTable   *symbol.Table
	productionSet *productionSet

	start          symbol.Symbol // the caller's original start symbol, e.g. S
	augmentedStart symbol.Symbol // the synthesized S', LHS of production 0
}

// SymbolTable gives read access to the grammar's interned symbols.
func (g *Grammar) SymbolTable() *symbol.Reader {
	return g.symbolTable.Reader()
}

// Start returns the caller's original start symbol (not the augmented S').
func (g *Grammar) Start() symbol.Symbol {
	return g.start
}

// AugmentedStart returns S', the LHS of the augmentation production.
func (g *Grammar) AugmentedStart() symbol.Symbol {
	return g.augmentedStart
}

// Augmented returns the augmentation production `S' → S`, always ID 0.
func (g *Grammar) Augmented() *Production {
	p, _ := g.productionSet.findByID(idAugmented)
	return p
}

// Productions returns every production, including the augmentation, in ID
// order (spec §4.1 rule 6: augmentation is 0, the rest are contiguous from 1
// in input order).
func (g *Grammar) Productions() []*Production {
	return g.productionSet.all()
}

// ProductionByID looks up a production by its stable numeric ID.
func (g *Grammar) ProductionByID(id ID) (*Production, bool) {
	return g.productionSet.findByID(id)
}

// ProductionsFor returns every production whose LHS is lhs, in input order.
func (g *Grammar) ProductionsFor(lhs symbol.Symbol) []*Production {
	prods, _ := g.productionSet.findByLHS(lhs)
	return prods
}

// Construct validates rules and start against the six construction-time
// rules of spec §4.1 and, on success, returns the augmented grammar.
//
// The rules, in the order they are checked:
//  1. rules must be non-empty.
//  2. start must appear as the LHS of at least one rule.
//  3. no RHS symbol may spell the reserved names `$` or `ε`.
//  4. every RHS symbol is classified a non-terminal if it appears as some
//     LHS, a terminal otherwise — so every RHS symbol is automatically one
//     or the other.
//  5. a synthesized start symbol S' (never colliding with a caller symbol)
//     is registered and an augmentation production `S' → S` is prepended.
//  6. the augmentation production is numbered 0; the rest are numbered
//     contiguously from 1, in the order supplied.
func Construct(rules []Rule, start string) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, newInvalidGrammar(ReasonEmpty, "no productions were supplied")
	}

	lhsTexts := map[string]struct{}{}
	for _, r := range rules {
		if r.LHS == "" {
			return nil, newInvalidGrammar(ReasonEmpty, "a production has an empty LHS")
		}
		lhsTexts[r.LHS] = struct{}{}
	}

	if _, ok := lhsTexts[start]; !ok {
		return nil, newInvalidGrammar(ReasonUnknownStart, fmt.Sprintf("%q is not the LHS of any production", start))
	}

	for _, r := range rules {
		for _, s := range r.RHS {
			if s == symbol.NameEOF || s == nameEmpty {
				return nil, newInvalidGrammar(ReasonReservedInRHS, fmt.Sprintf("%q cannot appear on a RHS", s))
			}
		}
	}

	augStartText := synthesizeAugmentedName(start, lhsTexts, rules)

	tab := symbol.NewTable()
	w := tab.Writer()
	augStartSym := w.RegisterStart(augStartText)

	startSym, err := w.RegisterNonTerminal(start)
	if err != nil {
		return nil, fmt.Errorf("registering start symbol: %w", err)
	}
	for _, r := range rules {
		if _, err := w.RegisterNonTerminal(r.LHS); err != nil {
			return nil, fmt.Errorf("registering LHS %q: %w", r.LHS, err)
		}
	}
	for _, r := range rules {
		for _, s := range r.RHS {
			if _, isNonTerm := lhsTexts[s]; isNonTerm {
				continue
			}
			if _, err := w.RegisterTerminal(s); err != nil {
				return nil, fmt.Errorf("registering terminal %q: %w", s, err)
			}
		}
	}

	prods := newProductionSet()
	augProd, err := newProduction(idAugmented, augStartSym, []symbol.Symbol{startSym})
	if err != nil {
		return nil, fmt.Errorf("building augmentation production: %w", err)
	}
	prods.append(augProd)

	for i, r := range rules {
		lhsSym, ok := tab.Reader().ToSymbol(r.LHS)
		if !ok {
			return nil, fmt.Errorf("internal: LHS %q was not registered", r.LHS)
		}
		rhsSyms := make([]symbol.Symbol, len(r.RHS))
		for j, s := range r.RHS {
			sym, ok := tab.Reader().ToSymbol(s)
			if !ok {
				return nil, fmt.Errorf("internal: RHS symbol %q was not registered", s)
			}
			rhsSyms[j] = sym
		}
		p, err := newProduction(ID(i+1), lhsSym, rhsSyms)
		if err != nil {
			return nil, fmt.Errorf("building production %v: %w", i+1, err)
		}
		prods.append(p)
	}

	if ps, ok := prods.findByLHS(startSym); !ok || len(ps) == 0 {
		return nil, newInvalidGrammar(ReasonStartHasNoProduction, fmt.Sprintf("%q has no production", start))
	}

	g := &Grammar{
		symbolTable:    tab,
		productionSet:  prods,
		start:          startSym,
		augmentedStart: augStartSym,
	}

	tracer().Debugf("constructed grammar: %v productions, start %v", len(prods.all()), start)

	return g, nil
}

const nameEmpty = "ε"

// synthesizeAugmentedName returns start + "'", adding more primes until the
// result collides with no symbol text already present in rules.
func synthesizeAugmentedName(start string, lhsTexts map[string]struct{}, rules []Rule) string {
	known := map[string]struct{}{}
	for lhs := range lhsTexts {
		known[lhs] = struct{}{}
	}
	for _, r := range rules {
		for _, s := range r.RHS {
			known[s] = struct{}{}
		}
	}

	candidate := start
	for {
		candidate += "'"
		if _, collides := known[candidate]; !collides {
			return candidate
		}
	}
}

// String renders the grammar's productions in `LHS → RHS` form, sorted by
// production ID, for diagnostics.
func (g *Grammar) String() string {
	var b strings.Builder
	prods := append([]*Production(nil), g.productionSet.all()...)
	sort.Slice(prods, func(i, j int) bool { return prods[i].id < prods[j].id })
	for _, p := range prods {
		fmt.Fprintf(&b, "%v\n", p)
	}
	return b.String()
}
