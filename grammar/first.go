package grammar

import (
	"fmt"
	"sort"

	"github.com/rgrund/clr1/grammar/symbol"
)

// firstEntry is FIRST(X) for a single symbol X: the terminals that can begin
// a string derived from X, plus whether X can derive ε (spec §4.2).
type firstEntry struct {
	symbols map[symbol.Symbol]struct{}
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		symbols: map[symbol.Symbol]struct{}{},
	}
}

func (e *firstEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *firstEntry) mergeExceptEmpty(target *firstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		if e.add(sym) {
			changed = true
		}
	}
	return changed
}

// FirstSets holds FIRST(X) for every non-terminal X of a grammar. It is one
// of the two diagnostic dumps named in spec §6 ("Sets: FIRST and FOLLOW
// dumps"); `report.Write` renders it via NonTerminals/Terminals below.
type FirstSets struct {
	set map[symbol.Symbol]*firstEntry
}

func newFirstSet(prods *productionSet) *FirstSets {
	fst := &FirstSets{
		set: map[symbol.Symbol]*firstEntry{},
	}
	for _, prod := range prods.all() {
		if _, ok := fst.set[prod.lhs]; ok {
			continue
		}
		fst.set[prod.lhs] = newFirstEntry()
	}
	return fst
}

// NonTerminals returns every non-terminal FIRST is defined for, sorted by
// Symbol value: the grammar's non-terminals in number order, then the
// augmented start symbol.
func (fst *FirstSets) NonTerminals() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(fst.set))
	for sym := range fst.set {
		syms = append(syms, sym)
	}
	sortSymbols(syms)
	return syms
}

// Terminals returns the terminals in FIRST(sym), sorted by symbol number,
// and whether sym can derive ε. It reports ok=false if sym is not a
// non-terminal of this grammar.
func (fst *FirstSets) Terminals(sym symbol.Symbol) (terms []symbol.Symbol, canDeriveEmpty bool, ok bool) {
	e, ok := fst.set[sym]
	if !ok {
		return nil, false, false
	}
	return symbolsOf(e.symbols), e.empty, true
}

func sortSymbols(syms []symbol.Symbol) {
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
}

func symbolsOf(set map[symbol.Symbol]struct{}) []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(set))
	for sym := range set {
		syms = append(syms, sym)
	}
	sortSymbols(syms)
	return syms
}

// find computes FIRST of the RHS suffix of prod starting at head — used by
// closure/GOTO to derive the lookahead carried into a new item (spec §4.3).
func (fst *FirstSets) find(prod *Production, head int) (*firstEntry, error) {
	entry := newFirstEntry()
	if prod.rhsLen <= head {
		entry.addEmpty()
		return entry, nil
	}
	for _, sym := range prod.rhs[head:] {
		if sym.IsTerminal() {
			entry.add(sym)
			return entry, nil
		}

		e := fst.findBySymbol(sym)
		if e == nil {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %v", sym)
		}
		for s := range e.symbols {
			entry.add(s)
		}
		if !e.empty {
			return entry, nil
		}
	}
	entry.addEmpty()
	return entry, nil
}

func (fst *FirstSets) findBySymbol(sym symbol.Symbol) *firstEntry {
	return fst.set[sym]
}

type firstComContext struct {
	first *FirstSets
}

func newFirstComContext(prods *productionSet) *firstComContext {
	return &firstComContext{
		first: newFirstSet(prods),
	}
}

// genFirstSet computes FIRST for every non-terminal by fixed-point
// iteration over all productions until no entry grows (spec §4.2).
func genFirstSet(prods *productionSet) (*FirstSets, error) {
	cc := newFirstComContext(prods)
	for {
		more := false
		for _, prod := range prods.all() {
			e := cc.first.findBySymbol(prod.lhs)
			changed, err := genProdFirstEntry(cc, e, prod)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		if !more {
			break
		}
	}
	tracer().Debugf("computed FIRST for %v non-terminals", len(cc.first.set))
	return cc.first, nil
}

func genProdFirstEntry(cc *firstComContext, acc *firstEntry, prod *Production) (bool, error) {
	if prod.isEmpty() {
		return acc.addEmpty(), nil
	}

	for _, sym := range prod.rhs {
		if sym.IsTerminal() {
			return acc.add(sym), nil
		}

		e := cc.first.findBySymbol(sym)
		changed := acc.mergeExceptEmpty(e)
		if !e.empty {
			return changed, nil
		}
	}
	return acc.addEmpty(), nil
}
