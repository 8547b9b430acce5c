package grammar

import (
	"fmt"

	"github.com/rgrund/clr1/grammar/symbol"
)

// followEntry is FOLLOW(A) for a single non-terminal A: the terminals that
// may immediately follow A in some sentential form, plus whether A may end
// the input (spec §4.2). FOLLOW is computed for diagnostic parity with
// theory; the table builder does not consult it — LR(1) lookaheads come
// from closure.
type followEntry struct {
	symbols map[symbol.Symbol]struct{}
	eof     bool
}

func newFollowEntry() *followEntry {
	return &followEntry{
		symbols: map[symbol.Symbol]struct{}{},
	}
}

func (e *followEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *followEntry) addEOF() bool {
	if !e.eof {
		e.eof = true
		return true
	}
	return false
}

func (e *followEntry) merge(fst *firstEntry, flw *followEntry) bool {
	changed := false

	if fst != nil {
		for sym := range fst.symbols {
			if e.add(sym) {
				changed = true
			}
		}
	}

	if flw != nil {
		for sym := range flw.symbols {
			if e.add(sym) {
				changed = true
			}
		}
		if flw.eof {
			if e.addEOF() {
				changed = true
			}
		}
	}

	return changed
}

// FollowSets holds FOLLOW(A) for every non-terminal A of a grammar. It is
// the other of the two diagnostic dumps named in spec §6; FOLLOW plays no
// role in table construction (see followEntry above) but is computed and
// exposed for the diagnostic parity the spec calls for.
type FollowSets struct {
	set map[symbol.Symbol]*followEntry
}

func newFollow(prods *productionSet) *FollowSets {
	flw := &FollowSets{
		set: map[symbol.Symbol]*followEntry{},
	}
	for _, prod := range prods.all() {
		if _, ok := flw.set[prod.lhs]; ok {
			continue
		}
		flw.set[prod.lhs] = newFollowEntry()
	}
	return flw
}

// NonTerminals returns every non-terminal FOLLOW is defined for, sorted by
// Symbol value: the grammar's non-terminals in number order, then the
// augmented start symbol.
func (flw *FollowSets) NonTerminals() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(flw.set))
	for sym := range flw.set {
		syms = append(syms, sym)
	}
	sortSymbols(syms)
	return syms
}

// Terminals returns the terminals in FOLLOW(sym), sorted by symbol number,
// and whether `$` (end of input) may follow sym. It reports ok=false if sym
// is not a non-terminal of this grammar.
func (flw *FollowSets) Terminals(sym symbol.Symbol) (terms []symbol.Symbol, includesEOF bool, ok bool) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, false, false
	}
	return symbolsOf(e.symbols), e.eof, true
}

func (flw *FollowSets) find(sym symbol.Symbol) (*followEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %v", sym)
	}
	return e, nil
}

type followComContext struct {
	prods  *productionSet
	first  *FirstSets
	follow *FollowSets
}

func newFollowComContext(prods *productionSet, first *FirstSets) *followComContext {
	return &followComContext{
		prods:  prods,
		first:  first,
		follow: newFollow(prods),
	}
}

// genFollowSet computes FOLLOW for every non-terminal by fixed-point
// iteration, seeding FOLLOW(start) with `$` (spec §4.2).
func genFollowSet(prods *productionSet, first *FirstSets, start symbol.Symbol) (*FollowSets, error) {
	ntsyms := map[symbol.Symbol]struct{}{}
	for _, prod := range prods.all() {
		if _, ok := ntsyms[prod.lhs]; ok {
			continue
		}
		ntsyms[prod.lhs] = struct{}{}
	}

	cc := newFollowComContext(prods, first)
	for {
		more := false
		for ntsym := range ntsyms {
			e, err := cc.follow.find(ntsym)
			if err != nil {
				return nil, err
			}
			if ntsym == start {
				if e.addEOF() {
					more = true
				}
			}
			for _, prod := range prods.all() {
				for i, sym := range prod.rhs {
					if sym != ntsym {
						continue
					}
					fst, err := first.find(prod, i+1)
					if err != nil {
						return nil, err
					}
					if e.merge(fst, nil) {
						more = true
					}
					if fst.empty {
						flw, err := cc.follow.find(prod.lhs)
						if err != nil {
							return nil, err
						}
						if e.merge(nil, flw) {
							more = true
						}
					}
				}
			}
		}
		if !more {
			break
		}
	}

	tracer().Debugf("computed FOLLOW for %v non-terminals", len(cc.follow.set))
	return cc.follow, nil
}
