package grammar

import (
	"fmt"

	"github.com/rgrund/clr1/grammar/symbol"
)

// ID is a production's integer identity, stable across a single generator
// run. The augmentation production `S' → S` always has ID 0; every other
// production is numbered contiguously from 1 in the order it was supplied.
type ID int

const idAugmented = ID(0)

func (id ID) Int() int {
	return int(id)
}

// Production is a rule `A → X₁ … Xₙ` (spec §3).
type Production struct {
	id     ID
	lhs    symbol.Symbol
	rhs    []symbol.Symbol
	rhsLen int
}

func newProduction(id ID, lhs symbol.Symbol, rhs []symbol.Symbol) (*Production, error) {
	if lhs.IsNil() {
		return nil, fmt.Errorf("LHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	for _, sym := range rhs {
		if sym.IsNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	return &Production{
		id:     id,
		lhs:    lhs,
		rhs:    rhs,
		rhsLen: len(rhs),
	}, nil
}

func (p *Production) ID() ID {
	return p.id
}

func (p *Production) LHS() symbol.Symbol {
	return p.lhs
}

func (p *Production) RHS() []symbol.Symbol {
	return p.rhs
}

// equals reports whether p and q have the same LHS and RHS, regardless of
// ID — two productions with equal LHS and RHS are semantically equal (spec
// §3).
func (p *Production) equals(q *Production) bool {
	if p.lhs != q.lhs || p.rhsLen != q.rhsLen {
		return false
	}
	for i, s := range p.rhs {
		if q.rhs[i] != s {
			return false
		}
	}
	return true
}

func (p *Production) isEmpty() bool {
	return p.rhsLen == 0
}

func (p *Production) String() string {
	return fmt.Sprintf("%v(%v)", p.lhs, p.rhs)
}

// productionSet is the immutable, ordered collection of a grammar's
// (augmented) productions, indexed both by ID and by LHS for closure
// computation.
type productionSet struct {
	byID     []*Production // indexed by ID
	byLHS    map[symbol.Symbol][]*Production
	ordered  []*Production // insertion order, ID 0 (augmentation) first
}

func newProductionSet() *productionSet {
	return &productionSet{
		byLHS: map[symbol.Symbol][]*Production{},
	}
}

func (ps *productionSet) append(prod *Production) {
	for len(ps.byID) <= prod.id.Int() {
		ps.byID = append(ps.byID, nil)
	}
	ps.byID[prod.id.Int()] = prod
	ps.byLHS[prod.lhs] = append(ps.byLHS[prod.lhs], prod)
	ps.ordered = append(ps.ordered, prod)
}

func (ps *productionSet) findByID(id ID) (*Production, bool) {
	if id.Int() < 0 || id.Int() >= len(ps.byID) {
		return nil, false
	}
	p := ps.byID[id.Int()]
	return p, p != nil
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) ([]*Production, bool) {
	if lhs.IsNil() {
		return nil, false
	}
	prods, ok := ps.byLHS[lhs]
	return prods, ok
}

// all returns every production (including the augmentation) in ID order.
func (ps *productionSet) all() []*Production {
	return ps.ordered
}
