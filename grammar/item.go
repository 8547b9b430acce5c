package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/rgrund/clr1/grammar/symbol"
)

// Item is an LR(1) item `[A → α · β, a]`: a production, a dot position
// within its RHS, and a single lookahead terminal. Items are value-typed —
// equality and hashing are based on all three fields (spec §3), so Item is
// a plain comparable struct usable directly as a map key.
type Item struct {
	Production ID
	Dot        int
	Lookahead  symbol.Symbol
}

func (it Item) key() string {
	return fmt.Sprintf("%v.%v.%v", it.Production, it.Dot, it.Lookahead)
}

// symbolAfterDot returns the RHS symbol immediately after the dot, if any.
func (it Item) symbolAfterDot(g *Grammar) (symbol.Symbol, bool) {
	p, ok := g.ProductionByID(it.Production)
	if !ok || it.Dot >= p.rhsLen {
		return symbol.Nil, false
	}
	return p.rhs[it.Dot], true
}

// isReduce reports whether the dot has reached the end of the RHS.
func (it Item) isReduce(g *Grammar) bool {
	p, ok := g.ProductionByID(it.Production)
	return ok && it.Dot >= p.rhsLen
}

// isAcceptingItem reports whether it is `[S' → S ·, $]`.
func (it Item) isAcceptingItem(g *Grammar) bool {
	return it.Production == idAugmented && it.isReduce(g) && it.Lookahead == symbol.EOF
}

func (it Item) String(g *Grammar) string {
	p, ok := g.ProductionByID(it.Production)
	if !ok {
		return "<invalid item>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", p.lhs)
	for i, sym := range p.rhs {
		if i == it.Dot {
			b.WriteString(" ·")
		}
		fmt.Fprintf(&b, " %v", sym)
	}
	if it.Dot == p.rhsLen {
		b.WriteString(" ·")
	}
	fmt.Fprintf(&b, ", %v", it.Lookahead)
	return b.String()
}

// State is one node of the canonical LR(1) collection: its closure-complete
// item set and the discovery-order index assigned to it (spec §4.3).
type State struct {
	Index int
	Items []Item // sorted by key(), for deterministic display and hashing

	set map[Item]struct{}
}

func newState(index int, items map[Item]struct{}) *State {
	sorted := make([]Item, 0, len(items))
	for it := range items {
		sorted = append(sorted, it)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].key() < sorted[j].key() })
	return &State{Index: index, Items: sorted, set: items}
}

func (s *State) identityKey() string {
	var b strings.Builder
	for _, it := range s.Items {
		b.WriteString(it.key())
		b.WriteByte(';')
	}
	return b.String()
}

// stateComparator orders states by item-set identity so a treeset can be
// used as a registry that dedups by set equality (grounded on the CFSM
// state registry pattern; spec §4.3 requires identity by pure set
// equality, not insertion order).
func stateComparator(a, b interface{}) int {
	sa, sb := a.(*State), b.(*State)
	ka, kb := sa.identityKey(), sb.identityKey()
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	default:
		return 0
	}
}

// Edge is a discovered transition `I --X--> J` in the canonical collection.
type Edge struct {
	From   int
	Symbol symbol.Symbol
	To     int
}

// Collection is the canonical LR(1) collection: every reachable state and
// the transitions between them (spec §4.3).
type Collection struct {
	states      *treeset.Set
	byIndex     []*State
	edges       *arraylist.List
	transitions map[int]map[symbol.Symbol]int
}

// States returns every state in discovery order.
func (c *Collection) States() []*State {
	return c.byIndex
}

// Goto looks up the transition target of state i on symbol x.
func (c *Collection) Goto(i int, x symbol.Symbol) (int, bool) {
	row, ok := c.transitions[i]
	if !ok {
		return 0, false
	}
	j, ok := row[x]
	return j, ok
}

// Edges returns every discovered transition, in discovery order.
func (c *Collection) Edges() []Edge {
	edges := make([]Edge, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		edges = append(edges, it.Value().(Edge))
	}
	return edges
}

// closure computes CLOSURE(I) by repeated fixed-point expansion: for every
// item `[A → α · B β, a]` with B a non-terminal, and every production
// `B → γ`, add `[B → · γ, b]` for every `b ∈ FIRST(β a)` (spec §4.3).
func closure(g *Grammar, first *FirstSets, seed map[Item]struct{}) (map[Item]struct{}, error) {
	items := map[Item]struct{}{}
	for it := range seed {
		items[it] = struct{}{}
	}

	for {
		more := false
		for it := range items {
			sym, ok := it.symbolAfterDot(g)
			if !ok || sym.IsTerminal() {
				continue
			}
			p, ok := g.ProductionByID(it.Production)
			if !ok {
				return nil, fmt.Errorf("internal: production %v not found", it.Production)
			}

			lookaheads, err := lookaheadsAfter(g, first, p, it.Dot+1, it.Lookahead)
			if err != nil {
				return nil, err
			}

			for _, bProd := range g.ProductionsFor(sym) {
				for _, b := range lookaheads {
					newItem := Item{Production: bProd.ID(), Dot: 0, Lookahead: b}
					if _, ok := items[newItem]; !ok {
						items[newItem] = struct{}{}
						more = true
					}
				}
			}
		}
		if !more {
			break
		}
	}
	return items, nil
}

// lookaheadsAfter computes FIRST(β a): FIRST of prod's RHS starting at
// offset, with the singleton terminal a appended to the sequence. ε never
// appears in the result.
func lookaheadsAfter(g *Grammar, first *FirstSets, prod *Production, offset int, a symbol.Symbol) ([]symbol.Symbol, error) {
	entry, err := first.find(prod, offset)
	if err != nil {
		return nil, err
	}
	out := make([]symbol.Symbol, 0, len(entry.symbols)+1)
	for s := range entry.symbols {
		out = append(out, s)
	}
	if entry.empty {
		out = append(out, a)
	}
	return out, nil
}

// goTo computes GOTO(I, X): advance the dot past X in every item of I that
// has X immediately after its dot, then close the result (spec §4.3).
func goTo(g *Grammar, first *FirstSets, items map[Item]struct{}, x symbol.Symbol) (map[Item]struct{}, error) {
	advanced := map[Item]struct{}{}
	for it := range items {
		sym, ok := it.symbolAfterDot(g)
		if !ok || sym != x {
			continue
		}
		advanced[Item{Production: it.Production, Dot: it.Dot + 1, Lookahead: it.Lookahead}] = struct{}{}
	}
	if len(advanced) == 0 {
		return nil, nil
	}
	return closure(g, first, advanced)
}

// symbolsAfterDot returns the distinct symbols appearing after the dot in
// some item of the state, sorted terminals-by-text first, then
// non-terminals-by-text, for deterministic transition discovery order
// (spec §4.3).
func symbolsAfterDot(g *Grammar, items map[Item]struct{}) []symbol.Symbol {
	seen := map[symbol.Symbol]struct{}{}
	for it := range items {
		if sym, ok := it.symbolAfterDot(g); ok {
			seen[sym] = struct{}{}
		}
	}

	r := g.SymbolTable()
	var terms, nonTerms []symbol.Symbol
	for sym := range seen {
		if sym.IsTerminal() {
			terms = append(terms, sym)
		} else {
			nonTerms = append(nonTerms, sym)
		}
	}
	textOf := func(s symbol.Symbol) string {
		t, _ := r.ToText(s)
		return t
	}
	sort.Slice(terms, func(i, j int) bool { return textOf(terms[i]) < textOf(terms[j]) })
	sort.Slice(nonTerms, func(i, j int) bool { return textOf(nonTerms[i]) < textOf(nonTerms[j]) })

	out := make([]symbol.Symbol, 0, len(terms)+len(nonTerms))
	out = append(out, terms...)
	out = append(out, nonTerms...)
	return out
}

// buildCollection constructs the canonical LR(1) collection starting from
// `I₀ = CLOSURE({[S' → · S, $]})` (spec §4.3).
func buildCollection(g *Grammar, first *FirstSets) (*Collection, error) {
	seed := map[Item]struct{}{
		{Production: idAugmented, Dot: 0, Lookahead: symbol.EOF}: {},
	}
	i0Items, err := closure(g, first, seed)
	if err != nil {
		return nil, err
	}

	c := &Collection{
		states:      treeset.NewWith(stateComparator),
		edges:       arraylist.New(),
		transitions: map[int]map[symbol.Symbol]int{},
	}
	i0 := newState(0, i0Items)
	c.states.Add(i0)
	c.byIndex = append(c.byIndex, i0)

	queue := []*State{i0}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		for _, x := range symbolsAfterDot(g, s.set) {
			j, err := goTo(g, first, s.set, x)
			if err != nil {
				return nil, err
			}
			if len(j) == 0 {
				continue
			}

			candidate := newState(-1, j)
			var target *State
			if v, ok := lookupState(c.states, candidate); ok {
				target = v
			} else {
				target = newState(len(c.byIndex), j)
				c.states.Add(target)
				c.byIndex = append(c.byIndex, target)
				queue = append(queue, target)
			}

			if c.transitions[s.Index] == nil {
				c.transitions[s.Index] = map[symbol.Symbol]int{}
			}
			c.transitions[s.Index][x] = target.Index
			c.edges.Add(Edge{From: s.Index, Symbol: x, To: target.Index})
		}
	}

	tracer().Debugf("built canonical collection: %v states, %v edges", len(c.byIndex), c.edges.Size())

	return c, nil
}

// lookupState finds the registered state with the same item-set identity
// as candidate, if any.
func lookupState(states *treeset.Set, candidate *State) (*State, bool) {
	if !states.Contains(candidate) {
		return nil, false
	}
	key := candidate.identityKey()
	for _, v := range states.Values() {
		s := v.(*State)
		if s.identityKey() == key {
			return s, true
		}
	}
	return nil, false
}
