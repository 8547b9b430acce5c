package grammar

import (
	"github.com/rgrund/clr1/grammar/symbol"
)

// buildTable walks every state and every item of the canonical collection
// and writes ACTION/GOTO entries per the case analysis of spec §4.4.
func buildTable(g *Grammar, c *Collection) (*Table, error) {
	t := &Table{
		action:       map[int]map[symbol.Symbol]ActionEntry{},
		goTo:         map[int]map[symbol.Symbol]GoToEntry{},
		StateCount:   len(c.States()),
		InitialState: 0,
	}

	for _, s := range c.States() {
		for _, it := range s.Items {
			switch {
			case it.isAcceptingItem(g):
				t.writeAction(s.Index, symbol.EOF, ActionEntry{Kind: ActionAccept})

			case it.isReduce(g):
				if it.Production == idAugmented {
					continue
				}
				t.writeAction(s.Index, it.Lookahead, ActionEntry{Kind: ActionReduce, Production: it.Production})

			default:
				sym, ok := it.symbolAfterDot(g)
				if !ok {
					continue
				}
				target, ok := c.Goto(s.Index, sym)
				if !ok {
					continue
				}
				if sym.IsTerminal() {
					t.writeAction(s.Index, sym, ActionEntry{Kind: ActionShift, State: target})
				} else {
					t.goToRow(s.Index)[sym] = GoToEntry{State: target, Defined: true}
				}
			}
		}
	}

	tracer().Debugf("built tables: %v states, %v conflicts", t.StateCount, len(t.Conflicts))

	return t, nil
}

func (t *Table) goToRow(state int) map[symbol.Symbol]GoToEntry {
	row, ok := t.goTo[state]
	if !ok {
		row = map[symbol.Symbol]GoToEntry{}
		t.goTo[state] = row
	}
	return row
}

func (t *Table) actionRow(state int) map[symbol.Symbol]ActionEntry {
	row, ok := t.action[state]
	if !ok {
		row = map[symbol.Symbol]ActionEntry{}
		t.action[state] = row
	}
	return row
}

// writeAction writes a new ACTION entry, resolving conflicts against any
// entry already present per spec §4.4: shift wins a shift/reduce conflict,
// and the lower production ID wins a reduce/reduce conflict. Writing the
// same action twice is not a conflict.
func (t *Table) writeAction(state int, terminal symbol.Symbol, next ActionEntry) {
	row := t.actionRow(state)
	existing, ok := row[terminal]
	if !ok {
		row[terminal] = next
		return
	}
	if existing == next {
		return
	}

	kind, keep := classifyConflict(existing, next)
	discard := next
	if keep == next {
		discard = existing
	}
	t.Conflicts = append(t.Conflicts, ConflictRecord{
		Kind:      kind,
		State:     state,
		Terminal:  terminal,
		Kept:      keep,
		Discarded: discard,
	})
	row[terminal] = keep
}

// classifyConflict reports the conflict kind between two distinct actions
// and which one the table keeps (spec §4.4).
func classifyConflict(existing, next ActionEntry) (ConflictKind, ActionEntry) {
	if existing.Kind == ActionShift || next.Kind == ActionShift {
		shift := existing
		if next.Kind == ActionShift {
			shift = next
		}
		return ConflictShiftReduce, shift
	}

	// Both are reduces: keep the lower production ID.
	if next.Production < existing.Production {
		return ConflictReduceReduce, next
	}
	return ConflictReduceReduce, existing
}
