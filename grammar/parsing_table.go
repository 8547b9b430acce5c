package grammar

import (
	"fmt"
	"sort"

	"github.com/rgrund/clr1/grammar/symbol"
)

// ActionKind classifies an ACTION table entry (spec §4.4).
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionShift
	ActionReduce
	ActionAccept
)

func (k ActionKind) String() string {
	switch k {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	default:
		return "none"
	}
}

// ActionEntry is one cell of the ACTION table. A zero-value ActionEntry
// (Kind == ActionNone) means no action is defined for that (state,
// terminal) pair. Unlike the teacher's sign-packed int encoding, entries
// here are a tagged struct: the augmentation production's ID is 0, which
// would otherwise collide with a "no action" sentinel.
type ActionEntry struct {
	Kind       ActionKind
	State      int // target state, when Kind == ActionShift
	Production ID  // reduced production, when Kind == ActionReduce
}

func (e ActionEntry) String() string {
	switch e.Kind {
	case ActionShift:
		return fmt.Sprintf("shift %v", e.State)
	case ActionReduce:
		return fmt.Sprintf("reduce %v", e.Production)
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// GoToEntry is one cell of the GOTO table; Defined is false where no
// transition exists.
type GoToEntry struct {
	State   int
	Defined bool
}

// ConflictKind classifies a ConflictRecord (spec §4.4).
type ConflictKind string

const (
	ConflictShiftReduce  = ConflictKind("shift/reduce")
	ConflictReduceReduce = ConflictKind("reduce/reduce")
)

// ConflictRecord documents a table cell where two semantically different
// actions were candidates; the table keeps Kept per the resolution policy
// and records Discarded too, so callers can inspect or reject the
// resolution even though the table itself already committed to one
// (spec §4.4, §6).
type ConflictRecord struct {
	Kind      ConflictKind
	State     int
	Terminal  symbol.Symbol
	Kept      ActionEntry
	Discarded ActionEntry
}

func (c ConflictRecord) String() string {
	return fmt.Sprintf("%v conflict in state %v on %v: kept %v, discarded %v", c.Kind, c.State, c.Terminal, c.Kept, c.Discarded)
}

// Table is the frozen ACTION/GOTO pair produced by the table builder (C4),
// plus every conflict observed while building it. Construction never
// fails; a malformed or ambiguous grammar simply accumulates conflicts.
type Table struct {
	action map[int]map[symbol.Symbol]ActionEntry
	goTo   map[int]map[symbol.Symbol]GoToEntry

	StateCount   int
	InitialState int

	Conflicts []ConflictRecord
}

// Action looks up ACTION[state, terminal].
func (t *Table) Action(state int, terminal symbol.Symbol) (ActionEntry, bool) {
	row, ok := t.action[state]
	if !ok {
		return ActionEntry{}, false
	}
	e, ok := row[terminal]
	return e, ok
}

// GoTo looks up GOTO_TABLE[state, nonTerminal].
func (t *Table) GoTo(state int, nonTerminal symbol.Symbol) (int, bool) {
	row, ok := t.goTo[state]
	if !ok {
		return 0, false
	}
	e, ok := row[nonTerminal]
	if !ok || !e.Defined {
		return 0, false
	}
	return e.State, true
}

// DefinedActions returns the terminals for which ACTION[state, ·] is
// defined, sorted by Symbol value (EOF, when defined, comes last). The parse
// driver uses this to fill in
// the "expected" set of a ParseError (spec §7).
func (t *Table) DefinedActions(state int) []symbol.Symbol {
	row := t.action[state]
	syms := make([]symbol.Symbol, 0, len(row))
	for sym := range row {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}
