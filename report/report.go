// Package report renders a human-readable diagnostic dump of a grammar,
// its canonical LR(1) collection, and its ACTION/GOTO tables: the grammar
// itself, the FIRST and FOLLOW dumps, terminal and production listings,
// every state's kernel items, shift/reduce/goto rows, and conflict
// resolutions (spec §6's described outputs, expanded to the teacher's
// diagnostic depth).
package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/rgrund/clr1/grammar"
	"github.com/rgrund/clr1/grammar/symbol"
)

type terminalRow struct {
	Number int
	Name   string
}

type productionRow struct {
	Number int
	Text   string
}

type itemRow struct {
	Text string
}

type shiftRow struct {
	State int
	On    string
}

type reduceRow struct {
	Production int
	On         string
}

type gotoRow struct {
	State int
	On    string
}

type conflictRow struct {
	On        string
	Kept      string
	Discarded string
}

type setRow struct {
	NonTerminal string
	// Members is the set's contents already formatted as "a b c" (or, with
	// FIRST's ε / FOLLOW's $ included, "a b c ε") — joined in Go rather
	// than in the template so an empty-terminal-set-plus-marker case never
	// prints a stray separator.
	Members string
}

type stateRow struct {
	Number int
	Kernel []itemRow
	Shift  []shiftRow
	Reduce []reduceRow
	Accept []string
	GoTo   []gotoRow
	SR     []conflictRow
	RR     []conflictRow
}

// model is the data text/template renders; it is built fresh from the
// grammar/collection/table on every Write call rather than cached, since
// the generator has no notion of a long-lived report value.
type model struct {
	ConflictCount int
	Terminals     []terminalRow
	Productions   []productionRow
	First         []setRow
	Follow        []setRow
	States        []stateRow
}

// Write renders the full diagnostic report for g, c, and t to w — including
// the FIRST and FOLLOW dumps computed alongside t by grammar.Analyze (spec
// §6's "Sets" output).
func Write(w io.Writer, g *grammar.Grammar, c *grammar.Collection, t *grammar.Table, first *grammar.FirstSets, follow *grammar.FollowSets) error {
	m := build(g, c, t, first, follow)

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"plural": func(n int) string {
			if n == 1 {
				return ""
			}
			return "s"
		},
	}).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, m)
}

func build(g *grammar.Grammar, c *grammar.Collection, t *grammar.Table, first *grammar.FirstSets, follow *grammar.FollowSets) *model {
	reader := g.SymbolTable()
	text := symbolText(reader)

	m := &model{ConflictCount: len(t.Conflicts)}

	for _, sym := range reader.Terminals() {
		m.Terminals = append(m.Terminals, terminalRow{Number: sym.Num().Int(), Name: text(sym)})
	}

	for _, prod := range g.Productions() {
		if prod.ID().Int() == 0 {
			continue // the augmentation production is implementation detail, not grammar text
		}
		m.Productions = append(m.Productions, productionRow{Number: prod.ID().Int(), Text: productionText(text, prod)})
	}

	for _, nt := range first.NonTerminals() {
		terms, canDeriveEmpty, ok := first.Terminals(nt)
		if !ok {
			continue
		}
		names := namesOf(text, terms)
		if canDeriveEmpty {
			names = append(names, "ε")
		}
		m.First = append(m.First, setRow{NonTerminal: text(nt), Members: strings.Join(names, " ")})
	}

	for _, nt := range follow.NonTerminals() {
		terms, includesEOF, ok := follow.Terminals(nt)
		if !ok {
			continue
		}
		names := namesOf(text, terms)
		if includesEOF {
			names = append(names, "$")
		}
		m.Follow = append(m.Follow, setRow{NonTerminal: text(nt), Members: strings.Join(names, " ")})
	}

	for _, s := range c.States() {
		row := stateRow{Number: s.Index}
		for _, it := range s.Items {
			// Kernel items: the dot has moved, or the initial [S' → · S, $].
			if it.Dot == 0 && it.Production.Int() != 0 {
				continue
			}
			row.Kernel = append(row.Kernel, itemRow{Text: itemText(g, text, it)})
		}
		for _, sym := range reader.Terminals() {
			if e, ok := t.Action(s.Index, sym); ok {
				switch e.Kind {
				case grammar.ActionShift:
					row.Shift = append(row.Shift, shiftRow{State: e.State, On: text(sym)})
				case grammar.ActionReduce:
					row.Reduce = append(row.Reduce, reduceRow{Production: e.Production.Int(), On: text(sym)})
				case grammar.ActionAccept:
					row.Accept = append(row.Accept, text(sym))
				}
			}
		}
		for _, sym := range reader.NonTerminals() {
			if target, ok := c.Goto(s.Index, sym); ok {
				row.GoTo = append(row.GoTo, gotoRow{State: target, On: text(sym)})
			}
		}
		for _, conflict := range t.Conflicts {
			if conflict.State != s.Index {
				continue
			}
			cr := conflictRow{On: text(conflict.Terminal), Kept: conflict.Kept.String(), Discarded: conflict.Discarded.String()}
			if conflict.Kind == grammar.ConflictShiftReduce {
				row.SR = append(row.SR, cr)
			} else {
				row.RR = append(row.RR, cr)
			}
		}
		m.States = append(m.States, row)
	}

	return m
}

func namesOf(text func(symbol.Symbol) string, syms []symbol.Symbol) []string {
	names := make([]string, len(syms))
	for i, sym := range syms {
		names[i] = text(sym)
	}
	return names
}

func symbolText(reader *symbol.Reader) func(symbol.Symbol) string {
	return func(s symbol.Symbol) string {
		if t, ok := reader.ToText(s); ok {
			return t
		}
		return s.String()
	}
}

func productionText(text func(symbol.Symbol) string, prod *grammar.Production) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", text(prod.LHS()))
	if len(prod.RHS()) == 0 {
		b.WriteString(" ε")
		return b.String()
	}
	for _, sym := range prod.RHS() {
		fmt.Fprintf(&b, " %v", text(sym))
	}
	return b.String()
}

func itemText(g *grammar.Grammar, text func(symbol.Symbol) string, it grammar.Item) string {
	prod, ok := g.ProductionByID(it.Production)
	if !ok {
		return "<invalid item>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", text(prod.LHS()))
	for i, sym := range prod.RHS() {
		if i == it.Dot {
			b.WriteString(" ·")
		}
		fmt.Fprintf(&b, " %v", text(sym))
	}
	if it.Dot == len(prod.RHS()) {
		b.WriteString(" ·")
	}
	fmt.Fprintf(&b, ", %v", text(it.Lookahead))
	return b.String()
}

const reportTemplate = `# Conflicts

{{ if eq .ConflictCount 0 }}No conflict was detected.{{ else }}{{ .ConflictCount }} conflict{{ plural .ConflictCount }} detected.{{ end }}

# Terminals

{{ range .Terminals -}}
{{ printf "%4v %v" .Number .Name }}
{{ end }}
# Productions

{{ range .Productions -}}
{{ printf "%4v %v" .Number .Text }}
{{ end }}
# Sets

## FIRST

{{ range .First -}}
{{ printf "FIRST(%v) = { %v }" .NonTerminal .Members }}
{{ end }}
## FOLLOW

{{ range .Follow -}}
{{ printf "FOLLOW(%v) = { %v }" .NonTerminal .Members }}
{{ end }}
# States
{{ range .States }}
## State {{ .Number }}

{{ range .Kernel -}}
{{ .Text }}
{{ end }}
{{ range .Shift -}}
{{ printf "shift  %4v on %v" .State .On }}
{{ end -}}
{{ range .Reduce -}}
{{ printf "reduce %4v on %v" .Production .On }}
{{ end -}}
{{ range .Accept -}}
{{ printf "accept on %v" . }}
{{ end -}}
{{ range .GoTo -}}
{{ printf "goto   %4v on %v" .State .On }}
{{ end }}
{{ range .SR -}}
{{ printf "shift/reduce conflict on %v: kept %v, discarded %v" .On .Kept .Discarded }}
{{ end -}}
{{ range .RR -}}
{{ printf "reduce/reduce conflict on %v: kept %v, discarded %v" .On .Kept .Discarded }}
{{ end -}}
{{ end }}`
