// Package driver implements the parse driver (C5): a table-driven
// shift-reduce automaton that consumes a finite token stream against a
// grammar's ACTION/GOTO tables and produces a parse tree, a derivation
// trace, or a ParseError.
//
// The driver performs no error recovery: on the first undefined ACTION
// entry it stops and reports exactly where and why, rather than attempting
// to resynchronize and keep going.
package driver

import (
	"fmt"

	"github.com/rgrund/clr1/grammar"
	"github.com/rgrund/clr1/grammar/symbol"
)

// Parser runs the shift-reduce loop against one grammar's tables. A
// *Parser holds no per-parse state itself — Parse is safe to call
// repeatedly, and concurrently, on the same *Parser, since the grammar and
// table it wraps are immutable once built (spec §5).
type Parser struct {
	g     *grammar.Grammar
	table *grammar.Table
}

// NewParser builds a driver for g's tables. Callers normally obtain both
// from the orchestrator (C6) rather than calling this directly.
func NewParser(g *grammar.Grammar, table *grammar.Table) *Parser {
	return &Parser{g: g, table: table}
}

// Parse runs tokens through the shift-reduce automaton. tokens is a finite
// ordered sequence of terminal symbol texts; it must not include "$" — the
// driver appends the end-of-input marker internally.
//
// On success it returns the parse-tree root and the derivation: the
// production IDs applied, in reduction order. On a rejected input it
// returns a *ParseError and no tree. It panics with *InternalInconsistency
// if the tables are malformed in a way construction should have prevented.
func (p *Parser) Parse(tokens []string) (*Node, []grammar.ID, error) {
	for i, tok := range tokens {
		if tok == symbol.NameEOF {
			return nil, nil, fmt.Errorf("token stream must not include the reserved end-of-input symbol %q (position %v)", symbol.NameEOF, i)
		}
	}

	reader := p.g.SymbolTable()
	stateStack := []int{p.table.InitialState}
	var nodeStack []*Node
	var derivation []grammar.ID
	pos := 0

	for {
		state := stateStack[len(stateStack)-1]

		a, text, known := lookahead(reader, tokens, pos)

		var entry grammar.ActionEntry
		var ok bool
		if known {
			entry, ok = p.table.Action(state, a)
		}
		if !known || !ok {
			return nil, nil, p.parseError(state, text, pos)
		}

		switch entry.Kind {
		case grammar.ActionShift:
			nodeStack = append(nodeStack, &Node{Symbol: a, Text: text})
			stateStack = append(stateStack, entry.State)
			pos++

		case grammar.ActionReduce:
			prod, ok := p.g.ProductionByID(entry.Production)
			if !ok {
				panic(&InternalInconsistency{Message: fmt.Sprintf("reduce to unknown production %v", entry.Production)})
			}

			n := len(prod.RHS())
			children := append([]*Node(nil), nodeStack[len(nodeStack)-n:]...)
			nodeStack = nodeStack[:len(nodeStack)-n]
			stateStack = stateStack[:len(stateStack)-n]

			top := stateStack[len(stateStack)-1]
			target, ok := p.table.GoTo(top, prod.LHS())
			if !ok {
				panic(&InternalInconsistency{Message: fmt.Sprintf(
					"no GOTO entry for state %v on %v after reducing by production %v", top, prod.LHS(), prod.ID())})
			}

			nodeStack = append(nodeStack, &Node{Symbol: prod.LHS(), Production: prod, Children: children})
			stateStack = append(stateStack, target)
			derivation = append(derivation, prod.ID())

		case grammar.ActionAccept:
			if len(nodeStack) != 1 {
				panic(&InternalInconsistency{Message: fmt.Sprintf(
					"accept with %v nodes on the stack, want 1", len(nodeStack))})
			}
			tracer().Debugf("accepted after %v reductions", len(derivation))
			return nodeStack[0], derivation, nil
		}
	}
}

// lookahead resolves the terminal at pos: the next token's symbol, or EOF
// once the token stream is exhausted. known is false when pos's token text
// is not a registered terminal — unrecognized input has no ACTION row to
// consult, so it is reported the same way an undefined entry is.
func lookahead(reader *symbol.Reader, tokens []string, pos int) (sym symbol.Symbol, text string, known bool) {
	if pos >= len(tokens) {
		return symbol.EOF, symbol.NameEOF, true
	}
	text = tokens[pos]
	sym, ok := reader.ToSymbol(text)
	if !ok || sym.IsNonTerminal() {
		return symbol.Nil, text, false
	}
	return sym, text, true
}

// parseError builds the ParseError for a rejected input, filling Expected
// from every terminal with a defined ACTION in state (spec §7).
func (p *Parser) parseError(state int, text string, pos int) *ParseError {
	reader := p.g.SymbolTable()
	defined := p.table.DefinedActions(state)
	expected := make([]string, 0, len(defined))
	for _, sym := range defined {
		t, ok := reader.ToText(sym)
		if !ok {
			continue
		}
		expected = append(expected, t)
	}
	err := &ParseError{State: state, Token: text, Position: pos, Expected: expected}
	tracer().Errorf("%v", err)
	return err
}
