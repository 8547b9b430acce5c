package driver

import "fmt"

// ParseError reports that ACTION[state, token] was undefined when Parse
// reached position in the token stream (spec §7). It carries enough state
// to diagnose the failure but never a partial tree — Parse discards the
// stacks it built so far.
type ParseError struct {
	State    int
	Token    string
	Position int
	Expected []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %v: unexpected %q in state %v (expected one of %v)",
		e.Position, e.Token, e.State, e.Expected)
}

// InternalInconsistency is raised, never returned, when the driver reaches
// a state the table builder should have made unreachable: a reduce whose
// target state has no GOTO entry, a reduce by an unknown production, or an
// accept with other than exactly one node left on the stack (spec §7). Either means the table or the driver itself is
// broken, not that the input was rejected, so Parse panics rather than
// returning an error a caller might mistake for a ParseError.
type InternalInconsistency struct {
	Message string
}

func (e *InternalInconsistency) Error() string {
	return e.Message
}
