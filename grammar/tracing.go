package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'clr1.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("clr1.grammar")
}
