package clr1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'clr1'.
func tracer() tracing.Trace {
	return tracing.Select("clr1")
}
