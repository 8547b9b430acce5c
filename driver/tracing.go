package driver

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'clr1.driver'.
func tracer() tracing.Trace {
	return tracing.Select("clr1.driver")
}
