/*
Package gbuffer implements the shared mutable spine of the shaping
pipeline: an ordered, pooled sequence of shaping [Slot] values that
supports 1:1, 1:0, 1:N and N:1 edits while preserving a non-injective
back-reference to the original text (spec §3, §4.1).

A [Stream] is created per analyzed run, mutated destructively by the
substitution and positioning engines, consumed read-only by line layout,
and then returned to a [Pool]. It is never shared across goroutines.
*/
package gbuffer

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("shaping.gbuffer")
}

func assert(condition bool, msg string) {
	if !condition {
		panic("gbuffer: " + msg)
	}
}
