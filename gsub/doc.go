/*
Package gsub implements the SubstitutionEngine (spec §4.4): it rewrites a
[gbuffer.Stream] by applying a font's substitution lookups in the font's
declared order, honoring lookup flags and feature activation.

Grounded on otlayout/gsub.go (lookup-type dispatch) and otlayout/feature.go
(coverage matching, skip filter) from the teacher, generalized from the
concrete OpenType binary subtable formats to the otfont.Subtable rule
shapes (out-of-core-scope parsing already resolved by the time the engine
sees them, spec §1/§6).
*/
package gsub

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("shaping.gsub")
}
