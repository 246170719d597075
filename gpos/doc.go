/*
Package gpos implements the PositioningEngine (spec §4.5): it assigns
advance and offset adjustments to a [gbuffer.Stream]'s slots by applying
a font's positioning lookups in declared order, then falling back to the
legacy 'kern' table for the whole run when none of the font's pair
adjustment or cursive attachment lookups was eligible (spec §4.5 step 3).

Grounded on otlayout/gpos.go (value-record accumulation, mark anchor
resolution) and otshape/plan.go's kern-gating logic from the teacher.
*/
package gpos

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("shaping.gpos")
}
