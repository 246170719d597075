/*
Package otshape implements the TextAnalyzer (spec §4.3) and the overall
shaping pipeline orchestration that drives GlyphStream construction,
feature-plan resolution, substitution, positioning and complex-script
pre-processing end to end (spec §4 overview: "C3 analyzes text ... feeds
C4/C5 ... in font-declared lookup order").

Grounded on the teacher's otshape/pipeline.go (stage sequencing),
otshape/plan.go (feature-tag resolution against a font's default/required
feature sets) and otshape/runbuffer.go (per-run buffer handoff),
generalized from HarfBuzz-shaper-style hb_buffer_t processing to this
module's [gbuffer.Stream].
*/
package otshape

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("shaping.otshape")
}
