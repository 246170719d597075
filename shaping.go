/*
Package shaping is the top-level convenience API over the six shaping
components (spec § OVERVIEW: GlyphStream, FontAdapter, TextAnalyzer,
SubstitutionEngine, PositioningEngine, LineLayout): [ShapeAndLayout]
drives analysis, substitution, positioning and line breaking in one
call for callers that don't need to touch the pipeline stages directly.

Grounded on the teacher's root-level opentype.go convenience function
(a single ShapeLatinText-style entry point wrapping the full pipeline),
generalized here to the multi-script, multi-component pipeline.
*/
package shaping

import (
	"github.com/corvid-type/shaping/linelayout"
	"github.com/corvid-type/shaping/otfont"
	"github.com/corvid-type/shaping/otshape"
)

// Result is the output of [ShapeAndLayout]: the shaped runs (for callers
// that need glyph-level detail) and the broken, aligned lines ready for
// rendering.
type Result struct {
	Runs  []otshape.Run
	Lines []linelayout.Line
}

// ShapeAndLayout shapes text against a font-fallback chain and lays the
// result out into lines, end to end (spec §4 overview).
func ShapeAndLayout(text string, fonts []otfont.Adapter, shapeParams otshape.Params, layoutOpts linelayout.Options) (Result, error) {
	shaper := otshape.NewShaper()
	runs, err := shaper.Shape(text, fonts, shapeParams)
	if err != nil {
		return Result{}, err
	}

	inputs := make([]linelayout.RunInput, len(runs))
	for i, r := range runs {
		inputs[i] = linelayout.RunInput{
			Stream:     r.Stream,
			UnitsPerEm: r.Font.UnitsPerEm(),
			Direction:  r.Direction,
			Ascent:     r.Font.Ascent(),
			Descent:    r.Font.Descent(),
			LineGap:    r.Font.LineGap(),
		}
	}
	lines := linelayout.Layout(inputs, layoutOpts)

	return Result{Runs: runs, Lines: lines}, nil
}
