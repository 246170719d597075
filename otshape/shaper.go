package otshape

import (
	"github.com/corvid-type/shaping/gbuffer"
	"github.com/corvid-type/shaping/gpos"
	"github.com/corvid-type/shaping/gsub"
	"github.com/corvid-type/shaping/otfont"
	"github.com/corvid-type/shaping/otshape/complex"
)

// Shaper drives the whole pipeline (spec §4 overview): text analysis,
// complex-script pre-processing, substitution, positioning and the
// legacy kern fallback, one run at a time.
//
// Grounded on the teacher's otshape/pipeline.go stage sequence
// (analyze -> substitute -> position), adapted to call out to this
// module's gsub/gpos engines and complex shapers instead of the
// teacher's harfbuzz-derived lookup tables.
type Shaper struct {
	analyzer Analyzer
	gsub     *gsub.Engine
	gpos     *gpos.Engine
}

// NewShaper builds a Shaper ready to use.
func NewShaper() *Shaper {
	return &Shaper{analyzer: Analyzer{}}
}

// Shape runs the full pipeline over text using the given font-fallback
// chain, returning one processed run per analyzed script/direction/font
// span (spec §4.3 step 4, §4.4, §4.5).
func (s *Shaper) Shape(text string, fonts []otfont.Adapter, params Params) ([]Run, error) {
	runs, err := s.analyzer.Analyze(text, fonts, params)
	if err != nil {
		return nil, err
	}

	gsubEngine := s.gsub
	if gsubEngine == nil {
		gsubEngine = gsub.New(gsub.Options{IsIgnorable: params.isIgnorable()})
	}
	gposEngine := s.gpos
	if gposEngine == nil {
		gposEngine = gpos.New()
	}

	lang := params.Language
	if lang == 0 {
		lang = otfont.DFLT
	}

	for i := range runs {
		run := &runs[i]
		shaper := complex.For(run.Script)
		shaper.Reorder(run.Stream, run.Font)

		if err := gsubEngine.Apply(run.Stream, run.Font, run.Script, lang); err != nil {
			return nil, err
		}
		ranPairOrCursive, err := gposEngine.Apply(run.Stream, run.Font, run.Script, lang)
		if err != nil {
			return nil, err
		}
		if !ranPairOrCursive && !params.DisableKerningFallback {
			gposEngine.ApplyKernFallback(run.Stream, run.Font)
		}
	}
	return runs, nil
}

// Streams extracts the ordered slice of streams from Shape's result; each
// becomes the Stream of one [linelayout.RunInput] (spec §4.6).
func Streams(runs []Run) []*gbuffer.Stream {
	out := make([]*gbuffer.Stream, len(runs))
	for i, r := range runs {
		out[i] = r.Stream
	}
	return out
}
