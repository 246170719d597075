package otshape

import (
	"unicode/utf8"

	"github.com/corvid-type/shaping/gbuffer"
	"github.com/corvid-type/shaping/otfont"
)

// Run is one analyzed, single-script, single-direction, single-font span
// of input text (spec §4.3: "TextAnalyzer ... segments text into runs of
// uniform script and direction").
type Run struct {
	Script    otfont.Tag
	Direction gbuffer.Direction
	Font      otfont.Adapter
	Stream    *gbuffer.Stream
}

// Analyzer implements the TextAnalyzer (spec §4.3): it resolves bidi
// direction, segments text into script runs, maps codepoints to glyphs
// through a font-fallback chain, and emits one [gbuffer.Stream] per run
// with the active feature set recorded on every slot.
type Analyzer struct{}

// Analyze runs the full text-analysis stage over text, trying each font
// in fonts in order for every run (spec §4.3 step 4 "font fallback").
func (Analyzer) Analyze(text string, fonts []otfont.Adapter, params Params) ([]Run, error) {
	if len(fonts) == 0 {
		return nil, errNoFonts
	}
	segs := segmentRuns(text)
	runs := make([]Run, 0, len(segs))
	for _, seg := range segs {
		script := seg.script
		if params.Script != 0 {
			script = params.Script
		}
		dir := gbuffer.LTR
		switch params.Direction {
		case DirectionLTR:
			dir = gbuffer.LTR
		case DirectionRTL:
			dir = gbuffer.RTL
		default:
			if seg.dir == dirRTL {
				dir = gbuffer.RTL
			}
		}

		font, runText := pickFont(fonts, text[seg.start:seg.end])
		stream := gbuffer.New(utf8.RuneCountInString(runText))
		lang := params.Language
		if lang == 0 {
			lang = otfont.DFLT
		}
		active := resolveFeatures(font, script, lang, params.Features)

		offset := uint32(seg.start)
		for _, r := range runText {
			g := font.MapCodepoint(r)
			metrics := font.Metrics(g)
			slot := gbuffer.Slot{
				SourceOffset:      offset,
				Codepoint:         r,
				CodepointCount:    1,
				GlyphID:           g,
				Direction:         dir,
				Script:            script,
				LigatureComponent: gbuffer.NoLigatureComponent,
				MarkAttachment:    gbuffer.NoAttachment,
				CursiveAttachment: gbuffer.NoAttachment,
				XAdvance:          metrics.AdvanceX,
				YAdvance:          metrics.AdvanceY,
			}
			for _, f := range active {
				slot.SetFeature(f, true)
			}
			stream.AppendCodepoint(slot)
			offset += uint32(utf8.RuneLen(r))
		}

		runs = append(runs, Run{Script: script, Direction: dir, Font: font, Stream: stream})
	}
	return runs, nil
}

// pickFont returns the first font in the chain able to map every
// codepoint in runText, falling back to the last font (accepting
// .notdef glyphs) if none cover the whole run (spec §4.3 step 4).
func pickFont(fonts []otfont.Adapter, runText string) (otfont.Adapter, string) {
	for _, f := range fonts {
		covers := true
		for _, r := range runText {
			if f.MapCodepoint(r) == otfont.NotDef {
				covers = false
				break
			}
		}
		if covers {
			return f, runText
		}
	}
	return fonts[len(fonts)-1], runText
}

type textSegment struct {
	start, end int
	script     otfont.Tag
	dir        gDirection
}

// segmentRuns itemizes text into maximal spans of uniform script,
// letting script-neutral codepoints (digits, punctuation, spaces)
// inherit the surrounding script rather than starting a new run (spec
// §4.3 step 2).
func segmentRuns(text string) []textSegment {
	var segs []textSegment
	var cur textSegment
	haveCur := false

	for i, r := range text {
		sc := scriptFor(r)
		d := directionFor(r)
		ln := i + utf8.RuneLen(r)

		if !haveCur {
			cur = textSegment{start: i, end: ln, script: sc, dir: d}
			haveCur = true
			continue
		}
		if sc != otfont.DFLT && cur.script == otfont.DFLT {
			cur.script = sc // leading neutral codepoints take the first strong script
		}
		if sc != otfont.DFLT && sc != cur.script {
			segs = append(segs, cur)
			cur = textSegment{start: i, end: ln, script: sc, dir: d}
			continue
		}
		cur.end = ln
		if cur.dir == dirNeutral && d != dirNeutral {
			cur.dir = d
		}
	}
	if haveCur {
		segs = append(segs, cur)
	}
	return segs
}
