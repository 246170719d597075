package main

import (
	"github.com/corvid-type/shaping/otfont"
	"github.com/corvid-type/shaping/otfont/testfont"
)

// demoFont builds a tiny in-memory Latin font: one glyph per ASCII
// letter and space, an "fi" ligature gated by the liga feature (on by
// default), and an "AV" kerning pair via the legacy kern table, enough
// to exercise every stage of the pipeline from the CLI.
func demoFont() otfont.Adapter {
	f := testfont.New("demo-latin", 1000)

	glyph := otfont.GlyphIndex(1)
	nextGlyph := func() otfont.GlyphIndex {
		glyph++
		return glyph
	}

	letters := map[rune]otfont.GlyphIndex{}
	for r := rune('a'); r <= 'z'; r++ {
		g := nextGlyph()
		letters[r] = g
		f.MapRune(r, g).SetMetrics(g, otfont.Metrics{AdvanceX: 500})
	}
	for r := rune('A'); r <= 'Z'; r++ {
		g := nextGlyph()
		letters[r] = g
		f.MapRune(r, g).SetMetrics(g, otfont.Metrics{AdvanceX: 560})
	}
	spaceGlyph := nextGlyph()
	f.MapRune(' ', spaceGlyph).SetMetrics(spaceGlyph, otfont.Metrics{AdvanceX: 300})

	fiLigatureGlyph := nextGlyph()
	f.SetMetrics(fiLigatureGlyph, otfont.Metrics{AdvanceX: 520})

	ligature := otfont.LigatureSubst{
		Coverage: otfont.NewCoverage(letters['f']),
		Rules: [][]otfont.LigatureRule{
			{{Components: []otfont.GlyphIndex{letters['i']}, Ligature: fiLigatureGlyph}},
		},
	}
	f.AddLookups(otfont.Substitution, otfont.T("latn"), otfont.DFLT, otfont.Lookup{
		Type:      otfont.Ligature,
		Subtables: []otfont.Subtable{ligature},
		Features:  []otfont.Tag{otfont.T("liga")},
	})
	f.SetDefaultFeature(otfont.T("liga"), true)

	f.SetKern(letters['A'], letters['V'], -60)
	f.SetLineMetrics(800, 200, 100)

	return f
}
