package shaping

import (
	"testing"

	"github.com/corvid-type/shaping/linelayout"
	"github.com/corvid-type/shaping/otfont"
	"github.com/corvid-type/shaping/otfont/testfont"
	"github.com/corvid-type/shaping/otshape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kerningDemoFont() otfont.Adapter {
	f := testfont.New("demo", 1000)
	f.MapRune('A', 10).SetMetrics(10, otfont.Metrics{AdvanceX: 560})
	f.MapRune('V', 11).SetMetrics(11, otfont.Metrics{AdvanceX: 560})
	f.SetKern(10, 11, -80) // spec §4.6 worked example
	return f
}

func TestShapeAndLayoutAppliesKernWorkedExample(t *testing.T) {
	font := kerningDemoFont()
	res, err := ShapeAndLayout("AV", []otfont.Adapter{font}, otshape.Params{}, linelayout.Options{SizePt: 10, DPI: 72})
	require.NoError(t, err)
	require.Len(t, res.Runs, 1)

	slots := res.Runs[0].Stream.Slots()
	require.Len(t, slots, 2)
	// base 560-unit advance from font metrics, plus the -80 legacy kern
	// fallback delta applied to the left glyph of the pair.
	assert.EqualValues(t, 480, slots[0].XAdvance)

	require.Len(t, res.Lines, 1)
	require.Len(t, res.Lines[0].Glyphs, 2)
	// 560 design units base advance, minus an 80-unit kern, scaled at
	// 10pt/72dpi over a 1000-unit em (units * size * dpi / (72 * units_per_em)).
	expected := otfont.ScaleToPixels(560-80, 10, 72, 1000)
	assert.InDelta(t, expected, res.Lines[0].Glyphs[1].X, 0.001)
}

func TestShapeAndLayoutFiLigature(t *testing.T) {
	f := testfont.New("demo", 1000)
	f.MapRune('f', 5).SetMetrics(5, otfont.Metrics{AdvanceX: 400})
	f.MapRune('i', 6).SetMetrics(6, otfont.Metrics{AdvanceX: 300})
	ligGlyph := otfont.GlyphIndex(99)
	f.SetMetrics(ligGlyph, otfont.Metrics{AdvanceX: 620})
	f.AddLookups(otfont.Substitution, otfont.T("latn"), otfont.DFLT, otfont.Lookup{
		Type: otfont.Ligature,
		Subtables: []otfont.Subtable{otfont.LigatureSubst{
			Coverage: otfont.NewCoverage(5),
			Rules:    [][]otfont.LigatureRule{{{Components: []otfont.GlyphIndex{6}, Ligature: ligGlyph}}},
		}},
		Features: []otfont.Tag{otfont.T("liga")},
	})
	f.SetDefaultFeature(otfont.T("liga"), true)

	res, err := ShapeAndLayout("fi", []otfont.Adapter{f}, otshape.Params{}, linelayout.Options{SizePt: 10, DPI: 72})
	require.NoError(t, err)
	require.Len(t, res.Runs, 1)

	slots := res.Runs[0].Stream.Slots()
	require.Len(t, slots, 1)
	assert.Equal(t, ligGlyph, slots[0].GlyphID)
	assert.EqualValues(t, 2, slots[0].CodepointCount)
}
