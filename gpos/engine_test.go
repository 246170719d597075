package gpos

import (
	"testing"

	"github.com/corvid-type/shaping/gbuffer"
	"github.com/corvid-type/shaping/otfont"
	"github.com/corvid-type/shaping/otfont/testfont"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(s *gbuffer.Stream, glyphs ...otfont.GlyphIndex) {
	for i, g := range glyphs {
		slot := gbuffer.Slot{
			SourceOffset:      uint32(i),
			GlyphID:           g,
			CodepointCount:    1,
			LigatureComponent: gbuffer.NoLigatureComponent,
			MarkAttachment:    gbuffer.NoAttachment,
			CursiveAttachment: gbuffer.NoAttachment,
		}
		slot.SetFeature(otfont.T("kern"), true)
		s.AppendCodepoint(slot)
	}
}

func TestPairAdjustmentAppliesBothValues(t *testing.T) {
	f := testfont.New("f", 1000)
	pair := otfont.PairPos{
		Coverage: otfont.NewCoverage(5),
		Pairs: [][]otfont.PairValue{
			{{Second: 6, First: otfont.ValueRecord{XAdvance: -40}, SecondVal: otfont.ValueRecord{XAdvance: 0}}},
		},
	}
	lk := otfont.Lookup{
		Type:      otfont.PairAdjustment,
		Subtables: []otfont.Subtable{pair},
		Features:  []otfont.Tag{otfont.T("kern")},
	}
	f.AddLookups(otfont.Positioning, otfont.T("latn"), otfont.DFLT, lk)

	s := gbuffer.New(0)
	seed(s, 5, 6)

	eng := New()
	ranPair, err := eng.Apply(s, f, otfont.T("latn"), otfont.DFLT)
	require.NoError(t, err)
	assert.True(t, ranPair)
	assert.EqualValues(t, -40, s.Get(0).XAdvance)
}

func TestKernFallbackSkippedWhenGPOSPairRan(t *testing.T) {
	f := testfont.New("f", 1000)
	f.SetKern(5, 6, -999) // should be ignored since GPOS pair already ran
	pair := otfont.PairPos{
		Coverage: otfont.NewCoverage(5),
		Pairs: [][]otfont.PairValue{
			{{Second: 6, First: otfont.ValueRecord{XAdvance: -40}}},
		},
	}
	lk := otfont.Lookup{Type: otfont.PairAdjustment, Subtables: []otfont.Subtable{pair}, Features: []otfont.Tag{otfont.T("kern")}}
	f.AddLookups(otfont.Positioning, otfont.T("latn"), otfont.DFLT, lk)

	s := gbuffer.New(0)
	seed(s, 5, 6)

	eng := New()
	ranPair, err := eng.Apply(s, f, otfont.T("latn"), otfont.DFLT)
	require.NoError(t, err)
	if !ranPair {
		eng.ApplyKernFallback(s, f)
	}
	assert.EqualValues(t, -40, s.Get(0).XAdvance)
}

func TestLegacyKernFallbackAppliesWhenNoGPOSPair(t *testing.T) {
	f := testfont.New("f", 1000)
	f.SetKern(5, 6, -60)

	s := gbuffer.New(0)
	seed(s, 5, 6)

	eng := New()
	ranPair, err := eng.Apply(s, f, otfont.T("latn"), otfont.DFLT)
	require.NoError(t, err)
	require.False(t, ranPair)
	eng.ApplyKernFallback(s, f)
	assert.EqualValues(t, -60, s.Get(0).XAdvance)
}

func TestMarkToBasePositionsMarkRelativeToAnchor(t *testing.T) {
	f := testfont.New("f", 1000)
	f.SetClass(20, otfont.ClassMark)
	f.SetAnchor(10, 0, otfont.MarkAnchor{X: 300, Y: 400})
	f.SetAnchor(20, 0, otfont.MarkAnchor{X: 50, Y: 50})

	sub := otfont.MarkAttach{
		MarkCoverage:    otfont.NewCoverage(20),
		BaseCoverage:    otfont.NewCoverage(10),
		MarkAnchorIndex: 0,
		BaseAnchorIndex: 0,
	}
	lk := otfont.Lookup{Type: otfont.MarkToBase, Subtables: []otfont.Subtable{sub}, Features: []otfont.Tag{otfont.T("mark")}}
	f.AddLookups(otfont.Positioning, otfont.T("latn"), otfont.DFLT, lk)

	s := gbuffer.New(0)
	seed(s, 10, 20)
	s.At(1).XAdvance = 120 // the mark's own font advance, must be zeroed once attached
	for i := range s.Slots() {
		s.At(i).SetFeature(otfont.T("mark"), true)
	}

	eng := New()
	_, err := eng.Apply(s, f, otfont.T("latn"), otfont.DFLT)
	require.NoError(t, err)

	mark := s.Get(1)
	assert.EqualValues(t, 250, mark.XOffset) // 300 - 50
	assert.EqualValues(t, 350, mark.YOffset) // 400 - 50
	assert.EqualValues(t, 0, mark.MarkAttachment)
	assert.EqualValues(t, 0, mark.XAdvance) // spec §4.5 step 2: attached marks consume no horizontal space
}
