package gsub

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
			Codepoint:         rune(g),
			CodepointCount:    1,
			GlyphID:           g,
			LigatureComponent: gbuffer.NoLigatureComponent,
			MarkAttachment:    gbuffer.NoAttachment,
			CursiveAttachment: gbuffer.NoAttachment,
		}
		slot.SetFeature(otfont.T("liga"), true)
		s.AppendCodepoint(slot)
	}
}

func TestSingleSubstReplacesGlyph(t *testing.T) {
	f := testfont.New("f", 1000)
	lk := otfont.Lookup{
		Type: otfont.Single,
		Subtables: []otfont.Subtable{
			otfont.SingleSubst{Coverage: otfont.NewCoverage(5), Mapping: []otfont.GlyphIndex{9}},
		},
		Features: []otfont.Tag{otfont.T("liga")},
	}
	f.AddLookups(otfont.Substitution, otfont.T("latn"), otfont.DFLT, lk)

	s := gbuffer.New(0)
	seed(s, 5)

	eng := New(Options{})
	require.NoError(t, eng.Apply(s, f, otfont.T("latn"), otfont.DFLT))
	assert.Equal(t, otfont.GlyphIndex(9), s.Get(0).GlyphID)
}

func TestLigatureSubstFormsLigature(t *testing.T) {
	f := testfont.New("f", 1000)
	ligature := otfont.LigatureSubst{
		Coverage: otfont.NewCoverage(10),
		Rules: [][]otfont.LigatureRule{
			{{Components: []otfont.GlyphIndex{11}, Ligature: 99}},
		},
	}
	lk := otfont.Lookup{
		Type:      otfont.Ligature,
		Subtables: []otfont.Subtable{ligature},
		Features:  []otfont.Tag{otfont.T("liga")},
	}
	f.AddLookups(otfont.Substitution, otfont.T("latn"), otfont.DFLT, lk)

	s := gbuffer.New(0)
	seed(s, 10, 11)

	eng := New(Options{})
	require.NoError(t, eng.Apply(s, f, otfont.T("latn"), otfont.DFLT))

	require.Equal(t, 1, s.Len())
	got := s.Get(0)
	assert.Equal(t, otfont.GlyphIndex(99), got.GlyphID)
	assert.True(t, got.Flags&gbuffer.IsLigated != 0)
}

func TestIneligibleLookupIsSkipped(t *testing.T) {
	f := testfont.New("f", 1000)
	lk := otfont.Lookup{
		Type: otfont.Single,
		Subtables: []otfont.Subtable{
			otfont.SingleSubst{Coverage: otfont.NewCoverage(5), Mapping: []otfont.GlyphIndex{9}},
		},
		Features: []otfont.Tag{otfont.T("smcp")}, // not active on these slots
	}
	f.AddLookups(otfont.Substitution, otfont.T("latn"), otfont.DFLT, lk)

	s := gbuffer.New(0)
	seed(s, 5)

	eng := New(Options{})
	require.NoError(t, eng.Apply(s, f, otfont.T("latn"), otfont.DFLT))
	assert.Equal(t, otfont.GlyphIndex(5), s.Get(0).GlyphID)
}

func TestMarkIsSkippedByIgnoreMarksFlag(t *testing.T) {
	f := testfont.New("f", 1000)
	f.SetClass(20, otfont.ClassMark)
	ligature := otfont.LigatureSubst{
		Coverage: otfont.NewCoverage(10),
		Rules: [][]otfont.LigatureRule{
			{{Components: []otfont.GlyphIndex{11}, Ligature: 99}},
		},
	}
	lk := otfont.Lookup{
		Type:      otfont.Ligature,
		Flags:     otfont.IgnoreMarks,
		Subtables: []otfont.Subtable{ligature},
		Features:  []otfont.Tag{otfont.T("liga")},
	}
	f.AddLookups(otfont.Substitution, otfont.T("latn"), otfont.DFLT, lk)

	s := gbuffer.New(0)
	seed(s, 10, 20, 11) // mark glyph 20 sits between the ligature components

	eng := New(Options{})
	require.NoError(t, eng.Apply(s, f, otfont.T("latn"), otfont.DFLT))

	require.Equal(t, 2, s.Len())
	assert.Equal(t, otfont.GlyphIndex(99), s.Get(0).GlyphID)
	assert.Equal(t, otfont.GlyphIndex(20), s.Get(1).GlyphID)

	// the skipped mark keeps its own slot but joins the ligature cohort,
	// tagged with the component it trailed, so positioning can later
	// re-attach it (spec §4.4 "Ligature bookkeeping").
	lig := s.Get(0)
	mark := s.Get(1)
	require.NotZero(t, lig.LigatureID)
	assert.Equal(t, lig.LigatureID, mark.LigatureID)
	assert.EqualValues(t, 0, mark.LigatureComponent)
}
