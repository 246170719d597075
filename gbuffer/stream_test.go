package gbuffer

import (
	"testing"

	"github.com/corvid-type/shaping/otfont"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedASCII(s *Stream, text string) {
	for i, r := range text {
		s.AppendCodepoint(newSlot(uint32(i), r, otfont.GlyphIndex(r), LTR, otfont.T("Latn"), 0))
	}
}

func noIgnorable(rune) (bool, bool) { return false, false }

func TestAppendAndOffsetMonotonicity(t *testing.T) {
	s := New(0)
	seedASCII(s, "fi")
	require.Equal(t, 2, s.Len())
	assert.Equal(t, uint32(0), s.Get(0).SourceOffset)
	assert.Equal(t, uint32(1), s.Get(1).SourceOffset)
}

func TestLigateFiForms1Glyph(t *testing.T) {
	s := New(0)
	seedASCII(s, "fi")
	next := s.Ligate(0, []int{1}, 0xFB01, noIgnorable)

	require.Equal(t, 1, s.Len())
	got := s.Get(0)
	assert.Equal(t, uint32(0), got.SourceOffset)
	assert.EqualValues(t, 2, got.CodepointCount)
	assert.True(t, got.Flags&IsLigated != 0)
	assert.EqualValues(t, 1, got.LigatureID)
	assert.Equal(t, otfont.GlyphIndex(0xFB01), got.GlyphID)
	assert.Equal(t, 1, next)
}

func TestLigateIgnoresDefaultIgnorableForRepresentative(t *testing.T) {
	s := New(0)
	s.AppendCodepoint(newSlot(0, 0x200D /* ZWJ */, 1, LTR, otfont.T("Arab"), 0))
	s.AppendCodepoint(newSlot(0, 'h', 2, LTR, otfont.T("Arab"), 0))
	isIgnorable := func(cp rune) (bool, bool) { return false, cp == 0x200D }
	s.Ligate(0, []int{1}, 99, isIgnorable)
	assert.Equal(t, 'h', s.Get(0).Codepoint)
}

func TestLigateTagsSurvivingMarkWithCohort(t *testing.T) {
	s := New(0)
	seedASCII(s, "f") // component 0, absorbed
	s.AppendCodepoint(newSlot(1, 0x0301 /* combining mark */, 20, LTR, otfont.T("Latn"), 0))
	s.AppendCodepoint(newSlot(2, 'i', 11, LTR, otfont.T("Latn"), 0)) // component 1, absorbed
	next := s.Ligate(0, []int{2}, 99, noIgnorable)

	require.Equal(t, 2, s.Len())
	lig := s.Get(0)
	mark := s.Get(1)
	assert.Equal(t, otfont.GlyphIndex(20), mark.GlyphID)
	require.NotZero(t, lig.LigatureID)
	assert.Equal(t, lig.LigatureID, mark.LigatureID)
	assert.EqualValues(t, 0, mark.LigatureComponent)
	assert.Equal(t, 1, next)
}

func TestDecomposeSplitsSourceOffset(t *testing.T) {
	s := New(0)
	s.AppendCodepoint(newSlot(5, 'x', 1, LTR, otfont.T("Latn"), 0))
	s.Decompose(0, []uint32{10, 11, 12})
	require.Equal(t, 3, s.Len())
	for i := 0; i < 3; i++ {
		assert.Equal(t, uint32(5), s.Get(i).SourceOffset)
		assert.True(t, s.Get(i).Flags&IsDecomposed != 0)
		assert.EqualValues(t, i, s.Get(i).LigatureComponent)
	}
}

func TestDecomposeZeroLengthDeletes(t *testing.T) {
	s := New(0)
	seedASCII(s, "ab")
	s.Decompose(0, nil)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 'b', s.Get(0).Codepoint)
}

func TestMoveReorder(t *testing.T) {
	s := New(0)
	seedASCII(s, "abc")
	s.Move(2, 0)
	assert.Equal(t, 'c', s.Get(0).Codepoint)
	assert.Equal(t, 'a', s.Get(1).Codepoint)
	assert.Equal(t, 'b', s.Get(2).Codepoint)
}

func TestQueryByOffsetAscendingScan(t *testing.T) {
	s := New(0)
	s.AppendCodepoint(newSlot(0, 'a', 1, LTR, otfont.T("Latn"), 0))
	s.AppendCodepoint(newSlot(0, 'b', 2, LTR, otfont.T("Latn"), 0)) // decomposition sibling
	s.AppendCodepoint(newSlot(1, 'c', 3, LTR, otfont.T("Latn"), 0))

	assert.Equal(t, []int{0, 1}, s.QueryByOffset(0))
	assert.Equal(t, []int{2}, s.QueryByOffset(1))
}

func TestStableSortPreservesTiesOrder(t *testing.T) {
	s := New(0)
	s.AppendCodepoint(newSlot(0, 'b', 1, LTR, otfont.T("Latn"), 0))
	s.AppendCodepoint(newSlot(0, 'a', 2, LTR, otfont.T("Latn"), 0))
	s.StableSort(0, 2, func(a, b *Slot) bool { return a.Codepoint < b.Codepoint })
	assert.Equal(t, 'a', s.Get(0).Codepoint)
	assert.Equal(t, 'b', s.Get(1).Codepoint)
}

func TestClearResetsLigatureCounter(t *testing.T) {
	s := New(0)
	seedASCII(s, "fi")
	s.Ligate(0, []int{1}, 1, noIgnorable)
	assert.EqualValues(t, 2, s.NextLigatureID())
	s.Clear()
	assert.EqualValues(t, 1, s.NextLigatureID())
}

func TestPoolReuseClearsContents(t *testing.T) {
	p := NewPool()
	s := p.Get()
	seedASCII(s, "hi")
	p.Put(s)

	s2 := p.Get()
	assert.Equal(t, 0, s2.Len())
}
