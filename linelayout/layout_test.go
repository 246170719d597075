package linelayout

import (
	"testing"

	"github.com/corvid-type/shaping/gbuffer"
	"github.com/corvid-type/shaping/otfont"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamOf(text string, advance int32) *gbuffer.Stream {
	s := gbuffer.New(0)
	for i, r := range text {
		slot := gbuffer.Slot{
			SourceOffset:      uint32(i),
			Codepoint:         r,
			CodepointCount:    1,
			GlyphID:           otfont.GlyphIndex(r),
			XAdvance:          advance,
			LigatureComponent: gbuffer.NoLigatureComponent,
			MarkAttachment:    gbuffer.NoAttachment,
			CursiveAttachment: gbuffer.NoAttachment,
		}
		s.AppendCodepoint(slot)
	}
	return s
}

func TestLayoutHardBreakOnNewline(t *testing.T) {
	lines := Layout([]RunInput{{Stream: streamOf("ab\ncd", 500), UnitsPerEm: 1000}}, Options{SizePt: 10, DPI: 72})
	require.Len(t, lines, 2)
	assert.Len(t, lines[0].Glyphs, 2)
	assert.Len(t, lines[1].Glyphs, 2)
}

func TestLayoutSoftWrapsAtWhitespace(t *testing.T) {
	s := streamOf("aa bb cc", 100) // 8 glyphs incl. 2 spaces, each 100 design units wide
	scaled := otfont.ScaleToPixels(100, 10, 72, 1000)
	lines := Layout([]RunInput{{Stream: s, UnitsPerEm: 1000}}, Options{SizePt: 10, DPI: 72, MaxWidth: scaled * 5})
	require.True(t, len(lines) >= 2)
	for _, l := range lines {
		assert.LessOrEqual(t, l.Width, scaled*5+0.001)
	}
}

func TestLayoutRightAlignShiftsLine(t *testing.T) {
	s := streamOf("ab", 500)
	scaled := otfont.ScaleToPixels(500, 10, 72, 1000)
	lines := Layout([]RunInput{{Stream: s, UnitsPerEm: 1000}}, Options{
		SizePt: 10, DPI: 72, MaxWidth: scaled*2 + 1000, Alignment: AlignRight,
	})
	require.Len(t, lines, 1)
	assert.Greater(t, lines[0].Glyphs[0].X, 0.0)
}

func TestLayoutStacksLinesByFontVerticalMetrics(t *testing.T) {
	s := streamOf("ab\ncd", 500)
	lines := Layout([]RunInput{{Stream: s, UnitsPerEm: 1000, Ascent: 800, Descent: 200, LineGap: 100}}, Options{SizePt: 10, DPI: 72})
	require.Len(t, lines, 2)

	scaledAscent := otfont.ScaleToPixels(800, 10, 72, 1000)
	scaledDescent := otfont.ScaleToPixels(200, 10, 72, 1000)
	scaledGap := otfont.ScaleToPixels(100, 10, 72, 1000)

	assert.InDelta(t, scaledAscent, lines[0].Baseline, 0.001)
	assert.InDelta(t, scaledAscent+scaledDescent+scaledGap+scaledAscent, lines[1].Baseline, 0.001)
	for _, g := range lines[0].Glyphs {
		assert.InDelta(t, lines[0].Baseline, g.Y, 0.001)
	}
}

func TestLayoutNoVerticalMetricsStaysAtZero(t *testing.T) {
	s := streamOf("ab\ncd", 500)
	lines := Layout([]RunInput{{Stream: s, UnitsPerEm: 1000}}, Options{SizePt: 10, DPI: 72})
	require.Len(t, lines, 2)
	assert.Equal(t, 0.0, lines[0].Baseline)
	assert.Equal(t, 0.0, lines[1].Baseline)
}

func TestLayoutVerticalAlignmentBottomShiftsBlock(t *testing.T) {
	s := streamOf("a", 500)
	lines := Layout([]RunInput{{Stream: s, UnitsPerEm: 1000, Ascent: 800, Descent: 200}}, Options{
		SizePt: 10, DPI: 72, VerticalAlignment: VAlignBottom, BlockHeight: 1000,
	})
	require.Len(t, lines, 1)
	scaledAscent := otfont.ScaleToPixels(800, 10, 72, 1000)
	scaledDescent := otfont.ScaleToPixels(200, 10, 72, 1000)
	total := scaledAscent + scaledDescent
	assert.InDelta(t, 1000-total+scaledAscent, lines[0].Baseline, 0.001)
}

func TestLayoutRTLRunReversesVisualOrder(t *testing.T) {
	s := streamOf("ab", 500)
	lines := Layout([]RunInput{{Stream: s, UnitsPerEm: 1000, Direction: gbuffer.RTL}}, Options{SizePt: 10, DPI: 72})
	require.Len(t, lines, 1)
	require.Len(t, lines[0].Glyphs, 2)
	assert.Equal(t, otfont.GlyphIndex('b'), lines[0].Glyphs[0].GlyphID)
	assert.Equal(t, otfont.GlyphIndex('a'), lines[0].Glyphs[1].GlyphID)
}
