package otshape

import (
	"testing"

	"github.com/corvid-type/shaping/otfont"
	"github.com/corvid-type/shaping/otfont/testfont"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latinFont() *testfont.Font {
	f := testfont.New("latin", 1000)
	for r := rune('a'); r <= 'z'; r++ {
		f.MapRune(r, otfont.GlyphIndex(r)).SetMetrics(otfont.GlyphIndex(r), otfont.Metrics{AdvanceX: 500})
	}
	f.MapRune(' ', otfont.GlyphIndex(' ')).SetMetrics(otfont.GlyphIndex(' '), otfont.Metrics{AdvanceX: 300})
	return f
}

func TestAnalyzeSegmentsByScript(t *testing.T) {
	f := latinFont()
	f.MapRune('ا', 900) // Arabic alef, mapped to a glyph that has no metrics

	var a Analyzer
	runs, err := a.Analyze("abا", []otfont.Adapter{f}, Params{})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, otfont.T("latn"), runs[0].Script)
	assert.Equal(t, otfont.T("arab"), runs[1].Script)
	assert.Equal(t, 2, runs[0].Stream.Len())
	assert.Equal(t, 1, runs[1].Stream.Len())
}

func TestAnalyzeAssignsSourceOffsets(t *testing.T) {
	f := latinFont()
	var a Analyzer
	runs, err := a.Analyze("ab cd", []otfont.Adapter{f}, Params{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	slots := runs[0].Stream.Slots()
	require.Len(t, slots, 5)
	assert.EqualValues(t, 0, slots[0].SourceOffset)
	assert.EqualValues(t, 4, slots[4].SourceOffset)
}

func TestResolveFeaturesHonorsRequiredOverDisabled(t *testing.T) {
	f := testfont.New("f", 1000)
	f.AddLookups(otfont.Substitution, otfont.T("latn"), otfont.DFLT, otfont.Lookup{
		Type:     otfont.Ligature,
		Features: []otfont.Tag{otfont.T("ccmp")},
	})
	f.SetDefaultFeature(otfont.T("ccmp"), true)
	f.SetRequiredFeature(otfont.T("ccmp"))

	active := resolveFeatures(f, otfont.T("latn"), otfont.DFLT, []FeatureSetting{
		{Tag: otfont.T("ccmp"), Enabled: false}, // user tries to disable a required feature
	})
	require.Len(t, active, 1)
	assert.Equal(t, otfont.T("ccmp"), active[0])
}
