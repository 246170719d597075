package complex

import (
	"testing"

	"github.com/corvid-type/shaping/gbuffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(text string) *gbuffer.Stream {
	s := gbuffer.New(0)
	for i, r := range text {
		s.AppendCodepoint(gbuffer.Slot{
			SourceOffset:      uint32(i),
			Codepoint:         r,
			CodepointCount:    1,
			LigatureComponent: gbuffer.NoLigatureComponent,
			MarkAttachment:    gbuffer.NoAttachment,
			CursiveAttachment: gbuffer.NoAttachment,
		})
	}
	return s
}

func TestArabicAssignsMedialFeatureToMiddleLetter(t *testing.T) {
	// beh (dual-joining), meem (dual-joining), beh: a three-letter run
	// should mark the middle letter medial.
	s := seed(string([]rune{0x0628, 0x0645, 0x0628}))
	Arabic{}.Reorder(s, nil)

	slots := s.Slots()
	assert.True(t, slots[0].FeatureEnabled(initFeature))
	assert.True(t, slots[1].FeatureEnabled(mediFeature))
	assert.True(t, slots[2].FeatureEnabled(finaFeature))
}

func TestArabicRightJoiningLetterNeverJoinsNext(t *testing.T) {
	// beh, dal (right-joining only): dal cannot pass a join to whatever
	// follows it, so a trailing beh must start fresh as isolated.
	s := seed(string([]rune{0x0628, 0x062F, 0x0628}))
	Arabic{}.Reorder(s, nil)

	slots := s.Slots()
	assert.True(t, slots[1].FeatureEnabled(finaFeature))
	assert.True(t, slots[2].FeatureEnabled(isolFeature))
}

func TestIndicMovesPreBaseMatraBeforeConsonant(t *testing.T) {
	// KA + VOWEL SIGN I renders as matra-consonant visually.
	s := seed(string([]rune{0x0915, 0x093F}))
	require.Equal(t, 2, s.Len())

	Indic{}.Reorder(s, nil)

	slots := s.Slots()
	assert.Equal(t, rune(0x093F), slots[0].Codepoint)
	assert.Equal(t, rune(0x0915), slots[1].Codepoint)
}
