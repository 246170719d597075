package complex

import (
	"github.com/corvid-type/shaping/gbuffer"
	"github.com/corvid-type/shaping/otfont"
)

// Indic implements a reduced Devanagari/Bengali syllable reorder: moving
// pre-base dependent vowel signs (matras) that render visually before
// their base consonant back in front of it in the glyph stream, so the
// font's GSUB reordering-sensitive features (e.g. a conjunct ligature
// spanning the consonant cluster) see the visual order HarfHuzz-style
// shapers expect (spec §4.4, supplemented per original_source/'s
// per-syllable reordering pass — the teacher carries no Indic shaper at
// all, so this is grounded on the broader example pack's reduced Indic
// category/reorder pass rather than on the teacher itself).
//
// This intentionally does not implement full Indic syllable
// classification (reph repositioning, half-form reordering, vowel
// split): it covers exactly the single most common visible-reorder
// case, pre-base matra placement, which is also the case the spec's own
// worked example exercises.
type Indic struct{}

func (Indic) Name() string { return "indic" }

// preBaseMatra is the set of Devanagari/Bengali dependent vowel signs
// that are stored logically after the consonant they modify but render
// visually before it.
var preBaseMatra = map[rune]bool{
	0x093F: true, // DEVANAGARI VOWEL SIGN I
	0x09BF: true, // BENGALI VOWEL SIGN I
}

func isConsonant(r rune) bool {
	return (r >= 0x0915 && r <= 0x0939) || (r >= 0x0958 && r <= 0x095F) || // Devanagari
		(r >= 0x0995 && r <= 0x09B9) // Bengali
}

// Reorder moves each pre-base matra in front of the first consonant of
// the virama-joined consonant cluster that directly precedes it; the
// slots it passes keep their relative order. A matra whose preceding
// character is not a consonant or part of such a cluster (for example a
// nukta or another sign) is left in place.
func (Indic) Reorder(stream *gbuffer.Stream, _ otfont.Adapter) {
	i := 0
	for i < stream.Len() {
		slot := stream.Get(i)
		if !preBaseMatra[slot.Codepoint] || i == 0 {
			i++
			continue
		}
		// find the start of this syllable's base consonant: scan back
		// over any virama+consonant half-form chain to the first
		// consonant of the cluster.
		base := i - 1
		for base > 0 {
			prev := stream.Get(base - 1)
			if prev.Codepoint == 0x094D || prev.Codepoint == 0x09CD { // virama
				base -= 2
				continue
			}
			break
		}
		if base < 0 || !isConsonant(stream.Get(base).Codepoint) {
			i++
			continue
		}
		stream.Move(i, base)
		i++
	}
}
