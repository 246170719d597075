package otshape

import (
	"unicode"

	"github.com/corvid-type/shaping/otfont"
	"golang.org/x/text/unicode/bidi"
)

// scriptRange pairs a stdlib Unicode script table with the OpenType
// script tag the engine should query a font's lookups under.
type scriptRange struct {
	table *unicode.RangeTable
	tag   otfont.Tag
}

// scriptTable enumerates the scripts this module gives dedicated
// complex-shaping treatment to, plus the common scripts a font's default
// shaper handles directly. Unlisted scripts fall back to otfont.DFLT.
var scriptTable = []scriptRange{
	{unicode.Arabic, otfont.T("arab")},
	{unicode.Hebrew, otfont.T("hebr")},
	{unicode.Devanagari, otfont.T("deva")},
	{unicode.Bengali, otfont.T("beng")},
	{unicode.Thai, otfont.T("thai")},
	{unicode.Han, otfont.T("hani")},
	{unicode.Hiragana, otfont.T("kana")},
	{unicode.Katakana, otfont.T("kana")},
	{unicode.Hangul, otfont.T("hang")},
	{unicode.Cyrillic, otfont.T("cyrl")},
	{unicode.Greek, otfont.T("grek")},
	{unicode.Latin, otfont.T("latn")},
}

// scriptFor reports the OpenType script tag for a codepoint, per the
// Unicode Script property (spec §4.3 step 2 "script segmentation").
// Codepoints outside scriptTable's dedicated scripts, and codepoints
// common to all scripts (digits, punctuation), report otfont.DFLT so
// they inherit the surrounding run rather than starting a new one.
func scriptFor(r rune) otfont.Tag {
	for _, sr := range scriptTable {
		if unicode.Is(sr.table, r) {
			return sr.tag
		}
	}
	return otfont.DFLT
}

// directionFor reports the bidi directionality class of a codepoint
// using golang.org/x/text/unicode/bidi (spec §4.3 step 1 "resolve bidi
// embedding levels").
func directionFor(r rune) gDirection {
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.R, bidi.AL:
		return dirRTL
	case bidi.L:
		return dirLTR
	default:
		return dirNeutral
	}
}

type gDirection uint8

const (
	dirNeutral gDirection = iota
	dirLTR
	dirRTL
)
