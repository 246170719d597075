package otshape

import (
	"github.com/corvid-type/shaping/otfont"
	"golang.org/x/text/language"
)

// FeatureSetting is a caller-requested override of one feature's active
// state, taking precedence over the font's default feature set but never
// over a font-required feature (spec §4.3 step 6).
type FeatureSetting struct {
	Tag     otfont.Tag
	Enabled bool
}

// Params configures one call to [Shaper.Shape] (spec §4.3/§4.4 "Feature
// activation order").
type Params struct {
	// Language, when non-zero, is the OpenType language tag used for every
	// run; when zero, every run uses DFLT.
	Language otfont.Tag

	// Locale is carried on Params but is not read by the shaper: no
	// language tag, digit shaping or feature choice is derived from it.
	Locale language.Tag

	// Script, when non-zero, forces every run to this OpenType script tag.
	// Unicode script detection still runs and still decides where one run
	// ends and the next begins.
	Script otfont.Tag

	// Direction, when non-Auto, overrides the bidi-derived direction for
	// every run.
	Direction DirectionOverride

	// Features lists caller-requested feature overrides, applied in
	// order after the font's default feature set and before required
	// features are forced back on (spec §4.3 step 6).
	Features []FeatureSetting

	// IsIgnorable classifies codepoints as default-ignorable/ZWJ for
	// ligature representative-codepoint selection (spec §9). The Unicode
	// character database is an external collaborator (spec §6).
	IsIgnorable func(cp rune) (defaultIgnorable, zwj bool)

	// DisableKerningFallback turns off the legacy 'kern' table fallback
	// (spec §4.5 step 3, LayoutOptions.apply_kerning). Kerning fallback
	// is on by default, matching how a shaper is normally expected to
	// behave out of the box; set this to reproduce apply_kerning=false.
	DisableKerningFallback bool
}

// DirectionOverride forces a run's direction instead of deriving it from
// bidi analysis.
type DirectionOverride uint8

const (
	DirectionAuto DirectionOverride = iota
	DirectionLTR
	DirectionRTL
)

func defaultIsIgnorable(cp rune) (bool, bool) {
	const zwj = 0x200D
	if cp == zwj {
		return false, true
	}
	// a conservative, narrow default-ignorable set covering the common
	// invisible formatting characters; a full Default_Ignorable_Code_Point
	// property table is an external collaborator (spec §6).
	switch {
	case cp == 0x00AD: // soft hyphen
		return true, false
	case cp >= 0x200B && cp <= 0x200F: // ZWSP, ZWNJ, direction marks
		return true, false
	case cp >= 0xFE00 && cp <= 0xFE0F: // variation selectors
		return true, false
	}
	return false, false
}

func (p Params) isIgnorable() func(rune) (bool, bool) {
	if p.IsIgnorable != nil {
		return p.IsIgnorable
	}
	return defaultIsIgnorable
}
