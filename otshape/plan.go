package otshape

import (
	"errors"
	"sort"

	"github.com/corvid-type/shaping/otfont"
)

var errNoFonts = errors.New("otshape: no fonts supplied")

// resolveFeatures computes the active feature set for one run (spec §4.3
// step 6 "Feature activation order"): start from the font's declared
// default features, apply caller overrides, then force every
// font-required feature back on regardless of what the caller asked for.
//
// Grounded on the teacher's otshape/plan.go tableProgram construction,
// which walks a font's FeatureList once per script/lang to build the
// same kind of default/required/user-override resolution; here that
// walk is approximated by collecting the tag set from the lookups
// otfont.Adapter already exposes, since this module's Adapter doesn't
// carry a separate enumerable FeatureList (spec §4.2's narrowed
// interface surface).
func resolveFeatures(font otfont.Adapter, script, lang otfont.Tag, overrides []FeatureSetting) []otfont.Tag {
	state := map[otfont.Tag]bool{}
	for _, t := range collectTags(font, script, lang) {
		state[t] = font.FeatureEnabledByDefault(t, script, lang)
	}
	for _, o := range overrides {
		state[o.Tag] = o.Enabled
	}
	for t := range state {
		if font.FeatureRequired(t, script, lang) {
			state[t] = true
		}
	}
	out := make([]otfont.Tag, 0, len(state))
	for t, on := range state {
		if on {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func collectTags(font otfont.Adapter, script, lang otfont.Tag) []otfont.Tag {
	seen := map[otfont.Tag]bool{}
	var tags []otfont.Tag
	add := func(lk otfont.Lookup) {
		for _, t := range lk.Features {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	for _, lk := range font.Lookups(otfont.Substitution, script, lang) {
		add(lk)
	}
	for _, lk := range font.Lookups(otfont.Positioning, script, lang) {
		add(lk)
	}
	return tags
}
