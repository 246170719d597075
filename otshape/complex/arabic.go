package complex

import (
	"github.com/corvid-type/shaping/gbuffer"
	"github.com/corvid-type/shaping/otfont"
)

// Arabic assigns one of the four positional joining features (isol,
// init, medi, fina) to every joining letter in a run, based on the
// Unicode joining type of itself and its nearest non-transparent
// neighbors (spec §4.4 "complex pre-processing ... Arabic joining
// forms"). It does not reorder the stream: joining is a feature-gating
// concern that the generic GSUB engine resolves once the right feature
// is active at each slot, mirroring how the teacher's otarabic state
// machine feeds joining-position flags into feature selection rather
// than mutating glyph order.
type Arabic struct{}

func (Arabic) Name() string { return "arabic" }

var (
	isolFeature = otfont.T("isol")
	initFeature = otfont.T("init")
	mediFeature = otfont.T("medi")
	finaFeature = otfont.T("fina")
)

// joinBehavior is the reduced Arabic_Joining_Type classification this
// module needs: whether a letter can receive a join from its visual-
// logical predecessor and extend one to its successor. Transparent
// codepoints (combining marks) are skipped entirely when searching for
// neighbors, per the Unicode joining algorithm.
type joinBehavior struct {
	joinsPrev bool
	joinsNext bool
}

// rightJoiningOnly lists the common Arabic letters whose Joining_Type is
// Right_Joining (R): they accept a join from the previous letter but
// never extend one to the next (alef, dal/thal, ra/zain/waw family and
// a handful of extended-Arabic look-alikes).
var rightJoiningOnly = map[rune]bool{
	0x0622: true, 0x0623: true, 0x0624: true, 0x0625: true, 0x0627: true, // alef forms
	0x0629: true, // teh marbuta
	0x062F: true, 0x0630: true, // dal, thal
	0x0631: true, 0x0632: true, // ra, zain
	0x0648: true, // waw
	0x0698: true, // jeh
	0x06C4: true, 0x06CD: true,
	0x06D2: true, 0x06D3: true, // yeh barree
}

// isTransparent reports the harakat/combining-mark ranges (Joining_Type
// Transparent): these codepoints never affect neighbor lookup.
func isTransparent(r rune) bool {
	switch {
	case r >= 0x0610 && r <= 0x061A:
		return true
	case r >= 0x064B && r <= 0x065F:
		return true
	case r == 0x0670:
		return true
	case r >= 0x06D6 && r <= 0x06DC:
		return true
	case r >= 0x06DF && r <= 0x06E4:
		return true
	case r >= 0x06E7 && r <= 0x06E8:
		return true
	case r >= 0x06EA && r <= 0x06ED:
		return true
	}
	return false
}

func isArabicLetter(r rune) bool {
	return (r >= 0x0620 && r <= 0x064A) || (r >= 0x066E && r <= 0x06D3) || (r >= 0x06EE && r <= 0x06FF)
}

func behaviorOf(r rune) (joinBehavior, bool) {
	if !isArabicLetter(r) {
		return joinBehavior{}, false
	}
	if rightJoiningOnly[r] {
		return joinBehavior{joinsPrev: true, joinsNext: false}, true
	}
	return joinBehavior{joinsPrev: true, joinsNext: true}, true
}

// Reorder, despite the interface name, performs Arabic's feature
// assignment pass: it never moves slots.
func (Arabic) Reorder(stream *gbuffer.Stream, _ otfont.Adapter) {
	slots := stream.Slots()
	n := len(slots)

	// prevJoins/nextJoins default to "no join" so the boundary
	// letters of a run resolve to isolated/initial/final correctly.
	for i := 0; i < n; i++ {
		if isTransparent(slots[i].Codepoint) {
			continue
		}
		cur, ok := behaviorOf(slots[i].Codepoint)
		if !ok {
			continue
		}

		prevJoins := false
		for j := i - 1; j >= 0; j-- {
			if isTransparent(slots[j].Codepoint) {
				continue
			}
			if b, ok := behaviorOf(slots[j].Codepoint); ok {
				prevJoins = b.joinsNext && cur.joinsPrev
			}
			break
		}
		nextJoins := false
		for j := i + 1; j < n; j++ {
			if isTransparent(slots[j].Codepoint) {
				continue
			}
			if b, ok := behaviorOf(slots[j].Codepoint); ok {
				nextJoins = cur.joinsNext && b.joinsPrev
			}
			break
		}

		var feature otfont.Tag
		switch {
		case prevJoins && nextJoins:
			feature = mediFeature
		case prevJoins && !nextJoins:
			feature = finaFeature
		case !prevJoins && nextJoins:
			feature = initFeature
		default:
			feature = isolFeature
		}
		slots[i].SetFeature(feature, true)
	}
}
