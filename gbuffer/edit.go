package gbuffer

import (
	"sort"

	"github.com/corvid-type/shaping/otfont"
)

func glyphIndex(g uint32) otfont.GlyphIndex { return otfont.GlyphIndex(g) }

func sortInts(a []int)     { sort.Ints(a) }
func sortIntsDesc(a []int) { sort.Sort(sort.Reverse(sort.IntSlice(a))) }

// IsIgnorable classifies a codepoint as default-ignorable or a zero-width
// joiner for the purposes of choosing a ligature's representative
// codepoint (spec §9). The Unicode character database is an external
// collaborator (spec §6), so Ligate takes this as a parameter rather than
// importing a concrete provider.
type IsIgnorable func(cp rune) (defaultIgnorable, zwj bool)

// Replace1_1 performs a single (1:1) substitution: it preserves
// SourceOffset, Codepoint and CodepointCount, clears ligature/attachment
// fields, and sets IsSubstituted (spec §4.1 "replace_1_1").
func (s *Stream) Replace1_1(i int, newGlyph uint32) {
	slot := &s.slots[i]
	slot.GlyphID = glyphIndex(newGlyph)
	slot.LigatureID = 0
	slot.LigatureComponent = NoLigatureComponent
	slot.clearAttachments()
	slot.Flags |= IsSubstituted
}

// Ligate absorbs the slots at removalIndices into the slot at targetI,
// forming an N:1 ligature (spec §4.1 "ligate"). targetI is the leftmost
// component (component 0); removalIndices are the remaining components
// and must all be > targetI, matching how GSUB ligature substitution
// always keeps its first glyph position and removes the following ones.
// Internally removalIndices are processed right-to-left to keep earlier
// indices valid while deleting (spec §4.1: "processed right-to-left to
// keep indices valid"). Returns the index one past the ligature glyph,
// i.e. where scanning should resume (spec §4.4: "resume scanning after
// the rewritten region").
//
// The representative codepoint is the first non-default-ignorable,
// non-ZWJ component codepoint among target+removed, scanned in logical
// (left-to-right, pre-removal) order — this is the spec §9 open-question
// resolution, deliberately evaluated against each component's *own*
// codepoint rather than a stale value carried from a previous slot.
func (s *Stream) Ligate(targetI int, removalIndices []int, newGlyph uint32, ignorable IsIgnorable) int {
	all := append([]int{targetI}, removalIndices...)
	sortInts(all)

	ligID := s.NextLigatureID()
	count := uint16(0)
	representative := s.slots[targetI].Codepoint
	foundRepresentative := false
	for _, idx := range all {
		comp := s.slots[idx]
		count += comp.CodepointCount
		if !foundRepresentative {
			if di, zwj := ignorable(comp.Codepoint); !di && !zwj {
				representative = comp.Codepoint
				foundRepresentative = true
			}
		}
	}

	target := &s.slots[targetI]
	target.GlyphID = glyphIndex(newGlyph)
	target.Codepoint = representative
	target.CodepointCount = count
	target.clearAttachments()
	target.Flags |= IsLigated
	target.LigatureID = ligID
	target.LigatureComponent = 0

	// Tag every slot in the logical span that is *not* being absorbed —
	// marks sitting between or around ligature components, skipped by
	// the lookup's skip filter rather than consumed — with the cohort id
	// and the component index of the absorbed glyph they trailed, so
	// positioning can later re-attach them to the right component (spec
	// §4.4 "Ligature bookkeeping"). Absorbed slots are walked too, purely
	// to track which component the scan has passed; they are deleted
	// immediately after and never carry a stale tag.
	componentOf := make(map[int]int, len(all))
	for k, idx := range all {
		componentOf[idx] = k
	}
	maxIdx := all[len(all)-1]
	currentComponent := 0
	for pos := targetI; pos <= maxIdx; pos++ {
		if k, ok := componentOf[pos]; ok {
			currentComponent = k
			continue
		}
		s.slots[pos].LigatureID = ligID
		s.slots[pos].LigatureComponent = int16(currentComponent)
	}

	sorted := append([]int(nil), removalIndices...)
	sortIntsDesc(sorted)
	s.removeIndicesDescending(sorted, targetI)
	return targetI + 1
}

// Decompose replaces slot i with the first of newGlyphs and inserts
// len(newGlyphs)-1 additional slots after it, all carrying the original
// SourceOffset; LigatureComponent is assigned 0..k-1 and IsDecomposed is
// set on all resulting slots (spec §4.1 "decompose").
func (s *Stream) Decompose(i int, newGlyphs []uint32) {
	if len(newGlyphs) == 0 {
		// tolerated zero-length multiple substitution (spec §9): delete.
		s.Remove(i, 1)
		return
	}
	original := s.slots[i]
	replacement := make([]Slot, len(newGlyphs))
	for k, g := range newGlyphs {
		slot := original
		slot.GlyphID = glyphIndex(g)
		slot.LigatureID = 0
		slot.LigatureComponent = int16(k)
		slot.clearAttachments()
		slot.Flags |= IsDecomposed
		if len(newGlyphs) > 1 {
			slot.Flags |= IsMultiplied
		}
		if k > 0 {
			slot.CodepointCount = 0 // only the first slot carries the codepoint accounting
		}
		replacement[k] = slot
	}
	s.spliceReplace(i, i+1, replacement)
}

// Remove deletes count slots starting at i (spec §4.1 "remove"), used by
// zero-length multiple substitution (spec §9 tolerance).
func (s *Stream) Remove(i, count int) {
	if count <= 0 {
		return
	}
	s.slots = append(s.slots[:i], s.slots[i+count:]...)
	s.cursor = 0
}

// spliceReplace swaps the half-open range [from,to) for replacement,
// keeping the rest of the stream intact.
func (s *Stream) spliceReplace(from, to int, replacement []Slot) {
	tail := append([]Slot(nil), s.slots[to:]...)
	s.slots = append(s.slots[:from], replacement...)
	s.slots = append(s.slots, tail...)
	s.cursor = 0
}

// removeIndicesDescending deletes slots at the given indices (already
// sorted descending) except keep, compacting the stream once.
func (s *Stream) removeIndicesDescending(descendingIdx []int, keep int) {
	for _, idx := range descendingIdx {
		if idx == keep {
			continue
		}
		s.slots = append(s.slots[:idx], s.slots[idx+1:]...)
	}
	s.cursor = 0
}
