package gbuffer

import "github.com/corvid-type/shaping/otfont"

// Direction is the resolved bidi direction of a slot's run.
type Direction uint8

const (
	LTR Direction = iota
	RTL
)

// RunID identifies the text run (font, size, style) a slot belongs to.
type RunID uint32

// FeatureState records whether one feature tag is active at a slot.
// Order matters for diagnostics and deterministic iteration, so the
// stream keeps it as a slice rather than a map (spec §3: "ordered set").
type FeatureState struct {
	Tag     otfont.Tag
	Enabled bool
}

// SlotFlags are the monotonic, set-once bits later lookups rely on
// (spec §3 "flags").
type SlotFlags uint8

const (
	IsSubstituted SlotFlags = 1 << iota
	IsLigated
	IsDecomposed
	IsMultiplied
)

// NoAttachment is the sentinel value for Slot.MarkAttachment and
// Slot.CursiveAttachment meaning "no attachment".
const NoAttachment int16 = -1

// NoLigatureComponent is the sentinel for Slot.LigatureComponent meaning
// "not part of a decomposition".
const NoLigatureComponent int16 = -1

// Slot is one element of a [Stream] (spec §3).
type Slot struct {
	SourceOffset uint32 // byte/codepoint index into the original text; never edited after creation
	Codepoint    rune   // representative Unicode scalar that seeded this slot
	CodepointCount uint16 // number of original codepoints this slot now represents; 0 on the trailing slots of a decomposition

	GlyphID otfont.GlyphIndex

	Direction Direction
	Script    otfont.Tag
	RunRef    RunID

	Features []FeatureState

	LigatureID        uint32 // 0 = none
	LigatureComponent int16  // NoLigatureComponent = not part of a decomposition

	MarkAttachment    int16 // slot-index back-reference, NoAttachment = none
	CursiveAttachment int16 // slot-index back-reference, NoAttachment = none

	Flags SlotFlags

	XAdvance, YAdvance int32
	XOffset, YOffset   int32
}

// newSlot builds the initial slot for one input codepoint, as emitted by
// the text analyzer (spec §4.3 step 5).
func newSlot(sourceOffset uint32, cp rune, glyph otfont.GlyphIndex, dir Direction, script otfont.Tag, run RunID) Slot {
	return Slot{
		SourceOffset:      sourceOffset,
		Codepoint:         cp,
		CodepointCount:    1,
		GlyphID:           glyph,
		Direction:         dir,
		Script:            script,
		RunRef:            run,
		LigatureComponent: NoLigatureComponent,
		MarkAttachment:    NoAttachment,
		CursiveAttachment: NoAttachment,
	}
}

// FeatureEnabled reports whether tag is active at this slot.
func (s *Slot) FeatureEnabled(tag otfont.Tag) bool {
	for _, f := range s.Features {
		if f.Tag == tag {
			return f.Enabled
		}
	}
	return false
}

// SetFeature sets (or appends) the enabled state of tag at this slot,
// preserving first-seen order.
func (s *Slot) SetFeature(tag otfont.Tag, enabled bool) {
	for i := range s.Features {
		if s.Features[i].Tag == tag {
			s.Features[i].Enabled = enabled
			return
		}
	}
	s.Features = append(s.Features, FeatureState{Tag: tag, Enabled: enabled})
}

func (s *Slot) clearAttachments() {
	s.MarkAttachment = NoAttachment
	s.CursiveAttachment = NoAttachment
}
