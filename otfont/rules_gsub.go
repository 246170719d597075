package otfont

// This file defines the concrete GSUB-equivalent subtable shapes the
// substitution engine (package gsub) dispatches on by Lookup.Type,
// grounded on otlayout/gsub.go's lksub.Support/GSubPayload concrete
// structs (e.g. gsubLookupType1Fmt1/Fmt2, gsubLookupType2Fmt1) but
// collapsed to one representation per OpenType lookup type rather than
// per binary subtable format, since format-1-vs-format-2 is a storage
// compaction choice the binary parser (out of core scope) already
// resolves before the engine ever sees a Subtable.

// SingleSubst is GSUB LookupType 1: one glyph maps to another
// (spec §4.4 item 1).
type SingleSubst struct {
	Coverage
	Mapping []GlyphIndex // indexed by Coverage index
}

func (s SingleSubst) Substitute(coverageIndex int) (GlyphIndex, bool) {
	if coverageIndex < 0 || coverageIndex >= len(s.Mapping) {
		return 0, false
	}
	return s.Mapping[coverageIndex], true
}

// MultipleSubst is GSUB LookupType 2: one glyph maps to a sequence of
// zero or more glyphs (spec §4.4 item 2; zero tolerated per spec §9).
type MultipleSubst struct {
	Coverage
	Sequences [][]GlyphIndex // indexed by Coverage index
}

func (s MultipleSubst) Sequence(coverageIndex int) ([]GlyphIndex, bool) {
	if coverageIndex < 0 || coverageIndex >= len(s.Sequences) {
		return nil, false
	}
	return s.Sequences[coverageIndex], true
}

// AlternateSubst is GSUB LookupType 3: one glyph maps to one of a set of
// alternates (spec §4.4 item 3). The engine always picks index 0; it
// takes no alternate-index hint.
type AlternateSubst struct {
	Coverage
	Alternates [][]GlyphIndex // indexed by Coverage index
}

func (s AlternateSubst) AlternateSet(coverageIndex int) ([]GlyphIndex, bool) {
	if coverageIndex < 0 || coverageIndex >= len(s.Alternates) {
		return nil, false
	}
	return s.Alternates[coverageIndex], true
}

// LigatureRule is one ligature: the trailing components (the first,
// covered, component is implicit) and the resulting glyph.
type LigatureRule struct {
	Components []GlyphIndex // components after the first (covered) one
	Ligature   GlyphIndex
}

// LigatureSubst is GSUB LookupType 4: N glyphs map to 1 (spec §4.4 item 4).
type LigatureSubst struct {
	Coverage
	Rules [][]LigatureRule // indexed by Coverage index of the first component
}

func (s LigatureSubst) RulesFor(coverageIndex int) []LigatureRule {
	if coverageIndex < 0 || coverageIndex >= len(s.Rules) {
		return nil
	}
	return s.Rules[coverageIndex]
}

// NestedLookup applies a referenced lookup at a relative input position,
// used by contextual/chaining-contextual rules (spec §4.4 item 5).
type NestedLookup struct {
	AtInputIndex int // index into the rule's Input sequence
	LookupIndex  int // index into the font's lookup list for this stage
}

// ContextRule is one (backtrack, input, lookahead) rule plus the nested
// lookups to apply at specific input positions.
type ContextRule struct {
	Backtrack []GlyphIndex // matched right-to-left immediately before the covered glyph
	Input     []GlyphIndex // Input[0] is the covered glyph itself
	Lookahead []GlyphIndex
	Actions   []NestedLookup
}

// ContextualSubst is GSUB LookupType 5/6: contextual and chaining
// contextual substitution share one rule shape here; an empty Backtrack
// and Lookahead degenerates type 6 into plain type 5 (spec §4.4 item 5).
type ContextualSubst struct {
	Coverage
	Rules [][]ContextRule // indexed by Coverage index of Input[0]
}

func (s ContextualSubst) RulesFor(coverageIndex int) []ContextRule {
	if coverageIndex < 0 || coverageIndex >= len(s.Rules) {
		return nil
	}
	return s.Rules[coverageIndex]
}

// ReverseChainingSingleSubst is GSUB LookupType 8: single substitution
// applied right-to-left with full context (spec §4.4 item 6).
type ReverseChainingSingleSubst struct {
	Coverage
	Backtrack []GlyphIndex
	Lookahead []GlyphIndex
	Mapping   []GlyphIndex // indexed by Coverage index
}

func (s ReverseChainingSingleSubst) Substitute(coverageIndex int) (GlyphIndex, bool) {
	if coverageIndex < 0 || coverageIndex >= len(s.Mapping) {
		return 0, false
	}
	return s.Mapping[coverageIndex], true
}
