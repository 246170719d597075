package otfont

// ValueRecord is an OpenType GPOS value record: an additive adjustment to
// a slot's advance/offset.
type ValueRecord struct {
	XAdvance, YAdvance int32
	XOffset, YOffset   int32
}

// Add returns the field-wise sum of two value records.
func (v ValueRecord) Add(o ValueRecord) ValueRecord {
	return ValueRecord{
		XAdvance: v.XAdvance + o.XAdvance,
		YAdvance: v.YAdvance + o.YAdvance,
		XOffset:  v.XOffset + o.XOffset,
		YOffset:  v.YOffset + o.YOffset,
	}
}

// SinglePos is GPOS LookupType 1 (spec §4.5 step 2 "Single adjustment").
type SinglePos struct {
	Coverage
	Values []ValueRecord // indexed by Coverage index
}

func (s SinglePos) ValueFor(coverageIndex int) (ValueRecord, bool) {
	if coverageIndex < 0 || coverageIndex >= len(s.Values) {
		return ValueRecord{}, false
	}
	return s.Values[coverageIndex], true
}

// PairValue is the pair of adjustments a PairPos rule applies to the two
// glyphs it matches.
type PairValue struct {
	Second    GlyphIndex
	First     ValueRecord
	SecondVal ValueRecord
}

// PairPos is GPOS LookupType 2 (spec §4.5 step 2 "Pair adjustment"),
// supporting both glyph-based and class-based subtables uniformly by
// pre-expanding classes into explicit glyph pairs at construction time —
// the engine only ever sees concrete glyph pairs, matching how the font
// adapter already resolves class membership before handing rule data to
// the core (spec §4.2: "the engine treats subtables as opaque rule data").
type PairPos struct {
	Coverage
	Pairs [][]PairValue // indexed by Coverage index of the first glyph
}

func (p PairPos) PairsFor(coverageIndex int) []PairValue {
	if coverageIndex < 0 || coverageIndex >= len(p.Pairs) {
		return nil
	}
	return p.Pairs[coverageIndex]
}

// CursivePos is GPOS LookupType 3 (spec §4.5 step 2 "Cursive attachment").
// EntryExit carries, per covered glyph, whether it defines an entry
// and/or exit anchor; anchor coordinates themselves are read through
// Adapter.Anchor using AnchorEntry/AnchorExit as the anchor index.
type CursivePos struct {
	Coverage
	HasEntry []bool // indexed by Coverage index
	HasExit  []bool
}

const (
	AnchorEntry = 0
	AnchorExit  = 1
)

func (c CursivePos) Entry(coverageIndex int) bool {
	return coverageIndex >= 0 && coverageIndex < len(c.HasEntry) && c.HasEntry[coverageIndex]
}

func (c CursivePos) Exit(coverageIndex int) bool {
	return coverageIndex >= 0 && coverageIndex < len(c.HasExit) && c.HasExit[coverageIndex]
}

// MarkAttach is the shared shape of GPOS LookupTypes 4/5/6 (mark-to-base,
// mark-to-ligature, mark-to-mark; spec §4.5 step 2). BaseCoverage
// identifies the base/ligature/mark glyphs a mark may attach to;
// BaseAnchorIndex is the Adapter anchor index to read on the base glyph,
// and MarkAnchorIndex is the anchor index to read on the mark glyph.
// For mark-to-ligature, BaseComponentAnchorIndex provides one anchor
// index per ligature component, selected by the mark's LigatureComponent.
type MarkAttach struct {
	MarkCoverage Coverage
	BaseCoverage Coverage

	MarkAnchorIndex int

	BaseAnchorIndex          int   // used when BaseComponentAnchorIndex is nil
	BaseComponentAnchorIndex []int // mark-to-ligature: one entry per component
}

// Coverage implements Subtable by delegating to MarkCoverage.
func (m MarkAttach) Coverage(g GlyphIndex) (int, bool) { return m.MarkCoverage.Coverage(g) }

// ContextualPos mirrors ContextualSubst for GPOS contextual/chaining
// positioning (spec §4.5 step 2 "Contextual / chaining contextual").
type ContextualPos struct {
	Coverage
	Rules [][]ContextRule
}

func (c ContextualPos) RulesFor(coverageIndex int) []ContextRule {
	if coverageIndex < 0 || coverageIndex >= len(c.Rules) {
		return nil
	}
	return c.Rules[coverageIndex]
}
