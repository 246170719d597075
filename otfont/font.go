package otfont

import "fmt"

// GlyphIndex is a font-local glyph identifier. 0 always denotes the
// font's .notdef glyph.
type GlyphIndex uint32

// NotDef is the reserved glyph index for "missing glyph".
const NotDef GlyphIndex = 0

// Tag is a 4-byte, space-padded-right OpenType tag, used for scripts,
// languages and features (e.g. "liga", "kern", "DFLT").
type Tag uint32

// NewTag builds a Tag from four bytes, following the OpenType convention.
func NewTag(a, b, c, d byte) Tag {
	return Tag(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d))
}

// T builds a Tag from a string of up to 4 bytes, space-padding on the right.
func T(s string) Tag {
	var b [4]byte
	for i := range b {
		b[i] = ' '
	}
	copy(b[:], s)
	return NewTag(b[0], b[1], b[2], b[3])
}

func (t Tag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// DFLT is the default script/language tag.
var DFLT = T("DFLT")

// Stage identifies which table a lookup belongs to.
type Stage uint8

const (
	Substitution Stage = iota
	Positioning
)

func (s Stage) String() string {
	if s == Substitution {
		return "GSUB"
	}
	return "GPOS"
}

// LookupFlags mirrors the OpenType lookupFlag bitfield that drives the
// shaping engine's skip filter (spec §4.4 "Skip filter semantics").
type LookupFlags uint16

const (
	IgnoreBaseGlyphs LookupFlags = 1 << iota
	IgnoreLigatures
	IgnoreMarks
	UseMarkFilteringSet
	markAttachmentTypeShift = 8
)

// MarkAttachmentType extracts the mark-attachment-type filter, 0 = unset.
func (f LookupFlags) MarkAttachmentType() uint8 {
	return uint8(f >> markAttachmentTypeShift)
}

// GlyphClass is the GDEF-assigned class of a glyph, used by the skip filter.
type GlyphClass uint8

const (
	ClassUnknown GlyphClass = iota
	ClassBase
	ClassLigature
	ClassMark
	ClassComponent
)

// LookupType distinguishes GSUB/GPOS rule shapes; the engine dispatches on
// this and treats subtable payloads as opaque rule data (spec §4.2).
type LookupType uint8

const (
	Single LookupType = iota + 1
	Multiple
	Alternate
	Ligature
	Contextual
	ChainingContextual
	ReverseChainingSingle
	// GPOS-only types, numbered independently in real OpenType but kept
	// in the same enum here since the engine already dispatches by Stage.
	PairAdjustment
	CursiveAttachment
	MarkToBase
	MarkToLigature
	MarkToMark
)

// Subtable is opaque rule data; the concrete shapes live in this package
// (rules_gsub.go, rules_gpos.go), and gsub/gpos type-assert against them
// for the lookup types they handle.
type Subtable interface {
	// Coverage reports whether glyph g is covered by this subtable, and
	// if so its coverage index (used by format-2 arrays).
	Coverage(g GlyphIndex) (index int, ok bool)
}

// Lookup is one GSUB or GPOS lookup: a type, the flags controlling the
// skip filter, and an ordered list of subtables tried in order until one
// matches (spec §4.4: "test all subtables in order; on the first match...").
type Lookup struct {
	Type          LookupType
	Flags         LookupFlags
	MarkFilterSet map[GlyphIndex]bool // nil unless UseMarkFilteringSet is set
	Subtables     []Subtable

	// Features lists every feature tag that references this lookup for
	// the script/lang it was queried under. A lookup is eligible for a
	// run when at least one of these tags is active at some slot in the
	// run (spec §4.4: "a lookup is eligible if any of its features is
	// active at any slot in the run").
	Features []Tag
}

// BoundingBox is an axis-aligned glyph outline box in design units.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY int32
}

func (b BoundingBox) Dx() int32 { return b.MaxX - b.MinX }
func (b BoundingBox) Dy() int32 { return b.MaxY - b.MinY }

// Metrics holds the unhinted, design-unit metrics of one glyph.
type Metrics struct {
	AdvanceX, AdvanceY int32
	BearingX, BearingY int32
	BBox               BoundingBox
}

// MarkAnchor is a single anchor point, in design units, relative to the
// glyph's origin — used by cursive and mark attachment (spec §4.5).
type MarkAnchor struct {
	X, Y int32
}

// KernPair is one legacy 'kern' table adjustment (spec §4.5 step 3).
type KernPair struct {
	Left, Right GlyphIndex
	XAdvance    int32
}

// Adapter is the read-only, immutable-after-construction facade over one
// font that the shaping pipeline consumes (spec §4.2). Implementations
// are free to share a single Adapter across concurrently running shaping
// calls (spec §5): all methods must be safe for concurrent use by
// multiple goroutines once construction has completed.
type Adapter interface {
	// Name is a human-readable identifier for diagnostics and is not
	// otherwise interpreted by the shaping engine.
	Name() string

	// UnitsPerEm is the font's design-unit grid size (spec §4.6 scaling).
	UnitsPerEm() int32

	// Ascent, Descent and LineGap are the font's vertical metrics in
	// design units, used to stack lines and apply vertical alignment
	// (spec §4.6 "total block height (ascent+descent+line_gap per
	// line)"). Ascent and Descent are both reported as positive
	// distances from the baseline, so a line's height is
	// Ascent()+Descent()+LineGap().
	Ascent() int32
	Descent() int32
	LineGap() int32

	// MapCodepoint resolves a Unicode scalar to a glyph index using the
	// Unicode-preferred cmap subtable; returns NotDef if unmapped.
	MapCodepoint(cp rune) GlyphIndex

	// Metrics returns the unhinted metrics for a glyph in design units.
	Metrics(g GlyphIndex) Metrics

	// GlyphClass reports the GDEF glyph class for the skip filter. Fonts
	// without a GDEF table return ClassUnknown for every glyph, and the
	// engine degrades to the identity mapping for the ignore-flags in
	// that case (spec §4.2 "Error behavior").
	GlyphClass(g GlyphIndex) GlyphClass

	// MarkClass reports the GDEF mark-attachment class of a mark glyph,
	// used by LookupFlags.MarkAttachmentType filtering. 0 if not a mark
	// or the font lacks mark-class data.
	MarkClass(g GlyphIndex) uint8

	// Anchor returns the anchor point with the given index for a glyph,
	// used by cursive/mark positioning lookups. ok is false if the glyph
	// or anchor index is not defined.
	Anchor(g GlyphIndex, anchorIndex int) (MarkAnchor, bool)

	// Lookups returns, in the font's declared order, the lookups that
	// apply for a given stage/script/language (spec §4.2). An empty
	// result means the engine must treat the stage as a no-op for this
	// run, not fail the shaping call (spec §7 "MalformedTable"/degrade).
	Lookups(stage Stage, script, lang Tag) []Lookup

	// FeatureEnabledByDefault reports whether the font's script/lang
	// default feature set includes tag (spec §4.3 step 6).
	FeatureEnabledByDefault(tag Tag, script, lang Tag) bool

	// FeatureRequired reports whether tag is a required feature for
	// script/lang (spec §4.3 step 6: "Required features are always on").
	FeatureRequired(tag Tag, script, lang Tag) bool

	// Kern returns the legacy 'kern' table pair adjustment for a glyph
	// pair, if any (spec §4.5 step 3). ok is false if absent.
	Kern(left, right GlyphIndex) (KernPair, bool)

	// HasKernTable reports whether the font carries a legacy kern table
	// at all, independent of any specific pair.
	HasKernTable() bool
}

// ErrMalformedTable is returned by Adapter constructors (outside this
// package's scope) when a required table fails sanity checks; per spec
// §7 this is fatal and eager, never raised during shaping itself.
type ErrMalformedTable struct {
	Table string
	Cause error
}

func (e *ErrMalformedTable) Error() string {
	return fmt.Sprintf("otfont: malformed %q table: %v", e.Table, e.Cause)
}

func (e *ErrMalformedTable) Unwrap() error { return e.Cause }
