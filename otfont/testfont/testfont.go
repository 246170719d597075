/*
Package testfont provides a small, literal in-memory [otfont.Adapter]
used by this module's own test suites. It is not a mock of the real
OpenType parser: it holds real lookup/coverage data, the same shape the
binary parser (out of core scope, spec §1/§6) would hand the engine,
just built directly from Go struct literals instead of from decoded TTF
bytes — the same approach the teacher's internal/ttxtest package takes
(building fixture lookup tables from a declarative source rather than a
parsed binary), generalized here to plain Go literals.
*/
package testfont

import "github.com/corvid-type/shaping/otfont"

type lookupKey struct {
	stage  otfont.Stage
	script otfont.Tag
	lang   otfont.Tag
}

// Font is a literal, in-memory Adapter.
type Font struct {
	name       string
	unitsPerEm int32
	ascent     int32
	descent    int32
	lineGap    int32

	cmap       map[rune]otfont.GlyphIndex
	metrics    map[otfont.GlyphIndex]otfont.Metrics
	classes    map[otfont.GlyphIndex]otfont.GlyphClass
	markClass  map[otfont.GlyphIndex]uint8
	anchors    map[otfont.GlyphIndex]map[int]otfont.MarkAnchor
	lookups    map[lookupKey][]otfont.Lookup
	defaultFts map[otfont.Tag]bool
	requiredFt map[otfont.Tag]bool
	kern       map[[2]otfont.GlyphIndex]int32
	hasKern    bool
}

// New creates an empty test font with the given units-per-em.
func New(name string, unitsPerEm int32) *Font {
	return &Font{
		name:       name,
		unitsPerEm: unitsPerEm,
		cmap:       map[rune]otfont.GlyphIndex{},
		metrics:    map[otfont.GlyphIndex]otfont.Metrics{},
		classes:    map[otfont.GlyphIndex]otfont.GlyphClass{},
		markClass:  map[otfont.GlyphIndex]uint8{},
		anchors:    map[otfont.GlyphIndex]map[int]otfont.MarkAnchor{},
		lookups:    map[lookupKey][]otfont.Lookup{},
		defaultFts: map[otfont.Tag]bool{},
		requiredFt: map[otfont.Tag]bool{},
		kern:       map[[2]otfont.GlyphIndex]int32{},
	}
}

func (f *Font) Name() string       { return f.name }
func (f *Font) UnitsPerEm() int32  { return f.unitsPerEm }
func (f *Font) Ascent() int32      { return f.ascent }
func (f *Font) Descent() int32     { return f.descent }
func (f *Font) LineGap() int32     { return f.lineGap }

func (f *Font) MapCodepoint(cp rune) otfont.GlyphIndex {
	if g, ok := f.cmap[cp]; ok {
		return g
	}
	return otfont.NotDef
}

func (f *Font) Metrics(g otfont.GlyphIndex) otfont.Metrics { return f.metrics[g] }

func (f *Font) GlyphClass(g otfont.GlyphIndex) otfont.GlyphClass { return f.classes[g] }

func (f *Font) MarkClass(g otfont.GlyphIndex) uint8 { return f.markClass[g] }

func (f *Font) Anchor(g otfont.GlyphIndex, anchorIndex int) (otfont.MarkAnchor, bool) {
	m, ok := f.anchors[g]
	if !ok {
		return otfont.MarkAnchor{}, false
	}
	a, ok := m[anchorIndex]
	return a, ok
}

func (f *Font) Lookups(stage otfont.Stage, script, lang otfont.Tag) []otfont.Lookup {
	if ls, ok := f.lookups[lookupKey{stage, script, lang}]; ok {
		return ls
	}
	return f.lookups[lookupKey{stage, script, otfont.DFLT}]
}

func (f *Font) FeatureEnabledByDefault(tag otfont.Tag, _, _ otfont.Tag) bool {
	return f.defaultFts[tag]
}

func (f *Font) FeatureRequired(tag otfont.Tag, _, _ otfont.Tag) bool {
	return f.requiredFt[tag]
}

func (f *Font) Kern(left, right otfont.GlyphIndex) (otfont.KernPair, bool) {
	v, ok := f.kern[[2]otfont.GlyphIndex{left, right}]
	if !ok {
		return otfont.KernPair{}, false
	}
	return otfont.KernPair{Left: left, Right: right, XAdvance: v}, true
}

func (f *Font) HasKernTable() bool { return f.hasKern }

// --- Builder-style setters used by tests ---

func (f *Font) MapRune(r rune, g otfont.GlyphIndex) *Font {
	f.cmap[r] = g
	return f
}

func (f *Font) SetMetrics(g otfont.GlyphIndex, m otfont.Metrics) *Font {
	f.metrics[g] = m
	return f
}

func (f *Font) SetClass(g otfont.GlyphIndex, c otfont.GlyphClass) *Font {
	f.classes[g] = c
	return f
}

func (f *Font) SetMarkClass(g otfont.GlyphIndex, class uint8) *Font {
	f.markClass[g] = class
	return f
}

func (f *Font) SetAnchor(g otfont.GlyphIndex, anchorIndex int, a otfont.MarkAnchor) *Font {
	if f.anchors[g] == nil {
		f.anchors[g] = map[int]otfont.MarkAnchor{}
	}
	f.anchors[g][anchorIndex] = a
	return f
}

func (f *Font) AddLookups(stage otfont.Stage, script, lang otfont.Tag, lookups ...otfont.Lookup) *Font {
	key := lookupKey{stage, script, lang}
	f.lookups[key] = append(f.lookups[key], lookups...)
	return f
}

func (f *Font) SetDefaultFeature(tag otfont.Tag, enabled bool) *Font {
	f.defaultFts[tag] = enabled
	return f
}

func (f *Font) SetRequiredFeature(tag otfont.Tag) *Font {
	f.requiredFt[tag] = true
	return f
}

func (f *Font) SetKern(left, right otfont.GlyphIndex, xAdvance int32) *Font {
	f.kern[[2]otfont.GlyphIndex{left, right}] = xAdvance
	f.hasKern = true
	return f
}

// SetLineMetrics sets the font's vertical metrics (spec §4.6 line
// stacking); ascent and descent are both positive distances from the
// baseline.
func (f *Font) SetLineMetrics(ascent, descent, lineGap int32) *Font {
	f.ascent = ascent
	f.descent = descent
	f.lineGap = lineGap
	return f
}

var _ otfont.Adapter = (*Font)(nil)
