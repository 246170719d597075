package otfont

import "sort"

// Coverage is a sorted set of glyph ids, mirroring an OpenType Coverage
// table: membership test plus a stable coverage index used by
// format-2/array-indexed subtables (spec §4.2 "subtables (coverage +
// rule data)").
type Coverage []GlyphIndex

// NewCoverage builds a Coverage from an unsorted glyph list.
func NewCoverage(glyphs ...GlyphIndex) Coverage {
	c := append(Coverage(nil), glyphs...)
	sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	return c
}

// Coverage implements the Subtable.Coverage contract shared by every rule
// shape: all of them embed a Coverage and delegate to it, except
// MarkAttach, which delegates to its MarkCoverage.
func (c Coverage) Coverage(g GlyphIndex) (int, bool) {
	i := sort.Search(len(c), func(i int) bool { return c[i] >= g })
	if i < len(c) && c[i] == g {
		return i, true
	}
	return 0, false
}
