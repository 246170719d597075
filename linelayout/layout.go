package linelayout

import (
	"unicode"

	"github.com/corvid-type/shaping/gbuffer"
	"github.com/corvid-type/shaping/otfont"
)

// Alignment is the per-line horizontal alignment mode (spec §4.6 step 4).
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
	AlignJustify
)

// VerticalAlignment is the whole-block vertical alignment mode (spec §3
// LayoutOptions.vertical_alignment, §4.6 "shifts the block by the
// analogous factor relative to total block height").
type VerticalAlignment uint8

const (
	VAlignTop VerticalAlignment = iota
	VAlignCenter
	VAlignBottom
	VAlignBaseline
)

// Options configures one call to [Layout].
type Options struct {
	SizePt    float64 // requested type size, in points
	DPI       float64 // device resolution
	MaxWidth  float64 // wrap width in pixels; 0 disables soft wrapping
	TabWidth  float64 // tab stop width in pixels; 0 uses 4 em at SizePt (the font's space advance is not consulted)
	Alignment Alignment

	// VerticalAlignment and BlockHeight together implement spec §4.6's
	// block-level vertical shift, mirroring Alignment/MaxWidth for the
	// horizontal axis. BlockHeight is the available vertical "room" in
	// pixels; 0 disables the shift (the block is simply stacked from the
	// top, matching this package's prior unconditional behavior).
	VerticalAlignment VerticalAlignment
	BlockHeight       float64
}

// RunInput is one shaped run handed to line layout: its glyph stream,
// the font it was shaped against (for design-unit scaling, spec §4.6
// step 1) and its resolved direction (for visual reordering, step 3).
// Ascent, Descent and LineGap are the originating font's vertical
// metrics in design units (spec §4.6 "ascent+descent+line_gap per
// line"); zero values (the default for callers that don't populate
// them) degrade to no inter-line spacing, matching this package's
// original glyph-offset-only vertical placement.
type RunInput struct {
	Stream     *gbuffer.Stream
	UnitsPerEm int32
	Direction  gbuffer.Direction
	Ascent     int32
	Descent    int32
	LineGap    int32
}

// PositionedGlyph is one glyph placed at a device-pixel pen position.
type PositionedGlyph struct {
	GlyphID      otfont.GlyphIndex
	X, Y         float64
	Advance      float64
	SourceOffset uint32
	Direction    gbuffer.Direction

	isSpace                  bool // stretchable gap candidate for justification
	ascent, descent, lineGap float64
}

// Line is one laid-out, aligned line of positioned glyphs.
type Line struct {
	Glyphs []PositionedGlyph
	Width  float64

	// Ascent, Descent and LineGap are the maximum scaled vertical
	// metrics among the fonts contributing glyphs to this line (spec
	// §4.6 line-height computation). Baseline is this line's pen_y after
	// stacking and vertical alignment.
	Ascent, Descent, LineGap float64
	Baseline                 float64
}

// item is an internal, not-yet-positioned scaled glyph carried through
// the line-breaking pass before alignment.
type item struct {
	glyph     otfont.GlyphIndex
	advance   float64
	offsetX   float64
	offsetY   float64
	source    uint32
	direction gbuffer.Direction
	codepoint rune

	ascent, descent, lineGap float64
}

// Layout scales, breaks and aligns a sequence of shaped runs into lines
// (spec §4.6). Runs are consumed in logical (reading) order; within an
// individual run, right-to-left runs are emitted in visual order by
// walking their slots back to front, matching how a shaping engine
// already lays out one run's glyphs once direction is resolved (spec
// §4.3 step 1) — full cross-run bidi reordering for mixed-direction
// paragraphs is not attempted here.
func Layout(runs []RunInput, opts Options) []Line {
	items := scaleRuns(runs, opts)
	lines := breakLines(items, opts)
	for i := range lines {
		align(&lines[i], opts)
	}
	stackVertical(lines)
	alignVertical(lines, opts)
	return lines
}

func scaleRuns(runs []RunInput, opts Options) []item {
	var items []item
	for _, r := range runs {
		ascent := otfont.ScaleToPixels(r.Ascent, opts.SizePt, opts.DPI, r.UnitsPerEm)
		descent := otfont.ScaleToPixels(r.Descent, opts.SizePt, opts.DPI, r.UnitsPerEm)
		lineGap := otfont.ScaleToPixels(r.LineGap, opts.SizePt, opts.DPI, r.UnitsPerEm)
		slots := r.Stream.Slots()
		if r.Direction == gbuffer.RTL {
			for i := len(slots) - 1; i >= 0; i-- {
				items = append(items, scaleSlot(slots[i], r, opts, ascent, descent, lineGap))
			}
		} else {
			for i := range slots {
				items = append(items, scaleSlot(slots[i], r, opts, ascent, descent, lineGap))
			}
		}
	}
	return items
}

func scaleSlot(s gbuffer.Slot, r RunInput, opts Options, ascent, descent, lineGap float64) item {
	return item{
		glyph:     s.GlyphID,
		advance:   otfont.ScaleToPixels(s.XAdvance, opts.SizePt, opts.DPI, r.UnitsPerEm),
		offsetX:   otfont.ScaleToPixels(s.XOffset, opts.SizePt, opts.DPI, r.UnitsPerEm),
		offsetY:   otfont.ScaleToPixels(s.YOffset, opts.SizePt, opts.DPI, r.UnitsPerEm),
		source:    s.SourceOffset,
		direction: s.Direction,
		codepoint: s.Codepoint,
		ascent:    ascent,
		descent:   descent,
		lineGap:   lineGap,
	}
}

// breakLines splits items at '\n' (hard breaks) and, when MaxWidth is
// set, at the last whitespace item before a line would overflow (soft
// wrap, spec §4.6 step 2). When the line holds no whitespace to break
// at, it is broken right before the overflowing glyph, so an overlong
// word is split between glyphs across lines; a single glyph wider than
// MaxWidth gets a line of its own.
func breakLines(items []item, opts Options) []Line {
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 8 * otfont.ScaleToPixels(500, opts.SizePt, opts.DPI, 1000)
	}

	var lines []Line
	var cur []PositionedGlyph
	var penX float64
	lastBreak := -1 // index into cur of the last break-safe position

	flush := func() {
		var ascent, descent, lineGap float64
		for _, g := range cur {
			ascent = max(ascent, g.ascent)
			descent = max(descent, g.descent)
			lineGap = max(lineGap, g.lineGap)
		}
		lines = append(lines, Line{Glyphs: cur, Width: penX, Ascent: ascent, Descent: descent, LineGap: lineGap})
		cur = nil
		penX = 0
		lastBreak = -1
	}

	for _, it := range items {
		if it.codepoint == '\n' {
			flush()
			continue
		}
		if it.codepoint == '\t' {
			next := tabWidth
			if tabWidth > 0 {
				steps := float64(int(penX/tabWidth) + 1)
				next = steps * tabWidth
			}
			penX = next
			continue
		}

		if opts.MaxWidth > 0 && len(cur) > 0 && penX+it.advance > opts.MaxWidth {
			if lastBreak >= 0 {
				tail := append([]PositionedGlyph(nil), cur[lastBreak+1:]...)
				cur = cur[:lastBreak+1]
				penX = cur[len(cur)-1].X + cur[len(cur)-1].Advance
				flush()
				// re-lay the carried-over tail at the start of the new line
				var x float64
				for i := range tail {
					tail[i].X = x
					x += tail[i].Advance
					cur = append(cur, tail[i])
				}
				penX = x
			} else {
				flush()
			}
		}

		g := PositionedGlyph{
			GlyphID:      it.glyph,
			X:            penX + it.offsetX,
			Y:            it.offsetY,
			Advance:      it.advance,
			SourceOffset: it.source,
			Direction:    it.direction,
			isSpace:      unicode.IsSpace(it.codepoint),
			ascent:       it.ascent,
			descent:      it.descent,
			lineGap:      it.lineGap,
		}
		cur = append(cur, g)
		penX += it.advance
		if unicode.IsSpace(it.codepoint) {
			lastBreak = len(cur) - 1
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		var ascent, descent, lineGap float64
		for _, g := range cur {
			ascent = max(ascent, g.ascent)
			descent = max(descent, g.descent)
			lineGap = max(lineGap, g.lineGap)
		}
		lines = append(lines, Line{Glyphs: cur, Width: penX, Ascent: ascent, Descent: descent, LineGap: lineGap})
	}
	return lines
}

// stackVertical assigns each line's Baseline by accumulating line heights
// top-down (spec §4.6 "ascent+descent+line_gap per line"); lines whose
// Ascent/Descent/LineGap are all zero (the default when callers don't
// populate [RunInput]'s vertical metrics) stay at Baseline 0, matching
// this package's original glyph-offset-only vertical placement.
func stackVertical(lines []Line) {
	var y float64
	for i := range lines {
		y += lines[i].Ascent
		lines[i].Baseline = y
		for g := range lines[i].Glyphs {
			lines[i].Glyphs[g].Y += y
		}
		y += lines[i].Descent + lines[i].LineGap
	}
}

// alignVertical shifts the whole block per opts.VerticalAlignment,
// mirroring align's horizontal shift (spec §4.6 "Vertical alignment
// shifts the block by the analogous factor relative to total block
// height"). A zero BlockHeight disables the shift, since spec.md's
// LayoutOptions has no explicit container-height field to measure
// "room" against; callers that want Center/Bottom shifting must supply
// the height of the box the block is placed into. Top and Baseline never
// shift the block.
func alignVertical(lines []Line, opts Options) {
	if opts.BlockHeight <= 0 || len(lines) == 0 {
		return
	}
	last := lines[len(lines)-1]
	total := last.Baseline + last.Descent + last.LineGap
	slack := opts.BlockHeight - total
	if slack <= 0 {
		return
	}
	var k float64
	switch opts.VerticalAlignment {
	case VAlignCenter:
		k = 0.5
	case VAlignBottom:
		k = 1
	default: // VAlignTop, VAlignBaseline: no shift, see DESIGN.md
		return
	}
	shift := slack * k
	for i := range lines {
		lines[i].Baseline += shift
		for g := range lines[i].Glyphs {
			lines[i].Glyphs[g].Y += shift
		}
	}
}

// align applies the line's horizontal alignment in place (spec §4.6
// step 4). Justify distributes the shortfall across whitespace glyphs;
// a line with no whitespace glyphs degrades to left alignment.
func align(l *Line, opts Options) {
	if opts.MaxWidth <= 0 {
		return
	}
	slack := opts.MaxWidth - l.Width
	if slack <= 0 {
		return
	}
	switch opts.Alignment {
	case AlignRight:
		for i := range l.Glyphs {
			l.Glyphs[i].X += slack
		}
		l.Width = opts.MaxWidth
	case AlignCenter:
		offset := slack / 2
		for i := range l.Glyphs {
			l.Glyphs[i].X += offset
		}
		l.Width = opts.MaxWidth
	case AlignJustify:
		justify(l, slack)
	}
}

// justify distributes slack evenly across every stretchable (space)
// glyph's trailing gap; a line with no whitespace glyphs is left short
// rather than fabricating a break point (spec §4.6 step 4 edge case).
func justify(l *Line, slack float64) {
	var gapIdx []int
	for i := range l.Glyphs {
		if l.Glyphs[i].isSpace {
			gapIdx = append(gapIdx, i)
		}
	}
	if len(gapIdx) == 0 {
		return
	}
	per := slack / float64(len(gapIdx))
	shift := 0.0
	gi := 0
	for i := range l.Glyphs {
		l.Glyphs[i].X += shift
		if gi < len(gapIdx) && gapIdx[gi] == i {
			shift += per
			gi++
		}
	}
	l.Width += slack
}
