package gpos

import (
	"github.com/corvid-type/shaping/gbuffer"
	"github.com/corvid-type/shaping/otfont"
)

// Engine applies a font's GPOS-equivalent lookups to a stream in the
// font's declared lookup order (spec §4.5).
type Engine struct{}

// New creates a positioning Engine.
func New() *Engine { return &Engine{} }

// Apply runs every eligible positioning lookup for script/lang, in the
// order the font declares them (spec §4.5 step 2). It reports whether at
// least one PairAdjustment or CursiveAttachment lookup was eligible, so
// callers can decide whether the legacy kern fallback (step 3) applies.
func (e *Engine) Apply(stream *gbuffer.Stream, font otfont.Adapter, script, lang otfont.Tag) (ranPairOrCursive bool, err error) {
	lookups := font.Lookups(otfont.Positioning, script, lang)
	for _, lk := range lookups {
		if !eligible(stream, lk) {
			continue
		}
		if lk.Type == otfont.PairAdjustment || lk.Type == otfont.CursiveAttachment {
			ranPairOrCursive = true
		}
		e.applyLookup(stream, font, lk)
	}
	return ranPairOrCursive, nil
}

func eligible(stream *gbuffer.Stream, lk otfont.Lookup) bool {
	if len(lk.Features) == 0 {
		return true
	}
	slots := stream.Slots()
	for _, tag := range lk.Features {
		for i := range slots {
			if slots[i].FeatureEnabled(tag) {
				return true
			}
		}
	}
	return false
}

func skipSlot(font otfont.Adapter, lk otfont.Lookup, slot *gbuffer.Slot) bool {
	class := font.GlyphClass(slot.GlyphID)
	switch class {
	case otfont.ClassBase:
		if lk.Flags&otfont.IgnoreBaseGlyphs != 0 {
			return true
		}
	case otfont.ClassLigature:
		if lk.Flags&otfont.IgnoreLigatures != 0 {
			return true
		}
	case otfont.ClassMark:
		if lk.Flags&otfont.IgnoreMarks != 0 {
			return true
		}
		if lk.Flags&otfont.UseMarkFilteringSet != 0 {
			if lk.MarkFilterSet != nil && !lk.MarkFilterSet[slot.GlyphID] {
				return true
			}
		} else if want := lk.Flags.MarkAttachmentType(); want != 0 {
			if font.MarkClass(slot.GlyphID) != want {
				return true
			}
		}
	}
	return false
}

func (e *Engine) applyLookup(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup) {
	switch lk.Type {
	case otfont.Single:
		e.applySingle(stream, font, lk)
	case otfont.PairAdjustment:
		e.applyPair(stream, font, lk)
	case otfont.CursiveAttachment:
		e.applyCursive(stream, font, lk)
	case otfont.MarkToBase, otfont.MarkToLigature, otfont.MarkToMark:
		e.applyMarkAttach(stream, font, lk)
	case otfont.Contextual, otfont.ChainingContextual:
		e.applyContextual(stream, font, lk)
	}
}

func applyValue(slot *gbuffer.Slot, v otfont.ValueRecord) {
	slot.XAdvance += v.XAdvance
	slot.YAdvance += v.YAdvance
	slot.XOffset += v.XOffset
	slot.YOffset += v.YOffset
}

func (e *Engine) applySingle(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup) {
	for i := 0; i < stream.Len(); i++ {
		slot := stream.At(i)
		if skipSlot(font, lk, slot) {
			continue
		}
		for _, st := range lk.Subtables {
			sub, ok := st.(otfont.SinglePos)
			if !ok {
				continue
			}
			idx, ok := sub.Coverage(slot.GlyphID)
			if !ok {
				continue
			}
			if v, ok := sub.ValueFor(idx); ok {
				applyValue(slot, v)
				if !stream.ChargeOps(1) {
					tracer().Errorf("gpos: single adjustment exceeded operation budget, aborting run")
					return
				}
			}
		}
	}
}

// applyPair matches adjacent non-skipped glyph pairs (spec §4.5 step 2
// "Pair adjustment"), advancing two positions on a match.
func (e *Engine) applyPair(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup) {
	i := 0
	for i < stream.Len() {
		first := stream.At(i)
		if skipSlot(font, lk, first) {
			i++
			continue
		}
		j := i + 1
		for j < stream.Len() && skipSlot(font, lk, stream.At(j)) {
			j++
		}
		if j >= stream.Len() {
			break
		}
		second := stream.At(j)
		matched := false
		for _, st := range lk.Subtables {
			sub, ok := st.(otfont.PairPos)
			if !ok {
				continue
			}
			idx, ok := sub.Coverage(first.GlyphID)
			if !ok {
				continue
			}
			for _, pv := range sub.PairsFor(idx) {
				if pv.Second != second.GlyphID {
					continue
				}
				applyValue(first, pv.First)
				applyValue(second, pv.SecondVal)
				if !stream.ChargeOps(1) {
					tracer().Errorf("gpos: pair adjustment exceeded operation budget, aborting run")
					return
				}
				matched = true
				break
			}
			if matched {
				break
			}
		}
		if matched {
			i = j + 1
		} else {
			i++
		}
	}
}

// applyCursive chains adjacent cursive-attaching glyphs: the exit anchor
// of the first glyph is aligned with the entry anchor of the second by
// offsetting the second glyph, and the second records a back-reference
// to the first (spec §4.5 step 2 "Cursive attachment").
func (e *Engine) applyCursive(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup) {
	i := 0
	for i < stream.Len() {
		first := stream.At(i)
		if skipSlot(font, lk, first) {
			i++
			continue
		}
		j := i + 1
		for j < stream.Len() && skipSlot(font, lk, stream.At(j)) {
			j++
		}
		if j >= stream.Len() {
			break
		}
		second := stream.At(j)
		for _, st := range lk.Subtables {
			sub, ok := st.(otfont.CursivePos)
			if !ok {
				continue
			}
			firstIdx, ok := sub.Coverage(first.GlyphID)
			if !ok || !sub.Exit(firstIdx) {
				continue
			}
			secondIdx, ok := sub.Coverage(second.GlyphID)
			if !ok || !sub.Entry(secondIdx) {
				continue
			}
			exit, ok := font.Anchor(first.GlyphID, otfont.AnchorExit)
			if !ok {
				continue
			}
			entry, ok := font.Anchor(second.GlyphID, otfont.AnchorEntry)
			if !ok {
				continue
			}
			second.XOffset += exit.X - entry.X
			second.YOffset += exit.Y - entry.Y
			second.CursiveAttachment = int16(i)
			if !stream.ChargeOps(1) {
				tracer().Errorf("gpos: cursive attachment exceeded operation budget, aborting run")
				return
			}
			break
		}
		i++
	}
}

// applyMarkAttach positions each mark glyph relative to the nearest
// preceding covered base/ligature/mark glyph (spec §4.5 step 2
// "Mark-to-base / mark-to-ligature / mark-to-mark").
func (e *Engine) applyMarkAttach(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup) {
	for i := 0; i < stream.Len(); i++ {
		mark := stream.At(i)
		for _, st := range lk.Subtables {
			sub, ok := st.(otfont.MarkAttach)
			if !ok {
				continue
			}
			markIdx, ok := sub.MarkCoverage.Coverage(mark.GlyphID)
			if !ok {
				continue
			}
			baseIdx := e.findBase(stream, font, lk, sub, i)
			if baseIdx < 0 {
				continue
			}
			base := stream.At(baseIdx)
			baseAnchorIndex := sub.BaseAnchorIndex
			if sub.BaseComponentAnchorIndex != nil {
				comp := int(mark.LigatureComponent)
				if comp < 0 || comp >= len(sub.BaseComponentAnchorIndex) {
					continue
				}
				baseAnchorIndex = sub.BaseComponentAnchorIndex[comp]
			}
			baseCovIdx, ok := sub.BaseCoverage.Coverage(base.GlyphID)
			if !ok {
				continue
			}
			_ = baseCovIdx
			baseAnchor, ok := font.Anchor(base.GlyphID, baseAnchorIndex)
			if !ok {
				continue
			}
			markAnchor, ok := font.Anchor(mark.GlyphID, sub.MarkAnchorIndex)
			if !ok {
				continue
			}
			_ = markIdx
			mark.XOffset += baseAnchor.X - markAnchor.X
			mark.YOffset += baseAnchor.Y - markAnchor.Y
			mark.MarkAttachment = int16(baseIdx)
			// an attached mark contributes no horizontal space of its own
			// (spec §4.5 step 2 "zero the mark's advance").
			mark.XAdvance, mark.YAdvance = 0, 0
			if !stream.ChargeOps(1) {
				tracer().Errorf("gpos: mark attachment exceeded operation budget, aborting run")
				return
			}
			break
		}
	}
}

// findBase walks backwards from a mark to the nearest candidate base (for
// mark-to-mark, the immediately preceding slot, which must be a mark;
// otherwise the nearest non-mark slot not hidden by the skip filter) and
// returns its index if the lookup's base coverage covers it, else -1.
func (e *Engine) findBase(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup, sub otfont.MarkAttach, markIdx int) int {
	for i := markIdx - 1; i >= 0; i-- {
		slot := stream.At(i)
		if lk.Type == otfont.MarkToMark {
			if font.GlyphClass(slot.GlyphID) != otfont.ClassMark {
				return -1
			}
		} else if skipSlot(font, lk, slot) {
			continue
		} else if font.GlyphClass(slot.GlyphID) == otfont.ClassMark {
			continue
		}
		if _, ok := sub.BaseCoverage.Coverage(slot.GlyphID); ok {
			return i
		}
		return -1
	}
	return -1
}

// applyContextual resolves GPOS contextual/chaining rules by applying
// the nested lookup's single-adjustment value at the referenced input
// position (spec §4.5 step 2 "Contextual / chaining contextual"); richer
// nested pair/cursive actions are out of scope, mirroring gsub's
// narrowing for the same reason.
func (e *Engine) applyContextual(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup) {
	for i := 0; i < stream.Len(); i++ {
		slot := stream.At(i)
		if skipSlot(font, lk, slot) {
			continue
		}
		for _, st := range lk.Subtables {
			sub, ok := st.(otfont.ContextualPos)
			if !ok {
				continue
			}
			idx, ok := sub.Coverage(slot.GlyphID)
			if !ok {
				continue
			}
			for _, rule := range sub.RulesFor(idx) {
				if !matchBacktrack(stream, font, lk, i, rule.Backtrack) {
					continue
				}
				positions, ok := matchForward(stream, font, lk, i, rule.Input)
				if !ok {
					continue
				}
				if !matchLookahead(stream, font, lk, positions[len(positions)-1], rule.Lookahead) {
					continue
				}
				for _, act := range rule.Actions {
					if act.AtInputIndex < 0 || act.AtInputIndex >= len(positions) {
						continue
					}
					e.applyNestedSingle(stream, font, positions[act.AtInputIndex], act.LookupIndex, lk)
				}
			}
		}
	}
}

func (e *Engine) applyNestedSingle(stream *gbuffer.Stream, font otfont.Adapter, pos, lookupIndex int, outer otfont.Lookup) {
	all := font.Lookups(otfont.Positioning, 0, 0)
	if lookupIndex < 0 || lookupIndex >= len(all) {
		return
	}
	nested := all[lookupIndex]
	slot := stream.At(pos)
	for _, st := range nested.Subtables {
		if single, ok := st.(otfont.SinglePos); ok {
			if idx, ok := single.Coverage(slot.GlyphID); ok {
				if v, ok := single.ValueFor(idx); ok {
					applyValue(slot, v)
				}
			}
		}
	}
	_ = outer
}

func matchBacktrack(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup, i int, backtrack []otfont.GlyphIndex) bool {
	pos := i
	for _, want := range backtrack {
		pos--
		for pos >= 0 && skipSlot(font, lk, stream.At(pos)) {
			pos--
		}
		if pos < 0 || stream.Get(pos).GlyphID != want {
			return false
		}
	}
	return true
}

func matchForward(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup, i int, input []otfont.GlyphIndex) ([]int, bool) {
	if len(input) == 0 {
		return []int{i}, true
	}
	positions := []int{i}
	pos := i
	for _, want := range input[1:] {
		pos++
		for pos < stream.Len() && skipSlot(font, lk, stream.At(pos)) {
			pos++
		}
		if pos >= stream.Len() || stream.Get(pos).GlyphID != want {
			return nil, false
		}
		positions = append(positions, pos)
	}
	return positions, true
}

func matchLookahead(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup, lastInputPos int, lookahead []otfont.GlyphIndex) bool {
	pos := lastInputPos
	for _, want := range lookahead {
		pos++
		for pos < stream.Len() && skipSlot(font, lk, stream.At(pos)) {
			pos++
		}
		if pos >= stream.Len() || stream.Get(pos).GlyphID != want {
			return false
		}
	}
	return true
}

// ApplyKernFallback applies the legacy 'kern' table to every adjacent
// glyph pair of the stream, adding each pair's value to the left glyph's
// XAdvance (spec §4.5 step 3). It does not itself check for GPOS data:
// callers invoke it only when Apply reported ranPairOrCursive == false.
func (e *Engine) ApplyKernFallback(stream *gbuffer.Stream, font otfont.Adapter) {
	if !font.HasKernTable() {
		return
	}
	for i := 0; i+1 < stream.Len(); i++ {
		left := stream.At(i)
		right := stream.Get(i + 1)
		if pair, ok := font.Kern(left.GlyphID, right.GlyphID); ok {
			left.XAdvance += pair.XAdvance
			if !stream.ChargeOps(1) {
				tracer().Errorf("gpos: kern fallback exceeded operation budget, aborting run")
				return
			}
		}
	}
}
