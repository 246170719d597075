package gsub

import (
	"github.com/corvid-type/shaping/gbuffer"
	"github.com/corvid-type/shaping/otfont"
)

// Options configures an Engine. IsIgnorable is forwarded to
// [gbuffer.Stream.Ligate] to pick a ligature's representative codepoint
// (spec §9); a nil IsIgnorable treats nothing as ignorable.
type Options struct {
	IsIgnorable gbuffer.IsIgnorable
}

// Engine applies a font's GSUB-equivalent lookups to a stream in the
// font's declared lookup order (spec §4.4).
type Engine struct {
	opts Options
}

// New creates a substitution Engine.
func New(opts Options) *Engine {
	if opts.IsIgnorable == nil {
		opts.IsIgnorable = func(rune) (bool, bool) { return false, false }
	}
	return &Engine{opts: opts}
}

// Apply runs every eligible substitution lookup for script/lang, in the
// order the font declares them, over the whole stream (spec §4.4: "the
// engine iterates the font's declared lookup list in order ... applying
// each lookup across the whole buffer before moving to the next").
func (e *Engine) Apply(stream *gbuffer.Stream, font otfont.Adapter, script, lang otfont.Tag) error {
	lookups := font.Lookups(otfont.Substitution, script, lang)
	for li, lk := range lookups {
		if !eligible(stream, lk) {
			continue
		}
		if err := e.applyLookup(stream, font, lk, li, script, lang); err != nil {
			return err
		}
	}
	return nil
}

// eligible reports whether any of a lookup's feature tags is active at
// any slot currently in the stream (spec §4.4).
func eligible(stream *gbuffer.Stream, lk otfont.Lookup) bool {
	if len(lk.Features) == 0 {
		// lookups with no recorded feature associations are treated as
		// always active (e.g. required-feature-only fonts in tests).
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

// skipSlot implements the skip filter (spec §4.4 "Skip filter semantics").
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

// applyLookup dispatches by lookup type. Single-glyph scans (everything
// but reverse chaining) run left to right; reverse chaining runs right to
// left over the whole buffer (spec §4.4 item 6).
func (e *Engine) applyLookup(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup, lookupIndex int, script, lang otfont.Tag) error {
	if lk.Type == otfont.ReverseChainingSingle {
		return e.applyReverseChaining(stream, font, lk)
	}

	i := 0
	for i < stream.Len() {
		slot := stream.At(i)
		if skipSlot(font, lk, slot) {
			i++
			continue
		}
		next, matched := e.tryLookup(stream, font, lk, i, lookupIndex, script, lang)
		if matched {
			i = next
			if !stream.ChargeOps(1) {
				tracer().Errorf("gsub: lookup %d exceeded operation budget, aborting run", lookupIndex)
				return nil
			}
			continue
		}
		i++
	}
	return nil
}

// tryLookup tests every subtable of lk at position i in declared order,
// applying the first one that matches (spec §4.4: "on the first match,
// apply it and resume scanning after the rewritten region").
func (e *Engine) tryLookup(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup, i, lookupIndex int, script, lang otfont.Tag) (int, bool) {
	g := stream.Get(i).GlyphID
	for _, st := range lk.Subtables {
		idx, ok := st.Coverage(g)
		if !ok {
			continue
		}
		switch sub := st.(type) {
		case otfont.SingleSubst:
			if out, ok := sub.Substitute(idx); ok {
				stream.Replace1_1(i, uint32(out))
				return i + 1, true
			}
		case otfont.MultipleSubst:
			if seq, ok := sub.Sequence(idx); ok {
				stream.Decompose(i, toU32(seq))
				if len(seq) == 0 {
					return i, true
				}
				return i + len(seq), true
			}
		case otfont.AlternateSubst:
			if alts, ok := sub.AlternateSet(idx); ok && len(alts) > 0 {
				stream.Replace1_1(i, uint32(alts[0]))
				return i + 1, true
			}
		case otfont.LigatureSubst:
			if next, ok := e.tryLigature(stream, font, lk, sub.RulesFor(idx), i); ok {
				return next, true
			}
		case otfont.ContextualSubst:
			if next, ok := e.tryContext(stream, font, lk, sub.RulesFor(idx), i, lookupIndex, script, lang); ok {
				return next, true
			}
		}
	}
	return i, false
}

func toU32(gs []otfont.GlyphIndex) []uint32 {
	out := make([]uint32, len(gs))
	for i, g := range gs {
		out[i] = uint32(g)
	}
	return out
}

// tryLigature scans forward from i, skipping ignored slots, matching each
// ligature rule's trailing components against the next non-skipped
// glyphs (spec §4.4 item 4).
func (e *Engine) tryLigature(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup, rules []otfont.LigatureRule, i int) (int, bool) {
outer:
	for _, rule := range rules {
		removal := make([]int, 0, len(rule.Components))
		pos := i
		for _, want := range rule.Components {
			pos++
			for pos < stream.Len() && skipSlot(font, lk, stream.At(pos)) {
				pos++
			}
			if pos >= stream.Len() || stream.Get(pos).GlyphID != want {
				continue outer
			}
			removal = append(removal, pos)
		}
		next := stream.Ligate(i, removal, uint32(rule.Ligature), e.opts.IsIgnorable)
		return next, true
	}
	return i, false
}

// tryContext matches a contextual/chaining-contextual rule's backtrack,
// input and lookahead sequences around position i, applying the rule's
// nested single-substitution actions in order (spec §4.4 item 5). Nested
// lookups that are not single substitutions are skipped: this engine
// resolves the common case (contextual feature triggers, e.g. ccmp/calt,
// are overwhelmingly single-glyph rewrites); richer nesting would need
// the full recursive lookup dispatch the OpenType engine affords, which
// is out of scope here.
func (e *Engine) tryContext(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup, rules []otfont.ContextRule, i, lookupIndex int, script, lang otfont.Tag) (int, bool) {
	for _, rule := range rules {
		if !matchBacktrack(stream, font, lk, i, rule.Backtrack) {
			continue
		}
		inputPositions, ok := matchForward(stream, font, lk, i, rule.Input)
		if !ok {
			continue
		}
		lookPos := inputPositions[len(inputPositions)-1]
		if !matchLookahead(stream, font, lk, lookPos, rule.Lookahead) {
			continue
		}
		for _, act := range rule.Actions {
			if act.AtInputIndex < 0 || act.AtInputIndex >= len(inputPositions) {
				continue
			}
			e.applyNested(stream, font, inputPositions[act.AtInputIndex], act.LookupIndex, script, lang)
		}
		return inputPositions[len(inputPositions)-1] + 1, true
	}
	return i, false
}

// applyNested resolves a nested lookup reference purely by single
// substitution: rewrite the glyph at pos if the referenced lookup (by
// its own font-declared index) covers it. Non-single-substitution
// actions are a no-op, per tryContext's documented scope narrowing.
func (e *Engine) applyNested(stream *gbuffer.Stream, font otfont.Adapter, pos, lookupIndex int, script, lang otfont.Tag) {
	all := font.Lookups(otfont.Substitution, script, lang)
	if lookupIndex < 0 || lookupIndex >= len(all) {
		return
	}
	nested := all[lookupIndex]
	g := stream.Get(pos).GlyphID
	for _, st := range nested.Subtables {
		if single, ok := st.(otfont.SingleSubst); ok {
			if idx, ok := single.Coverage(g); ok {
				if out, ok := single.Substitute(idx); ok {
					stream.Replace1_1(pos, uint32(out))
				}
			}
		}
	}
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
	positions := []int{i} // input[0] is the glyph already matched by coverage
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

// applyReverseChaining runs GSUB LookupType 8 right to left over the
// whole buffer (spec §4.4 item 6).
func (e *Engine) applyReverseChaining(stream *gbuffer.Stream, font otfont.Adapter, lk otfont.Lookup) error {
	for i := stream.Len() - 1; i >= 0; i-- {
		slot := stream.At(i)
		if skipSlot(font, lk, slot) {
			continue
		}
		g := slot.GlyphID
		for _, st := range lk.Subtables {
			sub, ok := st.(otfont.ReverseChainingSingleSubst)
			if !ok {
				continue
			}
			idx, ok := sub.Coverage(g)
			if !ok {
				continue
			}
			if !matchBacktrack(stream, font, lk, i, sub.Backtrack) {
				continue
			}
			if !matchLookahead(stream, font, lk, i, sub.Lookahead) {
				continue
			}
			if out, ok := sub.Substitute(idx); ok {
				stream.Replace1_1(i, uint32(out))
				if !stream.ChargeOps(1) {
					tracer().Errorf("gsub: reverse chaining lookup exceeded operation budget, aborting run")
					return nil
				}
			}
			break
		}
	}
	return nil
}
