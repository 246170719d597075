package gbuffer

// ContentType guards against mixing codepoint-seeded and already-glyph-id
// content in the same stream, mirroring the Unicode/Glyph content-type
// guard in the buffer designs this package is grounded on.
type ContentType uint8

const (
	ContentInvalid ContentType = iota
	ContentUnicode
	ContentGlyphs
)

// Stream is the GlyphStream of spec §3/§4.1: an ordered, mutable sequence
// of [Slot] values with pooled, geometrically-growing backing storage.
//
// Invariants (spec §3):
//  1. SourceOffset is non-decreasing across the stream. Move and
//     StableSort reorder slots and do not preserve this.
//  2. Sum of CodepointCount equals the original codepoint count of the
//     analyzed run. Replace1_1, Ligate and a non-empty Decompose keep the
//     sum; Remove (and a zero-length Decompose) drops the removed slots'
//     counts from it.
//  3. Slots sharing a non-zero LigatureID form a valid cohort.
type Stream struct {
	slots       []Slot
	contentType ContentType
	cursor      int // cached forward-scan position for query_by_offset

	nextLigatureID uint32
	opCount        int // guards against runaway lookup application (spec §5 termination bound)
	maxOps         int
}

// New creates an empty stream with the given initial capacity hint.
func New(capacityHint int) *Stream {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Stream{
		slots:          make([]Slot, 0, capacityHint),
		nextLigatureID: 1,
		maxOps:         maxOpsDefault(capacityHint),
	}
}

func maxOpsDefault(n int) int {
	const factor, min = 1024, 16384
	v := n * factor
	if v/factor != n || v < min { // overflow or too small
		return min
	}
	return v
}

// Clear empties the stream, resetting the ligature-id counter to 1 per
// spec §9 ("Reset to 1 on clear").
func (s *Stream) Clear() {
	s.slots = s.slots[:0]
	s.contentType = ContentInvalid
	s.cursor = 0
	s.nextLigatureID = 1
	s.opCount = 0
}

// Len returns the number of slots currently in the stream.
func (s *Stream) Len() int { return len(s.slots) }

// Slots exposes the live slot slice for read access by later stages.
func (s *Stream) Slots() []Slot { return s.slots }

// ensureUnicode guards that the stream is being seeded with codepoints.
func (s *Stream) ensureUnicode() bool {
	if s.contentType == ContentUnicode {
		return true
	}
	if s.contentType != ContentInvalid || len(s.slots) != 0 {
		return false
	}
	s.contentType = ContentUnicode
	return true
}

// AppendCodepoint seeds one slot from an input codepoint (spec §4.3 step 5).
func (s *Stream) AppendCodepoint(slot Slot) bool {
	if !s.ensureUnicode() {
		tracer().Errorf("AppendCodepoint called on a non-Unicode-content stream")
		return false
	}
	s.append(slot)
	return true
}

// append is the O(1)-amortized raw push used by all mutators (spec §4.1
// "append(slot)"). Capacity growth is geometric doubling with a floor,
// per spec §4.1/§9.
func (s *Stream) append(slot Slot) {
	if len(s.slots) == cap(s.slots) {
		s.grow(len(s.slots) + 1)
	}
	s.slots = append(s.slots, slot)
}

func (s *Stream) grow(requested int) {
	newCap := cap(s.slots)
	if newCap == 0 {
		newCap = 8
	}
	for newCap < requested {
		newCap *= 2
	}
	grown := make([]Slot, len(s.slots), newCap)
	copy(grown, s.slots)
	s.slots = grown
}

// Get returns a copy of the slot at i.
func (s *Stream) Get(i int) Slot { return s.slots[i] }

// At returns a pointer to the slot at i for in-place field mutation.
func (s *Stream) At(i int) *Slot { return &s.slots[i] }

// Move relocates the slot at `from` to position `to`, shifting the slots
// in between, preserving the relative order of everything else
// (spec §4.1 "move"). O(|from-to|).
func (s *Stream) Move(from, to int) {
	if from == to {
		return
	}
	moved := s.slots[from]
	if from < to {
		copy(s.slots[from:to], s.slots[from+1:to+1])
	} else {
		copy(s.slots[to+1:from+1], s.slots[to:from])
	}
	s.slots[to] = moved
}

// StableSort performs an insertion-sort-style stable reordering over
// [start, end), per spec §4.1: ordering constraints apply to small local
// windows (5-20 slots), where insertion sort is both simplest and, for
// windows that size, as fast as anything fancier.
func (s *Stream) StableSort(start, end int, less func(a, b *Slot) bool) {
	for i := start + 1; i < end; i++ {
		for j := i; j > start && less(&s.slots[j], &s.slots[j-1]); j-- {
			s.slots[j], s.slots[j-1] = s.slots[j-1], s.slots[j]
		}
	}
}

// QueryByOffset returns the indices of all slots whose SourceOffset
// equals offset. Since offsets are non-decreasing, this is a short
// forward scan from a cached cursor (spec §4.1); callers are expected to
// query in ascending offset order, as line layout does.
func (s *Stream) QueryByOffset(offset uint32) []int {
	if s.cursor > len(s.slots) {
		s.cursor = 0
	}
	// if the cursor overshot (caller queried out of order), rewind.
	for s.cursor > 0 && s.slots[s.cursor-1].SourceOffset >= offset {
		s.cursor--
	}
	var out []int
	i := s.cursor
	for i < len(s.slots) && s.slots[i].SourceOffset < offset {
		i++
	}
	for i < len(s.slots) && s.slots[i].SourceOffset == offset {
		out = append(out, i)
		i++
	}
	s.cursor = i
	return out
}

// NextLigatureID hands out the next monotonically increasing ligature
// cohort id for this stream (spec §9).
func (s *Stream) NextLigatureID() uint32 {
	id := s.nextLigatureID
	s.nextLigatureID++
	return id
}

// chargeOps debits the per-stream operation budget and reports whether
// the stream is still within bounds; lookup application aborts the run
// when this returns false, guarding shaping's O(N*L*K) termination bound
// (spec §5, §8 property 6) against pathological fonts.
func (s *Stream) chargeOps(n int) bool {
	s.opCount += n
	return s.opCount <= s.maxOps
}

// ChargeOps is the exported form of chargeOps, used by gsub/gpos to debit
// the shared per-stream operation budget as they apply lookups.
func (s *Stream) ChargeOps(n int) bool { return s.chargeOps(n) }
