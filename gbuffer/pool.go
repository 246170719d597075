package gbuffer

import "sync"

// Pool recycles [Stream] instances across shaping calls, per spec §5:
// "the GlyphStream buffer pool is per-thread (or guarded by a lock if
// implemented as a global)". sync.Pool already gives per-P caching with a
// shared fallback, which matches that requirement without a hand-rolled
// per-goroutine pool.
type Pool struct {
	pool sync.Pool
}

// NewPool creates an empty stream pool.
func NewPool() *Pool {
	return &Pool{pool: sync.Pool{New: func() any { return New(0) }}}
}

// Get returns a stream ready for a new shaping call, either freshly
// allocated or reused from the pool with its capacity intact but its
// contents cleared.
func (p *Pool) Get() *Stream {
	s := p.pool.Get().(*Stream)
	s.Clear()
	return s
}

// Put returns a stream to the pool once its shaping call's consumer
// (line layout, spec §4.6) is done reading it. The caller must not use s
// afterwards.
func (p *Pool) Put(s *Stream) {
	if s == nil {
		return
	}
	p.pool.Put(s)
}
