// Package statepool provides reusable per-frame render state descriptions.
//
// Jobs acquire a State while they are drawn, configure it, and hand it to the
// device layer. The pool is reset at every frame boundary, after which every
// previously acquired State may be handed out again, so callers must not keep
// references to a State beyond the frame it was acquired in.
package statepool

import "sync"

// BlendMode selects how a fragment is combined with the target.
type BlendMode int

const (
	BlendNone BlendMode = iota
	BlendAlpha
	BlendAdditive
)

// CullFace selects which triangle faces are discarded.
type CullFace int

const (
	CullBack CullFace = iota
	CullFront
	CullNone
)

// State describes the fixed-function state a draw expects.
type State struct {
	DepthTest  bool
	DepthWrite bool
	CullFace   CullFace
	Blend      bool
	BlendMode  BlendMode
	ColorWrite bool

	// Tag is free-form data owned by whoever acquired the state for the current frame.
	Tag any
}

func (s *State) reset() {
	*s = State{
		DepthTest:  true,
		DepthWrite: true,
		CullFace:   CullBack,
		ColorWrite: true,
	}
}

// StatePool hands out State values and reclaims all of them at once on Reset.
type StatePool struct {
	mu        *sync.Mutex
	free      []*State
	used      []*State
	allocated int
	frame     uint64
}

// NewStatePool creates an empty StatePool.
//
// Returns:
//   - *StatePool: the pool
func NewStatePool() *StatePool {
	return &StatePool{mu: &sync.Mutex{}}
}

// Acquire returns a State holding the default values, reusing a released one when available.
//
// Returns:
//   - *State: a State valid until the next Reset
func (p *StatePool) Acquire() *State {
	p.mu.Lock()
	defer p.mu.Unlock()

	var s *State
	if n := len(p.free); n > 0 {
		s = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		s = &State{}
		p.allocated++
	}
	s.reset()
	p.used = append(p.used, s)
	return s
}

// Reset returns every acquired State to the pool and advances the frame counter.
func (p *StatePool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, s := range p.used {
		s.Tag = nil
		p.free = append(p.free, s)
		p.used[i] = nil
	}
	p.used = p.used[:0]
	p.frame++
}

// InUse returns the number of states acquired since the last Reset.
func (p *StatePool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.used)
}

// Allocated returns the number of State values the pool has ever created.
func (p *StatePool) Allocated() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocated
}

// Frame returns how many times Reset has been called.
func (p *StatePool) Frame() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}
