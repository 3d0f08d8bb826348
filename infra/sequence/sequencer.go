package sequence

import "sync/atomic"

// Sequencer mints strictly monotone order ids. The first id issued from a
// fresh sequencer is 1; zero is reserved as the rejected-submit sentinel.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer that resumes after start, so New(0).Next() == 1.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next id.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued id.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}
