package dice

import "sync"

// SequenceSource is a Source that replays a fixed sequence of values, cycling
// when exhausted. It exists so combat outcomes that depend on chance can be
// pinned in tests.
//
// Invariant: each value returned by Intn(n) is values[i] % n, so any
// pre-recorded value stays within the requested range.
type SequenceSource struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequenceSource creates a SequenceSource over values.
//
// Precondition: values must be non-empty.
func NewSequenceSource(values ...int) *SequenceSource {
	if len(values) == 0 {
		panic("dice: NewSequenceSource requires at least one value")
	}
	vs := make([]int, len(values))
	copy(vs, values)
	return &SequenceSource{values: vs}
}

// Intn returns the next recorded value reduced modulo n.
//
// Precondition: n > 0.
func (s *SequenceSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}
