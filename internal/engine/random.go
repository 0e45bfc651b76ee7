package engine

import "math/rand"

// Source supplies the randomness used to pick spawn variants.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a deterministic Source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Sequence is a Source that replays fixed values, wrapping around.
// Values are reduced modulo n. Useful for scripted spawns in tests and
// demos.
type Sequence struct {
	values []int
	next   int
}

// NewSequence creates a Sequence over the given values.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// Intn returns the next value of the sequence modulo n.
func (s *Sequence) Intn(n int) int {
	if len(s.values) == 0 || n <= 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
