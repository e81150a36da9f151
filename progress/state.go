package progress

import (
	"math"
	"sync/atomic"
)

// state holds the last reported progress using lock-free last-write-wins
// fields. Producers replace individual fields atomically; the tick loop reads
// them once per render. There is no cross-field snapshot guarantee: a tick may
// observe a new annotation with an old fraction or vice versa. The annotation
// is written before the fraction in the two-argument report path so a tick
// that sees the new fraction usually sees the new annotation too, but callers
// must not rely on it.
type state struct {
	fractionBits atomic.Uint64
	annotation   atomic.Pointer[string]
}

func (s *state) setFraction(f float64) {
	s.fractionBits.Store(math.Float64bits(f))
}

func (s *state) setAnnotation(text string) {
	s.annotation.Store(&text)
}

func (s *state) fraction() float64 {
	return math.Float64frombits(s.fractionBits.Load())
}

// annotationText returns the current annotation, or "" if none was ever set.
func (s *state) annotationText() string {
	p := s.annotation.Load()
	if p == nil {
		return ""
	}
	return *p
}
