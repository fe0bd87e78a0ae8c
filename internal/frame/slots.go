// Package frame drives the acquire/submit/present cycle and owns the
// frame-in-flight slot rotation.
package frame

import "fmt"

// Slots rotates through a fixed number of frame-in-flight indices.
type Slots struct {
	n       int
	current int
}

func NewSlots(n int) *Slots {
	if n < 1 {
		panic(fmt.Sprintf("frame: slot count must be at least 1, got %d", n))
	}
	return &Slots{n: n}
}

func (s *Slots) Len() int {
	return s.n
}

func (s *Slots) Current() int {
	return s.current
}

// Advance moves to the next slot and returns it.
func (s *Slots) Advance() int {
	s.current = (s.current + 1) % s.n
	return s.current
}
