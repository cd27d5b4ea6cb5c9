package state

import (
	"sync"

	"github.com/karyx/edge-firmware/internal/pkg/sensor"
)

// Slot holds the most recent sensor reading. Only the latest value exists; a
// reader always sees exactly what was last stored.
type Slot struct {
	mu      sync.Mutex
	reading sensor.Reading
}

func NewSlot() *Slot {
	return &Slot{}
}

func (s *Slot) Set(r sensor.Reading) {
	s.mu.Lock()
	s.reading = r
	s.mu.Unlock()
}

func (s *Slot) Last() sensor.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reading
}
