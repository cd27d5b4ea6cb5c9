// Package state owns the device's mutable state: per-channel switch state for
// actuator firmware, the latest reading slot for sensor firmware. All
// mutation is serialized behind a mutex; callers get value-type snapshots.
package state

import (
	"sync"
	"time"
)

// ChannelSnapshot is a point-in-time copy of one channel, safe to use after
// the lock is released.
type ChannelSnapshot struct {
	On          bool
	ToggleCount uint64
	LastToggled time.Time
}

type channelState struct {
	on          bool
	lastToggled time.Time
	toggleCount uint64
}

// Store holds the actuator channels. The channel count is fixed at
// construction and never changes.
type Store struct {
	mu       sync.Mutex
	channels []channelState
	now      func() time.Time
}

func NewStore(numChannels int) *Store {
	if numChannels < 0 {
		numChannels = 0
	}
	return &Store{
		channels: make([]channelState, numChannels),
		now:      time.Now,
	}
}

func (s *Store) NumChannels() int {
	return len(s.channels)
}

// Set drives a channel to the requested value. Out-of-range channels are a
// silent no-op. Setting a channel to its current value mutates nothing: the
// toggle counter and timestamp only move on an actual state change.
func (s *Store) Set(channel int, on bool) {
	if channel < 0 || channel >= len(s.channels) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &s.channels[channel]
	if c.on == on {
		return
	}
	c.on = on
	c.lastToggled = s.now()
	c.toggleCount++
}

// Get returns the channel's current value; out-of-range reads are false.
func (s *Store) Get(channel int) bool {
	if channel < 0 || channel >= len(s.channels) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channels[channel].on
}

// Toggle flips a channel inside a single critical section. The C firmware
// read and wrote in two separate sections, so concurrent toggles on one
// channel could land on the same final value; holding the lock across both
// closes that window without changing single-threaded behavior.
func (s *Store) Toggle(channel int) {
	if channel < 0 || channel >= len(s.channels) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &s.channels[channel]
	c.on = !c.on
	c.lastToggled = s.now()
	c.toggleCount++
}

// Snapshot copies every channel under the same serialization as Get, so no
// entry is ever torn, though channels may reflect different instants.
func (s *Store) Snapshot() []ChannelSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make([]ChannelSnapshot, len(s.channels))
	for i, c := range s.channels {
		snap[i] = ChannelSnapshot{
			On:          c.on,
			ToggleCount: c.toggleCount,
			LastToggled: c.lastToggled,
		}
	}
	return snap
}
