// Package report builds panel status payloads and drives the report cadence
// for both firmware variants.
package report

import "time"

// Schedule tracks when the next report is due. The gap is measured from the
// end of the previous attempt, so a slow panel call can never compress the
// cadence below the configured interval.
type Schedule struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

func NewSchedule(interval time.Duration) *Schedule {
	return &Schedule{
		interval: interval,
		now:      time.Now,
	}
}

// Due reports whether a report should fire. Nothing has been attempted yet on
// a fresh schedule, so the first check is due immediately.
func (s *Schedule) Due() bool {
	if s.last.IsZero() {
		return true
	}
	return s.now().Sub(s.last) >= s.interval
}

// MarkAttempted records the completion of an attempt, successful or not.
func (s *Schedule) MarkAttempted() {
	s.last = s.now()
}
