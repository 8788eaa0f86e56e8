package monitor

import "time"

// Scheduler decides when the next automatic refresh is due.
// The zero value with an interval is due immediately.
type Scheduler struct {
	interval time.Duration
	last     time.Time
}

// NewScheduler creates a scheduler with the given refresh cadence.
func NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{interval: interval}
}

// Interval returns the refresh cadence.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Due reports whether a full interval has passed since the last refresh.
func (s *Scheduler) Due(now time.Time) bool {
	if s.last.IsZero() {
		return true
	}
	return now.Sub(s.last) >= s.interval
}

// Mark records refresh activity at now. The model marks both when a refresh
// starts and when it lands.
func (s *Scheduler) Mark(now time.Time) {
	s.last = now
}

// Last returns the most recent Mark, or the zero time.
func (s *Scheduler) Last() time.Time {
	return s.last
}
