package scheduler

import "time"

// Schedule tracks the next wall-clock instant a periodic job is due.
// Fire times are the anchor time of day plus whole multiples of the
// frequency, counted on the local wall clock so that a daylight saving
// change does not move them off the configured time of day.
type Schedule struct {
	anchor    time.Time
	tod       TimeOfDay
	hours     int
	periods   int
	next      time.Time
	frequency time.Duration
}

// NewSchedule anchors the schedule to tod on now's calendar day and moves it
// forward by whole periods until it is not before now. The frequency is
// counted in whole hours, at least one.
func NewSchedule(now time.Time, tod TimeOfDay, frequency time.Duration) *Schedule {
	hours := int(frequency / time.Hour)
	if hours < 1 {
		hours = 1
	}
	s := &Schedule{
		anchor:    time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, 0, 0, now.Location()),
		tod:       tod,
		hours:     hours,
		frequency: time.Duration(hours) * time.Hour,
	}
	s.next = s.anchor
	for now.After(s.next) {
		s.Advance()
	}
	return s
}

// at returns the wall-clock time n periods after the anchor.
func (s *Schedule) at(n int) time.Time {
	a := s.anchor
	return time.Date(a.Year(), a.Month(), a.Day(), s.tod.Hour+n*s.hours, s.tod.Minute, 0, 0, a.Location())
}

// Due reports whether now has reached the next fire time.
func (s *Schedule) Due(now time.Time) bool {
	return !now.Before(s.next)
}

// Advance moves the next fire time forward by one period of wall-clock
// hours.
func (s *Schedule) Advance() {
	s.periods++
	s.next = s.at(s.periods)
}

// Next returns the next fire time.
func (s *Schedule) Next() time.Time { return s.next }

// Anchor returns the first fire time on the day the schedule was created.
func (s *Schedule) Anchor() time.Time { return s.anchor }

// Frequency returns the period between fires.
func (s *Schedule) Frequency() time.Duration { return s.frequency }
