package schedule

import (
	"errors"
	"time"
)

const (
	DefaultRoomCheckIn  = "14:00"
	DefaultRoomCheckOut = "12:00"

	// DateLayout is the calendar date format used on the wire and in storage.
	DateLayout = "2006-01-02"
)

var (
	ErrCheckInRequired = errors.New("check-in time is required for hourly time slots")
	ErrInvalidClock    = errors.New("invalid clock time")
)

// Interval is a half-open [Start, End) stay.
type Interval struct {
	Start time.Time `json:"checkIn"`
	End   time.Time `json:"checkOut"`
}

// Overlaps is the half-open interval test: stays that merely touch do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Slot carries the parts of a time slot that decide how a stay is computed.
type Slot struct {
	Label         string
	IsOvernight   *bool
	DurationHours *int
}

// Overnight reports whether the slot is a fixed overnight stay (no check-in choice).
// IsOvernight=false is overridden only when no stay length can be derived from
// DurationHours or the label; such a slot falls back to the room's overnight
// window instead of failing.
func (s Slot) Overnight() bool {
	_, hourly := s.length()
	return !hourly
}

// Range is the window check-in times are offered from.
func (s Slot) Range() (TimeRange, bool) {
	return ParseTimeRange(s.Label)
}

// length returns the stay length of an hourly slot. A missing duration is
// derived from a parseable label range; with neither, the slot is overnight.
func (s Slot) length() (time.Duration, bool) {
	if IsFixedOvernight(s.Label, s.IsOvernight) {
		return 0, false
	}
	if s.DurationHours != nil && *s.DurationHours > 0 {
		return time.Duration(*s.DurationHours) * time.Hour, true
	}
	if r, ok := ParseTimeRange(s.Label); ok {
		if m, ok := r.Minutes(); ok {
			return time.Duration(m) * time.Minute, true
		}
	}
	return 0, false
}

// StayRequest describes one selected slot on one calendar date.
type StayRequest struct {
	// Date is the booking date; only its calendar day and location are used.
	Date         time.Time
	CheckInTime  string
	Slot         Slot
	RoomCheckIn  string
	RoomCheckOut string
}

// ResolveStay computes the check-in and check-out instants of a stay.
//
// Fixed overnight: room default check-in on Date until room default check-out
// on the following day. Hourly: CheckInTime on Date plus the slot duration,
// added as an instant so the stay may roll into the next day.
func ResolveStay(req StayRequest) (Interval, error) {
	length, hourly := req.Slot.length()
	if !hourly {
		in := clockOrDefault(req.RoomCheckIn, DefaultRoomCheckIn)
		out := clockOrDefault(req.RoomCheckOut, DefaultRoomCheckOut)
		return Interval{
			Start: At(req.Date, 0, in),
			End:   At(req.Date, 1, out),
		}, nil
	}

	if req.CheckInTime == "" {
		return Interval{}, ErrCheckInRequired
	}
	in, ok := ClockMinutes(req.CheckInTime)
	if !ok {
		return Interval{}, ErrInvalidClock
	}
	start := At(req.Date, 0, in)
	return Interval{Start: start, End: start.Add(length)}, nil
}

// At builds the instant dayOffset days after date's calendar day at the given
// minutes past midnight, in date's location.
func At(date time.Time, dayOffset, minutes int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d+dayOffset, minutes/60, minutes%60, 0, 0, date.Location())
}

// ParseDate parses a "YYYY-MM-DD" calendar date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

func clockOrDefault(clock, def string) int {
	if m, ok := ClockMinutes(clock); ok {
		return m
	}
	m, _ := ClockMinutes(def)
	return m
}
