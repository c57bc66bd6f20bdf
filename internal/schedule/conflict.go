package schedule

import (
	"fmt"
	"sort"
)

// Selection is one entry of a customer's in-progress cart with its stay resolved.
type Selection struct {
	Key         string   `json:"key"`
	Date        string   `json:"date"`
	RoomID      string   `json:"roomId"`
	TimeSlotID  string   `json:"timeSlotId"`
	CheckInTime string   `json:"checkInTime,omitempty"`
	Stay        Interval `json:"stay"`
}

// Conflict names two selections whose stays overlap.
type Conflict struct {
	First   Selection `json:"first"`
	Second  Selection `json:"second"`
	Message string    `json:"message"`
}

// DateConflicts groups conflicts found on one booking date.
type DateConflicts struct {
	Date      string     `json:"date"`
	Conflicts []Conflict `json:"conflicts"`
}

// DetectSelectionConflicts compares every pair of selections sharing a date
// and a room. It only looks at the cart itself, never at stored bookings.
func DetectSelectionConflicts(selections []Selection) []DateConflicts {
	return detect(selections, func(s Selection) string { return s.Date + "|" + s.RoomID })
}

// DetectRoomConflicts compares every pair of selections of the same room
// regardless of date, so an overnight stay clashing with next morning's
// hourly slot is caught too.
func DetectRoomConflicts(selections []Selection) []DateConflicts {
	return detect(selections, func(s Selection) string { return s.RoomID })
}

func detect(selections []Selection, groupKey func(Selection) string) []DateConflicts {
	groups := make(map[string][]int)
	order := make([]string, 0)
	for i, s := range selections {
		k := groupKey(s)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	byDate := make(map[string][]Conflict)
	for _, k := range order {
		idx := groups[k]
		for a := 0; a < len(idx); a++ {
			for b := a + 1; b < len(idx); b++ {
				first, second := selections[idx[a]], selections[idx[b]]
				if !Overlaps(first.Stay, second.Stay) {
					continue
				}
				byDate[first.Date] = append(byDate[first.Date], Conflict{
					First:   first,
					Second:  second,
					Message: overlapMessage(first, second),
				})
			}
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DateConflicts, 0, len(dates))
	for _, d := range dates {
		out = append(out, DateConflicts{Date: d, Conflicts: byDate[d]})
	}
	return out
}

func overlapMessage(a, b Selection) string {
	return fmt.Sprintf("Khung giờ %s–%s ngày %s trùng với khung giờ %s–%s ngày %s",
		a.Stay.Start.Format("15:04"), a.Stay.End.Format("15:04"), a.Date,
		b.Stay.Start.Format("15:04"), b.Stay.End.Format("15:04"), b.Date,
	)
}
