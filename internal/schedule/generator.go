package schedule

const (
	minutesPerDay = 24 * 60

	// DefaultStepMinutes is used when the caller passes a non-positive step.
	DefaultStepMinutes = 30
)

// GenerateCheckInTimes lists selectable check-in clock times from r.Start to
// r.End inclusive, every step minutes. A range whose end is not after its start
// crosses midnight, so iteration continues into the next day and each value is
// wrapped back onto a 24-hour clock. Duplicates are dropped, order is kept.
func GenerateCheckInTimes(r TimeRange, step int) []string {
	if step <= 0 {
		step = DefaultStepMinutes
	}

	start, okStart := ClockMinutes(r.Start)
	end, okEnd := ClockMinutes(r.End)
	if !okStart || !okEnd {
		start, _ = ClockMinutes(FallbackRange.Start)
		end, _ = ClockMinutes(FallbackRange.End)
	}
	if end <= start {
		end += minutesPerDay
	}

	seen := make(map[int]struct{}, (end-start)/step+1)
	out := make([]string, 0, (end-start)/step+1)
	for m := start; m <= end; m += step {
		wrapped := m % minutesPerDay
		if _, dup := seen[wrapped]; dup {
			continue
		}
		seen[wrapped] = struct{}{}
		out = append(out, FormatMinutes(wrapped))
	}
	return out
}
