package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeRange is a pair of 24-hour clock strings ("HH:MM").
// End may be earlier than Start when the range crosses midnight.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FallbackRange is returned when a label carries no recognisable range.
var FallbackRange = TimeRange{Start: "00:00", End: "23:59"}

// RangeParser turns a free-form time slot label into a TimeRange.
// ok is false when the fallback range was used.
type RangeParser interface {
	Parse(label string) (r TimeRange, ok bool)
}

type parseAttempt func(label string) (TimeRange, bool)

type chainParser struct {
	attempts []parseAttempt
}

func (p chainParser) Parse(label string) (TimeRange, bool) {
	for _, attempt := range p.attempts {
		if r, ok := attempt(label); ok {
			return r, true
		}
	}
	return FallbackRange, false
}

// DefaultParser tries, in order: bracketed ranges, "14h-12h" notation,
// "09:30-12:30" notation and finally a plain separator split.
var DefaultParser RangeParser = chainParser{
	attempts: []parseAttempt{
		parseBracketed,
		parseHNotation,
		parseColonNotation,
		parseSeparated,
	},
}

// ParseTimeRange parses label with DefaultParser.
func ParseTimeRange(label string) (TimeRange, bool) {
	return DefaultParser.Parse(label)
}

var (
	bracketRe   = regexp.MustCompile(`\(\s*(\d{1,2})h?:?(\d{2})?\s*[-–—]\s*(\d{1,2})h?:?(\d{2})?\s*\)`)
	hNotationRe = regexp.MustCompile(`(\d{1,2})h(\d{2})?\s*[-–—]\s*(\d{1,2})h(\d{2})?`)
	colonRe     = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*[-–—]\s*(\d{1,2}):(\d{2})`)
	fragmentRe  = regexp.MustCompile(`^(\d{1,2})(?:h(\d{2})?|:(\d{2}))$`)
	canonicalRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
	keepRe      = regexp.MustCompile(`[^\dh:]`)
)

// Order matters: multi-character separators go first so " - " wins over "-".
var rangeSeparators = []string{" đến ", " to ", " - ", "–", "—", "~", "→", "-"}

func parseBracketed(label string) (TimeRange, bool) {
	return fromGroups(bracketRe.FindStringSubmatch(label))
}

func parseHNotation(label string) (TimeRange, bool) {
	return fromGroups(hNotationRe.FindStringSubmatch(label))
}

func parseColonNotation(label string) (TimeRange, bool) {
	return fromGroups(colonRe.FindStringSubmatch(label))
}

func fromGroups(m []string) (TimeRange, bool) {
	if len(m) != 5 {
		return TimeRange{}, false
	}
	start, ok := formatClock(m[1], m[2])
	if !ok {
		return TimeRange{}, false
	}
	end, ok := formatClock(m[3], m[4])
	if !ok {
		return TimeRange{}, false
	}
	return TimeRange{Start: start, End: end}, true
}

func parseSeparated(label string) (TimeRange, bool) {
	for _, sep := range rangeSeparators {
		if !strings.Contains(label, sep) {
			continue
		}
		parts := strings.SplitN(label, sep, 2)
		start, ok := normalizeFragment(parts[0])
		if !ok {
			continue
		}
		end, ok := normalizeFragment(parts[1])
		if !ok {
			continue
		}
		return TimeRange{Start: start, End: end}, true
	}
	return TimeRange{}, false
}

func normalizeFragment(s string) (string, bool) {
	s = keepRe.ReplaceAllString(strings.ToLower(s), "")
	if m := fragmentRe.FindStringSubmatch(s); m != nil {
		minutes := m[2]
		if minutes == "" {
			minutes = m[3]
		}
		if out, ok := formatClock(m[1], minutes); ok {
			s = out
		}
	}
	if !canonicalRe.MatchString(s) {
		return "", false
	}
	if _, ok := ClockMinutes(s); !ok {
		return "", false
	}
	return s, true
}

func formatClock(hour, minute string) (string, bool) {
	h, err := strconv.Atoi(hour)
	if err != nil || h > 23 {
		return "", false
	}
	m := 0
	if minute != "" {
		m, err = strconv.Atoi(minute)
		if err != nil || m > 59 {
			return "", false
		}
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

// ClockMinutes converts "HH:MM" (or "H:MM") to minutes since midnight.
func ClockMinutes(clock string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok || len(m) != 2 || len(h) == 0 || len(h) > 2 {
		return 0, false
	}
	hh, err := strconv.Atoi(h)
	if err != nil || hh < 0 || hh > 23 {
		return 0, false
	}
	mm, err := strconv.Atoi(m)
	if err != nil || mm < 0 || mm > 59 {
		return 0, false
	}
	return hh*60 + mm, true
}

// FormatMinutes renders minutes since midnight as "HH:MM", wrapping past 24h.
func FormatMinutes(total int) string {
	total = ((total % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Minutes returns the length of the range, wrapping past midnight when End <= Start.
func (r TimeRange) Minutes() (int, bool) {
	start, ok := ClockMinutes(r.Start)
	if !ok {
		return 0, false
	}
	end, ok := ClockMinutes(r.End)
	if !ok {
		return 0, false
	}
	if end <= start {
		end += minutesPerDay
	}
	return end - start, true
}
