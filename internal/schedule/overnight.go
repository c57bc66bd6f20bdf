package schedule

import "strings"

var overnightKeywords = []string{"overnight stay", "qua đêm cố định"}

// IsFixedOvernight reports whether a time slot is a fixed overnight stay with
// no selectable check-in time. An explicit flag always wins; the label is only
// inspected for legacy rows where the flag was never set.
func IsFixedOvernight(label string, flag *bool) bool {
	if flag != nil {
		return *flag
	}
	if bracketRe.MatchString(label) {
		// "Qua đêm (14h-12h)" is an hourly package that happens to be named overnight.
		return false
	}
	lower := strings.ToLower(label)
	if strings.ContainsAny(lower, "-–—") {
		return false
	}
	for _, kw := range overnightKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
