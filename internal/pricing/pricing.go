// Package pricing turns a set of selected slots into the amounts a booking is
// charged. Amounts are whole VND.
package pricing

import "time"

// Item is one selected slot as seen by the pricing engine.
type Item struct {
	BasePrice        int64
	WeekendSurcharge int64
	Date             time.Time
}

// Quote is the priced result of a selection.
type Quote struct {
	BasePrice          int64 `json:"basePrice"`
	WeekendSurcharge   int64 `json:"weekendSurcharge"`
	DiscountPercentage int   `json:"discountPercentage"`
	DiscountAmount     int64 `json:"discountAmount"`
	TotalPrice         int64 `json:"totalPrice"`
	SlotCount          int   `json:"slotCount"`
}

// DiscountPercentage returns the volume discount for n slots.
func DiscountPercentage(n int) int {
	switch {
	case n >= 3:
		return 10
	case n == 2:
		return 5
	default:
		return 0
	}
}

// IsWeekend reports whether d falls on Saturday or Sunday in its own location.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AppliedSurcharge is the surcharge actually charged for it: zero on weekdays.
func (it Item) AppliedSurcharge() int64 {
	if !IsWeekend(it.Date) {
		return 0
	}
	return clamp(it.WeekendSurcharge)
}

// Calculate prices items. The discount only applies to base prices; weekend
// surcharges are added on top after discounting. Negative inputs count as zero.
func Calculate(items []Item) Quote {
	var q Quote
	for _, it := range items {
		q.BasePrice += clamp(it.BasePrice)
		q.WeekendSurcharge += it.AppliedSurcharge()
	}
	q.SlotCount = len(items)
	q.DiscountPercentage = DiscountPercentage(q.SlotCount)
	q.DiscountAmount = percentOf(q.BasePrice, q.DiscountPercentage)
	q.TotalPrice = q.BasePrice - q.DiscountAmount + q.WeekendSurcharge
	return q
}

// percentOf rounds half away from zero; amount is never negative here.
func percentOf(amount int64, pct int) int64 {
	return (amount*int64(pct) + 50) / 100
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
