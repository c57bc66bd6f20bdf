package pricing

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	wednesday = time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	saturday  = time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	sunday    = time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
)

func weekdayItems(n int, price int64) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{BasePrice: price, WeekendSurcharge: 30000, Date: wednesday}
	}
	return items
}

func TestCalculate_DiscountTiers(t *testing.T) {
	cases := []struct {
		slots int
		pct   int
		total int64
	}{
		{slots: 1, pct: 0, total: 100000},
		{slots: 2, pct: 5, total: 190000},
		{slots: 3, pct: 10, total: 270000},
		{slots: 5, pct: 10, total: 450000},
	}
	for _, tc := range cases {
		q := Calculate(weekdayItems(tc.slots, 100000))
		assert.Equal(t, tc.pct, q.DiscountPercentage, "slots=%d", tc.slots)
		assert.Equal(t, tc.total, q.TotalPrice, "slots=%d", tc.slots)
		assert.Equal(t, int64(0), q.WeekendSurcharge)
		assert.Equal(t, tc.slots, q.SlotCount)
	}
}

func TestCalculate_WeekendSurchargeIsAdditive(t *testing.T) {
	q := Calculate([]Item{{BasePrice: 500000, WeekendSurcharge: 50000, Date: saturday}})
	assert.Equal(t, int64(500000), q.BasePrice)
	assert.Equal(t, int64(50000), q.WeekendSurcharge)
	assert.Equal(t, int64(550000), q.TotalPrice)
}

func TestCalculate_SurchargeAddedAfterDiscount(t *testing.T) {
	q := Calculate([]Item{
		{BasePrice: 200000, WeekendSurcharge: 50000, Date: saturday},
		{BasePrice: 200000, WeekendSurcharge: 50000, Date: sunday},
	})
	assert.Equal(t, int64(20000), q.DiscountAmount)
	assert.Equal(t, int64(100000), q.WeekendSurcharge)
	assert.Equal(t, int64(480000), q.TotalPrice)
}

func TestCalculate_EmptyAndNegative(t *testing.T) {
	assert.Equal(t, Quote{}, Calculate(nil))

	q := Calculate([]Item{{BasePrice: -100, WeekendSurcharge: -5, Date: saturday}})
	assert.Equal(t, int64(0), q.TotalPrice)
	assert.Equal(t, 1, q.SlotCount)
}

func TestCalculate_RoundsHalfUp(t *testing.T) {
	// 5% of 150010 = 7500.5
	q := Calculate([]Item{
		{BasePrice: 75005, Date: wednesday},
		{BasePrice: 75005, Date: wednesday},
	})
	assert.Equal(t, int64(7501), q.DiscountAmount)
}

func TestIsWeekend_UsesItemLocation(t *testing.T) {
	ict := time.FixedZone("ICT", 7*3600)
	// Saturday 01:00 in Vietnam is still Friday in UTC.
	d := time.Date(2025, 6, 7, 1, 0, 0, 0, ict)
	assert.True(t, IsWeekend(d))
	assert.False(t, IsWeekend(d.UTC()))
}

func TestCalculate_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	days := []time.Time{wednesday, saturday, sunday}

	for i := 0; i < 500; i++ {
		n := rng.Intn(6)
		items := make([]Item, n)
		var surcharge int64
		for j := range items {
			items[j] = Item{
				BasePrice:        int64(rng.Intn(2000)) * 1000,
				WeekendSurcharge: int64(rng.Intn(200)) * 1000,
				Date:             days[rng.Intn(len(days))],
			}
			surcharge += items[j].AppliedSurcharge()
		}

		q := Calculate(items)
		assert.Equal(t, q.BasePrice-q.DiscountAmount+q.WeekendSurcharge, q.TotalPrice)
		assert.Equal(t, surcharge, q.WeekendSurcharge)
		assert.LessOrEqual(t, q.DiscountAmount, q.BasePrice)
		assert.GreaterOrEqual(t, q.TotalPrice, int64(0))
		assert.Equal(t, q, Calculate(items), "pure function")
	}
}
