package analytics

import (
	"sort"
	"time"
)

// AvailableYears lists the years the custom-range picker can offer:
// the year of every order's effective time, plus a fixed look-around window
// of two years back and one year ahead of now. Descending, deduplicated.
// The current year is always present, even with no data at all.
func AvailableYears(orders []OrderRecord, now time.Time) []int {
	years := make(map[int]struct{})
	for _, order := range orders {
		years[order.EffectiveTime(now).Year()] = struct{}{}
	}
	for year := now.Year() - 2; year <= now.Year()+1; year++ {
		years[year] = struct{}{}
	}

	out := make([]int, 0, len(years))
	for year := range years {
		out = append(out, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
