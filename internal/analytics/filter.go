package analytics

import "time"

// FilterByRange selects the orders whose effective time falls inside r,
// preserving the relative order of the input. Sorting is the feed's concern;
// filtering never re-sorts. Records without temporal data take now as their
// effective time, so they stay inside the broadest and most recent windows
// rather than vanishing.
func FilterByRange(orders []OrderRecord, r DateRange, now time.Time) []OrderRecord {
	filtered := make([]OrderRecord, 0, len(orders))
	for _, order := range orders {
		if r.Contains(order.EffectiveTime(now)) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}
