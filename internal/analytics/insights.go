package analytics

import "sort"

const defaultTopItems = 5

type PeakHour struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type PeakDay struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// DerivePeaks picks the hour and weekday with the highest revenue. Ties go to
// the earliest canonical bucket (hour 0 upward, Sunday through Saturday), and
// empty data yields hour 0 and Sunday at zero rather than an absent value.
func DerivePeaks(hourly [24]BucketStat, days [7]BucketStat) (PeakHour, PeakDay) {
	peakHour := PeakHour{Hour: 0, Revenue: hourly[0].Revenue, Orders: hourly[0].Orders}
	for hour, stat := range hourly {
		if stat.Revenue > peakHour.Revenue {
			peakHour = PeakHour{Hour: hour, Revenue: stat.Revenue, Orders: stat.Orders}
		}
	}

	peakDay := PeakDay{Day: dayNames[0], Revenue: days[0].Revenue, Orders: days[0].Orders}
	for day, stat := range days {
		if stat.Revenue > peakDay.Revenue {
			peakDay = PeakDay{Day: dayNames[day], Revenue: stat.Revenue, Orders: stat.Orders}
		}
	}

	return peakHour, peakDay
}

type ItemSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"qty"`
	Revenue  float64 `json:"revenue"`
}

// TopSellingItems aggregates items across the filtered orders by exact name,
// summing quantity and revenue, and returns the top performers by revenue.
// Ties break by quantity, then by first appearance. limit <= 0 means 5.
func TopSellingItems(orders []OrderRecord, limit int) []ItemSales {
	if limit <= 0 {
		limit = defaultTopItems
	}

	totals := make(map[string]*ItemSales)
	firstSeen := make(map[string]int)
	for _, order := range orders {
		for _, item := range order.Items {
			entry := totals[item.Name]
			if entry == nil {
				entry = &ItemSales{Name: item.Name}
				totals[item.Name] = entry
				firstSeen[item.Name] = len(firstSeen)
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.ItemTotal
		}
	}

	ranked := make([]ItemSales, 0, len(totals))
	for _, entry := range totals {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return firstSeen[ranked[i].Name] < firstSeen[ranked[j].Name]
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
