package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const unknownCategory = "unknown"

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// BucketStat accumulates revenue and order count for one time bucket.
type BucketStat struct {
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type VegBreakdown struct {
	Veg     float64 `json:"veg"`
	NonVeg  float64 `json:"nonVeg"`
	Unknown float64 `json:"unknown"`
}

// PriceBucket counts orders whose totalPrice falls in [Min, Max). Max <= 0
// marks the unbounded top bucket.
type PriceBucket struct {
	Label  string  `json:"label"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max,omitempty"`
	Orders int     `json:"orders"`
}

type MonthBucket struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`

	sortKey time.Time
}

// Metrics is the full aggregation output over one filtered order set. All
// maps and slices are freshly constructed per call.
type Metrics struct {
	TotalRevenue  float64
	TotalOrders   int
	AvgOrderValue float64

	// CategoryBreakdown maps canonical (lowercased) category labels to
	// revenue. Display casing is the presentation layer's concern.
	CategoryBreakdown map[string]float64
	VegNonVeg         VegBreakdown
	PriceRanges       []PriceBucket
	Hourly            [24]BucketStat
	Days              [7]BucketStat
	Monthly           []MonthBucket
}

// Aggregate computes every metric and breakdown over an already-filtered
// order set. Time buckets (hour, day, month) use now's location; now also
// anchors the effective-time fallback for records without temporal data.
func Aggregate(orders []OrderRecord, now time.Time) Metrics {
	m := Metrics{
		CategoryBreakdown: buildCategoryBreakdown(orders),
		VegNonVeg:         buildVegBreakdown(orders),
		PriceRanges:       buildPriceBuckets(orders),
	}

	for _, order := range orders {
		m.TotalRevenue += order.TotalPrice
	}
	m.TotalOrders = len(orders)
	if m.TotalOrders > 0 {
		m.AvgOrderValue = m.TotalRevenue / float64(m.TotalOrders)
	}

	loc := now.Location()
	monthly := make(map[string]*MonthBucket)
	for _, order := range orders {
		at := order.EffectiveTime(now).In(loc)

		m.Hourly[at.Hour()].Revenue += order.TotalPrice
		m.Hourly[at.Hour()].Orders++

		m.Days[int(at.Weekday())].Revenue += order.TotalPrice
		m.Days[int(at.Weekday())].Orders++

		monthKey := at.Format("2006-01")
		bucket := monthly[monthKey]
		if bucket == nil {
			bucket = &MonthBucket{
				Month:   at.Format("Jan 2006"),
				sortKey: time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, loc),
			}
			monthly[monthKey] = bucket
		}
		bucket.Revenue += order.TotalPrice
		bucket.Orders++
	}

	m.Monthly = make([]MonthBucket, 0, len(monthly))
	for _, bucket := range monthly {
		m.Monthly = append(m.Monthly, *bucket)
	}
	sort.Slice(m.Monthly, func(i, j int) bool {
		return m.Monthly[i].sortKey.Before(m.Monthly[j].sortKey)
	})

	return m
}

// buildCategoryBreakdown credits revenue to categories from one of two
// mutually exclusive sources per order: a non-empty summary splits the order
// total evenly across its listed categories (repeats accumulate repeat
// shares); otherwise each item's own total goes to the item's category.
// Orders carrying neither contribute nothing here even though they count
// toward revenue and order totals. That asymmetry matches the dashboard's
// historical behavior and is kept deliberately.
func buildCategoryBreakdown(orders []OrderRecord) map[string]float64 {
	breakdown := make(map[string]float64)
	for _, order := range orders {
		if order.Summary != nil && len(order.Summary.Categories) > 0 {
			share := order.TotalPrice / float64(len(order.Summary.Categories))
			for _, category := range order.Summary.Categories {
				breakdown[canonicalCategory(category)] += share
			}
			continue
		}
		for _, item := range order.Items {
			breakdown[canonicalCategory(item.Category)] += item.ItemTotal
		}
	}
	return breakdown
}

func buildVegBreakdown(orders []OrderRecord) VegBreakdown {
	var out VegBreakdown
	for _, order := range orders {
		for _, item := range order.Items {
			switch {
			case item.IsVeg != nil && *item.IsVeg:
				out.Veg += item.ItemTotal
			case item.IsVeg != nil:
				out.NonVeg += item.ItemTotal
			default:
				out.Unknown += item.ItemTotal
			}
		}
	}
	return out
}

var priceBucketBounds = []float64{0, 100, 300, 500, 1000}

func buildPriceBuckets(orders []OrderRecord) []PriceBucket {
	buckets := make([]PriceBucket, len(priceBucketBounds))
	for i, min := range priceBucketBounds {
		buckets[i].Min = min
		if i+1 < len(priceBucketBounds) {
			buckets[i].Max = priceBucketBounds[i+1]
			buckets[i].Label = fmt.Sprintf("%.0f-%.0f", min, buckets[i].Max)
		} else {
			buckets[i].Label = fmt.Sprintf("%.0f+", min)
		}
	}
	buckets[0].Label = fmt.Sprintf("Under %.0f", buckets[0].Max)

	for _, order := range orders {
		idx := 0
		for i, min := range priceBucketBounds {
			if order.TotalPrice >= min {
				idx = i
			}
		}
		buckets[idx].Orders++
	}
	return buckets
}

func canonicalCategory(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return unknownCategory
	}
	return label
}

// titleCategory is the display form of a canonical category label.
func titleCategory(label string) string {
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
