package analytics

import (
	"fmt"
	"time"
)

type HourBucket struct {
	Hour    int     `json:"hour"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type DayBucket struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// Report is the full analytics payload for one period, built fresh on every
// query. It references only the filtered subset of the input, never the full
// order set.
type Report struct {
	Period        Period             `json:"period"`
	TotalRevenue  float64            `json:"totalRevenue"`
	TotalOrders   int                `json:"totalOrders"`
	AvgOrderValue float64            `json:"avgOrderValue"`
	Category      map[string]float64 `json:"categoryBreakdown"`
	VegNonVeg     VegBreakdown       `json:"vegNonVegBreakdown"`
	PriceRanges   []PriceBucket      `json:"priceRangeBreakdown"`
	Hourly        []HourBucket       `json:"hourlyBreakdown"`
	Days          []DayBucket        `json:"dayBreakdown"`
	Monthly       []MonthBucket      `json:"monthlyBreakdown,omitempty"`
	PeakHour      PeakHour           `json:"peakHour"`
	PeakDay       PeakDay            `json:"peakDay"`
	TopItems      []ItemSales        `json:"topSellingItems"`
	Sales         []OrderRecord      `json:"sales"`
	Range         DateRange          `json:"dateRange"`

	metrics Metrics
}

// Metrics exposes the underlying aggregation, including the zero-padded hour
// and day arrays the list forms were derived from.
func (r *Report) Metrics() Metrics {
	return r.metrics
}

// BuildReport runs the whole pipeline: resolve the period to a range, filter
// the snapshot, aggregate, and derive insights. It is a pure function of its
// arguments; now anchors both the period resolution and every effective-time
// fallback.
func BuildReport(orders []OrderRecord, period Period, custom *CustomRange, now time.Time) (*Report, error) {
	dateRange, err := Resolve(period, custom, now)
	if err != nil {
		return nil, err
	}

	filtered := FilterByRange(orders, dateRange, now)
	metrics := Aggregate(filtered, now)
	peakHour, peakDay := DerivePeaks(metrics.Hourly, metrics.Days)

	report := &Report{
		Period:        period,
		TotalRevenue:  metrics.TotalRevenue,
		TotalOrders:   metrics.TotalOrders,
		AvgOrderValue: metrics.AvgOrderValue,
		Category:      metrics.CategoryBreakdown,
		VegNonVeg:     metrics.VegNonVeg,
		PriceRanges:   metrics.PriceRanges,
		Hourly:        hourlySeries(metrics.Hourly),
		Days:          daySeries(metrics.Days),
		PeakHour:      peakHour,
		PeakDay:       peakDay,
		TopItems:      TopSellingItems(filtered, defaultTopItems),
		Sales:         filtered,
		Range:         dateRange,
		metrics:       metrics,
	}

	// The monthly trend only makes sense for windows that can span several
	// calendar months, and only when more than one month has data.
	if (period == PeriodYear || period == PeriodAll || period == PeriodCustom) && len(metrics.Monthly) > 1 {
		report.Monthly = metrics.Monthly
	}

	return report, nil
}

// hourlySeries is the chart form of the hourly buckets: zero-order hours
// are omitted, remaining entries stay in ascending hour order.
func hourlySeries(hourly [24]BucketStat) []HourBucket {
	series := make([]HourBucket, 0, len(hourly))
	for hour, stat := range hourly {
		if stat.Orders == 0 {
			continue
		}
		series = append(series, HourBucket{
			Hour:    hour,
			Label:   fmt.Sprintf("%d:00", hour),
			Revenue: stat.Revenue,
			Orders:  stat.Orders,
		})
	}
	return series
}

// daySeries always carries all seven days, Sunday first, so charts keep a
// stable axis regardless of data sparsity.
func daySeries(days [7]BucketStat) []DayBucket {
	series := make([]DayBucket, 0, len(days))
	for day, stat := range days {
		series = append(series, DayBucket{
			Day:     dayNames[day],
			Revenue: stat.Revenue,
			Orders:  stat.Orders,
		})
	}
	return series
}
