package analytics

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestBuildReportTodayScenario(t *testing.T) {
	at := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	orders := []OrderRecord{
		itemOrder("o1", 100, at, OrderItem{Name: "Masala Chai", Category: "drinks", Quantity: 1, ItemTotal: 100}),
		paidOrder("yesterday", 500, at.AddDate(0, 0, -1)),
	}

	report, err := BuildReport(orders, PeriodToday, nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalRevenue != 100 || report.TotalOrders != 1 || report.AvgOrderValue != 100 {
		t.Fatalf("totals wrong: %+v", report)
	}
	if report.Category["drinks"] != 100 {
		t.Fatalf("category breakdown wrong: %v", report.Category)
	}
	if len(report.Sales) != 1 || report.Sales[0].ID != "o1" {
		t.Fatalf("report must carry only the filtered subset: %+v", report.Sales)
	}
	if !report.Range.End.After(report.Range.Start) {
		t.Fatalf("bad date range: %+v", report.Range)
	}
}

func TestBuildReportInvalidCustomRange(t *testing.T) {
	_, err := BuildReport(nil, PeriodCustom, nil, testNow)
	if err == nil {
		t.Fatalf("expected an error for custom period without a range")
	}
}

func TestBuildReportHourlyOmitsZeroHoursDaysAlwaysSeven(t *testing.T) {
	at := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	report, err := BuildReport([]OrderRecord{paidOrder("o1", 100, at)}, PeriodToday, nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Hourly) != 1 || report.Hourly[0].Hour != 10 {
		t.Fatalf("hourly list must omit zero-order hours: %+v", report.Hourly)
	}
	if len(report.Days) != 7 {
		t.Fatalf("day breakdown must always carry 7 entries, got %d", len(report.Days))
	}
	if report.Days[0].Day != "Sunday" || report.Days[6].Day != "Saturday" {
		t.Fatalf("day ordering wrong: %+v", report.Days)
	}
}

func TestBuildReportMonthlySelection(t *testing.T) {
	multiMonth := []OrderRecord{
		paidOrder("jan", 100, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)),
		paidOrder("feb", 200, time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)),
	}

	cases := []struct {
		name     string
		period   Period
		custom   *CustomRange
		orders   []OrderRecord
		expected bool
	}{
		{
			name:     "year with two months of data",
			period:   PeriodYear,
			orders:   multiMonth,
			expected: true,
		},
		{
			name:     "all with two months of data",
			period:   PeriodAll,
			orders:   multiMonth,
			expected: true,
		},
		{
			name:     "custom spanning two months",
			period:   PeriodCustom,
			custom:   &CustomRange{StartMonth: 0, StartYear: 2025, EndMonth: 1, EndYear: 2025},
			orders:   multiMonth,
			expected: true,
		},
		{
			name:     "year with one month of data",
			period:   PeriodYear,
			orders:   multiMonth[:1],
			expected: false,
		},
		{
			name:   "month period never shows the trend",
			period: PeriodMonth,
			orders: []OrderRecord{
				paidOrder("now", 100, testNow.Add(-time.Hour)),
			},
			expected: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report, err := BuildReport(tc.orders, tc.period, tc.custom, testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := len(report.Monthly) > 0; got != tc.expected {
				t.Fatalf("monthly presence: expected %v, got %v (%+v)", tc.expected, got, report.Monthly)
			}
		})
	}
}

func TestBuildReportDoesNotMutateInput(t *testing.T) {
	at := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	orders := []OrderRecord{
		itemOrder("o1", 100, at, OrderItem{Name: "Chai", Category: "drinks", ItemTotal: 100}),
	}
	before := orders[0]

	if _, err := BuildReport(orders, PeriodToday, nil, testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders[0].ID != before.ID || orders[0].TotalPrice != before.TotalPrice || len(orders[0].Items) != len(before.Items) {
		t.Fatalf("input mutated: %+v", orders[0])
	}
}

func TestReportJSONShape(t *testing.T) {
	at := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	report, err := BuildReport([]OrderRecord{paidOrder("o1", 100, at)}, PeriodToday, nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	encoded, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(encoded)
	for _, key := range []string{
		"totalRevenue", "totalOrders", "avgOrderValue", "categoryBreakdown",
		"vegNonVegBreakdown", "priceRangeBreakdown", "hourlyBreakdown",
		"dayBreakdown", "peakHour", "peakDay", "topSellingItems", "sales", "dateRange",
	} {
		if !strings.Contains(body, `"`+key+`"`) {
			t.Fatalf("report JSON missing %q: %s", key, body)
		}
	}
	if strings.Contains(body, "monthlyBreakdown") {
		t.Fatalf("single-day report must omit monthlyBreakdown: %s", body)
	}
}
