package analytics

import (
	"math"
	"testing"
	"time"
)

func itemOrder(id string, price float64, at time.Time, items ...OrderItem) OrderRecord {
	order := paidOrder(id, price, at)
	order.Items = items
	return order
}

func summaryOrder(id string, price float64, at time.Time, categories ...string) OrderRecord {
	order := paidOrder(id, price, at)
	order.Summary = &OrderSummary{Categories: categories}
	return order
}

func boolPtr(v bool) *bool { return &v }

func TestAggregateSingleOrderScenario(t *testing.T) {
	at := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	orders := []OrderRecord{
		itemOrder("o1", 100, at, OrderItem{Name: "Masala Chai", Category: "drinks", Quantity: 1, ItemTotal: 100}),
	}

	m := Aggregate(orders, testNow)
	if m.TotalRevenue != 100 || m.TotalOrders != 1 || m.AvgOrderValue != 100 {
		t.Fatalf("totals wrong: %+v", m)
	}
	if len(m.CategoryBreakdown) != 1 || m.CategoryBreakdown["drinks"] != 100 {
		t.Fatalf("category breakdown wrong: %v", m.CategoryBreakdown)
	}
	if m.Hourly[10].Orders != 1 || m.Hourly[10].Revenue != 100 {
		t.Fatalf("hourly bucket wrong: %+v", m.Hourly[10])
	}
	// 2025-06-11 is a Wednesday.
	if m.Days[3].Orders != 1 {
		t.Fatalf("day bucket wrong: %+v", m.Days)
	}
}

func TestAggregateEmptySet(t *testing.T) {
	m := Aggregate(nil, testNow)
	if m.TotalRevenue != 0 || m.TotalOrders != 0 {
		t.Fatalf("expected zero totals, got %+v", m)
	}
	if m.AvgOrderValue != 0 {
		t.Fatalf("avgOrderValue must be 0 with no orders, got %f", m.AvgOrderValue)
	}
	if len(m.CategoryBreakdown) != 0 {
		t.Fatalf("expected empty category breakdown, got %v", m.CategoryBreakdown)
	}
	if len(m.Monthly) != 0 {
		t.Fatalf("expected no monthly buckets, got %v", m.Monthly)
	}
}

func TestAggregateSummarySplit(t *testing.T) {
	at := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	orders := []OrderRecord{
		summaryOrder("o1", 200, at, "drinks", "desserts"),
		summaryOrder("o2", 200, at, "drinks", "desserts"),
	}

	m := Aggregate(orders, testNow)
	if m.CategoryBreakdown["drinks"] != 200 || m.CategoryBreakdown["desserts"] != 200 {
		t.Fatalf("even split wrong: %v", m.CategoryBreakdown)
	}
}

func TestAggregateSummaryRepeatsAccumulate(t *testing.T) {
	at := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	orders := []OrderRecord{summaryOrder("o1", 300, at, "drinks", "drinks", "snacks")}

	m := Aggregate(orders, testNow)
	if m.CategoryBreakdown["drinks"] != 200 || m.CategoryBreakdown["snacks"] != 100 {
		t.Fatalf("repeated categories must accumulate shares: %v", m.CategoryBreakdown)
	}
}

func TestAggregateSummaryTakesPrecedenceOverItems(t *testing.T) {
	at := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	order := summaryOrder("o1", 100, at, "combos")
	order.Items = []OrderItem{{Name: "Latte", Category: "drinks", ItemTotal: 100}}

	m := Aggregate([]OrderRecord{order}, testNow)
	if m.CategoryBreakdown["combos"] != 100 {
		t.Fatalf("summary categories must win: %v", m.CategoryBreakdown)
	}
	if _, ok := m.CategoryBreakdown["drinks"]; ok {
		t.Fatalf("items must not contribute when a summary exists: %v", m.CategoryBreakdown)
	}
}

func TestAggregateCategoryCaseMergesAndDefaults(t *testing.T) {
	at := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	orders := []OrderRecord{
		itemOrder("o1", 80, at,
			OrderItem{Name: "Latte", Category: "Drinks", ItemTotal: 50},
			OrderItem{Name: "Chai", Category: "drinks", ItemTotal: 30},
		),
		itemOrder("o2", 40, at, OrderItem{Name: "Mystery", ItemTotal: 40}),
	}

	m := Aggregate(orders, testNow)
	if m.CategoryBreakdown["drinks"] != 80 {
		t.Fatalf("casing variants must merge into one bucket: %v", m.CategoryBreakdown)
	}
	if m.CategoryBreakdown["unknown"] != 40 {
		t.Fatalf("missing category must default to unknown: %v", m.CategoryBreakdown)
	}
}

func TestAggregateItemlessOrderCountsTowardTotalsOnly(t *testing.T) {
	at := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	orders := []OrderRecord{paidOrder("bare", 150, at)}

	m := Aggregate(orders, testNow)
	if m.TotalRevenue != 150 || m.TotalOrders != 1 {
		t.Fatalf("bare order must count toward totals: %+v", m)
	}
	if len(m.CategoryBreakdown) != 0 {
		t.Fatalf("bare order must not appear in category breakdown: %v", m.CategoryBreakdown)
	}
	if m.VegNonVeg != (VegBreakdown{}) {
		t.Fatalf("bare order must not appear in veg breakdown: %+v", m.VegNonVeg)
	}
}

func TestAggregateRevenueConservation(t *testing.T) {
	at := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	orders := []OrderRecord{
		itemOrder("o1", 130, at,
			OrderItem{Name: "Latte", Category: "drinks", ItemTotal: 90},
			OrderItem{Name: "Cake", Category: "desserts", ItemTotal: 40},
		),
		itemOrder("o2", 60, at, OrderItem{Name: "Samosa", Category: "snacks", ItemTotal: 60}),
	}

	m := Aggregate(orders, testNow)
	var categorySum float64
	for _, revenue := range m.CategoryBreakdown {
		categorySum += revenue
	}
	if math.Abs(categorySum-m.TotalRevenue) > 1e-9 {
		t.Fatalf("category breakdown must conserve revenue: %f vs %f", categorySum, m.TotalRevenue)
	}
	if math.Abs(m.AvgOrderValue*float64(m.TotalOrders)-m.TotalRevenue) > 1e-9 {
		t.Fatalf("avg * count must equal revenue")
	}
}

func TestAggregateVegBreakdown(t *testing.T) {
	at := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	orders := []OrderRecord{
		itemOrder("o1", 180, at,
			OrderItem{Name: "Paneer Roll", ItemTotal: 60, IsVeg: boolPtr(true)},
			OrderItem{Name: "Chicken Roll", ItemTotal: 80, IsVeg: boolPtr(false)},
			OrderItem{Name: "House Special", ItemTotal: 40},
		),
	}

	m := Aggregate(orders, testNow)
	expected := VegBreakdown{Veg: 60, NonVeg: 80, Unknown: 40}
	if m.VegNonVeg != expected {
		t.Fatalf("expected %+v, got %+v", expected, m.VegNonVeg)
	}
}

func TestAggregatePriceBuckets(t *testing.T) {
	at := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		price    float64
		expected string
	}{
		{price: 0, expected: "Under 100"},
		{price: 99.99, expected: "Under 100"},
		{price: 100, expected: "100-300"},
		{price: 450, expected: "300-500"},
		{price: 999.5, expected: "500-1000"},
		{price: 1000, expected: "1000+"},
	}

	for _, tc := range cases {
		m := Aggregate([]OrderRecord{paidOrder("o", tc.price, at)}, testNow)
		for _, bucket := range m.PriceRanges {
			want := 0
			if bucket.Label == tc.expected {
				want = 1
			}
			if bucket.Orders != want {
				t.Fatalf("price %f: bucket %s has %d orders, want %d", tc.price, bucket.Label, bucket.Orders, want)
			}
		}
	}
}

func TestAggregatePriceBucketCountsSumToTotalOrders(t *testing.T) {
	at := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	orders := []OrderRecord{
		paidOrder("a", 50, at),
		paidOrder("b", 250, at),
		paidOrder("c", 250, at),
		paidOrder("d", 1500, at),
	}

	m := Aggregate(orders, testNow)
	total := 0
	for _, bucket := range m.PriceRanges {
		total += bucket.Orders
	}
	if total != m.TotalOrders {
		t.Fatalf("bucket counts %d must sum to totalOrders %d", total, m.TotalOrders)
	}
}

func TestAggregateMonthlyChronological(t *testing.T) {
	orders := []OrderRecord{
		paidOrder("mar", 300, time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)),
		paidOrder("jan", 100, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)),
		paidOrder("feb", 200, time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC)),
		paidOrder("jan2", 50, time.Date(2025, 1, 25, 12, 0, 0, 0, time.UTC)),
	}

	m := Aggregate(orders, testNow)
	if len(m.Monthly) != 3 {
		t.Fatalf("expected 3 monthly buckets, got %d", len(m.Monthly))
	}
	expected := []struct {
		month   string
		revenue float64
		count   int
	}{
		{"Jan 2025", 150, 2},
		{"Feb 2025", 200, 1},
		{"Mar 2025", 300, 1},
	}
	for i, want := range expected {
		got := m.Monthly[i]
		if got.Month != want.month || got.Revenue != want.revenue || got.Orders != want.count {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, want, got)
		}
	}
}

func TestAggregateBucketsByNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, loc)
	// 23:30 UTC on June 10 is 02:30 June 11 in UTC+3.
	orders := []OrderRecord{paidOrder("o", 100, time.Date(2025, 6, 10, 23, 30, 0, 0, time.UTC))}

	m := Aggregate(orders, now)
	if m.Hourly[2].Orders != 1 {
		t.Fatalf("hour bucket must use now's location: %+v", m.Hourly)
	}
}
