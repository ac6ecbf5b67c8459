package analytics

import "sort"

// BreakdownKind enumerates the chart views the dashboard can switch between.
// Each variant maps to one aggregation with its own unit: category and
// veg/non-veg are revenue shares, price range is an order count.
type BreakdownKind int

const (
	BreakdownCategory BreakdownKind = iota
	BreakdownVegNonVeg
	BreakdownPriceRange
)

type Unit int

const (
	UnitCurrency Unit = iota
	UnitCount
)

func (k BreakdownKind) Unit() Unit {
	if k == BreakdownPriceRange {
		return UnitCount
	}
	return UnitCurrency
}

func (k BreakdownKind) String() string {
	switch k {
	case BreakdownVegNonVeg:
		return "vegNonVeg"
	case BreakdownPriceRange:
		return "priceRange"
	default:
		return "category"
	}
}

// BreakdownSlice is one chart segment: display name, value in the kind's
// unit, and share of the total.
type BreakdownSlice struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Slices renders one breakdown variant as chart segments, zero-valued
// entries dropped, sorted descending by value.
func (m Metrics) Slices(kind BreakdownKind) []BreakdownSlice {
	var slices []BreakdownSlice

	switch kind {
	case BreakdownVegNonVeg:
		for _, entry := range []struct {
			name  string
			value float64
		}{
			{"Veg", m.VegNonVeg.Veg},
			{"Non-Veg", m.VegNonVeg.NonVeg},
			{"Unknown", m.VegNonVeg.Unknown},
		} {
			if entry.value > 0 {
				slices = append(slices, BreakdownSlice{Name: entry.name, Value: entry.value})
			}
		}
		fillPercentages(slices, m.TotalRevenue)
	case BreakdownPriceRange:
		for _, bucket := range m.PriceRanges {
			if bucket.Orders > 0 {
				slices = append(slices, BreakdownSlice{Name: bucket.Label, Value: float64(bucket.Orders)})
			}
		}
		fillPercentages(slices, float64(m.TotalOrders))
	default:
		for label, revenue := range m.CategoryBreakdown {
			slices = append(slices, BreakdownSlice{Name: titleCategory(label), Value: revenue})
		}
		fillPercentages(slices, m.TotalRevenue)
	}

	sort.SliceStable(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Name < slices[j].Name
	})
	return slices
}

func fillPercentages(slices []BreakdownSlice, total float64) {
	if total <= 0 {
		return
	}
	for i := range slices {
		slices[i].Percentage = slices[i].Value / total * 100
	}
}
