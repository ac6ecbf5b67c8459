package analytics

import (
	"fmt"
	"time"
)

type Period string

const (
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodAll    Period = "all"
	PeriodCustom Period = "custom"
)

// allTimeFloorYear is the sentinel start for the "all" period. It predates
// any realistic data in the system.
const allTimeFloorYear = 2020

// CustomRange selects whole calendar months. Months are zero-based
// (January = 0) to match the dashboard's month picker.
type CustomRange struct {
	StartMonth int `json:"startMonth"`
	StartYear  int `json:"startYear"`
	EndMonth   int `json:"endMonth"`
	EndYear    int `json:"endYear"`
}

// DateRange is a half-open interval [Start, End).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// InvalidRangeError is returned when the custom period is requested without a
// usable custom range. Per-record anomalies never raise errors; this is the
// only failure the resolver produces.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return "invalid custom range: " + e.Reason
}

// Resolve maps a period selector to a concrete half-open interval, anchored
// on the caller-supplied instant. Unknown periods behave as "today".
func Resolve(period Period, custom *CustomRange, now time.Time) (DateRange, error) {
	loc := now.Location()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch period {
	case PeriodWeek:
		// Week starts on Sunday.
		start := midnight.AddDate(0, 0, -int(now.Weekday()))
		return DateRange{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case PeriodYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		return DateRange{Start: start, End: start.AddDate(1, 0, 0)}, nil
	case PeriodAll:
		start := time.Date(allTimeFloorYear, 1, 1, 0, 0, 0, 0, loc)
		return DateRange{Start: start, End: now}, nil
	case PeriodCustom:
		return resolveCustom(custom, loc)
	default:
		return DateRange{Start: midnight, End: midnight.AddDate(0, 0, 1)}, nil
	}
}

func resolveCustom(custom *CustomRange, loc *time.Location) (DateRange, error) {
	if custom == nil {
		return DateRange{}, &InvalidRangeError{Reason: "custom period requires a custom range"}
	}
	if custom.StartMonth < 0 || custom.StartMonth > 11 || custom.EndMonth < 0 || custom.EndMonth > 11 {
		return DateRange{}, &InvalidRangeError{Reason: fmt.Sprintf("months must be 0-11, got %d and %d", custom.StartMonth, custom.EndMonth)}
	}
	if custom.StartYear <= 0 || custom.EndYear <= 0 {
		return DateRange{}, &InvalidRangeError{Reason: "years must be positive"}
	}

	start := time.Date(custom.StartYear, time.Month(custom.StartMonth+1), 1, 0, 0, 0, 0, loc)
	// First day of the month after the end month; time.Date normalizes
	// month overflow into the next year.
	end := time.Date(custom.EndYear, time.Month(custom.EndMonth+2), 1, 0, 0, 0, 0, loc)
	if !end.After(start) {
		return DateRange{}, &InvalidRangeError{Reason: "end month precedes start month"}
	}
	return DateRange{Start: start, End: end}, nil
}
