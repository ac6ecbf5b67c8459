package handlers

import (
	"errors"
	"net/http"

	"cafeboard-analytics-service/internal/analytics"
	"cafeboard-analytics-service/pkg/response"
)

// SalesAnalytics serves the full report for one period:
// GET /api/analytics/sales?period=month
// GET /api/analytics/sales?period=custom&startMonth=0&startYear=2025&endMonth=2&endYear=2025
func (h *Handler) SalesAnalytics(w http.ResponseWriter, r *http.Request) {
	period := analytics.Period(defaultString(r.URL.Query().Get("period"), string(analytics.PeriodToday)))
	custom := readCustomRange(r)

	now := h.now()
	report, err := analytics.BuildReport(h.Snapshot.PaidSales(now), period, custom, now)
	if err != nil {
		var rangeErr *analytics.InvalidRangeError
		if errors.As(err, &rangeErr) {
			response.Error(w, http.StatusBadRequest, "INVALID_RANGE", rangeErr.Error())
			return
		}
		h.Logger.Error("sales analytics failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build sales analytics")
		return
	}

	response.Success(w, report)
}

// AvailableYears serves the year choices for the custom-range picker.
func (h *Handler) AvailableYears(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	response.Success(w, map[string]any{
		"years": analytics.AvailableYears(h.Snapshot.PaidSales(now), now),
	})
}

// readCustomRange builds a custom range only when all four query parameters
// parse; anything less counts as an absent range and the resolver rejects it.
func readCustomRange(r *http.Request) *analytics.CustomRange {
	startMonth, ok := readQueryInt(r, "startMonth")
	if !ok {
		return nil
	}
	startYear, ok := readQueryInt(r, "startYear")
	if !ok {
		return nil
	}
	endMonth, ok := readQueryInt(r, "endMonth")
	if !ok {
		return nil
	}
	endYear, ok := readQueryInt(r, "endYear")
	if !ok {
		return nil
	}
	return &analytics.CustomRange{
		StartMonth: startMonth,
		StartYear:  startYear,
		EndMonth:   endMonth,
		EndYear:    endYear,
	}
}
