package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cafeboard-analytics-service/internal/analytics"
	"cafeboard-analytics-service/pkg/response"

	"github.com/phpdave11/gofpdf"
)

// SalesReportExport renders the same report the JSON endpoint serves as a
// downloadable PDF summary.
func (h *Handler) SalesReportExport(w http.ResponseWriter, r *http.Request) {
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
		h.Logger.Error("sales export failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build sales report")
		return
	}

	doc, err := renderSalesReportPDF(report)
	if err != nil {
		h.Logger.Error("sales export render failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to render sales report")
		return
	}

	filename := sanitizeFilename(fmt.Sprintf("sales_report_%s_%s", period, now.Format("2006-01-02"))) + ".pdf"
	response.PDF(w, filename, doc.Bytes())
}

func renderSalesReportPDF(report *analytics.Report) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, "Sales Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Period: %s", report.Period), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("%s - %s",
		report.Range.Start.Format("2 Jan 2006"),
		report.Range.End.Add(-time.Second).Format("2 Jan 2006")), "", 1, "C", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Summary", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Total Revenue: %.2f", report.TotalRevenue), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Total Orders: %d", report.TotalOrders), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Average Order Value: %.2f", report.AvgOrderValue), "", 1, "L", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Category Performance", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	categories := report.Metrics().Slices(analytics.BreakdownCategory)
	if len(categories) == 0 {
		pdf.CellFormat(0, 5, "No category data", "", 1, "L", false, 0, "")
	}
	for _, slice := range categories {
		pdf.CellFormat(0, 5, fmt.Sprintf("%s: %.2f (%.1f%%)", slice.Name, slice.Value, slice.Percentage), "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Orders by Price Range", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, slice := range report.Metrics().Slices(analytics.BreakdownPriceRange) {
		pdf.CellFormat(0, 5, fmt.Sprintf("%s: %.0f orders (%.1f%%)", slice.Name, slice.Value, slice.Percentage), "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Insights", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Peak Hour: %d:00 (%.2f across %d orders)",
		report.PeakHour.Hour, report.PeakHour.Revenue, report.PeakHour.Orders), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Peak Day: %s (%.2f across %d orders)",
		report.PeakDay.Day, report.PeakDay.Revenue, report.PeakDay.Orders), "", 1, "L", false, 0, "")

	if len(report.TopItems) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 6, "Top Selling Items", "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for rank, item := range report.TopItems {
			pdf.CellFormat(0, 5, fmt.Sprintf("%d. %s - %d sold, %.2f", rank+1, item.Name, item.Quantity, item.Revenue), "", 1, "L", false, 0, "")
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
