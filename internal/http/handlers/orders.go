package handlers

import (
	"encoding/json"
	"net/http"

	"cafeboard-analytics-service/internal/analytics"
	"cafeboard-analytics-service/pkg/response"

	"go.uber.org/zap"
)

// SnapshotReplace swaps the whole in-memory order set. Used by the feed's
// HTTP fallback when no broker is configured.
func (h *Handler) SnapshotReplace(w http.ResponseWriter, r *http.Request) {
	var orders []analytics.OrderRecord
	if err := json.NewDecoder(r.Body).Decode(&orders); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Body must be a JSON array of order records")
		return
	}

	h.Snapshot.Replace(orders)
	h.Logger.Info("order snapshot replaced", zap.Int("orders", len(orders)))
	response.Success(w, map[string]any{"orders": len(orders)})
}

// OrderUpsert stores one order record, keyed by id.
func (h *Handler) OrderUpsert(w http.ResponseWriter, r *http.Request) {
	var order analytics.OrderRecord
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Body must be a JSON order record")
		return
	}
	if order.ID == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Order id is required")
		return
	}

	h.Snapshot.Upsert(order)
	response.Success(w, map[string]any{"id": order.ID})
}

// RecentSales serves the newest paid sales for the dashboard's recent list.
func (h *Handler) RecentSales(w http.ResponseWriter, r *http.Request) {
	limit, ok := readQueryInt(r, "limit")
	if !ok || limit <= 0 {
		limit = h.Config.RecentSalesLimit
	}

	sales := h.Snapshot.PaidSales(h.now())
	if len(sales) > limit {
		sales = sales[:limit]
	}
	response.Success(w, map[string]any{
		"sales": sales,
		"total": len(sales),
	})
}
