package handlers

import (
	"time"

	"cafeboard-analytics-service/internal/config"
	"cafeboard-analytics-service/internal/store"

	"go.uber.org/zap"
)

type Handler struct {
	Snapshot *store.Snapshot
	Logger   *zap.Logger
	Config   config.Config

	// Now supplies the current instant; tests inject a fixed clock.
	Now func() time.Time
}

// now is the single instant a request's whole pipeline is anchored on,
// expressed in the configured timezone so calendar-day math lands on the
// cafe's local days.
func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now().In(h.Config.Location())
	}
	return time.Now().In(h.Config.Location())
}
