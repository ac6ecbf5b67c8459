package store

import (
	"sort"
	"sync"
	"time"

	"cafeboard-analytics-service/internal/analytics"
)

// Snapshot holds the current in-memory order set. The feed replaces or
// upserts into it at arbitrary times; readers always get a fully
// materialized copy, never a view into shared state. Nothing is persisted:
// after a restart the snapshot is empty until the feed repopulates it.
type Snapshot struct {
	mu     sync.RWMutex
	orders []analytics.OrderRecord
}

func New() *Snapshot {
	return &Snapshot{}
}

// Replace swaps the whole order set for a new one.
func (s *Snapshot) Replace(orders []analytics.OrderRecord) {
	copied := make([]analytics.OrderRecord, len(orders))
	copy(copied, orders)

	s.mu.Lock()
	s.orders = copied
	s.mu.Unlock()
}

// Upsert stores one record, matching on id. Records the feed delivers
// without an id are appended; they can only ever be replaced by a full
// snapshot.
func (s *Snapshot) Upsert(order analytics.OrderRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID != "" {
		for i := range s.orders {
			if s.orders[i].ID == order.ID {
				s.orders[i] = order
				return
			}
		}
	}
	s.orders = append(s.orders, order)
}

func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// PaidSales returns the records eligible for analytics, sorted descending by
// effective time. This mirrors the ordering of the dashboard's sales feed;
// the analytics filter preserves it.
func (s *Snapshot) PaidSales(now time.Time) []analytics.OrderRecord {
	s.mu.RLock()
	sales := make([]analytics.OrderRecord, 0, len(s.orders))
	for _, order := range s.orders {
		if order.IsPaidSale() {
			sales = append(sales, order)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].EffectiveTime(now).After(sales[j].EffectiveTime(now))
	})
	return sales
}
