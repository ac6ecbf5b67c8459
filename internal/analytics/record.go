package analytics

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusPrepared  = "prepared"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"

	PaymentPaid   = "paid"
	PaymentUnpaid = "unpaid"
)

// OrderRecord is one completed sale as delivered by the order feed. The
// engine never mutates a record; every computation produces new values.
// Unknown fields in the source payload are ignored on decode.
type OrderRecord struct {
	ID                  string        `json:"id"`
	OrderNumber         string        `json:"orderNumber,omitempty"`
	TableNumber         string        `json:"tableNumber,omitempty"`
	Status              string        `json:"status,omitempty"`
	PaymentStatus       string        `json:"paymentStatus,omitempty"`
	TotalPrice          float64       `json:"totalPrice,omitempty"`
	TotalItems          int           `json:"totalItems,omitempty"`
	CreatedAt           *Timestamp    `json:"createdAt,omitempty"`
	UpdatedAt           *Timestamp    `json:"updatedAt,omitempty"`
	RawTimestamp        *Timestamp    `json:"timestamp,omitempty"`
	Items               []OrderItem   `json:"items,omitempty"`
	Summary             *OrderSummary `json:"summary,omitempty"`
	Customer            *Customer     `json:"customer,omitempty"`
	SpecialInstructions string        `json:"specialInstructions,omitempty"`
}

type OrderItem struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName,omitempty"`
	Category    string  `json:"category,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	ItemTotal   float64 `json:"itemTotal,omitempty"`
	IsVeg       *bool   `json:"isVeg,omitempty"`
}

type OrderSummary struct {
	Categories []string `json:"categories,omitempty"`
}

type Customer struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// IsPaidSale reports whether the record is eligible for analytics.
func (o OrderRecord) IsPaidSale() bool {
	return o.PaymentStatus == PaymentPaid
}

// EffectiveTime places the order in time: updatedAt, then createdAt, then the
// raw timestamp field, then now. A record without any temporal data is never
// dropped; it lands in whatever window contains now.
func (o OrderRecord) EffectiveTime(now time.Time) time.Time {
	if o.UpdatedAt != nil && !o.UpdatedAt.IsZero() {
		return o.UpdatedAt.Time
	}
	if o.CreatedAt != nil && !o.CreatedAt.IsZero() {
		return o.CreatedAt.Time
	}
	if o.RawTimestamp != nil && !o.RawTimestamp.IsZero() {
		return o.RawTimestamp.Time
	}
	return now
}

// Timestamp decodes the polymorphic instants the feed produces: RFC3339
// strings, bare dates, or epoch values (seconds or milliseconds). Malformed
// values decode to the zero time instead of failing the whole record.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}

	if raw[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			t.Time = time.Time{}
			return nil
		}
		t.Time = parseTimeString(value)
		return nil
	}

	var epoch float64
	if err := json.Unmarshal(data, &epoch); err != nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = fromEpoch(epoch)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

func parseTimeString(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed
	}
	return time.Time{}
}

func fromEpoch(value float64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	// Values past ~5138 AD in seconds are epoch milliseconds.
	if value > 1e11 {
		return time.UnixMilli(int64(value))
	}
	return time.Unix(int64(value), 0)
}
