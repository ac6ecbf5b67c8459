package feed

import (
	"context"
	"encoding/json"
	"time"

	"cafeboard-analytics-service/internal/analytics"
	"cafeboard-analytics-service/internal/queue"
	"cafeboard-analytics-service/internal/store"

	"go.uber.org/zap"
)

// Topology of the order feed. The upstream order system publishes to the
// events exchange; this service owns the queue.
const (
	Exchange = "cafeboard.events"
	Queue    = "cafeboard.orders"
	Binding  = "orders.#"

	RouteSnapshot = "orders.snapshot"
	RouteUpsert   = "orders.upsert"
)

const (
	consumeMaxRetries = 5
	consumeRetryDelay = 5 * time.Second
)

// Consumer keeps the in-memory snapshot in sync with the order feed. A
// snapshot message replaces the whole set, an upsert message updates one
// record. Malformed messages are logged and dropped; a single bad message
// must never take the feed down.
type Consumer struct {
	client   *queue.Client
	snapshot *store.Snapshot
	log      *zap.Logger
}

func New(client *queue.Client, snapshot *store.Snapshot, log *zap.Logger) *Consumer {
	return &Consumer{client: client, snapshot: snapshot, log: log}
}

// Setup declares the exchange, queue, and binding.
func (c *Consumer) Setup() error {
	if err := c.client.EnsureExchange(Exchange); err != nil {
		return err
	}
	if _, err := c.client.EnsureQueue(Queue); err != nil {
		return err
	}
	return c.client.BindQueue(Queue, Exchange, Binding)
}

// Run consumes the feed until the channel closes.
func (c *Consumer) Run() error {
	return c.client.ConsumeWithRetry(Queue, c.handle, consumeMaxRetries, consumeRetryDelay)
}

func (c *Consumer) handle(_ context.Context, routingKey string, body []byte) error {
	switch routingKey {
	case RouteSnapshot:
		var orders []analytics.OrderRecord
		if err := json.Unmarshal(body, &orders); err != nil {
			c.log.Warn("feed snapshot dropped", zap.Error(err))
			return nil
		}
		c.snapshot.Replace(orders)
		c.log.Info("feed snapshot applied", zap.Int("orders", len(orders)))
	case RouteUpsert:
		var order analytics.OrderRecord
		if err := json.Unmarshal(body, &order); err != nil {
			c.log.Warn("feed upsert dropped", zap.Error(err))
			return nil
		}
		c.snapshot.Upsert(order)
		c.log.Debug("feed upsert applied", zap.String("id", order.ID))
	default:
		c.log.Debug("feed message ignored", zap.String("routingKey", routingKey))
	}
	return nil
}
