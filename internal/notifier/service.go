// Package notifier mengkonsumsi event order dan menjaga cache status di
// Redis tetap segar, supaya GET /orders/{id} jarang menyentuh Postgres.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
)

type Service struct {
	Store       market.Store
	Redis       *redis.Client
	Log         *zap.Logger
	ServiceName string
}

// HandleOrderEvent: dipasang sebagai handler consumer untuk order.placed dan
// order.status.changed.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env market.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	var orderID string
	switch env.EventType {
	case market.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[market.OrderPlacedPayload](env.Payload)
		if err != nil {
			return err
		}
		orderID = p.OrderID
	case market.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[market.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		orderID = p.OrderID
	default:
		return nil // ignore
	}

	// dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	// Re-read dari DB, bukan dari payload: event bisa datang telat dan
	// statusnya sudah berubah lagi.
	order, err := s.Store.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	key := fmt.Sprintf(redisx.KeyOrderStatus, order.ID)
	if err := s.Redis.Set(ctx, key, kafkax.MustMarshal(order), redisx.TTLStatusCache).Err(); err != nil {
		// cache hanya advisory, jangan bikin offset gagal commit
		s.Log.Warn("status cache refresh failed", zap.String("order_id", order.ID), zap.Error(err))
	}
	s.Log.Info("order status cached",
		zap.String("order_id", order.ID), zap.String("status", string(order.Status)))
	return nil
}
