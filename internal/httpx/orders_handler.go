package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
)

type placeOrderReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *Handlers) placeOrder(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing product_id"})
		return
	}

	order, err := h.Engine.PlaceOrder(r.Context(), req.ProductID, p.ID, req.Quantity)
	if err != nil {
		var stockErr *market.InsufficientStockError
		if h.Metrics != nil && errors.As(err, &stockErr) {
			h.Metrics.StockRejected.Inc()
		}
		writeError(w, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.OrdersPlaced.Inc()
	}

	// Cache status (pending) agar GET cepat; DB tetap jadi kebenaran.
	h.cacheOrderStatus(r, order)

	h.publish(market.TopicOrderPlaced, market.EventOrderPlaced, order.ID,
		r.Header.Get("X-Request-Id"),
		market.OrderPlacedPayload{
			OrderID:    order.ID,
			ProductID:  order.ProductID,
			SellerID:   order.SellerID,
			CustomerID: order.CustomerID,
			Quantity:   order.Quantity,
			Status:     order.Status,
		})

	writeJSON(w, http.StatusCreated, order)
}

func (h *Handlers) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := urlParam(r, "id")

	// 1) coba cache
	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		if s, err := h.Redis.Get(r.Context(), key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	// 2) fallback DB
	order, err := h.Engine.OrderByID(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.cacheOrderStatus(r, order)
	writeJSON(w, http.StatusOK, order)
}

// Riwayat order milik customer yang login, dengan offset/limit opsional.
// Kosong bukan error: balas array kosong.
func (h *Handlers) customerOrders(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	orders, err := h.Engine.OrdersByCustomer(r.Context(), p.ID, offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *Handlers) updateOrderStatus(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	order, err := h.Engine.UpdateStatus(r.Context(), urlParam(r, "id"), market.Status(req.Status), p.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cacheOrderStatus(r, order)

	h.publish(market.TopicOrderStatusChanged, market.EventOrderStatusChanged, order.ID,
		r.Header.Get("X-Request-Id"),
		market.OrderStatusChangedPayload{OrderID: order.ID, SellerID: order.SellerID, Status: order.Status})

	writeJSON(w, http.StatusOK, order)
}

func (h *Handlers) cacheOrderStatus(r *http.Request, order market.Order) {
	if h.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderStatus, order.ID)
	_ = h.Redis.Set(r.Context(), key, kafkax.MustMarshal(order), redisx.TTLStatusCache).Err()
}

// publish membungkus payload dalam envelope v1 dan kirim async ke producer
// topik ybs. Tanpa producer (test) event di-skip.
func (h *Handlers) publish(topic, eventType, correlationID, traceID string, payload any) {
	prod := h.Producers[topic]
	if prod == nil {
		return
	}
	ev := market.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       traceID,
		CorrelationID: correlationID,
		Payload:       kafkax.MustMarshal(payload),
	}
	prod.Publish(market.PartitionKey(correlationID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	if h.Log != nil {
		h.Log.Debug("event published", zap.String("topic", topic), zap.String("event_type", eventType),
			zap.String("correlation_id", correlationID))
	}
}
