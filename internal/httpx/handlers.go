package httpx

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/metrics"
)

// EventPublisher dipenuhi oleh kafka.Producer; test pakai publisher tangkapan.
type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Handlers struct {
	Engine    *market.Engine
	Ledger    *market.Ledger
	Store     market.Store
	Auth      *auth.Service
	Producers map[string]EventPublisher // per topic; boleh nil (event di-skip)
	Redis     *redis.Client             // boleh nil (cache di-skip)
	Metrics   *metrics.Metrics          // boleh nil
	Log       *zap.Logger
	Service   string
}

func (h *Handlers) Register(r *chi.Mux) {
	r.Post("/sellers", h.registerSeller)
	r.Post("/sellers/login", h.loginSeller)
	r.Get("/sellers/me", h.withPrincipal(auth.KindSeller, h.sellerMe))
	r.Get("/sellers/orders", h.withPrincipal(auth.KindSeller, h.sellerOrders))

	r.Post("/customers", h.registerCustomer)
	r.Post("/customers/login", h.loginCustomer)
	r.Get("/customers/orders", h.withPrincipal(auth.KindCustomer, h.customerOrders))

	r.Post("/products", h.withPrincipal(auth.KindSeller, h.createProduct))
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Put("/products/{id}", h.withPrincipal(auth.KindSeller, h.updateProduct))
	r.Delete("/products/{id}", h.withPrincipal(auth.KindSeller, h.deleteProduct))

	r.Post("/orders", h.withPrincipal(auth.KindCustomer, h.placeOrder))
	r.Get("/orders", h.withPrincipal(auth.KindCustomer, h.customerOrders))
	r.Get("/orders/{id}", h.getOrder)
	r.Put("/orders/{id}/status", h.withPrincipal(auth.KindSeller, h.updateOrderStatus))

	r.Get("/wallet", h.withPrincipal(auth.KindCustomer, h.getWallet))
	r.Post("/wallet", h.withPrincipal(auth.KindCustomer, h.createWallet))
	r.Put("/wallet/credit", h.withPrincipal(auth.KindCustomer, h.creditWallet))
	r.Put("/wallet/debit", h.withPrincipal(auth.KindCustomer, h.debitWallet))
}

func bearerToken(r *http.Request) string {
	hdr := r.Header.Get("Authorization")
	if strings.HasPrefix(hdr, "Bearer ") {
		return strings.TrimPrefix(hdr, "Bearer ")
	}
	return ""
}

// withPrincipal me-resolve bearer token ke principal dengan kind yang
// diminta; handler di bawahnya tidak pernah melihat token mentah.
func (h *Handlers) withPrincipal(kind auth.PrincipalKind, next func(http.ResponseWriter, *http.Request, auth.Principal)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := bearerToken(r)
		if tok == "" {
			writeError(w, auth.ErrUnauthenticated)
			return
		}
		p, err := h.Auth.Authenticate(r.Context(), tok)
		if err != nil || p.Kind != kind {
			writeError(w, auth.ErrUnauthenticated)
			return
		}
		next(w, r, p)
	}
}

func urlParam(r *http.Request, key string) string { return chi.URLParam(r, key) }
