package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
)

type walletAmountReq struct {
	AmountCents int64 `json:"amount_cents"`
}

func (h *Handlers) createWallet(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	wallet, err := h.Ledger.CreateWallet(r.Context(), p.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wallet)
}

func (h *Handlers) getWallet(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	// saldo sering dibaca; cache dulu, DB tetap kebenaran. Cache menyimpan
	// wallet utuh supaya bentuk response sama dengan jalur DB.
	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyWalletBalance, p.ID)
		if s, err := h.Redis.Get(r.Context(), key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	wallet, err := h.Ledger.Balance(r.Context(), p.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.cacheBalance(r, wallet)
	writeJSON(w, http.StatusOK, wallet)
}

func (h *Handlers) creditWallet(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	h.adjustWallet(w, r, p, "credit")
}

func (h *Handlers) debitWallet(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	h.adjustWallet(w, r, p, "debit")
}

func (h *Handlers) adjustWallet(w http.ResponseWriter, r *http.Request, p auth.Principal, op string) {
	var req walletAmountReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	var wallet market.Wallet
	var err error
	delta := req.AmountCents
	if op == "credit" {
		wallet, err = h.Ledger.Credit(r.Context(), p.ID, req.AmountCents)
	} else {
		wallet, err = h.Ledger.Debit(r.Context(), p.ID, req.AmountCents)
		delta = -delta
	}
	if h.Metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "rejected"
		}
		h.Metrics.WalletOps.WithLabelValues(op, outcome).Inc()
	}
	if err != nil {
		writeError(w, err)
		return
	}

	h.cacheBalance(r, wallet)

	h.publish(market.TopicWalletAdjusted, market.EventWalletAdjusted, wallet.CustomerID,
		r.Header.Get("X-Request-Id"),
		market.WalletAdjustedPayload{
			WalletID:     wallet.ID,
			CustomerID:   wallet.CustomerID,
			DeltaCents:   delta,
			BalanceCents: wallet.BalanceCents,
		})

	writeJSON(w, http.StatusOK, wallet)
}

func (h *Handlers) cacheBalance(r *http.Request, wallet market.Wallet) {
	if h.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyWalletBalance, wallet.CustomerID)
	_ = h.Redis.Set(r.Context(), key, kafkax.MustMarshal(wallet), redisx.TTLBalanceCache).Err()
}
