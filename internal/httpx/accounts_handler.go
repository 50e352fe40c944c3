package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handlers) registerSeller(w http.ResponseWriter, r *http.Request) {
	var in auth.RegisterSellerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if in.Email == "" || in.Password == "" || in.StoreName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}
	sl, err := h.Auth.RegisterSeller(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sl)
}

func (h *Handlers) loginSeller(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	tok, err := h.Auth.LoginSeller(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResp{AccessToken: tok, TokenType: "bearer"})
}

func (h *Handlers) sellerMe(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	sl, err := h.Store.GetSeller(r.Context(), p.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sl)
}

// Riwayat order milik seller (semua order atas product miliknya).
func (h *Handlers) sellerOrders(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	orders, err := h.Engine.OrdersBySeller(r.Context(), p.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handlers) registerCustomer(w http.ResponseWriter, r *http.Request) {
	var in auth.RegisterCustomerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if in.Email == "" || in.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}
	c, err := h.Auth.RegisterCustomer(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) loginCustomer(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	tok, err := h.Auth.LoginCustomer(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResp{AccessToken: tok, TokenType: "bearer"})
}
