package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	"github.com/ariefcatur/go-marketplace.git/internal/market"
)

type productReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents"`
	Quantity    int    `json:"quantity"`
}

func (h *Handlers) createProduct(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.PriceCents < 0 || req.Quantity < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing or invalid fields"})
		return
	}
	now := time.Now().UTC()
	prod, err := h.Store.InsertProduct(r.Context(), market.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Quantity:    req.Quantity,
		SellerID:    p.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, prod)
}

func (h *Handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Store.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *Handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	prod, err := h.Store.GetProduct(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prod)
}

// Field pointer supaya field yang tidak dikirim bisa dibedakan dari nol:
// update parsial tidak boleh menimpa stok atau harga dengan zero value.
type productUpdateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int    `json:"price_cents"`
	Quantity    *int    `json:"quantity"`
}

// Hanya seller pemilik yang boleh mengubah atau menghapus product.
func (h *Handlers) updateProduct(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	prod, err := h.Store.GetProduct(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if prod.SellerID != p.ID {
		writeError(w, market.ErrUnauthorized)
		return
	}
	var req productUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if (req.PriceCents != nil && *req.PriceCents < 0) || (req.Quantity != nil && *req.Quantity < 0) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid fields"})
		return
	}
	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.PriceCents != nil {
		prod.PriceCents = *req.PriceCents
	}
	if req.Quantity != nil {
		prod.Quantity = *req.Quantity
	}
	prod.UpdatedAt = time.Now().UTC()
	prod, err = h.Store.UpdateProduct(r.Context(), prod)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prod)
}

func (h *Handlers) deleteProduct(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	prod, err := h.Store.GetProduct(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if prod.SellerID != p.ID {
		writeError(w, market.ErrUnauthorized)
		return
	}
	if err := h.Store.DeleteProduct(r.Context(), prod.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "product deleted"})
}
