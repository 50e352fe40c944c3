package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	"github.com/ariefcatur/go-marketplace.git/internal/market"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError memetakan taksonomi error domain ke status HTTP. Pesan
// InsufficientStock sengaja membawa jumlah stok tersedia.
func writeError(w http.ResponseWriter, err error) {
	var stockErr *market.InsufficientStockError
	var fundsErr *market.InsufficientFundsError

	switch {
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     stockErr.Error(),
			"available": stockErr.Available,
		})
	case errors.As(err, &fundsErr):
		writeJSON(w, http.StatusConflict, map[string]string{"error": fundsErr.Error()})
	case errors.Is(err, market.ErrProductNotFound),
		errors.Is(err, market.ErrOrderNotFound),
		errors.Is(err, market.ErrCustomerNotFound),
		errors.Is(err, market.ErrSellerNotFound),
		errors.Is(err, market.ErrWalletNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, market.ErrInvalidQuantity),
		errors.Is(err, market.ErrInvalidAmount),
		errors.Is(err, market.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, market.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, market.ErrWalletExists),
		errors.Is(err, market.ErrEmailExists),
		errors.Is(err, auth.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, auth.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
