package handlers

import (
	"errors"
	"net/http"

	"tiendaBack/internal/models"
	"tiendaBack/internal/services"
)

type CheckoutHandler struct {
	Service *services.CheckoutService
}

// Checkout prepares the WhatsApp handoff for the current cart. An empty cart
// is refused with the same warning the storefront shows in its modal.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	token := cartToken(r)
	if token == "" {
		http.Error(w, "Missing cart token", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.Checkout(r.Context(), token)
	if errors.Is(err, models.ErrCartEmpty) {
		errorJSON(w, http.StatusConflict, services.EmptyCartMessage)
		return
	}
	if err != nil {
		http.Error(w, "Failed to build order", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
