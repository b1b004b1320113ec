package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"tiendaBack/internal/models"
	"tiendaBack/internal/services"
)

type CartHandler struct {
	Service *services.CartService
}

// GetCart returns the rendered cart view for the shopper's token.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	token := cartToken(r)
	if token == "" {
		http.Error(w, "Missing cart token", http.StatusBadRequest)
		return
	}

	cart, err := h.Service.GetCart(r.Context(), token)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, h.Service.View(cart))
}

// GetCartCount returns just the badge number.
func (h *CartHandler) GetCartCount(w http.ResponseWriter, r *http.Request) {
	token := cartToken(r)
	if token == "" {
		http.Error(w, "Missing cart token", http.StatusBadRequest)
		return
	}

	cart, err := h.Service.GetCart(r.Context(), token)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": services.CartCount(cart)})
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	token := cartToken(r)
	if token == "" {
		http.Error(w, "Missing cart token", http.StatusBadRequest)
		return
	}

	var req models.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cart, err := h.Service.AddToCart(r.Context(), token, req)
	if errors.Is(err, models.ErrInvalidProduct) || errors.Is(err, models.ErrInvalidPrice) {
		http.Error(w, "Invalid product payload", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, h.Service.View(cart))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	token := cartToken(r)
	if token == "" {
		http.Error(w, "Missing cart token", http.StatusBadRequest)
		return
	}
	productID := getParam(r, "product_id")
	if productID == "" {
		http.Error(w, "Missing product ID", http.StatusBadRequest)
		return
	}

	var req models.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cart, err := h.Service.UpdateQuantity(r.Context(), token, productID, req.Quantity)
	if err != nil {
		http.Error(w, "Failed to update quantity", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, h.Service.View(cart))
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	token := cartToken(r)
	if token == "" {
		http.Error(w, "Missing cart token", http.StatusBadRequest)
		return
	}
	productID := getParam(r, "product_id")
	if productID == "" {
		http.Error(w, "Missing product ID", http.StatusBadRequest)
		return
	}

	cart, err := h.Service.RemoveFromCart(r.Context(), token, productID)
	if err != nil {
		http.Error(w, "Failed to remove from cart", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, h.Service.View(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	token := cartToken(r)
	if token == "" {
		http.Error(w, "Missing cart token", http.StatusBadRequest)
		return
	}

	if err := h.Service.ClearCart(r.Context(), token); err != nil {
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, h.Service.View(models.Cart{}))
}
