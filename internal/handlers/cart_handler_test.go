package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tiendaBack/internal/models"
	"tiendaBack/internal/services"
)

type stubCartStore struct {
	carts map[string]models.Cart
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: map[string]models.Cart{}}
}

func (s *stubCartStore) GetCart(_ context.Context, token string) (models.Cart, error) {
	cart := make(models.Cart, len(s.carts[token]))
	copy(cart, s.carts[token])
	return cart, nil
}

func (s *stubCartStore) SaveCart(_ context.Context, token string, cart models.Cart) error {
	s.carts[token] = cart
	return nil
}

func (s *stubCartStore) DeleteCart(_ context.Context, token string) error {
	delete(s.carts, token)
	return nil
}

func newTestCartHandler(store *stubCartStore) *CartHandler {
	return &CartHandler{Service: &services.CartService{CartRepo: store}}
}

// withCartToken mimics what the session middleware does.
func withCartToken(r *http.Request, token string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), "cart_token", token))
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) models.CartView {
	t.Helper()
	var view models.CartView
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("response does not decode as cart view: %v", err)
	}
	return view
}

func TestAddToCartHandler(t *testing.T) {
	store := newStubCartStore()
	h := newTestCartHandler(store)

	body := `{"product_id":"p-1","name":"Polo","price":"S/ 29.90","image":"/images/products/polo.jpg"}`
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)), "tok")
	rr := httptest.NewRecorder()

	h.AddToCart(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	view := decodeView(t, rr)
	if view.Count != 1 || len(view.Items) != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Items[0].PriceDisplay != "S/ 29.90" {
		t.Errorf("localized price not parsed: %+v", view.Items[0])
	}
	if len(store.carts["tok"]) != 1 {
		t.Errorf("cart not persisted: %#v", store.carts)
	}
}

func TestAddToCartHandlerRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"broken json", `{"product_id":`},
		{"garbage price text", `{"product_id":"p-1","name":"Polo","price":"precio"}`},
		{"missing name", `{"product_id":"p-1","price":10}`},
		{"negative price", `{"product_id":"p-1","name":"Polo","price":-5}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStubCartStore()
			h := newTestCartHandler(store)

			req := withCartToken(httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(tc.body)), "tok")
			rr := httptest.NewRecorder()

			h.AddToCart(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			if len(store.carts["tok"]) != 0 {
				t.Errorf("rejected payload reached the store: %#v", store.carts)
			}
		})
	}
}

func TestAddToCartHandlerMissingToken(t *testing.T) {
	h := newTestCartHandler(newStubCartStore())

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	h.AddToCart(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGetCartHandlerEmpty(t *testing.T) {
	h := newTestCartHandler(newStubCartStore())

	req := withCartToken(httptest.NewRequest(http.MethodGet, "/cart", nil), "tok")
	rr := httptest.NewRecorder()

	h.GetCart(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	view := decodeView(t, rr)
	if !view.Empty || view.Message != "Tu carrito está vacío" {
		t.Errorf("empty cart view = %+v", view)
	}
}

func TestUpdateQuantityHandler(t *testing.T) {
	store := newStubCartStore()
	store.carts["tok"] = models.Cart{{ProductID: "p-1", Name: "Polo", Price: 29.9, Quantity: 1}}
	h := newTestCartHandler(store)

	req := withCartToken(httptest.NewRequest(http.MethodPut, "/cart/items/p-1?:product_id=p-1", strings.NewReader(`{"quantity":3}`)), "tok")
	rr := httptest.NewRecorder()

	h.UpdateQuantity(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	view := decodeView(t, rr)
	if view.Count != 3 || view.Items[0].Quantity != 3 {
		t.Errorf("quantity not applied: %+v", view)
	}
}

func TestRemoveFromCartHandler(t *testing.T) {
	store := newStubCartStore()
	store.carts["tok"] = models.Cart{
		{ProductID: "p-1", Name: "Polo", Price: 29.9, Quantity: 2},
		{ProductID: "p-2", Name: "Gorra", Price: 15, Quantity: 1},
	}
	h := newTestCartHandler(store)

	req := withCartToken(httptest.NewRequest(http.MethodDelete, "/cart/items/p-1?:product_id=p-1", nil), "tok")
	rr := httptest.NewRecorder()

	h.RemoveFromCart(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	view := decodeView(t, rr)
	if len(view.Items) != 1 || view.Items[0].ProductID != "p-2" {
		t.Errorf("item not removed: %+v", view)
	}
}

func TestGetCartCountHandler(t *testing.T) {
	store := newStubCartStore()
	store.carts["tok"] = models.Cart{
		{ProductID: "p-1", Name: "Polo", Price: 29.9, Quantity: 2},
		{ProductID: "p-2", Name: "Gorra", Price: 15, Quantity: 1},
	}
	h := newTestCartHandler(store)

	req := withCartToken(httptest.NewRequest(http.MethodGet, "/cart/count", nil), "tok")
	rr := httptest.NewRecorder()

	h.GetCartCount(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("response does not decode: %v", err)
	}
	if resp["count"] != 3 {
		t.Errorf("count = %d, want 3", resp["count"])
	}
}

func TestClearCartHandler(t *testing.T) {
	store := newStubCartStore()
	store.carts["tok"] = models.Cart{{ProductID: "p-1", Name: "Polo", Price: 29.9, Quantity: 2}}
	h := newTestCartHandler(store)

	req := withCartToken(httptest.NewRequest(http.MethodDelete, "/cart", nil), "tok")
	rr := httptest.NewRecorder()

	h.ClearCart(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if len(store.carts["tok"]) != 0 {
		t.Errorf("cart not cleared: %#v", store.carts)
	}
	view := decodeView(t, rr)
	if !view.Empty {
		t.Errorf("cleared cart view not empty: %+v", view)
	}
}
