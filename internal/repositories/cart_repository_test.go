package repositories

import (
	"testing"

	"tiendaBack/internal/models"
)

func TestEncodeDecodeCartRoundTrip(t *testing.T) {
	cart := models.Cart{
		{ProductID: "p-1", Name: "Polo Clásico", Price: 29.9, Image: "/images/products/polo.jpg", Quantity: 2},
		{ProductID: "p-2", Name: "Gorra", Price: 15, Quantity: 1},
	}

	raw, err := encodeCart(cart)
	if err != nil {
		t.Fatalf("encodeCart returned error: %v", err)
	}

	got := decodeCart("tok", raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 items after round trip, got %d", len(got))
	}
	if got[0].ProductID != "p-1" || got[1].ProductID != "p-2" {
		t.Errorf("item order not preserved: %#v", got)
	}
	if got[0].Quantity != 2 || got[0].Price != 29.9 || got[0].Name != "Polo Clásico" {
		t.Errorf("first item fields not preserved: %#v", got[0])
	}
}

func TestEncodeCartNilBecomesEmptyArray(t *testing.T) {
	raw, err := encodeCart(nil)
	if err != nil {
		t.Fatalf("encodeCart returned error: %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("encodeCart(nil) = %s, want []", raw)
	}
}

func TestDecodeCartCorruptPayload(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"items":`, `123`} {
		cart := decodeCart("tok", []byte(raw))
		if len(cart) != 0 {
			t.Errorf("decodeCart(%q) = %#v, want empty cart", raw, cart)
		}
	}
}
