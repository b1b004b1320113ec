package models

import (
	"encoding/json"
	"testing"
)

func TestPriceValueUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"number", `{"price": 29.9}`, 29.9},
		{"plain string", `{"price": "29.90"}`, 29.9},
		{"localized string", `{"price": "S/ 1,250.00"}`, 1250},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req AddToCartRequest
			if err := json.Unmarshal([]byte(tc.in), &req); err != nil {
				t.Fatalf("unmarshal returned error: %v", err)
			}
			if float64(req.Price) != tc.want {
				t.Errorf("price = %v, want %v", float64(req.Price), tc.want)
			}
		})
	}
}

func TestPriceValueUnmarshalRejectsGarbage(t *testing.T) {
	for _, in := range []string{`{"price": "precio"}`, `{"price": "NaN"}`, `{"price": true}`} {
		var req AddToCartRequest
		if err := json.Unmarshal([]byte(in), &req); err == nil {
			t.Errorf("unmarshal(%s) succeeded, want error", in)
		}
	}
}
