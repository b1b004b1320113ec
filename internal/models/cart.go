package models

import (
	"encoding/json"

	"tiendaBack/internal/money"
)

// CartItem is one line of a shopper's cart. Identity is ProductID: the cart
// never holds two entries for the same product, the quantity grows instead.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Cart is the ordered item list for one cart token, oldest first. It is
// persisted wholesale as a single JSON array.
type Cart []CartItem

// PriceValue accepts a price both as a JSON number and as the localized text
// shown on a product card ("S/ 1,250.00").
type PriceValue float64

func (p *PriceValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := money.Parse(s)
		if err != nil {
			return err
		}
		*p = PriceValue(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = PriceValue(v)
	return nil
}

// AddToCartRequest carries the product fields the listing page read off a
// card when its buy button was pressed.
type AddToCartRequest struct {
	ProductID string     `json:"product_id"`
	Name      string     `json:"name"`
	Price     PriceValue `json:"price"`
	Image     string     `json:"image"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartRow is one rendered line of the cart table.
type CartRow struct {
	ProductID       string  `json:"product_id"`
	Name            string  `json:"name"`
	Image           string  `json:"image"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	PriceDisplay    string  `json:"price_display"`
	Subtotal        float64 `json:"subtotal"`
	SubtotalDisplay string  `json:"subtotal_display"`
}

// CartView is everything the cart page needs to draw itself: the table rows,
// the grand total and the badge count.
type CartView struct {
	Items        []CartRow `json:"items"`
	Count        int       `json:"count"`
	Total        float64   `json:"total"`
	TotalDisplay string    `json:"total_display"`
	Empty        bool      `json:"empty"`
	Message      string    `json:"message,omitempty"`
}

// CheckoutResponse hands the browser the prepared WhatsApp link. The message
// is included as plain text so the confirmation screen can show it.
type CheckoutResponse struct {
	URL       string `json:"url"`
	Message   string `json:"message"`
	Reference string `json:"reference"`
}
