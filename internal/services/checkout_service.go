package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/exp/rand"

	"tiendaBack/internal/models"
	"tiendaBack/internal/money"
)

const checkoutGreeting = "¡Hola! Quiero hacer este pedido:"

// CheckoutService turns a cart into the WhatsApp order handoff. Nothing is
// stored server-side, the reference only helps the shop match the chat to a
// cart.
type CheckoutService struct {
	Cart           *CartService
	WhatsAppNumber string
}

// Checkout builds the order message and the wa.me link for the current cart.
// The cart is left untouched, the shopper may still edit it until the shop
// confirms the order in chat.
func (s *CheckoutService) Checkout(ctx context.Context, token string) (models.CheckoutResponse, error) {
	cart, err := s.Cart.GetCart(ctx, token)
	if err != nil {
		return models.CheckoutResponse{}, err
	}
	if len(cart) == 0 {
		return models.CheckoutResponse{}, models.ErrCartEmpty
	}

	ref, err := orderReference()
	if err != nil {
		return models.CheckoutResponse{}, err
	}

	msg := BuildOrderMessage(cart, ref)
	return models.CheckoutResponse{
		URL:       WhatsAppURL(s.WhatsAppNumber, msg),
		Message:   msg,
		Reference: ref,
	}, nil
}

// BuildOrderMessage renders the plain-text summary the shop receives: one
// line per item with its subtotal, then the grand total. Amounts go through
// the same rounding and formatting as the cart view, so the message never
// disagrees with what the shopper saw.
func BuildOrderMessage(cart models.Cart, reference string) string {
	var b strings.Builder
	b.WriteString(checkoutGreeting)
	b.WriteString("\n\n")
	for _, item := range cart {
		subtotal := money.Round2(item.Price * float64(item.Quantity))
		fmt.Fprintf(&b, "• %s x%d - %s\n", item.Name, item.Quantity, money.Format(subtotal))
	}
	fmt.Fprintf(&b, "\nTotal: %s", money.Format(CartTotal(cart)))
	if reference != "" {
		fmt.Fprintf(&b, "\n\nPedido #%s", reference)
	}
	return b.String()
}

// WhatsAppURL wraps the message into a wa.me chat link.
func WhatsAppURL(number, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message))
}

func orderReference() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", b), nil
}
