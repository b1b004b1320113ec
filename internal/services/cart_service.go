package services

import (
	"context"
	"math"
	"strings"

	"tiendaBack/internal/models"
	"tiendaBack/internal/money"
)

// EmptyCartMessage is shown wherever the shopper meets an empty cart: in the
// cart view placeholder and as the checkout refusal.
const EmptyCartMessage = "Tu carrito está vacío"

// CartStore is the persistence the cart service needs.
type CartStore interface {
	GetCart(ctx context.Context, token string) (models.Cart, error)
	SaveCart(ctx context.Context, token string, cart models.Cart) error
	DeleteCart(ctx context.Context, token string) error
}

// CartNotifier is woken after every persisted mutation so live badge
// subscribers see the new count without polling.
type CartNotifier interface {
	CartChanged(token string, count int)
}

type CartService struct {
	CartRepo CartStore
	Notifier CartNotifier
}

func (s *CartService) GetCart(ctx context.Context, token string) (models.Cart, error) {
	return s.CartRepo.GetCart(ctx, token)
}

// AddToCart puts one unit of a product into the cart. A product already in
// the cart gets its quantity bumped, a new one is appended at the end. The
// payload is untrusted page data, so it is validated before anything is
// written.
func (s *CartService) AddToCart(ctx context.Context, token string, req models.AddToCartRequest) (models.Cart, error) {
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" || strings.TrimSpace(req.Name) == "" {
		return nil, models.ErrInvalidProduct
	}
	price := float64(req.Price)
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, models.ErrInvalidPrice
	}

	cart, err := s.CartRepo.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, models.CartItem{
			ProductID: productID,
			Name:      strings.TrimSpace(req.Name),
			Price:     money.Round2(price),
			Image:     req.Image,
			Quantity:  1,
		})
	}

	if err := s.saveCart(ctx, token, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the absolute quantity for a product. Zero or less
// removes the item. An unknown product id changes nothing and nothing is
// rewritten.
func (s *CartService) UpdateQuantity(ctx context.Context, token, productID string, quantity int) (models.Cart, error) {
	cart, err := s.CartRepo.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart {
		if cart[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return cart, nil
	}

	if quantity > 0 {
		cart[idx].Quantity = quantity
	} else {
		cart = append(cart[:idx], cart[idx+1:]...)
	}

	if err := s.saveCart(ctx, token, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveFromCart drops every entry with the given product id. The cart is
// rewritten even when nothing matched.
func (s *CartService) RemoveFromCart(ctx context.Context, token, productID string) (models.Cart, error) {
	cart, err := s.CartRepo.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}

	kept := make(models.Cart, 0, len(cart))
	for _, item := range cart {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := s.saveCart(ctx, token, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// ClearCart drops the stored cart entirely.
func (s *CartService) ClearCart(ctx context.Context, token string) error {
	if err := s.CartRepo.DeleteCart(ctx, token); err != nil {
		return err
	}
	if s.Notifier != nil {
		s.Notifier.CartChanged(token, 0)
	}
	return nil
}

// saveCart is the only write path. Every mutation persists the whole cart and
// then wakes the badge subscribers, so storage and UI never drift apart.
func (s *CartService) saveCart(ctx context.Context, token string, cart models.Cart) error {
	if err := s.CartRepo.SaveCart(ctx, token, cart); err != nil {
		return err
	}
	if s.Notifier != nil {
		s.Notifier.CartChanged(token, CartCount(cart))
	}
	return nil
}

// CartCount is the badge number: total units across all items.
func CartCount(cart models.Cart) int {
	count := 0
	for _, item := range cart {
		count += item.Quantity
	}
	return count
}

// CartTotal is the order sum, rounded to whole cents.
func CartTotal(cart models.Cart) float64 {
	var total float64
	for _, item := range cart {
		total += item.Price * float64(item.Quantity)
	}
	return money.Round2(total)
}

// View projects a cart into what the cart page draws: one row per item with
// formatted amounts, the grand total and the badge count.
func (s *CartService) View(cart models.Cart) models.CartView {
	view := models.CartView{
		Items: []models.CartRow{},
		Count: CartCount(cart),
		Total: CartTotal(cart),
	}
	view.TotalDisplay = money.Format(view.Total)

	if len(cart) == 0 {
		view.Empty = true
		view.Message = EmptyCartMessage
		return view
	}

	for _, item := range cart {
		subtotal := money.Round2(item.Price * float64(item.Quantity))
		view.Items = append(view.Items, models.CartRow{
			ProductID:       item.ProductID,
			Name:            item.Name,
			Image:           item.Image,
			Quantity:        item.Quantity,
			Price:           item.Price,
			PriceDisplay:    money.Format(item.Price),
			Subtotal:        subtotal,
			SubtotalDisplay: money.Format(subtotal),
		})
	}
	return view
}
