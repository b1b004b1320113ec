package main

import (
	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"net/http"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	cartMiddleware := standardMiddleware.Append(app.cartSession)

	mux := pat.New()

	// Products
	mux.Post("/products", standardMiddleware.ThenFunc(app.productHandler.CreateProduct))
	mux.Get("/products", standardMiddleware.ThenFunc(app.productHandler.GetProducts))
	mux.Get("/products/:id", standardMiddleware.ThenFunc(app.productHandler.GetProductByID))
	mux.Put("/products/:id", standardMiddleware.ThenFunc(app.productHandler.UpdateProduct))
	mux.Del("/products/:id", standardMiddleware.ThenFunc(app.productHandler.DeleteProduct))
	mux.Get("/images/products/:filename", http.HandlerFunc(app.productHandler.ServeProductImage))

	// Cart
	mux.Get("/cart/count", cartMiddleware.ThenFunc(app.cartHandler.GetCartCount))
	mux.Get("/cart", cartMiddleware.ThenFunc(app.cartHandler.GetCart))
	mux.Post("/cart/items", cartMiddleware.ThenFunc(app.cartHandler.AddToCart))
	mux.Put("/cart/items/:product_id", cartMiddleware.ThenFunc(app.cartHandler.UpdateQuantity))
	mux.Del("/cart/items/:product_id", cartMiddleware.ThenFunc(app.cartHandler.RemoveFromCart))
	mux.Del("/cart", cartMiddleware.ThenFunc(app.cartHandler.ClearCart))

	// Checkout
	mux.Post("/checkout", cartMiddleware.ThenFunc(app.checkoutHandler.Checkout))

	// Cart badge
	mux.Get("/ws/cart", standardMiddleware.ThenFunc(app.cartHub.ServeWS))

	return mux
}
