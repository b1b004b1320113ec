package main

import (
	"database/sql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"log"
	"net/http"
	"tiendaBack/internal/config"
	"tiendaBack/internal/handlers"
	"tiendaBack/internal/repositories"
	"tiendaBack/internal/services"
	"tiendaBack/internal/ws"
	"time"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	rdb      *redis.Client
	cartTTL  time.Duration

	cartHandler     *handlers.CartHandler
	checkoutHandler *handlers.CheckoutHandler
	productHandler  *handlers.ProductHandler
	productService  *services.ProductService
	cartHub         *ws.CartHub
}

func initializeApp(db *sql.DB, rdb *redis.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	cartTTL := time.Duration(cfg.Cart.TTLDays) * 24 * time.Hour

	// Repositories
	cartRepo := repositories.CartRepository{RDB: rdb, TTL: cartTTL}
	productRepo := repositories.ProductRepository{DB: db, Driver: cfg.Database.Driver}

	// Hub before the cart service: mutations push badge counts through it
	cartHub := ws.NewCartHub()

	// Services
	cartService := &services.CartService{CartRepo: &cartRepo, Notifier: cartHub}
	checkoutService := &services.CheckoutService{Cart: cartService, WhatsAppNumber: cfg.Checkout.WhatsAppNumber}
	productService := &services.ProductService{ProductRepo: &productRepo}

	// Handlers
	cartHandler := &handlers.CartHandler{Service: cartService}
	checkoutHandler := &handlers.CheckoutHandler{Service: checkoutService}
	productHandler := &handlers.ProductHandler{Service: productService}

	return &application{
		errorLog:        errorLog,
		infoLog:         infoLog,
		db:              db,
		rdb:             rdb,
		cartTTL:         cartTTL,
		cartHandler:     cartHandler,
		checkoutHandler: checkoutHandler,
		productHandler:  productHandler,
		productService:  productService,
		cartHub:         cartHub,
	}
}

func openDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
		// images are embedded by the storefront origin
		w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
		next.ServeHTTP(w, r)
	})
}
