package router

import (
	"net/http"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/handlers"
	"marketplace/internal/middleware"
	"marketplace/internal/services"
	"marketplace/internal/store"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const requestTimeout = 10 * time.Second

func New(cfg config.Config, stores store.Stores, logger zerolog.Logger) *mux.Router {
	authService := services.NewAuthService(cfg, logger)
	vendorService := services.NewVendorService(stores.Vendors, logger)
	productService := services.NewProductService(stores.Products, logger)
	orderService := services.NewOrderService(stores.Orders, logger)

	vendorHandler := handlers.NewVendorHandler(vendorService, authService, logger)
	productHandler := handlers.NewProductHandler(productService, logger)
	orderHandler := handlers.NewOrderHandler(orderService, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(rateLimiter.Middleware())
	r.Use(middleware.Timeout(requestTimeout))

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequestValidation())

	vendors := api.PathPrefix("/vendors").Subrouter()
	vendors.HandleFunc("/register", vendorHandler.Register).Methods("POST")
	vendors.HandleFunc("/login", vendorHandler.Login).Methods("POST")

	products := api.PathPrefix("/products").Subrouter()
	products.Use(middleware.Authentication(authService, stores.Vendors, logger))
	products.HandleFunc("", productHandler.Create).Methods("POST")
	products.HandleFunc("", productHandler.List).Methods("GET")
	products.HandleFunc("/{id}", productHandler.Update).Methods("PUT")
	products.HandleFunc("/{id}", productHandler.Delete).Methods("DELETE")

	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(middleware.Authentication(authService, stores.Vendors, logger))
	orders.HandleFunc("", orderHandler.List).Methods("GET")
	orders.HandleFunc("/{id}", orderHandler.Ship).Methods("PUT")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
