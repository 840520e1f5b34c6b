package router

import (
	"net/http"

	"storefront/api"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router. Every endpoint is registered from the shared
// route table, so the server serves exactly the paths the client builds.
func New(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	demoUserID int64,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Identity(demoUserID, logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mount(r, api.AuthLogin, authHandler.Login)
	mount(r, api.AuthRegister, authHandler.Register)
	mount(r, api.AuthMe, authHandler.Me)

	mount(r, api.ProductsList, productHandler.List)
	mount(r, api.ProductsGet, productHandler.Get)

	mount(r, api.CartList, cartHandler.List)
	mount(r, api.CartAdd, cartHandler.Add)
	mount(r, api.CartUpdate, cartHandler.Update)
	mount(r, api.CartDelete, cartHandler.Delete)

	mount(r, api.OrdersList, orderHandler.List)
	mount(r, api.OrdersGet, orderHandler.Get)
	mount(r, api.OrdersCreate, orderHandler.Create)

	return r
}

func mount(r chi.Router, route api.Route, fn http.HandlerFunc) {
	r.MethodFunc(route.Method, route.Pattern(), fn)
}
