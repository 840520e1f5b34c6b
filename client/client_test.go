package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/http/httputil"
	"net/url"
	"sync/atomic"
	"testing"

	"storefront/api"
	"storefront/internal/handler"
	"storefront/internal/router"
	"storefront/internal/seed"
	"storefront/internal/service"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires a full server on the in-memory store, seeded with the
// demo catalogue.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()
	store := storage.NewMemoryStorage(logger)
	require.NoError(t, seed.Run(context.Background(), store, logger))

	authService := service.NewAuthService(store, logger)
	productService := service.NewProductService(store, logger)
	cartService := service.NewCartService(store, logger)
	orderService := service.NewOrderService(store, logger)

	h := router.New(
		handler.NewAuthHandler(authService, logger),
		handler.NewProductHandler(productService, logger),
		handler.NewCartHandler(cartService, logger),
		handler.NewOrderHandler(orderService, logger),
		0,
		logger,
	)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_CheckoutFlow(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	c := New(srv.URL)

	resp, err := c.Login(ctx, seed.DemoEmail, seed.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, seed.DemoEmail, resp.User.Email)
	assert.NotEmpty(t, c.Token())

	products, err := c.Products(ctx, api.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 5)

	// Two sneakers at 159.99 and one shirt at 65.00.
	_, err = c.AddToCart(ctx, api.AddCartItemRequest{ProductID: products[0].ID, Size: "9", Quantity: 2})
	require.NoError(t, err)
	_, err = c.AddToCart(ctx, api.AddCartItemRequest{ProductID: products[3].ID, Size: "M"})
	require.NoError(t, err)

	cart, err := c.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 2)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, 1, cart[1].Quantity, "omitted quantity defaults to 1")

	order, err := c.Checkout(ctx, json.RawMessage(`{"city":"San Francisco"}`))
	require.NoError(t, err)
	assert.Equal(t, api.StatusPending, order.Status)
	require.Len(t, order.Items, 2)

	// 159.99*2 + 65.00 = 384.98, exact decimal arithmetic.
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("384.98")),
		"got total %s", order.TotalAmount)

	cart, err = c.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart, "checkout clears the cart")

	orders, err := c.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	fetched, err := c.Order(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, fetched.TotalAmount.Equal(order.TotalAmount))
}

func TestClient_OwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)

	buyer := New(srv.URL)
	_, err := buyer.Login(ctx, seed.DemoEmail, seed.DemoPassword)
	require.NoError(t, err)

	products, err := buyer.Products(ctx, api.ProductFilter{})
	require.NoError(t, err)
	_, err = buyer.AddToCart(ctx, api.AddCartItemRequest{ProductID: products[0].ID, Size: "9"})
	require.NoError(t, err)
	order, err := buyer.Checkout(ctx, json.RawMessage(`{}`))
	require.NoError(t, err)

	other := New(srv.URL)
	_, err = other.Register(ctx, "other@example.com", "password123", "Other User")
	require.NoError(t, err)

	_, err = other.Order(ctx, order.ID)
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClient_ErrorDecoding(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	c := New(srv.URL)

	t.Run("Validation error carries message and field", func(t *testing.T) {
		_, err := c.Register(ctx, "not-an-email", "password123", "New User")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "email", apiErr.Field)
	})

	t.Run("Bad credentials", func(t *testing.T) {
		_, err := c.Login(ctx, seed.DemoEmail, "wrong")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "Invalid credentials", apiErr.Message)
	})

	t.Run("Unauthenticated cart access", func(t *testing.T) {
		anon := New(srv.URL)
		_, err := anon.Cart(ctx)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	})
}

func TestClient_Caching(t *testing.T) {
	ctx := context.Background()

	upstream := newTestServer(t)
	target, err := url.Parse(upstream.URL)
	require.NoError(t, err)

	// A counting proxy in front of the real server observes which GETs
	// reach the network versus the client's cache.
	var hits atomic.Int64
	proxy := httputil.NewSingleHostReverseProxy(target)
	counting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			hits.Add(1)
		}
		proxy.ServeHTTP(w, r)
	}))
	t.Cleanup(counting.Close)

	c := New(counting.URL)
	_, err = c.Login(ctx, seed.DemoEmail, seed.DemoPassword)
	require.NoError(t, err)

	t.Run("Repeated GET served from cache", func(t *testing.T) {
		before := hits.Load()
		_, err := c.Products(ctx, api.ProductFilter{})
		require.NoError(t, err)
		_, err = c.Products(ctx, api.ProductFilter{})
		require.NoError(t, err)
		assert.Equal(t, before+1, hits.Load())
	})

	t.Run("Distinct queries cached separately", func(t *testing.T) {
		before := hits.Load()
		_, err := c.Products(ctx, api.ProductFilter{Category: api.CategoryShoes})
		require.NoError(t, err)
		_, err = c.Products(ctx, api.ProductFilter{Category: api.CategoryMensWear})
		require.NoError(t, err)
		assert.Equal(t, before+2, hits.Load())
	})

	t.Run("Cart mutation invalidates the cart listing only", func(t *testing.T) {
		products, err := c.Products(ctx, api.ProductFilter{})
		require.NoError(t, err)

		_, err = c.Cart(ctx)
		require.NoError(t, err)

		productHits := hits.Load()
		_, err = c.AddToCart(ctx, api.AddCartItemRequest{ProductID: products[0].ID, Size: "9"})
		require.NoError(t, err)

		cart, err := c.Cart(ctx)
		require.NoError(t, err)
		require.Len(t, cart, 1)
		assert.Equal(t, productHits+1, hits.Load(), "cart refetched")

		_, err = c.Products(ctx, api.ProductFilter{})
		require.NoError(t, err)
		assert.Equal(t, productHits+1, hits.Load(), "product listing still cached")
	})

	t.Run("Checkout invalidates cart and orders", func(t *testing.T) {
		_, err := c.Orders(ctx)
		require.NoError(t, err)

		_, err = c.Checkout(ctx, json.RawMessage(`{}`))
		require.NoError(t, err)

		before := hits.Load()
		orders, err := c.Orders(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 1)

		cart, err := c.Cart(ctx)
		require.NoError(t, err)
		assert.Empty(t, cart)
		assert.Equal(t, before+2, hits.Load(), "both listings refetched")
	})

	t.Run("Logout drops the cache", func(t *testing.T) {
		_, err := c.Products(ctx, api.ProductFilter{})
		require.NoError(t, err)

		c.Logout()
		assert.Empty(t, c.Token())

		before := hits.Load()
		_, err = c.Products(ctx, api.ProductFilter{})
		require.NoError(t, err)
		assert.Equal(t, before+1, hits.Load())
	})
}
