// Package client is a typed HTTP client for the storefront API. It builds
// URLs from the shared route table, validates response statuses against the
// contract, and keeps a small cache of GET responses keyed by path+query
// that is invalidated explicitly after mutations — the same invalidation map
// the web client uses (cart mutations drop the cart listing, checkout drops
// both the cart and the order history).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"storefront/api"
)

// APIError is a non-contract response: the status and the decoded
// {message, field?} body when one was present.
type APIError struct {
	Status  int
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Client talks to one storefront server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	token string
	cache map[string][]byte
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token up front, e.g. one persisted from an
// earlier session.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		cache:      make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current bearer token, empty when logged out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Logout clears the token and every cached response.
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.cache = make(map[string][]byte)
}

// setToken swaps the identity and drops the cache, which is keyed per
// identity-dependent listing.
func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.cache = make(map[string][]byte)
}

// invalidate drops every cached GET whose path starts with one of the
// prefixes.
func (c *Client) invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.cache {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				delete(c.cache, key)
				break
			}
		}
	}
}

// do performs one round trip and decodes the response into out when the
// status matches the contract's success status.
func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody api.ErrorResponse
		if json.Unmarshal(raw, &errBody) == nil {
			apiErr.Message = errBody.Message
			apiErr.Field = errBody.Field
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("response does not match contract: %w", err)
		}
	}
	return nil
}

// getCached serves a GET from the cache or performs it and stores the body.
func (c *Client) getCached(ctx context.Context, path string, out any) error {
	c.mu.Lock()
	raw, ok := c.cache[path]
	c.mu.Unlock()
	if ok {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("cached response does not match contract: %w", err)
		}
		return nil
	}

	var buf json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &buf); err != nil {
		return err
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return fmt.Errorf("response does not match contract: %w", err)
	}

	c.mu.Lock()
	c.cache[path] = buf
	c.mu.Unlock()
	return nil
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	req := api.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, api.AuthLogin.Method, api.AuthLogin.Path, &req, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return &resp, nil
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, email, password, name string) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	req := api.RegisterRequest{Email: email, Password: password, Name: name}
	if err := c.do(ctx, api.AuthRegister.Method, api.AuthRegister.Path, &req, http.StatusCreated, &resp); err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return &resp, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*api.User, error) {
	var user api.User
	if err := c.getCached(ctx, api.AuthMe.Path, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Products lists the catalogue narrowed by the filter.
func (c *Client) Products(ctx context.Context, filter api.ProductFilter) ([]api.Product, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Brand != "" {
		query.Set("brand", filter.Brand)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	path := api.ProductsList.Path
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var products []api.Product
	if err := c.getCached(ctx, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches one product.
func (c *Client) Product(ctx context.Context, id int64) (*api.Product, error) {
	var product api.Product
	if err := c.getCached(ctx, api.ProductsGet.BuildID(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Cart lists the caller's cart.
func (c *Client) Cart(ctx context.Context) ([]api.CartItemWithProduct, error) {
	var items []api.CartItemWithProduct
	if err := c.getCached(ctx, api.CartList.Path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart puts a product into the cart and invalidates the cart listing.
func (c *Client) AddToCart(ctx context.Context, req api.AddCartItemRequest) (*api.CartItemWithProduct, error) {
	var item api.CartItemWithProduct
	if err := c.do(ctx, api.CartAdd.Method, api.CartAdd.Path, &req, http.StatusCreated, &item); err != nil {
		return nil, err
	}
	c.invalidate(api.CartList.Path)
	return &item, nil
}

// UpdateCartItem changes a cart row's quantity and invalidates the cart
// listing.
func (c *Client) UpdateCartItem(ctx context.Context, id int64, quantity int) (*api.CartItemWithProduct, error) {
	var item api.CartItemWithProduct
	req := api.UpdateCartItemRequest{Quantity: quantity}
	if err := c.do(ctx, api.CartUpdate.Method, api.CartUpdate.BuildID(id), &req, http.StatusOK, &item); err != nil {
		return nil, err
	}
	c.invalidate(api.CartList.Path)
	return &item, nil
}

// RemoveCartItem deletes a cart row and invalidates the cart listing.
func (c *Client) RemoveCartItem(ctx context.Context, id int64) error {
	if err := c.do(ctx, api.CartDelete.Method, api.CartDelete.BuildID(id), nil, http.StatusNoContent, nil); err != nil {
		return err
	}
	c.invalidate(api.CartList.Path)
	return nil
}

// Orders lists the caller's order history.
func (c *Client) Orders(ctx context.Context) ([]api.OrderWithItems, error) {
	var orders []api.OrderWithItems
	if err := c.getCached(ctx, api.OrdersList.Path, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches one order.
func (c *Client) Order(ctx context.Context, id int64) (*api.OrderWithItems, error) {
	var order api.OrderWithItems
	if err := c.getCached(ctx, api.OrdersGet.BuildID(id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Checkout places an order from the current cart and invalidates both the
// cart and order listings.
func (c *Client) Checkout(ctx context.Context, shippingAddress json.RawMessage) (*api.OrderWithItems, error) {
	var order api.OrderWithItems
	req := api.CreateOrderRequest{ShippingAddress: shippingAddress}
	if err := c.do(ctx, api.OrdersCreate.Method, api.OrdersCreate.Path, &req, http.StatusCreated, &order); err != nil {
		return nil, err
	}
	c.invalidate(api.CartList.Path, api.OrdersList.Path)
	return &order, nil
}
