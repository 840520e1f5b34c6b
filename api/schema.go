// Package api is the shared contract layer: entity schema, request and
// response payloads, the route table and the error taxonomy. Both the server
// handlers and the typed client are built against this package, so a response
// that does not match these shapes is a bug, not something to coerce.
package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. Only StatusPending is set by current checkout logic;
// the remaining values exist for the persisted status column.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

// Product categories.
const (
	CategoryShoes    = "shoes"
	CategoryMensWear = "mens-wear"
)

// User is a registered shopper. The password is never serialised.
type User struct {
	ID       int64           `json:"id"`
	Email    string          `json:"email"`
	Password string          `json:"-"`
	Name     string          `json:"name"`
	Address  json.RawMessage `json:"address,omitempty"`
}

// InsertUser is the client-supplied shape for creating a user; the id is
// server-assigned.
type InsertUser struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Name     string          `json:"name"`
	Address  json.RawMessage `json:"address,omitempty"`
}

// Product is a catalogue entry. Price is an exact decimal and is carried as a
// quoted decimal string on the wire.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Color       string          `json:"color"`
	Sizes       []string        `json:"sizes"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// InsertProduct omits the server-assigned id and createdAt.
type InsertProduct struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Color       string          `json:"color"`
	Sizes       []string        `json:"sizes"`
	Featured    bool            `json:"featured"`
}

// CartItem is an unpurchased intent to buy: (user, product, size, quantity).
type CartItem struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	ProductID int64  `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// InsertCartItem omits the server-assigned id.
type InsertCartItem struct {
	UserID    int64  `json:"userId"`
	ProductID int64  `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// CartItemWithProduct is the composed read-side view of a cart row joined to
// its product. It is computed on every read, never persisted.
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}

// Order is an immutable snapshot of a cart at the moment of purchase.
// TotalAmount is frozen at creation and never recomputed.
type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	ShippingAddress json.RawMessage `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// InsertOrder omits the server-assigned id and createdAt.
type InsertOrder struct {
	UserID          int64           `json:"userId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	ShippingAddress json.RawMessage `json:"shippingAddress"`
}

// OrderItem is a frozen order line. Price is copied from the product at order
// time so later price edits never alter historical orders.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	ProductID int64           `json:"productId"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// InsertOrderItem omits the server-assigned id; the order id is assigned by
// storage when the parent order is created.
type InsertOrderItem struct {
	ProductID int64           `json:"productId"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderItemWithProduct joins an order line to its product.
type OrderItemWithProduct struct {
	OrderItem
	Product Product `json:"product"`
}

// OrderWithItems is the composed read-side view of an order.
type OrderWithItems struct {
	Order
	Items []OrderItemWithProduct `json:"items"`
}

// ProductFilter narrows a product listing. Zero values mean "no constraint".
// Category and Brand are exact case-sensitive matches; Search is a
// case-insensitive substring match on the product name.
type ProductFilter struct {
	Category string
	Brand    string
	Search   string
}

// LoginRequest is the input for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the input for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
}

// AuthResponse is returned by login and register. The token is the
// stringified user id (mock scheme, see middleware).
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// AddCartItemRequest is the input for POST /api/cart. A zero quantity
// defaults to 1 before validation.
type AddCartItemRequest struct {
	ProductID int64  `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateCartItemRequest is the input for PUT /api/cart/:id.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest is the input for POST /api/orders. The shipping address
// is an opaque JSON blob.
type CreateOrderRequest struct {
	ShippingAddress json.RawMessage `json:"shippingAddress" validate:"required"`
}
