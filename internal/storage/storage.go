// Package storage is the only component that mutates persisted state. It
// exposes one Storage interface with two interchangeable implementations,
// in-memory and Postgres, selected by configuration at startup. Both must
// satisfy the same behavioral contract; reads that miss return (nil, nil)
// and callers translate that to a domain error.
package storage

import (
	"context"

	"storefront/api"
)

// Storage is the capability set over the five persisted entities.
//
// Composed reads (GetCartItems, GetOrders, GetOrder, CreateOrder) join each
// child row to its product by a second lookup; rows whose referenced product
// is missing are silently dropped, never surfaced as an error.
//
// CreateOrder is the one multi-step write: it inserts the order row, inserts
// all item rows tagged with the new order id, and clears the owner's cart,
// all atomically. No reader can observe an order with zero items or an
// emptied cart without its order.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id int64) (*api.User, error)
	GetUserByEmail(ctx context.Context, email string) (*api.User, error)
	CreateUser(ctx context.Context, user *api.InsertUser) (*api.User, error)

	// Products
	GetProducts(ctx context.Context, filter api.ProductFilter) ([]api.Product, error)
	GetProduct(ctx context.Context, id int64) (*api.Product, error)
	CreateProduct(ctx context.Context, product *api.InsertProduct) (*api.Product, error)

	// Cart
	GetCartItems(ctx context.Context, userID int64) ([]api.CartItemWithProduct, error)
	AddCartItem(ctx context.Context, item *api.InsertCartItem) (*api.CartItemWithProduct, error)
	UpdateCartItem(ctx context.Context, id int64, quantity int) (*api.CartItemWithProduct, error)
	// DeleteCartItem reports whether a row was deleted.
	DeleteCartItem(ctx context.Context, id int64) (bool, error)

	// Orders
	GetOrders(ctx context.Context, userID int64) ([]api.OrderWithItems, error)
	GetOrder(ctx context.Context, id int64) (*api.OrderWithItems, error)
	CreateOrder(ctx context.Context, order *api.InsertOrder, items []api.InsertOrderItem) (*api.OrderWithItems, error)

	// Close releases any underlying resources.
	Close()
}
