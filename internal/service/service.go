package service

import (
	"context"

	"storefront/api"
)

// AuthService defines registration, login and caller lookup.
type AuthService interface {
	// Register creates a new user and returns it with a fresh token.
	Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error)

	// Login verifies credentials and returns the user with a token.
	Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error)

	// Me returns the user for the resolved caller identity.
	Me(ctx context.Context, userID int64) (*api.User, error)
}

// ProductService defines catalogue reads.
type ProductService interface {
	// List retrieves products narrowed by the filter.
	List(ctx context.Context, filter api.ProductFilter) ([]api.Product, error)

	// Get retrieves a single product.
	Get(ctx context.Context, id int64) (*api.Product, error)

	// Create inserts a product. Administrative; used by the seed routine.
	Create(ctx context.Context, product *api.InsertProduct) (*api.Product, error)
}

// CartService defines cart operations for a resolved caller.
type CartService interface {
	// List retrieves the caller's composed cart rows.
	List(ctx context.Context, userID int64) ([]api.CartItemWithProduct, error)

	// Add puts a product into the caller's cart.
	Add(ctx context.Context, userID int64, req *api.AddCartItemRequest) (*api.CartItemWithProduct, error)

	// Update sets the quantity of a cart row.
	Update(ctx context.Context, id int64, req *api.UpdateCartItemRequest) (*api.CartItemWithProduct, error)

	// Delete removes a cart row.
	Delete(ctx context.Context, id int64) error
}

// OrderService defines order history and checkout.
type OrderService interface {
	// List retrieves the caller's composed orders.
	List(ctx context.Context, userID int64) ([]api.OrderWithItems, error)

	// Get retrieves one order; callers may only fetch their own.
	Get(ctx context.Context, userID, id int64) (*api.OrderWithItems, error)

	// Create places an order from the caller's cart and clears it.
	Create(ctx context.Context, userID int64, req *api.CreateOrderRequest) (*api.OrderWithItems, error)
}
