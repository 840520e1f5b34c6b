package storage

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"storefront/api"

	"github.com/rs/zerolog"
)

// MemoryStorage is the in-memory Storage implementation: per-entity maps
// keyed by a monotonically increasing id counter. Listing order is insertion
// order (ascending id). A single mutex guards every operation, so the
// multi-step CreateOrder is atomic with respect to concurrent readers.
//
// Unlike the Postgres backend there are no foreign-key constraints, so
// referential integrity for cart items and orders is checked explicitly.
type MemoryStorage struct {
	mu     sync.RWMutex
	logger zerolog.Logger

	users      map[int64]api.User
	products   map[int64]api.Product
	cartItems  map[int64]api.CartItem
	orders     map[int64]api.Order
	orderItems map[int64]api.OrderItem

	nextUserID      int64
	nextProductID   int64
	nextCartItemID  int64
	nextOrderID     int64
	nextOrderItemID int64
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage(logger zerolog.Logger) *MemoryStorage {
	return &MemoryStorage{
		logger:     logger.With().Str("storage", "memory").Logger(),
		users:      make(map[int64]api.User),
		products:   make(map[int64]api.Product),
		cartItems:  make(map[int64]api.CartItem),
		orders:     make(map[int64]api.Order),
		orderItems: make(map[int64]api.OrderItem),
	}
}

// sortedIDs returns the map keys in ascending order, which is insertion
// order because ids only ever increase.
func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// GetUser retrieves a user by id.
func (s *MemoryStorage) GetUser(ctx context.Context, id int64) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.users) {
		if s.users[id].Email == email {
			user := s.users[id]
			return &user, nil
		}
	}
	return nil, nil
}

// CreateUser inserts a new user. Email uniqueness is enforced here, matching
// the unique constraint of the Postgres backend.
func (s *MemoryStorage) CreateUser(ctx context.Context, insert *api.InsertUser) (*api.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == insert.Email {
			return nil, api.ErrEmailTaken
		}
	}

	s.nextUserID++
	user := api.User{
		ID:       s.nextUserID,
		Email:    insert.Email,
		Password: insert.Password,
		Name:     insert.Name,
		Address:  insert.Address,
	}
	s.users[user.ID] = user

	s.logger.Debug().Int64("user_id", user.ID).Msg("user created")

	return &user, nil
}

// GetProducts lists products in insertion order, narrowed by the filter.
func (s *MemoryStorage) GetProducts(ctx context.Context, filter api.ProductFilter) ([]api.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]api.Product, 0, len(s.products))
	for _, id := range sortedIDs(s.products) {
		p := s.products[id]
		if matchesFilter(p, filter) {
			products = append(products, p)
		}
	}
	return products, nil
}

// matchesFilter applies the shared filter semantics: exact case-sensitive
// category and brand match, case-insensitive substring match on the name.
func matchesFilter(p api.Product, filter api.ProductFilter) bool {
	if filter.Category != "" && p.Category != filter.Category {
		return false
	}
	if filter.Brand != "" && p.Brand != filter.Brand {
		return false
	}
	if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
		return false
	}
	return true
}

// GetProduct retrieves a product by id.
func (s *MemoryStorage) GetProduct(ctx context.Context, id int64) (*api.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getProductLocked(id), nil
}

func (s *MemoryStorage) getProductLocked(id int64) *api.Product {
	product, ok := s.products[id]
	if !ok {
		return nil
	}
	return &product
}

// CreateProduct inserts a new product with a server-assigned id and
// createdAt.
func (s *MemoryStorage) CreateProduct(ctx context.Context, insert *api.InsertProduct) (*api.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProductID++
	product := api.Product{
		ID:          s.nextProductID,
		Name:        insert.Name,
		Description: insert.Description,
		Price:       insert.Price,
		ImageURL:    insert.ImageURL,
		Category:    insert.Category,
		Brand:       insert.Brand,
		Color:       insert.Color,
		Sizes:       slices.Clone(insert.Sizes),
		Featured:    insert.Featured,
		CreatedAt:   time.Now().UTC(),
	}
	s.products[product.ID] = product

	s.logger.Debug().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")

	return &product, nil
}

// GetCartItems lists the user's cart rows joined to their products. Rows
// whose product no longer exists are dropped.
func (s *MemoryStorage) GetCartItems(ctx context.Context, userID int64) ([]api.CartItemWithProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cartItemsLocked(userID), nil
}

func (s *MemoryStorage) cartItemsLocked(userID int64) []api.CartItemWithProduct {
	items := []api.CartItemWithProduct{}
	for _, id := range sortedIDs(s.cartItems) {
		item := s.cartItems[id]
		if item.UserID != userID {
			continue
		}
		product := s.getProductLocked(item.ProductID)
		if product == nil {
			continue
		}
		items = append(items, api.CartItemWithProduct{CartItem: item, Product: *product})
	}
	return items
}

// AddCartItem inserts a cart row. The referenced user and product must
// exist, mirroring the foreign-key constraints of the Postgres backend.
func (s *MemoryStorage) AddCartItem(ctx context.Context, insert *api.InsertCartItem) (*api.CartItemWithProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[insert.UserID]; !ok {
		return nil, api.ErrUserNotFound
	}
	product := s.getProductLocked(insert.ProductID)
	if product == nil {
		return nil, api.ErrProductNotFound
	}

	s.nextCartItemID++
	item := api.CartItem{
		ID:        s.nextCartItemID,
		UserID:    insert.UserID,
		ProductID: insert.ProductID,
		Size:      insert.Size,
		Quantity:  insert.Quantity,
	}
	s.cartItems[item.ID] = item

	s.logger.Debug().Int64("cart_item_id", item.ID).Int64("user_id", item.UserID).Msg("cart item added")

	return &api.CartItemWithProduct{CartItem: item, Product: *product}, nil
}

// UpdateCartItem sets the quantity of an existing cart row.
func (s *MemoryStorage) UpdateCartItem(ctx context.Context, id int64, quantity int) (*api.CartItemWithProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cartItems[id]
	if !ok {
		return nil, nil
	}
	item.Quantity = quantity
	s.cartItems[id] = item

	product := s.getProductLocked(item.ProductID)
	if product == nil {
		return nil, nil
	}
	return &api.CartItemWithProduct{CartItem: item, Product: *product}, nil
}

// DeleteCartItem removes a cart row, reporting whether it existed.
func (s *MemoryStorage) DeleteCartItem(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cartItems[id]; !ok {
		return false, nil
	}
	delete(s.cartItems, id)
	return true, nil
}

// GetOrders lists the user's orders with their composed items.
func (s *MemoryStorage) GetOrders(ctx context.Context, userID int64) ([]api.OrderWithItems, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := []api.OrderWithItems{}
	for _, id := range sortedIDs(s.orders) {
		order := s.orders[id]
		if order.UserID != userID {
			continue
		}
		orders = append(orders, api.OrderWithItems{Order: order, Items: s.orderItemsLocked(order.ID)})
	}
	return orders, nil
}

// GetOrder retrieves one order with its composed items.
func (s *MemoryStorage) GetOrder(ctx context.Context, id int64) (*api.OrderWithItems, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &api.OrderWithItems{Order: order, Items: s.orderItemsLocked(order.ID)}, nil
}

func (s *MemoryStorage) orderItemsLocked(orderID int64) []api.OrderItemWithProduct {
	items := []api.OrderItemWithProduct{}
	for _, id := range sortedIDs(s.orderItems) {
		item := s.orderItems[id]
		if item.OrderID != orderID {
			continue
		}
		product := s.getProductLocked(item.ProductID)
		if product == nil {
			continue
		}
		items = append(items, api.OrderItemWithProduct{OrderItem: item, Product: *product})
	}
	return items
}

// CreateOrder inserts the order and its items and clears the owner's cart in
// one critical section.
func (s *MemoryStorage) CreateOrder(ctx context.Context, insert *api.InsertOrder, items []api.InsertOrderItem) (*api.OrderWithItems, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[insert.UserID]; !ok {
		return nil, api.ErrUserNotFound
	}

	s.nextOrderID++
	order := api.Order{
		ID:              s.nextOrderID,
		UserID:          insert.UserID,
		TotalAmount:     insert.TotalAmount,
		Status:          insert.Status,
		ShippingAddress: insert.ShippingAddress,
		CreatedAt:       time.Now().UTC(),
	}
	s.orders[order.ID] = order

	for _, insertItem := range items {
		s.nextOrderItemID++
		s.orderItems[s.nextOrderItemID] = api.OrderItem{
			ID:        s.nextOrderItemID,
			OrderID:   order.ID,
			ProductID: insertItem.ProductID,
			Size:      insertItem.Size,
			Quantity:  insertItem.Quantity,
			Price:     insertItem.Price,
		}
	}

	for id, item := range s.cartItems {
		if item.UserID == order.UserID {
			delete(s.cartItems, id)
		}
	}

	s.logger.Debug().
		Int64("order_id", order.ID).
		Int("item_count", len(items)).
		Msg("order created")

	return &api.OrderWithItems{Order: order, Items: s.orderItemsLocked(order.ID)}, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStorage) Close() {}
