package service

import (
	"context"
	"fmt"

	"storefront/api"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	store  storage.Storage
	logger zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(store storage.Storage, logger zerolog.Logger) OrderService {
	return &orderService{
		store:  store,
		logger: logger.With().Str("service", "order").Logger(),
	}
}

// List retrieves the caller's composed orders.
func (s *orderService) List(ctx context.Context, userID int64) ([]api.OrderWithItems, error) {
	orders, err := s.store.GetOrders(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Get retrieves one order. Callers may only fetch their own orders; an
// ownership mismatch is unauthorized, never the order body.
func (s *orderService) Get(ctx context.Context, userID, id int64) (*api.OrderWithItems, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Int64("order_id", id).Msg("order not found")
		return nil, api.ErrOrderNotFound
	}
	if order.UserID != userID {
		s.logger.Warn().
			Int64("order_id", id).
			Int64("owner_id", order.UserID).
			Int64("caller_id", userID).
			Msg("order ownership mismatch")
		return nil, api.ErrUnauthorized
	}
	return order, nil
}

// Create places an order from the caller's cart. The total is the exact
// decimal sum of line totals, each item's price is frozen from the product
// at this moment, and the cart is cleared atomically with the insert.
func (s *orderService) Create(ctx context.Context, userID int64, req *api.CreateOrderRequest) (*api.OrderWithItems, error) {
	cartItems, err := s.store.GetCartItems(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if len(cartItems) == 0 {
		s.logger.Debug().Int64("user_id", userID).Msg("checkout with empty cart")
		return nil, api.ErrCartEmpty
	}

	total := decimal.Zero
	orderItems := make([]api.InsertOrderItem, len(cartItems))
	for i, item := range cartItems {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		orderItems[i] = api.InsertOrderItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		}
	}

	order, err := s.store.CreateOrder(ctx, &api.InsertOrder{
		UserID:          userID,
		TotalAmount:     total,
		Status:          api.StatusPending,
		ShippingAddress: req.ShippingAddress,
	}, orderItems)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("user_id", userID).
		Str("total_amount", total.String()).
		Int("item_count", len(orderItems)).
		Msg("order placed")

	return order, nil
}
