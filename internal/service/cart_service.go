package service

import (
	"context"
	"fmt"

	"storefront/api"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	store  storage.Storage
	logger zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(store storage.Storage, logger zerolog.Logger) CartService {
	return &cartService{
		store:  store,
		logger: logger.With().Str("service", "cart").Logger(),
	}
}

// List retrieves the caller's composed cart rows.
func (s *cartService) List(ctx context.Context, userID int64) ([]api.CartItemWithProduct, error) {
	items, err := s.store.GetCartItems(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list cart items")
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

// Add puts a product into the caller's cart. An omitted quantity defaults
// to 1. The referenced product must exist; size is not checked against the
// product's sizes, matching documented current behavior.
func (s *cartService) Add(ctx context.Context, userID int64, req *api.AddCartItemRequest) (*api.CartItemWithProduct, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	item, err := s.store.AddCartItem(ctx, &api.InsertCartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  quantity,
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Int64("product_id", req.ProductID).Msg("failed to add cart item")
		return nil, err
	}

	s.logger.Info().
		Int64("cart_item_id", item.ID).
		Int64("user_id", userID).
		Int64("product_id", req.ProductID).
		Msg("cart item added")

	return item, nil
}

// Update sets the quantity of a cart row.
func (s *cartService) Update(ctx context.Context, id int64, req *api.UpdateCartItemRequest) (*api.CartItemWithProduct, error) {
	item, err := s.store.UpdateCartItem(ctx, id, req.Quantity)
	if err != nil {
		s.logger.Error().Err(err).Int64("cart_item_id", id).Msg("failed to update cart item")
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	if item == nil {
		s.logger.Debug().Int64("cart_item_id", id).Msg("cart item not found")
		return nil, api.ErrCartItemNotFound
	}
	return item, nil
}

// Delete removes a cart row.
func (s *cartService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteCartItem(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("cart_item_id", id).Msg("failed to delete cart item")
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if !deleted {
		return api.ErrCartItemNotFound
	}
	return nil
}
