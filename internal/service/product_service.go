package service

import (
	"context"
	"fmt"

	"storefront/api"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	store  storage.Storage
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(store storage.Storage, logger zerolog.Logger) ProductService {
	return &productService{
		store:  store,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products narrowed by the filter.
func (s *productService) List(ctx context.Context, filter api.ProductFilter) ([]api.Product, error) {
	products, err := s.store.GetProducts(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("category", filter.Category).
		Str("brand", filter.Brand).
		Str("search", filter.Search).
		Msg("listed products")

	return products, nil
}

// Get retrieves a single product.
func (s *productService) Get(ctx context.Context, id int64) (*api.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, api.ErrProductNotFound
	}
	return product, nil
}

// Create inserts a product.
func (s *productService) Create(ctx context.Context, product *api.InsertProduct) (*api.Product, error) {
	created, err := s.store.CreateProduct(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}
