// Package seed inserts the fixed demo catalogue and demo user on startup.
// It only writes when the target table is empty, so re-running against
// existing data performs no writes.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/api"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// DemoEmail is the seeded demo account.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
)

var products = []api.InsertProduct{
	{
		Name:        "Air Max Pro",
		Description: "Premium comfort and responsive cushioning for your everyday run.",
		Price:       decimal.RequireFromString("159.99"),
		ImageURL:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=2070",
		Category:    api.CategoryShoes,
		Brand:       "Nike",
		Color:       "Red/White",
		Sizes:       []string{"8", "9", "10", "11", "12"},
		Featured:    true,
	},
	{
		Name:        "Yeezy Boost",
		Description: "Iconic streetwear sneaker with unparalleled comfort.",
		Price:       decimal.RequireFromString("220.00"),
		ImageURL:    "https://images.unsplash.com/photo-1512374382149-233c42b6a83b?q=80&w=1965",
		Category:    api.CategoryShoes,
		Brand:       "Adidas",
		Color:       "White",
		Sizes:       []string{"7", "8", "9", "10", "11"},
		Featured:    true,
	},
	{
		Name:        "Classic Leather",
		Description: "Timeless style meets modern comfort in this premium leather sneaker.",
		Price:       decimal.RequireFromString("85.00"),
		ImageURL:    "https://images.unsplash.com/photo-1525966222134-fcfa99b8ae77?q=80&w=1998",
		Category:    api.CategoryShoes,
		Brand:       "Reebok",
		Color:       "Yellow/Blue",
		Sizes:       []string{"8", "9", "10", "11"},
		Featured:    false,
	},
	{
		Name:        "Premium Oxford Shirt",
		Description: "A tailored fit oxford shirt made from premium breathable cotton.",
		Price:       decimal.RequireFromString("65.00"),
		ImageURL:    "https://images.unsplash.com/photo-1596755094514-f87e32f85e2c?q=80&w=1888",
		Category:    api.CategoryMensWear,
		Brand:       "Zara",
		Color:       "Light Blue",
		Sizes:       []string{"S", "M", "L", "XL"},
		Featured:    true,
	},
	{
		Name:        "Slim Fit Chinos",
		Description: "Comfortable and stylish stretch chinos for everyday wear.",
		Price:       decimal.RequireFromString("49.90"),
		ImageURL:    "https://images.unsplash.com/photo-1624378439575-d8705ad7ae80?q=80&w=1994",
		Category:    api.CategoryMensWear,
		Brand:       "H&M",
		Color:       "Khaki",
		Sizes:       []string{"30", "32", "34", "36"},
		Featured:    false,
	},
}

var demoAddress = json.RawMessage(`{"street":"123 Main St","city":"San Francisco","state":"CA","zip":"94105","country":"USA"}`)

// Run seeds the store if the product table is empty.
func Run(ctx context.Context, store storage.Storage, logger zerolog.Logger) error {
	log := logger.With().Str("component", "seed").Logger()

	existing, err := store.GetProducts(ctx, api.ProductFilter{})
	if err != nil {
		return fmt.Errorf("failed to check existing products: %w", err)
	}
	if len(existing) > 0 {
		log.Debug().Int("count", len(existing)).Msg("products already present, skipping seed")
		return nil
	}

	for i := range products {
		if _, err := store.CreateProduct(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", products[i].Name, err)
		}
	}

	existingUser, err := store.GetUserByEmail(ctx, DemoEmail)
	if err != nil {
		return fmt.Errorf("failed to check demo user: %w", err)
	}
	if existingUser == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}
		if _, err := store.CreateUser(ctx, &api.InsertUser{
			Email:    DemoEmail,
			Password: string(hash),
			Name:     "Demo User",
			Address:  demoAddress,
		}); err != nil {
			return fmt.Errorf("failed to seed demo user: %w", err)
		}
	}

	log.Info().Int("products", len(products)).Msg("seeded demo data")

	return nil
}
