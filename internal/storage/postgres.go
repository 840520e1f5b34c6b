package storage

import (
	"context"
	"errors"
	"fmt"

	"storefront/api"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Postgres error codes used to translate constraint violations into domain
// errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresStorage is the Postgres-backed Storage implementation.
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStorage creates a Postgres-backed store on the given pool.
func NewPostgresStorage(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresStorage {
	return &PostgresStorage{
		pool:   pool,
		logger: logger.With().Str("storage", "postgres").Logger(),
	}
}

// GetUser retrieves a user by id.
func (s *PostgresStorage) GetUser(ctx context.Context, id int64) (*api.User, error) {
	query := `
		SELECT id, email, password, name, address
		FROM users
		WHERE id = $1
	`

	var u api.User
	err := s.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email.
func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*api.User, error) {
	query := `
		SELECT id, email, password, name, address
		FROM users
		WHERE email = $1
	`

	var u api.User
	err := s.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error().Err(err).Msg("failed to query user by email")
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user. A unique violation on the email column maps
// to ErrEmailTaken.
func (s *PostgresStorage) CreateUser(ctx context.Context, insert *api.InsertUser) (*api.User, error) {
	query := `
		INSERT INTO users (email, password, name, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	u := api.User{
		Email:    insert.Email,
		Password: insert.Password,
		Name:     insert.Name,
		Address:  insert.Address,
	}
	err := s.pool.QueryRow(ctx, query, insert.Email, insert.Password, insert.Name, insert.Address).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, api.ErrEmailTaken
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug().Int64("user_id", u.ID).Msg("user created")

	return &u, nil
}

// GetProducts lists products in insertion order, narrowed by the filter. The
// filter is pushed down as a WHERE clause with the shared semantics: exact
// category/brand match, case-insensitive substring match on the name.
func (s *PostgresStorage) GetProducts(ctx context.Context, filter api.ProductFilter) ([]api.Product, error) {
	query := `
		SELECT id, name, description, price, image_url, category, brand, color, sizes, is_featured, created_at
		FROM products
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR brand = $2)
		  AND ($3 = '' OR name ILIKE '%' || $3 || '%')
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query, filter.Category, filter.Brand, filter.Search)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []api.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a single product by id.
func (s *PostgresStorage) GetProduct(ctx context.Context, id int64) (*api.Product, error) {
	return getProduct(ctx, s.pool, s.logger, id)
}

// querier is the subset of pool/tx used by the shared lookup helpers.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getProduct(ctx context.Context, q querier, logger zerolog.Logger, id int64) (*api.Product, error) {
	query := `
		SELECT id, name, description, price, image_url, category, brand, color, sizes, is_featured, created_at
		FROM products
		WHERE id = $1
	`

	p, err := scanProduct(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &p, nil
}

func scanProduct(row pgx.Row) (api.Product, error) {
	var p api.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.Category,
		&p.Brand,
		&p.Color,
		&p.Sizes,
		&p.Featured,
		&p.CreatedAt,
	)
	return p, err
}

// CreateProduct inserts a new product.
func (s *PostgresStorage) CreateProduct(ctx context.Context, insert *api.InsertProduct) (*api.Product, error) {
	query := `
		INSERT INTO products (name, description, price, image_url, category, brand, color, sizes, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	p := api.Product{
		Name:        insert.Name,
		Description: insert.Description,
		Price:       insert.Price,
		ImageURL:    insert.ImageURL,
		Category:    insert.Category,
		Brand:       insert.Brand,
		Color:       insert.Color,
		Sizes:       insert.Sizes,
		Featured:    insert.Featured,
	}
	err := s.pool.QueryRow(ctx, query,
		insert.Name,
		insert.Description,
		insert.Price,
		insert.ImageURL,
		insert.Category,
		insert.Brand,
		insert.Color,
		insert.Sizes,
		insert.Featured,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		s.logger.Error().Err(err).Str("name", insert.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Debug().Int64("product_id", p.ID).Str("name", p.Name).Msg("product created")

	return &p, nil
}

// GetCartItems lists the user's cart rows joined to their products. Rows
// whose product is missing are dropped.
func (s *PostgresStorage) GetCartItems(ctx context.Context, userID int64) ([]api.CartItemWithProduct, error) {
	query := `
		SELECT id, user_id, product_id, size, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var bare []api.CartItem
	for rows.Next() {
		var item api.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Size, &item.Quantity); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		bare = append(bare, item)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	items := []api.CartItemWithProduct{}
	for _, item := range bare {
		product, err := s.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		items = append(items, api.CartItemWithProduct{CartItem: item, Product: *product})
	}

	return items, nil
}

// AddCartItem inserts a cart row. Foreign-key violations map to the
// corresponding not-found domain error.
func (s *PostgresStorage) AddCartItem(ctx context.Context, insert *api.InsertCartItem) (*api.CartItemWithProduct, error) {
	query := `
		INSERT INTO cart_items (user_id, product_id, size, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	item := api.CartItem{
		UserID:    insert.UserID,
		ProductID: insert.ProductID,
		Size:      insert.Size,
		Quantity:  insert.Quantity,
	}
	err := s.pool.QueryRow(ctx, query, insert.UserID, insert.ProductID, insert.Size, insert.Quantity).Scan(&item.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			if pgErr.ConstraintName == "cart_items_user_id_fkey" {
				return nil, api.ErrUserNotFound
			}
			return nil, api.ErrProductNotFound
		}
		s.logger.Error().Err(err).Int64("user_id", insert.UserID).Msg("failed to add cart item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	product, err := s.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, api.ErrProductNotFound
	}

	s.logger.Debug().Int64("cart_item_id", item.ID).Int64("user_id", item.UserID).Msg("cart item added")

	return &api.CartItemWithProduct{CartItem: item, Product: *product}, nil
}

// UpdateCartItem sets the quantity of an existing cart row.
func (s *PostgresStorage) UpdateCartItem(ctx context.Context, id int64, quantity int) (*api.CartItemWithProduct, error) {
	query := `
		UPDATE cart_items
		SET quantity = $2
		WHERE id = $1
		RETURNING id, user_id, product_id, size, quantity
	`

	var item api.CartItem
	err := s.pool.QueryRow(ctx, query, id, quantity).Scan(&item.ID, &item.UserID, &item.ProductID, &item.Size, &item.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error().Err(err).Int64("cart_item_id", id).Msg("failed to update cart item")
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	product, err := s.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return &api.CartItemWithProduct{CartItem: item, Product: *product}, nil
}

// DeleteCartItem removes a cart row, reporting whether it existed.
func (s *PostgresStorage) DeleteCartItem(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("cart_item_id", id).Msg("failed to delete cart item")
		return false, fmt.Errorf("failed to delete cart item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetOrders lists the user's orders with their composed items.
func (s *PostgresStorage) GetOrders(ctx context.Context, userID int64) ([]api.OrderWithItems, error) {
	query := `
		SELECT id, user_id, total_amount, status, shipping_address, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var bare []api.Order
	for rows.Next() {
		var o api.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress, &o.CreatedAt); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		bare = append(bare, o)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	orders := []api.OrderWithItems{}
	for _, o := range bare {
		items, err := s.orderItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, api.OrderWithItems{Order: o, Items: items})
	}

	return orders, nil
}

// GetOrder retrieves one order with its composed items.
func (s *PostgresStorage) GetOrder(ctx context.Context, id int64) (*api.OrderWithItems, error) {
	query := `
		SELECT id, user_id, total_amount, status, shipping_address, created_at
		FROM orders
		WHERE id = $1
	`

	var o api.Order
	err := s.pool.QueryRow(ctx, query, id).Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := s.orderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &api.OrderWithItems{Order: o, Items: items}, nil
}

// orderItems loads the order's lines joined to their products, dropping
// lines whose product is missing.
func (s *PostgresStorage) orderItems(ctx context.Context, orderID int64) ([]api.OrderItemWithProduct, error) {
	query := `
		SELECT id, order_id, product_id, size, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query, orderID)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var bare []api.OrderItem
	for rows.Next() {
		var item api.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Size, &item.Quantity, &item.Price); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		bare = append(bare, item)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	items := []api.OrderItemWithProduct{}
	for _, item := range bare {
		product, err := s.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		items = append(items, api.OrderItemWithProduct{OrderItem: item, Product: *product})
	}

	return items, nil
}

// CreateOrder inserts the order row and its items and clears the owner's
// cart in a single transaction, so a partially created order or a stale cart
// is never observable.
func (s *PostgresStorage) CreateOrder(ctx context.Context, insert *api.InsertOrder, items []api.InsertOrderItem) (*api.OrderWithItems, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order := api.Order{
		UserID:          insert.UserID,
		TotalAmount:     insert.TotalAmount,
		Status:          insert.Status,
		ShippingAddress: insert.ShippingAddress,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_amount, status, shipping_address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, insert.UserID, insert.TotalAmount, insert.Status, insert.ShippingAddress).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", insert.UserID).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	inserted := make([]api.OrderItem, len(items))
	for i, insertItem := range items {
		item := api.OrderItem{
			OrderID:   order.ID,
			ProductID: insertItem.ProductID,
			Size:      insertItem.Size,
			Quantity:  insertItem.Quantity,
			Price:     insertItem.Price,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, size, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Size, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to create order item")
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
		inserted[i] = item
	}

	if _, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, order.UserID); err != nil {
		s.logger.Error().Err(err).Int64("user_id", order.UserID).Msg("failed to clear cart")
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	composed := []api.OrderItemWithProduct{}
	for _, item := range inserted {
		product, perr := s.GetProduct(ctx, item.ProductID)
		if perr != nil {
			return nil, perr
		}
		if product == nil {
			continue
		}
		composed = append(composed, api.OrderItemWithProduct{OrderItem: item, Product: *product})
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int("item_count", len(inserted)).
		Msg("order created")

	return &api.OrderWithItems{Order: order, Items: composed}, nil
}

// Close closes the underlying pool.
func (s *PostgresStorage) Close() {
	s.pool.Close()
}
