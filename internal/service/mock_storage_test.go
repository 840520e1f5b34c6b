package service

import (
	"context"

	"storefront/api"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUser(ctx context.Context, id int64) (*api.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (*api.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.User), args.Error(1)
}

func (m *MockStorage) CreateUser(ctx context.Context, user *api.InsertUser) (*api.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.User), args.Error(1)
}

func (m *MockStorage) GetProducts(ctx context.Context, filter api.ProductFilter) ([]api.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Product), args.Error(1)
}

func (m *MockStorage) GetProduct(ctx context.Context, id int64) (*api.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Product), args.Error(1)
}

func (m *MockStorage) CreateProduct(ctx context.Context, product *api.InsertProduct) (*api.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Product), args.Error(1)
}

func (m *MockStorage) GetCartItems(ctx context.Context, userID int64) ([]api.CartItemWithProduct, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.CartItemWithProduct), args.Error(1)
}

func (m *MockStorage) AddCartItem(ctx context.Context, item *api.InsertCartItem) (*api.CartItemWithProduct, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CartItemWithProduct), args.Error(1)
}

func (m *MockStorage) UpdateCartItem(ctx context.Context, id int64, quantity int) (*api.CartItemWithProduct, error) {
	args := m.Called(ctx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CartItemWithProduct), args.Error(1)
}

func (m *MockStorage) DeleteCartItem(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) GetOrders(ctx context.Context, userID int64) ([]api.OrderWithItems, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.OrderWithItems), args.Error(1)
}

func (m *MockStorage) GetOrder(ctx context.Context, id int64) (*api.OrderWithItems, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.OrderWithItems), args.Error(1)
}

func (m *MockStorage) CreateOrder(ctx context.Context, order *api.InsertOrder, items []api.InsertOrderItem) (*api.OrderWithItems, error) {
	args := m.Called(ctx, order, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.OrderWithItems), args.Error(1)
}

func (m *MockStorage) Close() {
	m.Called()
}
