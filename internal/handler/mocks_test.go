package handler

import (
	"context"

	"storefront/api"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a testify mock of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID int64) (*api.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.User), args.Error(1)
}

// MockProductService is a testify mock of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter api.ProductFilter) ([]api.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id int64) (*api.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, product *api.InsertProduct) (*api.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Product), args.Error(1)
}

// MockCartService is a testify mock of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) List(ctx context.Context, userID int64) ([]api.CartItemWithProduct, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.CartItemWithProduct), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, userID int64, req *api.AddCartItemRequest) (*api.CartItemWithProduct, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CartItemWithProduct), args.Error(1)
}

func (m *MockCartService) Update(ctx context.Context, id int64, req *api.UpdateCartItemRequest) (*api.CartItemWithProduct, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CartItemWithProduct), args.Error(1)
}

func (m *MockCartService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderService is a testify mock of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) List(ctx context.Context, userID int64) ([]api.OrderWithItems, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.OrderWithItems), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, userID, id int64) (*api.OrderWithItems, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.OrderWithItems), args.Error(1)
}

func (m *MockOrderService) Create(ctx context.Context, userID int64, req *api.CreateOrderRequest) (*api.OrderWithItems, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.OrderWithItems), args.Error(1)
}
