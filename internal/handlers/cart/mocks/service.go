package mocks

import (
	"context"

	"storefront/internal/models"

	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) ViewCart(ctx context.Context) (models.CartView, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.CartView), args.Error(1)
}

func (m *Service) AddToCart(ctx context.Context, productId int) (models.CartView, error) {
	args := m.Called(ctx, productId)
	return args.Get(0).(models.CartView), args.Error(1)
}

func (m *Service) RemoveFromCart(ctx context.Context, productId int) (models.CartView, error) {
	args := m.Called(ctx, productId)
	return args.Get(0).(models.CartView), args.Error(1)
}

func (m *Service) UpdateQuantity(ctx context.Context, productId int, delta int) (models.CartView, error) {
	args := m.Called(ctx, productId, delta)
	return args.Get(0).(models.CartView), args.Error(1)
}

func (m *Service) Checkout(ctx context.Context, form models.CheckoutForm) (models.Confirmation, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(models.Confirmation), args.Error(1)
}

func (m *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *Service) Notification(ctx context.Context) (models.Notification, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Notification), args.Error(1)
}
