package http_test

import (
	"context"
	"log/slog"

	"parcelquote/internal/core/application/usecases/commands"
	"parcelquote/internal/core/application/usecases/queries"
	"parcelquote/internal/core/domain/model/account"

	"github.com/stretchr/testify/mock"
)

type MockCheckoutHandler struct{ mock.Mock }

func (m *MockCheckoutHandler) Handle(ctx context.Context, cmd commands.CheckoutCommand) (commands.CheckoutResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CheckoutResult), args.Error(1)
}

type MockCancelOrderHandler struct{ mock.Mock }

func (m *MockCancelOrderHandler) Handle(ctx context.Context, cmd commands.CancelOrderCommand) (commands.CancelOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CancelOrderResult), args.Error(1)
}

type MockLoginHandler struct{ mock.Mock }

func (m *MockLoginHandler) Handle(ctx context.Context, cmd commands.LoginCommand) (account.Session, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(account.Session), args.Error(1)
}

type MockLogoutHandler struct{ mock.Mock }

func (m *MockLogoutHandler) Handle(ctx context.Context, cmd commands.LogoutCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListAccountOrdersQuery) ([]queries.OrderSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderSummary), args.Error(1)
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
