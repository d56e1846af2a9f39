package queries_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderStore) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderStore) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderStore) UpdateIf(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderStore) FindByStatus(ctx context.Context, status order.Status, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderStore) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Add(ctx context.Context, s *session.DeliverySession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, id kernel.UUID) (*session.DeliverySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.DeliverySession), args.Error(1)
}

func (m *MockSessionStore) GetOpenByCourier(ctx context.Context, courierID kernel.UUID) (*session.DeliverySession, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.DeliverySession), args.Error(1)
}

func (m *MockSessionStore) UpdateIf(ctx context.Context, s *session.DeliverySession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()

	point, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)
	address, err := order.NewDeliveryAddress("Istiklal Avenue", "12A", "Istanbul", "", point)
	require.NoError(t, err)

	item, err := order.NewLineItem(kernel.NewUUID(), "Margherita", decimal.NewFromInt(12), 2, nil)
	require.NoError(t, err)

	customerID := kernel.NewUUID()
	actor, err := order.NewActor(order.RoleCustomer, customerID.String())
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD30174512007", customerID, []order.LineItem{item},
		address, order.CashOnDelivery,
		decimal.NewFromInt(3), decimal.NewFromInt(2), decimal.Zero,
		actor, time.Now().UTC())
	require.NoError(t, err)
	return o
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	t.Run("projects the aggregate", func(t *testing.T) {
		ctx := t.Context()
		o := testOrder(t)

		query, err := queries.NewGetOrderQuery(o.ID())
		require.NoError(t, err)

		orders := new(MockOrderStore)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

		handler := queries.NewGetOrderQueryHandler(orders)
		resp, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, o.ID().String(), resp.ID)
		assert.Equal(t, "ORD30174512007", resp.Number)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "CASH_ON_DELIVERY", resp.Payment)
		assert.True(t, resp.FinalAmount.Equal(decimal.NewFromInt(29)))
		require.Len(t, resp.History, 1)
		assert.Equal(t, "PENDING", resp.History[0].Status)
		assert.Nil(t, resp.Assignment)
		assert.Nil(t, resp.Cash)
	})

	t.Run("not found passes through", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()

		query, err := queries.NewGetOrderQuery(id)
		require.NoError(t, err)

		orders := new(MockOrderStore)
		orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

		handler := queries.NewGetOrderQueryHandler(orders)
		_, err = handler.Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("unconstructed query rejected", func(t *testing.T) {
		handler := queries.NewGetOrderQueryHandler(new(MockOrderStore))
		_, err := handler.Handle(t.Context(), queries.GetOrderQuery{})
		require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestGetReadyOrdersQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	first := testOrder(t)
	operator, err := order.NewActor(order.RoleOperator, "op-1")
	require.NoError(t, err)
	require.NoError(t, first.MarkReady(operator, "", time.Now().UTC()))

	query, err := queries.NewGetReadyOrdersQuery(10)
	require.NoError(t, err)

	orders := new(MockOrderStore)
	orders.On("FindByStatus", ctx, order.Ready, 10).Return([]*order.Order{first}, nil).Once()

	handler := queries.NewGetReadyOrdersQueryHandler(orders)
	resp, err := handler.Handle(ctx, query)

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, first.ID().String(), resp[0].ID)
	assert.Equal(t, "Istanbul", resp[0].City)
}

func TestNewGetReadyOrdersQuery_DefaultsLimit(t *testing.T) {
	query, err := queries.NewGetReadyOrdersQuery(0)
	require.NoError(t, err)
	assert.Equal(t, 50, query.Limit())

	_, err = queries.NewGetReadyOrdersQuery(-1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGetOpenSessionQueryHandler_Handle(t *testing.T) {
	t.Run("projects the cash position", func(t *testing.T) {
		ctx := t.Context()

		courierID := kernel.NewUUID()
		s, err := session.NewDeliverySession(kernel.NewUUID(), courierID, decimal.NewFromInt(50), time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, s.AddCollection(kernel.NewUUID(), "ORD30174512007", decimal.NewFromInt(120), time.Now().UTC()))

		query, err := queries.NewGetOpenSessionQuery(courierID)
		require.NoError(t, err)

		sessions := new(MockSessionStore)
		sessions.On("GetOpenByCourier", ctx, courierID).Return(s, nil).Once()

		handler := queries.NewGetOpenSessionQueryHandler(sessions)
		resp, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, courierID.String(), resp.CourierID)
		assert.True(t, resp.TotalCollected.Equal(decimal.NewFromInt(120)))
		assert.True(t, resp.TotalToDeposit.Equal(decimal.NewFromInt(70)))
		require.Len(t, resp.Collections, 1)
		assert.Equal(t, "ORD30174512007", resp.Collections[0].OrderNumber)
		assert.False(t, resp.Settled)
	})

	t.Run("no open session passes through", func(t *testing.T) {
		ctx := t.Context()
		courierID := kernel.NewUUID()

		query, err := queries.NewGetOpenSessionQuery(courierID)
		require.NoError(t, err)

		sessions := new(MockSessionStore)
		sessions.On("GetOpenByCourier", ctx, courierID).Return(nil, errs.ErrObjectNotFound).Once()

		handler := queries.NewGetOpenSessionQueryHandler(sessions)
		_, err = handler.Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
