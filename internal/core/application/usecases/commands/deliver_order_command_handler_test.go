package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDeliverHandler(orders *MockOrderStore, sessions *MockSessionStore, notifier *MockNotifier) commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(orders, sessions, notifier, slog.New(slog.DiscardHandler))
}

func TestDeliverOrderCommandHandler_Handle_PrepaidSuccess(t *testing.T) {
	ctx := t.Context()

	testOrder := testOrder(t, order.Prepaid, order.Ready)
	courierID := assignTestCourier(t, testOrder)

	cmd, err := commands.NewDeliverOrderCommand(testOrder.ID(), courierID, nil, "left at door")
	require.NoError(t, err)

	orders := new(MockOrderStore)
	sessions := new(MockSessionStore)
	notifier := new(MockNotifier)

	mock.InOrder(
		orders.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orders.On("UpdateIf", ctx, testOrder).Return(nil).Once(),
		notifier.On("OrderStatusChanged", ctx, testOrder, mock.AnythingOfType("order.Actor")).Once(),
	)

	handler := newDeliverHandler(orders, sessions, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, testOrder.Status())
	assert.Nil(t, testOrder.Cash())
	sessions.AssertNotCalled(t, "GetOpenByCourier")
	orders.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestDeliverOrderCommandHandler_Handle_CashSuccess(t *testing.T) {
	ctx := t.Context()

	testOrder := testOrder(t, order.CashOnDelivery, order.Ready)
	courierID := assignTestCourier(t, testOrder)
	openSession := testOpenSession(t, courierID, decimal.NewFromInt(50))

	collected := decimal.NewFromInt(20)
	cmd, err := commands.NewDeliverOrderCommand(testOrder.ID(), courierID, &collected, "")
	require.NoError(t, err)

	orders := new(MockOrderStore)
	sessions := new(MockSessionStore)
	notifier := new(MockNotifier)

	mock.InOrder(
		orders.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		sessions.On("GetOpenByCourier", ctx, courierID).Return(openSession, nil).Once(),
		orders.On("UpdateIf", ctx, testOrder).Return(nil).Once(),
		sessions.On("UpdateIf", ctx, openSession).Return(nil).Once(),
		notifier.On("OrderStatusChanged", ctx, testOrder, mock.AnythingOfType("order.Actor")).Once(),
	)

	handler := newDeliverHandler(orders, sessions, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, testOrder.Status())
	require.NotNil(t, testOrder.Cash())
	assert.True(t, testOrder.Cash().Collected().Equal(collected))

	require.Len(t, openSession.Collections(), 1)
	recorded := openSession.Collections()[0]
	assert.Equal(t, testOrder.ID(), recorded.OrderID)
	assert.Equal(t, testOrder.Number(), recorded.OrderNumber)
	assert.True(t, recorded.Amount.Equal(collected))
	assert.True(t, openSession.TotalCollected().Equal(collected))
	sessions.AssertExpectations(t)
}

func TestDeliverOrderCommandHandler_Handle_CashWithoutSession(t *testing.T) {
	ctx := t.Context()

	testOrder := testOrder(t, order.CashOnDelivery, order.Ready)
	courierID := assignTestCourier(t, testOrder)

	cmd, err := commands.NewDeliverOrderCommand(testOrder.ID(), courierID, nil, "")
	require.NoError(t, err)

	orders := new(MockOrderStore)
	sessions := new(MockSessionStore)
	notifier := new(MockNotifier)

	mock.InOrder(
		orders.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		sessions.On("GetOpenByCourier", ctx, courierID).Return(nil, errs.ErrObjectNotFound).Once(),
	)

	handler := newDeliverHandler(orders, sessions, notifier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoActiveSession)
	assert.Equal(t, order.OutForDelivery, testOrder.Status())
	orders.AssertNotCalled(t, "UpdateIf")
	notifier.AssertNotCalled(t, "OrderStatusChanged")
}

func TestDeliverOrderCommandHandler_Handle_WrongCourier(t *testing.T) {
	ctx := t.Context()

	testOrder := testOrder(t, order.Prepaid, order.Ready)
	assignTestCourier(t, testOrder)

	stranger := testOrder.CustomerID() // any id other than the assigned courier's
	cmd, err := commands.NewDeliverOrderCommand(testOrder.ID(), stranger, nil, "")
	require.NoError(t, err)

	orders := new(MockOrderStore)
	sessions := new(MockSessionStore)
	notifier := new(MockNotifier)

	orders.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()

	handler := newDeliverHandler(orders, sessions, notifier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrNotAssignedCourier)
	assert.Equal(t, order.OutForDelivery, testOrder.Status())
}

func TestDeliverOrderCommandHandler_Handle_RetriesOnConflict(t *testing.T) {
	ctx := t.Context()

	first := testOrder(t, order.Prepaid, order.Ready)
	courierID := assignTestCourier(t, first)

	// The re-read returns a fresh aggregate in the same state.
	fresh, err := order.RestoreOrder(
		first.ID(), first.Number(), first.CustomerID(), first.Items(), first.Pricing(),
		first.Address(), first.Payment(), first.Status(), first.History(),
		first.Assignment(), first.Cash(), first.Version()+1)
	require.NoError(t, err)

	cmd, err := commands.NewDeliverOrderCommand(first.ID(), courierID, nil, "")
	require.NoError(t, err)

	orders := new(MockOrderStore)
	sessions := new(MockSessionStore)
	notifier := new(MockNotifier)

	mock.InOrder(
		orders.On("Get", ctx, first.ID()).Return(first, nil).Once(),
		orders.On("UpdateIf", ctx, first).Return(errs.ErrConflict).Once(),
		orders.On("Get", ctx, first.ID()).Return(fresh, nil).Once(),
		orders.On("UpdateIf", ctx, fresh).Return(nil).Once(),
		notifier.On("OrderStatusChanged", ctx, fresh, mock.AnythingOfType("order.Actor")).Once(),
	)

	handler := newDeliverHandler(orders, sessions, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, fresh.Status())
	orders.AssertExpectations(t)
}

func TestDeliverOrderCommandHandler_Handle_SessionClosedDuringDelivery(t *testing.T) {
	ctx := t.Context()

	testOrder := testOrder(t, order.CashOnDelivery, order.Ready)
	courierID := assignTestCourier(t, testOrder)
	openSession := testOpenSession(t, courierID, decimal.Zero)

	cmd, err := commands.NewDeliverOrderCommand(testOrder.ID(), courierID, nil, "")
	require.NoError(t, err)

	orders := new(MockOrderStore)
	sessions := new(MockSessionStore)
	notifier := new(MockNotifier)

	mock.InOrder(
		orders.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		sessions.On("GetOpenByCourier", ctx, courierID).Return(openSession, nil).Once(),
		orders.On("UpdateIf", ctx, testOrder).Return(nil).Once(),
		sessions.On("UpdateIf", ctx, openSession).Return(errors.New("write error")).Once(),
	)

	handler := newDeliverHandler(orders, sessions, notifier)
	err = handler.Handle(ctx, cmd)

	// The order stays delivered; only the bookkeeping error is surfaced.
	require.Error(t, err)
	assert.Equal(t, order.Delivered, testOrder.Status())
	notifier.AssertNotCalled(t, "OrderStatusChanged")
}

func TestDeliverOrderCommandHandler_Handle_TerminalOrder(t *testing.T) {
	ctx := t.Context()

	testOrder := testOrder(t, order.Prepaid, order.Ready)
	operator := testActor(t, order.RoleOperator, "op-1")
	require.NoError(t, testOrder.Cancel(operator, "out of stock", testOrder.History()[0].Timestamp()))

	courierID := kernel.NewUUID()
	cmd, err := commands.NewDeliverOrderCommand(testOrder.ID(), courierID, nil, "")
	require.NoError(t, err)

	orders := new(MockOrderStore)
	sessions := new(MockSessionStore)
	notifier := new(MockNotifier)

	orders.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()

	handler := newDeliverHandler(orders, sessions, notifier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
}
