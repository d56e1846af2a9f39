package commands_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"

	"github.com/shopspring/decimal"
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

type MockCourierStore struct{ mock.Mock }

func (m *MockCourierStore) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierStore) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierStore) UpdateLocation(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierStore) NearestAvailable(ctx context.Context, point kernel.GeoPoint, radiusMeters float64, limit int) ([]courier.Candidate, error) {
	args := m.Called(ctx, point, radiusMeters, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]courier.Candidate), args.Error(1)
}

func (m *MockCourierStore) Claim(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCourierStore) Release(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) OrderPlaced(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) OrderStatusChanged(ctx context.Context, o *order.Order, actor order.Actor) {
	m.Called(ctx, o, actor)
}

func (m *MockNotifier) OrderPickedUp(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) DispatchFailed(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) CourierLocationUpdated(ctx context.Context, c *courier.Courier) {
	m.Called(ctx, c)
}

// Test fixtures shared by the handler tests.

func testLineItems(t *testing.T) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(
		kernel.NewUUID(), "Margherita", decimal.NewFromInt(12), 2, []string{"extra cheese"})
	require.NoError(t, err)
	return []order.LineItem{item}
}

func testAddress(t *testing.T) order.DeliveryAddress {
	t.Helper()
	point, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)
	address, err := order.NewDeliveryAddress("Istiklal Avenue", "12A", "Istanbul", "ring twice", point)
	require.NoError(t, err)
	return address
}

func testNumber(t *testing.T) string {
	t.Helper()
	gen := order.NewNumberGeneratorWithClock(func() time.Time {
		return time.Date(2025, 6, 30, 17, 45, 12, 0, time.UTC)
	})
	return gen.Next()
}

func testActor(t *testing.T, role order.Role, id string) order.Actor {
	t.Helper()
	actor, err := order.NewActor(role, id)
	require.NoError(t, err)
	return actor
}

// testOrder builds an order in the requested status by walking it through
// the lifecycle with the appropriate actors.
func testOrder(t *testing.T, payment order.PaymentMethod, status order.Status) *order.Order {
	t.Helper()

	customerID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		testNumber(t),
		customerID,
		testLineItems(t),
		testAddress(t),
		payment,
		decimal.NewFromInt(3), decimal.NewFromInt(2), decimal.Zero,
		testActor(t, order.RoleCustomer, customerID.String()),
		time.Now().UTC(),
	)
	require.NoError(t, err)

	if status == order.Pending {
		return o
	}

	operator := testActor(t, order.RoleOperator, "op-1")
	require.NoError(t, o.MarkReady(operator, "", time.Now().UTC()))
	if status == order.Ready {
		return o
	}

	t.Fatalf("unsupported fixture status %s", status)
	return nil
}

// assignTestCourier moves a READY fixture to OUT_FOR_DELIVERY and returns
// the assigned courier's id.
func assignTestCourier(t *testing.T, o *order.Order) kernel.UUID {
	t.Helper()

	courierID := kernel.NewUUID()
	assignment, err := order.NewCourierAssignment(courierID, "Jane Smith", "+90-555-0101", "bike", time.Now().UTC())
	require.NoError(t, err)

	dispatcher := testActor(t, order.RoleDispatcher, "system")
	require.NoError(t, o.AssignCourier(assignment, dispatcher, "courier assigned", time.Now().UTC()))
	return courierID
}

func testOpenSession(t *testing.T, courierID kernel.UUID, openingFloat decimal.Decimal) *session.DeliverySession {
	t.Helper()
	s, err := session.NewDeliverySession(kernel.NewUUID(), courierID, openingFloat, time.Now().UTC())
	require.NoError(t, err)
	return s
}
