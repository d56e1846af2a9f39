package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/eventbus"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) Add(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
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

func (m *MockOrderStore) UpdateIf(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
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

func (m *MockSessionStore) Add(ctx context.Context, aggregate *session.DeliverySession) error {
	return m.Called(ctx, aggregate).Error(0)
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

func (m *MockSessionStore) UpdateIf(ctx context.Context, aggregate *session.DeliverySession) error {
	return m.Called(ctx, aggregate).Error(0)
}

type MockCourierStore struct{ mock.Mock }

func (m *MockCourierStore) Add(ctx context.Context, aggregate *courier.Courier) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockCourierStore) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierStore) UpdateLocation(ctx context.Context, aggregate *courier.Courier) error {
	return m.Called(ctx, aggregate).Error(0)
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
	return m.Called(ctx, id).Error(0)
}

type noopNotifier struct{}

func (noopNotifier) OrderPlaced(context.Context, *order.Order)                     {}
func (noopNotifier) OrderStatusChanged(context.Context, *order.Order, order.Actor) {}
func (noopNotifier) OrderPickedUp(context.Context, *order.Order)                   {}
func (noopNotifier) DispatchFailed(context.Context, *order.Order)                  {}
func (noopNotifier) CourierLocationUpdated(context.Context, *courier.Courier)      {}

type fixture struct {
	orders   *MockOrderStore
	couriers *MockCourierStore
	sessions *MockSessionStore
	echo     *echo.Echo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	orders := &MockOrderStore{}
	couriers := &MockCourierStore{}
	sessions := &MockSessionStore{}
	notifier := noopNotifier{}

	bus := eventbus.NewBus(logger)
	t.Cleanup(bus.Stop)

	handlers := httpadapter.Handlers{
		PlaceOrder:            commands.NewPlaceOrderCommandHandler(orders, order.NewNumberGenerator(), notifier),
		TransitionOrder:       commands.NewTransitionOrderCommandHandler(orders, notifier),
		DispatchOrder:         commands.NewDispatchOrderCommandHandler(orders, couriers, services.NewCourierSelector(), notifier, commands.DefaultDispatchConfig(), logger),
		PickUpOrder:           commands.NewPickUpOrderCommandHandler(orders, notifier),
		DeliverOrder:          commands.NewDeliverOrderCommandHandler(orders, sessions, notifier, logger),
		CreateCourier:         commands.NewCreateCourierCommandHandler(couriers),
		UpdateCourierLocation: commands.NewUpdateCourierLocationCommandHandler(couriers, notifier),
		StartSession:          commands.NewStartSessionCommandHandler(sessions, couriers),
		EndSession:            commands.NewEndSessionCommandHandler(sessions),
		SettleSession:         commands.NewSettleSessionCommandHandler(sessions),
		GetOrder:              queries.NewGetOrderQueryHandler(orders),
		GetReadyOrders:        queries.NewGetReadyOrdersQueryHandler(orders),
		GetOpenSession:        queries.NewGetOpenSessionQueryHandler(sessions),
	}

	metrics := httpadapter.NewMetrics(prometheus.NewRegistry())
	server := httpadapter.NewServer(handlers, bus, metrics, logger)

	e := echo.New()
	server.RegisterRoutes(e)
	return &fixture{orders: orders, couriers: couriers, sessions: sessions, echo: e}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Margherita", decimal.NewFromInt(12), 2, nil)
	require.NoError(t, err)
	point, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)
	address, err := order.NewDeliveryAddress("Istiklal Avenue", "12A", "Istanbul", "", point)
	require.NoError(t, err)
	customerID := kernel.NewUUID()
	placedBy, err := order.NewActor(order.RoleCustomer, customerID.String())
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD30174512000", customerID,
		[]order.LineItem{item}, address, order.Prepaid,
		decimal.NewFromInt(3), decimal.NewFromInt(2), decimal.Zero,
		placedBy, time.Now().UTC())
	require.NoError(t, err)
	return o
}

func TestGetOrder(t *testing.T) {
	t.Run("returns the projection", func(t *testing.T) {
		f := newFixture(t)
		o := pendingOrder(t)
		f.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)

		rec := f.do(nethttp.MethodGet, "/api/v1/orders/"+o.ID().String(), "")

		require.Equal(t, nethttp.StatusOK, rec.Code)
		var body queries.GetOrderQueryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, o.Number(), body.Number)
		assert.Equal(t, "PENDING", body.Status)
	})

	t.Run("unknown order is 404", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.orders.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id))

		rec := f.do(nethttp.MethodGet, "/api/v1/orders/"+id.String(), "")
		assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(nethttp.MethodGet, "/api/v1/orders/not-a-uuid", "")
		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})
}

func TestPlaceOrder(t *testing.T) {
	t.Run("places and returns the order", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("Add", mock.Anything, mock.Anything).Return(nil)

		body := `{
			"customerId": "` + kernel.NewUUID().String() + `",
			"items": [{"catalogItemId": "` + kernel.NewUUID().String() + `", "name": "Margherita", "unitPrice": "12", "quantity": 2}],
			"address": {"street": "Istiklal Avenue", "building": "12A", "city": "Istanbul", "latitude": 41.0082, "longitude": 28.9784},
			"paymentMethod": "CASH_ON_DELIVERY",
			"deliveryFee": "3", "tax": "2", "discount": "0"
		}`
		rec := f.do(nethttp.MethodPost, "/api/v1/orders", body)

		require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
		var response queries.GetOrderQueryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "PENDING", response.Status)
		assert.Equal(t, "CASH_ON_DELIVERY", response.Payment)
		assert.True(t, response.FinalAmount.Equal(decimal.NewFromInt(29)))
	})

	t.Run("invalid customer id is 400", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(nethttp.MethodPost, "/api/v1/orders", `{"customerId": "nope"}`)
		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})

	t.Run("unknown payment method is 400", func(t *testing.T) {
		f := newFixture(t)
		body := `{
			"customerId": "` + kernel.NewUUID().String() + `",
			"items": [{"catalogItemId": "` + kernel.NewUUID().String() + `", "name": "Margherita", "unitPrice": "12", "quantity": 1}],
			"address": {"street": "Istiklal Avenue", "city": "Istanbul", "latitude": 41.0, "longitude": 29.0},
			"paymentMethod": "BARTER"
		}`
		rec := f.do(nethttp.MethodPost, "/api/v1/orders", body)
		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})
}

func TestTransitionOrder(t *testing.T) {
	t.Run("marks the order ready", func(t *testing.T) {
		f := newFixture(t)
		o := pendingOrder(t)
		f.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
		f.orders.On("UpdateIf", mock.Anything, o).Return(nil)

		body := `{"targetStatus": "READY", "actorRole": "operator", "actorId": "op-1"}`
		rec := f.do(nethttp.MethodPost, "/api/v1/orders/"+o.ID().String()+"/status", body)

		assert.Equal(t, nethttp.StatusNoContent, rec.Code, rec.Body.String())
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("indirect target is 400", func(t *testing.T) {
		f := newFixture(t)
		body := `{"targetStatus": "OUT_FOR_DELIVERY", "actorRole": "operator", "actorId": "op-1"}`
		rec := f.do(nethttp.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/status", body)
		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})

	t.Run("forbidden cancel is 409", func(t *testing.T) {
		f := newFixture(t)
		o := pendingOrder(t)
		f.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)

		body := `{"targetStatus": "CANCELLED", "actorRole": "customer", "actorId": "` + kernel.NewUUID().String() + `"}`
		rec := f.do(nethttp.MethodPost, "/api/v1/orders/"+o.ID().String()+"/status", body)
		assert.Equal(t, nethttp.StatusConflict, rec.Code)
	})
}

func TestDispatchOrder(t *testing.T) {
	t.Run("no courier available is 409", func(t *testing.T) {
		f := newFixture(t)
		o := pendingOrder(t)
		operator, err := order.NewActor(order.RoleOperator, "op-1")
		require.NoError(t, err)
		require.NoError(t, o.MarkReady(operator, "", time.Now().UTC()))

		f.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
		f.couriers.On("NearestAvailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]courier.Candidate{}, nil)

		rec := f.do(nethttp.MethodPost, "/api/v1/orders/"+o.ID().String()+"/dispatch", "")
		assert.Equal(t, nethttp.StatusConflict, rec.Code)
	})
}

func TestSettleSession(t *testing.T) {
	t.Run("returns the discrepancy", func(t *testing.T) {
		f := newFixture(t)
		s, err := session.NewDeliverySession(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(50), time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, s.AddCollection(kernel.NewUUID(), "ORD30174512000", decimal.NewFromInt(120), time.Now().UTC()))
		require.NoError(t, s.Close(time.Now().UTC()))

		f.sessions.On("Get", mock.Anything, s.ID()).Return(s, nil)
		f.sessions.On("UpdateIf", mock.Anything, s).Return(nil)

		rec := f.do(nethttp.MethodPost, "/api/v1/sessions/"+s.ID().String()+"/settle", `{"depositedAmount": "60"}`)

		require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
		var body map[string]decimal.Decimal
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body["discrepancy"].Equal(decimal.NewFromInt(10)))
	})

	t.Run("already settled is 409", func(t *testing.T) {
		f := newFixture(t)
		s, err := session.NewDeliverySession(kernel.NewUUID(), kernel.NewUUID(), decimal.Zero, time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, s.Close(time.Now().UTC()))
		_, err = s.Settle(decimal.Zero, time.Now().UTC())
		require.NoError(t, err)

		f.sessions.On("Get", mock.Anything, s.ID()).Return(s, nil)

		rec := f.do(nethttp.MethodPost, "/api/v1/sessions/"+s.ID().String()+"/settle", `{"depositedAmount": "0"}`)
		assert.Equal(t, nethttp.StatusConflict, rec.Code)
	})
}

func TestStreamOrderEvents(t *testing.T) {
	t.Run("unknown order is 404", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.orders.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id))

		rec := f.do(nethttp.MethodGet, "/api/v1/orders/"+id.String()+"/events", "")
		assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	})
}
