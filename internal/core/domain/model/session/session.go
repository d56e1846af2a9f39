// Package session contains the DeliverySession aggregate: a courier's single
// continuous work period, bounding which cash-on-delivery collections are
// grouped together for settlement.
//
// At most one session per courier may be open at a time (endTime == nil);
// the store enforces this with a partial unique index. A session accumulates
// COD collections while open, freezes on close, and becomes fully immutable
// once settled.
package session

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrSessionIsNotConstructed is returned when using an improperly initialized DeliverySession.
	ErrSessionIsNotConstructed = errors.New("DeliverySession must be created via NewDeliverySession constructor")

	// ErrSessionClosed is returned when adding a collection to a closed session.
	ErrSessionClosed = errors.New("delivery session is closed")

	// ErrSessionNotClosed is returned when settling a session that is still open.
	ErrSessionNotClosed = errors.New("delivery session is still open")

	// ErrAlreadySettled is the idempotency guard on settlement: a settled
	// session is immutable and a second settlement attempt is rejected
	// without touching the recorded deposit.
	ErrAlreadySettled = errors.New("delivery session is already settled")
)

// Collection is one cash-on-delivery amount collected during a session.
// The order number is duplicated alongside the id so settlement reports do
// not need to join back to the orders collection.
type Collection struct {
	OrderID     kernel.UUID
	OrderNumber string
	Amount      decimal.Decimal
	CollectedAt time.Time
}

// Settlement is the admin-confirmed reconciliation of a closed session.
// Discrepancies are recorded, never auto-corrected; chasing them is a human
// process outside this engine.
type Settlement struct {
	isSettled       bool
	depositedAmount decimal.Decimal
	discrepancy     decimal.Decimal
	settledAt       *time.Time
}

// IsSettled reports whether the session has been reconciled.
func (s Settlement) IsSettled() bool {
	return s.isSettled
}

// DepositedAmount returns the admin-confirmed deposit.
func (s Settlement) DepositedAmount() decimal.Decimal {
	return s.depositedAmount
}

// Discrepancy returns totalToDeposit − depositedAmount at settlement time.
func (s Settlement) Discrepancy() decimal.Decimal {
	return s.discrepancy
}

// SettledAt returns when the settlement was recorded, nil while unsettled.
func (s Settlement) SettledAt() *time.Time {
	return s.settledAt
}

// DeliverySession is the aggregate root for per-courier cash bookkeeping.
//
// Invariants:
//   - totalToDeposit == totalCollected − openingFloat after every mutation
//   - collections are append-only and only while the session is open
//   - settlement requires endTime != nil and settlement.isSettled == false
//   - a settled session is immutable
type DeliverySession struct {
	id             kernel.UUID
	courierID      kernel.UUID
	openingFloat   decimal.Decimal
	startTime      time.Time
	endTime        *time.Time
	collections    []Collection
	totalCollected decimal.Decimal
	settlement     Settlement
	version        int64
	guard          guard.ConstructorGuard
}

// NewDeliverySession opens a session for a courier with the given opening
// cash float.
func NewDeliverySession(
	id kernel.UUID,
	courierID kernel.UUID,
	openingFloat decimal.Decimal,
	startTime time.Time,
) (*DeliverySession, error) {
	if err := errors.Join(id.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}
	if openingFloat.IsNegative() {
		return nil, errs.NewValueIsInvalidError("openingFloat")
	}
	if startTime.IsZero() {
		return nil, errs.NewValueIsRequiredError("startTime")
	}

	return &DeliverySession{
		id:             id,
		courierID:      courierID,
		openingFloat:   openingFloat,
		startTime:      startTime,
		totalCollected: decimal.Zero,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliverySession reconstructs a session from persistence.
func RestoreDeliverySession(
	id kernel.UUID,
	courierID kernel.UUID,
	openingFloat decimal.Decimal,
	startTime time.Time,
	endTime *time.Time,
	collections []Collection,
	settled bool,
	depositedAmount, discrepancy decimal.Decimal,
	settledAt *time.Time,
	version int64,
) (*DeliverySession, error) {
	s, err := NewDeliverySession(id, courierID, openingFloat, startTime)
	if err != nil {
		return nil, err
	}

	s.endTime = endTime
	s.collections = append([]Collection(nil), collections...)
	for _, c := range collections {
		s.totalCollected = s.totalCollected.Add(c.Amount)
	}
	s.settlement = Settlement{
		isSettled:       settled,
		depositedAmount: depositedAmount,
		discrepancy:     discrepancy,
		settledAt:       settledAt,
	}
	s.version = version
	return s, nil
}

// Validate ensures the session was created through a factory method.
func (s *DeliverySession) Validate() error {
	if s == nil || s.guard.Validate(ErrSessionIsNotConstructed) != nil {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// ID returns the session's unique identifier.
func (s *DeliverySession) ID() kernel.UUID {
	return s.id
}

// CourierID returns the courier this session belongs to.
func (s *DeliverySession) CourierID() kernel.UUID {
	return s.courierID
}

// OpeningFloat returns the cash the courier started the session with.
func (s *DeliverySession) OpeningFloat() decimal.Decimal {
	return s.openingFloat
}

// StartTime returns when the courier started work.
func (s *DeliverySession) StartTime() time.Time {
	return s.startTime
}

// EndTime returns when the courier ended work, nil while open.
func (s *DeliverySession) EndTime() *time.Time {
	return s.endTime
}

// IsOpen reports whether the session still accepts collections.
func (s *DeliverySession) IsOpen() bool {
	return s.endTime == nil
}

// Collections returns a copy of the ordered collection log.
func (s *DeliverySession) Collections() []Collection {
	return append([]Collection(nil), s.collections...)
}

// TotalCollected returns the sum of all collected amounts.
func (s *DeliverySession) TotalCollected() decimal.Decimal {
	return s.totalCollected
}

// TotalToDeposit returns totalCollected − openingFloat.
func (s *DeliverySession) TotalToDeposit() decimal.Decimal {
	return s.totalCollected.Sub(s.openingFloat)
}

// Settlement returns the settlement sub-record.
func (s *DeliverySession) Settlement() Settlement {
	return s.settlement
}

// Version returns the optimistic-concurrency version read from the store.
func (s *DeliverySession) Version() int64 {
	return s.version
}

// AddCollection appends one COD collection and recomputes the running
// totals. Fails with ErrSessionClosed once the session has ended.
func (s *DeliverySession) AddCollection(orderID kernel.UUID, orderNumber string, amount decimal.Decimal, collectedAt time.Time) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.IsOpen() {
		return ErrSessionClosed
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("amount")
	}

	s.collections = append(s.collections, Collection{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Amount:      amount,
		CollectedAt: collectedAt,
	})
	s.totalCollected = s.totalCollected.Add(amount)
	return nil
}

// Close ends the session. Further collections are rejected; settlement
// becomes possible. Closing twice fails with ErrSessionClosed.
func (s *DeliverySession) Close(at time.Time) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.IsOpen() {
		return ErrSessionClosed
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("endTime")
	}

	end := at
	s.endTime = &end
	return nil
}

// Settle records the admin-confirmed deposit and computes the discrepancy
// (totalToDeposit − depositedAmount). Requires a closed, unsettled session;
// settlement is terminal.
func (s *DeliverySession) Settle(depositedAmount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	if err := s.Validate(); err != nil {
		return decimal.Zero, err
	}
	if s.settlement.isSettled {
		return decimal.Zero, ErrAlreadySettled
	}
	if s.IsOpen() {
		return decimal.Zero, ErrSessionNotClosed
	}
	if depositedAmount.IsNegative() {
		return decimal.Zero, errs.NewValueIsInvalidError("depositedAmount")
	}

	settledAt := at
	discrepancy := s.TotalToDeposit().Sub(depositedAmount)
	s.settlement = Settlement{
		isSettled:       true,
		depositedAmount: depositedAmount,
		discrepancy:     discrepancy,
		settledAt:       &settledAt,
	}
	return discrepancy, nil
}
