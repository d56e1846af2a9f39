// Package sessionstore implements ports.SessionStore on MongoDB. The
// one-open-session-per-courier invariant is enforced by a partial unique
// index over open sessions, not by application logic.
package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "delivery_sessions"

var _ ports.SessionStore = (*Store)(nil)

// sessionDocument is the persisted shape of a delivery session. The open
// flag duplicates endTime == nil so the partial unique index has a stable
// boolean to filter on.
type sessionDocument struct {
	ID           string               `bson:"_id"`
	CourierID    string               `bson:"courierId"`
	OpeningFloat string               `bson:"openingFloat"`
	StartTime    time.Time            `bson:"startTime"`
	EndTime      *time.Time           `bson:"endTime,omitempty"`
	Open         bool                 `bson:"open"`
	Collections  []collectionDocument `bson:"collections,omitempty"`
	Settlement   settlementDocument   `bson:"settlement"`
	Version      int64                `bson:"version"`
}

type collectionDocument struct {
	OrderID     string    `bson:"orderId"`
	OrderNumber string    `bson:"orderNumber"`
	Amount      string    `bson:"amount"`
	CollectedAt time.Time `bson:"collectedAt"`
}

type settlementDocument struct {
	IsSettled       bool       `bson:"isSettled"`
	DepositedAmount string     `bson:"depositedAmount"`
	Discrepancy     string     `bson:"discrepancy"`
	SettledAt       *time.Time `bson:"settledAt,omitempty"`
}

// Store is the MongoDB-backed delivery session store.
type Store struct {
	collection *mongo.Collection
}

// NewStore creates a Store over the given database.
func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(collectionName)}
}

// Add persists a new session. The partial unique index rejects a second open
// session for the same courier; that surfaces as a conflict.
func (s *Store) Add(ctx context.Context, aggregate *session.DeliverySession) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, err := s.collection.InsertOne(ctx, toDocument(aggregate)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewConflictErrorWithCause("deliverySession", aggregate.CourierID(), err)
		}
		return fmt.Errorf("insert delivery session %s: %w", aggregate.ID(), err)
	}
	return nil
}

// Get retrieves a session by its unique identifier.
func (s *Store) Get(ctx context.Context, id kernel.UUID) (*session.DeliverySession, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()}, id.String())
}

// GetOpenByCourier retrieves the courier's open session.
func (s *Store) GetOpenByCourier(ctx context.Context, courierID kernel.UUID) (*session.DeliverySession, error) {
	return s.findOne(ctx, bson.M{"courierId": courierID.String(), "open": true}, courierID.String())
}

// UpdateIf replaces the stored document only while its version still matches
// the version the aggregate was read at, and bumps the version in the same
// write.
func (s *Store) UpdateIf(ctx context.Context, aggregate *session.DeliverySession) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc := toDocument(aggregate)
	doc.Version = aggregate.Version() + 1

	result, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": doc.ID, "version": aggregate.Version()}, doc)
	if err != nil {
		return fmt.Errorf("update delivery session %s: %w", doc.ID, err)
	}
	if result.MatchedCount == 0 {
		return errs.NewConflictError("deliverySession", doc.ID)
	}
	return nil
}

func (s *Store) findOne(ctx context.Context, filter bson.M, id string) (*session.DeliverySession, error) {
	var doc sessionDocument
	if err := s.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewObjectNotFoundError("deliverySession", id)
		}
		return nil, fmt.Errorf("find delivery session %s: %w", id, err)
	}
	return toDomain(doc)
}

func toDocument(s *session.DeliverySession) sessionDocument {
	collections := make([]collectionDocument, 0, len(s.Collections()))
	for _, c := range s.Collections() {
		collections = append(collections, collectionDocument{
			OrderID:     c.OrderID.String(),
			OrderNumber: c.OrderNumber,
			Amount:      c.Amount.String(),
			CollectedAt: c.CollectedAt,
		})
	}

	settlement := s.Settlement()
	return sessionDocument{
		ID:           s.ID().String(),
		CourierID:    s.CourierID().String(),
		OpeningFloat: s.OpeningFloat().String(),
		StartTime:    s.StartTime(),
		EndTime:      s.EndTime(),
		Open:         s.IsOpen(),
		Collections:  collections,
		Settlement: settlementDocument{
			IsSettled:       settlement.IsSettled(),
			DepositedAmount: settlement.DepositedAmount().String(),
			Discrepancy:     settlement.Discrepancy().String(),
			SettledAt:       settlement.SettledAt(),
		},
		Version: s.Version(),
	}
}

func toDomain(doc sessionDocument) (*session.DeliverySession, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("delivery session %s: %w", doc.ID, err)
	}
	courierID, err := kernel.UUIDFromString(doc.CourierID)
	if err != nil {
		return nil, fmt.Errorf("delivery session %s: %w", doc.ID, err)
	}
	openingFloat, err := decimal.NewFromString(doc.OpeningFloat)
	if err != nil {
		return nil, fmt.Errorf("delivery session %s: %w", doc.ID, err)
	}

	collections := make([]session.Collection, 0, len(doc.Collections))
	for _, c := range doc.Collections {
		orderID, err := kernel.UUIDFromString(c.OrderID)
		if err != nil {
			return nil, fmt.Errorf("delivery session %s: %w", doc.ID, err)
		}
		amount, err := decimal.NewFromString(c.Amount)
		if err != nil {
			return nil, fmt.Errorf("delivery session %s: %w", doc.ID, err)
		}
		collections = append(collections, session.Collection{
			OrderID:     orderID,
			OrderNumber: c.OrderNumber,
			Amount:      amount,
			CollectedAt: c.CollectedAt,
		})
	}

	depositedAmount, err := decimal.NewFromString(doc.Settlement.DepositedAmount)
	if err != nil {
		return nil, fmt.Errorf("delivery session %s: %w", doc.ID, err)
	}
	discrepancy, err := decimal.NewFromString(doc.Settlement.Discrepancy)
	if err != nil {
		return nil, fmt.Errorf("delivery session %s: %w", doc.ID, err)
	}

	return session.RestoreDeliverySession(
		id, courierID, openingFloat, doc.StartTime, doc.EndTime, collections,
		doc.Settlement.IsSettled, depositedAmount, discrepancy,
		doc.Settlement.SettledAt, doc.Version)
}
