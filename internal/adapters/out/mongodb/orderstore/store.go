// Package orderstore implements ports.OrderStore on MongoDB. Writes are
// per-document only: Add relies on the unique order number index and UpdateIf
// on a version-conditioned replace. Nothing here spans two documents.
package orderstore

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "orders"

var _ ports.OrderStore = (*Store)(nil)

// Store is the MongoDB-backed order store.
type Store struct {
	collection *mongo.Collection
}

// NewStore creates a Store over the given database.
func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(collectionName)}
}

// Add persists a new order. A duplicate order number surfaces as a conflict.
func (s *Store) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, err := s.collection.InsertOne(ctx, toDocument(aggregate)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewConflictErrorWithCause("order", aggregate.Number(), err)
		}
		return fmt.Errorf("insert order %s: %w", aggregate.ID(), err)
	}
	return nil
}

// Get retrieves an order by its unique identifier.
func (s *Store) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()}, id.String())
}

// GetByNumber retrieves an order by its human-readable number.
func (s *Store) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	return s.findOne(ctx, bson.M{"number": number}, number)
}

// UpdateIf replaces the stored document only while its version still matches
// the version the aggregate was read at, and bumps the version in the same
// write. A lost race surfaces as a conflict; the caller re-reads and retries.
func (s *Store) UpdateIf(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc := toDocument(aggregate)
	doc.Version = aggregate.Version() + 1

	result, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": doc.ID, "version": aggregate.Version()}, doc)
	if err != nil {
		return fmt.Errorf("update order %s: %w", doc.ID, err)
	}
	if result.MatchedCount == 0 {
		return errs.NewConflictError("order", doc.ID)
	}
	return nil
}

// FindByStatus retrieves up to limit orders in the given status, oldest
// placement first.
func (s *Store) FindByStatus(ctx context.Context, status order.Status, limit int) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	cursor, err := s.collection.Find(ctx,
		bson.M{"status": status.String()},
		options.Find().
			SetSort(bson.D{{Key: "statusHistory.0.timestamp", Value: 1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("find orders by status %s: %w", status, err)
	}
	defer cursor.Close(ctx)

	var orders []*order.Order
	for cursor.Next(ctx) {
		var doc orderDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		restored, err := toDomain(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, restored)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find orders by status %s: %w", status, err)
	}
	return orders, nil
}

// CountByStatus returns the number of orders in the given status.
func (s *Store) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	if err := status.Validate(); err != nil {
		return 0, err
	}

	count, err := s.collection.CountDocuments(ctx, bson.M{"status": status.String()})
	if err != nil {
		return 0, fmt.Errorf("count orders by status %s: %w", status, err)
	}
	return count, nil
}

func (s *Store) findOne(ctx context.Context, filter bson.M, id string) (*order.Order, error) {
	var doc orderDocument
	if err := s.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return toDomain(doc)
}
