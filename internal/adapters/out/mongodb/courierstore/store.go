// Package courierstore implements ports.CourierStore on MongoDB. The
// availability flag is flipped with conditional single-document updates, so
// claim races between concurrent dispatches resolve inside the database.
package courierstore

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/adapters/out/mongodb"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "couriers"

var _ ports.CourierStore = (*Store)(nil)

// courierDocument is the persisted shape of a courier. The location is
// GeoJSON so the 2dsphere index can serve nearest-available queries.
type courierDocument struct {
	ID        string          `bson:"_id"`
	Name      string          `bson:"name"`
	Phone     string          `bson:"phone,omitempty"`
	Vehicle   string          `bson:"vehicle,omitempty"`
	Available bool            `bson:"available"`
	Location  mongodb.GeoJSON `bson:"location"`
}

// candidateDocument is the $geoNear projection: the courier snapshot plus
// the computed distance.
type candidateDocument struct {
	ID             string  `bson:"_id"`
	Name           string  `bson:"name"`
	Phone          string  `bson:"phone"`
	Vehicle        string  `bson:"vehicle"`
	DistanceMeters float64 `bson:"distanceMeters"`
}

// Store is the MongoDB-backed courier store and geo index.
type Store struct {
	collection *mongo.Collection
}

// NewStore creates a Store over the given database.
func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(collectionName)}
}

// Add persists a new courier.
func (s *Store) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, err := s.collection.InsertOne(ctx, toDocument(aggregate)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewConflictErrorWithCause("courier", aggregate.ID(), err)
		}
		return fmt.Errorf("insert courier %s: %w", aggregate.ID(), err)
	}
	return nil
}

// Get retrieves a courier by its unique identifier.
func (s *Store) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	var doc courierDocument
	if err := s.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewObjectNotFoundError("courier", id)
		}
		return nil, fmt.Errorf("find courier %s: %w", id, err)
	}
	return toDomain(doc)
}

// UpdateLocation persists the courier's position and asserted availability.
// The courier's own report always wins, so the write is unconditional.
func (s *Store) UpdateLocation(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": aggregate.ID().String()},
		bson.M{"$set": bson.M{
			"location":  mongodb.NewGeoJSON(aggregate.Location()),
			"available": aggregate.IsAvailable(),
		}})
	if err != nil {
		return fmt.Errorf("update courier location %s: %w", aggregate.ID(), err)
	}
	if result.MatchedCount == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID())
	}
	return nil
}

// NearestAvailable returns available couriers within radiusMeters of the
// point, nearest first, at most limit of them.
func (s *Store) NearestAvailable(ctx context.Context, point kernel.GeoPoint, radiusMeters float64, limit int) ([]courier.Candidate, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$geoNear", Value: bson.D{
			{Key: "near", Value: mongodb.NewGeoJSON(point)},
			{Key: "distanceField", Value: "distanceMeters"},
			{Key: "maxDistance", Value: radiusMeters},
			{Key: "query", Value: bson.M{"available": true}},
			{Key: "spherical", Value: true},
		}}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("query nearest available couriers: %w", err)
	}
	defer cursor.Close(ctx)

	var candidates []courier.Candidate
	for cursor.Next(ctx) {
		var doc candidateDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode courier candidate: %w", err)
		}
		courierID, err := kernel.UUIDFromString(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("courier %s: %w", doc.ID, err)
		}
		candidates = append(candidates, courier.Candidate{
			CourierID:      courierID,
			Name:           doc.Name,
			Phone:          doc.Phone,
			Vehicle:        doc.Vehicle,
			DistanceMeters: doc.DistanceMeters,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("query nearest available couriers: %w", err)
	}
	return candidates, nil
}

// Claim atomically flips availability from true to false. A matched count of
// zero on an existing courier means a concurrent dispatch won the claim.
func (s *Store) Claim(ctx context.Context, id kernel.UUID) (bool, error) {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id.String(), "available": true},
		bson.M{"$set": bson.M{"available": false}})
	if err != nil {
		return false, fmt.Errorf("claim courier %s: %w", id, err)
	}
	if result.MatchedCount == 1 {
		return true, nil
	}

	count, err := s.collection.CountDocuments(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, fmt.Errorf("claim courier %s: %w", id, err)
	}
	if count == 0 {
		return false, errs.NewObjectNotFoundError("courier", id)
	}
	return false, nil
}

// Release restores availability after a failed dispatch.
func (s *Store) Release(ctx context.Context, id kernel.UUID) error {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"available": true}})
	if err != nil {
		return fmt.Errorf("release courier %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return errs.NewObjectNotFoundError("courier", id)
	}
	return nil
}

func toDocument(c *courier.Courier) courierDocument {
	return courierDocument{
		ID:        c.ID().String(),
		Name:      c.Name(),
		Phone:     c.Phone(),
		Vehicle:   c.Vehicle(),
		Available: c.IsAvailable(),
		Location:  mongodb.NewGeoJSON(c.Location()),
	}
}

func toDomain(doc courierDocument) (*courier.Courier, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("courier %s: %w", doc.ID, err)
	}
	location, err := doc.Location.Point()
	if err != nil {
		return nil, fmt.Errorf("courier %s: %w", doc.ID, err)
	}
	return courier.RestoreCourier(id, doc.Name, doc.Phone, doc.Vehicle, doc.Available, location)
}
