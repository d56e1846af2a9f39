package sessionstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the delivery session indexes. The partial unique
// index over open sessions is the enforcement point for
// one-open-session-per-courier; a second insert fails with a duplicate key.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "courierId", Value: 1}},
			Options: options.Index().
				SetName("open_session_per_courier_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"open": true}),
		},
		{
			Keys:    bson.D{{Key: "courierId", Value: 1}, {Key: "startTime", Value: -1}},
			Options: options.Index().SetName("courier_history_index"),
		},
	})
	if err != nil {
		return fmt.Errorf("create delivery session indexes: %w", err)
	}
	return nil
}
