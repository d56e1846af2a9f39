// Package mongodb holds the shared pieces of the MongoDB persistence layer:
// connection setup and the GeoJSON document shape. The store implementations
// live in the orderstore, courierstore and sessionstore subpackages.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Connect establishes a client, verifies the server is reachable and returns
// the database handle plus a disconnect function for shutdown.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client.Database(database), client.Disconnect, nil
}
