// Package dbmongo holds the GridFS-backed media blob store. Only file
// reference URLs are persisted relationally; the bytes live here.
package dbmongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/config"
)

const connectTimeout = 10 * time.Second

// MongoClient bundles the driver handle with the GridFS bucket the media
// pipeline uploads into and the media server streams from.
type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
	GridFS   *gridfs.Bucket
}

// NewMongoConnection dials Mongo, verifies it with a ping and opens the
// configured media bucket.
func NewMongoConnection(c *config.Config) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.GetMongoURI()))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	database := client.Database(c.MongoDB.Database)
	bucket, err := gridfs.NewBucket(database,
		options.GridFSBucket().SetName(c.MongoDB.MediaBucket))
	if err != nil {
		return nil, fmt.Errorf("open media bucket %q: %w", c.MongoDB.MediaBucket, err)
	}

	return &MongoClient{
		Client:   client,
		Database: database,
		GridFS:   bucket,
	}, nil
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}
