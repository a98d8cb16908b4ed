package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	maxConnectRetries = 5
	retryDelay        = 5 * time.Second
)

// ConnectWithRetry attempts to connect to MongoDB with retries and returns
// the database handle for injection into the store.
func ConnectWithRetry(cfg Config) (*mongo.Database, error) {
	var (
		client *mongo.Client
		err    error
	)
	for i := 0; i < maxConnectRetries; i++ {
		client, err = connectMongo(cfg.MongoURI)
		if err == nil {
			log.Printf("Successfully connected to MongoDB database: %s", cfg.MongoDBName)
			return client.Database(cfg.MongoDBName), nil
		}
		log.Printf("Failed to connect to MongoDB (attempt %d/%d): %v", i+1, maxConnectRetries, err)
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("failed to connect after %d attempts: %v", maxConnectRetries, err)
}

// connectMongo initializes the MongoDB connection.
func connectMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetRetryWrites(true).
		SetRetryReads(true).
		SetMaxConnIdleTime(60 * time.Minute).
		SetWriteConcern(writeconcern.Majority()).
		SetReadConcern(readconcern.Majority()).
		SetReadPreference(readpref.Primary())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %v", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("error pinging MongoDB: %v", err)
	}
	return client, nil
}

// Disconnect closes the client behind a database handle, for shutdown.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return nil
	}
	return db.Client().Disconnect(ctx)
}
