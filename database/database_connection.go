package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	AdminsCollection   = "admins"
	ProductsCollection = "products"
	SettingsCollection = "settings"
)

// Connect opens one client for the whole process and pings the primary.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// NewMongoStores wires the three stores to one database.
func NewMongoStores(client *mongo.Client, databaseName string, timeout time.Duration) *Stores {
	db := client.Database(databaseName)
	return &Stores{
		Admins:   &MongoAdminStore{col: db.Collection(AdminsCollection), timeout: timeout},
		Products: &MongoProductStore{col: db.Collection(ProductsCollection), timeout: timeout},
		Settings: &MongoSettingsStore{col: db.Collection(SettingsCollection), timeout: timeout},
	}
}
