package database

import (
	"context"
	"errors"
	"time"

	"github.com/princinho/catalogadmin/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoSettingsStore struct {
	col     *mongo.Collection
	timeout time.Duration
}

func (s *MongoSettingsStore) Get(ctx context.Context) (*models.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var settings models.Settings
	if err := s.col.FindOne(ctx, bson.M{"_id": models.SettingsID}).Decode(&settings); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, unavailable("find settings", err)
	}
	return &settings, nil
}

// Save replaces both contact fields in one atomic upsert on the fixed id.
func (s *MongoSettingsStore) Save(ctx context.Context, whatsappNumber, telegramUsername string) (*models.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"whatsappNumber":   whatsappNumber,
			"telegramUsername": telegramUsername,
			"updatedAt":        time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var settings models.Settings
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": models.SettingsID}, update, opts).Decode(&settings)
	if err != nil {
		return nil, unavailable("save settings", err)
	}
	return &settings, nil
}
