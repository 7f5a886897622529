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

type MongoAdminStore struct {
	col     *mongo.Collection
	timeout time.Duration
}

func (s *MongoAdminStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "singleton", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return unavailable("create admin indexes", err)
	}
	return nil
}

// Create inserts the admin only if no admin document exists. The upsert
// matches on the constant singleton key, so a second call finds the first
// admin and inserts nothing; the unique index on singleton turns a racing
// insert into a duplicate key error.
func (s *MongoAdminStore) Create(ctx context.Context, admin *models.Admin) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := time.Now().UTC()
	admin.ID = bson.NewObjectID()
	admin.Singleton = models.AdminSingletonKey
	admin.CreatedAt = now
	admin.UpdatedAt = now

	filter := bson.M{"singleton": models.AdminSingletonKey}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":          admin.ID,
			"username":     admin.Username,
			"passwordHash": admin.PasswordHash,
			"createdAt":    now,
			"updatedAt":    now,
		},
	}

	res, err := s.col.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		if IsDuplicateKey(err) {
			return ErrRegistrationClosed
		}
		return unavailable("create admin", err)
	}
	if res.UpsertedCount != 1 {
		return ErrRegistrationClosed
	}
	return nil
}

func (s *MongoAdminStore) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *MongoAdminStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Admin, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoAdminStore) findOne(ctx context.Context, filter bson.M) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var admin models.Admin
	if err := s.col.FindOne(ctx, filter).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, unavailable("find admin", err)
	}
	return &admin, nil
}

func (s *MongoAdminStore) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"passwordHash": passwordHash,
			"updatedAt":    time.Now().UTC(),
		},
	})
	if err != nil {
		return unavailable("update admin password", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
