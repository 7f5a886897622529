package database

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/princinho/catalogadmin/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoProductStore struct {
	col     *mongo.Collection
	timeout time.Duration
}

func (s *MongoProductStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return unavailable("create product indexes", err)
	}
	return nil
}

// List returns one page of products, newest first, and the total count.
func (s *MongoProductStore) List(ctx context.Context, page, limit int) ([]models.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, limit = max(page, 1), max(limit, 1)
	skip := int64(page-1) * int64(limit)
	if skip < 0 || skip/int64(limit) != int64(page-1) {
		skip = math.MaxInt64
	}
	opts := options.Find().
		SetSkip(skip).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, unavailable("list products", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, unavailable("decode products", err)
	}

	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, unavailable("count products", err)
	}
	return products, total, nil
}

func (s *MongoProductStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var p models.Product
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, unavailable("find product", err)
	}
	return &p, nil
}

func (s *MongoProductStore) Insert(ctx context.Context, p *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := time.Now().UTC()
	p.ID = bson.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.col.InsertOne(ctx, p); err != nil {
		return unavailable("insert product", err)
	}
	return nil
}

// Update sets only the fields present in u and returns the stored result.
func (s *MongoProductStore) Update(ctx context.Context, id bson.ObjectID, u models.ProductUpdate) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	set := u.SetDoc()
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Product
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, unavailable("update product", err)
	}
	return &p, nil
}

func (s *MongoProductStore) Delete(ctx context.Context, id bson.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return unavailable("delete product", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
