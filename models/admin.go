package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AdminSingletonKey is stored on every admin document. A unique index on it
// keeps the collection at one administrator.
const AdminSingletonKey = "admin"

type Admin struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Singleton    string        `bson:"singleton" json:"-"`
	Username     string        `bson:"username" json:"username"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never expose
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}
