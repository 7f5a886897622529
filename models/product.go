package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Product struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string        `bson:"name" json:"name"`
	ImageURL      string        `bson:"imageUrl" json:"imageUrl"`
	Price         float64       `bson:"price" json:"price"`
	OriginalPrice *float64      `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Stock         int           `bson:"stock" json:"stock"`
	Description   string        `bson:"description" json:"description"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ProductUpdate holds the fields an admin may change. Nil fields are left
// untouched.
type ProductUpdate struct {
	Name          *string
	ImageURL      *string
	Price         *float64
	OriginalPrice *float64
	Stock         *int
	Description   *string
}

// Empty reports whether the update changes nothing.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.ImageURL == nil && u.Price == nil &&
		u.OriginalPrice == nil && u.Stock == nil && u.Description == nil
}

// SetDoc builds the $set document for the non-nil fields.
func (u ProductUpdate) SetDoc() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.ImageURL != nil {
		set["imageUrl"] = *u.ImageURL
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.OriginalPrice != nil {
		set["originalPrice"] = *u.OriginalPrice
	}
	if u.Stock != nil {
		set["stock"] = *u.Stock
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	return set
}

// Apply copies the non-nil fields onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.OriginalPrice != nil {
		v := *u.OriginalPrice
		p.OriginalPrice = &v
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
}
