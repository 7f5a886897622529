package dto

import (
	"strings"

	"github.com/princinho/catalogadmin/models"
)

type CreateProductDTO struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Description   string   `json:"description" binding:"max=5000"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	OriginalPrice *float64 `json:"originalPrice" binding:"omitempty,gte=0"`
	Stock         int      `json:"stock" binding:"gte=0"`
	ImageURL      string   `json:"imageUrl" binding:"omitempty,url"`
}

func (d CreateProductDTO) ToModel() *models.Product {
	return &models.Product{
		Name:          strings.TrimSpace(d.Name),
		Description:   d.Description,
		Price:         *d.Price,
		OriginalPrice: d.OriginalPrice,
		Stock:         d.Stock,
		ImageURL:      d.ImageURL,
	}
}

// UpdateProductDTO is a partial update. Only the fields listed here can be
// changed; anything else in the body is ignored.
type UpdateProductDTO struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string  `json:"description" binding:"omitempty,max=5000"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	OriginalPrice *float64 `json:"originalPrice" binding:"omitempty,gte=0"`
	Stock         *int     `json:"stock" binding:"omitempty,gte=0"`
	ImageURL      *string  `json:"imageUrl" binding:"omitempty,url"`
}

func (d UpdateProductDTO) ToUpdate() models.ProductUpdate {
	u := models.ProductUpdate{
		Description:   d.Description,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Stock:         d.Stock,
		ImageURL:      d.ImageURL,
	}
	if d.Name != nil {
		name := strings.TrimSpace(*d.Name)
		u.Name = &name
	}
	return u
}
