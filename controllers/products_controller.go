package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/catalogadmin/database"
	"github.com/princinho/catalogadmin/dto"
	"github.com/princinho/catalogadmin/utils"
	"go.uber.org/zap"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// GET /api/products?page=&limit=
func GetProducts(products database.ProductStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := utils.ClampPage(
			utils.ParseIntDefault(c.Query("page"), 1),
			utils.ParseIntDefault(c.Query("limit"), defaultPageLimit),
			defaultPageLimit, maxPageLimit,
		)

		items, total, err := products.List(c.Request.Context(), page, limit)
		if err != nil {
			respondError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

// GET /api/products/:id
func GetProduct(products database.ProductStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseObjectID(c, "id")
		if err != nil {
			respondError(c, log, err)
			return
		}

		p, err := products.FindByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// POST /api/products
func AddProduct(products database.ProductStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			bindError(c, err)
			return
		}

		product := body.ToModel()
		if product.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		if err := products.Insert(c.Request.Context(), product); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "product created", "product": product})
	}
}

// PUT /api/products/:id
//
// A replaced imageUrl that points into the image store is deleted after the
// update is stored.
func UpdateProduct(products database.ProductStore, images utils.ImageStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseObjectID(c, "id")
		if err != nil {
			respondError(c, log, err)
			return
		}

		var body dto.UpdateProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			bindError(c, err)
			return
		}

		update := body.ToUpdate()
		if update.Empty() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		if update.Name != nil && *update.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}

		ctx := c.Request.Context()
		current, err := products.FindByID(ctx, id)
		if err != nil {
			respondError(c, log, err)
			return
		}

		product, err := products.Update(ctx, id, update)
		if err != nil {
			respondError(c, log, err)
			return
		}

		if update.ImageURL != nil && current.ImageURL != product.ImageURL {
			removeImage(c, images, log, current.ImageURL)
		}
		c.JSON(http.StatusOK, gin.H{"message": "product updated", "product": product})
	}
}

// DELETE /api/products/:id
func DeleteProduct(products database.ProductStore, images utils.ImageStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseObjectID(c, "id")
		if err != nil {
			respondError(c, log, err)
			return
		}

		ctx := c.Request.Context()
		product, err := products.FindByID(ctx, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if err := products.Delete(ctx, id); err != nil {
			respondError(c, log, err)
			return
		}

		removeImage(c, images, log, product.ImageURL)
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}

// removeImage logs and drops delete failures.
func removeImage(c *gin.Context, images utils.ImageStore, log *zap.Logger, publicURL string) {
	if err := utils.RemoveProductImage(c.Request.Context(), images, publicURL); err != nil {
		log.Warn("product image not deleted",
			zap.String("url", publicURL),
			zap.Error(err),
		)
	}
}
