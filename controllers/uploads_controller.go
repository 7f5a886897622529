package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/catalogadmin/utils"
	"go.uber.org/zap"
)

// POST /api/uploads (multipart, field "image")
func UploadImage(store utils.ImageStore, v *utils.FileValidator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			respondError(c, log, utils.ErrUploadsDisabled)
			return
		}

		fh, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
			return
		}

		contentType, err := v.ValidateFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		img, err := utils.UploadProductImage(c.Request.Context(), store, fh, contentType)
		if err != nil {
			respondError(c, log, err)
			return
		}

		log.Info("image uploaded",
			zap.String("object", img.ObjectName),
			zap.Int64("size", img.SizeBytes),
		)
		c.JSON(http.StatusCreated, img)
	}
}
