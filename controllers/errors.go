package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/catalogadmin/auth"
	"github.com/princinho/catalogadmin/database"
	"github.com/princinho/catalogadmin/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

var errInvalidID = errors.New("invalid id")

// respondError writes the JSON error for err. Anything not mapped below is
// logged and answered with a bare 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, errInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrEmptyUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrRegistrationClosed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "an admin account already exists"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, utils.ErrInvalidToken):
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, utils.ErrUploadsDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func parseObjectID(c *gin.Context, param string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(c.Param(param))
	if err != nil {
		return bson.ObjectID{}, errInvalidID
	}
	return id, nil
}
