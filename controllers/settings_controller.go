package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/catalogadmin/database"
	"github.com/princinho/catalogadmin/dto"
	"github.com/princinho/catalogadmin/models"
	"go.uber.org/zap"
)

// GET /api/settings
//
// Before the first save this answers with empty fields and writes nothing.
func GetSettings(settings database.SettingsStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := settings.Get(c.Request.Context())
		if errors.Is(err, database.ErrNotFound) {
			s, err = models.DefaultSettings(), nil
		}
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// POST /api/settings
func SaveSettings(settings database.SettingsStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SaveSettingsDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			bindError(c, err)
			return
		}

		whatsapp, telegram := body.Normalized()
		s, err := settings.Save(c.Request.Context(), whatsapp, telegram)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "settings saved", "settings": s})
	}
}
