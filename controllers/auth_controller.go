package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/catalogadmin/auth"
	"github.com/princinho/catalogadmin/dto"
	"github.com/princinho/catalogadmin/models"
	"go.uber.org/zap"
)

// Authenticator is the part of auth.Service the handlers use.
type Authenticator interface {
	Register(ctx context.Context, username, password string) (*models.Admin, error)
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
	ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error
}

// POST /api/auth/register
func Register(svc Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RegisterDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			bindError(c, err)
			return
		}

		if _, err := svc.Register(c.Request.Context(), body.Username, body.Password); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "admin registered"})
	}
}

// POST /api/auth/login
func Login(svc Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			bindError(c, err)
			return
		}

		res, err := svc.Login(c.Request.Context(), body.Username, body.Password)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// POST /api/auth/password
func ChangePassword(svc Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ChangePasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			bindError(c, err)
			return
		}

		adminID := c.GetString("adminID")
		if adminID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		err := svc.ChangePassword(c.Request.Context(), adminID, body.CurrentPassword, body.NewPassword)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
