package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/catalogadmin/utils"
)

type adminKey struct{}

// WithAdmin attaches verified claims to ctx.
func WithAdmin(ctx context.Context, claims *utils.Claims) context.Context {
	return context.WithValue(ctx, adminKey{}, claims)
}

// AdminFromContext returns the claims stored by WithAdmin, if any.
func AdminFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(adminKey{}).(*utils.Claims)
	return claims, ok && claims != nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// AuthMiddleware guards admin routes. A request without a bearer token gets
// 401; one whose token fails verification gets 403.
func AuthMiddleware(verifier utils.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("adminID", claims.Subject)
		c.Set("username", claims.Username)
		c.Request = c.Request.WithContext(WithAdmin(c.Request.Context(), claims))
		c.Next()
	}
}
