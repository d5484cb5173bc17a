package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	authorizationType   = "Bearer"
	brandHeader         = "X-Brand-ID"
	brandQuery          = "brand_id"
	ContextActorKey     = "actor"
)

type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*domain.User, error)
}

// AuthMiddleware resolves the bearer token to a user and stores the request's
// domain.Actor in the gin context. The active brand comes from the X-Brand-ID
// header, falling back to the brand_id query parameter.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || fields[0] != authorizationType {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		user, err := tokens.ValidateToken(c.Request.Context(), fields[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		brandID := strings.TrimSpace(c.GetHeader(brandHeader))
		if brandID == "" {
			brandID = strings.TrimSpace(c.Query(brandQuery))
		}

		c.Set(ContextActorKey, domain.Actor{
			UserID:  user.ID,
			BrandID: brandID,
			IsAdmin: user.IsAdmin,
		})

		c.Next()
	}
}

func GetActor(c *gin.Context) (domain.Actor, bool) {
	v, exists := c.Get(ContextActorKey)
	if !exists {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
