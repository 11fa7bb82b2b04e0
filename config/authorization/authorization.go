package authorization

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"NeuroScanAI/config/jwt"
	"NeuroScanAI/models"
	"NeuroScanAI/services"
	"NeuroScanAI/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const identityKey = "identity"

type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, id string) (*models.Identity, error)
}

/*
* Read the bearer token
* Verify signature and expiry
* Load the user the token was issued to
* Put the identity in the context
 */
func JWTAuth(secret string, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := ""
		if parts := strings.Fields(header); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			raw = parts[1]
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": util.NO_TOKEN_PROVIDED})
			return
		}

		claims, err := jwt.ParseJWT(raw, secret)
		if err != nil {
			log.Println("Authentication error:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": util.TOKEN_FAILED})
			return
		}

		identity, err := resolver.ResolveIdentity(c.Request.Context(), claims.ID)
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			log.Println("Error from ResolveIdentity:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": util.TOKEN_USER_NOT_FOUND})
			return
		}
		if err != nil {
			log.WithError(err).Error("Identity lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": util.INTERNAL_SERVER_ERROR})
			return
		}
		c.Set(identityKey, *identity)
		c.Next()
	}
}

func GetIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}
