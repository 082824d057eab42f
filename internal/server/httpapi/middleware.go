package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skillgraph/skillgraph/internal/common"
	"github.com/skillgraph/skillgraph/internal/server/auth"
)

// authRequired verifies the bearer token and requires its subject to match
// the :userID route parameter, so a valid token for one account cannot read
// or write another.
func authRequired(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": common.ErrUnauthorized.Error()})
			return
		}

		userID, err := auth.GetUserIDFromToken(token, secretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": common.ErrInvalidToken.Error()})
			return
		}

		if userID != c.Param("userID") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": common.ErrUnauthorized.Error()})
			return
		}

		c.Next()
	}
}
