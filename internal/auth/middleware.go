package auth

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"animetrack/internal/account"
)

const ctxAccountKey = "account"

// RequireAuth verifies the bearer token and resolves the account it
// references, so a token for a since-deleted account is rejected. The
// account is stored in the request context for downstream handlers.
func RequireAuth(db *sql.DB, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := Parse(secret, strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		acct, err := account.GetByID(db, claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ctxAccountKey, acct)
		c.Next()
	}
}

// RequireAdmin must be chained after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := CurrentAccount(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !acct.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator access required"})
			return
		}
		c.Next()
	}
}

// CurrentAccount returns the account attached by RequireAuth.
func CurrentAccount(c *gin.Context) (account.Account, bool) {
	v, ok := c.Get(ctxAccountKey)
	if !ok {
		return account.Account{}, false
	}
	acct, ok := v.(account.Account)
	return acct, ok
}
