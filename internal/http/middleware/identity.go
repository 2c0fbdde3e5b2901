package middleware

import (
	"taskmanager/internal/identity"

	"github.com/gin-gonic/gin"
)

const IdentityKey = "identity"

// Identity stores the proxy-asserted identity on the request context.
// Absence of identity is fine; handlers render a placeholder.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(IdentityKey, identity.FromRequest(c.Request))
		c.Next()
	}
}

// CurrentIdentity returns the identity set by the Identity middleware.
func CurrentIdentity(c *gin.Context) identity.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(identity.Identity); ok {
			return id
		}
	}
	return identity.Identity{}
}
