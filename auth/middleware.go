package auth

import (
	apiError "memoras-backend/internal/errors"
	"memoras-backend/redis"
	"strings"

	"github.com/gin-gonic/gin"
)

// GuestSessionHeader carries the opaque token of an anonymous caller.
const GuestSessionHeader = "X-Guest-Session"

const identityKey = "identity"

// Identity describes the caller. Either field may be empty; handlers that
// need a definite user go through RequireAuth instead of reading this raw.
type Identity struct {
	UserID       string
	GuestSession string
}

// IsAnonymous reports whether the caller presented no usable identity at all.
func (i Identity) IsAnonymous() bool {
	return i.UserID == "" && i.GuestSession == ""
}

// IdentityFrom returns the identity set by OptionalIdentity or RequireAuth.
func IdentityFrom(c *gin.Context) Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(Identity); ok {
			return ident
		}
	}
	return Identity{}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// resolveUserID verifies a bearer token and, when redis is up, requires the
// session to still be on the allow-list. Returns "" for any failure.
func resolveUserID(c *gin.Context, token string) string {
	parsed, err := VerifyJWT(token)
	if err != nil {
		return ""
	}
	userID, err := UserIDFromToken(parsed)
	if err != nil {
		return ""
	}
	if !redis.SessionExists(c.Request.Context(), token) {
		return ""
	}
	return userID
}

// OptionalIdentity extracts whatever identity the request carries and never
// fails: a missing or invalid token degrades silently to anonymous.
func OptionalIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := Identity{
			GuestSession: c.GetHeader(GuestSessionHeader),
		}

		if token := bearerToken(c); token != "" {
			ident.UserID = resolveUserID(c, token)
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid registered-user token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Error(apiError.Unauthorized("Authorization token is required", nil))
			c.Abort()
			return
		}

		userID := resolveUserID(c, token)
		if userID == "" {
			c.Error(apiError.Unauthorized("Invalid or expired token", nil))
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{
			UserID:       userID,
			GuestSession: c.GetHeader(GuestSessionHeader),
		})
		c.Set("user_id", userID)
		c.Set("jwt_token", token)
		c.Next()
	}
}
