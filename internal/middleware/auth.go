package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/orderhub/backend/internal/auth"
	"github.com/orderhub/backend/pkg/response"
)

// ContextKeyPrincipal is the gin context key holding the resolved principal
const ContextKeyPrincipal = "principal"

// ErrTargetNotFound is returned by a TargetResolver when the resource whose
// owner it resolves does not exist.
var ErrTargetNotFound = errors.New("target not found")

// TargetResolver extracts the user id a request is acting on. It may read a
// path param, a body field, or perform a store lookup (order -> owner).
type TargetResolver func(*gin.Context) (int64, error)

// RequireAuth verifies the bearer token and attaches the principal to the
// context. Expired and invalid tokens both reject with 401 but carry
// distinct messages.
func RequireAuth(codec *auth.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := authenticate(c, codec)
		if !ok {
			return
		}
		c.Set(ContextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireAdmin verifies the token and rejects non-admin principals with 403.
func RequireAdmin(codec *auth.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := authenticate(c, codec)
		if !ok {
			return
		}
		if !principal.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorBody{Message: "admin privilege required"})
			return
		}
		c.Set(ContextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireOwnerOrAdmin verifies the token, resolves the target user id, and
// allows the request when the principal owns the target or is an admin.
// A resolver failing with ErrTargetNotFound rejects with 400; any other
// resolver failure is a 500, distinct from an authorization rejection.
func RequireOwnerOrAdmin(codec *auth.Codec, resolver TargetResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := authenticate(c, codec)
		if !ok {
			return
		}

		targetID, err := resolver(c)
		if err != nil {
			if errors.Is(err, ErrTargetNotFound) {
				c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorBody{Message: "unable to resolve target user"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorBody{Message: "internal server error"})
			return
		}

		if principal.ID != targetID && !principal.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorBody{Message: "access denied"})
			return
		}

		c.Set(ContextKeyPrincipal, principal)
		c.Next()
	}
}

// SelfRegistrationGate guards user creation: creating a regular account needs
// no token, but a body asking for isAdmin upgrades the request to an
// admin-only check. The decision is made from the body before any
// authorization runs, and the body is restored for the handler.
func SelfRegistrationGate(codec *auth.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		var peek struct {
			IsAdmin bool `json:"isAdmin"`
		}
		// Malformed JSON falls through to the handler's own binding error.
		_ = json.Unmarshal(bodyBytes, &peek)

		if !peek.IsAdmin {
			c.Next()
			return
		}

		principal, ok := authenticate(c, codec)
		if !ok {
			return
		}
		if !principal.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorBody{Message: "admin privilege required to create admin accounts"})
			return
		}
		c.Set(ContextKeyPrincipal, principal)
		c.Next()
	}
}

// GetPrincipal returns the principal attached by an auth middleware
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func authenticate(c *gin.Context, codec *auth.Codec) (auth.Principal, bool) {
	token, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorBody{Message: "authorization token required"})
		return auth.Principal{}, false
	}

	principal, err := codec.Verify(token)
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, auth.ErrTokenExpired) {
			msg = "token has expired"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorBody{Message: msg})
		return auth.Principal{}, false
	}

	return principal, true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
