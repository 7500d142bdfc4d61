package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glovebox/glovebox/backend/go-services/internal/sessions"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
)

const (
	claimsKey = "claims"
	userIDKey = "userID"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// UserResolver maps verified claims to the application user id that owns data.
type UserResolver func(ctx context.Context, claims map[string]interface{}) (string, error)

// SubjectResolver uses the "sub" claim as the user id (locally issued tokens).
func SubjectResolver(_ context.Context, claims map[string]interface{}) (string, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided
// verifier, rejects blacklisted (logged out) tokens and stores the claims and resolved
// user id on the context. A nil resolver falls back to SubjectResolver.
func AuthMiddleware(ver Verifier, resolve UserResolver) gin.HandlerFunc {
	if resolve == nil {
		resolve = SubjectResolver
	}
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		black, err := sessions.IsAccessTokenBlacklisted(c.Request.Context(), token)
		if err != nil {
			logger.Errorf("blacklist lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "token check unavailable"})
			return
		}
		if black {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}

		verified, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "details": err.Error()})
			return
		}

		var claims map[string]interface{}
		if err := verified.Claims(&claims); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "failed to parse claims"})
			return
		}
		uid, err := resolve(c.Request.Context(), claims)
		if err != nil || uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}

		c.Set(claimsKey, claims)
		c.Set(userIDKey, uid)
		c.Next()
	}
}

// BearerToken extracts the raw token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return "", false
	}
	var token string
	if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 || token == "" {
		return "", false
	}
	return token, true
}

// UserID returns the authenticated user id, or "" outside AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// Claims returns the verified token claims, or nil outside AuthMiddleware.
func Claims(c *gin.Context) map[string]interface{} {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	cm, _ := v.(map[string]interface{})
	return cm
}

// Chain tries each verifier in order and returns the first successful verification.
type Chain []Verifier

func (ch Chain) Verify(ctx context.Context, raw string) (Token, error) {
	var lastErr error = fmt.Errorf("no verifier configured")
	for _, v := range ch {
		if v == nil {
			continue
		}
		t, err := v.Verify(ctx, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
