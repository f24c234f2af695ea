package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"signals-hub.backend/internal/domain/entities"
	"signals-hub.backend/pkg/jwt"
	"signals-hub.backend/pkg/redis"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// SessionIDHeader is the header key for server-side sessions
	SessionIDHeader = "X-Session-ID"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// PrincipalKey is the context key for the caller's principal
	PrincipalKey = "principal"
)

// AuthMiddleware authenticates the request and attaches a principal to
// the gin context. Bearer tokens are checked first; if a session store
// is wired, an X-Session-ID header is accepted as an alternative.
// Handlers read the principal and pass it into the authorization gate;
// the middleware itself never consults the database.
func AuthMiddleware(jwtService *jwt.JWTService, sessionStore *redis.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		sessionID := c.GetHeader(SessionIDHeader)

		if authHeader == "" && (sessionID == "" || sessionStore == nil) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "You are not logged in",
			})
			return
		}

		if authHeader != "" {
			if !strings.HasPrefix(authHeader, BearerPrefix) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid authorization format. Use: Bearer <token>",
				})
				return
			}

			tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				log.Printf("[AuthMiddleware] Request to %s failed: %v", c.Request.URL.Path, err)
				if err == jwt.ErrExpiredToken {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
						"error": "Token has expired",
					})
					return
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid token",
				})
				return
			}

			c.Set(PrincipalKey, entities.NewPrincipal(claims.UserID, entities.UserRole(claims.Role)))
			c.Next()
			return
		}

		data, err := sessionStore.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			log.Printf("[AuthMiddleware] Session lookup for %s failed: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session",
			})
			return
		}
		// The stored access token bounds the session's lifetime
		// independently of the Redis TTL.
		if _, err := jwtService.ValidateToken(data.AccessToken); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session",
			})
			return
		}
		userID, err := uuid.Parse(data.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session",
			})
			return
		}

		c.Set(PrincipalKey, entities.NewPrincipal(userID, entities.UserRole(data.Role)))
		c.Next()
	}
}

// GetPrincipal gets the caller's principal from context. Returns nil on
// unauthenticated requests so the authorization gate reports the
// not-logged-in case itself.
func GetPrincipal(c *gin.Context) *entities.Principal {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(*entities.Principal)
	if !ok {
		return nil
	}
	return principal
}
