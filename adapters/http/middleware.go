package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/pkg/auth"
)

const (
	GinContextKeyUserID = "userID"

	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// tokenFromRequest prefers the Authorization header and falls back to the
// httpOnly access-token cookie set at login.
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}
		return ""
	}
	cookie, err := c.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie
}

func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString, auth.TokenKindAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid or expired token"})
			return
		}

		c.Set(GinContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the viewer when credentials are present but
// never rejects the request. Anonymous viewers simply get no user id in the
// context.
func OptionalAuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString != "" {
			if claims, err := jwtSvc.ValidateToken(tokenString, auth.TokenKindAccess); err == nil {
				c.Set(GinContextKeyUserID, claims.UserID)
			}
		}
		c.Next()
	}
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return id, true
}

// ViewerID is the non-aborting variant used on public routes behind
// OptionalAuthMiddleware: uuid.Nil means anonymous.
func ViewerID(c *gin.Context) uuid.UUID {
	id, _ := GetUserIDFromGinContext(c)
	return id
}
