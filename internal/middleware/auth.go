package middleware

import (
	"errors"
	"net/http"
	"strings"

	"petstat/internal/pkg/jwt"
	"petstat/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey      = "user_id"
	EmailKey       = "email"
	AccessTokenKey = "access_token"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// JWTAuth requires a valid access token and stores the caller in the context.
// An expired token gets its own error code so clients know to rotate.
func JWTAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := extractBearer(c)
		if !ok {
			return
		}

		claims, err := validator.ValidateToken(tokenStr)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Error(c, http.StatusUnauthorized, "ACCESS_TOKEN_EXPIRED", "Access token expired")
			} else {
				response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			}
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// BearerToken only extracts the raw token. Verification is left to the handler,
// which may accept an expired token.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := extractBearer(c)
		if !ok {
			return
		}
		c.Set(AccessTokenKey, tokenStr)
		c.Next()
	}
}

func extractBearer(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" {
		response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing Authorization header")
		return "", false
	}

	scheme, token, found := strings.Cut(h, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be Bearer <token>")
		return "", false
	}
	return token, true
}
