package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
	ctxToken  = "token"
)

type authOptions struct {
	queryToken bool
}

type AuthOption func(*authOptions)

// AllowQueryToken also accepts the token as a "token" query parameter.
// Browsers cannot set headers on websocket upgrades; keep it off elsewhere so
// tokens stay out of URLs and access logs.
func AllowQueryToken() AuthOption {
	return func(o *authOptions) { o.queryToken = true }
}

// AuthMiddleware verifies the bearer token issued by the upstream backend and
// stores the caller's id, role and raw token in the context.
func AuthMiddleware(jwtSecret string, opts ...AuthOption) gin.HandlerFunc {
	var o authOptions
	for _, opt := range opts {
		opt(&o)
	}
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c, o.queryToken)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		// Validate the token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			slog.Debug("token parsing error", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userIDFloat, ok := claims["sub"].(float64)
		if !ok {
			slog.Debug("invalid 'sub' claim in token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		role, _ := claims["role"].(string)
		if role == "" {
			role = "user"
		}

		c.Set(ctxUserID, int64(userIDFloat))
		c.Set(ctxRole, role)
		c.Set(ctxToken, tokenString)
		c.Next()
	}
}

func bearerToken(c *gin.Context, allowQuery bool) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if tok := c.Query("token"); allowQuery && tok != "" {
			return tok, true
		}
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireRole rejects callers whose token does not carry role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func Role(c *gin.Context) string {
	return c.GetString(ctxRole)
}

func Token(c *gin.Context) string {
	return c.GetString(ctxToken)
}
