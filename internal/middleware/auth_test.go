package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, key string, method jwt.SigningMethod) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return tok
}

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	me := r.Group("/", AuthMiddleware(secret))
	me.GET("/me", func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": Role(c), "token": Token(c)})
	})
	me.GET("/admin", RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/ws", AuthMiddleware(secret, AllowQueryToken()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := router()
	valid := sign(t, jwt.MapClaims{"sub": 42, "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}, secret, jwt.SigningMethodHS256)

	w := do(r, "/me", "Bearer "+valid)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": 42, "role": "admin", "token": "`+valid+`"}`, w.Body.String())

	w = do(r, "/me?token="+valid, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "query token only where allowed")

	w = do(r, "/ws?token="+valid, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, "/ws", "Bearer "+valid)
	assert.Equal(t, http.StatusNoContent, w.Code)

	tests := []struct {
		name string
		auth string
	}{
		{"missing header", ""},
		{"not bearer", "Basic " + valid},
		{"wrong secret", "Bearer " + sign(t, jwt.MapClaims{"sub": 1}, "other", jwt.SigningMethodHS256)},
		{"expired", "Bearer " + sign(t, jwt.MapClaims{"sub": 1, "exp": time.Now().Add(-time.Hour).Unix()}, secret, jwt.SigningMethodHS256)},
		{"missing sub", "Bearer " + sign(t, jwt.MapClaims{"role": "admin"}, secret, jwt.SigningMethodHS256)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, do(r, "/me", tt.auth).Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := router()
	admin := sign(t, jwt.MapClaims{"sub": 1, "role": "admin"}, secret, jwt.SigningMethodHS256)
	user := sign(t, jwt.MapClaims{"sub": 2}, secret, jwt.SigningMethodHS256)

	assert.Equal(t, http.StatusNoContent, do(r, "/admin", "Bearer "+admin).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", "Bearer "+user).Code)
}
