package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"renthub/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(t *testing.T, jwtService *jwt.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuth(jwtService))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("user_id")})
	})
	return r
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	token, err := jwtService.GenerateToken(42)
	require.NoError(t, err)

	r := protectedRouter(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestJWTAuth_Rejections(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)

	foreignToken, err := jwt.New("other-secret", time.Hour).GenerateToken(42)
	require.NoError(t, err)
	expiredToken, err := jwt.New("test-secret-123", -time.Minute).GenerateToken(42)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"no header", "", "AUTH_HEADER_MISSING"},
		{"not bearer", "Basic dGVzdA==", "INVALID_AUTH_FORMAT"},
		{"token only", "sometoken", "INVALID_AUTH_FORMAT"},
		{"garbage token", "Bearer invalid-jwt-here", "INVALID_TOKEN"},
		{"wrong secret", "Bearer " + foreignToken, "INVALID_TOKEN"},
		{"expired", "Bearer " + expiredToken, "INVALID_TOKEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := protectedRouter(t, jwtService)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.code)
		})
	}
}
