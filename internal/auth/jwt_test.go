package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret-for-tests")
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(Claims{UserID: userID, Email: "a@b.com", Role: "user"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestJWTService_RefreshTokenExpiry(t *testing.T) {
	svc := NewJWTService("secret-for-tests")

	token, expiresAt, err := svc.GenerateRefreshToken(Claims{UserID: uuid.New()})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	_, err = svc.ValidateRefreshToken(token)
	assert.NoError(t, err)
}

func TestJWTService_TokenTypesAreNotInterchangeable(t *testing.T) {
	svc := NewJWTService("secret-for-tests")
	claims := Claims{UserID: uuid.New(), Email: "a@b.com", Role: "user"}

	access, _, err := svc.GenerateToken(claims)
	require.NoError(t, err)
	refresh, _, err := svc.GenerateRefreshToken(claims)
	require.NoError(t, err)

	// An access token must not mint new token pairs
	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)

	// A refresh token must not authenticate requests
	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-one").GenerateToken(Claims{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = NewJWTService("secret-two").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("secret-for-tests")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.ValidateToken(token)
		assert.Error(t, err, "token %q should be rejected", token)
	}
}

func middlewareRouter(secret string, handler gin.HandlerFunc, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if optional {
		r.Use(OptionalJWTMiddleware(secret))
	} else {
		r.Use(JWTMiddleware(secret))
	}
	r.GET("/test", handler)
	return r
}

func TestJWTMiddleware(t *testing.T) {
	secret := "secret-for-tests"
	userID := uuid.New()
	token, _, err := NewJWTService(secret).GenerateToken(Claims{UserID: userID, Email: "a@b.com", Role: "user"})
	require.NoError(t, err)

	var seenID uuid.UUID
	r := middlewareRouter(secret, func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		require.True(t, ok)
		seenID = id
		c.Status(http.StatusOK)
	}, false)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, seenID)
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	r := middlewareRouter("secret-for-tests", func(c *gin.Context) {
		c.Status(http.StatusOK)
	}, false)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"invalid token", "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestOptionalJWTMiddleware(t *testing.T) {
	secret := "secret-for-tests"
	userID := uuid.New()
	token, _, err := NewJWTService(secret).GenerateToken(Claims{UserID: userID})
	require.NoError(t, err)

	var gotID *uuid.UUID
	r := middlewareRouter(secret, func(c *gin.Context) {
		gotID = nil
		if id, ok := CurrentUserID(c); ok {
			gotID = &id
		}
		c.Status(http.StatusOK)
	}, true)

	// Anonymous passes through
	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, gotID)

	// Invalid token downgrades to anonymous instead of failing
	req = httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, gotID)

	// Valid token resolves the user
	req = httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotID)
	assert.Equal(t, userID, *gotID)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery", hash)

	assert.True(t, CheckPassword("correct-horse-battery", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
