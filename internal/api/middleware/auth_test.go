package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/service"
)

type stubVerifier struct {
	claims domain.Claims
	err    error
}

func (v stubVerifier) VerifyToken(_ context.Context, token string) (domain.Claims, error) {
	if v.err != nil {
		return domain.Claims{}, v.err
	}
	if token != "good-token" {
		return domain.Claims{}, service.ErrUnauthenticated
	}
	return v.claims, nil
}

func (v stubVerifier) RequireRole(claims domain.Claims, role string) error {
	if claims.Role != role {
		return service.ErrForbidden
	}
	return nil
}

func setupAuthRouter(v TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	auth := NewAuthenticator(v)

	router.GET("/me", auth.VerifyJWT(), func(ctx *gin.Context) {
		claims, _ := ClaimsFromContext(ctx)
		ctx.String(http.StatusOK, claims.UserID)
	})
	router.GET("/admin", auth.VerifyJWT(), auth.RequireRole(domain.RoleAdmin), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})

	return router
}

func TestVerifyJWT(t *testing.T) {
	router := setupAuthRouter(stubVerifier{claims: domain.Claims{UserID: "u1", Role: domain.RoleUser}})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer bad-token", http.StatusUnauthorized},
		{"good token", "Bearer good-token", http.StatusOK},
		{"lowercase scheme", "bearer good-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "u1", w.Body.String())
			}
		})
	}
}

func TestVerifyJWT_StoreFailure(t *testing.T) {
	router := setupAuthRouter(stubVerifier{err: errors.New("redis down")})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "redis")
}

func TestRequireRole(t *testing.T) {
	for role, want := range map[string]int{
		domain.RoleUser:  http.StatusForbidden,
		domain.RoleAdmin: http.StatusNoContent,
	} {
		router := setupAuthRouter(stubVerifier{claims: domain.Claims{UserID: "u1", Role: role}})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, want, w.Code, role)
	}
}
