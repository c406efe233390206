package routes

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarkt/handlers"
	"supermarkt/models"
)

func newAppWithSecret(secret []byte) *fiber.App {
	down := func(ctx context.Context) (handlers.Repository, func(), error) {
		return nil, nil, models.ErrStorageUnavailable
	}
	app := fiber.New()
	SetupRoutes(app, handlers.NewHandler(down, handlers.Options{JWTSecret: secret}), secret)
	return app
}

func newApp() *fiber.App {
	return newAppWithSecret([]byte("routes-secret"))
}

func TestRoutes(t *testing.T) {
	app := newApp()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/v1/health", fiber.StatusServiceUnavailable},
		{"GET", "/api/v1/promotions/categories", fiber.StatusOK},
		{"GET", "/api/v1/products/search", fiber.StatusBadRequest},
		{"POST", "/api/v1/auth/login", fiber.StatusServiceUnavailable},
		{"POST", "/api/v1/admin/detect-drops", fiber.StatusUnauthorized},
		{"GET", "/api/v1/unknown", fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAdminRejectsForeignToken(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/admin/detect-drops", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := newApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRefusedWithoutSecret(t *testing.T) {
	claims := models.JwtClaims{
		UserID: "operator",
		Role:   "operator",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(""))
	require.NoError(t, err)

	for _, path := range []string{"/api/v1/admin/detect-drops", "/api/v1/admin/promotions"} {
		req := httptest.NewRequest("POST", path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := newAppWithSecret([]byte("")).Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}
