package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarkt/models"
)

var secret = []byte("test-secret")

// Helper to create an app with a pre-local middleware that sets userRole
func makeAppWithRole(role string, check fiber.Handler) *fiber.App {
	app := fiber.New()

	// Insert a middleware to set role before the requirement middleware
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userRole", role)
		return c.Next()
	})

	app.Use(check)

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.Status(200).SendString("ok")
	})

	return app
}

func signed(t *testing.T, key []byte, role string, ttl time.Duration) string {
	t.Helper()
	claims := models.JwtClaims{
		UserID: "operator",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestOperatorRequired_AllowsOperator(t *testing.T) {
	app := makeAppWithRole("operator", OperatorRequired)
	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestOperatorRequired_DeniesOtherRoles(t *testing.T) {
	for _, role := range []string{"admin", "merchant", ""} {
		app := makeAppWithRole(role, OperatorRequired)
		resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode, role)
	}
}

func jwtApp() *fiber.App {
	app := fiber.New()
	app.Get("/secure", JWT(secret), OperatorRequired, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userID").(string))
	})
	return app
}

func TestJWT(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", 401},
		{"no bearer prefix", signed(t, secret, "operator", time.Hour), 401},
		{"wrong secret", "Bearer " + signed(t, []byte("other"), "operator", time.Hour), 401},
		{"expired", "Bearer " + signed(t, secret, "operator", -time.Hour), 401},
		{"wrong role", "Bearer " + signed(t, secret, "shopper", time.Hour), 403},
		{"valid", "Bearer " + signed(t, secret, "operator", time.Hour), 200},
	}
	app := jwtApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestJWT_EmptySecretRefusesEverything(t *testing.T) {
	app := fiber.New()
	app.Get("/secure", JWT(nil), OperatorRequired, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, []byte(""), "operator", time.Hour))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestSetup(t *testing.T) {
	app := fiber.New()
	Setup(app)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
