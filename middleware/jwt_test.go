package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJWTApp(t *testing.T) *fiber.App {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	app := fiber.New()
	app.Get("/me", JWTMiddleware, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok!", fiber.Map{
			"userId": c.Locals("userId"),
		})
	})
	return app
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTKey))
	require.NoError(t, err)
	return signed
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	app := setupJWTApp(t)

	tokenString, err := GenerateJWT(7, "Asha", RoleStudent, "asha@example.com", nil)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsNonNumericUserID(t *testing.T) {
	app := setupJWTApp(t)

	// A validly signed token can still carry a malformed userId claim; the
	// middleware must reject it instead of panicking
	tokenString := signToken(t, jwt.MapClaims{
		"userId": "not-a-number",
		"role":   RoleStudent.String(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRejectsMissingUserID(t *testing.T) {
	app := setupJWTApp(t)

	tokenString := signToken(t, jwt.MapClaims{
		"role": RoleStudent.String(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRejectsInvalidRole(t *testing.T) {
	app := setupJWTApp(t)

	tokenString := signToken(t, jwt.MapClaims{
		"userId": float64(7),
		"role":   "SUPERADMIN",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
