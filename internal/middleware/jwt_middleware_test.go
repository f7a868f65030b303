package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"upfound/internal/models"
	"upfound/internal/repositories"
	"upfound/internal/services"
)

func setup(t *testing.T) (*services.AuthService, string) {
	t.Helper()

	store := repositories.NewMockStore()
	authService := services.NewAuthService(store.Users(), "test_secret")
	token, err := authService.RegisterUser(&models.User{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	assert.NoError(t, err)
	return authService, token
}

func identityEcho(c *fiber.Ctx) error {
	if identity := Identity(c); identity != nil {
		return c.JSON(fiber.Map{"userId": identity.UserID})
	}
	return c.JSON(fiber.Map{"userId": nil})
}

func TestAuthRequired(t *testing.T) {
	authService, token := setup(t)

	app := fiber.New()
	app.Get("/secure", AuthRequired(authService), identityEcho)

	// No token.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/secure", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Malformed header.
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Token "+token)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Garbage token.
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Valid token.
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalAuthNeverRejects(t *testing.T) {
	authService, token := setup(t)

	app := fiber.New()
	app.Get("/feed", OptionalAuth(authService), identityEcho)

	// Anonymous request passes with a nil identity.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/feed", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// An invalid token is treated as anonymous, not rejected.
	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A valid token attaches the viewer identity.
	req = httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
