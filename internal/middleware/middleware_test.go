package middleware

import (
	"Foodgram-Backend/pkg/jwt"
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryBlacklist map[string]bool

func (m memoryBlacklist) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	m[tokenID] = true
	return nil
}

func (m memoryBlacklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return m[tokenID], nil
}

func newTestApp(t *testing.T) (*fiber.App, jwt.JWTService, memoryBlacklist) {
	t.Helper()
	jwtService := jwt.NewJWTServiceWithSecret("middleware-secret", time.Hour)
	blacklist := memoryBlacklist{}
	m := NewMiddleware(blacklist)

	app := fiber.New()
	app.Use(m.MetricsMiddleware())
	app.Get("/private", m.AuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})
	app.Get("/public", m.OptionalAuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		return c.SendString("viewer:" + UserID(c))
	})
	return app, jwtService, blacklist
}

func get(t *testing.T, app *fiber.App, path, auth string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Token abc"))
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc"))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken("abc"))
}

func TestAuthMiddleware(t *testing.T) {
	app, jwtService, _ := newTestApp(t)
	token, err := jwtService.GenerateTokenUser("user-42")
	require.NoError(t, err)

	status, _ := get(t, app, "/private", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = get(t, app, "/private", "Token not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := get(t, app, "/private", "Token "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-42", body)

	status, body = get(t, app, "/private", "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-42", body)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	app, jwtService, blacklist := newTestApp(t)
	token, err := jwtService.GenerateTokenUser("user-42")
	require.NoError(t, err)
	claims, err := jwtService.ParseUserClaims(token)
	require.NoError(t, err)

	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Hour))

	status, _ := get(t, app, "/private", "Token "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	app, jwtService, _ := newTestApp(t)
	token, err := jwtService.GenerateTokenUser("user-7")
	require.NoError(t, err)

	status, body := get(t, app, "/public", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "viewer:", body)

	status, body = get(t, app, "/public", "Token "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "viewer:user-7", body)

	status, _ = get(t, app, "/public", "Token garbage")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
