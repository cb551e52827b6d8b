package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newActorApp() (*fiber.App, *uuid.UUID) {
	var got uuid.UUID
	app := fiber.New()
	app.Use(Actor())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		got = ActorID(c)
		return c.SendStatus(http.StatusOK)
	})
	return app, &got
}

func TestActorMissingHeader(t *testing.T) {
	app, _ := newActorApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestActorMalformedHeader(t *testing.T) {
	app, _ := newActorApp()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderUserID, "not-a-uuid")

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestActorStoresID(t *testing.T) {
	app, got := newActorApp()
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderUserID, id.String())

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, id, *got)
}
