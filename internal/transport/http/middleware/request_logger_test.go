package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newLoggedApp() (*fiber.App, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	app.Use(RequestLogger(zap.New(core).Sugar()))
	app.Use(Actor())
	app.Get("/teams", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusInternalServerError)
	})
	return app, logs
}

func TestRequestLoggerIncludesActor(t *testing.T) {
	app, logs := newLoggedApp()
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set(HeaderUserID, id.String())

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zap.InfoLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	require.Equal(t, "GET", fields["method"])
	require.Equal(t, "/teams", fields["path"])
	require.EqualValues(t, http.StatusOK, fields["status"])
	require.Equal(t, id.String(), fields["actor_id"])
}

func TestRequestLoggerAnonymousOmitsActor(t *testing.T) {
	app, logs := newLoggedApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teams", nil))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.NotContains(t, entries[0].ContextMap(), "actor_id")
}

func TestRequestLoggerServerErrorLevel(t *testing.T) {
	app, logs := newLoggedApp()
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(HeaderUserID, id.String())

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zap.ErrorLevel, entries[0].Level)
}
