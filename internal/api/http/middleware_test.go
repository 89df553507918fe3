package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/impcorecl/ticketeraimpactualizada/internal/observability"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

func newTestApp(timeout time.Duration) *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), timeout)
	return app
}

func TestRequestTimeoutReachesHandlerContext(t *testing.T) {
	app := newTestApp(5 * time.Second)

	// Handlers hand c.UserContext() to the stores, so the deadline set by
	// the middleware must be visible there.
	var hadDeadline bool
	app.Get("/deadline", func(c *fiber.Ctx) error {
		_, hadDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/deadline", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, hadDeadline, "handler context should carry the request deadline")
}

func TestErrorMiddlewareEnvelope(t *testing.T) {
	app := newTestApp(0)

	app.Get("/conflict", func(c *fiber.Ctx) error {
		return apperrors.NewConflict("ticket already used or revoked", map[string]any{"ticket_id": "t-1"})
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/conflict", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "CONFLICT", body.Error.Code)
	assert.Equal(t, "t-1", body.Error.Details["ticket_id"])

	resp, err = app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
