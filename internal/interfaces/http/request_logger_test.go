package http_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fritz-nvm/management-system/internal/domain/access"
	apphttp "github.com/Fritz-nvm/management-system/internal/interfaces/http"
)

func TestRequestLogger_RegistraEstadoYUsuario(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.New(&buf)))
	app.Get("/ok", func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalPrincipal, access.Principal{UserID: "u-1"})
		return c.SendString("ok")
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.ErrBadGateway })

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	var ev map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev))
	assert.Equal(t, "info", ev["level"])
	assert.Equal(t, float64(200), ev["status"])
	assert.Equal(t, "u-1", ev["user_id"])
	assert.Equal(t, "/ok", ev["path"])

	buf.Reset()
	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev))
	assert.Equal(t, "error", ev["level"])
	assert.Equal(t, float64(fiber.StatusBadGateway), ev["status"])
}
