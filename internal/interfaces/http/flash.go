package http

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

// Niveles de mensaje flash (clases CSS de la vista).
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash mensaje de un solo uso mostrado en el siguiente render.
type Flash struct {
	Level   string
	Message string
}

// setFlash guarda el mensaje en una cookie "level|message".
func setFlash(c *fiber.Ctx, level, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(level + "|" + message),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlash lee y borra el mensaje pendiente.
func popFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{Name: flashCookie, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	level, message, ok := strings.Cut(decoded, "|")
	if !ok || message == "" {
		return nil
	}
	switch level {
	case FlashSuccess, FlashError, FlashInfo:
	default:
		level = FlashInfo
	}
	return &Flash{Level: level, Message: message}
}

// redirectWithFlash atajo para el patrón "mensaje + redirect" (303).
func redirectWithFlash(c *fiber.Ctx, to, level, message string) error {
	setFlash(c, level, message)
	return c.Redirect(to, fiber.StatusSeeOther)
}
