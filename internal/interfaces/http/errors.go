package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Fritz-nvm/management-system/internal/domain"
)

// ErrorHandler handler de errores de fiber: 404 renderiza la página de no encontrado,
// el resto registra el error y muestra la página 500.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if errors.Is(err, domain.ErrNotFound) {
			code = fiber.StatusNotFound
		}

		if code == fiber.StatusNotFound {
			if rerr := notFound(c); rerr == nil {
				return nil
			}
			return c.Status(code).SendString("Not Found")
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		}
		if rerr := render(c, code, "errors/500", fiber.Map{"Title": "Error", "Code": code}); rerr != nil {
			return c.Status(code).SendString(fiber.ErrInternalServerError.Message)
		}
		return nil
	}
}
