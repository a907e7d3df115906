package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Fritz-nvm/management-system/internal/application/auth"
	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/domain"
)

const msgInvalidLogin = "Invalid username or password."

// AuthHandler maneja login y logout con sesión en cookie.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	cfg SessionConfig
	log zerolog.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cfg SessionConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, cfg: cfg, log: log}
}

// LoginPage GET /login. Con sesión válida redirige al dashboard.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if _, ok := sessionPrincipal(c, h.cfg.Secret, h.uc, h.log); ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return render(c, fiber.StatusOK, "login", fiber.Map{"Title": "Login", "Username": ""})
}

// Login POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if _, ok := sessionPrincipal(c, h.cfg.Secret, h.uc, h.log); ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound),
			errors.Is(err, domain.ErrUnauthorized),
			errors.Is(err, domain.ErrForbidden),
			errors.Is(err, domain.ErrInvalidInput):
			h.log.Info().Str("username", in.Username).Msg("login rechazado")
			return render(c, fiber.StatusOK, "login", fiber.Map{
				"Title":    "Login",
				"Username": in.Username,
				"Error":    msgInvalidLogin,
			})
		}
		return err
	}
	setSession(c, h.cfg, out.Token)
	h.log.Info().Str("user_id", out.UserID).Msg("sesión iniciada")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout GET /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearSession(c, h.cfg)
	return c.Redirect(loginPath, fiber.StatusSeeOther)
}
