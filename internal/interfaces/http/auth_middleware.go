package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Fritz-nvm/management-system/internal/domain/access"
	"github.com/Fritz-nvm/management-system/pkg/jwt"
)

// Locals keys y cookies de sesión.
const (
	LocalPrincipal = "principal"
	SessionCookie  = "session"
	loginPath      = "/login"
)

// principalResolver contrato mínimo para reconstruir el principal en cada petición.
// Lo implementa *auth.AuthUseCase.
type principalResolver interface {
	ResolvePrincipal(ctx context.Context, userID string) (access.Principal, error)
}

// SessionConfig parámetros de la cookie de sesión.
type SessionConfig struct {
	Secret     string
	ExpMinutes int
	Secure     bool
}

// AuthMiddleware valida la cookie de sesión JWT, recarga el principal y lo guarda en c.Locals.
// Sin sesión válida redirige a /login y borra la cookie.
func AuthMiddleware(cfg SessionConfig, resolver principalResolver, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := sessionPrincipal(c, cfg.Secret, resolver, log)
		if !ok {
			clearSession(c, cfg)
			return c.Redirect(loginPath, fiber.StatusSeeOther)
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// sessionPrincipal principal de la cookie de sesión, si es válida y el usuario sigue activo.
func sessionPrincipal(c *fiber.Ctx, secret string, resolver principalResolver, log zerolog.Logger) (access.Principal, bool) {
	token := c.Cookies(SessionCookie)
	if token == "" {
		return access.Principal{}, false
	}
	claims, err := jwt.Parse(secret, token)
	if err != nil {
		log.Debug().Err(err).Msg("sesión inválida o expirada")
		return access.Principal{}, false
	}
	p, err := resolver.ResolvePrincipal(c.UserContext(), claims.UserID)
	if err != nil {
		log.Debug().Err(err).Str("user_id", claims.UserID).Msg("no se pudo resolver el principal")
		return access.Principal{}, false
	}
	return p, true
}

// setSession escribe la cookie de sesión HttpOnly.
func setSession(c *fiber.Ctx, cfg SessionConfig, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(cfg.ExpMinutes) * time.Minute),
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSession expira la cookie de sesión.
func clearSession(c *fiber.Ctx, cfg SessionConfig) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GetPrincipal devuelve el principal del contexto (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) access.Principal {
	p, _ := c.Locals(LocalPrincipal).(access.Principal)
	return p
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return GetPrincipal(c).UserID
}
