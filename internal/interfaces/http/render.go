package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/access"
)

const layout = "layouts/main"

// render agrega al binding los datos comunes (principal, rol, flash) y renderiza con el layout.
func render(c *fiber.Ctx, status int, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	p := GetPrincipal(c)
	data["Principal"] = p
	data["Authenticated"] = p.UserID != ""
	data["RoleLabel"] = p.Role().Label()
	data["IsSuperAdmin"] = p.Role() == access.RoleSuperAdmin
	data["CanListBranches"] = access.CanListBranches(p)
	data["CanManageBranches"] = access.CanManageBranches(p)
	data["CanAddAsset"] = access.CanAddAsset(p)
	data["CanDeleteAsset"] = access.CanDeleteAsset(p)
	data["Flash"] = popFlash(c)
	return c.Status(status).Render(view, data, layout)
}

// notFound página 404; también se usa para accesos denegados sobre un registro.
func notFound(c *fiber.Ctx) error {
	return render(c, fiber.StatusNotFound, "errors/404", fiber.Map{"Title": "Not Found"})
}

// isFormError indica si err debe re-renderizar el formulario con errores por campo.
func isFormError(err error) bool {
	return domain.FieldErrors(err) != nil &&
		(errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrDuplicate))
}

func canManageBranches(c *fiber.Ctx) bool { return access.CanManageBranches(GetPrincipal(c)) }
