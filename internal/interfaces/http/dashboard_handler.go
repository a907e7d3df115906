package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Fritz-nvm/management-system/internal/application/analytics"
)

// DashboardHandler página de inicio con el resumen del ámbito del usuario.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Show GET /.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return err
	}
	return render(c, fiber.StatusOK, "dashboard", fiber.Map{
		"Title":   "Dashboard",
		"Summary": summary,
	})
}
