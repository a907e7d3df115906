package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Fritz-nvm/management-system/internal/application/analytics"
	"github.com/Fritz-nvm/management-system/internal/application/auth"
	"github.com/Fritz-nvm/management-system/internal/application/reporting"
	"github.com/Fritz-nvm/management-system/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	DashboardUC *analytics.DashboardUseCase
	BranchUC    *usecase.BranchUseCase
	AssetUC     *usecase.AssetUseCase
	ExportUC    *reporting.ExportUseCase
	Session     SessionConfig
	Log         zerolog.Logger
}

// Router registra las páginas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Session, deps.Log)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren cookie de sesión)
	protected := app.Group("/", AuthMiddleware(deps.Session, deps.AuthUC, deps.Log))
	protected.Get("/logout", authHandler.Logout)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/", dashboardHandler.Show)

	// Branches
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Get("/add", branchHandler.AddPage)
	branches.Post("/add", branchHandler.Add)
	branches.Get("/:id/edit", branchHandler.EditPage)
	branches.Post("/:id/edit", branchHandler.Edit)
	branches.Get("/:id/delete", branchHandler.DeletePage)
	branches.Post("/:id/delete", branchHandler.Delete)

	// Assets; export y add antes de /:id
	assets := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC)
	exportHandler := NewExportHandler(deps.ExportUC)
	assets.Get("/", assetHandler.List)
	assets.Get("/export/pdf", exportHandler.PDF)
	assets.Get("/export/xlsx", exportHandler.XLSX)
	assets.Get("/add", assetHandler.AddPage)
	assets.Post("/add", assetHandler.Add)
	assets.Get("/:id", assetHandler.Detail)
	assets.Get("/:id/edit", assetHandler.EditPage)
	assets.Post("/:id/edit", assetHandler.Edit)
	assets.Get("/:id/delete", assetHandler.DeletePage)
	assets.Post("/:id/delete", assetHandler.Delete)

	protected.Get("/media/manuals/:file", assetHandler.Manual)
}
