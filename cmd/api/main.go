package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Fritz-nvm/management-system/internal/application/analytics"
	"github.com/Fritz-nvm/management-system/internal/application/auth"
	"github.com/Fritz-nvm/management-system/internal/application/reporting"
	"github.com/Fritz-nvm/management-system/internal/application/usecase"
	"github.com/Fritz-nvm/management-system/internal/domain/assetid"
	infrapdf "github.com/Fritz-nvm/management-system/internal/infrastructure/pdf"
	"github.com/Fritz-nvm/management-system/internal/infrastructure/postgres"
	"github.com/Fritz-nvm/management-system/internal/infrastructure/storage"
	infraxlsx "github.com/Fritz-nvm/management-system/internal/infrastructure/xlsx"
	httpRouter "github.com/Fritz-nvm/management-system/internal/interfaces/http"
	"github.com/Fritz-nvm/management-system/pkg/config"
	"github.com/Fritz-nvm/management-system/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}

	manuals, err := storage.NewLocalManuals(cfg.Upload.MediaDir)
	if err != nil {
		log.Fatal().Err(err).Str("media_dir", cfg.Upload.MediaDir).Msg("directorio de manuales")
	}

	branchRepo := postgres.NewBranchRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, branchRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	branchUC := usecase.NewBranchUseCase(branchRepo, assetRepo, log.Component("branches"))
	assetUC := usecase.NewAssetUseCase(
		assetRepo, branchRepo, txRunner,
		assetid.NewGenerator(assetRepo),
		manuals,
		log.Component("assets"),
	)
	dashboardUC := analytics.NewDashboardUseCase(assetRepo, branchRepo)

	// Exportaciones: PDF con Maroto, hoja de cálculo con excelize
	exportUC := reporting.NewExportUseCase(
		assetRepo,
		infrapdf.NewMarotoAssetReport(),
		infraxlsx.NewExcelizeGenerator(),
		log.Component("exports"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        httpRouter.NewViews(),
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
		BodyLimit:    cfg.Upload.MaxBytes(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		DashboardUC: dashboardUC,
		BranchUC:    branchUC,
		AssetUC:     assetUC,
		ExportUC:    exportUC,
		Session: httpRouter.SessionConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Secure:     cfg.JWT.CookieSecure,
		},
		Log: log.Component("session"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
