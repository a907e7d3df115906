// seed aplica las migraciones y carga los datos de ejemplo (sucursales, usuarios por rol y activos).
//
// Uso: go run ./cmd/seed
// Es idempotente: lo que ya existe no se vuelve a crear.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Fritz-nvm/management-system/internal/application/auth"
	"github.com/Fritz-nvm/management-system/internal/application/seed"
	"github.com/Fritz-nvm/management-system/internal/application/usecase"
	"github.com/Fritz-nvm/management-system/internal/domain/assetid"
	"github.com/Fritz-nvm/management-system/internal/infrastructure/postgres"
	"github.com/Fritz-nvm/management-system/internal/infrastructure/storage"
	"github.com/Fritz-nvm/management-system/pkg/config"
	"github.com/Fritz-nvm/management-system/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	manuals, err := storage.NewLocalManuals(cfg.Upload.MediaDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de manuales")
	}

	branchRepo := postgres.NewBranchRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, branchRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	assetUC := usecase.NewAssetUseCase(assetRepo, branchRepo, postgres.NewTxRunner(pool),
		assetid.NewGenerator(assetRepo), manuals, log.Component("assets"))
	branchUC := usecase.NewBranchUseCase(branchRepo, assetRepo, log.Component("branches"))

	res, err := seed.NewSeeder(branchRepo, userRepo, assetRepo, branchUC, assetUC, authUC, log.Component("seed")).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("carga de datos de ejemplo")
	}

	fmt.Printf("Sucursales creadas: %d\nUsuarios creados: %d\nActivos creados: %d\n", res.Branches, res.Users, res.Assets)
	fmt.Println()
	fmt.Println("Demo credentials:")
	fmt.Println("  Super Admin:       admin@hospital.cm / Admin123!")
	fmt.Println("  Branch Manager:    manager@hospital.cm / Manager123!")
	fmt.Println("  Inventory Officer: officer@hospital.cm / Officer123!")
}
