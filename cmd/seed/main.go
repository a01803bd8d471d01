// seed crea el esquema, los usuarios por defecto y el juego de datos de ejemplo
// en las tablas vacías.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL o DB_*, BOOTSTRAP_*_PASSWORD).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/factory-api/internal/application/auth"
	"github.com/jhoicas/factory-api/internal/application/seed"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/factory-api/pkg/config"
	"github.com/jhoicas/factory-api/pkg/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{AppName: cfg.App.Name + "-seed"})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	repos := postgres.NewRepositories(pool)
	txRunner := postgres.NewTxRunner(pool)
	generator := identifier.NewGenerator()
	authUC := auth.NewAuthUseCase(repos, txRunner, generator, auth.JWTConfig{
		Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
	})
	seeder := seed.NewSeeder(authUC, txRunner, generator, log)

	if err := seeder.EnsureDefaultUsers(ctx, seed.Passwords{
		Admin:   cfg.Bootstrap.AdminPassword,
		Manager: cfg.Bootstrap.ManagerPassword,
	}); err != nil {
		return err
	}
	admin, err := repos.Users.GetByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	createdBy := ""
	if admin != nil {
		createdBy = admin.ID
	}
	res, err := seeder.SampleData(ctx, createdBy)
	if err != nil {
		return err
	}
	fmt.Printf("Insertados: %d artículos, %d materias primas, %d órdenes, %d órdenes de compra\n",
		res.Items, res.Materials, res.Orders, res.PurchaseOrders)
	return nil
}
