package test_utils

import (
	"context"
	"testing"

	"github.com/budgetgarden/budgetgarden/internal/config"
	"github.com/budgetgarden/budgetgarden/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	testDbName     = "budgetgarden"
	testDbUser     = "test_budgetgarden"
	testDbPassword = "test_budgetgarden"
)

// TestWithDB starts a Postgres container, applies all migrations and returns a pool connected to it.
// The test is skipped in short mode or when no container runtime is available.
func TestWithDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Postgres test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase(testDbName),
		postgres.WithUsername(testDbUser),
		postgres.WithPassword(testDbPassword),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to read container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to read container port: %v", err)
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   testDbUser,
		Pass:   testDbPassword,
		Name:   testDbName,
		Schema: "public",
	}

	if err := database.Migrate(cfg); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	pool, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open database connection: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}
