//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/f1stats/f1stats-service/pkg/dataset/postgres"
	"github.com/f1stats/f1stats-service/pkg/db/migrate"
	database "github.com/f1stats/f1stats-service/pkg/db/postgres"
)

// SetupTestDB starts a postgres container (image may be set by TESTDB_IMAGE)
// and returns a pool to the migrated database.
func SetupTestDB() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	opts := []PostgresContainerOption{
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("f1stats-service-test"),
	}
	if image := os.Getenv("TESTDB_IMAGE"); image != "" {
		opts = append(opts, WithImage(image))
	}
	container, err := SetupPostgres(ctx, opts...)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbURL := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())
	return setupPool(dbURL)
}

// SetupExternalTestDB uses the database given by the env var TESTDB_URL
func SetupExternalTestDB() *pgxpool.Pool {
	return setupPool(os.Getenv("TESTDB_URL"))
}

func setupPool(dbURL string) *pgxpool.Pool {
	if err := migrate.MigrateDB(dbURL); err != nil {
		log.Fatal(err)
	}
	pool, err := database.InitWithURL(context.Background(), dbURL)
	if err != nil {
		log.Fatal(err)
	}
	return pool
}

func ClearAllTables(pool *pgxpool.Pool) {
	postgres.NewStore(pool).Clear(context.Background())
}
