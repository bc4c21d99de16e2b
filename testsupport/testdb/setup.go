package testdb

import (
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	tcpg "github.com/f1stats/f1stats-service/testsupport/tcpostgres"
)

// InitTestDB returns a pool to an empty, migrated database. If TESTDB_URL is
// set that database is used, otherwise a postgres container is started.
func InitTestDB() *pgxpool.Pool {
	var pool *pgxpool.Pool

	if os.Getenv("TESTDB_URL") != "" {
		pool = tcpg.SetupExternalTestDB()
	} else {
		pool = tcpg.SetupTestDB()
	}
	tcpg.ClearAllTables(pool)
	return pool
}
