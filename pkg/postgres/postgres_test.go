package postgres_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/library-records/pkg/postgres"
)

func TestDB_DSN(t *testing.T) {
	t.Parallel()
	cfg := postgres.DB{
		Host:     "db",
		Port:     "5433",
		Username: "library",
		Password: "p@ss word",
		NameDB:   "records",
		SSLMode:  "disable",
	}
	require.Equal(t, "postgres://library:p%40ss%20word@db:5433/records?sslmode=disable", cfg.DSN())
}

func TestMigrate_UnknownDirection(t *testing.T) {
	t.Parallel()
	cfg := postgres.DB{Host: "127.0.0.1", Port: "1", Username: "library", NameDB: "records", SSLMode: "disable"}
	// the pool and the database/sql handle connect lazily, so no server is needed here
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	require.NoError(t, err)
	defer pool.Close()

	migrations := fstest.MapFS{"001_init.sql": {Data: []byte("-- +goose Up\nselect 1;\n")}}
	err = postgres.Migrate(pool, migrations, postgres.Direction("sideways"))
	require.EqualError(t, err, `unknown migrate direction "sideways"`)
}
