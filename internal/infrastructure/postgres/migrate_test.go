package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/taller?sslmode=disable", pgx5URL("postgres://u:p@db:5432/taller?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/taller", pgx5URL("postgresql://u@db/taller"))
	assert.Equal(t, "pgx5://ya/estaba", pgx5URL("pgx5://ya/estaba"))
}

func TestMigracionesEmbebidas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "migrations/0001_init.up.sql")
	assert.Contains(t, files, "migrations/0001_init.down.sql")

	up, err := fs.ReadFile(migrationsFS, "migrations/0001_init.up.sql")
	require.NoError(t, err)
	for _, table := range []string{"users", "services", "orders", "order_works", "order_parts", "expenses", "comments", "audit_logs"} {
		assert.Contains(t, string(up), "CREATE TABLE "+table+" (")
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% \_x\\`, escapeLike(`50% _x\`))
}
