// Schema migrations embedded in the binary and applied with golang-migrate.
// The same source backs the server's startup migration and cmd/migrate.
package migrations

import (
	"embed"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var sqlFS embed.FS

// New builds a migrator over the embedded SQL files for the given database URL.
// The caller owns the returned instance and should Close it.
func New(databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(sqlFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, normalizeURL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("migrations init: %w", err)
	}
	return m, nil
}

// Up applies every pending migration; no pending migrations is not an error.
func Up(databaseURL string) error {
	m, err := New(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// normalizeURL rewrites postgres:// and pgx:// URLs to the pgx5 scheme the
// golang-migrate pgx/v5 driver registers under.
func normalizeURL(u string) string {
	for _, p := range []string{"postgres://", "postgresql://", "pgx://"} {
		if strings.HasPrefix(u, p) {
			return "pgx5://" + strings.TrimPrefix(u, p)
		}
	}
	return u
}
