package alerts

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/vecino/alerts/migrations"
)

// OpenDB opens the SQLite database behind a Bun handle. The shim driver
// picks a CGO or pure-Go SQLite implementation depending on the build.
func OpenDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to open database")
	}

	// SQLite serializes writes; a single connection avoids busy errors.
	sqldb.SetMaxOpenConns(1)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to set migration dialect")
	}

	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to run migrations")
	}

	return nil
}
