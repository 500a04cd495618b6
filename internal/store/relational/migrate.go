package relational

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

// Migrate applies all pending schema migrations from migrationsPath
// against dsn using golang-migrate.
func Migrate(dsn, migrationsPath string) error {
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	sqlDB, err := db.db.DB()
	if err != nil {
		return apperrors.NewStoreError("acquire sql.DB for migration", err)
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return apperrors.NewStoreError("init migration driver", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return apperrors.NewStoreError("load migrations", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.NewStoreError("apply migrations", err)
	}
	return nil
}
