// Package migration applies the embedded schema of the delivery journal.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// Migrator is the part of migrate.Migrate used here.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine builds a migrator on an open database, so tests can run
// without touching the filesystem.
type MigrationEngine func(db *sql.DB) (Migrator, error)

// DefaultEngine reads migrations from the embedded sql directory and
// applies them through db. Closing the migrator leaves db open.
func DefaultEngine(db *sql.DB) (Migrator, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	drv, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("open migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	return &sharedDBMigrator{Migrate: m, src: src}, nil
}

// sharedDBMigrator closes only the migration source. The sqlite3 driver
// would otherwise close the caller's database.
type sharedDBMigrator struct {
	*migrate.Migrate
	src source.Driver
}

func (m *sharedDBMigrator) Close() (error, error) {
	return m.src.Close(), nil
}

type Migration struct {
	db     *sql.DB
	engine MigrationEngine
}

func NewMigration(db *sql.DB, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		db:     db,
		engine: engine,
	}
}

// Up applies all pending migrations. No pending migrations is not an error.
func (mg *Migration) Up() (err error) {
	m, err := mg.engine(mg.db)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
