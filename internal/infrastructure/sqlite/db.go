// Package sqlite implements the journal repositories on SQLite via the
// ncruces WASM driver.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	msqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/opdeck/internal/journal/domain"
	"github.com/zjrosen/opdeck/internal/log"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// DB wraps the journal database connection.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens (creating if needed) the journal database at path, backs up
// an existing file to path+".bak" and applies pending migrations.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}
	if err := backup(path); err != nil {
		return nil, err
	}

	dsn := "file:" + path +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)&_pragma=foreign_keys(on)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	// One writer keeps the WAL pragmas on a single connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pinging journal: %w", err)
	}
	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Info(log.CatJournal, "Journal open", "path", path)
	return &DB{conn: conn, path: path}, nil
}

// RunRepository returns the run repository backed by this database.
func (db *DB) RunRepository() domain.RunRepository {
	return newRunRepository(db.conn)
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func backup(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: journal path comes from config
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading journal for backup: %w", err)
	}
	if err := os.WriteFile(path+".bak", data, 0o600); err != nil {
		return fmt.Errorf("writing journal backup: %w", err)
	}
	return nil
}

// runMigrations brings the schema up to the newest embedded migration.
// The migrator is not closed: closing it would close conn.
func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	defer func() { _ = src.Close() }()

	driver, err := msqlite.WithInstance(conn, &msqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("journal schema version %d is dirty", version)
	}
	log.Debug(log.CatJournal, "Journal schema ready", "version", version)
	return nil
}
