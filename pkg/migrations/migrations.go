package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

type migrator interface {
	Up() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Close() (sourceErr error, databaseErr error)
}

var driverFactory = func(db *sql.DB, cfg Config) (database.Driver, error) {
	return postgres.WithInstance(db, &postgres.Config{MigrationsTable: cfg.MigrationsTable})
}

// sourceFactory returns either a source URL or, for embedded files, a named
// source driver.
var sourceFactory = func(cfg Config) (string, source.Driver, error) {
	if cfg.FS != nil {
		d, err := iofs.New(cfg.FS, ".")
		if err != nil {
			return "", nil, err
		}
		return "iofs", d, nil
	}

	absDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolve dir: %w", err)
	}

	// ToSlash keeps the URL valid for Windows paths.
	sourceURL := (&url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absDir),
	}).String()

	return sourceURL, nil, nil
}

var migratorFactory = func(sourceName string, src source.Driver, driver database.Driver) (migrator, error) {
	if src != nil {
		return migrate.NewWithInstance(sourceName, src, "postgres", driver)
	}
	return migrate.NewWithDatabaseInstance(sourceName, "postgres", driver)
}

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Config struct {
	// Dir is read when FS is nil.
	Dir string
	// FS holds embedded *.sql files at its root.
	FS              fs.FS
	MigrationsTable string
	Logger          Logger
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = "migrations"
	}
	if strings.TrimSpace(cfg.MigrationsTable) == "" {
		cfg.MigrationsTable = "schema_migrations"
	}
}

func (cfg Config) info(msg string, args ...any) {
	if cfg.Logger != nil {
		cfg.Logger.Info(msg, args...)
	}
}

func open(ctx context.Context, db *sql.DB, cfg *Config) (migrator, func(), error) {
	if db == nil {
		return nil, nil, fmt.Errorf("migrations: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	cfg.applyDefaults()

	sourceName, src, err := sourceFactory(*cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("migrations: source: %w", err)
	}

	driver, err := driverFactory(db, *cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("migrations: postgres driver: %w", err)
	}

	m, err := migratorFactory(sourceName, src, driver)
	if err != nil {
		return nil, nil, fmt.Errorf("migrations: init: %w", err)
	}

	closeOnce := sync.Once{}
	closeMigrator := func() {
		closeOnce.Do(func() {
			srcErr, dbErr := m.Close()
			if cfg.Logger != nil {
				if srcErr != nil {
					cfg.Logger.Warn("Migrations source close error", "error", srcErr)
				}
				if dbErr != nil {
					cfg.Logger.Warn("Migrations db close error", "error", dbErr)
				}
			}
		})
	}

	return m, closeMigrator, nil
}

// interruptible runs fn and returns early when ctx ends. migrate has no
// context support, so closing the migrator is the only way to interrupt it.
func interruptible(ctx context.Context, closeMigrator func(), fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()

	select {
	case <-ctx.Done():
		closeMigrator()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func Up(ctx context.Context, db *sql.DB, cfg Config) error {
	m, closeMigrator, err := open(ctx, db, &cfg)
	if err != nil {
		return err
	}
	defer closeMigrator()

	cfg.info("Running SQL migrations", "dir", cfg.Dir, "embedded", cfg.FS != nil, "table", cfg.MigrationsTable)

	err = interruptible(ctx, closeMigrator, m.Up)
	if errors.Is(err, migrate.ErrNoChange) {
		cfg.info("No migrations to apply")
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}

	cfg.info("Migrations applied successfully")
	return nil
}

// Down rolls back steps migrations; steps below one means one.
func Down(ctx context.Context, db *sql.DB, cfg Config, steps int) error {
	if steps < 1 {
		steps = 1
	}

	m, closeMigrator, err := open(ctx, db, &cfg)
	if err != nil {
		return err
	}
	defer closeMigrator()

	cfg.info("Rolling back SQL migrations", "steps", steps, "table", cfg.MigrationsTable)

	err = interruptible(ctx, closeMigrator, func() error { return m.Steps(-steps) })
	if errors.Is(err, migrate.ErrNoChange) {
		cfg.info("No migrations to roll back")
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if err != nil {
		return fmt.Errorf("migrations: down: %w", err)
	}

	cfg.info("Migrations rolled back", "steps", steps)
	return nil
}

// Version reports the applied schema version; zero means nothing applied.
func Version(ctx context.Context, db *sql.DB, cfg Config) (uint, bool, error) {
	m, closeMigrator, err := open(ctx, db, &cfg)
	if err != nil {
		return 0, false, err
	}
	defer closeMigrator()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migrations: version: %w", err)
	}

	return version, dirty, nil
}
