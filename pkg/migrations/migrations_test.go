package migrations

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source"
)

type testLogger struct {
	infos  []string
	warns  []string
	errors []string
}

func (l *testLogger) Info(msg string, _ ...any)  { l.infos = append(l.infos, msg) }
func (l *testLogger) Warn(msg string, _ ...any)  { l.warns = append(l.warns, msg) }
func (l *testLogger) Error(msg string, _ ...any) { l.errors = append(l.errors, msg) }

func (l *testLogger) hasInfo(msg string) bool {
	for _, m := range l.infos {
		if m == msg {
			return true
		}
	}
	return false
}

type fakeMigrator struct {
	upErr      error
	stepsErr   error
	steps      int
	version    uint
	dirty      bool
	versionErr error
}

func (m *fakeMigrator) Up() error { return m.upErr }
func (m *fakeMigrator) Steps(n int) error {
	m.steps = n
	return m.stepsErr
}
func (m *fakeMigrator) Version() (uint, bool, error) { return m.version, m.dirty, m.versionErr }
func (m *fakeMigrator) Close() (error, error)         { return nil, nil }

type blockingMigrator struct {
	fakeMigrator
	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
}

func newBlockingMigrator() *blockingMigrator {
	return &blockingMigrator{closeCh: make(chan struct{})}
}

func (m *blockingMigrator) Up() error {
	<-m.closeCh
	return nil
}

func (m *blockingMigrator) Close() (error, error) {
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		close(m.closeCh)
	})
	return nil, nil
}

// stubFactories swaps the package factories for the duration of the test.
func stubFactories(t *testing.T, m migrator, initErr error) *string {
	t.Helper()

	origDriverFactory := driverFactory
	origMigratorFactory := migratorFactory
	t.Cleanup(func() {
		driverFactory = origDriverFactory
		migratorFactory = origMigratorFactory
	})

	var gotSource string
	driverFactory = func(_ *sql.DB, cfg Config) (database.Driver, error) {
		if cfg.MigrationsTable == "" {
			t.Fatalf("expected migrations table to be defaulted")
		}
		return nil, nil
	}
	migratorFactory = func(sourceName string, _ source.Driver, _ database.Driver) (migrator, error) {
		gotSource = sourceName
		if initErr != nil {
			return nil, initErr
		}
		return m, nil
	}

	return &gotSource
}

func TestUp_NilDB(t *testing.T) {
	if err := Up(context.Background(), nil, Config{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUp_ContextAlreadyCancelled_ReturnsCtxErr(t *testing.T) {
	origDriverFactory := driverFactory
	t.Cleanup(func() { driverFactory = origDriverFactory })

	called := atomic.Bool{}
	driverFactory = func(_ *sql.DB, _ Config) (database.Driver, error) {
		called.Store(true)
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Up(ctx, &sql.DB{}, Config{Dir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called.Load() {
		t.Fatalf("expected no driver creation when ctx already cancelled")
	}
}

func TestUp_ContextDeadlineExceeded_ReturnsCtxErr_AndCloses(t *testing.T) {
	block := newBlockingMigrator()
	stubFactories(t, block, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := Up(ctx, &sql.DB{}, Config{Dir: t.TempDir()})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if !block.closed.Load() {
		t.Fatalf("expected migrator.Close to be attempted on ctx cancellation")
	}
}

func TestUp_ErrNoChange_ReturnsNil(t *testing.T) {
	stubFactories(t, &fakeMigrator{upErr: migrate.ErrNoChange}, nil)
	logger := &testLogger{}

	if err := Up(context.Background(), &sql.DB{}, Config{Dir: t.TempDir(), Logger: logger}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !logger.hasInfo("No migrations to apply") {
		t.Fatalf("expected 'No migrations to apply' log")
	}
}

func TestUp_Success_LogsApplied(t *testing.T) {
	stubFactories(t, &fakeMigrator{}, nil)
	logger := &testLogger{}

	if err := Up(context.Background(), &sql.DB{}, Config{Dir: t.TempDir(), Logger: logger}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !logger.hasInfo("Migrations applied successfully") {
		t.Fatalf("expected 'Migrations applied successfully' log")
	}
}

func TestUp_BuildsFileSourceURL(t *testing.T) {
	gotSource := stubFactories(t, &fakeMigrator{upErr: migrate.ErrNoChange}, nil)

	tmp := t.TempDir()
	if err := Up(context.Background(), &sql.DB{}, Config{Dir: tmp}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	abs, _ := filepath.Abs(tmp)
	expected := (&url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(abs),
	}).String()

	if *gotSource != expected {
		t.Fatalf("expected sourceURL %q, got %q", expected, *gotSource)
	}
}

func TestUp_UsesEmbeddedSourceWhenFSSet(t *testing.T) {
	gotSource := stubFactories(t, &fakeMigrator{upErr: migrate.ErrNoChange}, nil)

	fsys := fstest.MapFS{
		"000001_create_waitlist_emails.up.sql":   {Data: []byte("CREATE TABLE waitlist_emails (id SERIAL);")},
		"000001_create_waitlist_emails.down.sql": {Data: []byte("DROP TABLE waitlist_emails;")},
	}

	if err := Up(context.Background(), &sql.DB{}, Config{FS: fsys}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if *gotSource != "iofs" {
		t.Fatalf("expected iofs source, got %q", *gotSource)
	}
}

func TestUp_MigratorInitError(t *testing.T) {
	stubFactories(t, nil, errors.New("boom"))

	err := Up(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "migrations: init") {
		t.Fatalf("expected wrapped init error, got %v", err)
	}
}

func TestUp_HandlesPathsWithSpecialCharacters(t *testing.T) {
	gotSource := stubFactories(t, &fakeMigrator{upErr: migrate.ErrNoChange}, nil)

	tmp := t.TempDir()
	dirWithSpaces := filepath.Join(tmp, "my migrations dir")
	if err := os.MkdirAll(dirWithSpaces, 0755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	if err := Up(context.Background(), &sql.DB{}, Config{Dir: dirWithSpaces}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	parsedURL, err := url.Parse(*gotSource)
	if err != nil {
		t.Fatalf("sourceURL is not a valid URL: %v", err)
	}
	if parsedURL.Scheme != "file" {
		t.Fatalf("expected scheme 'file', got %q", parsedURL.Scheme)
	}

	abs, _ := filepath.Abs(dirWithSpaces)
	if parsedURL.Path != filepath.ToSlash(abs) {
		t.Fatalf("expected path %q, got %q", filepath.ToSlash(abs), parsedURL.Path)
	}
}

func TestDown_StepsBackwards(t *testing.T) {
	m := &fakeMigrator{}
	stubFactories(t, m, nil)

	if err := Down(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()}, 2); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if m.steps != -2 {
		t.Fatalf("expected Steps(-2), got Steps(%d)", m.steps)
	}
}

func TestDown_DefaultsToOneStep(t *testing.T) {
	m := &fakeMigrator{}
	stubFactories(t, m, nil)

	if err := Down(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()}, 0); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if m.steps != -1 {
		t.Fatalf("expected Steps(-1), got Steps(%d)", m.steps)
	}
}

func TestDown_WrapsErrors(t *testing.T) {
	stubFactories(t, &fakeMigrator{stepsErr: errors.New("locked")}, nil)

	err := Down(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()}, 1)
	if err == nil || !strings.Contains(err.Error(), "migrations: down") {
		t.Fatalf("expected wrapped down error, got %v", err)
	}
}

func TestVersion_NilVersionIsZero(t *testing.T) {
	stubFactories(t, &fakeMigrator{versionErr: migrate.ErrNilVersion}, nil)

	version, dirty, err := Version(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if version != 0 || dirty {
		t.Fatalf("expected clean zero version, got %d dirty=%v", version, dirty)
	}
}

func TestVersion_ReportsApplied(t *testing.T) {
	stubFactories(t, &fakeMigrator{version: 3, dirty: true}, nil)

	version, dirty, err := Version(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if version != 3 || !dirty {
		t.Fatalf("expected version 3 dirty, got %d dirty=%v", version, dirty)
	}
}
