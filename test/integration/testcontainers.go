package integration

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/idrepo/pkg/connector"
	"github.com/doodlesbykumbi/idrepo/pkg/db"
	"github.com/doodlesbykumbi/idrepo/pkg/implcache"
	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"github.com/doodlesbykumbi/idrepo/pkg/server"
	"github.com/doodlesbykumbi/idrepo/pkg/server/endpoints"
	storegorm "github.com/doodlesbykumbi/idrepo/pkg/store/gorm"
)

// migrationsTable matches the table "idrepoctl db migrate" records versions in
const migrationsTable = "idrepo_schema_migrations"

const usage = `either IDREPO_BINARY or IDREPO_INLINE=1 is required

binary mode:
  go build -o idrepoctl ./cmd/idrepoctl
  INTEGRATION_TEST=1 IDREPO_BINARY=$(pwd)/idrepoctl go test -v ./test/integration/...

inline mode:
  INTEGRATION_TEST=1 IDREPO_INLINE=1 go test -v ./test/integration/...`

// TestContext is a migrated PostgreSQL database with an idrepo server in
// front of it
type TestContext struct {
	DB          *gorm.DB
	DatabaseURL string
	ServerURL   string
	HTTPClient  *http.Client

	cleanups []func(ctx context.Context)
}

// NewTestContext starts PostgreSQL in a container, applies db/migrations and
// starts a server. The server runs in-process when IDREPO_INLINE=1, otherwise
// the binary at IDREPO_BINARY is launched.
func NewTestContext(ctx context.Context) (_ *TestContext, err error) {
	inline := os.Getenv("IDREPO_INLINE") == "1"
	binary := os.Getenv("IDREPO_BINARY")
	switch {
	case inline:
		logger.Log.Info("using inline server")
	case binary == "":
		return nil, errors.New(usage)
	default:
		if _, err := os.Stat(binary); err != nil {
			return nil, fmt.Errorf("IDREPO_BINARY: %w", err)
		}
		logger.Log.Info("using server binary", zap.String("path", binary))
	}

	root, err := findProjectRoot()
	if err != nil {
		return nil, err
	}

	tc := &TestContext{HTTPClient: &http.Client{Timeout: 10 * time.Second}}
	defer func() {
		if err != nil {
			tc.Close(ctx)
		}
	}()

	tc.DatabaseURL, err = tc.startPostgres(ctx)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(tc.DatabaseURL, filepath.Join(root, "db", "migrations")); err != nil {
		return nil, fmt.Errorf("migrating: %w", err)
	}

	tc.DB, err = db.Connect(db.Config{URL: tc.DatabaseURL})
	if err != nil {
		return nil, err
	}
	tc.onClose(func(context.Context) {
		if sqlDB, err := tc.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	port, err := freePort()
	if err != nil {
		return nil, err
	}
	tc.ServerURL = "http://127.0.0.1:" + port

	if inline {
		err = tc.startInline(port)
	} else {
		err = tc.startBinary(binary, port)
	}
	if err != nil {
		return nil, fmt.Errorf("starting server: %w", err)
	}

	if err := waitForServer(tc.ServerURL, 30*time.Second); err != nil {
		return nil, err
	}
	return tc, nil
}

// Close releases resources in reverse order of acquisition
func (tc *TestContext) Close(ctx context.Context) {
	for i := len(tc.cleanups) - 1; i >= 0; i-- {
		tc.cleanups[i](ctx)
	}
	tc.cleanups = nil
}

func (tc *TestContext) onClose(fn func(ctx context.Context)) {
	tc.cleanups = append(tc.cleanups, fn)
}

func (tc *TestContext) startPostgres(ctx context.Context) (string, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("idrepo_test"),
		tcpostgres.WithUsername("idrepo"),
		tcpostgres.WithPassword("idrepo"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return "", fmt.Errorf("starting postgres: %w", err)
	}
	tc.onClose(func(ctx context.Context) { _ = container.Terminate(ctx) })

	return container.ConnectionString(ctx, "sslmode=disable")
}

func (tc *TestContext) startInline(port string) error {
	registry, err := connector.NewRegistry()
	if err != nil {
		return err
	}
	cache, err := implcache.New(implcache.DefaultSize)
	if err != nil {
		return err
	}

	repos := storegorm.New(tc.DB, storegorm.WithRegistry(registry), storegorm.WithImplementationCache(cache))
	s := server.NewServer(repos, "127.0.0.1", port, 10*time.Second)
	endpoints.RegisterAll(s)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("inline server stopped", zap.Error(err))
		}
	}()
	tc.onClose(func(ctx context.Context) { _ = s.Shutdown(ctx) })
	return nil
}

func (tc *TestContext) startBinary(binary, port string) error {
	ctx, cancel := context.WithCancel(context.Background())

	cmd := exec.CommandContext(ctx, binary, "server", "--no-migrate", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+tc.DatabaseURL,
		"IDREPO_BATCH_REAP_INTERVAL=0",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return err
	}
	tc.onClose(func(context.Context) {
		cancel()
		_ = cmd.Wait()
	})
	return nil
}

func freePort() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port), nil
}

// waitForServer polls /health until it answers 200
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server at %s not ready after %v", serverURL, timeout)
}

func findProjectRoot() (string, error) {
	for _, p := range []string{"../..", "..", "."} {
		if _, err := os.Stat(filepath.Join(p, "go.mod")); err == nil {
			return filepath.Abs(p)
		}
	}
	return "", errors.New("project root not found (looking for go.mod)")
}

// runMigrations applies the SQL migrations the way "idrepoctl db migrate" does
func runMigrations(dbURL, migrationsDir string) error {
	m, err := migrate.New("file://"+migrationsDir, dbURL+"&x-migrations-table="+migrationsTable)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
