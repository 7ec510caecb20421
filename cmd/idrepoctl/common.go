package main

import (
	"fmt"
	"os"

	"github.com/doodlesbykumbi/idrepo/pkg/config"
	"github.com/doodlesbykumbi/idrepo/pkg/connector"
	"github.com/doodlesbykumbi/idrepo/pkg/db"
	"github.com/doodlesbykumbi/idrepo/pkg/implcache"
	storegorm "github.com/doodlesbykumbi/idrepo/pkg/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

// openRepositories connects to DATABASE_URL and wires the repositories with
// a live connector registry and an implementation cache sized from cfg
func openRepositories(cfg *config.IdrepoConfig) (*storegorm.Repositories, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	conn, err := db.Connect(db.Config{Dialect: cfg.SQLDialect})
	if err != nil {
		return nil, err
	}

	registry, err := connector.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to create connector registry: %w", err)
	}

	cacheSize := cfg.ImplementationCacheSize
	if cacheSize == 0 {
		cacheSize = implcache.DefaultSize
	}
	cache, err := implcache.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create implementation cache: %w", err)
	}

	return storegorm.New(conn,
		storegorm.WithRegistry(registry),
		storegorm.WithImplementationCache(cache),
	), nil
}

// usesMigrations reports whether the schema is managed by the SQL migrations.
// Other dialects are auto-migrated from the models.
func usesMigrations(cfg *config.IdrepoConfig) bool {
	dialect := cfg.SQLDialect
	if dialect == "" {
		dialect = db.Scheme(db.URL())
	}
	return dialect == "postgres" || dialect == "postgresql"
}
