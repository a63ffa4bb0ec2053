// Package factory selects the storage backend named by the configuration.
package factory

import (
	"context"
	"fmt"

	"github.com/hongminglow/catalog-api/internal/config"
	"github.com/hongminglow/catalog-api/internal/storage"
	"github.com/hongminglow/catalog-api/internal/storage/jsonfile"
	"github.com/hongminglow/catalog-api/internal/storage/postgres"
	"github.com/hongminglow/catalog-api/internal/storage/sqlite"
)

// NewBackend opens the backend for cfg.StorageDriver.
func NewBackend(ctx context.Context, cfg config.Config) (storage.Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverJSONFile:
		return jsonfile.Open(cfg.DataFile)
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.SQLitePath, cfg.DocumentName)
	case config.DriverPostgres:
		return postgres.NewDocumentStore(ctx, cfg.DatabaseURL, cfg.DocumentName)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER: %s", cfg.StorageDriver)
	}
}
