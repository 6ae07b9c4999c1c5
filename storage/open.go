package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"vehicle-insights/config"
)

// Source kinds accepted in DATA_SOURCE.
const (
	KindCSV      = "csv"
	KindXLSX     = "xlsx"
	KindPostgres = "postgres"
)

// Kind returns the configured source kind, falling back to the data file extension.
func Kind(cfg *config.Config) string {
	if cfg.DataSource != "" {
		return cfg.DataSource
	}
	switch strings.ToLower(filepath.Ext(cfg.DataPath)) {
	case ".xlsx", ".xlsm":
		return KindXLSX
	default:
		return KindCSV
	}
}

// Open returns the ListingSource selected by cfg.
func Open(ctx context.Context, cfg *config.Config) (ListingSource, error) {
	switch kind := Kind(cfg); kind {
	case KindCSV:
		return NewCSVSource(cfg.DataPath), nil
	case KindXLSX:
		return NewXLSXSource(cfg.DataPath, cfg.SheetName), nil
	case KindPostgres:
		return NewPostgresSource(ctx, cfg.DSN(), cfg.PostgresTable)
	default:
		return nil, fmt.Errorf("storage: unknown source kind %q", kind)
	}
}

// Describe names the source in log lines.
func Describe(cfg *config.Config) string {
	if Kind(cfg) == KindPostgres {
		return fmt.Sprintf("postgres %s:%s/%s (table %s)", cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB, cfg.PostgresTable)
	}
	return cfg.DataPath
}
