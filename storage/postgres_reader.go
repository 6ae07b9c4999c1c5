package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"vehicle-insights/models"
)

// PostgresSource reads listings from a PostgreSQL table. It never writes.
type PostgresSource struct {
	db    *sql.DB
	table string
}

// NewPostgresSource opens a connection to PostgreSQL and checks it is reachable.
// A failed ping is not retried: the dataset is unavailable.
func NewPostgresSource(ctx context.Context, dsn, table string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, &models.DataUnavailableError{Source: "postgres", Err: fmt.Errorf("postgres: open: %w", err)}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &models.DataUnavailableError{Source: "postgres", Err: fmt.Errorf("postgres: ping: %w", err)}
	}
	return NewPostgresSourceFromDB(db, table), nil
}

// NewPostgresSourceFromDB wraps an existing connection pool.
func NewPostgresSourceFromDB(db *sql.DB, table string) *PostgresSource {
	return &PostgresSource{db: db, table: table}
}

// Load retrieves every row of the table in physical order. Columns are read as
// text and decoded like any other tabular source.
func (ps *PostgresSource) Load(ctx context.Context) (*models.Dataset, error) {
	query := "SELECT * FROM " + pq.QuoteIdentifier(ps.table)
	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, ps.unavailable(fmt.Errorf("postgres: query: %w", err))
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, ps.unavailable(fmt.Errorf("postgres: columns: %w", err))
	}

	var records [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, ps.unavailable(fmt.Errorf("postgres: scan row: %w", err))
		}

		record := make([]string, len(header))
		for i, c := range cells {
			if c.Valid {
				record[i] = c.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, ps.unavailable(fmt.Errorf("postgres: rows: %w", err))
	}

	ds, err := decodeTable(header, records, 1)
	if err != nil {
		return nil, ps.unavailable(fmt.Errorf("postgres: %w", err))
	}
	return ds, nil
}

func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}

func (ps *PostgresSource) unavailable(err error) error {
	return &models.DataUnavailableError{Source: "postgres table " + ps.table, Err: err}
}
