package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"vehicle-insights/models"
)

// CSVSource reads listings from a CSV file with a header row.
type CSVSource struct {
	path string
}

// NewCSVSource returns a source for the CSV file at path. The file is opened on Load.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load reads the whole file. Any read or decode failure is a DataUnavailableError.
func (c *CSVSource) Load(ctx context.Context) (*models.Dataset, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, c.unavailable(err)
	}
	defer f.Close()

	ds, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, c.unavailable(err)
	}
	return ds, nil
}

// Close is a no-op; the file is closed at the end of every Load.
func (c *CSVSource) Close() error {
	return nil
}

func (c *CSVSource) unavailable(err error) error {
	return &models.DataUnavailableError{Source: c.path, Err: err}
}

// ReadCSV decodes a CSV stream whose first record is the header.
func ReadCSV(ctx context.Context, r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: %w", errEmptySource)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	// Field strings stay valid across reads; only the record slice is reused.
	header = append([]string(nil), header...)
	reader.ReuseRecord = true

	d := newRowDecoder(header)
	ds := &models.Dataset{Columns: d.columns, Listings: make([]models.Listing, 0, 1024)}

	for line := 2; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		if isBlankRow(record) {
			continue
		}

		l, err := d.decode(line, record)
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		ds.Listings = append(ds.Listings, l)
	}
	return ds, nil
}
