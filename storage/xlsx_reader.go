package storage

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"vehicle-insights/models"
)

// XLSXSource reads listings from one worksheet of an Excel workbook.
type XLSXSource struct {
	path  string
	sheet string
}

// NewXLSXSource returns a source for the workbook at path. An empty sheet selects
// the first worksheet.
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

func (x *XLSXSource) Load(ctx context.Context) (*models.Dataset, error) {
	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return nil, x.unavailable(fmt.Errorf("xlsx: open: %w", err))
	}
	defer f.Close()

	ds, err := ReadWorkbook(ctx, f, x.sheet)
	if err != nil {
		return nil, x.unavailable(err)
	}
	return ds, nil
}

func (x *XLSXSource) Close() error {
	return nil
}

func (x *XLSXSource) unavailable(err error) error {
	return &models.DataUnavailableError{Source: x.path, Err: err}
}

// ReadWorkbook decodes a worksheet whose first row is the header.
func ReadWorkbook(ctx context.Context, f *excelize.File, sheet string) (*models.Dataset, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx: %w", errEmptySource)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", sheet, errEmptySource)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds, err := decodeTable(rows[0], rows[1:], 2)
	if err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", sheet, err)
	}
	return ds, nil
}
