package storage

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"vehicle-insights/models"
)

var (
	errEmptySource = errors.New("no header row")
	errMalformed   = errors.New("malformed value")
)

// rowDecoder maps string cells of a tabular source onto models.Listing.
// Columns it does not know are kept in the dataset header but not decoded.
type rowDecoder struct {
	columns []string
	index   map[string]int
}

func newRowDecoder(header []string) *rowDecoder {
	d := &rowDecoder{
		columns: make([]string, len(header)),
		index:   make(map[string]int, len(header)),
	}
	for i, h := range header {
		name := normaliseColumn(h)
		d.columns[i] = name
		if _, dup := d.index[name]; !dup {
			d.index[name] = i
		}
	}
	return d
}

// normaliseColumn trims a header cell, drops a UTF-8 BOM and lower-cases it.
func normaliseColumn(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ToLower(strings.TrimSpace(s))
}

func (d *rowDecoder) cell(record []string, column string) string {
	i, ok := d.index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// decode converts one record. line is only used in error messages.
func (d *rowDecoder) decode(line int, record []string) (models.Listing, error) {
	var (
		l   models.Listing
		err error
	)
	fail := func(column string, cause error) (models.Listing, error) {
		return models.Listing{}, fmt.Errorf("line %d, column %q: %w: %v", line, column, errMalformed, cause)
	}

	if l.Price, err = parseFloat(d.cell(record, models.ColPrice)); err != nil {
		return fail(models.ColPrice, err)
	}
	if l.ModelYear, err = parseOptionalInt(d.cell(record, models.ColModelYear)); err != nil {
		return fail(models.ColModelYear, err)
	}
	if l.Cylinders, err = parseOptionalInt(d.cell(record, models.ColCylinders)); err != nil {
		return fail(models.ColCylinders, err)
	}
	if l.Odometer, err = parseOptionalFloat(d.cell(record, models.ColOdometer)); err != nil {
		return fail(models.ColOdometer, err)
	}
	if l.Is4WD, err = parseOptionalBool(d.cell(record, models.ColIs4WD)); err != nil {
		return fail(models.ColIs4WD, err)
	}
	if l.DaysListed, err = parseOptionalInt(d.cell(record, models.ColDaysListed)); err != nil {
		return fail(models.ColDaysListed, err)
	}

	l.Model = d.cell(record, models.ColModel)
	l.Condition = d.cell(record, models.ColCondition)
	l.Fuel = d.cell(record, models.ColFuel)
	l.Transmission = d.cell(record, models.ColTransmission)
	l.Type = d.cell(record, models.ColType)
	l.PaintColor = d.cell(record, models.ColPaintColor)
	l.DatePosted = d.cell(record, models.ColDatePosted)
	l.Manufacturer = d.cell(record, models.ColManufacturer)
	l.TypeCapitalized = d.cell(record, models.ColTypeCapitalized)
	return l, nil
}

// parseFloat treats a missing cell as zero.
func parseFloat(s string) (float64, error) {
	if isMissing(s) {
		return 0, nil
	}
	return parseFinite(s)
}

func parseOptionalFloat(s string) (*float64, error) {
	if isMissing(s) {
		return nil, nil
	}
	v, err := parseFinite(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseFinite rejects the infinities strconv accepts; they cannot be charted or
// encoded as JSON.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// parseOptionalInt accepts integral floats such as "2011.0", which is how
// nullable integer columns come out of most exports.
func parseOptionalInt(s string) (*int, error) {
	f, err := parseOptionalFloat(s)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != math.Trunc(*f) {
		return nil, fmt.Errorf("%q is not an integer", s)
	}
	v := int(*f)
	return &v, nil
}

func parseOptionalBool(s string) (*bool, error) {
	if isMissing(s) {
		return nil, nil
	}
	var v bool
	switch strings.ToLower(s) {
	case "1", "1.0", "true", "t", "yes":
		v = true
	case "0", "0.0", "false", "f", "no":
		v = false
	default:
		return nil, fmt.Errorf("%q is not a boolean", s)
	}
	return &v, nil
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "null", "na", "n/a":
		return true
	}
	return false
}

// decodeTable builds a Dataset from a header and its data rows.
func decodeTable(header []string, rows [][]string, firstLine int) (*models.Dataset, error) {
	d := newRowDecoder(header)
	ds := &models.Dataset{
		Columns:  d.columns,
		Listings: make([]models.Listing, 0, len(rows)),
	}
	for i, record := range rows {
		if isBlankRow(record) {
			continue
		}
		l, err := d.decode(firstLine+i, record)
		if err != nil {
			return nil, err
		}
		ds.Listings = append(ds.Listings, l)
	}
	return ds, nil
}

func isBlankRow(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
