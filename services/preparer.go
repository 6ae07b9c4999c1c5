package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"vehicle-insights/models"
	"vehicle-insights/utils"
)

// Preparer derives the categorical columns every chart depends on.
type Preparer struct {
	logger *utils.Logger
}

// NewPreparer creates a Preparer with the given logger.
func NewPreparer(logger *utils.Logger) *Preparer {
	return &Preparer{logger: logger}
}

// Prepare returns a copy of ds with the manufacturer and type_capitalized columns.
// A column the source already carries is kept as-is, so preparing twice is a no-op.
// The input dataset is never modified.
func (p *Preparer) Prepare(ds *models.Dataset) (*models.Dataset, error) {
	if ds == nil {
		ds = &models.Dataset{}
	}
	for _, col := range []string{models.ColModel, models.ColType} {
		if !ds.HasColumn(col) {
			return nil, &models.SchemaError{Column: col}
		}
	}

	deriveManufacturer := !ds.HasColumn(models.ColManufacturer)
	deriveType := !ds.HasColumn(models.ColTypeCapitalized)

	columns := make([]string, len(ds.Columns), len(ds.Columns)+2)
	copy(columns, ds.Columns)
	if deriveManufacturer {
		columns = append(columns, models.ColManufacturer)
	}
	if deriveType {
		columns = append(columns, models.ColTypeCapitalized)
	}

	listings := make([]models.Listing, len(ds.Listings))
	unknown := 0
	for i, l := range ds.Listings {
		if deriveManufacturer {
			l.Manufacturer = ManufacturerOf(l.Model)
			if l.Manufacturer == models.UnknownManufacturer {
				unknown++
			}
		}
		if deriveType {
			l.TypeCapitalized = Capitalize(l.Type)
		}
		listings[i] = l
	}

	if unknown > 0 {
		p.logger.Warn("[preparer] %d listings have no model; grouped as %q", unknown, models.UnknownManufacturer)
	}
	p.logger.Info("[preparer] Prepared %d listings (derived manufacturer: %t, type_capitalized: %t)",
		len(listings), deriveManufacturer, deriveType)

	return &models.Dataset{Columns: columns, Listings: listings}, nil
}

// ManufacturerOf returns the capitalized first space-delimited token of model.
// A blank model maps to models.UnknownManufacturer.
func ManufacturerOf(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		return models.UnknownManufacturer
	}
	first, _, _ := strings.Cut(model, " ")
	return Capitalize(first)
}

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return s
	}
	return string(upper) + s[size:]
}
