package models

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestSchemaErrorMatching(t *testing.T) {
	err := fmt.Errorf("prepare: %w", &SchemaError{Column: ColModel})

	assert.True(t, errors.Is(err, ErrSchema))
	assert.False(t, errors.Is(err, ErrDataUnavailable))
	assert.Contains(t, err.Error(), `"model"`)

	var se *SchemaError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, ColModel, se.Column)
}

func TestDataUnavailableErrorMatching(t *testing.T) {
	err := &DataUnavailableError{Source: "vehicles_us.csv", Err: os.ErrNotExist}

	assert.True(t, errors.Is(err, ErrDataUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, ErrSchema))
	assert.Equal(t, "data unavailable: vehicles_us.csv: file does not exist", err.Error())

	bare := &DataUnavailableError{Source: "db"}
	assert.Equal(t, "data unavailable: db", bare.Error())
}

func TestDatasetHasColumn(t *testing.T) {
	ds := &Dataset{Columns: []string{ColPrice, ColModel, ColType}}

	assert.True(t, ds.HasColumn(ColModel))
	assert.False(t, ds.HasColumn(ColManufacturer))
	assert.Equal(t, 0, ds.Len())

	var nilDS *Dataset
	assert.Equal(t, 0, nilDS.Len())
}

func TestListingComplete(t *testing.T) {
	full := Listing{
		Price: 9400, ModelYear: intPtr(2011), Model: "bmw x5", Condition: "good",
		Cylinders: intPtr(6), Fuel: "gas", Odometer: floatPtr(145000), Transmission: "automatic",
		Type: "SUV", PaintColor: "black", Is4WD: boolPtr(true), DatePosted: "2018-06-23",
		DaysListed: intPtr(19),
	}
	all := []string{
		ColPrice, ColModelYear, ColModel, ColCondition, ColCylinders, ColFuel, ColOdometer,
		ColTransmission, ColType, ColPaintColor, ColIs4WD, ColDatePosted, ColDaysListed,
	}
	assert.True(t, full.Complete(all))

	noYear := full
	noYear.ModelYear = nil
	assert.False(t, noYear.Complete(all))

	noColor := full
	noColor.PaintColor = ""
	assert.False(t, noColor.Complete(all))
}

func TestListingCompleteOnlyChecksGivenColumns(t *testing.T) {
	sparse := Listing{Price: 5500, Model: "toyota camry", Type: "sedan", Manufacturer: "Toyota", TypeCapitalized: "Sedan"}
	cols := []string{ColPrice, ColModel, ColType, ColManufacturer, ColTypeCapitalized}
	assert.True(t, sparse.Complete(cols))
	assert.True(t, sparse.Complete(nil))

	assert.False(t, sparse.Complete(append(cols, ColOdometer)))

	noType := sparse
	noType.Type = ""
	assert.False(t, noType.Complete(cols))
	assert.True(t, noType.Complete([]string{ColPrice, ColModel, "notes"}))
}

func TestHistogramTotal(t *testing.T) {
	h := Histogram{Bins: []HistogramBin{{Count: 2}, {Count: 0}, {Count: 5}}, Excluded: 4}
	assert.Equal(t, 7, h.Total())
}
