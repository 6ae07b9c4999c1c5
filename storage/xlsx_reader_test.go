package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"vehicle-insights/models"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "vehicles.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXSourceLoad(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"price", "model_year", "model", "condition", "odometer", "type"},
		{15990, 2013, "honda pilot", "excellent", 109473, "SUV"},
		{5500, nil, "toyota camry", "good", nil, "sedan"},
	})

	src := NewXLSXSource(path, "")
	defer src.Close()

	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"price", "model_year", "model", "condition", "odometer", "type"}, ds.Columns)

	pilot := ds.Listings[0]
	assert.Equal(t, 15990.0, pilot.Price)
	require.NotNil(t, pilot.ModelYear)
	assert.Equal(t, 2013, *pilot.ModelYear)
	assert.Equal(t, "honda pilot", pilot.Model)
	require.NotNil(t, pilot.Odometer)
	assert.Equal(t, 109473.0, *pilot.Odometer)

	camry := ds.Listings[1]
	assert.Nil(t, camry.ModelYear)
	assert.Nil(t, camry.Odometer)
	assert.Equal(t, "sedan", camry.Type)
}

func TestXLSXSourceNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "listings", [][]any{
		{"price", "model", "type"},
		{1, "ram 1500", "truck"},
	})

	ds, err := NewXLSXSource(path, "listings").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	_, err = NewXLSXSource(path, "missing").Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDataUnavailable))
}

func TestXLSXSourceMissingFile(t *testing.T) {
	_, err := NewXLSXSource(filepath.Join(t.TempDir(), "nope.xlsx"), "").Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDataUnavailable))
}

func TestXLSXSourceEmptySheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", nil)

	_, err := NewXLSXSource(path, "").Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDataUnavailable))
	assert.True(t, errors.Is(err, errEmptySource))
}
