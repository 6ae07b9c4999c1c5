package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-insights/models"
	"vehicle-insights/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

var baseColumns = []string{models.ColPrice, models.ColModel, models.ColCondition, models.ColType}

func datasetOf(listings ...models.Listing) *models.Dataset {
	cols := make([]string, len(baseColumns))
	copy(cols, baseColumns)
	return &models.Dataset{Columns: cols, Listings: listings}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ford", "Ford"},
		{"Ford", "Ford"},
		{"gmc", "Gmc"},
		{"GMC", "GMC"},
		{"mercedes-benz", "Mercedes-benz"},
		{"pickup", "Pickup"},
		{"SUV", "SUV"},
		{"élan", "Élan"},
		{"4runner", "4runner"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in), "Capitalize(%q)", tt.in)
	}
}

func TestManufacturerOf(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"ford f-150", "Ford"},
		{"Ford F150", "Ford"},
		{"Toyota Camry", "Toyota"},
		{"Tesla", "Tesla"},
		{"chevrolet silverado 1500", "Chevrolet"},
		{"  honda civic", "Honda"},
		{"", models.UnknownManufacturer},
		{"   ", models.UnknownManufacturer},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ManufacturerOf(tt.model), "ManufacturerOf(%q)", tt.model)
	}
}

func TestPrepareDerivesColumns(t *testing.T) {
	p := NewPreparer(newTestLogger())
	in := datasetOf(
		models.Listing{Model: "Ford F150", Type: "pickup"},
		models.Listing{Model: "Ford F150", Type: "pickup"},
		models.Listing{Model: "Toyota Camry", Type: "sedan"},
	)

	out, err := p.Prepare(in)
	require.NoError(t, err)

	var manufacturers, types []string
	for _, l := range out.Listings {
		manufacturers = append(manufacturers, l.Manufacturer)
		types = append(types, l.TypeCapitalized)
	}
	assert.Equal(t, []string{"Ford", "Ford", "Toyota"}, manufacturers)
	assert.Equal(t, []string{"Pickup", "Pickup", "Sedan"}, types)
	assert.True(t, out.HasColumn(models.ColManufacturer))
	assert.True(t, out.HasColumn(models.ColTypeCapitalized))
}

func TestPrepareDoesNotMutateInput(t *testing.T) {
	p := NewPreparer(newTestLogger())
	in := datasetOf(models.Listing{Model: "kia soul", Type: "hatchback"})

	_, err := p.Prepare(in)
	require.NoError(t, err)

	assert.Equal(t, baseColumns, in.Columns)
	assert.Empty(t, in.Listings[0].Manufacturer)
	assert.Empty(t, in.Listings[0].TypeCapitalized)
}

func TestPrepareIsIdempotent(t *testing.T) {
	p := NewPreparer(newTestLogger())
	in := datasetOf(
		models.Listing{Model: "nissan altima", Type: "sedan"},
		models.Listing{Model: "", Type: "truck"},
	)

	once, err := p.Prepare(in)
	require.NoError(t, err)
	twice, err := p.Prepare(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestPrepareKeepsExistingColumns(t *testing.T) {
	p := NewPreparer(newTestLogger())
	in := datasetOf(models.Listing{Model: "ram 1500", Type: "truck", Manufacturer: "RAM", TypeCapitalized: "TRUCK"})
	in.Columns = append(in.Columns, models.ColManufacturer, models.ColTypeCapitalized)

	out, err := p.Prepare(in)
	require.NoError(t, err)

	assert.Equal(t, "RAM", out.Listings[0].Manufacturer)
	assert.Equal(t, "TRUCK", out.Listings[0].TypeCapitalized)
	assert.Len(t, out.Columns, len(in.Columns))
}

func TestPrepareSchemaErrors(t *testing.T) {
	p := NewPreparer(newTestLogger())

	tests := []struct {
		name    string
		columns []string
		missing string
	}{
		{"no model", []string{models.ColPrice, models.ColType}, models.ColModel},
		{"no type", []string{models.ColPrice, models.ColModel}, models.ColType},
		{"nothing", nil, models.ColModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Prepare(&models.Dataset{Columns: tt.columns})
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrSchema))

			var se *models.SchemaError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.missing, se.Column)
		})
	}
}

func TestPrepareEmptyDataset(t *testing.T) {
	p := NewPreparer(newTestLogger())
	out, err := p.Prepare(datasetOf())
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}
