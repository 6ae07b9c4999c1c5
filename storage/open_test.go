package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-insights/config"
)

func TestKind(t *testing.T) {
	tests := []struct {
		cfg  config.Config
		want string
	}{
		{config.Config{DataPath: "notebooks/vehicles_us.csv"}, KindCSV},
		{config.Config{DataPath: "data/vehicles.XLSX"}, KindXLSX},
		{config.Config{DataPath: "data/vehicles.xlsm"}, KindXLSX},
		{config.Config{DataPath: "data/vehicles"}, KindCSV},
		{config.Config{DataPath: "data/vehicles.csv", DataSource: KindPostgres}, KindPostgres},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Kind(&tt.cfg), "Kind(%+v)", tt.cfg)
	}
}

func TestOpenFileSources(t *testing.T) {
	src, err := Open(context.Background(), &config.Config{DataPath: "vehicles_us.csv"})
	require.NoError(t, err)
	assert.IsType(t, &CSVSource{}, src)

	src, err = Open(context.Background(), &config.Config{DataPath: "vehicles.xlsx", SheetName: "data"})
	require.NoError(t, err)
	assert.IsType(t, &XLSXSource{}, src)

	_, err = Open(context.Background(), &config.Config{DataSource: "parquet"})
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "vehicles_us.csv", Describe(&config.Config{DataPath: "vehicles_us.csv"}))
	assert.Equal(t, "postgres db:5432/cars (table vehicles)", Describe(&config.Config{
		DataSource: KindPostgres, PostgresHost: "db", PostgresPort: "5432", PostgresDB: "cars", PostgresTable: "vehicles",
	}))
}
