package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-insights/models"
)

const listingsCSV = `price,model_year,model,condition,cylinders,fuel,odometer,transmission,type,paint_color,is_4wd,date_posted,days_listed
9400,2011,bmw x5,good,6,gas,145000,automatic,SUV,black,1,2018-06-23,19
25500,2013,ford f-150,good,6,gas,88705,automatic,pickup,white,1,2018-10-19,50
5500,2013,hyundai sonata,like new,4,gas,110000,automatic,sedan,red,0,2019-02-07,79
14900,2017,ford focus,excellent,4,gas,80903,automatic,sedan,black,0,2019-04-02,28
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vehicles_us.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := executeLogged(t, args...)
	return stdout, err
}

// executeLogged runs the root command with args and returns stdout and the log output.
func executeLogged(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("LOG_LEVEL", "info")
	t.Cleanup(func() {
		dataPath, dataSource, verbose, quiet = "", "", false, false
	})

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd(t *testing.T) {
	assert.Equal(t, "vehicle-insights", RootCmd.Use)

	var names []string
	for _, c := range RootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "summary", "export", "snapshot"})
}

func TestCommandArgs(t *testing.T) {
	cmd := &cobra.Command{}

	assert.Error(t, exportCmd.Args(cmd, []string{}))
	assert.NoError(t, exportCmd.Args(cmd, []string{"out"}))
	assert.Error(t, snapshotCmd.Args(cmd, []string{"http://localhost:8501"}))
	assert.NoError(t, snapshotCmd.Args(cmd, []string{"http://localhost:8501", "dash.png"}))
	assert.Error(t, summaryCmd.Args(cmd, []string{"extra"}))
}

func TestSummaryCommand(t *testing.T) {
	out, err := execute(t, "summary", "--data", writeCSV(t, listingsCSV), "--quiet")
	require.NoError(t, err)

	assert.Contains(t, out, "VEHICLE SALES DATA ANALYSIS")
	assert.Contains(t, out, "Listings by Manufacturer")
	assert.Contains(t, out, "Ford")
	assert.Contains(t, out, "ford f-150")
}

func TestSummaryMissingFile(t *testing.T) {
	_, err := execute(t, "summary", "--data", filepath.Join(t.TempDir(), "missing.csv"), "--quiet")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDataUnavailable)
}

func TestSummarySchemaError(t *testing.T) {
	_, err := execute(t, "summary", "--data", writeCSV(t, "price,model\n100,ford f-150\n"), "--quiet")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrSchema)
	assert.Contains(t, err.Error(), "type")
}

func TestExportCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	_, err := execute(t, "export", dir, "--data", writeCSV(t, listingsCSV), "--quiet")
	require.NoError(t, err)

	for _, name := range []string{
		"preview.json", "summary.json",
		"price.png", "price.json",
		"odometer.png", "odometer.json",
		"manufacturers.png", "manufacturers.json",
		"price-by-year.png", "price-by-year.json",
		"price-by-type.png", "price-by-type.json",
	} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	b, err := os.ReadFile(filepath.Join(dir, "manufacturers.json"))
	require.NoError(t, err)
	var rows []models.ManufacturerModelCount
	require.NoError(t, json.Unmarshal(b, &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, models.ManufacturerModelCount{Manufacturer: "Ford", Model: "ford f-150", Count: 1}, rows[0])
	assert.Equal(t, models.ManufacturerModelCount{Manufacturer: "Ford", Model: "ford focus", Count: 1}, rows[1])
	assert.Equal(t, "Bmw", rows[2].Manufacturer)
}

func TestExportEmptyDatasetSkipsImages(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "export", dir, "--data", writeCSV(t, "price,model,type\n"), "--quiet")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "manufacturers.json"))
	assert.NoFileExists(t, filepath.Join(dir, "manufacturers.png"))
	assert.NoFileExists(t, filepath.Join(dir, "price.png"))
}

func TestExportLogsFilesWritten(t *testing.T) {
	_, logs, err := executeLogged(t, "export", t.TempDir(), "--data", writeCSV(t, listingsCSV))
	require.NoError(t, err)
	assert.Contains(t, logs, "Exported 12 files (7 charts and datasets)")

	_, logs, err = executeLogged(t, "export", t.TempDir(), "--data", writeCSV(t, "price,model,type\n"))
	require.NoError(t, err)
	assert.Contains(t, logs, "Exported 7 files (7 charts and datasets)")
}
