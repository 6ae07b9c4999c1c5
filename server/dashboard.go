package server

import (
	"errors"
	"fmt"
	"io"

	"vehicle-insights/charts"
	"vehicle-insights/models"
	"vehicle-insights/services"
	"vehicle-insights/utils"
)

// Chart names shared by the HTTP routes and the export command.
const (
	ChartPrice         = "price"
	ChartOdometer      = "odometer"
	ChartManufacturers = "manufacturers"
	ChartPriceByYear   = "price-by-year"
	ChartPriceByType   = "price-by-type"
)

// ErrUnknownChart is returned for a chart name the dashboard does not serve.
var ErrUnknownChart = errors.New("unknown chart")

// ChartInfo describes one dashboard chart.
type ChartInfo struct {
	Name    string
	Title   string
	Section string
	Label   string
}

var chartCatalog = []ChartInfo{
	{ChartPrice, "Distribution of Vehicle Prices", "Explore Key Distributions", "Show Price Distribution"},
	{ChartOdometer, "Distribution of Odometer Readings", "Explore Key Distributions", "Show Odometer Distribution"},
	{ChartManufacturers, "Number of Vehicles by Manufacturer (Stacked by Model)", "Explore Key Distributions", "Show Manufacturer Count"},
	{ChartPriceByYear, "Price vs. Model Year Colored by Condition", "Detailed Vehicle Insights", "Show Price vs. Model Year"},
	{ChartPriceByType, "Price Distribution by Vehicle Type", "Detailed Vehicle Insights", "Show Price by Vehicle Type"},
}

// Charts returns the dashboard charts in display order.
func Charts() []ChartInfo {
	out := make([]ChartInfo, len(chartCatalog))
	copy(out, chartCatalog)
	return out
}

// Dashboard holds the prepared dataset and the services that derive chart data
// from it. The dataset is never modified after construction, so a Dashboard is
// safe for concurrent use.
type Dashboard struct {
	dataset       *models.Dataset
	source        string
	previewRows   int
	aggregator    *services.Aggregator
	distributions *services.Distributions
	insights      *services.InsightService
	renderer      *charts.Renderer
}

// NewDashboard wraps an already prepared dataset.
func NewDashboard(ds *models.Dataset, source string, previewRows int, logger *utils.Logger) *Dashboard {
	if ds == nil {
		ds = &models.Dataset{}
	}
	if previewRows <= 0 {
		previewRows = services.DefaultPreviewRows
	}
	aggregator := services.NewAggregator(logger)
	return &Dashboard{
		dataset:       ds,
		source:        source,
		previewRows:   previewRows,
		aggregator:    aggregator,
		distributions: services.NewDistributions(),
		insights:      services.NewInsightService(logger, aggregator),
		renderer:      charts.NewRenderer(),
	}
}

// Source describes where the dataset was loaded from.
func (d *Dashboard) Source() string { return d.source }

// Len returns the number of listings.
func (d *Dashboard) Len() int { return d.dataset.Len() }

// Columns returns the dataset columns in source order.
func (d *Dashboard) Columns() []string {
	out := make([]string, len(d.dataset.Columns))
	copy(out, d.dataset.Columns)
	return out
}

// Preview returns the first complete listings.
func (d *Dashboard) Preview() []models.Listing {
	return d.distributions.Preview(d.dataset, d.previewRows)
}

// Summary builds the insight report.
func (d *Dashboard) Summary() *models.InsightReport {
	return d.insights.Generate(d.dataset)
}

// ChartData returns the dataset behind the named chart.
func (d *Dashboard) ChartData(name string) (any, error) {
	switch name {
	case ChartPrice:
		return d.distributions.PriceHistogram(d.dataset), nil
	case ChartOdometer:
		return d.distributions.OdometerHistogram(d.dataset), nil
	case ChartManufacturers:
		return d.aggregator.ByManufacturerAndModel(d.dataset.Listings), nil
	case ChartPriceByYear:
		return d.distributions.PriceByModelYear(d.dataset), nil
	case ChartPriceByType:
		return d.distributions.PriceByType(d.dataset), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
}

// RenderChart writes the named chart as a PNG. It returns charts.ErrNoData when
// the chart would be empty.
func (d *Dashboard) RenderChart(name string, w io.Writer) error {
	data, err := d.ChartData(name)
	if err != nil {
		return err
	}

	switch v := data.(type) {
	case *models.Histogram:
		return d.renderer.Histogram(w, v, titleOf(name))
	case []models.ManufacturerModelCount:
		return d.renderer.ManufacturerModels(w, v)
	case []models.ScatterSeries:
		return d.renderer.PriceByModelYear(w, v)
	case []models.BoxStats:
		return d.renderer.PriceByType(w, v)
	}
	return fmt.Errorf("%w: %q", ErrUnknownChart, name)
}

func titleOf(name string) string {
	for _, c := range chartCatalog {
		if c.Name == name {
			return c.Title
		}
	}
	return name
}
