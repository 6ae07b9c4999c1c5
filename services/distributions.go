package services

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"vehicle-insights/models"
)

var (
	// ErrUnknownField is returned for a histogram over a non-numeric or unknown column.
	ErrUnknownField = errors.New("unknown numeric field")
	// ErrInvalidRange is returned when a histogram has no bins or an empty range.
	ErrInvalidRange = errors.New("invalid histogram range")
)

// Histogram defaults used by the dashboard.
const (
	DefaultBins        = 100
	PriceRangeMax      = 100000
	OdometerRangeMax   = 300000
	DefaultPreviewRows = 10
)

// Distributions builds the datasets of the per-listing charts.
type Distributions struct{}

// NewDistributions creates a Distributions.
func NewDistributions() *Distributions {
	return &Distributions{}
}

// numericField returns the value of a numeric column, or false when it is missing.
func numericField(l *models.Listing, field string) (float64, bool, error) {
	switch field {
	case models.ColPrice:
		return l.Price, true, nil
	case models.ColOdometer:
		if l.Odometer == nil {
			return 0, false, nil
		}
		return *l.Odometer, true, nil
	case models.ColModelYear:
		if l.ModelYear == nil {
			return 0, false, nil
		}
		return float64(*l.ModelYear), true, nil
	case models.ColCylinders:
		if l.Cylinders == nil {
			return 0, false, nil
		}
		return float64(*l.Cylinders), true, nil
	case models.ColDaysListed:
		if l.DaysListed == nil {
			return 0, false, nil
		}
		return float64(*l.DaysListed), true, nil
	}
	return 0, false, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// Histogram bins a numeric column into equal-width bins over [lo, hi].
// The last bin is closed on the right. Missing and out-of-range values are counted
// in Excluded.
func (d *Distributions) Histogram(ds *models.Dataset, field string, bins int, lo, hi float64) (*models.Histogram, error) {
	if bins < 1 || !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: %d bins over [%g, %g]", ErrInvalidRange, bins, lo, hi)
	}
	if _, _, err := numericField(&models.Listing{}, field); err != nil {
		return nil, err
	}

	width := (hi - lo) / float64(bins)
	h := &models.Histogram{
		Field:    field,
		Min:      lo,
		Max:      hi,
		BinWidth: width,
		Bins:     make([]models.HistogramBin, bins),
	}
	for i := range h.Bins {
		h.Bins[i].Lower = lo + float64(i)*width
		h.Bins[i].Upper = lo + float64(i+1)*width
	}
	h.Bins[bins-1].Upper = hi

	if ds == nil {
		return h, nil
	}
	for i := range ds.Listings {
		v, ok, _ := numericField(&ds.Listings[i], field)
		if !ok || math.IsNaN(v) || v < lo || v > hi {
			h.Excluded++
			continue
		}
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Bins[idx].Count++
	}
	return h, nil
}

// PriceHistogram is the dashboard's price distribution.
func (d *Distributions) PriceHistogram(ds *models.Dataset) *models.Histogram {
	h, _ := d.Histogram(ds, models.ColPrice, DefaultBins, 0, PriceRangeMax)
	return h
}

// OdometerHistogram is the dashboard's odometer distribution.
func (d *Distributions) OdometerHistogram(ds *models.Dataset) *models.Histogram {
	h, _ := d.Histogram(ds, models.ColOdometer, DefaultBins, 0, OdometerRangeMax)
	return h
}

// PriceByModelYear groups price/model-year points by condition, in the order the
// conditions first appear. Listings without a model year are skipped.
func (d *Distributions) PriceByModelYear(ds *models.Dataset) []models.ScatterSeries {
	series := make([]models.ScatterSeries, 0)
	if ds == nil {
		return series
	}
	index := make(map[string]int)
	for _, l := range ds.Listings {
		if l.ModelYear == nil {
			continue
		}
		i, ok := index[l.Condition]
		if !ok {
			i = len(series)
			index[l.Condition] = i
			series = append(series, models.ScatterSeries{Condition: l.Condition})
		}
		series[i].Points = append(series[i].Points, models.ScatterPoint{
			ModelYear: *l.ModelYear,
			Price:     l.Price,
			Model:     l.Model,
		})
	}
	return series
}

// PriceByType returns price box statistics per capitalized vehicle type, in the
// order the types first appear.
func (d *Distributions) PriceByType(ds *models.Dataset) []models.BoxStats {
	stats := make([]models.BoxStats, 0)
	if ds == nil {
		return stats
	}
	var order []string
	prices := make(map[string][]float64)
	for _, l := range ds.Listings {
		if _, ok := prices[l.TypeCapitalized]; !ok {
			order = append(order, l.TypeCapitalized)
		}
		prices[l.TypeCapitalized] = append(prices[l.TypeCapitalized], l.Price)
	}
	for _, category := range order {
		values := prices[category]
		sort.Float64s(values)
		stats = append(stats, models.BoxStats{
			Category: category,
			Count:    len(values),
			Min:      values[0],
			Q1:       Quantile(values, 0.25),
			Median:   Quantile(values, 0.5),
			Q3:       Quantile(values, 0.75),
			Max:      values[len(values)-1],
		})
	}
	return stats
}

// Preview returns up to n listings with no missing value in any of the dataset's
// columns, in dataset order.
func (d *Distributions) Preview(ds *models.Dataset, n int) []models.Listing {
	if ds == nil || n <= 0 {
		return []models.Listing{}
	}
	out := make([]models.Listing, 0, n)
	for i := range ds.Listings {
		if len(out) == n {
			break
		}
		if ds.Listings[i].Complete(ds.Columns) {
			out = append(out, ds.Listings[i])
		}
	}
	return out
}

// Quantile returns the q-th quantile of sorted values, interpolating linearly
// between closest ranks. sorted must be non-empty and ascending.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
