package models

// ManufacturerModelCount is one row of the manufacturer/model stacked aggregation.
type ManufacturerModelCount struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Count        int    `json:"count"`
}

// ManufacturerTotal is the number of listings of one manufacturer across all models.
type ManufacturerTotal struct {
	Manufacturer string `json:"manufacturer"`
	Total        int    `json:"total"`
}

// HistogramBin counts values in [Lower, Upper). The last bin of a histogram also
// includes its upper edge.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram is an equal-width binning of one numeric column.
type Histogram struct {
	Field    string         `json:"field"`
	Min      float64        `json:"min"`
	Max      float64        `json:"max"`
	BinWidth float64        `json:"bin_width"`
	Bins     []HistogramBin `json:"bins"`
	// Excluded counts missing values and values outside [Min, Max].
	Excluded int `json:"excluded"`
}

// Total returns the number of values that fell into a bin.
func (h *Histogram) Total() int {
	n := 0
	for _, b := range h.Bins {
		n += b.Count
	}
	return n
}

// ScatterPoint is one listing plotted as price against model year.
type ScatterPoint struct {
	ModelYear int     `json:"model_year"`
	Price     float64 `json:"price"`
	Model     string  `json:"model"`
}

// ScatterSeries groups the points of one vehicle condition.
type ScatterSeries struct {
	Condition string         `json:"condition"`
	Points    []ScatterPoint `json:"points"`
}

// BoxStats is the five-number summary of prices for one category.
type BoxStats struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
}

// InsightReport holds the computed overview of a prepared dataset.
type InsightReport struct {
	TotalListings  int                      `json:"total_listings"`
	PricedListings int                      `json:"priced_listings"`
	AveragePrice   float64                  `json:"average_price"`
	MinPrice       float64                  `json:"min_price"`
	MaxPrice       float64                  `json:"max_price"`
	MostExpensive  *Listing                 `json:"most_expensive,omitempty"`
	MedianOdometer float64                  `json:"median_odometer"`
	Manufacturers  []ManufacturerTotal      `json:"manufacturers"`
	TopModels      []ManufacturerModelCount `json:"top_models"`
}
