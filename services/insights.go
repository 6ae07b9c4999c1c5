package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"vehicle-insights/models"
	"vehicle-insights/utils"
)

const topModelsLimit = 5

type InsightService struct {
	logger     *utils.Logger
	aggregator *Aggregator
}

func NewInsightService(logger *utils.Logger, aggregator *Aggregator) *InsightService {
	return &InsightService{logger: logger, aggregator: aggregator}
}

func (s *InsightService) Generate(ds *models.Dataset) *models.InsightReport {
	report := &models.InsightReport{
		Manufacturers: make([]models.ManufacturerTotal, 0),
		TopModels:     make([]models.ManufacturerModelCount, 0),
	}

	if ds.Len() == 0 {
		return report
	}

	listings := ds.Listings
	report.TotalListings = len(listings)

	var total float64
	var odometers []float64
	for i := range listings {
		l := &listings[i]
		if l.Odometer != nil {
			odometers = append(odometers, *l.Odometer)
		}
		// Price stats only count listings with a price
		if l.Price <= 0 {
			continue
		}
		if report.PricedListings == 0 || l.Price < report.MinPrice {
			report.MinPrice = l.Price
		}
		if report.PricedListings == 0 || l.Price > report.MaxPrice {
			report.MaxPrice = l.Price
			report.MostExpensive = l
		}
		report.PricedListings++
		total += l.Price
	}
	if report.PricedListings > 0 {
		report.AveragePrice = round2(total / float64(report.PricedListings))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}
	if len(odometers) > 0 {
		sort.Float64s(odometers)
		report.MedianOdometer = round2(Quantile(odometers, 0.5))
	}

	report.Manufacturers = s.aggregator.ManufacturerRanking(listings)

	rows := s.aggregator.ByManufacturerAndModel(listings)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	if len(rows) > topModelsLimit {
		rows = rows[:topModelsLimit]
	}
	report.TopModels = rows

	s.logger.Debug("[insights] Report over %d listings (%d priced, %d manufacturers)",
		report.TotalListings, report.PricedListings, len(report.Manufacturers))
	return report
}

func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🚗 VEHICLE SALES DATA ANALYSIS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Total listings  : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Fprintf(w, "  Priced listings : \033[1m%d\033[0m\n", r.PricedListings)
	fmt.Fprintf(w, "  Manufacturers   : \033[1m%d\033[0m\n", len(r.Manufacturers))
	if r.MedianOdometer > 0 {
		fmt.Fprintf(w, "  Median odometer : \033[1m%.0f\033[0m\n", r.MedianOdometer)
	}
	fmt.Fprintln(w)

	// Price Stats
	fmt.Fprintf(w, "\033[1;33m  Price Statistics\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Fprintf(w, "  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Fprintf(w, "  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Fprintf(w, "  Maximum price : \033[1;32m$%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	if r.MostExpensive != nil {
		fmt.Fprintf(w, "\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  %s\n", truncate(r.MostExpensive.Model, 50))
		fmt.Fprintf(w, "  Type  : %s\n", r.MostExpensive.TypeCapitalized)
		fmt.Fprintf(w, "  Price : \033[1;31m$%.2f\033[0m\n", r.MostExpensive.Price)
		fmt.Fprintln(w)
	}

	// ── TOP MODELS ───────────────────────────────────────────────────────
	fmt.Fprintf(w, "\033[1;33m  Top %d Models\033[0m\n", topModelsLimit)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopModels) == 0 {
		fmt.Fprintf(w, "  No listings found\n")
	} else {
		for i, m := range r.TopModels {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%d\033[0m\n",
				i+1, truncate(m.Model, 38), m.Count)
		}
	}
	fmt.Fprintln(w)

	// Listings by Manufacturer, already ranked
	fmt.Fprintf(w, "\033[1;33m  Listings by Manufacturer\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.Manufacturers) == 0 {
		fmt.Fprintf(w, "  No manufacturer data\n")
	} else {
		top := r.Manufacturers[0].Total
		for _, m := range r.Manufacturers {
			bar := strings.Repeat("█", barWidth(m.Total, top, 20))
			fmt.Fprintf(w, "  %-20s %s (%d)\n", truncate(m.Manufacturer, 18), bar, m.Total)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

// barWidth scales n against max into at most width cells, never below one.
func barWidth(n, max, width int) int {
	if max <= 0 {
		return 0
	}
	cells := n * width / max
	if cells < 1 {
		return 1
	}
	return cells
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
