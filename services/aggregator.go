package services

import (
	"sort"

	"vehicle-insights/models"
	"vehicle-insights/utils"
)

// Aggregator builds the grouped datasets behind the categorical charts.
// It holds no state between calls and is safe for concurrent use.
type Aggregator struct {
	logger *utils.Logger
}

// NewAggregator creates an Aggregator with the given logger.
func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

type pairKey struct {
	manufacturer string
	model        string
}

// ByManufacturerAndModel counts listings per (manufacturer, model) pair.
//
// Rows are ordered by manufacturer display rank (descending manufacturer total),
// then by count descending. Equal manufacturer totals keep the order in which the
// manufacturers first appear in listings; equal pair counts keep the order in
// which the pairs first appear. The result is always a fresh, non-nil slice.
func (a *Aggregator) ByManufacturerAndModel(listings []models.Listing) []models.ManufacturerModelCount {
	rows := make([]models.ManufacturerModelCount, 0)
	index := make(map[pairKey]int)

	for _, l := range listings {
		key := pairKey{manufacturer: l.Manufacturer, model: l.Model}
		if i, ok := index[key]; ok {
			rows[i].Count++
			continue
		}
		index[key] = len(rows)
		rows = append(rows, models.ManufacturerModelCount{
			Manufacturer: l.Manufacturer,
			Model:        l.Model,
			Count:        1,
		})
	}

	ranking := a.ManufacturerRanking(listings)
	rank := make(map[string]int, len(ranking))
	for i, m := range ranking {
		rank[m.Manufacturer] = i
	}

	// rows is in pair first-occurrence order, which SliceStable preserves on ties.
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rank[rows[i].Manufacturer], rank[rows[j].Manufacturer]
		if ri != rj {
			return ri < rj
		}
		return rows[i].Count > rows[j].Count
	})

	a.logger.Debug("[aggregator] %d listings -> %d manufacturer/model rows across %d manufacturers",
		len(listings), len(rows), len(ranking))
	return rows
}

// ManufacturerRanking returns every manufacturer with its listing count, sorted by
// count descending. Ties keep first-occurrence order.
func (a *Aggregator) ManufacturerRanking(listings []models.Listing) []models.ManufacturerTotal {
	totals := make([]models.ManufacturerTotal, 0)
	index := make(map[string]int)

	for _, l := range listings {
		if i, ok := index[l.Manufacturer]; ok {
			totals[i].Total++
			continue
		}
		index[l.Manufacturer] = len(totals)
		totals = append(totals, models.ManufacturerTotal{Manufacturer: l.Manufacturer, Total: 1})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})
	return totals
}
