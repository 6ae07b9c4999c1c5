package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	chartRequests  *prometheus.CounterVec
	listingsLoaded prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		chartRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vehicle_insights_chart_requests_total",
			Help: "The total number of chart requests",
		}, []string{"chart"}),
		listingsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vehicle_insights_listings_loaded",
			Help: "The number of listings in the loaded dataset",
		}),
	}
}
