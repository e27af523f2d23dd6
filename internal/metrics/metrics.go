package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_http_requests_total",
			Help: "Total number of API requests served",
		},
		[]string{"handler", "status"},
	)

	ApplyDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leads_apply_duration_seconds",
			Help:    "Filter-and-aggregate pipeline duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	DatasetRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "leads_dataset_rows",
			Help: "Rows in the currently cached dataset",
		},
	)

	DatasetReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_dataset_reloads_total",
			Help: "Dataset reload attempts by result",
		},
		[]string{"result"},
	)
)

// Register installs all collectors on the default registry. Call once
// at startup.
func Register() {
	prometheus.MustRegister(RequestTotal, ApplyDuration, DatasetRows, DatasetReloads)
}

// Handler serves the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
