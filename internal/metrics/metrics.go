package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds only the riftstats collectors so pushes stay small.
var Registry = prometheus.NewRegistry()

var (
	factory = promauto.With(Registry)

	IngestRuns = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "riftstats_ingest_runs_total", Help: "Ingest runs by outcome.",
	}, []string{"result"})

	IngestRows = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "riftstats_ingest_rows_total", Help: "Rows produced by ingest runs.",
	}, []string{"kind"})

	IngestFailedPlayers = factory.NewCounter(prometheus.CounterOpts{
		Name: "riftstats_ingest_failed_players_total", Help: "Players whose ingest failed.",
	})

	IngestDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "riftstats_ingest_duration_seconds",
		Help:    "Wall time of an ingest run.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
	})

	IngestLastSuccess = factory.NewGauge(prometheus.GaugeOpts{
		Name: "riftstats_ingest_last_success_timestamp_seconds", Help: "Unix time of the last successful ingest run.",
	})

	ReportsPublished = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "riftstats_reports_published_total", Help: "Reports sent to the webhook by kind and outcome.",
	}, []string{"kind", "result"})
)
