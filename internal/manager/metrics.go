package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mailgen",
			Subsystem: "model",
			Name:      "generations_total",
			Help:      "Total number of model generations by task and outcome",
		},
		[]string{"task", "outcome"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mailgen",
			Subsystem: "model",
			Name:      "generation_duration_seconds",
			Help:      "Duration of successful model generations in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"task"},
	)

	modelLoadSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mailgen",
			Subsystem: "model",
			Name:      "load_seconds",
			Help:      "Time spent loading the model at startup",
		},
	)
)

func init() {
	prometheus.MustRegister(generationsTotal, generationDuration, modelLoadSeconds)
}
