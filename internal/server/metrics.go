package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered on the server's own registry so several servers
// can live in one process.
type metrics struct {
	generations    *prometheus.CounterVec
	generationTime *prometheus.HistogramVec
	wordsPlaced    prometheus.Histogram
	wordsRemaining prometheus.Histogram
	rateLimited    *prometheus.CounterVec
	streams        prometheus.Gauge
	moves          prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "xpuzzle_generations_total",
			Help: "Puzzle generations by mode (fixed, auto, fill)",
		}, []string{"mode"}),
		generationTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "xpuzzle_generation_duration_seconds",
			Help:    "Time spent generating a puzzle",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"mode"}),
		wordsPlaced: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "xpuzzle_words_placed",
			Help:    "Words placed per generation",
			Buckets: prometheus.LinearBuckets(0, 10, 12),
		}),
		wordsRemaining: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "xpuzzle_words_remaining",
			Help:    "Words left unplaced per generation",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		rateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Name: "xpuzzle_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		}, []string{"route"}),
		streams: f.NewGauge(prometheus.GaugeOpts{
			Name: "xpuzzle_sse_streams",
			Help: "Open game event streams",
		}),
		moves: f.NewCounter(prometheus.CounterOpts{
			Name: "xpuzzle_moves_total",
			Help: "Accepted player moves",
		}),
	}
}
