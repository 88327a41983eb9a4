package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stdgp_generations_total",
		Help: "Generations ranked across all runs",
	})

	bestFitness = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stdgp_best_fitness",
		Help: "Fitness of the best Individual in the latest generation",
	})

	offspringTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stdgp_offspring_total",
		Help: "Offspring produced, by depth filter outcome",
	}, []string{"outcome"})

	evaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stdgp_evaluation_duration_seconds",
		Help:    "Time to evaluate one generation",
		Buckets: []float64{0.001, 0.01, 0.1, 1, 10},
	})
)
