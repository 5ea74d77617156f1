// Package metrics holds the process-wide Prometheus collectors. Observation
// helpers keep label handling in one place.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fatema-maitham/sudoko-solver/internal/ports"
	"github.com/fatema-maitham/sudoko-solver/internal/solver"
)

var (
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sudoku",
		Subsystem: "solver",
		Name:      "solves_total",
		Help:      "Solve attempts by outcome.",
	}, []string{"outcome"})

	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sudoku",
		Subsystem: "solver",
		Name:      "solve_duration_seconds",
		Help:      "Wall time of a full solve.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	solveGuesses = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sudoku",
		Subsystem: "solver",
		Name:      "solve_guesses",
		Help:      "Guesses taken per solve.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sudoku",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
)

// ObserveSolve records one solve attempt. The outcome label is "solved" or
// the solver's wire code for the failure.
func ObserveSolve(err error, st ports.Stats) {
	outcome := "solved"
	if err != nil {
		outcome = solver.ErrorKind(err)
	}
	solvesTotal.WithLabelValues(outcome).Inc()
	solveDuration.Observe(st.Duration.Seconds())
	solveGuesses.Observe(float64(st.Guesses))
}

// ObserveRequest records one HTTP request against its route template.
func ObserveRequest(method, route string, status int) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
