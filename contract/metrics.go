package contract

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for the check metrics. Direction distinguishes input checks
// from return-value checks; outcome records how the check ended.
const (
	directionInput  = "input"
	directionOutput = "output"

	outcomePass      = "pass"
	outcomeViolation = "violation"
	outcomeError     = "error"
)

var (
	// checksTotal is a Prometheus counter that tracks every individual spec
	// check performed by any contract in the process.
	//
	// Labels:
	//   - direction: "input" for parameter checks, "output" for return-value
	//     checks.
	//   - outcome: "pass" when the value satisfied its spec, "violation" when
	//     it did not, "error" when a user-supplied predicate failed with an
	//     error of its own.
	//
	// The counter increments once per check, not per call: a call through a
	// contract with three input specs contributes up to three increments, or
	// fewer when an early violation aborts the call. Useful queries:
	//   - rate(contract_checks_total[5m]) - Checks per second
	//   - contract_checks_total{outcome="violation"} - Count of violations
	//   - sum(rate(contract_checks_total{outcome="violation"}[5m])) by (direction)
	//     - Violation rate split by input vs output
	//
	// The nolint:gochecknoglobals directive is used because Prometheus metrics
	// are intentionally global by design - they need to be registered once and
	// accessed throughout the application lifecycle.
	checksTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "contract_checks_total",
		Help: "The total number of contract spec checks",
	}, []string{"direction", "outcome"})

	// checkTime is a Prometheus histogram that tracks the duration of
	// individual spec checks in milliseconds.
	//
	// Type and pass-through checks complete in microseconds; the larger
	// buckets exist for user-supplied predicates, whose cost this layer does
	// not control. A check that regularly lands in the upper buckets is a
	// predicate doing real work (I/O, large scans) and a candidate for moving
	// out of the call path.
	//
	// Labels mirror checksTotal: direction and outcome.
	//
	// Useful queries:
	//   - histogram_quantile(0.95, rate(contract_check_time_millis_bucket[5m]))
	//     - 95th percentile check latency
	//   - rate(contract_check_time_millis_sum[5m]) / rate(contract_check_time_millis_count[5m])
	//     - Average check duration
	checkTime = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name: "contract_check_time_millis",
		Help: "The time it takes to check a value against its spec, in milliseconds",
		Buckets: []float64{
			1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000,
		},
	}, []string{"direction", "outcome"})
)

// observeCheck records one finished check in both metrics.
func observeCheck(direction, outcome string, start time.Time) {
	checksTotal.WithLabelValues(direction, outcome).Inc()
	checkTime.WithLabelValues(direction, outcome).
		Observe(float64(time.Since(start).Milliseconds()))
}

// init pre-initializes checksTotal with zero values for all label
// combinations, so dashboards and rate() queries see a complete time series
// from process start instead of series that appear at the first check.
func init() {
	for _, direction := range []string{directionInput, directionOutput} {
		for _, outcome := range []string{outcomePass, outcomeViolation, outcomeError} {
			checksTotal.WithLabelValues(direction, outcome).Add(0)
		}
	}
}
