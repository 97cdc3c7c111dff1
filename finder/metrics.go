package finder

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// findTotal counts Find calls by result
	findTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gapscan_find_total",
		Help: "Total Find calls by result",
	}, []string{"result"}) // "ok", "invalid_domain", "integrity"

	// rangesTotal counts classified ranges by outcome
	rangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gapscan_ranges_total",
		Help: "Total ranges classified by outcome",
	}, []string{"outcome"})

	// elementsScanned counts elements read across all counting and resolving passes
	elementsScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gapscan_elements_scanned_total",
		Help: "Total present-array elements scanned",
	})

	// findDuration tracks Find latency
	findDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gapscan_find_duration_seconds",
		Help:    "Find duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 18), // 0.1ms to ~13s
	})
)

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidDomain):
		return "invalid_domain"
	case errors.Is(err, ErrInputIntegrity):
		return "integrity"
	default:
		return "error"
	}
}

// publish records one call; counters are updated once per call, never per range.
func publish(s Stats, d time.Duration, err error) {
	findTotal.WithLabelValues(resultLabel(err)).Inc()
	findDuration.Observe(d.Seconds())
	elementsScanned.Add(float64(s.ElementsScanned))
	rangesTotal.WithLabelValues("full").Add(float64(s.FullRanges))
	rangesTotal.WithLabelValues("empty").Add(float64(s.EmptyRanges))
	rangesTotal.WithLabelValues("checksum").Add(float64(s.ChecksumRecoveries))
	rangesTotal.WithLabelValues("bitmap").Add(float64(s.BitmapResolves))
	rangesTotal.WithLabelValues("subdivide").Add(float64(s.Subdivisions))
}
