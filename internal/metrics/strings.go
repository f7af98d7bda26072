package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// String store Prometheus metrics.
var (
	StringsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "strdex",
			Name:      "strings_stored",
			Help:      "Number of string records currently held in memory",
		},
	)

	StringOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "strdex",
			Name:      "string_operations_total",
			Help:      "Total number of string store operations",
		},
		[]string{"operation", "result"}, // create|get|delete|list / ok|not_found|conflict|invalid
	)

	StringLengthChars = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "strdex",
			Name:      "string_length_chars",
			Help:      "Length in characters of analyzed strings",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 9),
		},
	)

	NaturalLanguageQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "strdex",
			Name:      "natural_language_queries_total",
			Help:      "Natural language queries by outcome",
		},
		[]string{"outcome"}, // "parsed" / "unrecognized" / "conflicting"
	)

	FilterPredicatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "strdex",
			Name:      "filter_predicates_total",
			Help:      "Filter predicates applied to listings",
		},
		[]string{"source", "predicate"}, // source: "structured" / "natural_language"
	)
)

var registerStringMetrics sync.Once

// RegisterStringMetrics registers Prometheus string store metrics on the default registry.
// Safe to call more than once.
func RegisterStringMetrics() {
	registerStringMetrics.Do(func() {
		prometheus.MustRegister(StringsStored)
		prometheus.MustRegister(StringOperationsTotal)
		prometheus.MustRegister(StringLengthChars)
		prometheus.MustRegister(NaturalLanguageQueriesTotal)
		prometheus.MustRegister(FilterPredicatesTotal)
	})
}
