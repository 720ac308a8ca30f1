package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	CartItemsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCartItemsAdded,
			Help: HelpTextCartItemsAdded,
		},
		[]string{LabelKind},
	)

	CartMerges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCartMerges,
			Help: HelpTextCartMerges,
		},
		[]string{LabelResult},
	)

	PriceLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePriceLookups,
			Help: HelpTextPriceLookups,
		},
		[]string{LabelSource},
	)

	CheckoutQuotes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCheckoutQuotes,
			Help: HelpTextCheckoutQuotes,
		},
	)
)
