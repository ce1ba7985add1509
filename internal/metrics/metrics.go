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

// Accrual Metrics
var (
	CollectionsAttempted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCollectionsAttempted,
			Help: HelpTextCollectionsAttempted,
		},
		[]string{LabelZone},
	)

	CollectionsConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCollectionsConfirmed,
			Help: HelpTextCollectionsConfirmed,
		},
		[]string{LabelZone},
	)

	CollectionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCollectionsFailed,
			Help: HelpTextCollectionsFailed,
		},
		[]string{LabelZone},
	)

	SnapshotRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotRefreshes,
			Help: HelpTextSnapshotRefreshes,
		},
	)

	SnapshotRefreshFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotRefreshMiss,
			Help: HelpTextSnapshotRefreshMiss,
		},
	)

	ZonesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameZonesActive,
			Help: HelpTextZonesActive,
		},
	)
)

// Stake / Exchange Metrics
var (
	StakeTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStakeTransitions,
			Help: HelpTextStakeTransitions,
		},
		[]string{LabelTransition},
	)

	Conversions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConversions,
			Help: HelpTextConversions,
		},
		[]string{LabelPair},
	)

	AuthFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAuthFailures,
			Help: HelpTextAuthFailures,
		},
	)

	RequestsThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRequestsThrottled,
			Help: HelpTextRequestsThrottled,
		},
	)
)
