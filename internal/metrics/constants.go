package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameAuthFailures         = "auth_failures_total"
	MetricNameRequestsThrottled    = "requests_throttled_total"
)

// Engine metric names
const (
	MetricNameCollectionsAttempted = "collections_attempted_total"
	MetricNameCollectionsConfirmed = "collections_confirmed_total"
	MetricNameCollectionsFailed    = "collections_failed_total"
	MetricNameSnapshotRefreshes    = "snapshot_refreshes_total"
	MetricNameSnapshotRefreshMiss  = "snapshot_refresh_failures_total"
	MetricNameZonesActive          = "zones_active"
	MetricNameStakeTransitions     = "stake_transitions_total"
	MetricNameConversions          = "conversions_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextAuthFailures         = "Total rejected API key checks"
	HelpTextRequestsThrottled    = "Total requests blocked by the per-IP rate limit"
)

// Engine metric help text
const (
	HelpTextCollectionsAttempted = "Total collection commands sent to the authority"
	HelpTextCollectionsConfirmed = "Total collection commands confirmed by the authority"
	HelpTextCollectionsFailed    = "Total collection commands that failed"
	HelpTextSnapshotRefreshes    = "Total authoritative snapshot refreshes"
	HelpTextSnapshotRefreshMiss  = "Total failed snapshot refreshes"
	HelpTextZonesActive          = "Number of currently active accrual zones"
	HelpTextStakeTransitions     = "Total deposit lifecycle transitions"
	HelpTextConversions          = "Total currency conversions performed"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelZone       = "zone"
	LabelTransition = "transition"
	LabelPair       = "pair"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
