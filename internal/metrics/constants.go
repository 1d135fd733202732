package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameBallsDropped    = "plinko_balls_dropped_total"
	MetricNameRoundsSettled   = "plinko_rounds_settled_total"
	MetricNameRoundsVoided    = "plinko_rounds_voided_total"
	MetricNameAmountWagered   = "plinko_amount_wagered_total"
	MetricNameAmountPaidOut   = "plinko_amount_paid_out_total"
	MetricNameBallsInFlight   = "plinko_balls_in_flight"
	MetricNameWalletBalance   = "wallet_balance"
	MetricNameStorageDegraded = "wallet_storage_degraded"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextBallsDropped    = "Total number of balls dropped"
	HelpTextRoundsSettled   = "Total number of rounds settled, by landing bucket"
	HelpTextRoundsVoided    = "Total number of rounds voided, by reason"
	HelpTextAmountWagered   = "Total amount wagered"
	HelpTextAmountPaidOut   = "Total amount paid out, refunds included"
	HelpTextBallsInFlight   = "Current number of balls in flight"
	HelpTextWalletBalance   = "Current wallet balance"
	HelpTextStorageDegraded = "Whether the wallet is running on its in-memory fallback (1) or persisting (0)"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelBucket = "bucket"
	LabelReason = "reason"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
