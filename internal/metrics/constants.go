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

// Business metric names
const (
	MetricNameCartItemsAdded = "cart_items_added_total"
	MetricNameCartMerges     = "cart_merges_total"
	MetricNamePriceLookups   = "price_lookups_total"
	MetricNameCheckoutQuotes = "checkout_quotes_total"
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

// Business metric help text
const (
	HelpTextCartItemsAdded = "Total number of items added to carts"
	HelpTextCartMerges     = "Total number of ephemeral-to-durable cart merges"
	HelpTextPriceLookups   = "Total number of price oracle lookups"
	HelpTextCheckoutQuotes = "Total number of checkout quotes computed"
)

// ============================================================================
// Label Names and Values
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelKind   = "kind"
	LabelResult = "result"
	LabelSource = "source"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	SourceCache = "cache"
	SourceStore = "store"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
