package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "packvault_http_requests_total"
	MetricNameHTTPRequestDuration  = "packvault_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "packvault_http_requests_in_flight"

	MetricNameAllocationsTotal     = "packvault_allocations_total"
	MetricNameAllocationDuration   = "packvault_allocation_duration_seconds"
	MetricNameRarityDrawn          = "packvault_rarity_drawn_total"
	MetricNameSerialsMinted        = "packvault_serials_minted_total"
	MetricNameReservationConflicts = "packvault_reservation_conflicts_total"
	MetricNameConflictRetries      = "packvault_conflict_retries_total"

	MetricNameEventsPublished    = "packvault_events_published_total"
	MetricNameEventsDeadLettered = "packvault_events_dead_lettered_total"
	MetricNameEventHandlerErrors = "packvault_event_handler_errors_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextAllocationsTotal     = "Total pack allocations by pack and outcome"
	HelpTextAllocationDuration   = "Allocation transaction latency in seconds"
	HelpTextRarityDrawn          = "Rarity tiers drawn by the probability selector"
	HelpTextSerialsMinted        = "Serial numbers minted for capped items"
	HelpTextReservationConflicts = "TryReserve calls that observed an exhausted item"
	HelpTextConflictRetries      = "Internal retries after storage serialization conflicts"

	HelpTextEventsPublished    = "Events published to the bus"
	HelpTextEventsDeadLettered = "Events written to the dead-letter file"
	HelpTextEventHandlerErrors = "Errors returned by event handlers"
)

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelPack    = "pack"
	LabelOutcome = "outcome"
	LabelRarity  = "rarity"
	LabelItem    = "item"
	LabelType    = "type"
)

// HTTPLatencyBuckets covers the expected request latency range.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// AllocationLatencyBuckets is tighter: the allocation budget is a few
// hundred milliseconds.
var AllocationLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}
