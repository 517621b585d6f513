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

// Allocation Metrics
var (
	AllocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAllocationsTotal,
			Help: HelpTextAllocationsTotal,
		},
		[]string{LabelPack, LabelOutcome},
	)

	AllocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameAllocationDuration,
			Help:    HelpTextAllocationDuration,
			Buckets: AllocationLatencyBuckets,
		},
		[]string{LabelPack},
	)

	RarityDrawn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRarityDrawn,
			Help: HelpTextRarityDrawn,
		},
		[]string{LabelPack, LabelRarity},
	)

	SerialsMinted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSerialsMinted,
			Help: HelpTextSerialsMinted,
		},
		[]string{LabelItem},
	)

	ReservationConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReservationConflicts,
			Help: HelpTextReservationConflicts,
		},
		[]string{LabelItem},
	)

	ConflictRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameConflictRetries,
			Help: HelpTextConflictRetries,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventsDeadLettered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsDeadLettered,
			Help: HelpTextEventsDeadLettered,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)
