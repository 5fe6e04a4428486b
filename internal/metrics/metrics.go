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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
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

// Moderation Metrics
var (
	PunishmentsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePunishmentsApplied,
			Help: HelpTextPunishmentsApplied,
		},
		[]string{LabelCategory},
	)

	PunishmentsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePunishmentsStarted,
			Help: HelpTextPunishmentsStarted,
		},
	)

	Modifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameModifications,
			Help: HelpTextModifications,
		},
		[]string{LabelType},
	)

	PunishmentsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePunishmentsExpired,
			Help: HelpTextPunishmentsExpired,
		},
	)

	DataDefects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDataDefects,
			Help: HelpTextDataDefects,
		},
		[]string{LabelKind},
	)

	StandingComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStandingComputations,
			Help: HelpTextStandingComputations,
		},
		[]string{LabelOutcome},
	)

	StandingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameStandingDuration,
			Help:    HelpTextStandingDuration,
			Buckets: StandingLatencyBuckets,
		},
	)

	StandingTierChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStandingTierChanges,
			Help: HelpTextStandingTierChanges,
		},
		[]string{LabelCategory, LabelDirection},
	)

	ScheduledExpiryTimers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameScheduledExpiryTimers,
			Help: HelpTextScheduledExpiryTimers,
		},
	)
)
