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

// Business Metrics
var (
	BallsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBallsDropped,
			Help: HelpTextBallsDropped,
		},
	)

	RoundsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsSettled,
			Help: HelpTextRoundsSettled,
		},
		[]string{LabelBucket},
	)

	RoundsVoided = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsVoided,
			Help: HelpTextRoundsVoided,
		},
		[]string{LabelReason},
	)

	AmountWagered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAmountWagered,
			Help: HelpTextAmountWagered,
		},
	)

	AmountPaidOut = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAmountPaidOut,
			Help: HelpTextAmountPaidOut,
		},
	)

	BallsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameBallsInFlight,
			Help: HelpTextBallsInFlight,
		},
	)

	WalletBalance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWalletBalance,
			Help: HelpTextWalletBalance,
		},
	)

	StorageDegraded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameStorageDegraded,
			Help: HelpTextStorageDegraded,
		},
	)
)
