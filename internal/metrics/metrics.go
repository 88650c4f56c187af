package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chain Client Metrics
var (
	ChainRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChainRequestsTotal,
			Help: HelpTextChainRequestsTotal,
		},
		[]string{LabelEndpoint, LabelStatus},
	)

	ChainRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameChainRequestDuration,
			Help:    HelpTextChainRequestDuration,
			Buckets: ChainLatencyBuckets,
		},
		[]string{LabelEndpoint},
	)

	ChainReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameChainReconnectsTotal,
			Help: HelpTextChainReconnectsTotal,
		},
	)

	PushFramesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePushFramesTotal,
			Help: HelpTextPushFramesTotal,
		},
		[]string{LabelType},
	)

	PushSendsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePushSendsTotal,
			Help: HelpTextPushSendsTotal,
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
	AssetsMinted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAssetsMinted,
			Help: HelpTextAssetsMinted,
		},
		[]string{LabelCategory},
	)

	AssetsTransferred = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAssetsTransferred,
			Help: HelpTextAssetsTransferred,
		},
		[]string{LabelStatus},
	)

	ObjectsTransferred = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameObjectsTransferred,
			Help: HelpTextObjectsTransferred,
		},
	)

	MiningRewards = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMiningRewards,
			Help: HelpTextMiningRewards,
		},
	)
)
