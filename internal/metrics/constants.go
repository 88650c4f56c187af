package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Chain client metric names
const (
	MetricNameChainRequestsTotal   = "chain_requests_total"
	MetricNameChainRequestDuration = "chain_request_duration_seconds"
	MetricNameChainReconnectsTotal = "chain_reconnects_total"
	MetricNamePushFramesTotal      = "chain_push_frames_total"
	MetricNamePushSendsTotal       = "chain_push_sends_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameAssetsMinted       = "assets_minted_total"
	MetricNameAssetsTransferred  = "assets_transferred_total"
	MetricNameObjectsTransferred = "gamelink_objects_transferred_total"
	MetricNameMiningRewards      = "mining_rewards_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// Chain client metric help text
const (
	HelpTextChainRequestsTotal   = "Total number of REST requests sent to the ledger node"
	HelpTextChainRequestDuration = "Ledger node request latency in seconds"
	HelpTextChainReconnectsTotal = "Total number of push channel reconnect attempts"
	HelpTextPushFramesTotal      = "Total number of push channel frames received"
	HelpTextPushSendsTotal       = "Total number of frames sent on the push channel"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextAssetsMinted       = "Total number of assets minted"
	HelpTextAssetsTransferred  = "Total number of asset transfers completed"
	HelpTextObjectsTransferred = "Total number of cross-game object transfers"
	HelpTextMiningRewards      = "Total mining reward value accrued"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelEndpoint = "endpoint"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelCategory = "category"
)

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusDropped = "dropped"
)

// ChainLatencyBuckets covers local-node round trips up to slow public nodes
var ChainLatencyBuckets = []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
