package inventory

// Log messages
const (
	LogMsgDuplicateItem   = "Ignoring duplicate inventory item"
	LogMsgItemAdded       = "Added item to inventory"
	LogMsgItemTransferred = "Transferred item between players"
	LogMsgBadMintPayload  = "Dropping asset minted event with bad payload"
)
